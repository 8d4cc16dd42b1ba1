package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"marketplace-core/internal/domain"
)

const (
	vendorID  = "11111111-1111-1111-1111-111111111111"
	productID = "22222222-2222-2222-2222-222222222222"
	otherID   = "33333333-3333-3333-3333-333333333333"
)

func TestDecrementBulkAppliesConditionalUpdates(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE inventory").
		WithArgs(vendorID, productID, 2).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE inventory").
		WithArgs(vendorID, otherID, 1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	ctx := context.Background()
	tx, err := mock.Begin(ctx)
	require.NoError(t, err)

	repo := NewPostgres(mock)
	err = repo.DecrementBulk(ctx, tx, vendorID, []domain.StockMovement{
		{ProductID: productID, Quantity: 2},
		{ProductID: otherID, Quantity: 1},
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrementBulkInsufficientStockIsConflict(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE inventory").
		WithArgs(vendorID, productID, 5).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(vendorID, productID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	ctx := context.Background()
	tx, err := mock.Begin(ctx)
	require.NoError(t, err)

	repo := NewPostgres(mock)
	err = repo.DecrementBulk(ctx, tx, vendorID, []domain.StockMovement{{ProductID: productID, Quantity: 5}})
	require.ErrorIs(t, err, domain.ErrConflict)

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	require.Equal(t, productID, stockErr.ProductID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrementBulkMissingRecordIsNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE inventory").
		WithArgs(vendorID, productID, 1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(vendorID, productID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	ctx := context.Background()
	tx, err := mock.Begin(ctx)
	require.NoError(t, err)

	repo := NewPostgres(mock)
	err = repo.DecrementBulk(ctx, tx, vendorID, []domain.StockMovement{{ProductID: productID, Quantity: 1}})
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrementBulkStopsAtFirstFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE inventory").
		WithArgs(vendorID, productID, 1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(vendorID, productID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	ctx := context.Background()
	tx, err := mock.Begin(ctx)
	require.NoError(t, err)

	repo := NewPostgres(mock)
	err = repo.DecrementBulk(ctx, tx, vendorID, []domain.StockMovement{
		{ProductID: productID, Quantity: 1},
		{ProductID: otherID, Quantity: 1},
	})
	require.ErrorIs(t, err, domain.ErrConflict)
	// No exec expected for the second item; the call aborts on the first
	// failure and the enclosing transaction rolls back.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementBulkRequiresExistingRecord(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE inventory").
		WithArgs(vendorID, productID, 3).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	ctx := context.Background()
	tx, err := mock.Begin(ctx)
	require.NoError(t, err)

	repo := NewPostgres(mock)
	err = repo.IncrementBulk(ctx, tx, vendorID, []domain.StockMovement{{ProductID: productID, Quantity: 3}})
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
