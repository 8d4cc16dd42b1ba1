package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace-core/internal/domain"
)

// writeError maps the domain error taxonomy onto HTTP statuses. Domain
// error messages are safe to surface; anything unclassified stays inside
// and becomes a plain 500.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "unauthorized for this order"})
	case errors.Is(err, domain.ErrConflict):
		// Distinguishable from 400 so clients know a retry after
		// re-checking stock is sensible.
		c.JSON(http.StatusConflict, gin.H{"message": err.Error(), "retryable": true})
	case errors.Is(err, domain.ErrInvalidState):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrTransient):
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "temporary storage failure, retry the request", "retryable": true})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	}
}
