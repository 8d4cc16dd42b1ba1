package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	amqp "github.com/rabbitmq/amqp091-go"

	"marketplace-core/internal/config"
	"marketplace-core/internal/db"
	"marketplace-core/internal/httpserver"
	"marketplace-core/internal/notify"
	cartrepo "marketplace-core/internal/repository/cart"
	inventoryrepo "marketplace-core/internal/repository/inventory"
	orderrepo "marketplace-core/internal/repository/order"
	productrepo "marketplace-core/internal/repository/product"
	cartsvc "marketplace-core/internal/service/cart"
	checkoutsvc "marketplace-core/internal/service/checkout"
	ordersvc "marketplace-core/internal/service/order"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	var notifier notify.Notifier = notify.Noop{}
	if cfg.AMQPURL != "" {
		conn, err := amqp.Dial(cfg.AMQPURL)
		if err != nil {
			logger.Fatalf("connect to amqp: %v", err)
		}
		defer conn.Close()
		publisher, err := notify.NewAMQPPublisher(conn, logger)
		if err != nil {
			logger.Fatalf("init amqp publisher: %v", err)
		}
		defer publisher.Close()
		notifier = publisher
	}

	runner := &db.PoolRunner{Pool: dbpool}
	productRepo := productrepo.NewPostgres(dbpool)
	cartRepo := cartrepo.NewPostgres(dbpool)
	inventoryRepo := inventoryrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool)

	cartService := cartsvc.New(cartRepo, productRepo)
	checkoutService := checkoutsvc.New(runner, cartRepo, productRepo, orderRepo, notifier, cfg.TaxRateBasisPts, cfg.DeliveryFeeCents)
	orderService := ordersvc.New(runner, orderRepo, inventoryRepo, notifier)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CartSvc:      cartService,
		CheckoutSvc:  checkoutService,
		OrderSvc:     orderService,
		InventorySvc: inventoryRepo,
		ProductSvc:   productRepo,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
