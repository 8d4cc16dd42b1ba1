package httpserver

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"marketplace-core/internal/domain"
)

// Deps carries the services the handlers dispatch to.
type Deps struct {
	CartSvc      CartService
	CheckoutSvc  CheckoutService
	OrderSvc     OrderService
	InventorySvc InventoryStore
	ProductSvc   ProductLister
}

type CartService interface {
	Get(ctx context.Context, customerID, vendorID string) (*domain.Cart, error)
	AddItem(ctx context.Context, customerID, vendorID, productID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, customerID, vendorID, productID string, quantity *int) (*domain.Cart, error)
}

type CheckoutService interface {
	Checkout(ctx context.Context, customerID, vendorID string) (*domain.Order, error)
}

type OrderService interface {
	List(ctx context.Context, actor domain.Actor) ([]domain.Order, error)
	GetWithHistory(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, []domain.StatusHistoryEntry, error)
	Confirm(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error)
	Pack(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error)
	OutForDelivery(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error)
	Complete(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error)
	Cancel(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error)
}

type InventoryStore interface {
	Get(ctx context.Context, vendorID, productID string) (*domain.InventoryRecord, error)
	Put(ctx context.Context, vendorID, productID string, stock, lowStockThreshold int) (*domain.InventoryRecord, error)
}

type ProductLister interface {
	ListByVendor(ctx context.Context, vendorID string) ([]domain.Product, error)
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery(), cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.GET("/vendors/:vendorId/products", listProductsHandler(deps.ProductSvc))

	authed := router.Group("/", actorMiddleware())

	authed.GET("/cart", customerOnly(), getCartHandler(deps.CartSvc))
	authed.POST("/cart/add", customerOnly(), addCartItemHandler(deps.CartSvc))
	authed.POST("/cart/remove", customerOnly(), removeCartItemHandler(deps.CartSvc))
	authed.POST("/cart/checkout", customerOnly(), checkoutHandler(deps.CheckoutSvc))

	authed.GET("/orders", listOrdersHandler(deps.OrderSvc))
	authed.GET("/orders/:id", getOrderHandler(deps.OrderSvc))
	authed.POST("/orders/:id/confirm", vendorOnly(), transitionHandler(deps.OrderSvc, "confirm"))
	authed.POST("/orders/:id/pack", vendorOnly(), transitionHandler(deps.OrderSvc, "pack"))
	authed.POST("/orders/:id/out-for-delivery", transitionHandler(deps.OrderSvc, "out-for-delivery"))
	authed.POST("/orders/:id/complete", transitionHandler(deps.OrderSvc, "complete"))
	authed.POST("/orders/:id/cancel", transitionHandler(deps.OrderSvc, "cancel"))

	authed.GET("/inventory/:productId", vendorOnly(), getInventoryHandler(deps.InventorySvc))
	authed.PUT("/inventory/:productId", vendorOnly(), putInventoryHandler(deps.InventorySvc))

	return router
}
