package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type cartItemRequest struct {
	VendorID  string `json:"vendorId" binding:"required"`
	ProductID string `json:"productId" binding:"required"`
	Quantity  *int   `json:"quantity"`
}

type checkoutRequest struct {
	VendorID string `json:"vendorId" binding:"required"`
}

func getCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID := strings.TrimSpace(c.Query("vendorId"))
		if vendorID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "vendorId query parameter required"})
			return
		}
		cart, err := svc.Get(c.Request.Context(), actorFrom(c).UserID, vendorID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func addCartItemHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "vendorId and productId required"})
			return
		}
		quantity := 1
		if req.Quantity != nil {
			quantity = *req.Quantity
		}
		cart, err := svc.AddItem(c.Request.Context(), actorFrom(c).UserID, req.VendorID, req.ProductID, quantity)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func removeCartItemHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "vendorId and productId required"})
			return
		}
		cart, err := svc.RemoveItem(c.Request.Context(), actorFrom(c).UserID, req.VendorID, req.ProductID, req.Quantity)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func checkoutHandler(svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "vendorId required"})
			return
		}
		order, err := svc.Checkout(c.Request.Context(), actorFrom(c).UserID, req.VendorID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}
