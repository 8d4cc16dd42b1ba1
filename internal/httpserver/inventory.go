package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace-core/internal/domain"
)

type putInventoryRequest struct {
	StockQuantity     int  `json:"stockQuantity" binding:"min=0"`
	LowStockThreshold *int `json:"lowStockThreshold"`
}

func getInventoryHandler(store InventoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := store.Get(c.Request.Context(), actorFrom(c).VendorID, c.Param("productId"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}

func putInventoryHandler(store InventoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req putInventoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "stockQuantity must be a non-negative integer"})
			return
		}
		threshold := 5
		if req.LowStockThreshold != nil {
			threshold = *req.LowStockThreshold
		}
		rec, err := store.Put(c.Request.Context(), actorFrom(c).VendorID, c.Param("productId"), req.StockQuantity, threshold)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}

func listProductsHandler(svc ProductLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.ListByVendor(c.Request.Context(), c.Param("vendorId"))
		if err != nil {
			writeError(c, err)
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, products)
	}
}
