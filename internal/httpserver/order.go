package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace-core/internal/domain"
)

type orderWithHistory struct {
	Order   *domain.Order               `json:"order"`
	History []domain.StatusHistoryEntry `json:"history"`
}

func listOrdersHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.List(c.Request.Context(), actorFrom(c))
		if err != nil {
			writeError(c, err)
			return
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, orders)
	}
}

func getOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, history, err := svc.GetWithHistory(c.Request.Context(), actorFrom(c), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		if history == nil {
			history = []domain.StatusHistoryEntry{}
		}
		c.JSON(http.StatusOK, orderWithHistory{Order: order, History: history})
	}
}

func transitionHandler(svc OrderService, transition string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := actorFrom(c)
		orderID := c.Param("id")

		var (
			order *domain.Order
			err   error
		)
		switch transition {
		case "confirm":
			order, err = svc.Confirm(c.Request.Context(), actor, orderID)
		case "pack":
			order, err = svc.Pack(c.Request.Context(), actor, orderID)
		case "out-for-delivery":
			order, err = svc.OutForDelivery(c.Request.Context(), actor, orderID)
		case "complete":
			order, err = svc.Complete(c.Request.Context(), actor, orderID)
		case "cancel":
			order, err = svc.Cancel(c.Request.Context(), actor, orderID)
		default:
			c.JSON(http.StatusNotFound, gin.H{"message": "unknown transition"})
			return
		}
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
