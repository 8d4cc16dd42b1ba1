package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace-core/internal/domain"
)

// Authentication happens upstream; the gateway forwards the verified
// identity in these headers. The core only validates their shape.
const (
	headerRole   = "X-Actor-Role"
	headerUser   = "X-User-Id"
	headerVendor = "X-Vendor-Id"

	actorKey = "actor"
)

func actorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := domain.Role(c.GetHeader(headerRole))
		userID := c.GetHeader(headerUser)

		if userID == "" || (role != domain.RoleCustomer && role != domain.RoleVendor) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing or invalid actor identity"})
			return
		}

		actor := domain.Actor{Role: role, UserID: userID}
		if role == domain.RoleVendor {
			actor.VendorID = c.GetHeader(headerVendor)
			if actor.VendorID == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "vendor actor requires vendor id"})
				return
			}
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

func actorFrom(c *gin.Context) domain.Actor {
	v, _ := c.Get(actorKey)
	actor, _ := v.(domain.Actor)
	return actor
}

func customerOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if actorFrom(c).Role != domain.RoleCustomer {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "customer access only"})
			return
		}
		c.Next()
	}
}

func vendorOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if actorFrom(c).Role != domain.RoleVendor {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "vendor access only"})
			return
		}
		c.Next()
	}
}
