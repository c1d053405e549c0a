package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tableserve/services"
)

// IntegrationKeyMiddleware resolves the tenant for unauthenticated
// surfaces (diner widget, voice agent) from the X-Integration-Key
// header or the ?key= query parameter.
func IntegrationKeyMiddleware(restaurants *services.RestaurantService) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-Integration-Key")
		if key == "" {
			key = c.Query("key")
		}
		if key == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing integration key"})
			c.Abort()
			return
		}

		rest, err := restaurants.GetByIntegrationKey(key)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid integration key"})
			c.Abort()
			return
		}

		c.Set("restaurantId", rest.ID)
		c.Next()
	}
}
