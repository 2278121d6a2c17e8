package middleware

import (
	"blog-api/internal/domain/access"
	"blog-api/internal/infra/cache"

	"github.com/gin-gonic/gin"
)

// InvalidateListingCache purges cached listings after every successful write.
func InvalidateListingCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if access.OperationForMethod(c.Request.Method) != access.OpWrite {
			return
		}
		if status := c.Writer.Status(); status >= 200 && status < 300 {
			cache.Invalidate(c.Request.Context())
		}
	}
}
