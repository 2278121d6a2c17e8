package middleware

import (
	"net/http"
	"strings"

	"blog-api/internal/domain/access"
	"blog-api/internal/infra/token"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Authenticate resolves the caller from an optional bearer token. A request
// without an Authorization header continues as anonymous; a malformed or
// invalid token is rejected.
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Set(identityKey, access.Anonymous)
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || strings.TrimSpace(tokenString) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Bearer token malformed"})
			return
		}

		id, err := token.Parse(strings.TrimSpace(tokenString))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(identityKey, id)
		c.Set("email", id.Email)
		c.Set("role", id.Role)
		c.Set("user_id", id.UserID)
		c.Next()
	}
}

// IdentityFrom returns the identity set by Authenticate, or Anonymous.
func IdentityFrom(c *gin.Context) access.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(access.Identity); ok {
			return id
		}
	}
	return access.Anonymous
}

// RequirePermission applies access.Can to the request method. Anonymous
// callers get 401, authenticated callers without the right get 403.
func RequirePermission() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := IdentityFrom(c)
		if access.Can(access.OperationForMethod(c.Request.Method), id) {
			c.Next()
			return
		}
		if !id.Authenticated {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication credentials were not provided"})
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	}
}

// RequireAuthenticated rejects anonymous callers.
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IdentityFrom(c).Authenticated {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
			return
		}
		c.Next()
	}
}
