package users

import (
	"net/http"

	"blog-api/database"
	"blog-api/internal/app/http/middleware"
	"blog-api/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// GET /me
func GetCurrentUser(c *gin.Context) {
	id := middleware.IdentityFrom(c)
	if !id.Authenticated {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user users.User
	if err := database.DB.WithContext(c.Request.Context()).
		Where("id = ?", id.UserID).
		First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	// The stored role wins over the one baked into the token.
	id.Role = user.Role
	c.JSON(http.StatusOK, BuildMeResponse(user, id))
}
