package routes

import (
	"blog-api/config"
	authapi "blog-api/internal/api/auth"
	"blog-api/internal/api/categories"
	"blog-api/internal/api/posts"
	"blog-api/internal/api/series"
	"blog-api/internal/api/users"
	"blog-api/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.POST("/login", authapi.Login)
	if config.GoogleEnabled() {
		r.GET("/auth/google", authapi.GoogleStart)
		r.GET("/auth/google/callback", authapi.GoogleCallback)
	}

	r.GET("/me", middleware.Authenticate(), middleware.RequireAuthenticated(), users.GetCurrentUser)

	// Content: anyone reads, admins write. Successful writes drop cached listings.
	content := r.Group("/")
	content.Use(
		middleware.Authenticate(),
		middleware.RequirePermission(),
		middleware.InvalidateListingCache(),
	)

	category := content.Group("/category", middleware.SanitizeJSONStrings())
	category.GET("", categories.List)
	category.POST("", categories.Create)
	category.GET("/:id", categories.Get)
	category.PUT("/:id", categories.Update)
	category.PATCH("/:id", categories.Patch)
	category.DELETE("/:id", categories.Delete)

	serie := content.Group("/serie", middleware.SanitizeJSONStrings())
	serie.GET("", series.List)
	serie.POST("", series.Create)
	serie.GET("/:id", series.Get)
	serie.PUT("/:id", series.Update)
	serie.PATCH("/:id", series.Patch)
	serie.DELETE("/:id", series.Delete)

	// Post bodies are markdown and stay as written; they are sanitized on render.
	post := content.Group("/post")
	post.GET("", posts.List)
	post.POST("", posts.Create)
	post.GET("/:id", posts.Get)
	post.PUT("/:id", posts.Update)
	post.PATCH("/:id", posts.Patch)
	post.DELETE("/:id", posts.Delete)

	content.GET("/stripped-post", posts.ListStripped)
	content.GET("/stripped-post/:id", posts.GetStripped)
}
