// Package httperr maps domain and storage errors onto JSON error responses.
package httperr

import (
	"errors"
	"log/slog"
	"net/http"

	"blog-api/internal/domain/blog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Write answers the request for err. notFound names the missing entity
// ("Post not found"); action describes what failed ("Failed to create post").
func Write(c *gin.Context, err error, notFound, action string) {
	var ve *blog.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message, "field": ve.Field})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
	case errors.Is(err, gorm.ErrDuplicatedKey):
		c.JSON(http.StatusBadRequest, gin.H{"error": "a record with this value already exists"})
	default:
		slog.Error(action, "error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, gin.H{"error": action, "details": err.Error()})
	}
}

// BadRequest answers 400 with a plain message.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// PathID returns the :id path parameter when it is a well-formed UUID.
// Anything else cannot match a record, so it answers 404 directly.
func PathID(c *gin.Context, notFound string) (string, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
		return "", false
	}
	return id.String(), true
}
