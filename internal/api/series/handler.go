package series

import (
	"net/http"

	"blog-api/database"
	"blog-api/internal/api/httperr"
	"blog-api/internal/domain/blog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const notFound = "Serie not found"

func List(c *gin.Context) {
	out := make([]blog.Serie, 0)
	err := database.DB.WithContext(c.Request.Context()).
		Order("created_at ASC").
		Order("id ASC").
		Find(&out).Error
	if err != nil {
		httperr.Write(c, err, notFound, "Failed to load series")
		return
	}
	c.JSON(http.StatusOK, out)
}

func Get(c *gin.Context) {
	id, ok := httperr.PathID(c, notFound)
	if !ok {
		return
	}
	var s blog.Serie
	if err := database.DB.WithContext(c.Request.Context()).First(&s, "id = ?", id).Error; err != nil {
		httperr.Write(c, err, notFound, "Failed to load serie")
		return
	}
	c.JSON(http.StatusOK, s)
}

func Create(c *gin.Context) {
	var req SerieInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err.Error())
		return
	}

	var s blog.Serie
	if err := req.apply(&s, false); err != nil {
		httperr.Write(c, err, notFound, "Failed to create serie")
		return
	}
	if err := database.DB.WithContext(c.Request.Context()).Create(&s).Error; err != nil {
		httperr.Write(c, err, notFound, "Failed to create serie")
		return
	}
	c.JSON(http.StatusCreated, s)
}

func Update(c *gin.Context) { update(c, false) }

func Patch(c *gin.Context) { update(c, true) }

func update(c *gin.Context, partial bool) {
	id, ok := httperr.PathID(c, notFound)
	if !ok {
		return
	}

	var req SerieInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err.Error())
		return
	}

	var s blog.Serie
	err := database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&s, "id = ?", id).Error; err != nil {
			return err
		}
		if err := req.apply(&s, partial); err != nil {
			return err
		}
		return tx.Model(&s).Select("serie_name", "description").Updates(&s).Error
	})
	if err != nil {
		httperr.Write(c, err, notFound, "Failed to update serie")
		return
	}
	c.JSON(http.StatusOK, s)
}

// ------------------------------
// DELETE /serie/:id
// Every post of the serie goes with it, in the same transaction.
// ------------------------------
func Delete(c *gin.Context) {
	id, ok := httperr.PathID(c, notFound)
	if !ok {
		return
	}

	var removed int64
	err := database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var s blog.Serie
		if err := tx.First(&s, "id = ?", id).Error; err != nil {
			return err
		}

		postIDs := tx.Model(&blog.Post{}).Select("id").Where("serie_id = ?", id)
		if err := tx.Where("post_id IN (?)", postIDs).Delete(&blog.PostCategoryLink{}).Error; err != nil {
			return err
		}

		res := tx.Where("serie_id = ?", id).Delete(&blog.Post{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected

		return tx.Delete(&s).Error
	})
	if err != nil {
		httperr.Write(c, err, notFound, "Failed to delete serie")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted", "deleted_posts": removed})
}
