package categories

import (
	"net/http"

	"blog-api/database"
	"blog-api/internal/api/httperr"
	"blog-api/internal/domain/blog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const notFound = "Category not found"

// ------------------------------
// GET /category
// ------------------------------
func List(c *gin.Context) {
	cats := make([]blog.PostCategory, 0)
	err := database.DB.WithContext(c.Request.Context()).
		Order("created_at ASC").
		Order("id ASC").
		Find(&cats).Error
	if err != nil {
		httperr.Write(c, err, notFound, "Failed to load categories")
		return
	}
	c.JSON(http.StatusOK, cats)
}

// ------------------------------
// GET /category/:id
// ------------------------------
func Get(c *gin.Context) {
	id, ok := httperr.PathID(c, notFound)
	if !ok {
		return
	}

	var cat blog.PostCategory
	if err := database.DB.WithContext(c.Request.Context()).First(&cat, "id = ?", id).Error; err != nil {
		httperr.Write(c, err, notFound, "Failed to load category")
		return
	}
	c.JSON(http.StatusOK, cat)
}

// ------------------------------
// POST /category
// ------------------------------
func Create(c *gin.Context) {
	var req CategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err.Error())
		return
	}

	var cat blog.PostCategory
	if err := req.apply(&cat, false); err != nil {
		httperr.Write(c, err, notFound, "Failed to create category")
		return
	}

	err := database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := ensureUniqueName(tx, cat.CategoryName, ""); err != nil {
			return err
		}
		return tx.Create(&cat).Error
	})
	if err != nil {
		httperr.Write(c, err, notFound, "Failed to create category")
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// Update handles PUT /category/:id.
func Update(c *gin.Context) { update(c, false) }

// Patch handles PATCH /category/:id.
func Patch(c *gin.Context) { update(c, true) }

func update(c *gin.Context, partial bool) {
	id, ok := httperr.PathID(c, notFound)
	if !ok {
		return
	}

	var req CategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err.Error())
		return
	}

	var cat blog.PostCategory
	err := database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&cat, "id = ?", id).Error; err != nil {
			return err
		}
		if err := req.apply(&cat, partial); err != nil {
			return err
		}
		if err := ensureUniqueName(tx, cat.CategoryName, cat.ID); err != nil {
			return err
		}
		return tx.Model(&cat).
			Select("category_name", "description", "color").
			Updates(&cat).Error
	})
	if err != nil {
		httperr.Write(c, err, notFound, "Failed to update category")
		return
	}
	c.JSON(http.StatusOK, cat)
}

// ------------------------------
// DELETE /category/:id
// Posts keep existing; they only lose the link to this category.
// ------------------------------
func Delete(c *gin.Context) {
	id, ok := httperr.PathID(c, notFound)
	if !ok {
		return
	}

	err := database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_category_id = ?", id).Delete(&blog.PostCategoryLink{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&blog.PostCategory{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		httperr.Write(c, err, notFound, "Failed to delete category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func ensureUniqueName(tx *gorm.DB, name, exceptID string) error {
	q := tx.Model(&blog.PostCategory{}).Where("category_name = ?", name)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return blog.Invalid("category_name", "post category with this category name already exists")
	}
	return nil
}
