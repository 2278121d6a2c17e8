package posts

import (
	"net/http"

	"blog-api/database"
	"blog-api/internal/api/httperr"
	"blog-api/internal/domain/blog"
	"blog-api/internal/infra/markdown"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const notFound = "Post not found"

// ------------------------------
// GET /post?count=N
// ------------------------------
func List(c *gin.Context) {
	count, err := ParseCount(c.Query("count"))
	if err != nil {
		httperr.Write(c, err, notFound, "Failed to load posts")
		return
	}

	var list []blog.Post
	err = withLimit(postsQuery(database.DB.WithContext(c.Request.Context())), count).
		Order("posts.created_at ASC").
		Order("posts.id ASC").
		Find(&list).Error
	if err != nil {
		httperr.Write(c, err, notFound, "Failed to load posts")
		return
	}

	out := make([]PostDTO, 0, len(list))
	for _, p := range list {
		out = append(out, toPostDTO(p))
	}
	c.JSON(http.StatusOK, out)
}

// ------------------------------
// GET /post/:id  (adds the rendered body)
// ------------------------------
func Get(c *gin.Context) {
	id, ok := httperr.PathID(c, notFound)
	if !ok {
		return
	}

	p, err := loadPost(database.DB.WithContext(c.Request.Context()), id)
	if err != nil {
		httperr.Write(c, err, notFound, "Failed to load post")
		return
	}

	out := toPostDTO(p)
	if out.TextHTML, err = markdown.ToHTML(p.Text); err != nil {
		httperr.Write(c, err, notFound, "Failed to render post")
		return
	}
	c.JSON(http.StatusOK, out)
}

// ------------------------------
// POST /post
// ------------------------------
func Create(c *gin.Context) {
	var req PostInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err.Error())
		return
	}

	var p blog.Post
	ids, err := req.apply(&p, false)
	if err != nil {
		httperr.Write(c, err, notFound, "Failed to create post")
		return
	}

	var saved blog.Post
	err = database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := checkReferences(tx, ids, p.SerieID); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&p).Error; err != nil {
			return err
		}
		if err := linkCategories(tx, p.ID, ids); err != nil {
			return err
		}
		saved, err = loadPost(tx, p.ID)
		return err
	})
	if err != nil {
		httperr.Write(c, err, notFound, "Failed to create post")
		return
	}
	c.JSON(http.StatusCreated, toPostDTO(saved))
}

// Update handles PUT /post/:id.
func Update(c *gin.Context) { update(c, false) }

// Patch handles PATCH /post/:id.
func Patch(c *gin.Context) { update(c, true) }

func update(c *gin.Context, partial bool) {
	id, ok := httperr.PathID(c, notFound)
	if !ok {
		return
	}

	var req PostInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err.Error())
		return
	}

	var saved blog.Post
	err := database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		p, err := loadPost(tx, id)
		if err != nil {
			return err
		}
		ids, err := req.apply(&p, partial)
		if err != nil {
			return err
		}
		if err := checkReferences(tx, ids, p.SerieID); err != nil {
			return err
		}

		// created stays as stored; updated always moves past it.
		p.UpdatedAt = blog.NextUpdated(p.CreatedAt, blog.Now())
		if err := tx.Model(&blog.Post{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
			"title":      p.Title,
			"text":       p.Text,
			"serie_id":   p.SerieID,
			"published":  p.Published,
			"updated_at": p.UpdatedAt,
		}).Error; err != nil {
			return err
		}

		if req.Categories != nil {
			if err := tx.Where("post_id = ?", p.ID).Delete(&blog.PostCategoryLink{}).Error; err != nil {
				return err
			}
			if err := linkCategories(tx, p.ID, ids); err != nil {
				return err
			}
		}

		saved, err = loadPost(tx, p.ID)
		return err
	})
	if err != nil {
		httperr.Write(c, err, notFound, "Failed to update post")
		return
	}
	c.JSON(http.StatusOK, toPostDTO(saved))
}

// ------------------------------
// DELETE /post/:id
// ------------------------------
func Delete(c *gin.Context) {
	id, ok := httperr.PathID(c, notFound)
	if !ok {
		return
	}

	err := database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&blog.PostCategoryLink{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&blog.Post{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		httperr.Write(c, err, notFound, "Failed to delete post")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func loadPost(db *gorm.DB, id string) (blog.Post, error) {
	var p blog.Post
	err := postsQuery(db).First(&p, "posts.id = ?", id).Error
	return p, err
}

// checkReferences fails with a validation error when a category or the serie
// does not exist.
func checkReferences(tx *gorm.DB, categoryIDs []string, serieID *string) error {
	var found []string
	if err := tx.Model(&blog.PostCategory{}).Where("id IN ?", categoryIDs).Pluck("id", &found).Error; err != nil {
		return err
	}
	if len(found) != len(categoryIDs) {
		have := make(map[string]bool, len(found))
		for _, id := range found {
			have[id] = true
		}
		for _, id := range categoryIDs {
			if !have[id] {
				return blog.Invalid("categories", "invalid pk %q - object does not exist", id)
			}
		}
	}

	if serieID != nil {
		var n int64
		if err := tx.Model(&blog.Serie{}).Where("id = ?", *serieID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return blog.Invalid("serie", "invalid pk %q - object does not exist", *serieID)
		}
	}
	return nil
}

func linkCategories(tx *gorm.DB, postID string, categoryIDs []string) error {
	links := make([]blog.PostCategoryLink, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		links = append(links, blog.PostCategoryLink{PostID: postID, PostCategoryID: id})
	}
	return tx.Create(&links).Error
}
