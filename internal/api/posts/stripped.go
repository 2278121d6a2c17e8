package posts

import (
	"encoding/json"
	"net/http"

	"blog-api/database"
	"blog-api/internal/api/httperr"
	"blog-api/internal/domain/blog"
	"blog-api/internal/infra/cache"

	"github.com/gin-gonic/gin"
)

const jsonContentType = "application/json; charset=utf-8"

// ------------------------------
// GET /stripped-post
// ?after=&before=&category_id=&category_id=&search=&count=&asc=
// ------------------------------
func ListStripped(c *gin.Context) {
	query := c.Request.URL.Query()
	filter, err := ParseStrippedFilter(query)
	if err != nil {
		httperr.Write(c, err, notFound, "Failed to load posts")
		return
	}

	ctx := c.Request.Context()
	key := "list?" + query.Encode()
	if body, ok := cache.Get(ctx, key); ok {
		c.Header("X-Cache", "HIT")
		c.Data(http.StatusOK, jsonContentType, body)
		return
	}

	// Taken before the query so a write that commits meanwhile keeps this
	// result out of the cache.
	gen := cache.Generation(ctx)

	var list []blog.Post
	if err := filter.Apply(postsQuery(database.DB.WithContext(ctx))).Find(&list).Error; err != nil {
		httperr.Write(c, err, notFound, "Failed to load posts")
		return
	}

	out := make([]StrippedPostDTO, 0, len(list))
	for _, p := range list {
		out = append(out, toStrippedPostDTO(p))
	}
	body, err := json.Marshal(out)
	if err != nil {
		httperr.Write(c, err, notFound, "Failed to encode posts")
		return
	}
	cache.Set(ctx, gen, key, body)

	c.Header("X-Cache", "MISS")
	c.Data(http.StatusOK, jsonContentType, body)
}

// ------------------------------
// GET /stripped-post/:id
// ------------------------------
func GetStripped(c *gin.Context) {
	id, ok := httperr.PathID(c, notFound)
	if !ok {
		return
	}

	p, err := loadPost(database.DB.WithContext(c.Request.Context()), id)
	if err != nil {
		httperr.Write(c, err, notFound, "Failed to load post")
		return
	}
	c.JSON(http.StatusOK, toStrippedPostDTO(p))
}
