package categories

import (
	"strings"

	"blog-api/internal/api/optional"
	"blog-api/internal/domain/blog"
)

// CategoryInput is the body of POST, PUT and PATCH /category. Absent fields
// leave the stored value alone; PUT and POST require category_name.
type CategoryInput struct {
	CategoryName *string         `json:"category_name"`
	Description  optional.String `json:"description"`
	Color        *string         `json:"color"`
}

func (in CategoryInput) apply(cat *blog.PostCategory, partial bool) error {
	switch {
	case in.CategoryName != nil:
		cat.CategoryName = strings.TrimSpace(*in.CategoryName)
	case !partial:
		return blog.Invalid("category_name", "this field is required")
	}

	if in.Description.Set {
		cat.Description = in.Description.Text()
	}

	if in.Color != nil {
		color := strings.TrimSpace(*in.Color)
		if color == "" {
			color = blog.DefaultColor
		}
		cat.Color = color
	}

	return cat.Validate()
}
