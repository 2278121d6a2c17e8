package posts

import (
	"strings"

	"blog-api/internal/api/optional"
	"blog-api/internal/domain/blog"

	"github.com/google/uuid"
)

// PostInput is the body of POST, PUT and PATCH /post.
type PostInput struct {
	Title      *string         `json:"title"`
	Text       *string         `json:"text"`
	Categories *[]string       `json:"categories"`
	Serie      optional.String `json:"serie"`
	Published  *bool           `json:"published"`
}

// apply copies the input onto p and returns the category ids the post will
// carry. On a partial update absent categories keep the loaded ones.
func (in PostInput) apply(p *blog.Post, partial bool) ([]string, error) {
	switch {
	case in.Title != nil:
		p.Title = strings.TrimSpace(*in.Title)
	case !partial:
		return nil, blog.Invalid("title", "this field is required")
	}

	switch {
	case in.Text != nil:
		p.Text = strings.TrimSpace(*in.Text)
	case !partial:
		return nil, blog.Invalid("text", "this field is required")
	}

	var ids []string
	switch {
	case in.Categories != nil:
		var err error
		if ids, err = normalizeIDs("categories", *in.Categories); err != nil {
			return nil, err
		}
	case !partial:
		return nil, blog.Invalid("categories", "this field is required")
	default:
		ids = p.CategoryIDs()
	}

	if in.Serie.Set {
		p.SerieID = nil
		if in.Serie.Value != nil && strings.TrimSpace(*in.Serie.Value) != "" {
			id, err := uuid.Parse(strings.TrimSpace(*in.Serie.Value))
			if err != nil {
				return nil, blog.Invalid("serie", "%q is not a valid UUID", *in.Serie.Value)
			}
			s := id.String()
			p.SerieID = &s
		}
	}

	if in.Published != nil {
		p.Published = *in.Published
	}

	if err := p.Validate(ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func normalizeIDs(field string, raw []string) ([]string, error) {
	ids := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, v := range raw {
		id, err := uuid.Parse(strings.TrimSpace(v))
		if err != nil {
			return nil, blog.Invalid(field, "%q is not a valid UUID", v)
		}
		if !seen[id.String()] {
			seen[id.String()] = true
			ids = append(ids, id.String())
		}
	}
	return ids, nil
}
