package series

import (
	"strings"

	"blog-api/internal/api/optional"
	"blog-api/internal/domain/blog"
)

type SerieInput struct {
	SerieName   *string         `json:"serie_name"`
	Description optional.String `json:"description"`
}

func (in SerieInput) apply(s *blog.Serie, partial bool) error {
	switch {
	case in.SerieName != nil:
		s.SerieName = strings.TrimSpace(*in.SerieName)
	case !partial:
		return blog.Invalid("serie_name", "this field is required")
	}
	if in.Description.Set {
		s.Description = in.Description.Text()
	}
	return s.Validate()
}
