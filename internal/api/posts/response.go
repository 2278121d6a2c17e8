package posts

import (
	"time"

	"blog-api/internal/domain/blog"
)

// PostDTO is the full post. Categories and serie are referenced by id.
type PostDTO struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Text       string    `json:"text"`
	TextHTML   string    `json:"text_html,omitempty"`
	Categories []string  `json:"categories"`
	Serie      *string   `json:"serie"`
	Published  bool      `json:"published"`
	Created    time.Time `json:"created"`
	Updated    time.Time `json:"updated"`
}

// StrippedPostDTO is a post without its body.
type StrippedPostDTO struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Categories []string  `json:"categories"`
	Serie      *string   `json:"serie"`
	Published  bool      `json:"published"`
	Created    time.Time `json:"created"`
	Updated    time.Time `json:"updated"`
}

func toPostDTO(p blog.Post) PostDTO {
	return PostDTO{
		ID:         p.ID,
		Title:      p.Title,
		Text:       p.Text,
		Categories: p.CategoryIDs(),
		Serie:      p.SerieID,
		Published:  p.Published,
		Created:    p.CreatedAt.UTC(),
		Updated:    p.UpdatedAt.UTC(),
	}
}

func toStrippedPostDTO(p blog.Post) StrippedPostDTO {
	return StrippedPostDTO{
		ID:         p.ID,
		Title:      p.Title,
		Categories: p.CategoryIDs(),
		Serie:      p.SerieID,
		Published:  p.Published,
		Created:    p.CreatedAt.UTC(),
		Updated:    p.UpdatedAt.UTC(),
	}
}
