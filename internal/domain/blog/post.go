package blog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const MaxTitleLen = 255

type Post struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Title string `gorm:"size:255;not null" json:"title"`
	Text  string `gorm:"type:text;not null" json:"text"`

	Categories []PostCategory `gorm:"many2many:posts_categories;constraint:OnDelete:CASCADE;" json:"categories"`

	SerieID *string `gorm:"type:uuid;index" json:"serie"`

	Published bool `gorm:"not null;default:false" json:"published"`

	CreatedAt time.Time `gorm:"index" json:"created"`
	UpdatedAt time.Time `json:"updated"`
}

func (Post) TableName() string {
	return "posts"
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// PostCategoryLink is the join row between a post and one of its categories.
type PostCategoryLink struct {
	PostID         string `gorm:"type:uuid;primaryKey"`
	PostCategoryID string `gorm:"type:uuid;primaryKey;index"`
}

func (PostCategoryLink) TableName() string {
	return "posts_categories"
}

// Validate checks title/text and the category invariant. categoryIDs is the
// set the post will carry after the write.
func (p *Post) Validate(categoryIDs []string) error {
	if err := requireText("title", p.Title, MaxTitleLen); err != nil {
		return err
	}
	if err := requireText("text", p.Text, 0); err != nil {
		return err
	}
	if len(categoryIDs) == 0 {
		return &ValidationError{Field: "categories", Message: "at least one category is required"}
	}
	return nil
}

// CategoryIDs returns the ids of the loaded categories in load order.
func (p *Post) CategoryIDs() []string {
	ids := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}

// NextUpdated returns the updated timestamp for a write at now. The result is
// always strictly after created, even when the clock has not advanced past the
// storage precision.
func NextUpdated(created, now time.Time) time.Time {
	now = now.Truncate(time.Microsecond)
	if !now.After(created) {
		return created.Add(time.Microsecond)
	}
	return now
}
