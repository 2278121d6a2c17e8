package blog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MaxCategoryNameLen = 32
	MaxColorLen        = 32
	DefaultColor       = "grey"
)

type PostCategory struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	CategoryName string  `gorm:"size:32;not null;uniqueIndex:idx_post_categories_name" json:"category_name"`
	Description  *string `gorm:"type:text" json:"description"`
	Color        string  `gorm:"size:32;not null;default:'grey'" json:"color"`

	CreatedAt time.Time `json:"created"`
}

func (PostCategory) TableName() string {
	return "post_categories"
}

func (c *PostCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Color == "" {
		c.Color = DefaultColor
	}
	return nil
}

// Validate checks the fields a client controls.
func (c *PostCategory) Validate() error {
	if err := requireText("category_name", c.CategoryName, MaxCategoryNameLen); err != nil {
		return err
	}
	if c.Color != "" {
		if err := maxLen("color", c.Color, MaxColorLen); err != nil {
			return err
		}
	}
	return nil
}
