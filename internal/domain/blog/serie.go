package blog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const MaxSerieNameLen = 32

type Serie struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	SerieName   string  `gorm:"size:32;not null" json:"serie_name"`
	Description *string `gorm:"type:text" json:"description"`

	Posts []Post `gorm:"foreignKey:SerieID;constraint:OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"created"`
}

func (Serie) TableName() string {
	return "series"
}

func (s *Serie) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

func (s *Serie) Validate() error {
	return requireText("serie_name", s.SerieName, MaxSerieNameLen)
}
