package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Avatar is a standard avatar image offered to users during signup,
// partitioned by gender. The image itself lives in S3 under StorageKey.
type Avatar struct {
	ID         string    `gorm:"primaryKey;type:uuid" json:"id"`
	Gender     string    `gorm:"not null;index" json:"gender"`
	URL        string    `gorm:"not null" json:"url"`
	StorageKey string    `gorm:"not null" json:"-"`
	UploadedBy string    `gorm:"type:uuid" json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID primary key when none is set
func (a *Avatar) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}
