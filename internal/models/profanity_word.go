package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfanityWord is a single blocked word, partitioned by category.
// Word is always stored trimmed and lowercased. The composite unique
// index is the authoritative duplicate guard; the service-level
// existence check is only a fast-path UX optimization.
type ProfanityWord struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Word      string    `gorm:"not null;uniqueIndex:idx_profanity_word_category" json:"word"`
	Category  string    `gorm:"not null;uniqueIndex:idx_profanity_word_category;index" json:"category"`
	CreatedBy string    `gorm:"type:uuid" json:"created_by"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// BeforeCreate generates a UUID primary key when none is set
func (w *ProfanityWord) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return nil
}
