package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BotSettings holds behavior knobs for a bot account
type BotSettings struct {
	ResponseDelayMs int      `json:"response_delay_ms"`
	ActiveHours     []int    `json:"active_hours,omitempty"`
	Topics          []string `json:"topics,omitempty"`
}

// Bot represents an automated chat account managed by admins.
// The bot's visible profile (nickname, gender, age, country) lives on
// the linked User row; this row carries behavior configuration.
type Bot struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Interests StringArray  `gorm:"type:text[]" json:"interests"`
	Settings  *BotSettings `gorm:"type:jsonb;serializer:json" json:"settings,omitempty"`
	IsActive  bool         `gorm:"default:true;index" json:"is_active"`
	CreatedBy string       `gorm:"type:uuid" json:"created_by"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID primary key when none is set
func (b *Bot) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}
