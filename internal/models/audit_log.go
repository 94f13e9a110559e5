package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Audit actions recorded by the admin API
const (
	AuditActionKickUser      = "kick_user"
	AuditActionBanUser       = "ban_user"
	AuditActionUnbanUser     = "unban_user"
	AuditActionResolveReport = "resolve_report"
	AuditActionUpdateSetting = "update_setting"
	AuditActionCreateBot     = "create_bot"
	AuditActionUpdateBot     = "update_bot"
	AuditActionDeleteBot     = "delete_bot"
	AuditActionAddWord       = "add_word"
	AuditActionRemoveWord    = "remove_word"
	AuditActionImportWords   = "import_words"
	AuditActionClearWords    = "clear_words"
	AuditActionUploadAvatar  = "upload_avatar"
	AuditActionDeleteAvatar  = "delete_avatar"
)

// AuditLog is an append-only record of an administrative action
type AuditLog struct {
	ID         string         `gorm:"primaryKey;type:uuid" json:"id"`
	ActorID    string         `gorm:"type:uuid;not null;index" json:"actor_id"`
	Action     string         `gorm:"not null;index" json:"action"`
	TargetType string         `json:"target_type,omitempty"`
	TargetID   string         `json:"target_id,omitempty"`
	Detail     map[string]any `gorm:"type:jsonb;serializer:json" json:"detail,omitempty"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
}

// BeforeCreate generates a UUID primary key when none is set
func (l *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
