package models

import "time"

// Well-known setting keys
const (
	SettingMaintenanceMode = "maintenance_mode"
	SettingMaxUsers        = "max_users"
	SettingSiteName        = "site_name"
	SettingWelcomeMessage  = "welcome_message"
)

// SiteSetting is a single key-value site configuration entry.
// Values are stored as strings; callers parse them with the typed
// getters on the settings service.
type SiteSetting struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedBy string    `gorm:"type:uuid" json:"updated_by"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedAt time.Time `json:"created_at"`
}
