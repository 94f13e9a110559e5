package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
	RoleBot   = "bot"
)

// User statuses
const (
	StatusActive = "active"
	StatusKicked = "kicked"
	StatusBanned = "banned"
)

// User represents a ChatWii account (standard users, admins and bots)
type User struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	Nickname string `gorm:"uniqueIndex;not null" json:"nickname"`
	Role     string `gorm:"not null;default:user;index" json:"role"`
	Status   string `gorm:"not null;default:active;index" json:"status"`

	// Profile data shown in the user list
	Gender    string `json:"gender"`
	Age       int    `json:"age"`
	Country   string `json:"country"`
	AvatarURL string `json:"avatar_url"`

	// Admin accounts authenticate with a password; regular users are
	// anonymous sessions issued by the hosted auth layer.
	PasswordHash *string `gorm:"type:text" json:"-"`

	// Presence tracking
	IsOnline     bool       `gorm:"default:false;index" json:"is_online"`
	LastActiveAt *time.Time `json:"last_active_at"`
	LastSeenIP   string     `json:"-"`

	// Set when a moderator kicks the user; cleared on next login
	KickedAt *time.Time `json:"kicked_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID primary key when none is set
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// IsAdmin reports whether the account has admin privileges
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Ban represents a moderation ban against a user and/or an IP address.
// A nil ExpiresAt means the ban is permanent.
type Ban struct {
	ID     string  `gorm:"primaryKey;type:uuid" json:"id"`
	UserID *string `gorm:"type:uuid;index" json:"user_id,omitempty"`
	User   *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`

	IPAddress string `gorm:"index" json:"ip_address,omitempty"`
	Reason    string `gorm:"type:text" json:"reason"`
	BannedBy  string `gorm:"type:uuid;not null" json:"banned_by"`

	ExpiresAt *time.Time `gorm:"index" json:"expires_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID primary key when none is set
func (b *Ban) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// IsActive reports whether the ban is still in effect
func (b *Ban) IsActive(now time.Time) bool {
	return b.ExpiresAt == nil || b.ExpiresAt.After(now)
}

// Report statuses
const (
	ReportStatusPending   = "pending"
	ReportStatusResolved  = "resolved"
	ReportStatusDismissed = "dismissed"
)

// Report is a user-submitted report against another user, reviewed by admins
type Report struct {
	ID         string  `gorm:"primaryKey;type:uuid" json:"id"`
	ReporterID string  `gorm:"type:uuid;not null;index" json:"reporter_id"`
	ReportedID string  `gorm:"type:uuid;not null;index" json:"reported_id"`
	Reason     string  `gorm:"type:text;not null" json:"reason"`
	Status     string  `gorm:"not null;default:pending;index" json:"status"`
	ReviewedBy *string `gorm:"type:uuid" json:"reviewed_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID primary key when none is set
func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
