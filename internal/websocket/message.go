package websocket

import "time"

// Message types pushed to connected clients
const (
	MessageTypeSystem = "system"
	MessageTypePing   = "ping"
	MessageTypePong   = "pong"
	MessageTypeError  = "error"

	// Moderation events
	MessageTypeUserKicked   = "user_kicked"
	MessageTypeUserBanned   = "user_banned"
	MessageTypeUserUnbanned = "user_unbanned"

	// Configuration events
	MessageTypeSettingsUpdated = "settings_updated"
)

// Message is the envelope for everything sent over a connection
type Message struct {
	Type      string         `json:"type"`
	Payload   map[string]any `json:"payload,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// NewMessage creates a message stamped with the current time
func NewMessage(msgType string, payload map[string]any) *Message {
	return &Message{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}
