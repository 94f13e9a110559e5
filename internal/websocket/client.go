package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/chatwii/backend/internal/logger"
	"github.com/coder/websocket"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Maximum message size allowed from peer
	maxMessageSize = 64 * 1024 // 64KB

	// Send buffer size
	sendBufferSize = 64
)

// Client represents a single WebSocket connection
type Client struct {
	conn *websocket.Conn
	hub  *Hub

	userID   string
	nickname string

	// Buffered channel of outbound messages
	send chan []byte

	ConnectedAt time.Time
	RemoteAddr  string

	ctx    context.Context
	cancel context.CancelFunc

	// Serializes frame writes between the pump and WriteNow
	writeMu sync.Mutex

	mu     sync.Mutex
	closed bool
}

// NewClient creates a client for an accepted connection
func NewClient(hub *Hub, conn *websocket.Conn, userID, nickname string) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	conn.SetReadLimit(maxMessageSize)
	return &Client{
		conn:        conn,
		hub:         hub,
		userID:      userID,
		nickname:    nickname,
		send:        make(chan []byte, sendBufferSize),
		ConnectedAt: time.Now(),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// UserID returns the authenticated user id for this connection
func (c *Client) UserID() string {
	return c.userID
}

// TrySend queues a message without blocking. Returns false when the
// client's buffer is full or the connection is closing.
func (c *Client) TrySend(msg *Message) bool {
	data, err := json.Marshal(msg)
	if err != nil {
		return false
	}

	select {
	case c.send <- data:
		return true
	case <-c.ctx.Done():
		return false
	default:
		// Slow consumer: drop the connection rather than block the hub
		c.Close()
		return false
	}
}

// WriteNow delivers a message on the connection before returning,
// bypassing the send queue. Used for notices that must reach the peer
// ahead of a disconnect.
func (c *Client) WriteNow(msg *Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	writeCtx, cancel := context.WithTimeout(c.ctx, writeWait)
	defer cancel()

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.Write(writeCtx, websocket.MessageText, data)
}

// Close tears down the connection once
func (c *Client) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.cancel()
	_ = c.conn.Close(websocket.StatusNormalClosure, "closing")
}

// WritePump drains the send channel into the connection.
// Runs on its own goroutine, one per connection.
func (c *Client) WritePump() {
	defer c.Close()

	for {
		select {
		case <-c.ctx.Done():
			return
		case data, ok := <-c.send:
			if !ok {
				return
			}
			writeCtx, cancel := context.WithTimeout(c.ctx, writeWait)
			c.writeMu.Lock()
			err := c.conn.Write(writeCtx, websocket.MessageText, data)
			c.writeMu.Unlock()
			cancel()
			if err != nil {
				logger.Log.Debug("websocket write failed",
					logger.WithUserID(c.userID), zap.Error(err))
				return
			}
		}
	}
}

// ReadPump consumes inbound frames. Clients only send pings; everything
// else is ignored. Unregisters from the hub when the connection drops.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.Close()
	}()

	for {
		_, data, err := c.conn.Read(c.ctx)
		if err != nil {
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.Type == MessageTypePing {
			c.TrySend(NewMessage(MessageTypePong, nil))
		}
	}
}
