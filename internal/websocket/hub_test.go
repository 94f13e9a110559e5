package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dialTestClient spins up a server that registers every accepted
// connection on the hub under userID, then dials it.
func dialTestClient(t *testing.T, hub *Hub, userID string) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			return
		}
		client := NewClient(hub, conn, userID, "tester")
		hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return hub.ConnectedUsers() == 1
	}, 2*time.Second, 10*time.Millisecond)

	return conn
}

func TestNotifyAndDisconnectDeliversNoticeBeforeClose(t *testing.T) {
	hub := NewHub()
	hub.Run()
	defer hub.Shutdown()

	conn := dialTestClient(t, hub, "user-1")
	defer conn.Close(websocket.StatusNormalClosure, "")

	hub.NotifyAndDisconnect("user-1", NewMessage(MessageTypeUserKicked, map[string]any{
		"reason": "spamming",
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// The kick notice arrives before the connection drops
	_, data, err := conn.Read(ctx)
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, MessageTypeUserKicked, msg.Type)
	assert.Equal(t, "spamming", msg.Payload["reason"])

	// The connection is closed right after delivery
	_, _, err = conn.Read(ctx)
	assert.Error(t, err)

	require.Eventually(t, func() bool {
		return hub.ConnectedUsers() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSendToUserReachesAllConnections(t *testing.T) {
	hub := NewHub()
	hub.Run()
	defer hub.Shutdown()

	conn := dialTestClient(t, hub, "user-1")
	defer conn.Close(websocket.StatusNormalClosure, "")

	hub.SendToUser("user-1", NewMessage(MessageTypeSettingsUpdated, map[string]any{
		"key": "site_name",
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, data, err := conn.Read(ctx)
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, MessageTypeSettingsUpdated, msg.Type)
}
