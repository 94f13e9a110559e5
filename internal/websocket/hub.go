// Package websocket pushes moderation and configuration events to
// connected chat clients. Uses github.com/coder/websocket, the modern
// context-aware WebSocket library for Go.
package websocket

import (
	"context"
	"sync"
	"sync/atomic"
)

// Hub maintains the set of active clients and routes messages to them
type Hub struct {
	// Registered clients by user ID for targeted messaging
	clients map[string]map[*Client]struct{}

	// All clients for broadcasting
	allClients map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	unicast    chan *UnicastMessage

	mu sync.RWMutex

	metrics *Metrics

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Metrics tracks WebSocket statistics
type Metrics struct {
	TotalConnections  atomic.Int64
	ActiveConnections atomic.Int64
	MessagesSent      atomic.Int64
	Errors            atomic.Int64
}

// UnicastMessage is a message targeted at a specific user
type UnicastMessage struct {
	UserID  string
	Message *Message
}

// NewHub creates a hub; call Run to start it
func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		allClients: make(map[*Client]struct{}),
		register:   make(chan *Client, 16),
		unregister: make(chan *Client, 16),
		broadcast:  make(chan *Message, 64),
		unicast:    make(chan *UnicastMessage, 64),
		metrics:    &Metrics{},
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Run processes register/unregister/broadcast events until Shutdown
func (h *Hub) Run() {
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		for {
			select {
			case <-h.ctx.Done():
				h.closeAll()
				return
			case client := <-h.register:
				h.addClient(client)
			case client := <-h.unregister:
				h.removeClient(client)
			case msg := <-h.broadcast:
				h.sendToAll(msg)
			case um := <-h.unicast:
				h.sendToUser(um.UserID, um.Message)
			}
		}
	}()
}

// Shutdown stops the hub and disconnects every client
func (h *Hub) Shutdown() {
	h.cancel()
	h.wg.Wait()
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.ctx.Done():
	}
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.ctx.Done():
	}
}

// Broadcast queues a message for every connected client
func (h *Hub) Broadcast(msg *Message) {
	select {
	case h.broadcast <- msg:
	case <-h.ctx.Done():
	}
}

// SendToUser queues a message for every connection of one user
func (h *Hub) SendToUser(userID string, msg *Message) {
	select {
	case h.unicast <- &UnicastMessage{UserID: userID, Message: msg}:
	case <-h.ctx.Done():
	}
}

// NotifyAndDisconnect delivers msg to every connection of one user
// before closing them. The write is synchronous; queuing on the hub and
// then disconnecting could drop the notice while it sits in the send
// buffer, and a kicked or banned user must see why they were removed.
func (h *Hub) NotifyAndDisconnect(userID string, msg *Message) {
	h.mu.RLock()
	conns := make([]*Client, 0, len(h.clients[userID]))
	for client := range h.clients[userID] {
		conns = append(conns, client)
	}
	h.mu.RUnlock()

	for _, client := range conns {
		if err := client.WriteNow(msg); err == nil {
			h.metrics.MessagesSent.Add(1)
		} else {
			h.metrics.Errors.Add(1)
		}
	}
	h.DisconnectUser(userID)
}

// DisconnectUser force-closes every connection of one user, used after
// kicks and bans so the removed user drops off immediately.
func (h *Hub) DisconnectUser(userID string) {
	h.mu.RLock()
	conns := make([]*Client, 0, len(h.clients[userID]))
	for client := range h.clients[userID] {
		conns = append(conns, client)
	}
	h.mu.RUnlock()

	for _, client := range conns {
		client.Close()
	}
}

// ConnectedUsers returns the number of distinct users currently connected
func (h *Hub) ConnectedUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Stats returns a snapshot of hub metrics
func (h *Hub) Stats() map[string]int64 {
	return map[string]int64{
		"total_connections":  h.metrics.TotalConnections.Load(),
		"active_connections": h.metrics.ActiveConnections.Load(),
		"messages_sent":      h.metrics.MessagesSent.Load(),
		"errors":             h.metrics.Errors.Load(),
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]struct{})
	}
	h.clients[client.userID][client] = struct{}{}
	h.allClients[client] = struct{}{}

	h.metrics.TotalConnections.Add(1)
	h.metrics.ActiveConnections.Add(1)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.clients[client.userID]; ok {
		if _, ok := conns[client]; ok {
			delete(conns, client)
			if len(conns) == 0 {
				delete(h.clients, client.userID)
			}
			h.metrics.ActiveConnections.Add(-1)
		}
	}
	delete(h.allClients, client)
}

func (h *Hub) sendToAll(msg *Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.allClients {
		if client.TrySend(msg) {
			h.metrics.MessagesSent.Add(1)
		} else {
			h.metrics.Errors.Add(1)
		}
	}
}

func (h *Hub) sendToUser(userID string, msg *Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[userID] {
		if client.TrySend(msg) {
			h.metrics.MessagesSent.Add(1)
		} else {
			h.metrics.Errors.Add(1)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.allClients))
	for client := range h.allClients {
		clients = append(clients, client)
	}
	h.allClients = make(map[*Client]struct{})
	h.clients = make(map[string]map[*Client]struct{})
	h.mu.Unlock()

	for _, client := range clients {
		client.Close()
	}
}
