package websocket

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Notification types pushed to the admin dashboard
const (
	NotificationTypeRequestCreated   = "approval_request.created"
	NotificationTypeRequestProcessed = "approval_request.processed"
)

// Notification represents a message sent over WebSocket
type Notification struct {
	Type    string      `json:"type"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Client represents a connected admin dashboard
type Client struct {
	AdminEmail string
	Conn       *websocket.Conn
}

// Hub maintains the set of connected admin dashboards and broadcasts
// approval workflow events to them
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
			}
			client.Conn.Close()
			h.mu.Unlock()
		}
	}
}

// Broadcast sends a notification to every connected admin dashboard
func (h *Hub) Broadcast(notification Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		client.Conn.WriteJSON(notification)
	}
}

// NotifyRequestCreated announces a newly submitted approval request
func (h *Hub) NotifyRequestCreated(requestData interface{}) {
	h.Broadcast(Notification{
		Type:    NotificationTypeRequestCreated,
		Message: "New approval request submitted",
		Data:    requestData,
	})
}

// NotifyRequestProcessed announces an approve/reject decision
func (h *Hub) NotifyRequestProcessed(requestData interface{}) {
	h.Broadcast(Notification{
		Type:    NotificationTypeRequestProcessed,
		Message: "Approval request processed",
		Data:    requestData,
	})
}
