package websocket

import (
	"sync"

	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event types pushed to the admin moderation feed
const (
	EventPropertySubmitted      = "property_submitted"
	EventAdvertisementSubmitted = "advertisement_submitted"
)

// Event is a message sent over the admin WebSocket feed
type Event struct {
	Type    string      `json:"type"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Client represents a connected admin WebSocket client
type Client struct {
	UserID primitive.ObjectID
	Conn   *websocket.Conn
}

// Hub maintains the set of connected admin clients and broadcasts
// moderation events to them
type Hub struct {
	clients    map[primitive.ObjectID]*Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[primitive.ObjectID]*Client),
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
			h.clients[client.UserID] = client
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.UserID]; ok {
				delete(h.clients, client.UserID)
			}
			client.Conn.Close()
			h.mu.Unlock()
		}
	}
}

// Broadcast sends an event to every connected admin
func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		client.Conn.WriteJSON(event)
	}
}

// NotifyPropertySubmitted announces a new listing waiting for moderation
func (h *Hub) NotifyPropertySubmitted(data interface{}) {
	h.Broadcast(Event{
		Type:    EventPropertySubmitted,
		Message: "New property listing awaiting approval",
		Data:    data,
	})
}

// NotifyAdvertisementSubmitted announces a new banner submission
func (h *Hub) NotifyAdvertisementSubmitted(data interface{}) {
	h.Broadcast(Event{
		Type:    EventAdvertisementSubmitted,
		Message: "New advertisement submission received",
		Data:    data,
	})
}
