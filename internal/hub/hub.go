package hub

import (
	"encoding/json"
	"sync"
)

// Topics events are published under.
const (
	TopicCatalog = "catalog"
)

// Event types published on TopicCatalog.
const (
	EventGameCardCreated = "gamecard.created"
	EventGameCardUpdated = "gamecard.updated"
	EventGameCardDeleted = "gamecard.deleted"
	EventGameCardRated   = "gamecard.rated"
)

// Event represents a real-time event to be sent to clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Client is a subscriber's channel; the SSE handler drains it.
type Client chan []byte

// Hub fans events out to every client subscribed to a topic.
type Hub struct {
	topics map[string]map[Client]bool
	mu     sync.RWMutex
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		topics: make(map[string]map[Client]bool),
	}
}

// Subscribe adds a client to a topic.
func (h *Hub) Subscribe(topic string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.topics[topic]; !ok {
		h.topics[topic] = make(map[Client]bool)
	}
	h.topics[topic][client] = true
}

// Unsubscribe removes a client from a topic and closes its channel.
func (h *Hub) Unsubscribe(topic string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.topics[topic]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client) // Signals the SSE handler to stop.
			if len(clients) == 0 {
				delete(h.topics, topic)
			}
		}
	}
}

// Subscribers returns the number of clients on a topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// Broadcast sends an event to all clients of a topic.
// A client whose buffer is full misses the event; publishers never block.
func (h *Hub) Broadcast(topic string, event Event) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.topics[topic]
	if !ok {
		return nil
	}

	messageBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}

	for client := range clients {
		select {
		case client <- messageBytes:
		default:
		}
	}
	return nil
}
