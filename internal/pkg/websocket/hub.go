package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Hub maintains the set of active clients and broadcasts events to the
// clients subscribed to each topic. It satisfies Notifier.
type Hub struct {
	// Registered clients organized by topic
	clients map[string]map[*Client]bool

	// Channel for events to fan out
	broadcast chan *Event

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	// Logger for Hub operations
	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan *Event, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string]map[*Client]bool),
		logger:     logger,
	}
}

// Run starts the hub, handling client registrations and broadcasts
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.broadcastEvent(event)
		}
	}
}

// Publish queues an event for delivery to all subscribers of the topic.
// It never blocks the caller; services publish after their writes commit
// and must not stall on slow consumers.
func (h *Hub) Publish(topic string, eventType string, payload interface{}) {
	event := &Event{
		Topic:     topic,
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn().
			Str("topic", topic).
			Str("type", eventType).
			Msg("Broadcast queue full, event dropped")
	}
}

// registerClient subscribes a client to each of its topics
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, topic := range client.topics {
		if _, ok := h.clients[topic]; !ok {
			h.clients[topic] = make(map[*Client]bool)
		}
		h.clients[topic][client] = true
	}

	h.logger.Info().
		Int64("userID", client.userID).
		Strs("topics", client.topics).
		Msg("Client registered")
}

// unregisterClient removes a client from all of its topics and closes its
// send channel exactly once.
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	removed := false
	for _, topic := range client.topics {
		clients, ok := h.clients[topic]
		if !ok {
			continue
		}
		if _, ok := clients[client]; ok {
			delete(clients, client)
			removed = true

			// If no more clients on this topic, clean up
			if len(clients) == 0 {
				delete(h.clients, topic)
			}
		}
	}

	if removed {
		close(client.send)
		h.logger.Info().
			Int64("userID", client.userID).
			Strs("topics", client.topics).
			Msg("Client unregistered")
	}
}

// broadcastEvent fans an event out to every client subscribed to its topic
func (h *Hub) broadcastEvent(event *Event) {
	h.mu.RLock()

	clients, ok := h.clients[event.Topic]
	if !ok {
		h.mu.RUnlock()
		h.logger.Debug().
			Str("topic", event.Topic).
			Msg("No subscribers for broadcast")
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		h.mu.RUnlock()
		h.logger.Error().
			Err(err).
			Str("topic", event.Topic).
			Msg("Failed to marshal event for broadcast")
		return
	}

	// Collect slow clients and drop them after releasing the lock
	var stale []*Client
	for client := range clients {
		select {
		case client.send <- data:
		default:
			stale = append(stale, client)
		}
	}
	count := len(clients)
	h.mu.RUnlock()

	for _, client := range stale {
		h.unregisterClient(client)
	}

	h.logger.Debug().
		Str("topic", event.Topic).
		Str("type", event.Type).
		Int("clientCount", count).
		Msg("Event broadcasted")
}

// GetClientsCount returns the number of connected clients for a topic
func (h *Hub) GetClientsCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.clients[topic]; ok {
		return len(clients)
	}
	return 0
}
