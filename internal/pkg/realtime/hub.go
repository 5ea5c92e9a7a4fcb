package realtime

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Event types pushed to subscribers.
const (
	EventMessageNew     = "message.new"
	EventMessagesSeen   = "messages.seen"
	EventHistoryCleared = "history.cleared"
	EventChatListUpdate = "chatlist.update"
	EventChatDeleted    = "chat.deleted"
)

// Hub maintains the set of active clients, keyed by subscription topic, and
// pushes events to them. A topic is either one chat's message stream or one
// user's chat list stream.
type Hub struct {
	// Registered clients organized by topic
	clients map[string]map[*Client]bool

	// Channel for outbound events
	broadcast chan *Event

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	mu sync.RWMutex

	logger zerolog.Logger
}

// Event represents one push to a topic's subscribers
type Event struct {
	// Type of event: message.new, messages.seen, history.cleared,
	// chatlist.update, chat.deleted
	Type string `json:"type"`

	// Topic the event is addressed to; not serialized
	Topic string `json:"-"`

	// ChatID of the chat the event concerns, when applicable
	ChatID string `json:"chatId,omitempty"`

	// Payload carries the event body (a message, a chat list, ...)
	Payload any `json:"payload,omitempty"`

	// Timestamp when the event was produced
	Timestamp time.Time `json:"timestamp"`
}

// ChatTopic is the subscription key for one chat's message stream
func ChatTopic(chatID string) string {
	return "chat:" + chatID
}

// UserTopic is the subscription key for one user's chat list stream
func UserTopic(userID int64) string {
	return fmt.Sprintf("user:%d", userID)
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

// Run starts the hub, handling client registrations and event delivery
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.deliver(event)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.topic]; !ok {
		h.clients[client.topic] = make(map[*Client]bool)
	}
	h.clients[client.topic][client] = true

	h.logger.Info().
		Str("topic", client.topic).
		Int64("userID", client.userID).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[client.topic]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client.send)

			if len(clients) == 0 {
				delete(h.clients, client.topic)
			}

			h.logger.Info().
				Str("topic", client.topic).
				Int64("userID", client.userID).
				Msg("Client unregistered")
		}
	}
}

func (h *Hub) deliver(event *Event) {
	h.mu.RLock()
	clients, ok := h.clients[event.Topic]
	if !ok {
		h.mu.RUnlock()
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		h.mu.RUnlock()
		h.logger.Error().
			Err(err).
			Str("topic", event.Topic).
			Msg("Failed to marshal event")
		return
	}

	var slow []*Client
	for client := range clients {
		select {
		case client.send <- data:
		default:
			// Client's send buffer is full, they might be slow or
			// disconnected; drop them
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	// Unregister directly: deliver runs on the hub goroutine, so going
	// through the unregister channel would block against ourselves.
	for _, client := range slow {
		h.unregisterClient(client)
	}

	h.logger.Debug().
		Str("topic", event.Topic).
		Str("eventType", event.Type).
		Int("clientCount", len(clients)).
		Msg("Event delivered")
}

// Publish queues an event for delivery to the topic's subscribers. It never
// blocks the caller: when the hub is saturated the event is dropped, since
// every stream can be rebuilt from storage on reconnect.
func (h *Hub) Publish(event *Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn().
			Str("topic", event.Topic).
			Str("eventType", event.Type).
			Msg("Hub saturated, event dropped")
	}
}

// HasListeners reports whether any client is subscribed to the topic
func (h *Hub) HasListeners(topic string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients[topic]) > 0
}

// ClientCount returns the number of subscribers on a topic
func (h *Hub) ClientCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients[topic])
}
