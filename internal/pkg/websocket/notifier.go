package websocket

import (
	"strconv"
	"time"
)

// Topic names used across the application. Per-user topics are built with
// UserTopic.
const (
	TopicChat = "chat"
)

// UserTopic returns the private topic for a single user
func UserTopic(userID int64) string {
	return "user:" + strconv.FormatInt(userID, 10)
}

// Event is the envelope pushed to subscribers of a topic
type Event struct {
	Topic     string      `json:"topic"`
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// Notifier publishes real-time events to topic subscribers. Services depend
// on this interface rather than the hub so delivery can be swapped out.
type Notifier interface {
	Publish(topic string, eventType string, payload interface{})
}

// NoopNotifier discards all events. Used when real-time delivery is disabled.
type NoopNotifier struct{}

// Publish does nothing
func (NoopNotifier) Publish(topic string, eventType string, payload interface{}) {}
