package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestClient(userID int64, topics ...string) *Client {
	return &Client{
		send:   make(chan []byte, 8),
		userID: userID,
		topics: topics,
	}
}

func waitForEvent(t *testing.T, ch chan []byte) *Event {
	t.Helper()
	select {
	case data := <-ch:
		var event Event
		if err := json.Unmarshal(data, &event); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		return &event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestHubPublishReachesTopicSubscribers(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()

	chatClient := newTestClient(1, TopicChat)
	otherClient := newTestClient(2, UserTopic(2))
	hub.register <- chatClient
	hub.register <- otherClient

	// Wait until both registrations are processed
	deadline := time.Now().Add(time.Second)
	for hub.GetClientsCount(TopicChat) == 0 || hub.GetClientsCount(UserTopic(2)) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("clients never registered")
		}
		time.Sleep(time.Millisecond)
	}

	hub.Publish(TopicChat, "chat.message", map[string]string{"content": "hello"})

	event := waitForEvent(t, chatClient.send)
	if event.Topic != TopicChat {
		t.Errorf("expected topic %q, got %q", TopicChat, event.Topic)
	}
	if event.Type != "chat.message" {
		t.Errorf("expected type chat.message, got %q", event.Type)
	}

	select {
	case <-otherClient.send:
		t.Error("client on another topic received the event")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubPublishToUserTopic(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()

	client := newTestClient(7, TopicChat, UserTopic(7))
	hub.register <- client

	deadline := time.Now().Add(time.Second)
	for hub.GetClientsCount(UserTopic(7)) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(time.Millisecond)
	}

	hub.Publish(UserTopic(7), "mentorship.accepted", map[string]int64{"requestId": 42})

	event := waitForEvent(t, client.send)
	if event.Topic != UserTopic(7) {
		t.Errorf("expected topic %q, got %q", UserTopic(7), event.Topic)
	}
}

func TestHubUnregisterClosesSendChannel(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()

	client := newTestClient(3, TopicChat)
	hub.register <- client

	deadline := time.Now().Add(time.Second)
	for hub.GetClientsCount(TopicChat) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(time.Millisecond)
	}

	hub.unregister <- client

	select {
	case _, ok := <-client.send:
		if ok {
			t.Error("expected send channel to be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel never closed")
	}

	if count := hub.GetClientsCount(TopicChat); count != 0 {
		t.Errorf("expected 0 clients after unregister, got %d", count)
	}
}

func TestUserTopic(t *testing.T) {
	if got := UserTopic(15); got != "user:15" {
		t.Errorf("expected user:15, got %q", got)
	}
}
