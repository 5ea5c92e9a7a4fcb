package realtime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(hub *Hub, topic string, userID int64, buffer int) *Client {
	return &Client{
		hub:    hub,
		send:   make(chan []byte, buffer),
		userID: userID,
		topic:  topic,
		logger: zerolog.Nop(),
	}
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(zerolog.Nop())
	go hub.Run()
	return hub
}

func registerAndWait(t *testing.T, hub *Hub, client *Client) {
	t.Helper()
	hub.register <- client
	require.Eventually(t, func() bool {
		return hub.HasListeners(client.topic)
	}, time.Second, 5*time.Millisecond)
}

func receiveEvent(t *testing.T, client *Client) *Event {
	t.Helper()
	select {
	case data, ok := <-client.send:
		require.True(t, ok, "send channel closed")
		var event Event
		require.NoError(t, json.Unmarshal(data, &event))
		return &event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestTopics(t *testing.T) {
	assert.Equal(t, "chat:1_2", ChatTopic("1_2"))
	assert.Equal(t, "user:7", UserTopic(7))
}

func TestHubDelivery(t *testing.T) {
	t.Run("delivers to every subscriber of the topic", func(t *testing.T) {
		hub := startHub(t)
		topic := ChatTopic("1_2")

		first := newTestClient(hub, topic, 1, 4)
		second := newTestClient(hub, topic, 2, 4)
		registerAndWait(t, hub, first)
		registerAndWait(t, hub, second)
		require.Equal(t, 2, hub.ClientCount(topic))

		hub.Publish(&Event{
			Type:   EventMessageNew,
			Topic:  topic,
			ChatID: "1_2",
		})

		for _, client := range []*Client{first, second} {
			event := receiveEvent(t, client)
			assert.Equal(t, EventMessageNew, event.Type)
			assert.Equal(t, "1_2", event.ChatID)
			assert.False(t, event.Timestamp.IsZero())
		}
	})

	t.Run("topics are isolated", func(t *testing.T) {
		hub := startHub(t)

		chatClient := newTestClient(hub, ChatTopic("1_2"), 1, 4)
		listClient := newTestClient(hub, UserTopic(1), 1, 4)
		registerAndWait(t, hub, chatClient)
		registerAndWait(t, hub, listClient)

		hub.Publish(&Event{Type: EventChatListUpdate, Topic: UserTopic(1)})

		event := receiveEvent(t, listClient)
		assert.Equal(t, EventChatListUpdate, event.Type)

		select {
		case <-chatClient.send:
			t.Fatal("chat subscriber received a chat list event")
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("no subscribers means no listeners", func(t *testing.T) {
		hub := startHub(t)
		assert.False(t, hub.HasListeners(ChatTopic("none")))
		// Publishing into the void must not block or panic
		hub.Publish(&Event{Type: EventMessageNew, Topic: ChatTopic("none")})
	})

	t.Run("unregister closes the client and clears the topic", func(t *testing.T) {
		hub := startHub(t)
		topic := UserTopic(9)

		client := newTestClient(hub, topic, 9, 4)
		registerAndWait(t, hub, client)

		hub.unregister <- client
		require.Eventually(t, func() bool {
			return !hub.HasListeners(topic)
		}, time.Second, 5*time.Millisecond)

		_, open := <-client.send
		assert.False(t, open)
	})

	t.Run("slow subscribers are dropped", func(t *testing.T) {
		hub := startHub(t)
		topic := ChatTopic("slow")

		// Buffer of one: the second event finds it full
		client := newTestClient(hub, topic, 1, 1)
		registerAndWait(t, hub, client)

		hub.Publish(&Event{Type: EventMessageNew, Topic: topic})
		hub.Publish(&Event{Type: EventMessageNew, Topic: topic})

		require.Eventually(t, func() bool {
			return !hub.HasListeners(topic)
		}, time.Second, 5*time.Millisecond)
	})
}
