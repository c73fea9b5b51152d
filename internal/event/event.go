package event

import (
	"encoding/json"
	"time"
)

// Event types on the feed socket.
const (
	// EventSubscribe - client asks to join a feed topic
	EventSubscribe = "feed:subscribe"

	// EventFeedActivity - server pushes a new community activity
	EventFeedActivity = "feed:activity"

	// EventFeedError - server reports a feed-related error
	EventFeedError = "feed:error"
)

// DefaultTopic is the community-wide feed every client joins.
const DefaultTopic = "community"

type WsEvent struct {
	Event   string          `json:"event"`
	Topic   string          `json:"topic"`
	Message json.RawMessage `json:"message"`
}

// FeedActivity is the payload of an EventFeedActivity event.
type FeedActivity struct {
	UserName  string    `json:"userName"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
