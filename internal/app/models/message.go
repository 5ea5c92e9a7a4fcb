package models

import "time"

// Message represents one chat entry. Messages are append-only; only the
// seen-by set changes after creation, and deletion happens solely through
// clear-history.
type Message struct {
	ID        int64     `json:"id" db:"id"`
	ChatID    string    `json:"chatId" db:"chat_id"`
	SenderID  int64     `json:"senderId" db:"sender_id"`
	Body      string    `json:"body" db:"body"`
	MediaURL  *string   `json:"mediaUrl,omitempty" db:"media_url"`
	MediaType *string   `json:"mediaType,omitempty" db:"media_type"`
	SeenBy    []int64   `json:"seenBy" db:"seen_by"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Sender *User `json:"sender,omitempty"`
}
