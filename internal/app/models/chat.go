package models

import (
	"fmt"
	"time"
)

// ChatType distinguishes direct conversations from club group chats
type ChatType string

const (
	ChatTypeDirect ChatType = "direct"
	ChatTypeGroup  ChatType = "group"
)

// Chat represents a conversation, direct or group
type Chat struct {
	ID          string    `json:"id" db:"id"`
	Type        ChatType  `json:"type" db:"type"`
	ClubID      *int64    `json:"clubId,omitempty" db:"club_id"`
	Name        string    `json:"name,omitempty" db:"name"`
	Description string    `json:"description,omitempty" db:"description"`
	CreatedBy   int64     `json:"createdBy" db:"created_by"`
	LastMessage *LastMessage `json:"lastMessage,omitempty"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Members []*ChatMember `json:"members,omitempty"`
}

// LastMessage is the denormalized summary of a chat's most recent message
type LastMessage struct {
	Text     string    `json:"text"`
	SenderID int64     `json:"senderId"`
	SentAt   time.Time `json:"sentAt"`
}

// ChatMember represents a user's membership in a chat
type ChatMember struct {
	ChatID   string    `json:"chatId" db:"chat_id"`
	UserID   int64     `json:"userId" db:"user_id"`
	IsAdmin  bool      `json:"isAdmin" db:"is_admin"`
	JoinedAt time.Time `json:"joinedAt" db:"joined_at"`
}

// DirectChatID derives the canonical chat id for a pair of users.
// The pair is sorted so (a, b) and (b, a) always map to the same chat.
func DirectChatID(a, b int64) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d_%d", a, b)
}
