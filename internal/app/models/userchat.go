package models

import "time"

// UserChatEntry is the per-user, per-chat denormalized record used to render
// a chat list without re-reading full chat or message data.
type UserChatEntry struct {
	UserID      int64        `json:"userId" db:"user_id"`
	ChatID      string       `json:"chatId" db:"chat_id"`
	ChatType    ChatType     `json:"chatType" db:"chat_type"`
	ChatName    string       `json:"chatName,omitempty" db:"chat_name"`
	ClubID      *int64       `json:"clubId,omitempty" db:"club_id"`
	PeerID      *int64       `json:"peerId,omitempty" db:"peer_id"`
	LastMessage *LastMessage `json:"lastMessage,omitempty"`
	UnreadCount int          `json:"unreadCount" db:"unread_count"`
	UpdatedAt   time.Time    `json:"updatedAt" db:"updated_at"`
}
