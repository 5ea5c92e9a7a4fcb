package dto

import (
	"time"

	"github.com/ardaseremet/clubhub/internal/app/models"
)

// --- Request DTOs ---

// CreateDirectChatRequest opens (or returns) the direct chat with another user
type CreateDirectChatRequest struct {
	PeerID int64 `json:"peerId" binding:"required"`
}

// CreateGroupChatRequest represents data for creating a club group chat
type CreateGroupChatRequest struct {
	ClubID      int64  `json:"clubId" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// SendMessageRequest represents data for sending a message
type SendMessageRequest struct {
	Body      string  `json:"body"`
	MediaURL  *string `json:"mediaUrl,omitempty"`
	MediaType *string `json:"mediaType,omitempty"`
}

// GetMessagesRequest represents cursor parameters for retrieving chat history
type GetMessagesRequest struct {
	Before *time.Time `form:"before,omitempty"`
	Limit  int        `form:"limit,default=50" binding:"min=1,max=100"`
}

// --- Response DTOs ---

// LastMessageResponse is the denormalized last-message summary
type LastMessageResponse struct {
	Text     string    `json:"text"`
	SenderID int64     `json:"senderId"`
	SentAt   time.Time `json:"sentAt"`
}

// MessageResponse represents a chat message
type MessageResponse struct {
	ID         int64     `json:"id"`
	ChatID     string    `json:"chatId"`
	SenderID   int64     `json:"senderId"`
	SenderName string    `json:"senderName,omitempty"`
	Body       string    `json:"body"`
	MediaURL   *string   `json:"mediaUrl,omitempty"`
	MediaType  *string   `json:"mediaType,omitempty"`
	SeenBy     []int64   `json:"seenBy"`
	CreatedAt  time.Time `json:"createdAt"`
}

// MessageListResponse represents one page of chat history, oldest first
type MessageListResponse struct {
	Messages []MessageResponse `json:"messages"`
	HasMore  bool              `json:"hasMore"`
}

// ChatResponse represents a chat document
type ChatResponse struct {
	ID          string               `json:"id"`
	Type        string               `json:"type"`
	ClubID      *int64               `json:"clubId,omitempty"`
	Name        string               `json:"name,omitempty"`
	Description string               `json:"description,omitempty"`
	LastMessage *LastMessageResponse `json:"lastMessage,omitempty"`
	MemberIDs   []int64              `json:"memberIds,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// ChatListItemResponse is one display-ready entry of a user's chat list
type ChatListItemResponse struct {
	ChatID      string               `json:"chatId"`
	Type        string               `json:"type"`
	Name        string               `json:"name"`
	ClubID      *int64               `json:"clubId,omitempty"`
	Peer        *UserBasicResponse   `json:"peer,omitempty"`
	LastMessage *LastMessageResponse `json:"lastMessage,omitempty"`
	UnreadCount int                  `json:"unreadCount"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// ChatListResponse is the full, re-sorted chat list for a user
type ChatListResponse struct {
	Chats []ChatListItemResponse `json:"chats"`
}

// ToLastMessageResponse converts a models.LastMessage summary
func ToLastMessageResponse(lm *models.LastMessage) *LastMessageResponse {
	if lm == nil {
		return nil
	}
	return &LastMessageResponse{
		Text:     lm.Text,
		SenderID: lm.SenderID,
		SentAt:   lm.SentAt,
	}
}

// ToMessageResponse converts a models.Message to MessageResponse
func ToMessageResponse(message *models.Message) MessageResponse {
	response := MessageResponse{
		ID:        message.ID,
		ChatID:    message.ChatID,
		SenderID:  message.SenderID,
		Body:      message.Body,
		MediaURL:  message.MediaURL,
		MediaType: message.MediaType,
		SeenBy:    message.SeenBy,
		CreatedAt: message.CreatedAt,
	}
	if message.Sender != nil {
		response.SenderName = message.Sender.FullName()
	}
	return response
}

// ToChatResponse converts a models.Chat to ChatResponse
func ToChatResponse(chat *models.Chat) ChatResponse {
	response := ChatResponse{
		ID:          chat.ID,
		Type:        string(chat.Type),
		ClubID:      chat.ClubID,
		Name:        chat.Name,
		Description: chat.Description,
		LastMessage: ToLastMessageResponse(chat.LastMessage),
		CreatedAt:   chat.CreatedAt,
	}
	for _, member := range chat.Members {
		response.MemberIDs = append(response.MemberIDs, member.UserID)
	}
	return response
}

// ToChatListItemResponse converts a user's chat entry to its display form.
// peer is the other member's profile for direct chats, nil for group chats.
func ToChatListItemResponse(entry *models.UserChatEntry, peer *models.User) ChatListItemResponse {
	response := ChatListItemResponse{
		ChatID:      entry.ChatID,
		Type:        string(entry.ChatType),
		Name:        entry.ChatName,
		ClubID:      entry.ClubID,
		LastMessage: ToLastMessageResponse(entry.LastMessage),
		UnreadCount: entry.UnreadCount,
		UpdatedAt:   entry.UpdatedAt,
	}
	if peer != nil {
		basic := ToUserBasicResponse(peer)
		response.Peer = &basic
		response.Name = peer.FullName()
	}
	return response
}
