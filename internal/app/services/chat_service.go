package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ardaseremet/clubhub/internal/app/models"
	"github.com/ardaseremet/clubhub/internal/app/models/dto"
	"github.com/ardaseremet/clubhub/internal/pkg/apperrors"
	"github.com/ardaseremet/clubhub/internal/pkg/helpers"
	"github.com/ardaseremet/clubhub/internal/pkg/realtime"
)

// peerBatchSize caps the number of ids per multi-get when resolving direct
// chat peers for a chat list.
const peerBatchSize = 10

// ChatStore is the chat persistence surface the service depends on
type ChatStore interface {
	Create(ctx context.Context, chat *models.Chat) (bool, error)
	GetByID(ctx context.Context, id string) (*models.Chat, error)
	UpdateLastMessage(ctx context.Context, chatID string, lm *models.LastMessage) error
	ClearLastMessage(ctx context.Context, chatID string) error
	Delete(ctx context.Context, chatID string) error
	AddMember(ctx context.Context, chatID string, userID int64, isAdmin bool) (bool, error)
	IsMember(ctx context.Context, chatID string, userID int64) (bool, error)
	IsAdmin(ctx context.Context, chatID string, userID int64) (bool, error)
	GetMemberIDs(ctx context.Context, chatID string) ([]int64, error)
}

// MessageStore is the message persistence surface the service depends on
type MessageStore interface {
	Create(ctx context.Context, message *models.Message) (int64, error)
	GetByChatID(ctx context.Context, chatID string, before *time.Time, limit int) ([]*models.Message, bool, error)
	MarkSeen(ctx context.Context, chatID string, userID int64) error
	DeleteByChatID(ctx context.Context, chatID string) (int64, error)
}

// UserChatStore is the chat-list-entry persistence surface the service
// depends on
type UserChatStore interface {
	Save(ctx context.Context, entry *models.UserChatEntry) error
	ApplyMessage(ctx context.Context, entry *models.UserChatEntry, unreadDelta int) error
	GetByUser(ctx context.Context, userID int64) ([]*models.UserChatEntry, error)
	ResetUnread(ctx context.Context, userID int64, chatID string) error
	ResetForChat(ctx context.Context, chatID string) error
	Delete(ctx context.Context, userID int64, chatID string) error
	DeleteByChat(ctx context.Context, chatID string) error
}

// ChatUserStore resolves user profiles for chat rendering
type ChatUserStore interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByIDs(ctx context.Context, ids []int64) (map[int64]*models.User, error)
}

// ClubMemberStore answers club membership questions for group chat lifecycle
type ClubMemberStore interface {
	IsMember(ctx context.Context, clubID, userID int64) (bool, error)
	IsAdmin(ctx context.Context, clubID, userID int64) (bool, error)
	GetMembers(ctx context.Context, clubID int64) ([]*models.ClubMember, error)
}

// EventPublisher pushes events to live subscribers
type EventPublisher interface {
	Publish(event *realtime.Event)
	HasListeners(topic string) bool
}

// ChatService defines the interface for chat operations. Every operation takes
// the acting user explicitly; there is no ambient identity.
type ChatService interface {
	OpenDirectChat(ctx context.Context, userID, peerID int64) (*dto.ChatResponse, error)
	CreateGroupChat(ctx context.Context, userID int64, req *dto.CreateGroupChatRequest) (*dto.ChatResponse, error)
	JoinGroupChat(ctx context.Context, userID int64, chatID string) error
	DeleteGroupChat(ctx context.Context, userID int64, chatID string) error
	SendMessage(ctx context.Context, userID int64, chatID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	GetMessages(ctx context.Context, userID int64, chatID string, req *dto.GetMessagesRequest) (*dto.MessageListResponse, error)
	GetUserChats(ctx context.Context, userID int64) (*dto.ChatListResponse, error)
	MarkRead(ctx context.Context, userID int64, chatID string) error
	ClearHistory(ctx context.Context, userID int64, chatID string) error
	RemoveFromList(ctx context.Context, userID int64, chatID string) error
}

// chatServiceImpl implements ChatService
type chatServiceImpl struct {
	chatStore     ChatStore
	messageStore  MessageStore
	userChatStore UserChatStore
	userStore     ChatUserStore
	clubMembers   ClubMemberStore
	publisher     EventPublisher
	logger        zerolog.Logger
}

// NewChatService creates a new ChatService
func NewChatService(
	chatStore ChatStore,
	messageStore MessageStore,
	userChatStore UserChatStore,
	userStore ChatUserStore,
	clubMembers ClubMemberStore,
	publisher EventPublisher,
	logger zerolog.Logger,
) ChatService {
	return &chatServiceImpl{
		chatStore:     chatStore,
		messageStore:  messageStore,
		userChatStore: userChatStore,
		userStore:     userStore,
		clubMembers:   clubMembers,
		publisher:     publisher,
		logger:        logger,
	}
}

// OpenDirectChat returns the direct chat between userID and peerID, creating
// it on first contact. The chat id is derived from the sorted user pair, so
// repeat calls land on the same chat and perform no writes.
func (s *chatServiceImpl) OpenDirectChat(ctx context.Context, userID, peerID int64) (*dto.ChatResponse, error) {
	if userID == peerID {
		return nil, apperrors.NewBadRequestError("Cannot open a chat with yourself")
	}

	if _, err := s.userStore.FindByID(ctx, peerID); err != nil {
		s.logger.Warn().Err(err).
			Int64("peerID", peerID).
			Msg("Direct chat peer not found")
		return nil, err
	}

	chatID := models.DirectChatID(userID, peerID)

	chat := &models.Chat{
		ID:        chatID,
		Type:      models.ChatTypeDirect,
		CreatedBy: userID,
	}

	created, err := s.chatStore.Create(ctx, chat)
	if err != nil {
		return nil, err
	}

	if created {
		now := time.Now()
		for _, pair := range [2][2]int64{{userID, peerID}, {peerID, userID}} {
			member, peer := pair[0], pair[1]
			if _, err := s.chatStore.AddMember(ctx, chatID, member, false); err != nil {
				return nil, err
			}
			entry := &models.UserChatEntry{
				UserID:    member,
				ChatID:    chatID,
				ChatType:  models.ChatTypeDirect,
				PeerID:    &peer,
				UpdatedAt: now,
			}
			if err := s.userChatStore.Save(ctx, entry); err != nil {
				return nil, err
			}
		}

		s.logger.Info().
			Str("chatID", chatID).
			Int64("userID", userID).
			Int64("peerID", peerID).
			Msg("Direct chat created")
	}

	existing, err := s.chatStore.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	response := dto.ToChatResponse(existing)
	return &response, nil
}

// CreateGroupChat creates a club group chat. Only club admins may create one.
// The club's member list is snapshotted into chat_members and every member
// gets a chat list entry immediately.
func (s *chatServiceImpl) CreateGroupChat(ctx context.Context, userID int64, req *dto.CreateGroupChatRequest) (*dto.ChatResponse, error) {
	isAdmin, err := s.clubMembers.IsAdmin(ctx, req.ClubID, userID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, apperrors.ErrNotClubAdmin
	}

	members, err := s.clubMembers.GetMembers(ctx, req.ClubID)
	if err != nil {
		return nil, err
	}

	chat := &models.Chat{
		ID:          uuid.New().String(),
		Type:        models.ChatTypeGroup,
		ClubID:      &req.ClubID,
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   userID,
	}

	if _, err := s.chatStore.Create(ctx, chat); err != nil {
		return nil, err
	}

	now := time.Now()
	for _, member := range members {
		if _, err := s.chatStore.AddMember(ctx, chat.ID, member.UserID, member.UserID == userID); err != nil {
			return nil, err
		}

		entry := &models.UserChatEntry{
			UserID:    member.UserID,
			ChatID:    chat.ID,
			ChatType:  models.ChatTypeGroup,
			ChatName:  chat.Name,
			ClubID:    chat.ClubID,
			UpdatedAt: now,
		}
		if err := s.userChatStore.Save(ctx, entry); err != nil {
			return nil, err
		}
	}

	s.logger.Info().
		Str("chatID", chat.ID).
		Int64("clubID", req.ClubID).
		Int("memberCount", len(members)).
		Msg("Group chat created")

	created, err := s.chatStore.GetByID(ctx, chat.ID)
	if err != nil {
		return nil, err
	}

	response := dto.ToChatResponse(created)
	return &response, nil
}

// JoinGroupChat adds the user to a group chat they are entitled to (club
// membership) and seeds their chat list entry with the chat's current
// last-message summary, unread zero. Joining twice is a no-op.
func (s *chatServiceImpl) JoinGroupChat(ctx context.Context, userID int64, chatID string) error {
	chat, err := s.chatStore.GetByID(ctx, chatID)
	if err != nil {
		return err
	}
	if chat.Type != models.ChatTypeGroup {
		return apperrors.ErrNotGroupChat
	}

	if chat.ClubID != nil {
		isMember, err := s.clubMembers.IsMember(ctx, *chat.ClubID, userID)
		if err != nil {
			return err
		}
		if !isMember {
			return apperrors.ErrNotClubMember
		}
	}

	added, err := s.chatStore.AddMember(ctx, chatID, userID, false)
	if err != nil {
		return err
	}
	if !added {
		return nil
	}

	entry := &models.UserChatEntry{
		UserID:      userID,
		ChatID:      chatID,
		ChatType:    models.ChatTypeGroup,
		ChatName:    chat.Name,
		ClubID:      chat.ClubID,
		LastMessage: chat.LastMessage,
		UpdatedAt:   time.Now(),
	}

	if chat.LastMessage == nil {
		err = s.userChatStore.Save(ctx, entry)
	} else {
		// Seed with the chat's current summary so the latest activity shows
		// without an unread badge
		entry.UpdatedAt = chat.LastMessage.SentAt
		err = s.userChatStore.ApplyMessage(ctx, entry, 0)
	}
	if err != nil {
		return err
	}

	s.logger.Info().
		Str("chatID", chatID).
		Int64("userID", userID).
		Msg("User joined group chat")

	s.pushChatList(ctx, userID)
	return nil
}

// DeleteGroupChat removes a group chat permanently. Chat list entries go
// first, then the chat row, so no entry ever points at a missing chat.
func (s *chatServiceImpl) DeleteGroupChat(ctx context.Context, userID int64, chatID string) error {
	chat, err := s.chatStore.GetByID(ctx, chatID)
	if err != nil {
		return err
	}
	if chat.Type != models.ChatTypeGroup {
		return apperrors.ErrNotGroupChat
	}

	isAdmin, err := s.chatStore.IsAdmin(ctx, chatID, userID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return apperrors.ErrNotChatAdmin
	}

	memberIDs, err := s.chatStore.GetMemberIDs(ctx, chatID)
	if err != nil {
		return err
	}

	if err := s.userChatStore.DeleteByChat(ctx, chatID); err != nil {
		return err
	}
	if _, err := s.messageStore.DeleteByChatID(ctx, chatID); err != nil {
		return err
	}
	if err := s.chatStore.Delete(ctx, chatID); err != nil {
		return err
	}

	s.logger.Info().
		Str("chatID", chatID).
		Int64("userID", userID).
		Msg("Group chat deleted")

	s.publisher.Publish(&realtime.Event{
		Type:   realtime.EventChatDeleted,
		Topic:  realtime.ChatTopic(chatID),
		ChatID: chatID,
	})
	for _, memberID := range memberIDs {
		s.pushChatList(ctx, memberID)
	}

	return nil
}

// SendMessage appends a message and fans it out: insert, then the chat
// summary, then every member's chat list entry. The stages run strictly in
// that order; entry updates are unordered among themselves. Members who had
// removed the chat from their list get their entry recreated here.
func (s *chatServiceImpl) SendMessage(ctx context.Context, userID int64, chatID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	body := strings.TrimSpace(req.Body)
	if body == "" && req.MediaURL == nil {
		return nil, apperrors.ErrEmptyMessage
	}

	isMember, err := s.chatStore.IsMember(ctx, chatID, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, apperrors.ErrNotChatMember
	}

	chat, err := s.chatStore.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	memberIDs, err := s.chatStore.GetMemberIDs(ctx, chatID)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		ChatID:    chatID,
		SenderID:  userID,
		Body:      body,
		MediaURL:  req.MediaURL,
		MediaType: req.MediaType,
		SeenBy:    []int64{userID},
	}

	if _, err := s.messageStore.Create(ctx, message); err != nil {
		s.logger.Error().Err(err).
			Str("chatID", chatID).
			Int64("senderID", userID).
			Msg("Failed to store message")
		return nil, err
	}

	summary := &models.LastMessage{
		Text:     summaryText(message),
		SenderID: userID,
		SentAt:   message.CreatedAt,
	}

	if err := s.chatStore.UpdateLastMessage(ctx, chatID, summary); err != nil {
		s.logger.Error().Err(err).
			Str("chatID", chatID).
			Msg("Failed to update chat summary after message insert")
		return nil, err
	}

	for _, memberID := range memberIDs {
		entry := &models.UserChatEntry{
			UserID:      memberID,
			ChatID:      chatID,
			ChatType:    chat.Type,
			ChatName:    chat.Name,
			ClubID:      chat.ClubID,
			LastMessage: summary,
			UpdatedAt:   message.CreatedAt,
		}
		if chat.Type == models.ChatTypeDirect {
			entry.PeerID = directPeer(memberIDs, memberID)
		}

		unreadDelta := 1
		if memberID == userID {
			unreadDelta = 0
		}

		if err := s.userChatStore.ApplyMessage(ctx, entry, unreadDelta); err != nil {
			// The message is already stored; a failed entry leaves that
			// member's list stale until the next send recreates it
			s.logger.Error().Err(err).
				Str("chatID", chatID).
				Int64("memberID", memberID).
				Msg("Failed to update member chat list entry")
			return nil, err
		}
	}

	response := dto.ToMessageResponse(message)

	s.publisher.Publish(&realtime.Event{
		Type:    realtime.EventMessageNew,
		Topic:   realtime.ChatTopic(chatID),
		ChatID:  chatID,
		Payload: response,
	})
	for _, memberID := range memberIDs {
		s.pushChatList(ctx, memberID)
	}

	return &response, nil
}

// GetMessages returns one page of chat history: the latest limit messages, or
// the ones just older than the before cursor, oldest first.
func (s *chatServiceImpl) GetMessages(ctx context.Context, userID int64, chatID string, req *dto.GetMessagesRequest) (*dto.MessageListResponse, error) {
	isMember, err := s.chatStore.IsMember(ctx, chatID, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, apperrors.ErrNotChatMember
	}

	messages, hasMore, err := s.messageStore.GetByChatID(ctx, chatID, req.Before, req.Limit)
	if err != nil {
		return nil, err
	}

	senderIDs := make([]int64, 0, len(messages))
	seen := make(map[int64]bool, len(messages))
	for _, message := range messages {
		if !seen[message.SenderID] {
			seen[message.SenderID] = true
			senderIDs = append(senderIDs, message.SenderID)
		}
	}

	senders, err := s.userStore.FindByIDs(ctx, senderIDs)
	if err != nil {
		return nil, err
	}

	response := &dto.MessageListResponse{
		Messages: make([]dto.MessageResponse, 0, len(messages)),
		HasMore:  hasMore,
	}
	for _, message := range messages {
		message.Sender = senders[message.SenderID]
		response.Messages = append(response.Messages, dto.ToMessageResponse(message))
	}

	return response, nil
}

// GetUserChats resolves the user's chat list for display. Direct chat peers
// are looked up with batched multi-gets rather than one fetch per entry.
func (s *chatServiceImpl) GetUserChats(ctx context.Context, userID int64) (*dto.ChatListResponse, error) {
	entries, err := s.userChatStore.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.resolveChatList(ctx, entries)
}

func (s *chatServiceImpl) resolveChatList(ctx context.Context, entries []*models.UserChatEntry) (*dto.ChatListResponse, error) {
	var peerIDs []int64
	seen := make(map[int64]bool)
	for _, entry := range entries {
		if entry.ChatType == models.ChatTypeDirect && entry.PeerID != nil && !seen[*entry.PeerID] {
			seen[*entry.PeerID] = true
			peerIDs = append(peerIDs, *entry.PeerID)
		}
	}

	peers := make(map[int64]*models.User, len(peerIDs))
	for _, batch := range helpers.Chunk(peerIDs, peerBatchSize) {
		found, err := s.userStore.FindByIDs(ctx, batch)
		if err != nil {
			return nil, err
		}
		for id, user := range found {
			peers[id] = user
		}
	}

	response := &dto.ChatListResponse{
		Chats: make([]dto.ChatListItemResponse, 0, len(entries)),
	}
	for _, entry := range entries {
		var peer *models.User
		if entry.PeerID != nil {
			peer = peers[*entry.PeerID]
		}
		response.Chats = append(response.Chats, dto.ToChatListItemResponse(entry, peer))
	}

	return response, nil
}

// MarkRead zeroes the caller's unread counter and stamps them into the
// seen-by set of every message they had not seen
func (s *chatServiceImpl) MarkRead(ctx context.Context, userID int64, chatID string) error {
	isMember, err := s.chatStore.IsMember(ctx, chatID, userID)
	if err != nil {
		return err
	}
	if !isMember {
		return apperrors.ErrNotChatMember
	}

	if err := s.userChatStore.ResetUnread(ctx, userID, chatID); err != nil {
		return err
	}
	if err := s.messageStore.MarkSeen(ctx, chatID, userID); err != nil {
		return err
	}

	s.publisher.Publish(&realtime.Event{
		Type:    realtime.EventMessagesSeen,
		Topic:   realtime.ChatTopic(chatID),
		ChatID:  chatID,
		Payload: map[string]int64{"userId": userID},
	})
	s.pushChatList(ctx, userID)

	return nil
}

// ClearHistory deletes every message and resets all members' entries. The
// chat and its membership survive; only the transcript goes.
func (s *chatServiceImpl) ClearHistory(ctx context.Context, userID int64, chatID string) error {
	isMember, err := s.chatStore.IsMember(ctx, chatID, userID)
	if err != nil {
		return err
	}
	if !isMember {
		return apperrors.ErrNotChatMember
	}

	deleted, err := s.messageStore.DeleteByChatID(ctx, chatID)
	if err != nil {
		return err
	}
	if err := s.chatStore.ClearLastMessage(ctx, chatID); err != nil {
		return err
	}
	if err := s.userChatStore.ResetForChat(ctx, chatID); err != nil {
		return err
	}

	s.logger.Info().
		Str("chatID", chatID).
		Int64("userID", userID).
		Int64("deletedMessages", deleted).
		Msg("Chat history cleared")

	s.publisher.Publish(&realtime.Event{
		Type:   realtime.EventHistoryCleared,
		Topic:  realtime.ChatTopic(chatID),
		ChatID: chatID,
	})

	memberIDs, err := s.chatStore.GetMemberIDs(ctx, chatID)
	if err != nil {
		return err
	}
	for _, memberID := range memberIDs {
		s.pushChatList(ctx, memberID)
	}

	return nil
}

// RemoveFromList hides the chat from the caller's list only. Messages and
// membership are untouched; the next message in the chat recreates the entry.
func (s *chatServiceImpl) RemoveFromList(ctx context.Context, userID int64, chatID string) error {
	if err := s.userChatStore.Delete(ctx, userID, chatID); err != nil {
		return err
	}

	s.pushChatList(ctx, userID)
	return nil
}

// pushChatList re-resolves and delivers the user's full chat list when they
// have a live subscription. Best effort; a failed resolve only costs one push.
func (s *chatServiceImpl) pushChatList(ctx context.Context, userID int64) {
	topic := realtime.UserTopic(userID)
	if !s.publisher.HasListeners(topic) {
		return
	}

	entries, err := s.userChatStore.GetByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).
			Int64("userID", userID).
			Msg("Failed to resolve chat list for push")
		return
	}

	list, err := s.resolveChatList(ctx, entries)
	if err != nil {
		s.logger.Error().Err(err).
			Int64("userID", userID).
			Msg("Failed to resolve chat list peers for push")
		return
	}

	s.publisher.Publish(&realtime.Event{
		Type:    realtime.EventChatListUpdate,
		Topic:   topic,
		Payload: list,
	})
}

// summaryText picks the text shown in chat list previews
func summaryText(message *models.Message) string {
	if message.Body != "" {
		return message.Body
	}
	if message.MediaType != nil && *message.MediaType == "video" {
		return "[video]"
	}
	return "[media]"
}

// directPeer returns the other member of a two-person chat
func directPeer(memberIDs []int64, userID int64) *int64 {
	for _, id := range memberIDs {
		if id != userID {
			peer := id
			return &peer
		}
	}
	return nil
}
