package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardaseremet/clubhub/internal/app/models"
	"github.com/ardaseremet/clubhub/internal/app/models/dto"
	"github.com/ardaseremet/clubhub/internal/pkg/apperrors"
	"github.com/ardaseremet/clubhub/internal/pkg/realtime"
)

// --- in-memory fakes ---

type fakeChatStore struct {
	chats       map[string]*models.Chat
	members     map[string]map[int64]bool // chatID -> userID -> isAdmin
	memberOrder map[string][]int64
	createCalls int
}

func newFakeChatStore() *fakeChatStore {
	return &fakeChatStore{
		chats:       make(map[string]*models.Chat),
		members:     make(map[string]map[int64]bool),
		memberOrder: make(map[string][]int64),
	}
}

func (s *fakeChatStore) Create(ctx context.Context, chat *models.Chat) (bool, error) {
	s.createCalls++
	if _, ok := s.chats[chat.ID]; ok {
		return false, nil
	}
	stored := *chat
	stored.CreatedAt = time.Now()
	s.chats[chat.ID] = &stored
	return true, nil
}

func (s *fakeChatStore) GetByID(ctx context.Context, id string) (*models.Chat, error) {
	chat, ok := s.chats[id]
	if !ok {
		return nil, apperrors.ErrChatNotFound
	}
	copied := *chat
	return &copied, nil
}

func (s *fakeChatStore) UpdateLastMessage(ctx context.Context, chatID string, lm *models.LastMessage) error {
	chat, ok := s.chats[chatID]
	if !ok {
		return apperrors.ErrChatNotFound
	}
	chat.LastMessage = lm
	return nil
}

func (s *fakeChatStore) ClearLastMessage(ctx context.Context, chatID string) error {
	chat, ok := s.chats[chatID]
	if !ok {
		return apperrors.ErrChatNotFound
	}
	chat.LastMessage = nil
	return nil
}

func (s *fakeChatStore) Delete(ctx context.Context, chatID string) error {
	delete(s.chats, chatID)
	delete(s.members, chatID)
	delete(s.memberOrder, chatID)
	return nil
}

func (s *fakeChatStore) AddMember(ctx context.Context, chatID string, userID int64, isAdmin bool) (bool, error) {
	if s.members[chatID] == nil {
		s.members[chatID] = make(map[int64]bool)
	}
	if _, ok := s.members[chatID][userID]; ok {
		return false, nil
	}
	s.members[chatID][userID] = isAdmin
	s.memberOrder[chatID] = append(s.memberOrder[chatID], userID)
	return true, nil
}

func (s *fakeChatStore) IsMember(ctx context.Context, chatID string, userID int64) (bool, error) {
	_, ok := s.members[chatID][userID]
	return ok, nil
}

func (s *fakeChatStore) IsAdmin(ctx context.Context, chatID string, userID int64) (bool, error) {
	return s.members[chatID][userID], nil
}

func (s *fakeChatStore) GetMemberIDs(ctx context.Context, chatID string) ([]int64, error) {
	return append([]int64(nil), s.memberOrder[chatID]...), nil
}

type fakeMessageStore struct {
	messages []*models.Message
	nextID   int64
}

func (s *fakeMessageStore) Create(ctx context.Context, message *models.Message) (int64, error) {
	s.nextID++
	message.ID = s.nextID
	message.CreatedAt = time.Now()
	stored := *message
	s.messages = append(s.messages, &stored)
	return message.ID, nil
}

func (s *fakeMessageStore) GetByChatID(ctx context.Context, chatID string, before *time.Time, limit int) ([]*models.Message, bool, error) {
	var matched []*models.Message
	for _, m := range s.messages {
		if m.ChatID == chatID && (before == nil || m.CreatedAt.Before(*before)) {
			matched = append(matched, m)
		}
	}
	hasMore := len(matched) > limit
	if hasMore {
		matched = matched[len(matched)-limit:]
	}
	return matched, hasMore, nil
}

func (s *fakeMessageStore) MarkSeen(ctx context.Context, chatID string, userID int64) error {
	for _, m := range s.messages {
		if m.ChatID != chatID {
			continue
		}
		seen := false
		for _, id := range m.SeenBy {
			if id == userID {
				seen = true
				break
			}
		}
		if !seen {
			m.SeenBy = append(m.SeenBy, userID)
		}
	}
	return nil
}

func (s *fakeMessageStore) DeleteByChatID(ctx context.Context, chatID string) (int64, error) {
	var kept []*models.Message
	var deleted int64
	for _, m := range s.messages {
		if m.ChatID == chatID {
			deleted++
		} else {
			kept = append(kept, m)
		}
	}
	s.messages = kept
	return deleted, nil
}

type fakeUserChatStore struct {
	entries    map[string]*models.UserChatEntry
	saveCalls  int
	applyCalls int
}

func newFakeUserChatStore() *fakeUserChatStore {
	return &fakeUserChatStore{entries: make(map[string]*models.UserChatEntry)}
}

func entryKey(userID int64, chatID string) string {
	return fmt.Sprintf("%d|%s", userID, chatID)
}

func (s *fakeUserChatStore) Save(ctx context.Context, entry *models.UserChatEntry) error {
	s.saveCalls++
	key := entryKey(entry.UserID, entry.ChatID)
	if existing, ok := s.entries[key]; ok {
		existing.ChatName = entry.ChatName
		existing.UpdatedAt = entry.UpdatedAt
		return nil
	}
	stored := *entry
	stored.UnreadCount = 0
	s.entries[key] = &stored
	return nil
}

func (s *fakeUserChatStore) ApplyMessage(ctx context.Context, entry *models.UserChatEntry, unreadDelta int) error {
	s.applyCalls++
	if entry.LastMessage == nil {
		return fmt.Errorf("chat list entry requires a message summary")
	}
	key := entryKey(entry.UserID, entry.ChatID)
	if existing, ok := s.entries[key]; ok {
		existing.ChatName = entry.ChatName
		existing.LastMessage = entry.LastMessage
		existing.UnreadCount += unreadDelta
		existing.UpdatedAt = entry.UpdatedAt
		return nil
	}
	stored := *entry
	stored.UnreadCount = unreadDelta
	s.entries[key] = &stored
	return nil
}

func (s *fakeUserChatStore) GetByUser(ctx context.Context, userID int64) ([]*models.UserChatEntry, error) {
	var entries []*models.UserChatEntry
	for _, entry := range s.entries {
		if entry.UserID == userID {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (s *fakeUserChatStore) ResetUnread(ctx context.Context, userID int64, chatID string) error {
	if entry, ok := s.entries[entryKey(userID, chatID)]; ok {
		entry.UnreadCount = 0
	}
	return nil
}

func (s *fakeUserChatStore) ResetForChat(ctx context.Context, chatID string) error {
	for _, entry := range s.entries {
		if entry.ChatID == chatID {
			entry.LastMessage = nil
			entry.UnreadCount = 0
		}
	}
	return nil
}

func (s *fakeUserChatStore) Delete(ctx context.Context, userID int64, chatID string) error {
	delete(s.entries, entryKey(userID, chatID))
	return nil
}

func (s *fakeUserChatStore) DeleteByChat(ctx context.Context, chatID string) error {
	for key, entry := range s.entries {
		if entry.ChatID == chatID {
			delete(s.entries, key)
		}
	}
	return nil
}

type fakeUserStore struct {
	users map[int64]*models.User
}

func (s *fakeUserStore) FindByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (s *fakeUserStore) FindByIDs(ctx context.Context, ids []int64) (map[int64]*models.User, error) {
	found := make(map[int64]*models.User)
	for _, id := range ids {
		if user, ok := s.users[id]; ok {
			found[id] = user
		}
	}
	return found, nil
}

type fakeClubMemberStore struct {
	admins  map[int64]map[int64]bool // clubID -> userID -> isAdmin
	members map[int64][]int64
}

func (s *fakeClubMemberStore) IsMember(ctx context.Context, clubID, userID int64) (bool, error) {
	for _, id := range s.members[clubID] {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeClubMemberStore) IsAdmin(ctx context.Context, clubID, userID int64) (bool, error) {
	return s.admins[clubID][userID], nil
}

func (s *fakeClubMemberStore) GetMembers(ctx context.Context, clubID int64) ([]*models.ClubMember, error) {
	var members []*models.ClubMember
	for _, id := range s.members[clubID] {
		members = append(members, &models.ClubMember{
			ClubID:  clubID,
			UserID:  id,
			IsAdmin: s.admins[clubID][id],
		})
	}
	return members, nil
}

type fakePublisher struct {
	events    []*realtime.Event
	listeners map[string]bool
}

func (p *fakePublisher) Publish(event *realtime.Event) {
	p.events = append(p.events, event)
}

func (p *fakePublisher) HasListeners(topic string) bool {
	return p.listeners[topic]
}

func (p *fakePublisher) eventsOfType(eventType string) []*realtime.Event {
	var matched []*realtime.Event
	for _, event := range p.events {
		if event.Type == eventType {
			matched = append(matched, event)
		}
	}
	return matched
}

// --- fixture ---

type chatFixture struct {
	chats     *fakeChatStore
	messages  *fakeMessageStore
	userChats *fakeUserChatStore
	users     *fakeUserStore
	clubs     *fakeClubMemberStore
	publisher *fakePublisher
	service   ChatService
}

func newChatFixture() *chatFixture {
	f := &chatFixture{
		chats:     newFakeChatStore(),
		messages:  &fakeMessageStore{},
		userChats: newFakeUserChatStore(),
		users: &fakeUserStore{users: map[int64]*models.User{
			1: {ID: 1, FirstName: "Arda", LastName: "Demir"},
			2: {ID: 2, FirstName: "Elif", LastName: "Kaya"},
			3: {ID: 3, FirstName: "Mert", LastName: "Aydin"},
		}},
		clubs: &fakeClubMemberStore{
			admins:  map[int64]map[int64]bool{10: {1: true}},
			members: map[int64][]int64{10: {1, 2, 3}},
		},
		publisher: &fakePublisher{listeners: make(map[string]bool)},
	}
	f.service = NewChatService(f.chats, f.messages, f.userChats, f.users, f.clubs, f.publisher, zerolog.Nop())
	return f
}

func (f *chatFixture) openDirect(t *testing.T, a, b int64) *dto.ChatResponse {
	t.Helper()
	chat, err := f.service.OpenDirectChat(context.Background(), a, b)
	require.NoError(t, err)
	return chat
}

func (f *chatFixture) createGroup(t *testing.T, adminID, clubID int64) *dto.ChatResponse {
	t.Helper()
	chat, err := f.service.CreateGroupChat(context.Background(), adminID, &dto.CreateGroupChatRequest{
		ClubID: clubID,
		Name:   "General",
	})
	require.NoError(t, err)
	return chat
}

// --- tests ---

func TestOpenDirectChat(t *testing.T) {
	t.Run("creates chat with both members and list entries", func(t *testing.T) {
		f := newChatFixture()

		chat := f.openDirect(t, 1, 2)

		assert.Equal(t, "1_2", chat.ID)
		assert.Equal(t, "direct", chat.Type)

		isMember, _ := f.chats.IsMember(context.Background(), chat.ID, 1)
		assert.True(t, isMember)
		isMember, _ = f.chats.IsMember(context.Background(), chat.ID, 2)
		assert.True(t, isMember)

		mine := f.userChats.entries[entryKey(1, chat.ID)]
		require.NotNil(t, mine)
		require.NotNil(t, mine.PeerID)
		assert.Equal(t, int64(2), *mine.PeerID)

		theirs := f.userChats.entries[entryKey(2, chat.ID)]
		require.NotNil(t, theirs)
		require.NotNil(t, theirs.PeerID)
		assert.Equal(t, int64(1), *theirs.PeerID)
	})

	t.Run("same chat regardless of caller order", func(t *testing.T) {
		f := newChatFixture()

		first := f.openDirect(t, 1, 2)
		second := f.openDirect(t, 2, 1)

		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("repeat open performs no membership or entry writes", func(t *testing.T) {
		f := newChatFixture()

		f.openDirect(t, 1, 2)
		savesAfterFirst := f.userChats.saveCalls

		f.openDirect(t, 1, 2)

		assert.Equal(t, savesAfterFirst, f.userChats.saveCalls)
		assert.Len(t, f.chats.memberOrder["1_2"], 2)
	})

	t.Run("rejects self chat", func(t *testing.T) {
		f := newChatFixture()

		_, err := f.service.OpenDirectChat(context.Background(), 1, 1)
		require.Error(t, err)
	})

	t.Run("unknown peer", func(t *testing.T) {
		f := newChatFixture()

		_, err := f.service.OpenDirectChat(context.Background(), 1, 99)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}

func TestCreateGroupChat(t *testing.T) {
	t.Run("snapshots club members into chat", func(t *testing.T) {
		f := newChatFixture()

		chat := f.createGroup(t, 1, 10)

		assert.Equal(t, "group", chat.Type)
		assert.Len(t, f.chats.memberOrder[chat.ID], 3)

		// Creator is the chat admin, the rest are plain members
		assert.True(t, f.chats.members[chat.ID][1])
		assert.False(t, f.chats.members[chat.ID][2])

		for _, userID := range []int64{1, 2, 3} {
			entry := f.userChats.entries[entryKey(userID, chat.ID)]
			require.NotNil(t, entry, "member %d should have a chat list entry", userID)
			assert.Equal(t, 0, entry.UnreadCount)
			assert.Equal(t, "General", entry.ChatName)
		}
	})

	t.Run("requires club admin", func(t *testing.T) {
		f := newChatFixture()

		_, err := f.service.CreateGroupChat(context.Background(), 2, &dto.CreateGroupChatRequest{
			ClubID: 10,
			Name:   "General",
		})
		assert.ErrorIs(t, err, apperrors.ErrNotClubAdmin)
	})
}

func TestJoinGroupChat(t *testing.T) {
	t.Run("seeds entry with current summary and zero unread", func(t *testing.T) {
		f := newChatFixture()
		chat := f.createGroup(t, 1, 10)

		// Member 3 drops their entry, then messages arrive
		require.NoError(t, f.userChats.Delete(context.Background(), 3, chat.ID))
		_, err := f.service.SendMessage(context.Background(), 1, chat.ID, &dto.SendMessageRequest{Body: "hello"})
		require.NoError(t, err)

		// A new club member joins after the chat already has history
		f.clubs.members[10] = append(f.clubs.members[10], 4)
		require.NoError(t, f.service.JoinGroupChat(context.Background(), 4, chat.ID))

		entry := f.userChats.entries[entryKey(4, chat.ID)]
		require.NotNil(t, entry)
		assert.Equal(t, 0, entry.UnreadCount)
		require.NotNil(t, entry.LastMessage)
		assert.Equal(t, "hello", entry.LastMessage.Text)
		assert.Equal(t, entry.LastMessage.SentAt, entry.UpdatedAt)
	})

	t.Run("joining twice is a no-op", func(t *testing.T) {
		f := newChatFixture()
		chat := f.createGroup(t, 1, 10)

		require.NoError(t, f.service.JoinGroupChat(context.Background(), 2, chat.ID))
		assert.Len(t, f.chats.memberOrder[chat.ID], 3)
	})

	t.Run("requires club membership", func(t *testing.T) {
		f := newChatFixture()
		chat := f.createGroup(t, 1, 10)

		err := f.service.JoinGroupChat(context.Background(), 42, chat.ID)
		assert.ErrorIs(t, err, apperrors.ErrNotClubMember)
	})

	t.Run("rejects direct chats", func(t *testing.T) {
		f := newChatFixture()
		chat := f.openDirect(t, 1, 2)

		err := f.service.JoinGroupChat(context.Background(), 3, chat.ID)
		assert.ErrorIs(t, err, apperrors.ErrNotGroupChat)
	})
}

func TestDeleteGroupChat(t *testing.T) {
	t.Run("removes chat, messages and all entries", func(t *testing.T) {
		f := newChatFixture()
		chat := f.createGroup(t, 1, 10)
		_, err := f.service.SendMessage(context.Background(), 1, chat.ID, &dto.SendMessageRequest{Body: "bye"})
		require.NoError(t, err)

		require.NoError(t, f.service.DeleteGroupChat(context.Background(), 1, chat.ID))

		_, err = f.chats.GetByID(context.Background(), chat.ID)
		assert.ErrorIs(t, err, apperrors.ErrChatNotFound)
		assert.Empty(t, f.messages.messages)
		for userID := int64(1); userID <= 3; userID++ {
			assert.Nil(t, f.userChats.entries[entryKey(userID, chat.ID)])
		}

		deletions := f.publisher.eventsOfType(realtime.EventChatDeleted)
		require.Len(t, deletions, 1)
		assert.Equal(t, chat.ID, deletions[0].ChatID)
	})

	t.Run("requires chat admin", func(t *testing.T) {
		f := newChatFixture()
		chat := f.createGroup(t, 1, 10)

		err := f.service.DeleteGroupChat(context.Background(), 2, chat.ID)
		assert.ErrorIs(t, err, apperrors.ErrNotChatAdmin)
	})
}

func TestSendMessage(t *testing.T) {
	t.Run("fans out to every member with correct unread deltas", func(t *testing.T) {
		f := newChatFixture()
		chat := f.createGroup(t, 1, 10)

		message, err := f.service.SendMessage(context.Background(), 1, chat.ID, &dto.SendMessageRequest{Body: "merhaba"})
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, message.SeenBy)

		sender := f.userChats.entries[entryKey(1, chat.ID)]
		require.NotNil(t, sender)
		assert.Equal(t, 0, sender.UnreadCount)

		for _, userID := range []int64{2, 3} {
			entry := f.userChats.entries[entryKey(userID, chat.ID)]
			require.NotNil(t, entry)
			assert.Equal(t, 1, entry.UnreadCount)
			require.NotNil(t, entry.LastMessage)
			assert.Equal(t, "merhaba", entry.LastMessage.Text)
		}

		stored, err := f.chats.GetByID(context.Background(), chat.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.LastMessage)
		assert.Equal(t, "merhaba", stored.LastMessage.Text)
		assert.Equal(t, int64(1), stored.LastMessage.SenderID)

		newMessages := f.publisher.eventsOfType(realtime.EventMessageNew)
		require.Len(t, newMessages, 1)
		assert.Equal(t, realtime.ChatTopic(chat.ID), newMessages[0].Topic)
	})

	t.Run("unread accumulates across sends", func(t *testing.T) {
		f := newChatFixture()
		chat := f.createGroup(t, 1, 10)

		for i := 0; i < 3; i++ {
			_, err := f.service.SendMessage(context.Background(), 1, chat.ID, &dto.SendMessageRequest{Body: "ping"})
			require.NoError(t, err)
		}

		assert.Equal(t, 3, f.userChats.entries[entryKey(2, chat.ID)].UnreadCount)
		assert.Equal(t, 0, f.userChats.entries[entryKey(1, chat.ID)].UnreadCount)
	})

	t.Run("recreates a pruned chat list entry", func(t *testing.T) {
		f := newChatFixture()
		chat := f.openDirect(t, 1, 2)

		require.NoError(t, f.service.RemoveFromList(context.Background(), 2, chat.ID))
		assert.Nil(t, f.userChats.entries[entryKey(2, chat.ID)])

		_, err := f.service.SendMessage(context.Background(), 1, chat.ID, &dto.SendMessageRequest{Body: "geri geldim"})
		require.NoError(t, err)

		entry := f.userChats.entries[entryKey(2, chat.ID)]
		require.NotNil(t, entry)
		assert.Equal(t, 1, entry.UnreadCount)
		require.NotNil(t, entry.PeerID)
		assert.Equal(t, int64(1), *entry.PeerID)
	})

	t.Run("media-only message uses placeholder summary", func(t *testing.T) {
		f := newChatFixture()
		chat := f.openDirect(t, 1, 2)

		mediaURL := "https://cdn.example.com/v.mp4"
		mediaType := "video"
		_, err := f.service.SendMessage(context.Background(), 1, chat.ID, &dto.SendMessageRequest{
			MediaURL:  &mediaURL,
			MediaType: &mediaType,
		})
		require.NoError(t, err)

		entry := f.userChats.entries[entryKey(2, chat.ID)]
		require.NotNil(t, entry.LastMessage)
		assert.Equal(t, "[video]", entry.LastMessage.Text)
	})

	t.Run("rejects empty message", func(t *testing.T) {
		f := newChatFixture()
		chat := f.openDirect(t, 1, 2)

		_, err := f.service.SendMessage(context.Background(), 1, chat.ID, &dto.SendMessageRequest{Body: "   "})
		assert.ErrorIs(t, err, apperrors.ErrEmptyMessage)
	})

	t.Run("rejects non-members", func(t *testing.T) {
		f := newChatFixture()
		chat := f.openDirect(t, 1, 2)

		_, err := f.service.SendMessage(context.Background(), 3, chat.ID, &dto.SendMessageRequest{Body: "hi"})
		assert.ErrorIs(t, err, apperrors.ErrNotChatMember)
	})
}

func TestGetMessages(t *testing.T) {
	t.Run("attaches sender names", func(t *testing.T) {
		f := newChatFixture()
		chat := f.openDirect(t, 1, 2)

		_, err := f.service.SendMessage(context.Background(), 1, chat.ID, &dto.SendMessageRequest{Body: "selam"})
		require.NoError(t, err)
		_, err = f.service.SendMessage(context.Background(), 2, chat.ID, &dto.SendMessageRequest{Body: "selam sana da"})
		require.NoError(t, err)

		page, err := f.service.GetMessages(context.Background(), 1, chat.ID, &dto.GetMessagesRequest{Limit: 50})
		require.NoError(t, err)
		require.Len(t, page.Messages, 2)
		assert.False(t, page.HasMore)
		assert.Equal(t, "Arda Demir", page.Messages[0].SenderName)
		assert.Equal(t, "Elif Kaya", page.Messages[1].SenderName)
	})

	t.Run("reports more history beyond the page", func(t *testing.T) {
		f := newChatFixture()
		chat := f.openDirect(t, 1, 2)

		for i := 0; i < 5; i++ {
			_, err := f.service.SendMessage(context.Background(), 1, chat.ID, &dto.SendMessageRequest{Body: "m"})
			require.NoError(t, err)
		}

		page, err := f.service.GetMessages(context.Background(), 1, chat.ID, &dto.GetMessagesRequest{Limit: 3})
		require.NoError(t, err)
		assert.Len(t, page.Messages, 3)
		assert.True(t, page.HasMore)
	})

	t.Run("rejects non-members", func(t *testing.T) {
		f := newChatFixture()
		chat := f.openDirect(t, 1, 2)

		_, err := f.service.GetMessages(context.Background(), 3, chat.ID, &dto.GetMessagesRequest{Limit: 50})
		assert.ErrorIs(t, err, apperrors.ErrNotChatMember)
	})
}

func TestGetUserChats(t *testing.T) {
	t.Run("resolves direct peers for display", func(t *testing.T) {
		f := newChatFixture()
		f.openDirect(t, 1, 2)
		f.openDirect(t, 1, 3)

		list, err := f.service.GetUserChats(context.Background(), 1)
		require.NoError(t, err)
		require.Len(t, list.Chats, 2)

		names := map[string]bool{}
		for _, item := range list.Chats {
			require.NotNil(t, item.Peer)
			names[item.Name] = true
		}
		assert.True(t, names["Elif Kaya"])
		assert.True(t, names["Mert Aydin"])
	})
}

func TestMarkRead(t *testing.T) {
	f := newChatFixture()
	chat := f.openDirect(t, 1, 2)

	_, err := f.service.SendMessage(context.Background(), 1, chat.ID, &dto.SendMessageRequest{Body: "okundu mu"})
	require.NoError(t, err)
	require.Equal(t, 1, f.userChats.entries[entryKey(2, chat.ID)].UnreadCount)

	require.NoError(t, f.service.MarkRead(context.Background(), 2, chat.ID))

	assert.Equal(t, 0, f.userChats.entries[entryKey(2, chat.ID)].UnreadCount)
	require.Len(t, f.messages.messages, 1)
	assert.ElementsMatch(t, []int64{1, 2}, f.messages.messages[0].SeenBy)

	seenEvents := f.publisher.eventsOfType(realtime.EventMessagesSeen)
	require.Len(t, seenEvents, 1)
}

func TestClearHistory(t *testing.T) {
	f := newChatFixture()
	chat := f.createGroup(t, 1, 10)

	_, err := f.service.SendMessage(context.Background(), 1, chat.ID, &dto.SendMessageRequest{Body: "silinecek"})
	require.NoError(t, err)

	require.NoError(t, f.service.ClearHistory(context.Background(), 2, chat.ID))

	assert.Empty(t, f.messages.messages)

	stored, err := f.chats.GetByID(context.Background(), chat.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.LastMessage)

	for _, userID := range []int64{1, 2, 3} {
		entry := f.userChats.entries[entryKey(userID, chat.ID)]
		require.NotNil(t, entry)
		assert.Nil(t, entry.LastMessage)
		assert.Equal(t, 0, entry.UnreadCount)
	}

	cleared := f.publisher.eventsOfType(realtime.EventHistoryCleared)
	require.Len(t, cleared, 1)
}

func TestChatListPush(t *testing.T) {
	t.Run("pushes only to live subscribers", func(t *testing.T) {
		f := newChatFixture()
		chat := f.openDirect(t, 1, 2)
		f.publisher.listeners[realtime.UserTopic(2)] = true

		_, err := f.service.SendMessage(context.Background(), 1, chat.ID, &dto.SendMessageRequest{Body: "canli"})
		require.NoError(t, err)

		updates := f.publisher.eventsOfType(realtime.EventChatListUpdate)
		require.Len(t, updates, 1)
		assert.Equal(t, realtime.UserTopic(2), updates[0].Topic)

		list, ok := updates[0].Payload.(*dto.ChatListResponse)
		require.True(t, ok)
		require.Len(t, list.Chats, 1)
		assert.Equal(t, 1, list.Chats[0].UnreadCount)
	})
}

func TestSummaryText(t *testing.T) {
	video := "video"
	image := "image"

	assert.Equal(t, "hey", summaryText(&models.Message{Body: "hey"}))
	assert.Equal(t, "[video]", summaryText(&models.Message{MediaType: &video}))
	assert.Equal(t, "[media]", summaryText(&models.Message{MediaType: &image}))
	assert.Equal(t, "[media]", summaryText(&models.Message{}))
}
