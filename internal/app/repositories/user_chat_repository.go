package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ardaseremet/clubhub/internal/app/models"
	"github.com/ardaseremet/clubhub/internal/pkg/apperrors"
)

// UserChatRepository handles database operations for per-user chat list
// entries. Entries are denormalized: the chat list renders from this table
// alone, without touching chats or messages.
type UserChatRepository struct {
	db *pgxpool.Pool
}

// NewUserChatRepository creates a new UserChatRepository
func NewUserChatRepository(db *pgxpool.Pool) *UserChatRepository {
	return &UserChatRepository{db: db}
}

func scanUserChatEntry(row pgx.Row) (*models.UserChatEntry, error) {
	var entry models.UserChatEntry
	var lmText *string
	var lmSenderID *int64
	var lmSentAt *time.Time

	err := row.Scan(
		&entry.UserID,
		&entry.ChatID,
		&entry.ChatType,
		&entry.ChatName,
		&entry.ClubID,
		&entry.PeerID,
		&lmText,
		&lmSenderID,
		&lmSentAt,
		&entry.UnreadCount,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lmText != nil && lmSenderID != nil && lmSentAt != nil {
		entry.LastMessage = &models.LastMessage{
			Text:     *lmText,
			SenderID: *lmSenderID,
			SentAt:   *lmSentAt,
		}
	}

	return &entry, nil
}

// Save writes an entry with an unread count of zero, creating or replacing it
func (r *UserChatRepository) Save(ctx context.Context, entry *models.UserChatEntry) error {
	query := `
		INSERT INTO user_chats (user_id, chat_id, chat_type, chat_name, club_id, peer_id, unread_count, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, 0, $7)
		ON CONFLICT (user_id, chat_id) DO UPDATE SET
			chat_name = EXCLUDED.chat_name,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query,
		entry.UserID,
		entry.ChatID,
		entry.ChatType,
		entry.ChatName,
		entry.ClubID,
		entry.PeerID,
		entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error saving chat list entry: %w", err)
	}

	return nil
}

// ApplyMessage upserts one member's entry for a freshly sent message. The
// upsert recreates entries the member had removed from their list, so any
// pruned conversation resurfaces on new activity. unreadDelta is 0 for the
// sender and 1 for everyone else.
func (r *UserChatRepository) ApplyMessage(ctx context.Context, entry *models.UserChatEntry, unreadDelta int) error {
	if entry.LastMessage == nil {
		return fmt.Errorf("chat list entry requires a message summary")
	}

	query := `
		INSERT INTO user_chats (user_id, chat_id, chat_type, chat_name, club_id, peer_id,
			last_message_text, last_message_sender_id, last_message_at, unread_count, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id, chat_id) DO UPDATE SET
			chat_name = EXCLUDED.chat_name,
			last_message_text = EXCLUDED.last_message_text,
			last_message_sender_id = EXCLUDED.last_message_sender_id,
			last_message_at = EXCLUDED.last_message_at,
			unread_count = user_chats.unread_count + $10,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query,
		entry.UserID,
		entry.ChatID,
		entry.ChatType,
		entry.ChatName,
		entry.ClubID,
		entry.PeerID,
		entry.LastMessage.Text,
		entry.LastMessage.SenderID,
		entry.LastMessage.SentAt,
		unreadDelta,
		entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error applying message to chat list entry: %w", err)
	}

	return nil
}

// GetByUser retrieves the user's chat list, most recently active first
func (r *UserChatRepository) GetByUser(ctx context.Context, userID int64) ([]*models.UserChatEntry, error) {
	query := `
		SELECT user_id, chat_id, chat_type, chat_name, club_id, peer_id,
		       last_message_text, last_message_sender_id, last_message_at, unread_count, updated_at
		FROM user_chats
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var entries []*models.UserChatEntry
	for rows.Next() {
		entry, err := scanUserChatEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning chat list row: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chat list rows: %w", err)
	}

	return entries, nil
}

// Get retrieves one entry
func (r *UserChatRepository) Get(ctx context.Context, userID int64, chatID string) (*models.UserChatEntry, error) {
	query := `
		SELECT user_id, chat_id, chat_type, chat_name, club_id, peer_id,
		       last_message_text, last_message_sender_id, last_message_at, unread_count, updated_at
		FROM user_chats
		WHERE user_id = $1 AND chat_id = $2
	`

	entry, err := scanUserChatEntry(r.db.QueryRow(ctx, query, userID, chatID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrChatNotFound
		}
		return nil, fmt.Errorf("error retrieving chat list entry: %w", err)
	}

	return entry, nil
}

// ResetUnread zeroes the unread counter of one entry
func (r *UserChatRepository) ResetUnread(ctx context.Context, userID int64, chatID string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE user_chats SET unread_count = 0 WHERE user_id = $1 AND chat_id = $2`,
		userID, chatID)
	if err != nil {
		return fmt.Errorf("error resetting unread count: %w", err)
	}
	return nil
}

// ResetForChat clears the message summary and unread counter on every
// member's entry after a history clear
func (r *UserChatRepository) ResetForChat(ctx context.Context, chatID string) error {
	query := `
		UPDATE user_chats
		SET last_message_text = NULL, last_message_sender_id = NULL, last_message_at = NULL,
		    unread_count = 0
		WHERE chat_id = $1
	`

	_, err := r.db.Exec(ctx, query, chatID)
	if err != nil {
		return fmt.Errorf("error resetting chat list entries: %w", err)
	}

	return nil
}

// Delete removes one entry, hiding the chat from that user's list without
// touching the chat or its messages
func (r *UserChatRepository) Delete(ctx context.Context, userID int64, chatID string) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM user_chats WHERE user_id = $1 AND chat_id = $2`, userID, chatID)
	if err != nil {
		return fmt.Errorf("error deleting chat list entry: %w", err)
	}
	return nil
}

// DeleteByChat removes every member's entry for a chat
func (r *UserChatRepository) DeleteByChat(ctx context.Context, chatID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM user_chats WHERE chat_id = $1`, chatID)
	if err != nil {
		return fmt.Errorf("error deleting chat list entries: %w", err)
	}
	return nil
}

// GetUserIDsByChat retrieves the IDs of users holding an entry for the chat
func (r *UserChatRepository) GetUserIDsByChat(ctx context.Context, chatID string) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT user_id FROM user_chats WHERE chat_id = $1`, chatID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var userIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning user id: %w", err)
		}
		userIDs = append(userIDs, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return userIDs, nil
}
