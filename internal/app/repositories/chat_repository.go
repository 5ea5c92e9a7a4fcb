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

// ChatRepository handles database operations for chats and chat memberships
type ChatRepository struct {
	db *pgxpool.Pool
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{db: db}
}

func scanChat(row pgx.Row) (*models.Chat, error) {
	var chat models.Chat
	var lmText *string
	var lmSenderID *int64
	var lmSentAt *time.Time

	err := row.Scan(
		&chat.ID,
		&chat.Type,
		&chat.ClubID,
		&chat.Name,
		&chat.Description,
		&chat.CreatedBy,
		&lmText,
		&lmSenderID,
		&lmSentAt,
		&chat.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lmText != nil && lmSenderID != nil && lmSentAt != nil {
		chat.LastMessage = &models.LastMessage{
			Text:     *lmText,
			SenderID: *lmSenderID,
			SentAt:   *lmSentAt,
		}
	}

	return &chat, nil
}

// Create inserts a chat row. Creating a chat whose id already exists is a
// no-op, which makes direct chat creation idempotent under the derived id.
func (r *ChatRepository) Create(ctx context.Context, chat *models.Chat) (bool, error) {
	query := `
		INSERT INTO chats (id, type, club_id, name, description, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`

	result, err := r.db.Exec(ctx, query,
		chat.ID,
		chat.Type,
		chat.ClubID,
		chat.Name,
		chat.Description,
		chat.CreatedBy,
	)
	if err != nil {
		return false, fmt.Errorf("error creating chat: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// GetByID retrieves a chat by ID
func (r *ChatRepository) GetByID(ctx context.Context, id string) (*models.Chat, error) {
	query := `
		SELECT id, type, club_id, name, description, created_by,
		       last_message_text, last_message_sender_id, last_message_at, created_at
		FROM chats
		WHERE id = $1
	`

	chat, err := scanChat(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrChatNotFound
		}
		return nil, fmt.Errorf("error retrieving chat: %w", err)
	}

	return chat, nil
}

// UpdateLastMessage writes the denormalized summary of the newest message
func (r *ChatRepository) UpdateLastMessage(ctx context.Context, chatID string, lm *models.LastMessage) error {
	query := `
		UPDATE chats
		SET last_message_text = $1, last_message_sender_id = $2, last_message_at = $3
		WHERE id = $4
	`

	result, err := r.db.Exec(ctx, query, lm.Text, lm.SenderID, lm.SentAt, chatID)
	if err != nil {
		return fmt.Errorf("error updating chat summary: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrChatNotFound
	}

	return nil
}

// ClearLastMessage resets the denormalized summary after a history clear
func (r *ChatRepository) ClearLastMessage(ctx context.Context, chatID string) error {
	query := `
		UPDATE chats
		SET last_message_text = NULL, last_message_sender_id = NULL, last_message_at = NULL
		WHERE id = $1
	`

	_, err := r.db.Exec(ctx, query, chatID)
	if err != nil {
		return fmt.Errorf("error clearing chat summary: %w", err)
	}

	return nil
}

// Delete removes a chat row
func (r *ChatRepository) Delete(ctx context.Context, chatID string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM chats WHERE id = $1`, chatID)
	if err != nil {
		return fmt.Errorf("error deleting chat: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrChatNotFound
	}

	return nil
}

// AddMember inserts a chat membership row. Re-adding is a no-op.
func (r *ChatRepository) AddMember(ctx context.Context, chatID string, userID int64, isAdmin bool) (bool, error) {
	query := `
		INSERT INTO chat_members (chat_id, user_id, is_admin)
		VALUES ($1, $2, $3)
		ON CONFLICT (chat_id, user_id) DO NOTHING
	`

	result, err := r.db.Exec(ctx, query, chatID, userID, isAdmin)
	if err != nil {
		return false, fmt.Errorf("error adding chat member: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// RemoveMember deletes a chat membership row
func (r *ChatRepository) RemoveMember(ctx context.Context, chatID string, userID int64) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM chat_members WHERE chat_id = $1 AND user_id = $2`, chatID, userID)
	if err != nil {
		return fmt.Errorf("error removing chat member: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotChatMember
	}

	return nil
}

// IsMember reports whether the user belongs to the chat
func (r *ChatRepository) IsMember(ctx context.Context, chatID string, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM chat_members WHERE chat_id = $1 AND user_id = $2)`,
		chatID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking chat membership: %w", err)
	}
	return exists, nil
}

// IsAdmin reports whether the user is an admin of the chat
func (r *ChatRepository) IsAdmin(ctx context.Context, chatID string, userID int64) (bool, error) {
	var isAdmin bool
	err := r.db.QueryRow(ctx,
		`SELECT is_admin FROM chat_members WHERE chat_id = $1 AND user_id = $2`,
		chatID, userID).Scan(&isAdmin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error checking chat admin: %w", err)
	}
	return isAdmin, nil
}

// GetMemberIDs retrieves the IDs of every chat member
func (r *ChatRepository) GetMemberIDs(ctx context.Context, chatID string) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id FROM chat_members WHERE chat_id = $1 ORDER BY joined_at ASC`, chatID)
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

// GetMembers retrieves the chat's membership rows
func (r *ChatRepository) GetMembers(ctx context.Context, chatID string) ([]*models.ChatMember, error) {
	rows, err := r.db.Query(ctx,
		`SELECT chat_id, user_id, is_admin, joined_at FROM chat_members WHERE chat_id = $1 ORDER BY joined_at ASC`,
		chatID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var members []*models.ChatMember
	for rows.Next() {
		var member models.ChatMember
		if err := rows.Scan(&member.ChatID, &member.UserID, &member.IsAdmin, &member.JoinedAt); err != nil {
			return nil, fmt.Errorf("error scanning member row: %w", err)
		}
		members = append(members, &member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member rows: %w", err)
	}

	return members, nil
}
