package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ardaseremet/clubhub/internal/app/models"
)

// MessageRepository handles database operations for chat messages
type MessageRepository struct {
	db *pgxpool.Pool
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create appends a message to a chat
func (r *MessageRepository) Create(ctx context.Context, message *models.Message) (int64, error) {
	query := `
		INSERT INTO messages (chat_id, sender_id, body, media_url, media_type, seen_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		message.ChatID,
		message.SenderID,
		message.Body,
		message.MediaURL,
		message.MediaType,
		message.SeenBy,
	).Scan(&message.ID, &message.CreatedAt)

	if err != nil {
		return 0, fmt.Errorf("error creating message: %w", err)
	}

	return message.ID, nil
}

// GetByChatID retrieves up to limit messages older than the cursor, returned
// in chronological order. hasMore reports whether older messages remain.
func (r *MessageRepository) GetByChatID(ctx context.Context, chatID string, before *time.Time, limit int) ([]*models.Message, bool, error) {
	query := `
		SELECT id, chat_id, sender_id, body, media_url, media_type, seen_by, created_at
		FROM messages
		WHERE chat_id = $1 AND ($2::timestamptz IS NULL OR created_at < $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, chatID, before, limit+1)
	if err != nil {
		return nil, false, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		var message models.Message
		err := rows.Scan(
			&message.ID,
			&message.ChatID,
			&message.SenderID,
			&message.Body,
			&message.MediaURL,
			&message.MediaType,
			&message.SeenBy,
			&message.CreatedAt,
		)
		if err != nil {
			return nil, false, fmt.Errorf("error scanning message row: %w", err)
		}
		messages = append(messages, &message)
	}

	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("error iterating message rows: %w", err)
	}

	hasMore := len(messages) > limit
	if hasMore {
		messages = messages[:limit]
	}

	// newest-first from the index scan; callers want oldest-first
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, hasMore, nil
}

// MarkSeen adds the user to the seen-by set of every chat message that does
// not already carry them
func (r *MessageRepository) MarkSeen(ctx context.Context, chatID string, userID int64) error {
	query := `
		UPDATE messages
		SET seen_by = array_append(seen_by, $2)
		WHERE chat_id = $1 AND NOT (seen_by @> ARRAY[$2]::bigint[])
	`

	_, err := r.db.Exec(ctx, query, chatID, userID)
	if err != nil {
		return fmt.Errorf("error marking messages seen: %w", err)
	}

	return nil
}

// DeleteByChatID removes every message in a chat
func (r *MessageRepository) DeleteByChatID(ctx context.Context, chatID string) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM messages WHERE chat_id = $1`, chatID)
	if err != nil {
		return 0, fmt.Errorf("error deleting messages: %w", err)
	}

	return result.RowsAffected(), nil
}
