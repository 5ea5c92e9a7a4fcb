package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ardaseremet/clubhub/internal/app/models"
	"github.com/ardaseremet/clubhub/internal/pkg/apperrors"
)

// StoryRepository handles database operations for club stories
type StoryRepository struct {
	db *pgxpool.Pool
}

// NewStoryRepository creates a new StoryRepository
func NewStoryRepository(db *pgxpool.Pool) *StoryRepository {
	return &StoryRepository{db: db}
}

// Create inserts a story. The expiry instant is fixed at insert time.
func (r *StoryRepository) Create(ctx context.Context, story *models.Story) (int64, error) {
	query := `
		INSERT INTO stories (club_id, creator_id, media_url, media_type, caption, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		story.ClubID,
		story.CreatorID,
		story.MediaURL,
		story.MediaType,
		story.Caption,
		story.CreatedAt,
		story.ExpiresAt,
	).Scan(&story.ID)

	if err != nil {
		return 0, fmt.Errorf("error creating story: %w", err)
	}

	return story.ID, nil
}

// GetByID retrieves a story regardless of expiry
func (r *StoryRepository) GetByID(ctx context.Context, id int64) (*models.Story, error) {
	query := `
		SELECT id, club_id, creator_id, media_url, media_type, caption, created_at, expires_at
		FROM stories
		WHERE id = $1
	`

	var story models.Story
	err := r.db.QueryRow(ctx, query, id).Scan(
		&story.ID,
		&story.ClubID,
		&story.CreatorID,
		&story.MediaURL,
		&story.MediaType,
		&story.Caption,
		&story.CreatedAt,
		&story.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStoryNotFound
		}
		return nil, fmt.Errorf("error retrieving story: %w", err)
	}

	return &story, nil
}

// GetActiveByClubIDs retrieves unexpired stories for the given clubs with
// their club denormalized, newest first. Expiry is a query-time filter; rows
// past their expiry stay in the table but never surface here.
func (r *StoryRepository) GetActiveByClubIDs(ctx context.Context, clubIDs []int64, now time.Time) ([]*models.Story, error) {
	if len(clubIDs) == 0 {
		return nil, nil
	}

	query := squirrel.Select(
		"s.id", "s.club_id", "s.creator_id", "s.media_url", "s.media_type", "s.caption",
		"s.created_at", "s.expires_at",
		"c.id", "c.name", "c.category", "c.description", "c.logo_url",
		"c.created_by", "c.members_count", "c.created_at", "c.updated_at",
	).
		From("stories s").
		Join("clubs c ON c.id = s.club_id").
		Where(squirrel.Eq{"s.club_id": clubIDs}).
		Where(squirrel.Gt{"s.expires_at": now}).
		OrderBy("s.created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var stories []*models.Story
	for rows.Next() {
		var story models.Story
		var club models.Club
		err := rows.Scan(
			&story.ID,
			&story.ClubID,
			&story.CreatorID,
			&story.MediaURL,
			&story.MediaType,
			&story.Caption,
			&story.CreatedAt,
			&story.ExpiresAt,
			&club.ID,
			&club.Name,
			&club.Category,
			&club.Description,
			&club.LogoURL,
			&club.CreatedBy,
			&club.MembersCount,
			&club.CreatedAt,
			&club.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning story row: %w", err)
		}
		story.Club = &club
		stories = append(stories, &story)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating story rows: %w", err)
	}

	return stories, nil
}

// Delete removes a story
func (r *StoryRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM stories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting story: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrStoryNotFound
	}

	return nil
}
