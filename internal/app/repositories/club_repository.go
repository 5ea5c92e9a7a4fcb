package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ardaseremet/clubhub/internal/app/models"
	"github.com/ardaseremet/clubhub/internal/pkg/apperrors"
)

// ClubRepository handles database operations for clubs
type ClubRepository struct {
	db *pgxpool.Pool
}

// NewClubRepository creates a new ClubRepository
func NewClubRepository(db *pgxpool.Pool) *ClubRepository {
	return &ClubRepository{db: db}
}

const clubColumns = `id, name, category, description, logo_url, created_by, members_count, created_at, updated_at`

func scanClub(row pgx.Row) (*models.Club, error) {
	var club models.Club
	err := row.Scan(
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
		return nil, err
	}
	return &club, nil
}

// Create inserts a new club
func (r *ClubRepository) Create(ctx context.Context, club *models.Club) (int64, error) {
	query := `
		INSERT INTO clubs (name, category, description, logo_url, created_by, members_count)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		club.Name,
		club.Category,
		club.Description,
		club.LogoURL,
		club.CreatedBy,
		club.MembersCount,
	).Scan(&club.ID, &club.CreatedAt, &club.UpdatedAt)

	if err != nil {
		return 0, fmt.Errorf("error creating club: %w", err)
	}

	return club.ID, nil
}

// GetByID retrieves a club by ID
func (r *ClubRepository) GetByID(ctx context.Context, id int64) (*models.Club, error) {
	query := `SELECT ` + clubColumns + ` FROM clubs WHERE id = $1`

	club, err := scanClub(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClubNotFound
		}
		return nil, fmt.Errorf("error retrieving club: %w", err)
	}

	return club, nil
}

// GetByIDs retrieves multiple clubs in one round trip
func (r *ClubRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.Club, error) {
	clubs := make(map[int64]*models.Club, len(ids))
	if len(ids) == 0 {
		return clubs, nil
	}

	query := squirrel.Select(strings.Split(clubColumns, ", ")...).
		From("clubs").
		Where(squirrel.Eq{"id": ids}).
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

	for rows.Next() {
		club, err := scanClub(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning club row: %w", err)
		}
		clubs[club.ID] = club
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating club rows: %w", err)
	}

	return clubs, nil
}

// GetAll retrieves clubs with optional search and category filters
func (r *ClubRepository) GetAll(ctx context.Context, search, category string, offset, limit int) ([]*models.Club, int64, error) {
	base := squirrel.Select(strings.Split(clubColumns, ", ")...).
		From("clubs").
		PlaceholderFormat(squirrel.Dollar)

	countQuery := squirrel.Select("COUNT(*)").
		From("clubs").
		PlaceholderFormat(squirrel.Dollar)

	if search != "" {
		like := "%" + search + "%"
		cond := squirrel.Or{
			squirrel.ILike{"name": like},
			squirrel.ILike{"description": like},
		}
		base = base.Where(cond)
		countQuery = countQuery.Where(cond)
	}
	if category != "" {
		base = base.Where(squirrel.Eq{"category": category})
		countQuery = countQuery.Where(squirrel.Eq{"category": category})
	}

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building count SQL: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting clubs: %w", err)
	}

	listSQL, listArgs, err := base.
		OrderBy("members_count DESC", "name ASC").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	clubs := make([]*models.Club, 0, limit)
	for rows.Next() {
		club, err := scanClub(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning club row: %w", err)
		}
		clubs = append(clubs, club)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating club rows: %w", err)
	}

	return clubs, total, nil
}

// GetTopByMembers retrieves the clubs with the most members
func (r *ClubRepository) GetTopByMembers(ctx context.Context, limit int) ([]*models.Club, error) {
	query := `SELECT ` + clubColumns + ` FROM clubs ORDER BY members_count DESC, id ASC LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	clubs := make([]*models.Club, 0, limit)
	for rows.Next() {
		club, err := scanClub(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning club row: %w", err)
		}
		clubs = append(clubs, club)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating club rows: %w", err)
	}

	return clubs, nil
}

// Update updates a club's mutable fields
func (r *ClubRepository) Update(ctx context.Context, club *models.Club) error {
	query := `
		UPDATE clubs
		SET name = $1, category = $2, description = $3, logo_url = $4, updated_at = NOW()
		WHERE id = $5
	`

	result, err := r.db.Exec(ctx, query,
		club.Name,
		club.Category,
		club.Description,
		club.LogoURL,
		club.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating club: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrClubNotFound
	}

	return nil
}

// AdjustMembersCount shifts the denormalized member counter by delta
func (r *ClubRepository) AdjustMembersCount(ctx context.Context, clubID int64, delta int) error {
	query := `
		UPDATE clubs
		SET members_count = GREATEST(members_count + $1, 0), updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.db.Exec(ctx, query, delta, clubID)
	if err != nil {
		return fmt.Errorf("error adjusting members count: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrClubNotFound
	}

	return nil
}

// Delete removes a club
func (r *ClubRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM clubs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting club: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrClubNotFound
	}

	return nil
}
