package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ardaseremet/clubhub/internal/app/models"
	"github.com/ardaseremet/clubhub/internal/pkg/apperrors"
)

// ClubMemberRepository handles database operations for club memberships
type ClubMemberRepository struct {
	db *pgxpool.Pool
}

// NewClubMemberRepository creates a new ClubMemberRepository
func NewClubMemberRepository(db *pgxpool.Pool) *ClubMemberRepository {
	return &ClubMemberRepository{db: db}
}

// Add inserts a membership row. Joining twice is a no-op.
func (r *ClubMemberRepository) Add(ctx context.Context, clubID, userID int64, isAdmin bool) (bool, error) {
	query := `
		INSERT INTO club_members (club_id, user_id, is_admin)
		VALUES ($1, $2, $3)
		ON CONFLICT (club_id, user_id) DO NOTHING
	`

	result, err := r.db.Exec(ctx, query, clubID, userID, isAdmin)
	if err != nil {
		return false, fmt.Errorf("error adding club member: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// Remove deletes a membership row
func (r *ClubMemberRepository) Remove(ctx context.Context, clubID, userID int64) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM club_members WHERE club_id = $1 AND user_id = $2`, clubID, userID)
	if err != nil {
		return fmt.Errorf("error removing club member: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotClubMember
	}

	return nil
}

// IsMember reports whether the user belongs to the club
func (r *ClubMemberRepository) IsMember(ctx context.Context, clubID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM club_members WHERE club_id = $1 AND user_id = $2)`,
		clubID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking club membership: %w", err)
	}
	return exists, nil
}

// IsAdmin reports whether the user is an admin of the club
func (r *ClubMemberRepository) IsAdmin(ctx context.Context, clubID, userID int64) (bool, error) {
	var isAdmin bool
	err := r.db.QueryRow(ctx,
		`SELECT is_admin FROM club_members WHERE club_id = $1 AND user_id = $2`,
		clubID, userID).Scan(&isAdmin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error checking club admin: %w", err)
	}
	return isAdmin, nil
}

// GetMembers retrieves the club's members with their user profiles
func (r *ClubMemberRepository) GetMembers(ctx context.Context, clubID int64) ([]*models.ClubMember, error) {
	query := `
		SELECT cm.club_id, cm.user_id, cm.is_admin, cm.joined_at,
		       u.id, u.email, u.password_hash, u.first_name, u.last_name,
		       u.bio, u.avatar_url, u.skills, u.interests, u.created_at, u.updated_at
		FROM club_members cm
		JOIN users u ON u.id = cm.user_id
		WHERE cm.club_id = $1
		ORDER BY cm.joined_at ASC
	`

	rows, err := r.db.Query(ctx, query, clubID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var members []*models.ClubMember
	for rows.Next() {
		var member models.ClubMember
		var user models.User
		err := rows.Scan(
			&member.ClubID,
			&member.UserID,
			&member.IsAdmin,
			&member.JoinedAt,
			&user.ID,
			&user.Email,
			&user.PasswordHash,
			&user.FirstName,
			&user.LastName,
			&user.Bio,
			&user.AvatarURL,
			&user.Skills,
			&user.Interests,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning member row: %w", err)
		}
		member.User = &user
		members = append(members, &member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member rows: %w", err)
	}

	return members, nil
}

// GetClubIDsByUser retrieves the IDs of the clubs the user belongs to
func (r *ClubMemberRepository) GetClubIDsByUser(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT club_id FROM club_members WHERE user_id = $1 ORDER BY joined_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var clubIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning club id: %w", err)
		}
		clubIDs = append(clubIDs, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return clubIDs, nil
}

// SetAdmin toggles a member's admin flag
func (r *ClubMemberRepository) SetAdmin(ctx context.Context, clubID, userID int64, isAdmin bool) error {
	result, err := r.db.Exec(ctx,
		`UPDATE club_members SET is_admin = $1 WHERE club_id = $2 AND user_id = $3`,
		isAdmin, clubID, userID)
	if err != nil {
		return fmt.Errorf("error updating club member: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotClubMember
	}

	return nil
}
