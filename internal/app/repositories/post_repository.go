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

// PostRepository handles database operations for club posts
type PostRepository struct {
	db *pgxpool.Pool
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{db: db}
}

const postColumns = `p.id, p.club_id, p.author_id, p.content, p.image_url, p.video_url,
	p.likes_count, p.comments_count, p.views_count, p.created_at,
	c.id, c.name, c.category, c.description, c.logo_url, c.created_by, c.members_count, c.created_at, c.updated_at`

func scanPostWithClub(row pgx.Row) (*models.Post, error) {
	var post models.Post
	var club models.Club

	err := row.Scan(
		&post.ID,
		&post.ClubID,
		&post.AuthorID,
		&post.Content,
		&post.ImageURL,
		&post.VideoURL,
		&post.LikesCount,
		&post.CommentsCount,
		&post.ViewsCount,
		&post.CreatedAt,
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

	post.Club = &club
	return &post, nil
}

func (r *PostRepository) queryPosts(ctx context.Context, query string, args ...any) ([]*models.Post, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPostWithClub(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning post row: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	return posts, nil
}

// Create inserts a new post
func (r *PostRepository) Create(ctx context.Context, post *models.Post) (int64, error) {
	query := `
		INSERT INTO posts (club_id, author_id, content, image_url, video_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		post.ClubID,
		post.AuthorID,
		post.Content,
		post.ImageURL,
		post.VideoURL,
	).Scan(&post.ID, &post.CreatedAt)

	if err != nil {
		return 0, fmt.Errorf("error creating post: %w", err)
	}

	return post.ID, nil
}

// GetByID retrieves a post with its club
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN clubs c ON c.id = p.club_id
		WHERE p.id = $1
	`

	post, err := scanPostWithClub(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("error retrieving post: %w", err)
	}

	return post, nil
}

// GetByClubID retrieves a club's posts, newest first
func (r *PostRepository) GetByClubID(ctx context.Context, clubID int64, offset, limit int) ([]*models.Post, int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts WHERE club_id = $1`, clubID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting posts: %w", err)
	}

	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN clubs c ON c.id = p.club_id
		WHERE p.club_id = $1
		ORDER BY p.created_at DESC
		OFFSET $2 LIMIT $3
	`

	posts, err := r.queryPosts(ctx, query, clubID, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// Delete removes a post
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting post: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}

	return nil
}

// IncrementViews bumps a post's view counter
func (r *PostRepository) IncrementViews(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE posts SET views_count = views_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error incrementing views: %w", err)
	}
	return nil
}

// AdjustLikes shifts a post's like counter by delta, clamped at zero
func (r *PostRepository) AdjustLikes(ctx context.Context, id int64, delta int) error {
	result, err := r.db.Exec(ctx,
		`UPDATE posts SET likes_count = GREATEST(likes_count + $1, 0) WHERE id = $2`, delta, id)
	if err != nil {
		return fmt.Errorf("error adjusting likes: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}

	return nil
}

// TopViewedSince retrieves the most viewed posts created at or after since
func (r *PostRepository) TopViewedSince(ctx context.Context, since time.Time, limit int) ([]*models.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN clubs c ON c.id = p.club_id
		WHERE p.created_at >= $1
		ORDER BY p.views_count DESC, p.created_at DESC
		LIMIT $2
	`

	return r.queryPosts(ctx, query, since, limit)
}

// TopLikedSince retrieves the most liked posts created at or after since
func (r *PostRepository) TopLikedSince(ctx context.Context, since time.Time, limit int) ([]*models.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN clubs c ON c.id = p.club_id
		WHERE p.created_at >= $1
		ORDER BY p.likes_count DESC, p.created_at DESC
		LIMIT $2
	`

	return r.queryPosts(ctx, query, since, limit)
}

// TopVideosSince retrieves the most viewed video posts created at or after since
func (r *PostRepository) TopVideosSince(ctx context.Context, since time.Time, limit int) ([]*models.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN clubs c ON c.id = p.club_id
		WHERE p.created_at >= $1 AND p.video_url IS NOT NULL
		ORDER BY p.views_count DESC, p.created_at DESC
		LIMIT $2
	`

	return r.queryPosts(ctx, query, since, limit)
}
