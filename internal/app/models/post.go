package models

import "time"

// Post represents a club-authored feed item
type Post struct {
	ID            int64     `json:"id" db:"id"`
	ClubID        int64     `json:"clubId" db:"club_id"`
	AuthorID      int64     `json:"authorId" db:"author_id"`
	Content       string    `json:"content" db:"content"`
	ImageURL      *string   `json:"imageUrl,omitempty" db:"image_url"`
	VideoURL      *string   `json:"videoUrl,omitempty" db:"video_url"`
	LikesCount    int       `json:"likesCount" db:"likes_count"`
	CommentsCount int       `json:"commentsCount" db:"comments_count"`
	ViewsCount    int       `json:"viewsCount" db:"views_count"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Club   *Club `json:"club,omitempty"`
	Author *User `json:"author,omitempty"`
}
