package dto

import (
	"time"

	"github.com/ardaseremet/clubhub/internal/app/models"
)

// --- Request DTOs ---

// CreatePostRequest represents data for creating a new post
type CreatePostRequest struct {
	Content  string  `json:"content" binding:"required"`
	ImageURL *string `json:"imageUrl,omitempty"`
	VideoURL *string `json:"videoUrl,omitempty"`
}

// --- Response DTOs ---

// PostResponse represents a feed post
type PostResponse struct {
	ID            int64     `json:"id"`
	ClubID        int64     `json:"clubId"`
	AuthorID      int64     `json:"authorId"`
	AuthorName    string    `json:"authorName,omitempty"`
	ClubName      string    `json:"clubName,omitempty"`
	Content       string    `json:"content"`
	ImageURL      *string   `json:"imageUrl,omitempty"`
	VideoURL      *string   `json:"videoUrl,omitempty"`
	LikesCount    int       `json:"likesCount"`
	CommentsCount int       `json:"commentsCount"`
	ViewsCount    int       `json:"viewsCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// PostListResponse represents a paginated list of posts
type PostListResponse struct {
	Posts          []PostResponse `json:"posts"`
	PaginationInfo PaginationInfo `json:"pagination"`
}

// ToPostResponse converts a models.Post to PostResponse
func ToPostResponse(post *models.Post) PostResponse {
	response := PostResponse{
		ID:            post.ID,
		ClubID:        post.ClubID,
		AuthorID:      post.AuthorID,
		Content:       post.Content,
		ImageURL:      post.ImageURL,
		VideoURL:      post.VideoURL,
		LikesCount:    post.LikesCount,
		CommentsCount: post.CommentsCount,
		ViewsCount:    post.ViewsCount,
		CreatedAt:     post.CreatedAt,
	}
	if post.Author != nil {
		response.AuthorName = post.Author.FullName()
	}
	if post.Club != nil {
		response.ClubName = post.Club.Name
	}
	return response
}
