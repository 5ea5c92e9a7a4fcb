package dto

import (
	"time"

	"github.com/ardaseremet/clubhub/internal/app/models"
)

// CreateStoryRequest represents data for creating a club story
type CreateStoryRequest struct {
	MediaURL  string `json:"mediaUrl" binding:"required"`
	MediaType string `json:"mediaType" binding:"required,oneof=image video"`
	Caption   string `json:"caption"`
}

// StoryResponse represents an active story
type StoryResponse struct {
	ID        int64     `json:"id"`
	ClubID    int64     `json:"clubId"`
	ClubName  string    `json:"clubName,omitempty"`
	ClubLogo  *string   `json:"clubLogo,omitempty"`
	CreatorID int64     `json:"creatorId"`
	MediaURL  string    `json:"mediaUrl"`
	MediaType string    `json:"mediaType"`
	Caption   string    `json:"caption,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// StoryListResponse represents the active stories visible to a user
type StoryListResponse struct {
	Stories []StoryResponse `json:"stories"`
}

// ToStoryResponse converts a models.Story to StoryResponse
func ToStoryResponse(story *models.Story) StoryResponse {
	response := StoryResponse{
		ID:        story.ID,
		ClubID:    story.ClubID,
		CreatorID: story.CreatorID,
		MediaURL:  story.MediaURL,
		MediaType: story.MediaType,
		Caption:   story.Caption,
		CreatedAt: story.CreatedAt,
		ExpiresAt: story.ExpiresAt,
	}
	if story.Club != nil {
		response.ClubName = story.Club.Name
		response.ClubLogo = story.Club.LogoURL
	}
	return response
}
