package dto

import (
	"time"

	"github.com/ardaseremet/clubhub/internal/app/models"
)

// UserBasicResponse carries the minimal user fields needed for display
type UserBasicResponse struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

// UserProfileResponse represents a full user profile
type UserProfileResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Bio       string    `json:"bio,omitempty"`
	AvatarURL *string   `json:"avatarUrl,omitempty"`
	Skills    []string  `json:"skills,omitempty"`
	Interests []string  `json:"interests,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// UpdateProfileRequest represents editable profile fields
type UpdateProfileRequest struct {
	FirstName *string  `json:"firstName,omitempty"`
	LastName  *string  `json:"lastName,omitempty"`
	Bio       *string  `json:"bio,omitempty"`
	AvatarURL *string  `json:"avatarUrl,omitempty"`
	Skills    []string `json:"skills,omitempty"`
	Interests []string `json:"interests,omitempty"`
}

// ToUserBasicResponse converts a models.User to UserBasicResponse
func ToUserBasicResponse(user *models.User) UserBasicResponse {
	return UserBasicResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		AvatarURL: user.AvatarURL,
	}
}

// ToUserProfileResponse converts a models.User to UserProfileResponse
func ToUserProfileResponse(user *models.User) UserProfileResponse {
	return UserProfileResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Bio:       user.Bio,
		AvatarURL: user.AvatarURL,
		Skills:    user.Skills,
		Interests: user.Interests,
		CreatedAt: user.CreatedAt,
	}
}
