package dto

import (
	"time"

	"github.com/ardaseremet/clubhub/internal/app/models"
)

// --- Request DTOs ---

// CreateClubRequest represents data for creating a new club
type CreateClubRequest struct {
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Description string  `json:"description"`
	LogoURL     *string `json:"logoUrl,omitempty"`
}

// UpdateClubRequest represents editable club fields
type UpdateClubRequest struct {
	Name        *string `json:"name,omitempty"`
	Category    *string `json:"category,omitempty"`
	Description *string `json:"description,omitempty"`
	LogoURL     *string `json:"logoUrl,omitempty"`
}

// ClubFilterRequest represents filter parameters for listing clubs
type ClubFilterRequest struct {
	Search   *string
	Category *string
	Page     int
	PageSize int
}

// --- Response DTOs ---

// ClubResponse represents a club with basic information
type ClubResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Description  string    `json:"description,omitempty"`
	LogoURL      *string   `json:"logoUrl,omitempty"`
	CreatedBy    int64     `json:"createdBy"`
	MembersCount int       `json:"membersCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ClubMemberResponse represents one club member
type ClubMemberResponse struct {
	UserID   int64     `json:"userId"`
	IsAdmin  bool      `json:"isAdmin"`
	JoinedAt time.Time `json:"joinedAt"`
	User     *UserBasicResponse `json:"user,omitempty"`
}

// ClubListResponse represents a paginated list of clubs
type ClubListResponse struct {
	Clubs          []ClubResponse `json:"clubs"`
	PaginationInfo PaginationInfo `json:"pagination"`
}

// ToClubResponse converts a models.Club to ClubResponse
func ToClubResponse(club *models.Club) ClubResponse {
	return ClubResponse{
		ID:           club.ID,
		Name:         club.Name,
		Category:     club.Category,
		Description:  club.Description,
		LogoURL:      club.LogoURL,
		CreatedBy:    club.CreatedBy,
		MembersCount: club.MembersCount,
		CreatedAt:    club.CreatedAt,
	}
}

// ToClubMemberResponse converts a models.ClubMember to ClubMemberResponse
func ToClubMemberResponse(member *models.ClubMember) ClubMemberResponse {
	response := ClubMemberResponse{
		UserID:   member.UserID,
		IsAdmin:  member.IsAdmin,
		JoinedAt: member.JoinedAt,
	}
	if member.User != nil {
		basic := ToUserBasicResponse(member.User)
		response.User = &basic
	}
	return response
}
