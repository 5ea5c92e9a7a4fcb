package models

import "time"

// Club represents a community group
type Club struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Category     string    `json:"category" db:"category"`
	Description  string    `json:"description,omitempty" db:"description"`
	LogoURL      *string   `json:"logoUrl,omitempty" db:"logo_url"`
	CreatedBy    int64     `json:"createdBy" db:"created_by"`
	MembersCount int       `json:"membersCount" db:"members_count"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Members []*ClubMember `json:"members,omitempty"`
}

// ClubMember represents a user's membership in a club
type ClubMember struct {
	ClubID   int64     `json:"clubId" db:"club_id"`
	UserID   int64     `json:"userId" db:"user_id"`
	IsAdmin  bool      `json:"isAdmin" db:"is_admin"`
	JoinedAt time.Time `json:"joinedAt" db:"joined_at"`

	// Related entities
	User *User `json:"user,omitempty"`
}
