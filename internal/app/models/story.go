package models

import "time"

// StoryTTL is how long a story stays active after creation.
const StoryTTL = 24 * time.Hour

// Story represents a time-limited club media broadcast. Expired stories are
// filtered at query time, never physically purged.
type Story struct {
	ID        int64     `json:"id" db:"id"`
	ClubID    int64     `json:"clubId" db:"club_id"`
	CreatorID int64     `json:"creatorId" db:"creator_id"`
	MediaURL  string    `json:"mediaUrl" db:"media_url"`
	MediaType string    `json:"mediaType" db:"media_type"`
	Caption   string    `json:"caption,omitempty" db:"caption"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`

	// Related entities
	Club *Club `json:"club,omitempty"`
}

// Active reports whether the story has not yet expired at now.
func (s *Story) Active(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}
