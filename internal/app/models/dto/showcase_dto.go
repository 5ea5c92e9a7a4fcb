package dto

import "time"

// ShowcaseResponse is the ranked-content discovery feed
type ShowcaseResponse struct {
	TopViewed []PostResponse `json:"topViewed"`
	TopLiked  []PostResponse `json:"topLiked"`
	Trending  []PostResponse `json:"trending"`
	TopClubs  []ClubResponse `json:"topClubs"`
	TopVideos []PostResponse `json:"topVideos"`

	// GeneratedAt is the wall-clock instant the ranking windows were derived from
	GeneratedAt time.Time `json:"generatedAt"`
}
