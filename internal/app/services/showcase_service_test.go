package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardaseremet/clubhub/internal/app/models"
)

type fakePostRankingStore struct {
	mu         sync.Mutex
	viewedArgs []time.Time
	likedArgs  []time.Time
	videoArgs  []time.Time
	posts      []*models.Post
	err        error
}

func (s *fakePostRankingStore) TopViewedSince(ctx context.Context, since time.Time, limit int) ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewedArgs = append(s.viewedArgs, since)
	return s.posts, s.err
}

func (s *fakePostRankingStore) TopLikedSince(ctx context.Context, since time.Time, limit int) ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.likedArgs = append(s.likedArgs, since)
	return s.posts, s.err
}

func (s *fakePostRankingStore) TopVideosSince(ctx context.Context, since time.Time, limit int) ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.videoArgs = append(s.videoArgs, since)
	return s.posts, s.err
}

type fakeClubRankingStore struct {
	clubs []*models.Club
	err   error
}

func (s *fakeClubRankingStore) GetTopByMembers(ctx context.Context, limit int) ([]*models.Club, error) {
	return s.clubs, s.err
}

func newShowcaseService(posts *fakePostRankingStore, clubs *fakeClubRankingStore, now time.Time) ShowcaseService {
	service := NewShowcaseService(posts, clubs, zerolog.Nop()).(*showcaseServiceImpl)
	service.now = func() time.Time { return now }
	return service
}

func TestGetShowcase(t *testing.T) {
	t.Run("windows are derived from the calendar month and trailing days", func(t *testing.T) {
		now := time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC)
		posts := &fakePostRankingStore{}
		clubs := &fakeClubRankingStore{}
		service := newShowcaseService(posts, clubs, now)

		_, err := service.GetShowcase(context.Background())
		require.NoError(t, err)

		monthStart := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
		trendingStart := now.Add(-14 * 24 * time.Hour)

		// Top viewed and trending share the viewed ranking with different windows
		assert.ElementsMatch(t, []time.Time{monthStart, trendingStart}, posts.viewedArgs)
		assert.Equal(t, []time.Time{monthStart}, posts.likedArgs)
		assert.Equal(t, []time.Time{monthStart}, posts.videoArgs)
	})

	t.Run("month boundary resets the window", func(t *testing.T) {
		now := time.Date(2025, time.April, 1, 0, 0, 1, 0, time.UTC)
		posts := &fakePostRankingStore{}
		service := newShowcaseService(posts, &fakeClubRankingStore{}, now)

		_, err := service.GetShowcase(context.Background())
		require.NoError(t, err)

		monthStart := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
		assert.Contains(t, posts.viewedArgs, monthStart)
	})

	t.Run("assembles all five sections", func(t *testing.T) {
		now := time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC)
		posts := &fakePostRankingStore{posts: []*models.Post{
			{ID: 1, ClubID: 10, Content: "top", Club: &models.Club{ID: 10, Name: "Chess"}},
		}}
		clubs := &fakeClubRankingStore{clubs: []*models.Club{
			{ID: 10, Name: "Chess", MembersCount: 42},
		}}
		service := newShowcaseService(posts, clubs, now)

		showcase, err := service.GetShowcase(context.Background())
		require.NoError(t, err)

		assert.Len(t, showcase.TopViewed, 1)
		assert.Len(t, showcase.TopLiked, 1)
		assert.Len(t, showcase.Trending, 1)
		assert.Len(t, showcase.TopVideos, 1)
		require.Len(t, showcase.TopClubs, 1)
		assert.Equal(t, "Chess", showcase.TopClubs[0].Name)
		assert.Equal(t, now, showcase.GeneratedAt)
	})

	t.Run("any failed section fails the feed", func(t *testing.T) {
		posts := &fakePostRankingStore{err: errors.New("query timeout")}
		service := newShowcaseService(posts, &fakeClubRankingStore{}, time.Now())

		_, err := service.GetShowcase(context.Background())
		require.Error(t, err)
	})
}
