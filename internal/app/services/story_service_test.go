package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardaseremet/clubhub/internal/app/models"
	"github.com/ardaseremet/clubhub/internal/app/models/dto"
	"github.com/ardaseremet/clubhub/internal/pkg/apperrors"
)

type fakeStoryStore struct {
	stories []*models.Story
	nextID  int64
	batches [][]int64
	nowArgs []time.Time
}

func (s *fakeStoryStore) Create(ctx context.Context, story *models.Story) (int64, error) {
	s.nextID++
	story.ID = s.nextID
	stored := *story
	s.stories = append(s.stories, &stored)
	return story.ID, nil
}

func (s *fakeStoryStore) GetActiveByClubIDs(ctx context.Context, clubIDs []int64, now time.Time) ([]*models.Story, error) {
	s.batches = append(s.batches, clubIDs)
	s.nowArgs = append(s.nowArgs, now)

	var active []*models.Story
	for _, story := range s.stories {
		if !story.ExpiresAt.After(now) {
			continue
		}
		for _, clubID := range clubIDs {
			if story.ClubID == clubID {
				active = append(active, story)
				break
			}
		}
	}
	return active, nil
}

type fakeStoryMembership struct {
	admins  map[int64]map[int64]bool
	clubIDs map[int64][]int64
}

func (s *fakeStoryMembership) IsAdmin(ctx context.Context, clubID, userID int64) (bool, error) {
	return s.admins[clubID][userID], nil
}

func (s *fakeStoryMembership) GetClubIDsByUser(ctx context.Context, userID int64) ([]int64, error) {
	return s.clubIDs[userID], nil
}

func newStoryService(store *fakeStoryStore, membership *fakeStoryMembership, now time.Time) StoryService {
	service := NewStoryService(store, membership, zerolog.Nop()).(*storyServiceImpl)
	service.now = func() time.Time { return now }
	return service
}

func TestCreateStory(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	membership := &fakeStoryMembership{admins: map[int64]map[int64]bool{10: {1: true}}}

	t.Run("expiry is fixed at creation", func(t *testing.T) {
		store := &fakeStoryStore{}
		service := newStoryService(store, membership, now)

		story, err := service.CreateStory(context.Background(), 1, 10, &dto.CreateStoryRequest{
			MediaURL:  "https://cdn.example.com/s.jpg",
			MediaType: "image",
			Caption:   "kick-off",
		})
		require.NoError(t, err)

		assert.Equal(t, now, story.CreatedAt)
		assert.Equal(t, now.Add(24*time.Hour), story.ExpiresAt)
		assert.Equal(t, int64(10), story.ClubID)
		assert.Equal(t, int64(1), story.CreatorID)
	})

	t.Run("requires club admin", func(t *testing.T) {
		store := &fakeStoryStore{}
		service := newStoryService(store, membership, now)

		_, err := service.CreateStory(context.Background(), 2, 10, &dto.CreateStoryRequest{
			MediaURL:  "https://cdn.example.com/s.jpg",
			MediaType: "image",
		})
		assert.ErrorIs(t, err, apperrors.ErrNotClubAdmin)
		assert.Empty(t, store.stories)
	})
}

func TestGetUserStories(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	t.Run("filters expired stories", func(t *testing.T) {
		store := &fakeStoryStore{stories: []*models.Story{
			{ID: 1, ClubID: 10, MediaURL: "a", ExpiresAt: now.Add(time.Hour)},
			{ID: 2, ClubID: 10, MediaURL: "b", ExpiresAt: now.Add(-time.Minute)},
			{ID: 3, ClubID: 20, MediaURL: "c", ExpiresAt: now.Add(23 * time.Hour)},
		}}
		membership := &fakeStoryMembership{clubIDs: map[int64][]int64{1: {10, 20}}}
		service := newStoryService(store, membership, now)

		stories, err := service.GetUserStories(context.Background(), 1)
		require.NoError(t, err)

		require.Len(t, stories.Stories, 2)
		ids := []int64{stories.Stories[0].ID, stories.Stories[1].ID}
		assert.ElementsMatch(t, []int64{1, 3}, ids)
	})

	t.Run("queries clubs in fixed-size batches", func(t *testing.T) {
		clubIDs := make([]int64, 25)
		for i := range clubIDs {
			clubIDs[i] = int64(100 + i)
		}
		store := &fakeStoryStore{}
		membership := &fakeStoryMembership{clubIDs: map[int64][]int64{1: clubIDs}}
		service := newStoryService(store, membership, now)

		_, err := service.GetUserStories(context.Background(), 1)
		require.NoError(t, err)

		require.Len(t, store.batches, 3)
		assert.Len(t, store.batches[0], 10)
		assert.Len(t, store.batches[1], 10)
		assert.Len(t, store.batches[2], 5)

		for _, arg := range store.nowArgs {
			assert.Equal(t, now, arg)
		}
	})

	t.Run("no clubs yields an empty list", func(t *testing.T) {
		store := &fakeStoryStore{}
		membership := &fakeStoryMembership{clubIDs: map[int64][]int64{}}
		service := newStoryService(store, membership, now)

		stories, err := service.GetUserStories(context.Background(), 1)
		require.NoError(t, err)
		assert.Empty(t, stories.Stories)
		assert.Empty(t, store.batches)
	})
}
