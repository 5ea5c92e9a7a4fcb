package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ardaseremet/clubhub/internal/app/models"
	"github.com/ardaseremet/clubhub/internal/app/models/dto"
	"github.com/ardaseremet/clubhub/internal/pkg/apperrors"
	"github.com/ardaseremet/clubhub/internal/pkg/helpers"
)

// clubBatchSize caps the number of club ids per active-story query
const clubBatchSize = 10

// StoryStore is the story persistence surface the service depends on
type StoryStore interface {
	Create(ctx context.Context, story *models.Story) (int64, error)
	GetActiveByClubIDs(ctx context.Context, clubIDs []int64, now time.Time) ([]*models.Story, error)
}

// StoryMembershipStore answers the club membership questions stories need
type StoryMembershipStore interface {
	IsAdmin(ctx context.Context, clubID, userID int64) (bool, error)
	GetClubIDsByUser(ctx context.Context, userID int64) ([]int64, error)
}

// StoryService defines the interface for story operations
type StoryService interface {
	CreateStory(ctx context.Context, userID, clubID int64, req *dto.CreateStoryRequest) (*dto.StoryResponse, error)
	GetUserStories(ctx context.Context, userID int64) (*dto.StoryListResponse, error)
}

// storyServiceImpl implements StoryService
type storyServiceImpl struct {
	storyStore StoryStore
	membership StoryMembershipStore
	now        func() time.Time
	logger     zerolog.Logger
}

// NewStoryService creates a new StoryService
func NewStoryService(storyStore StoryStore, membership StoryMembershipStore, logger zerolog.Logger) StoryService {
	return &storyServiceImpl{
		storyStore: storyStore,
		membership: membership,
		now:        time.Now,
		logger:     logger,
	}
}

// CreateStory publishes a 24-hour story on behalf of a club. Club admins only.
// The expiry instant is fixed here; readers filter on it, nothing deletes it.
func (s *storyServiceImpl) CreateStory(ctx context.Context, userID, clubID int64, req *dto.CreateStoryRequest) (*dto.StoryResponse, error) {
	isAdmin, err := s.membership.IsAdmin(ctx, clubID, userID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, apperrors.ErrNotClubAdmin
	}

	now := s.now()
	story := &models.Story{
		ClubID:    clubID,
		CreatorID: userID,
		MediaURL:  req.MediaURL,
		MediaType: req.MediaType,
		Caption:   req.Caption,
		CreatedAt: now,
		ExpiresAt: now.Add(models.StoryTTL),
	}

	if _, err := s.storyStore.Create(ctx, story); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("storyID", story.ID).
		Int64("clubID", clubID).
		Int64("userID", userID).
		Time("expiresAt", story.ExpiresAt).
		Msg("Story created")

	response := dto.ToStoryResponse(story)
	return &response, nil
}

// GetUserStories returns the active stories of every club the user belongs
// to. Club ids are fed to the store in fixed-size batches regardless of how
// many clubs the user has.
func (s *storyServiceImpl) GetUserStories(ctx context.Context, userID int64) (*dto.StoryListResponse, error) {
	clubIDs, err := s.membership.GetClubIDsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	stories, err := helpers.FetchInBatches(clubIDs, clubBatchSize, func(batch []int64) ([]*models.Story, error) {
		return s.storyStore.GetActiveByClubIDs(ctx, batch, now)
	})
	if err != nil {
		return nil, err
	}

	response := &dto.StoryListResponse{
		Stories: make([]dto.StoryResponse, 0, len(stories)),
	}
	for _, story := range stories {
		response.Stories = append(response.Stories, dto.ToStoryResponse(story))
	}

	return response, nil
}
