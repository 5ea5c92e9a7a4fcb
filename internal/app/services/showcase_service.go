package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ardaseremet/clubhub/internal/app/models"
	"github.com/ardaseremet/clubhub/internal/app/models/dto"
	"github.com/ardaseremet/clubhub/internal/pkg/helpers"
)

const (
	// showcaseLimit is the length of each ranked section
	showcaseLimit = 10

	// trendingWindow is the trailing window for the trending section
	trendingWindow = 14 * 24 * time.Hour
)

// PostRankingStore serves the ranked post queries behind the showcase
type PostRankingStore interface {
	TopViewedSince(ctx context.Context, since time.Time, limit int) ([]*models.Post, error)
	TopLikedSince(ctx context.Context, since time.Time, limit int) ([]*models.Post, error)
	TopVideosSince(ctx context.Context, since time.Time, limit int) ([]*models.Post, error)
}

// ClubRankingStore serves the ranked club query behind the showcase
type ClubRankingStore interface {
	GetTopByMembers(ctx context.Context, limit int) ([]*models.Club, error)
}

// ShowcaseService assembles the ranked discovery feed
type ShowcaseService interface {
	GetShowcase(ctx context.Context) (*dto.ShowcaseResponse, error)
}

// showcaseServiceImpl implements ShowcaseService
type showcaseServiceImpl struct {
	postStore PostRankingStore
	clubStore ClubRankingStore
	now       func() time.Time
	logger    zerolog.Logger
}

// NewShowcaseService creates a new ShowcaseService
func NewShowcaseService(postStore PostRankingStore, clubStore ClubRankingStore, logger zerolog.Logger) ShowcaseService {
	return &showcaseServiceImpl{
		postStore: postStore,
		clubStore: clubStore,
		now:       time.Now,
		logger:    logger,
	}
}

// GetShowcase runs the five ranked queries concurrently and assembles the
// feed. "This month" is the local calendar month containing now, recomputed
// on every call; results are never cached, so the feed resets naturally at
// each month boundary.
func (s *showcaseServiceImpl) GetShowcase(ctx context.Context) (*dto.ShowcaseResponse, error) {
	now := s.now()
	monthStart := helpers.MonthStart(now)
	trendingStart := now.Add(-trendingWindow)

	var (
		topViewed, topLiked, trending, topVideos []*models.Post
		topClubs                                 []*models.Club
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		topViewed, err = s.postStore.TopViewedSince(gctx, monthStart, showcaseLimit)
		return err
	})
	g.Go(func() error {
		var err error
		topLiked, err = s.postStore.TopLikedSince(gctx, monthStart, showcaseLimit)
		return err
	})
	g.Go(func() error {
		var err error
		trending, err = s.postStore.TopViewedSince(gctx, trendingStart, showcaseLimit)
		return err
	})
	g.Go(func() error {
		var err error
		topVideos, err = s.postStore.TopVideosSince(gctx, monthStart, showcaseLimit)
		return err
	})
	g.Go(func() error {
		var err error
		topClubs, err = s.clubStore.GetTopByMembers(gctx, showcaseLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("Showcase query failed")
		return nil, err
	}

	response := &dto.ShowcaseResponse{
		TopViewed:   toPostResponses(topViewed),
		TopLiked:    toPostResponses(topLiked),
		Trending:    toPostResponses(trending),
		TopVideos:   toPostResponses(topVideos),
		TopClubs:    make([]dto.ClubResponse, 0, len(topClubs)),
		GeneratedAt: now,
	}
	for _, club := range topClubs {
		response.TopClubs = append(response.TopClubs, dto.ToClubResponse(club))
	}

	return response, nil
}

func toPostResponses(posts []*models.Post) []dto.PostResponse {
	responses := make([]dto.PostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, dto.ToPostResponse(post))
	}
	return responses
}
