package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ardaseremet/clubhub/internal/app/models"
	"github.com/ardaseremet/clubhub/internal/app/models/dto"
	"github.com/ardaseremet/clubhub/internal/app/repositories"
	"github.com/ardaseremet/clubhub/internal/pkg/apperrors"
	"github.com/ardaseremet/clubhub/internal/pkg/helpers"
)

// PostService defines the interface for post operations
type PostService interface {
	CreatePost(ctx context.Context, userID, clubID int64, req *dto.CreatePostRequest) (*dto.PostResponse, error)
	GetPostByID(ctx context.Context, id int64) (*dto.PostResponse, error)
	GetClubPosts(ctx context.Context, clubID int64, page, pageSize int) (*dto.PostListResponse, error)
	DeletePost(ctx context.Context, userID, postID int64) error
	AddView(ctx context.Context, postID int64) error
	LikePost(ctx context.Context, postID int64) error
	UnlikePost(ctx context.Context, postID int64) error
}

// postServiceImpl implements PostService
type postServiceImpl struct {
	postRepo   *repositories.PostRepository
	memberRepo *repositories.ClubMemberRepository
	userRepo   *repositories.UserRepository
	logger     zerolog.Logger
}

// NewPostService creates a new PostService
func NewPostService(
	postRepo *repositories.PostRepository,
	memberRepo *repositories.ClubMemberRepository,
	userRepo *repositories.UserRepository,
	logger zerolog.Logger,
) PostService {
	return &postServiceImpl{
		postRepo:   postRepo,
		memberRepo: memberRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// CreatePost publishes a post in a club the author belongs to
func (s *postServiceImpl) CreatePost(ctx context.Context, userID, clubID int64, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	isMember, err := s.memberRepo.IsMember(ctx, clubID, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, apperrors.ErrNotClubMember
	}

	post := &models.Post{
		ClubID:   clubID,
		AuthorID: userID,
		Content:  req.Content,
		ImageURL: req.ImageURL,
		VideoURL: req.VideoURL,
	}

	if _, err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("postID", post.ID).
		Int64("clubID", clubID).
		Int64("userID", userID).
		Msg("Post created")

	created, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	response := dto.ToPostResponse(created)
	return &response, nil
}

// GetPostByID retrieves one post with its club and author
func (s *postServiceImpl) GetPostByID(ctx context.Context, id int64) (*dto.PostResponse, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if author, err := s.userRepo.FindByID(ctx, post.AuthorID); err == nil {
		post.Author = author
	}

	response := dto.ToPostResponse(post)
	return &response, nil
}

// GetClubPosts lists a club's posts, newest first
func (s *postServiceImpl) GetClubPosts(ctx context.Context, clubID int64, page, pageSize int) (*dto.PostListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	posts, total, err := s.postRepo.GetByClubID(ctx, clubID, int(offset), limit)
	if err != nil {
		return nil, err
	}

	response := &dto.PostListResponse{
		Posts:          make([]dto.PostResponse, 0, len(posts)),
		PaginationInfo: helpers.NewPaginationInfo(total, page, limit),
	}
	for _, post := range posts {
		response.Posts = append(response.Posts, dto.ToPostResponse(post))
	}

	return response, nil
}

// DeletePost removes a post. Allowed for the author and for admins of the
// post's club.
func (s *postServiceImpl) DeletePost(ctx context.Context, userID, postID int64) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.AuthorID != userID {
		isAdmin, err := s.memberRepo.IsAdmin(ctx, post.ClubID, userID)
		if err != nil {
			return err
		}
		if !isAdmin {
			return apperrors.ErrPermissionDenied
		}
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	s.logger.Info().
		Int64("postID", postID).
		Int64("userID", userID).
		Msg("Post deleted")

	return nil
}

// AddView bumps the view counter
func (s *postServiceImpl) AddView(ctx context.Context, postID int64) error {
	return s.postRepo.IncrementViews(ctx, postID)
}

// LikePost bumps the like counter
func (s *postServiceImpl) LikePost(ctx context.Context, postID int64) error {
	return s.postRepo.AdjustLikes(ctx, postID, 1)
}

// UnlikePost drops the like counter, never below zero
func (s *postServiceImpl) UnlikePost(ctx context.Context, postID int64) error {
	return s.postRepo.AdjustLikes(ctx, postID, -1)
}
