package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ardaseremet/clubhub/internal/app/models/dto"
	"github.com/ardaseremet/clubhub/internal/app/repositories"
)

// UserService defines the interface for user profile operations
type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*dto.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
	GetUserByID(ctx context.Context, id int64) (*dto.UserProfileResponse, error)
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	userRepo *repositories.UserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo *repositories.UserRepository, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetProfile returns the caller's own profile
func (s *userServiceImpl) GetProfile(ctx context.Context, userID int64) (*dto.UserProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := dto.ToUserProfileResponse(user)
	return &response, nil
}

// UpdateProfile applies the provided fields to the caller's profile. Absent
// fields keep their current values.
func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}
	if req.Skills != nil {
		user.Skills = req.Skills
	}
	if req.Interests != nil {
		user.Interests = req.Interests
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("userID", userID).
		Msg("Profile updated")

	response := dto.ToUserProfileResponse(user)
	return &response, nil
}

// GetUserByID returns another user's profile
func (s *userServiceImpl) GetUserByID(ctx context.Context, id int64) (*dto.UserProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := dto.ToUserProfileResponse(user)
	return &response, nil
}
