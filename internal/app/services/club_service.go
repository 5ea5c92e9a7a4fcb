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

// ClubService defines the interface for club operations
type ClubService interface {
	CreateClub(ctx context.Context, userID int64, req *dto.CreateClubRequest) (*dto.ClubResponse, error)
	GetClubs(ctx context.Context, filter *dto.ClubFilterRequest) (*dto.ClubListResponse, error)
	GetClubByID(ctx context.Context, id int64) (*dto.ClubResponse, error)
	GetClubMembers(ctx context.Context, clubID int64) ([]dto.ClubMemberResponse, error)
	UpdateClub(ctx context.Context, userID, clubID int64, req *dto.UpdateClubRequest) (*dto.ClubResponse, error)
	JoinClub(ctx context.Context, userID, clubID int64) error
	LeaveClub(ctx context.Context, userID, clubID int64) error
	SetAdmin(ctx context.Context, actorID, clubID, userID int64, isAdmin bool) error
}

// clubServiceImpl implements ClubService
type clubServiceImpl struct {
	clubRepo   *repositories.ClubRepository
	memberRepo *repositories.ClubMemberRepository
	logger     zerolog.Logger
}

// NewClubService creates a new ClubService
func NewClubService(
	clubRepo *repositories.ClubRepository,
	memberRepo *repositories.ClubMemberRepository,
	logger zerolog.Logger,
) ClubService {
	return &clubServiceImpl{
		clubRepo:   clubRepo,
		memberRepo: memberRepo,
		logger:     logger,
	}
}

// CreateClub creates a club with the founder as its first member and admin
func (s *clubServiceImpl) CreateClub(ctx context.Context, userID int64, req *dto.CreateClubRequest) (*dto.ClubResponse, error) {
	club := &models.Club{
		Name:         req.Name,
		Category:     req.Category,
		Description:  req.Description,
		LogoURL:      req.LogoURL,
		CreatedBy:    userID,
		MembersCount: 1,
	}

	if _, err := s.clubRepo.Create(ctx, club); err != nil {
		return nil, err
	}

	if _, err := s.memberRepo.Add(ctx, club.ID, userID, true); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("clubID", club.ID).
		Int64("userID", userID).
		Str("name", club.Name).
		Msg("Club created")

	response := dto.ToClubResponse(club)
	return &response, nil
}

// GetClubs lists clubs with optional search and category filters
func (s *clubServiceImpl) GetClubs(ctx context.Context, filter *dto.ClubFilterRequest) (*dto.ClubListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)

	var search, category string
	if filter.Search != nil {
		search = *filter.Search
	}
	if filter.Category != nil {
		category = *filter.Category
	}

	clubs, total, err := s.clubRepo.GetAll(ctx, search, category, int(offset), limit)
	if err != nil {
		return nil, err
	}

	response := &dto.ClubListResponse{
		Clubs:          make([]dto.ClubResponse, 0, len(clubs)),
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, limit),
	}
	for _, club := range clubs {
		response.Clubs = append(response.Clubs, dto.ToClubResponse(club))
	}

	return response, nil
}

// GetClubByID retrieves one club
func (s *clubServiceImpl) GetClubByID(ctx context.Context, id int64) (*dto.ClubResponse, error) {
	club, err := s.clubRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := dto.ToClubResponse(club)
	return &response, nil
}

// GetClubMembers lists the club's members with their profiles
func (s *clubServiceImpl) GetClubMembers(ctx context.Context, clubID int64) ([]dto.ClubMemberResponse, error) {
	if _, err := s.clubRepo.GetByID(ctx, clubID); err != nil {
		return nil, err
	}

	members, err := s.memberRepo.GetMembers(ctx, clubID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ClubMemberResponse, 0, len(members))
	for _, member := range members {
		responses = append(responses, dto.ToClubMemberResponse(member))
	}

	return responses, nil
}

// UpdateClub applies the provided fields. Club admins only.
func (s *clubServiceImpl) UpdateClub(ctx context.Context, userID, clubID int64, req *dto.UpdateClubRequest) (*dto.ClubResponse, error) {
	isAdmin, err := s.memberRepo.IsAdmin(ctx, clubID, userID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, apperrors.ErrNotClubAdmin
	}

	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		club.Name = *req.Name
	}
	if req.Category != nil {
		club.Category = *req.Category
	}
	if req.Description != nil {
		club.Description = *req.Description
	}
	if req.LogoURL != nil {
		club.LogoURL = req.LogoURL
	}

	if err := s.clubRepo.Update(ctx, club); err != nil {
		return nil, err
	}

	response := dto.ToClubResponse(club)
	return &response, nil
}

// JoinClub adds the user as a member. Joining twice is a no-op and does not
// inflate the member counter.
func (s *clubServiceImpl) JoinClub(ctx context.Context, userID, clubID int64) error {
	if _, err := s.clubRepo.GetByID(ctx, clubID); err != nil {
		return err
	}

	added, err := s.memberRepo.Add(ctx, clubID, userID, false)
	if err != nil {
		return err
	}
	if !added {
		return apperrors.ErrAlreadyClubMember
	}

	if err := s.clubRepo.AdjustMembersCount(ctx, clubID, 1); err != nil {
		return err
	}

	s.logger.Info().
		Int64("clubID", clubID).
		Int64("userID", userID).
		Msg("User joined club")

	return nil
}

// LeaveClub removes the user's membership
func (s *clubServiceImpl) LeaveClub(ctx context.Context, userID, clubID int64) error {
	if err := s.memberRepo.Remove(ctx, clubID, userID); err != nil {
		return err
	}

	if err := s.clubRepo.AdjustMembersCount(ctx, clubID, -1); err != nil {
		return err
	}

	s.logger.Info().
		Int64("clubID", clubID).
		Int64("userID", userID).
		Msg("User left club")

	return nil
}

// SetAdmin grants or revokes a member's admin flag. Actors must themselves be
// club admins; members stay members either way, so the admin set remains a
// subset of the member set.
func (s *clubServiceImpl) SetAdmin(ctx context.Context, actorID, clubID, userID int64, isAdmin bool) error {
	actorIsAdmin, err := s.memberRepo.IsAdmin(ctx, clubID, actorID)
	if err != nil {
		return err
	}
	if !actorIsAdmin {
		return apperrors.ErrNotClubAdmin
	}

	if err := s.memberRepo.SetAdmin(ctx, clubID, userID, isAdmin); err != nil {
		return err
	}

	s.logger.Info().
		Int64("clubID", clubID).
		Int64("userID", userID).
		Bool("isAdmin", isAdmin).
		Msg("Club admin flag changed")

	return nil
}
