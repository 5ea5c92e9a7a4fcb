package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ardaseremet/clubhub/internal/app/models"
	"github.com/ardaseremet/clubhub/internal/app/models/dto"
	"github.com/ardaseremet/clubhub/internal/pkg/apperrors"
	"github.com/ardaseremet/clubhub/internal/pkg/auth"
)

// AccountStore is the user persistence surface auth depends on
type AccountStore interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// RefreshTokenStore tracks issued refresh tokens
type RefreshTokenStore interface {
	Save(ctx context.Context, token *models.RefreshToken) error
	Find(ctx context.Context, token string) (*models.RefreshToken, error)
	Delete(ctx context.Context, token string) error
}

// AuthService handles registration, login and token lifecycle
type AuthService struct {
	userRepo   AccountStore
	tokenRepo  RefreshTokenStore
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo AccountStore,
	tokenRepo RefreshTokenStore,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates a new account and returns a token pair
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
	}

	if _, err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("userID", user.ID).
		Str("email", email).
		Msg("User registered")

	return s.issueTokens(ctx, user)
}

// Login verifies credentials and returns a token pair
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		// Same failure as a wrong password; don't leak which emails exist
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Warn().
			Int64("userID", user.ID).
			Msg("Login with wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// RefreshToken rotates a refresh token into a new token pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	stored, err := s.tokenRepo.Find(ctx, refreshToken)
	if err != nil {
		return nil, apperrors.ErrTokenNotFound
	}

	if time.Now().After(stored.ExpiresAt) {
		_ = s.tokenRepo.Delete(ctx, refreshToken)
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.userRepo.FindByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.Delete(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes one refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokenRepo.Delete(ctx, refreshToken)
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		s.logger.Error().Err(err).
			Int64("userID", user.ID).
			Msg("Failed to generate token pair")
		return nil, err
	}

	token := &models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: s.jwtService.GetRefreshTokenExpiry(),
	}
	if err := s.tokenRepo.Save(ctx, token); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		TokenType:        "Bearer",
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
	}, nil
}
