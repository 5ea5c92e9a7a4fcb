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
	"github.com/ardaseremet/clubhub/internal/pkg/auth"
)

type fakeAccountStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{users: make(map[int64]*models.User)}
}

func (s *fakeAccountStore) Create(ctx context.Context, user *models.User) (int64, error) {
	s.nextID++
	user.ID = s.nextID
	stored := *user
	s.users[user.ID] = &stored
	return user.ID, nil
}

func (s *fakeAccountStore) FindByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (s *fakeAccountStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeAccountStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.FindByEmail(ctx, email)
	return err == nil, nil
}

type fakeRefreshTokenStore struct {
	tokens map[string]*models.RefreshToken
}

func newFakeRefreshTokenStore() *fakeRefreshTokenStore {
	return &fakeRefreshTokenStore{tokens: make(map[string]*models.RefreshToken)}
}

func (s *fakeRefreshTokenStore) Save(ctx context.Context, token *models.RefreshToken) error {
	stored := *token
	s.tokens[token.Token] = &stored
	return nil
}

func (s *fakeRefreshTokenStore) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	stored, ok := s.tokens[token]
	if !ok {
		return nil, apperrors.ErrTokenNotFound
	}
	return stored, nil
}

func (s *fakeRefreshTokenStore) Delete(ctx context.Context, token string) error {
	delete(s.tokens, token)
	return nil
}

type authFixture struct {
	accounts *fakeAccountStore
	tokens   *fakeRefreshTokenStore
	service  *AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		accounts: newFakeAccountStore(),
		tokens:   newFakeRefreshTokenStore(),
	}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "clubhub.test",
	})
	f.service = NewAuthService(f.accounts, f.tokens, jwtService, zerolog.Nop())
	return f
}

func (f *authFixture) register(t *testing.T, email, password string) *dto.TokenResponse {
	t.Helper()
	tokens, err := f.service.Register(context.Background(), &dto.RegisterRequest{
		Email:     email,
		Password:  password,
		FirstName: "Arda",
		LastName:  "Demir",
	})
	require.NoError(t, err)
	return tokens
}

func TestRegister(t *testing.T) {
	t.Run("issues tokens and stores a hashed password", func(t *testing.T) {
		f := newAuthFixture()

		tokens := f.register(t, "Arda@Example.com ", "s3cret-pass")

		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
		assert.Equal(t, "Bearer", tokens.TokenType)
		require.Len(t, f.tokens.tokens, 1)

		user, err := f.accounts.FindByEmail(context.Background(), "arda@example.com")
		require.NoError(t, err)
		assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
		assert.True(t, auth.CheckPassword(user.PasswordHash, "s3cret-pass"))
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		f := newAuthFixture()
		f.register(t, "arda@example.com", "s3cret-pass")

		_, err := f.service.Register(context.Background(), &dto.RegisterRequest{
			Email:     "ARDA@example.com",
			Password:  "other-pass",
			FirstName: "Arda",
			LastName:  "Demir",
		})
		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	})
}

func TestLogin(t *testing.T) {
	t.Run("valid credentials issue a fresh token pair", func(t *testing.T) {
		f := newAuthFixture()
		f.register(t, "arda@example.com", "s3cret-pass")

		tokens, err := f.service.Login(context.Background(), &dto.LoginRequest{
			Email:    "arda@example.com",
			Password: "s3cret-pass",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
	})

	t.Run("wrong password is invalid credentials", func(t *testing.T) {
		f := newAuthFixture()
		f.register(t, "arda@example.com", "s3cret-pass")

		_, err := f.service.Login(context.Background(), &dto.LoginRequest{
			Email:    "arda@example.com",
			Password: "wrong-pass",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown email is indistinguishable from a wrong password", func(t *testing.T) {
		f := newAuthFixture()

		_, err := f.service.Login(context.Background(), &dto.LoginRequest{
			Email:    "nobody@example.com",
			Password: "whatever-pass",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}

func TestRefreshToken(t *testing.T) {
	t.Run("rotates the refresh token", func(t *testing.T) {
		f := newAuthFixture()
		issued := f.register(t, "arda@example.com", "s3cret-pass")

		rotated, err := f.service.RefreshToken(context.Background(), issued.RefreshToken)
		require.NoError(t, err)

		assert.NotEqual(t, issued.RefreshToken, rotated.RefreshToken)
		_, err = f.tokens.Find(context.Background(), issued.RefreshToken)
		assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
		_, err = f.tokens.Find(context.Background(), rotated.RefreshToken)
		assert.NoError(t, err)
	})

	t.Run("expired token is revoked", func(t *testing.T) {
		f := newAuthFixture()
		issued := f.register(t, "arda@example.com", "s3cret-pass")
		f.tokens.tokens[issued.RefreshToken].ExpiresAt = time.Now().Add(-time.Minute)

		_, err := f.service.RefreshToken(context.Background(), issued.RefreshToken)
		assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
		_, err = f.tokens.Find(context.Background(), issued.RefreshToken)
		assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
	})

	t.Run("unknown token", func(t *testing.T) {
		f := newAuthFixture()

		_, err := f.service.RefreshToken(context.Background(), "never-issued")
		assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
	})
}

func TestLogout(t *testing.T) {
	f := newAuthFixture()
	issued := f.register(t, "arda@example.com", "s3cret-pass")

	require.NoError(t, f.service.Logout(context.Background(), issued.RefreshToken))

	_, err := f.tokens.Find(context.Background(), issued.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}
