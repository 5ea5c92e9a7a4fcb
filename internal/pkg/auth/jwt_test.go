package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "clubhub.test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	service := newTestJWTService(time.Hour)

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := service.GenerateTokenPair(42, "arda@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)
	assert.Equal(t, 3600, expiresIn)
	assert.Equal(t, int((720 * time.Hour).Seconds()), refreshExpiresIn)

	claims, err := service.ValidateToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "arda@example.com", claims.Email)
	assert.Equal(t, "clubhub.test", claims.Issuer)
}

func TestValidateToken_Expired(t *testing.T) {
	service := newTestJWTService(-time.Minute)

	accessToken, _, _, _, err := service.GenerateTokenPair(1, "a@b.c")
	require.NoError(t, err)

	_, err = service.ValidateToken(accessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	service := newTestJWTService(time.Hour)
	other := NewJWTService(JWTConfig{SecretKey: "different", AccessTokenExp: time.Hour})

	accessToken, _, _, _, err := service.GenerateTokenPair(1, "a@b.c")
	require.NoError(t, err)

	_, err = other.ValidateToken(accessToken)
	assert.Error(t, err)
}

func TestRefreshTokensAreUnique(t *testing.T) {
	service := newTestJWTService(time.Hour)

	_, first, _, _, err := service.GenerateTokenPair(1, "a@b.c")
	require.NoError(t, err)
	_, second, _, _, err := service.GenerateTokenPair(1, "a@b.c")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	for _, header := range []string{"", "abc.def.ghi", "Bearer ", "Basic abc"} {
		_, err := ExtractBearerToken(header)
		assert.ErrorIs(t, err, ErrInvalidFormat, "header %q", header)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPassword(hash, "s3cret-pass"))
	assert.False(t, CheckPassword(hash, "wrong-pass"))
}
