package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tailorent/tailorent-api/internal/config"
	"github.com/tailorent/tailorent-api/internal/domain"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                   "test-secret-key-thats-32-characters-long",
		TokenLifetimeMinutes:        15,
		RefreshTokenLifetimeMinutes: 10080,
	}
}

func TestNewJWTService(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		svc, err := NewJWTService(testAuthConfig())
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})

	t.Run("short secret rejected", func(t *testing.T) {
		cfg := testAuthConfig()
		cfg.JWTSecret = "too-short"
		_, err := NewJWTService(cfg)
		assert.Error(t, err)
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	ctx := context.Background()
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	userID := uuid.New()

	token, err := svc.GenerateToken(ctx, userID, domain.RoleTailor)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, domain.RoleTailor, claims.Role)
	assert.Equal(t, "access", claims.TokenType)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	ctx := context.Background()
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	ctx := context.Background()

	svcA, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	cfgB := testAuthConfig()
	cfgB.JWTSecret = "another-secret-key-also-32-chars-or-more"
	svcB, err := NewJWTService(cfgB)
	require.NoError(t, err)

	token, err := svcA.GenerateToken(ctx, uuid.New(), domain.RoleCustomer)
	require.NoError(t, err)

	_, err = svcB.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenTypeSeparation(t *testing.T) {
	ctx := context.Background()
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	userID := uuid.New()

	access, err := svc.GenerateToken(ctx, userID, domain.RoleCustomer)
	require.NoError(t, err)
	refresh, err := svc.GenerateRefreshToken(ctx, userID, domain.RoleCustomer)
	require.NoError(t, err)

	// A refresh token is not a valid access token and vice versa.
	_, err = svc.ValidateToken(ctx, refresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = svc.ValidateRefreshToken(ctx, access)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	claims, err := svc.ValidateRefreshToken(ctx, refresh)
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims.TokenType)
}

func TestTokenExpiry(t *testing.T) {
	ctx := context.Background()
	cfg := testAuthConfig()

	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	currentTime := issuedAt

	svc, err := NewJWTServiceWithTimeFunc(cfg, func() time.Time {
		return currentTime
	})
	require.NoError(t, err)

	token, err := svc.GenerateToken(ctx, uuid.New(), domain.RoleCustomer)
	require.NoError(t, err)

	// Valid just before expiry
	currentTime = issuedAt.Add(14 * time.Minute)
	_, err = svc.ValidateToken(ctx, token)
	assert.NoError(t, err)

	// Within clock skew leeway just after expiry
	currentTime = issuedAt.Add(16 * time.Minute)
	_, err = svc.ValidateToken(ctx, token)
	assert.NoError(t, err)

	// Well past expiry plus leeway
	currentTime = issuedAt.Add(20 * time.Minute)
	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestRefreshTokenExpiry(t *testing.T) {
	ctx := context.Background()
	cfg := testAuthConfig()

	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	currentTime := issuedAt

	svc, err := NewJWTServiceWithTimeFunc(cfg, func() time.Time {
		return currentTime
	})
	require.NoError(t, err)

	refresh, err := svc.GenerateRefreshToken(ctx, uuid.New(), domain.RoleCustomer)
	require.NoError(t, err)

	currentTime = issuedAt.Add(7 * 24 * time.Hour).Add(5 * time.Minute)
	_, err = svc.ValidateRefreshToken(ctx, refresh)
	assert.ErrorIs(t, err, ErrExpiredRefreshToken)
}

func TestTokensCarryDistinctIDs(t *testing.T) {
	ctx := context.Background()
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	userID := uuid.New()

	first, err := svc.GenerateRefreshToken(ctx, userID, domain.RoleCustomer)
	require.NoError(t, err)
	second, err := svc.GenerateRefreshToken(ctx, userID, domain.RoleCustomer)
	require.NoError(t, err)

	claimsFirst, err := svc.ValidateRefreshToken(ctx, first)
	require.NoError(t, err)
	claimsSecond, err := svc.ValidateRefreshToken(ctx, second)
	require.NoError(t, err)

	// Each refresh token gets its own jti so revocation is per-token.
	assert.NotEqual(t, claimsFirst.ID, claimsSecond.ID)
}
