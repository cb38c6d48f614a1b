package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cihanisildar/dailingo-api/internal/config"
)

const testSecret = "test-secret-key-thats-long-enough-for-hmac"

func newTestJWTService(t *testing.T) *hmacJWTService {
	t.Helper()

	svc, err := NewJWTService(config.AuthConfig{
		JWTSecret:              testSecret,
		AccessTokenTTLMinutes:  30,
		RefreshTokenTTLMinutes: 10080,
	})
	require.NoError(t, err)

	impl, ok := svc.(*hmacJWTService)
	require.True(t, ok)
	return impl
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	t.Run("rejects short secrets", func(t *testing.T) {
		t.Parallel()

		_, err := NewJWTService(config.AuthConfig{
			JWTSecret:              "too-short",
			AccessTokenTTLMinutes:  30,
			RefreshTokenTTLMinutes: 10080,
		})
		assert.Error(t, err)
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t)
	ctx := context.Background()
	userID := uuid.New()

	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t)
	ctx := context.Background()
	userID := uuid.New()

	token, err := svc.GenerateRefreshToken(ctx, userID)
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "refresh", claims.TokenType)
}

func TestTokenTypeEnforcement(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t)
	ctx := context.Background()
	userID := uuid.New()

	accessToken, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)
	refreshToken, err := svc.GenerateRefreshToken(ctx, userID)
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, refreshToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = svc.ValidateRefreshToken(ctx, accessToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestTokenExpiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	userID := uuid.New()

	t.Run("expired access token", func(t *testing.T) {
		t.Parallel()

		svc := newTestJWTService(t)
		issued := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

		svc.timeFunc = func() time.Time { return issued }
		token, err := svc.GenerateToken(ctx, userID)
		require.NoError(t, err)

		// Jump past TTL plus clock skew.
		svc.timeFunc = func() time.Time { return issued.Add(33 * time.Minute) }
		_, err = svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("expired refresh token surfaces refresh sentinel", func(t *testing.T) {
		t.Parallel()

		svc := newTestJWTService(t)
		issued := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

		svc.timeFunc = func() time.Time { return issued }
		token, err := svc.GenerateRefreshToken(ctx, userID)
		require.NoError(t, err)

		svc.timeFunc = func() time.Time { return issued.Add(8 * 24 * time.Hour) }
		_, err = svc.ValidateRefreshToken(ctx, token)
		assert.ErrorIs(t, err, ErrExpiredRefreshToken)
	})

	t.Run("token within clock skew still validates", func(t *testing.T) {
		t.Parallel()

		svc := newTestJWTService(t)
		issued := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

		svc.timeFunc = func() time.Time { return issued }
		token, err := svc.GenerateToken(ctx, userID)
		require.NoError(t, err)

		// One minute past expiry, inside the two-minute skew allowance.
		svc.timeFunc = func() time.Time { return issued.Add(31 * time.Minute) }
		_, err = svc.ValidateToken(ctx, token)
		assert.NoError(t, err)
	})
}

func TestInvalidTokens(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t)
	ctx := context.Background()

	t.Run("empty token", func(t *testing.T) {
		t.Parallel()
		_, err := svc.ValidateToken(ctx, "")
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		t.Parallel()
		_, err := svc.ValidateToken(ctx, "not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with a different key", func(t *testing.T) {
		t.Parallel()

		other, err := NewJWTService(config.AuthConfig{
			JWTSecret:              "another-secret-key-that-is-also-long-enough",
			AccessTokenTTLMinutes:  30,
			RefreshTokenTTLMinutes: 10080,
		})
		require.NoError(t, err)

		token, err := other.GenerateToken(ctx, uuid.New())
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage refresh token surfaces refresh sentinel", func(t *testing.T) {
		t.Parallel()
		_, err := svc.ValidateRefreshToken(ctx, "not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})
}
