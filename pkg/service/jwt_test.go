package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "sport-inventory/pkg/errors"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, 2*time.Hour, zap.NewNop())
	userID := uuid.New()

	access, refresh, err := svc.GenerateTokens(userID, "sid-1")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "sid-1", claims.SessionID)
	assert.False(t, claims.IsRefreshToken)

	claims, err = svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.True(t, claims.IsRefreshToken)
}

func TestJWTService_Rejects(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, time.Hour, zap.NewNop())
	other := NewJWTService("another", time.Hour, time.Hour, zap.NewNop())

	access, _, err := other.GenerateTokens(uuid.New(), "sid")
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	expired := &jwtService{secretKey: "secret", accessTokenExp: -time.Minute, refreshTokenExp: time.Hour, logger: zap.NewNop(), now: time.Now}
	token, _, err := expired.GenerateTokens(uuid.New(), "sid")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}
