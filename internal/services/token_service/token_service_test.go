package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"wedding_memories/internal/domain/models"
	"wedding_memories/internal/lib/logger/handlers/slogdiscard"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

const secret = "test-secret"

var (
	testUser = models.User{
		ID:    uuid.MustParse("123e4567-e89b-12d3-a456-426614174000"),
		Email: "test@example.com",
		Role:  models.RoleGuest,
	}
	testCtx = context.Background()
)

func TestGenerateAndParse_NoRevocation(t *testing.T) {
	service := NewTokenService(slogdiscard.NewDiscardLogger(), nil, secret, time.Hour)

	token, err := service.GenerateToken(testUser)
	require.NoError(t, err)

	claims, err := service.ParseToken(testCtx, token)
	require.NoError(t, err)
	assert.Equal(t, testUser.ID.String(), claims.UserID)
	assert.Equal(t, testUser.Email, claims.Email)

	// logout without a denylist only acknowledges
	require.NoError(t, service.RevokeToken(testCtx, claims))

	_, err = service.ParseToken(testCtx, token)
	assert.NoError(t, err)
}

func TestParseToken_Invalid(t *testing.T) {
	service := NewTokenService(slogdiscard.NewDiscardLogger(), nil, secret, time.Hour)

	other := NewTokenService(slogdiscard.NewDiscardLogger(), nil, "other", time.Hour)
	token, err := other.GenerateToken(testUser)
	require.NoError(t, err)

	_, err = service.ParseToken(testCtx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRevokeToken(t *testing.T) {
	repo := new(MockTokenRepository)
	service := NewTokenService(slogdiscard.NewDiscardLogger(), repo, secret, time.Hour)

	token, err := service.GenerateToken(testUser)
	require.NoError(t, err)

	repo.On("IsRevoked", testCtx, mock.AnythingOfType("string")).Return(false, nil).Once()

	claims, err := service.ParseToken(testCtx, token)
	require.NoError(t, err)

	repo.On("RevokeToken", testCtx, claims.ID, mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 59*time.Minute && ttl <= time.Hour
	})).Return(nil).Once()

	require.NoError(t, service.RevokeToken(testCtx, claims))

	repo.On("IsRevoked", testCtx, claims.ID).Return(true, nil).Once()

	_, err = service.ParseToken(testCtx, token)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	repo.AssertExpectations(t)
}

func TestParseToken_RepositoryError(t *testing.T) {
	repo := new(MockTokenRepository)
	service := NewTokenService(slogdiscard.NewDiscardLogger(), repo, secret, time.Hour)

	token, err := service.GenerateToken(testUser)
	require.NoError(t, err)

	repo.On("IsRevoked", testCtx, mock.Anything).Return(false, errors.New("redis down")).Once()

	_, err = service.ParseToken(testCtx, token)
	assert.ErrorContains(t, err, "redis down")
}
