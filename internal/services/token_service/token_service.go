package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"wedding_memories/internal/domain/models"
	"wedding_memories/internal/lib/jwt"
	"wedding_memories/internal/lib/logger/sl"
	"wedding_memories/internal/repository"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenRevoked = errors.New("token revoked")
)

// TokenService issues and checks bearer tokens. Without a repository, revocation is disabled.
type TokenService struct {
	log    *slog.Logger
	repo   repository.TokenRepository
	secret string
	ttl    time.Duration
}

func NewTokenService(log *slog.Logger, repo repository.TokenRepository, secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		log:    log,
		repo:   repo,
		secret: secret,
		ttl:    ttl,
	}
}

func (s *TokenService) GenerateToken(user models.User) (string, error) {
	const op = "services.TokenService.GenerateToken"

	token, _, err := jwt.NewToken(user, s.secret, s.ttl)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return token, nil
}

func (s *TokenService) ParseToken(ctx context.Context, token string) (*jwt.Claims, error) {
	const op = "services.TokenService.ParseToken"

	claims, err := jwt.ParseToken(token, s.secret)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	if s.repo == nil {
		return claims, nil
	}

	revoked, err := s.repo.IsRevoked(ctx, claims.ID)
	if err != nil {
		s.log.Error("failed to check token revocation", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if revoked {
		return nil, fmt.Errorf("%s: %w", op, ErrTokenRevoked)
	}

	return claims, nil
}

// RevokeToken denylists the token until it expires. It is a no-op when revocation is disabled.
func (s *TokenService) RevokeToken(ctx context.Context, claims *jwt.Claims) error {
	const op = "services.TokenService.RevokeToken"

	if s.repo == nil || claims == nil {
		return nil
	}

	if err := s.repo.RevokeToken(ctx, claims.ID, claims.TTL()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
