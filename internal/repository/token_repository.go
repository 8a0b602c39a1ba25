package repository

import (
	"context"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// RedisTokenRepo keeps revoked token ids in Redis until the token would expire anyway.
type RedisTokenRepo struct {
	Client redis.Cmdable
}

func NewRedisTokenRepo(client redis.Cmdable) *RedisTokenRepo {
	return &RedisTokenRepo{Client: client}
}

func (r *RedisTokenRepo) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	return r.Client.Set(ctx, revokedTokenKey(tokenID), "1", ttl).Err()
}

func (r *RedisTokenRepo) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	val, err := r.Client.Get(ctx, revokedTokenKey(tokenID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return val == "1", nil
}

// MemoryTokenRepo is the in-process denylist used when Redis is not configured.
type MemoryTokenRepo struct {
	cache *gocache.Cache
}

func NewMemoryTokenRepo(cleanupInterval time.Duration) *MemoryTokenRepo {
	return &MemoryTokenRepo{
		cache: gocache.New(gocache.NoExpiration, cleanupInterval),
	}
}

func (r *MemoryTokenRepo) RevokeToken(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	r.cache.Set(revokedTokenKey(tokenID), struct{}{}, ttl)

	return nil
}

func (r *MemoryTokenRepo) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, found := r.cache.Get(revokedTokenKey(tokenID))
	return found, nil
}

func revokedTokenKey(tokenID string) string {
	return "revoked:" + tokenID
}
