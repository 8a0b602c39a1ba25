package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"wedding_memories/internal/config"
)

type Client struct {
	*goredis.Client
}

func NewClient(cfg config.RedisConf) *Client {
	return &Client{
		Client: goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}),
	}
}

// Connect builds a client and pings it once.
func Connect(ctx context.Context, cfg config.RedisConf) (*Client, error) {
	const op = "storage.redis.Connect"

	c := NewClient(cfg)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := c.HealthCheck(pingCtx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return c, nil
}

func (c *Client) HealthCheck(ctx context.Context) error {
	return c.Ping(ctx).Err()
}
