// Package redis builds the go-redis client backing the LLM hint cache.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jonesrussell/freefood/internal/retry"
)

// Config holds Redis connection configuration.
type Config struct {
	Address  string
	Password string
	DB       int
}

// ErrEmptyAddress is returned when the Redis address is not configured.
var ErrEmptyAddress = errors.New("redis address is required")

const connectionTimeout = 5 * time.Second

// NewClient creates a client and verifies the connection, retrying
// transient dial errors.
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.Address == "" {
		return nil, ErrEmptyAddress
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectionTimeout)
	defer cancel()

	err := retry.Retry(pingCtx, retry.DefaultConfig(), func() error {
		return client.Ping(pingCtx).Err()
	})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}
