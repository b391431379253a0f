package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jonesrussell/freefood/internal/domain"
)

const (
	keyLength = 16
	keyPrefix = "freefood:llm:"
)

// Cache stores hints by content key.
type Cache interface {
	Get(ctx context.Context, key string) (*domain.LLMHint, bool, error)
	Set(ctx context.Context, key string, hint *domain.LLMHint, ttl time.Duration) error
}

// TextKey is the cache key for a text-path call.
func TextKey(normalized string) string {
	return "text:" + digest(normalized)
}

// VisionKey is the cache key for a vision-path call.
func VisionKey(caption string, imageURLs []string) string {
	return "vision:" + digest(caption+strings.Join(imageURLs, "|"))
}

func digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:keyLength]
}

// RedisCache keeps hints as JSON strings with an expiry.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a cache on client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get returns the cached hint, reporting false on a miss.
func (c *RedisCache) Get(ctx context.Context, key string) (*domain.LLMHint, bool, error) {
	raw, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var hint domain.LLMHint
	if err = json.Unmarshal(raw, &hint); err != nil {
		return nil, false, fmt.Errorf("decode cached hint %s: %w", key, err)
	}
	return &hint, true, nil
}

// Set stores hint under key for ttl.
func (c *RedisCache) Set(ctx context.Context, key string, hint *domain.LLMHint, ttl time.Duration) error {
	raw, err := json.Marshal(hint)
	if err != nil {
		return fmt.Errorf("encode hint: %w", err)
	}
	if err = c.client.Set(ctx, keyPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// NopCache never hits and discards writes.
type NopCache struct{}

func (NopCache) Get(context.Context, string) (*domain.LLMHint, bool, error) { return nil, false, nil }

func (NopCache) Set(context.Context, string, *domain.LLMHint, time.Duration) error { return nil }
