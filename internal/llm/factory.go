package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonesrussell/freefood/internal/circuitbreaker"
	"github.com/jonesrussell/freefood/internal/config"
	"github.com/jonesrussell/freefood/internal/logger"
	redisclient "github.com/jonesrussell/freefood/internal/redis"
	"github.com/jonesrussell/freefood/internal/telemetry"
)

// ErrMissingAPIKey is returned when the fallback is enabled without a key.
var ErrMissingAPIKey = errors.New("llm enabled but api key is empty")

// NewFromConfig builds the fallback classifier from configuration. It
// returns (nil, nil, nil) when the fallback is disabled. The returned
// close func releases the cache connection and is never nil on success.
func NewFromConfig(
	ctx context.Context,
	cfg *config.Config,
	log logger.Logger,
	tp *telemetry.Provider,
) (*Fallback, func() error, error) {
	if !cfg.LLM.Enabled {
		return nil, nil, nil
	}
	if cfg.LLM.APIKey == "" {
		return nil, nil, ErrMissingAPIKey
	}

	closeFn := func() error { return nil }
	var cache Cache = NopCache{}
	if cfg.Redis.Enabled {
		client, err := redisclient.NewClient(ctx, redisclient.Config{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect hint cache: %w", err)
		}
		cache = NewRedisCache(client)
		closeFn = client.Close
	}

	var model Model = NewAnthropicModel(cfg.LLM.APIKey, cfg.LLM.Model)
	model = NewRateLimitedModel(model, cfg.LLM.RequestsPerSec, cfg.LLM.Burst)

	fb := NewFallback(model, cache, FallbackConfig{
		Timeout:   cfg.LLM.Timeout,
		CacheTTL:  cfg.LLM.CacheTTL,
		MaxTokens: cfg.LLM.MaxTokens,
		Breaker: circuitbreaker.Config{
			FailureThreshold: cfg.LLM.BreakerFailures,
			Timeout:          cfg.LLM.BreakerCooldown,
			OnStateChange: func(from, to circuitbreaker.State) {
				log.Warn("llm circuit breaker state changed",
					logger.String("from", from.String()),
					logger.String("to", to.String()))
			},
		},
	}, log, tp)

	log.Info("llm fallback enabled",
		logger.String("model", cfg.LLM.Model),
		logger.Bool("cache", cfg.Redis.Enabled),
		logger.Bool("vision", cfg.LLM.VisionEnabled))
	return fb, closeFn, nil
}
