// Package retry provides retry with exponential backoff for transient failures.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var (
	// ErrMaxAttemptsExceeded is returned when every attempt failed.
	ErrMaxAttemptsExceeded = errors.New("max retry attempts exceeded")
	// ErrContextCancelled is returned when the context ends between attempts.
	ErrContextCancelled = errors.New("context cancelled during retry")
)

const (
	defaultMaxAttempts  = 3
	defaultInitialDelay = 100 * time.Millisecond
	defaultMaxDelay     = 5 * time.Second
	defaultMultiplier   = 2.0
)

// Config configures retry behavior.
type Config struct {
	// MaxAttempts includes the initial attempt.
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	// IsRetryable decides whether an error gets another attempt.
	IsRetryable func(error) bool
}

// DefaultConfig returns the default retry configuration.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  defaultMaxAttempts,
		InitialDelay: defaultInitialDelay,
		MaxDelay:     defaultMaxDelay,
		Multiplier:   defaultMultiplier,
		IsRetryable:  DefaultIsRetryable,
	}
}

var retryablePatterns = []string{
	"timeout",
	"deadline exceeded",
	"connection refused",
	"connection reset",
	"no such host",
	"temporary failure",
	"network is unreachable",
	"i/o timeout",
	"loading dataset in memory",
}

// DefaultIsRetryable reports whether err looks like a transient network error.
func DefaultIsRetryable(err error) bool {
	if err == nil {
		return false
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range retryablePatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

// Retry calls fn until it succeeds, returns a non-retryable error, or the
// attempts run out.
func Retry(ctx context.Context, config Config, fn func() error) error {
	config = withDefaults(config)

	var lastErr error
	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %w", ErrContextCancelled, ctx.Err())
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !config.IsRetryable(err) {
			return err
		}

		if attempt == config.MaxAttempts {
			break
		}

		timer := time.NewTimer(backoff(config, attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%w: %w", ErrContextCancelled, ctx.Err())
		case <-timer.C:
		}
	}

	return fmt.Errorf("%w after %d attempts: %w", ErrMaxAttemptsExceeded, config.MaxAttempts, lastErr)
}

func withDefaults(config Config) Config {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = defaultMaxAttempts
	}
	if config.InitialDelay <= 0 {
		config.InitialDelay = defaultInitialDelay
	}
	if config.MaxDelay <= 0 {
		config.MaxDelay = defaultMaxDelay
	}
	if config.Multiplier <= 0 {
		config.Multiplier = defaultMultiplier
	}
	if config.IsRetryable == nil {
		config.IsRetryable = DefaultIsRetryable
	}
	return config
}

func backoff(config Config, attempt int) time.Duration {
	d := time.Duration(float64(config.InitialDelay) * math.Pow(config.Multiplier, float64(attempt-1)))
	if d > config.MaxDelay {
		return config.MaxDelay
	}
	return d
}
