package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/freefood/internal/retry"
)

func fastConfig() retry.Config {
	return retry.Config{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func TestRetry(t *testing.T) {
	transient := errors.New("dial tcp: connection refused")
	permanent := errors.New("WRONGPASS invalid password")

	tests := []struct {
		name      string
		results   []error
		wantCalls int
		wantErr   error
	}{
		{"first try", []error{nil}, 1, nil},
		{"recovers", []error{transient, nil}, 2, nil},
		{"permanent stops", []error{permanent, nil}, 1, permanent},
		{"exhausted", []error{transient, transient, transient}, 3, retry.ErrMaxAttemptsExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := retry.Retry(context.Background(), fastConfig(), func() error {
				err := tt.results[calls]
				calls++
				return err
			})

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRetry_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := retry.Retry(ctx, fastConfig(), func() error { return nil })
	require.ErrorIs(t, err, retry.ErrContextCancelled)
}

func TestDefaultIsRetryable(t *testing.T) {
	assert.True(t, retry.DefaultIsRetryable(errors.New("read: I/O TIMEOUT")))
	assert.False(t, retry.DefaultIsRetryable(errors.New("bad request")))
	assert.False(t, retry.DefaultIsRetryable(nil))
}
