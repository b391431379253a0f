package logger

import (
	"context"
	"fmt"
	"os"
	"sync"
)

type ctxKey struct{}

// WithContext returns a new context carrying l.
func WithContext(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves the logger from ctx, or a shared stderr warn-level
// fallback when none is stored.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(ctxKey{}).(Logger); ok {
		return l
	}
	return fallbackLogger()
}

var (
	fallbackLog  Logger
	fallbackOnce sync.Once
)

func fallbackLogger() Logger {
	fallbackOnce.Do(func() {
		l, err := New(Config{Level: "warn", OutputPaths: []string{"stderr"}})
		if err != nil {
			fmt.Fprintf(os.Stderr, "CRITICAL: failed to create fallback logger: %v\n", err)
			l = NewNop()
		}
		fallbackLog = l
	})
	return fallbackLog
}
