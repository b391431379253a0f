// Package logger provides the structured logging interface used across the extractor.
package logger

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger defines the interface for structured logging.
type Logger interface {
	// Debug logs a message at debug level.
	Debug(msg string, fields ...Field)
	// Info logs a message at info level.
	Info(msg string, fields ...Field)
	// Warn logs a message at warning level.
	Warn(msg string, fields ...Field)
	// Error logs a message at error level.
	Error(msg string, fields ...Field)
	// Fatal logs a message at fatal level and exits.
	Fatal(msg string, fields ...Field)
	// With returns a new logger with the given fields attached.
	With(fields ...Field) Logger
	// Sync flushes any buffered log entries.
	Sync() error
}

// Field is a key-value pair attached to a log entry.
type Field = zap.Field

type zapLogger struct {
	logger *zap.Logger
}

// New creates a Logger from cfg. Output is always JSON.
func New(cfg Config) (Logger, error) {
	cfg.SetDefaults()

	zapCfg := zap.NewProductionConfig()
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	zapCfg.Level = zap.NewAtomicLevelAt(parseLevel(cfg.Level))
	zapCfg.OutputPaths = cfg.OutputPaths

	if cfg.Development {
		zapCfg.Sampling = nil
	}

	z, err := zapCfg.Build(
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}

	return &zapLogger{logger: z}, nil
}

// Must creates a new Logger and panics if it fails.
func Must(cfg Config) Logger {
	l, err := New(cfg)
	if err != nil {
		panic(fmt.Sprintf("failed to create logger: %v", err))
	}
	return l
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *zapLogger) Debug(msg string, fields ...Field) { l.logger.Debug(msg, fields...) }
func (l *zapLogger) Info(msg string, fields ...Field)  { l.logger.Info(msg, fields...) }
func (l *zapLogger) Warn(msg string, fields ...Field)  { l.logger.Warn(msg, fields...) }
func (l *zapLogger) Error(msg string, fields ...Field) { l.logger.Error(msg, fields...) }
func (l *zapLogger) Fatal(msg string, fields ...Field) { l.logger.Fatal(msg, fields...) }

func (l *zapLogger) With(fields ...Field) Logger {
	return &zapLogger{logger: l.logger.With(fields...)}
}

func (l *zapLogger) Sync() error {
	return l.logger.Sync()
}

// String creates a string field.
func String(key, val string) Field { return zap.String(key, val) }

// Int creates an int field.
func Int(key string, val int) Field { return zap.Int(key, val) }

// Float64 creates a float64 field.
func Float64(key string, val float64) Field { return zap.Float64(key, val) }

// Bool creates a bool field.
func Bool(key string, val bool) Field { return zap.Bool(key, val) }

// Duration creates a duration field.
func Duration(key string, val time.Duration) Field { return zap.Duration(key, val) }

// Time creates a time field.
func Time(key string, val time.Time) Field { return zap.Time(key, val) }

// Error creates an error field with the key "error".
func Error(err error) Field { return zap.Error(err) }

// Any creates a field that can hold any value.
func Any(key string, val any) Field { return zap.Any(key, val) }

// Strings creates a string slice field.
func Strings(key string, val []string) Field { return zap.Strings(key, val) }
