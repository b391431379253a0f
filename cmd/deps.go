package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonesrussell/freefood/internal/config"
	"github.com/jonesrussell/freefood/internal/extractor"
	"github.com/jonesrussell/freefood/internal/llm"
	"github.com/jonesrussell/freefood/internal/logger"
	"github.com/jonesrussell/freefood/internal/telemetry"
)

// CommandDeps holds the dependencies shared by every command.
type CommandDeps struct {
	Config    *config.Config
	Logger    logger.Logger
	Telemetry *telemetry.Provider
	Extractor *extractor.EventExtractor

	closeCache func() error
}

func buildDeps(ctx context.Context, opts *rootOptions) (*CommandDeps, error) {
	path := opts.configPath
	if path == "" {
		path = config.GetConfigPath(config.DefaultPath)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.debug {
		cfg.Service.Debug = true
		cfg.Logging.Level = "debug"
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	log = log.With(logger.String("service", cfg.Service.Name))

	tp := telemetry.NewProvider()
	fb, closeCache, err := llm.NewFromConfig(ctx, cfg, log, tp)
	if err != nil {
		return nil, fmt.Errorf("create llm fallback: %w", err)
	}

	exOpts := []extractor.Option{extractor.WithTelemetry(tp)}
	if fb != nil {
		exOpts = append(exOpts, extractor.WithFallback(fb))
	}
	ex, err := extractor.NewFromConfig(cfg, log, exOpts...)
	if err != nil {
		if closeCache != nil {
			_ = closeCache()
		}
		return nil, fmt.Errorf("create extractor: %w", err)
	}

	return &CommandDeps{
		Config:     cfg,
		Logger:     log,
		Telemetry:  tp,
		Extractor:  ex,
		closeCache: closeCache,
	}, nil
}

// Close releases the cache connection and flushes the logger.
func (d *CommandDeps) Close() error {
	var errs []error
	if d.closeCache != nil {
		errs = append(errs, d.closeCache())
	}
	// Sync on stderr returns EINVAL on Linux.
	_ = d.Logger.Sync()
	return errors.Join(errs...)
}
