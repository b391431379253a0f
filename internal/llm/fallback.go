package llm

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jonesrussell/freefood/internal/circuitbreaker"
	"github.com/jonesrussell/freefood/internal/domain"
	"github.com/jonesrussell/freefood/internal/logger"
	"github.com/jonesrussell/freefood/internal/telemetry"
)

// Call paths, used as metric labels.
const (
	PathText   = "text"
	PathVision = "vision"
)

// Call outcomes, used as metric labels.
const (
	outcomeSuccess     = "success"
	outcomeError       = "error"
	outcomeInvalid     = "invalid"
	outcomeBreakerOpen = "breaker_open"
	outcomeTimeout     = "timeout"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultCacheTTL = 7 * 24 * time.Hour
)

// FallbackConfig tunes a Fallback.
type FallbackConfig struct {
	Timeout   time.Duration
	CacheTTL  time.Duration
	MaxTokens int
	Breaker   circuitbreaker.Config
}

// Fallback asks an external model about posts the rules could not settle.
// It is safe for concurrent use.
type Fallback struct {
	model     Model
	cache     Cache
	breaker   *circuitbreaker.Breaker
	cfg       FallbackConfig
	log       logger.Logger
	telemetry *telemetry.Provider
}

// NewFallback wires a fallback classifier. A nil cache disables caching.
func NewFallback(model Model, cache Cache, cfg FallbackConfig, log logger.Logger, tp *telemetry.Provider) *Fallback {
	if model == nil {
		panic("llm: nil model")
	}
	if cache == nil {
		cache = NopCache{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}

	return &Fallback{
		model:     model,
		cache:     cache,
		breaker:   circuitbreaker.New(cfg.Breaker),
		cfg:       cfg,
		log:       log,
		telemetry: tp,
	}
}

// ClassifyAndExtract asks the model whether normalized text offers free
// food. It returns nil on any failure.
func (f *Fallback) ClassifyAndExtract(ctx context.Context, normalized string) *domain.LLMHint {
	req := Request{
		System:    textSystemPrompt,
		Prompt:    textPrompt(normalized),
		MaxTokens: f.cfg.MaxTokens,
	}
	return f.classify(ctx, PathText, TextKey(normalized), req)
}

// ClassifyWithVision asks the model to read the images alongside the
// caption. The returned hint carries the text the model read.
func (f *Fallback) ClassifyWithVision(ctx context.Context, imageURLs []string, caption string) *domain.LLMHint {
	if len(imageURLs) == 0 {
		return nil
	}
	req := Request{
		System:    visionSystemPrompt,
		Prompt:    visionPrompt(caption),
		ImageURLs: imageURLs,
		MaxTokens: f.cfg.MaxTokens,
	}
	return f.classify(ctx, PathVision, VisionKey(caption, imageURLs), req)
}

// State reports the breaker state.
func (f *Fallback) State() circuitbreaker.State {
	return f.breaker.State()
}

func (f *Fallback) classify(ctx context.Context, path, key string, req Request) *domain.LLMHint {
	ctx, span := f.telemetry.StartSpan(ctx, "llm.classify",
		attribute.String("llm.path", path),
		attribute.String("llm.cache_key", key))
	defer span.End()

	log := f.log.With(logger.String("path", path), logger.String("cache_key", key))

	hint, ok, err := f.cache.Get(ctx, key)
	switch {
	case err != nil:
		log.Warn("llm cache read failed", logger.Error(err))
		f.telemetry.RecordCache(ctx, path, "error")
	case ok:
		f.telemetry.RecordCache(ctx, path, "hit")
		return hint
	default:
		f.telemetry.RecordCache(ctx, path, "miss")
	}

	hint, err = f.call(ctx, req)
	if err != nil {
		outcome := classifyError(err)
		f.telemetry.RecordLLMCall(ctx, path, outcome)
		span.SetAttributes(attribute.String("llm.outcome", outcome))
		log.Warn("llm fallback unavailable",
			logger.String("outcome", outcome),
			logger.String("breaker", f.breaker.State().String()),
			logger.Error(err))
		return nil
	}
	f.telemetry.RecordLLMCall(ctx, path, outcomeSuccess)
	span.SetAttributes(attribute.Bool("llm.food", hint.Food))

	if err = f.cache.Set(ctx, key, hint, f.cfg.CacheTTL); err != nil {
		log.Warn("llm cache write failed", logger.Error(err))
	}

	log.Debug("llm hint received",
		logger.Bool("food", hint.Food),
		logger.Bool("has_location", hint.Location != nil),
		logger.Bool("has_time", hint.Time != nil))
	return hint
}

func (f *Fallback) call(ctx context.Context, req Request) (*domain.LLMHint, error) {
	var hint *domain.LLMHint
	err := f.breaker.Execute(ctx, func(ctx context.Context) error {
		callCtx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
		defer cancel()

		reply, err := f.model.Complete(callCtx, req)
		if err != nil {
			return err
		}
		hint, err = parseHint(reply)
		return err
	})
	if err != nil {
		return nil, err
	}
	return hint, nil
}

func classifyError(err error) string {
	switch {
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		return outcomeBreakerOpen
	case errors.Is(err, context.DeadlineExceeded):
		return outcomeTimeout
	case errors.Is(err, ErrNoJSON), errors.Is(err, ErrInvalidHint), errors.Is(err, ErrEmptyResponse):
		return outcomeInvalid
	default:
		return outcomeError
	}
}
