// Package extractor turns a social-media post into a structured free-food
// event, escalating to the LLM fallback only when the rules reject it.
package extractor

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jonesrussell/freefood/internal/classifier"
	"github.com/jonesrussell/freefood/internal/dateparse"
	"github.com/jonesrussell/freefood/internal/domain"
	"github.com/jonesrussell/freefood/internal/location"
	"github.com/jonesrussell/freefood/internal/logger"
	"github.com/jonesrussell/freefood/internal/telemetry"
)

// FilterPastDate names the rejection of events that already happened.
const FilterPastDate = "past_date"

// ReasonPastDate is the reason attached to a past-date rejection.
const ReasonPastDate = "Event date is in the past"

const (
	defaultEventHour       = 18
	defaultPastTolerance   = 24 * time.Hour
	defaultMaxVisionImages = 3
)

// HintSource is the LLM fallback as seen by the extractor. A nil hint
// means no additional evidence.
type HintSource interface {
	ClassifyAndExtract(ctx context.Context, normalized string) *domain.LLMHint
	ClassifyWithVision(ctx context.Context, imageURLs []string, caption string) *domain.LLMHint
}

// Config tunes an EventExtractor.
type Config struct {
	Location        *time.Location
	DefaultHour     int
	PastTolerance   time.Duration
	VisionEnabled   bool
	MaxVisionImages int
}

// EventExtractor composes the classifier, the parsers and the fallback.
// It holds no per-call state and is safe for concurrent use.
type EventExtractor struct {
	cfg       Config
	rules     *classifier.Classifier
	dates     *dateparse.Parser
	places    *location.Resolver
	fallback  HintSource
	now       func() time.Time
	log       logger.Logger
	telemetry *telemetry.Provider
}

// Option configures an EventExtractor.
type Option func(*EventExtractor)

// WithFallback enables LLM escalation for grey-zone posts.
func WithFallback(fb HintSource) Option {
	return func(e *EventExtractor) {
		e.fallback = fb
	}
}

// WithClock overrides the clock used for the past-date check.
func WithClock(now func() time.Time) Option {
	return func(e *EventExtractor) {
		e.now = now
	}
}

// WithTelemetry records metrics and spans on tp.
func WithTelemetry(tp *telemetry.Provider) Option {
	return func(e *EventExtractor) {
		e.telemetry = tp
	}
}

// New creates an extractor. The classifier, date parser and resolver are
// required.
func New(
	cfg Config,
	rules *classifier.Classifier,
	dates *dateparse.Parser,
	places *location.Resolver,
	log logger.Logger,
	opts ...Option,
) *EventExtractor {
	if rules == nil || dates == nil || places == nil {
		panic("extractor: classifier, date parser and resolver are required")
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.DefaultHour <= 0 {
		cfg.DefaultHour = defaultEventHour
	}
	if cfg.PastTolerance <= 0 {
		cfg.PastTolerance = defaultPastTolerance
	}
	if cfg.MaxVisionImages <= 0 {
		cfg.MaxVisionImages = defaultMaxVisionImages
	}
	if log == nil {
		log = logger.NewNop()
	}

	e := &EventExtractor{
		cfg:    cfg,
		rules:  rules,
		dates:  dates,
		places: places,
		now:    time.Now,
		log:    log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract classifies post and, when it qualifies, returns the event. The
// verdict explains a nil result; no input text produces an error.
func (e *EventExtractor) Extract(ctx context.Context, post domain.Post) (*domain.ExtractionResult, domain.Verdict) {
	start := time.Now()
	ctx, span := e.telemetry.StartSpan(ctx, "extractor.extract",
		attribute.String("post.id", post.ID),
		attribute.String("post.source_type", post.SourceType))
	defer span.End()
	defer func() { e.telemetry.RecordExtraction(ctx, time.Since(start)) }()

	normalized := classifier.Normalize(post.Text)
	verdict := e.rules.EvaluateNormalized(normalized)

	esc := escalation{stage: domain.StageRuleBased, text: post.Text}
	if !verdict.Accepted {
		var ok bool
		esc, ok = e.escalate(ctx, post, normalized)
		if !ok {
			e.reject(ctx, post, verdict)
			return nil, verdict
		}
	}

	result, verdict := e.build(post, esc)
	if result == nil {
		e.reject(ctx, post, verdict)
		return nil, verdict
	}

	span.SetAttributes(
		attribute.String("extract.stage", string(esc.stage)),
		attribute.Float64("extract.confidence", result.ConfidenceScore))
	e.telemetry.RecordAccepted(ctx, post.SourceType, string(esc.stage))
	e.log.Debug("event extracted",
		logger.String("post_id", post.ID),
		logger.String("stage", string(esc.stage)),
		logger.Float64("confidence", result.ConfidenceScore))
	return result, domain.Accept()
}

// Classify runs the rule classifier alone, without escalation.
func (e *EventExtractor) Classify(text string) domain.Verdict {
	return e.rules.Evaluate(text)
}

func (e *EventExtractor) reject(ctx context.Context, post domain.Post, v domain.Verdict) {
	e.telemetry.RecordRejection(ctx, v.Filter)
	e.log.Debug("post not extracted",
		logger.String("post_id", post.ID),
		logger.String("filter", v.Filter),
		logger.String("reason", v.Reason))
}

// escalation is what the fallback contributed: the stage reached, the
// text to parse and the hint, if any.
type escalation struct {
	stage domain.Stage
	text  string
	hint  *domain.LLMHint
}

func (esc escalation) llmAssisted() bool {
	return esc.stage != domain.StageRuleBased
}

func (e *EventExtractor) escalate(ctx context.Context, post domain.Post, normalized string) (escalation, bool) {
	if e.fallback == nil {
		return escalation{}, false
	}

	if e.rules.IsGreyZone(normalized) {
		if hint := e.fallback.ClassifyAndExtract(ctx, normalized); hint != nil && hint.Food {
			return escalation{stage: domain.StageLLMText, text: post.Text, hint: hint}, true
		}
	}

	if !e.cfg.VisionEnabled || !post.OCRLowYield || len(post.ImageURLs) == 0 {
		return escalation{}, false
	}
	if !e.rules.VisionEligible(normalized) {
		return escalation{}, false
	}

	urls := post.ImageURLs
	if len(urls) > e.cfg.MaxVisionImages {
		urls = urls[:e.cfg.MaxVisionImages]
	}
	hint := e.fallback.ClassifyWithVision(ctx, urls, post.Text)
	if hint == nil || !hint.Food {
		return escalation{}, false
	}

	combined := post.Text
	if hint.Text != "" {
		combined += "\n" + hint.Text
	}
	if v := e.rules.HardFilterVerdict(classifier.Normalize(combined)); !v.Accepted {
		e.log.Debug("vision text rejected by hard filter",
			logger.String("post_id", post.ID),
			logger.String("filter", v.Filter))
		return escalation{}, false
	}
	return escalation{stage: domain.StageLLMVision, text: combined, hint: hint}, true
}
