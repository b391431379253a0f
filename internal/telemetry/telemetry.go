// Package telemetry provides Prometheus metrics and OpenTelemetry tracing
// for the extractor. A nil *Provider records nothing.
package telemetry

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "freefood"

// Metrics holds the extractor's Prometheus metrics.
type Metrics struct {
	PostsTotal         *prometheus.CounterVec
	RejectionsTotal    *prometheus.CounterVec
	LLMCallsTotal      *prometheus.CounterVec
	LLMCacheTotal      *prometheus.CounterVec
	ExtractionDuration prometheus.Histogram
	BatchSize          prometheus.Histogram
}

// Provider wraps the tracer, the metrics and the registry they live in.
type Provider struct {
	Tracer   trace.Tracer
	Metrics  *Metrics
	Registry *prometheus.Registry
}

// NewProvider creates a Provider with its own registry, so several may
// coexist in one process.
func NewProvider() *Provider {
	reg := prometheus.NewRegistry()
	return &Provider{
		Tracer:   otel.Tracer(serviceName),
		Metrics:  initMetrics(promauto.With(reg)),
		Registry: reg,
	}
}

func initMetrics(f promauto.Factory) *Metrics {
	return &Metrics{
		PostsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "freefood_posts_total",
			Help: "Posts accepted, by source type and the stage that accepted them",
		}, []string{"source_type", "stage"}),

		RejectionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "freefood_rejections_total",
			Help: "Posts rejected, by the filter that rejected them",
		}, []string{"filter"}),

		LLMCallsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "freefood_llm_calls_total",
			Help: "LLM fallback calls by path (text, vision) and outcome",
		}, []string{"path", "outcome"}),

		LLMCacheTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "freefood_llm_cache_total",
			Help: "LLM hint cache lookups by path and result (hit, miss, error)",
		}, []string{"path", "result"}),

		ExtractionDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "freefood_extraction_duration_seconds",
			Help:    "Time to classify and extract a single post",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),

		BatchSize: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "freefood_batch_size",
			Help:    "Number of posts per batch",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}),
	}
}

// RecordAccepted counts an accepted post.
func (p *Provider) RecordAccepted(_ context.Context, sourceType, stage string) {
	if p == nil {
		return
	}
	if sourceType == "" {
		sourceType = "unknown"
	}
	p.Metrics.PostsTotal.WithLabelValues(sourceType, stage).Inc()
}

// RecordRejection counts a rejected post.
func (p *Provider) RecordRejection(_ context.Context, filter string) {
	if p == nil {
		return
	}
	p.Metrics.RejectionsTotal.WithLabelValues(filter).Inc()
}

// RecordLLMCall counts one outbound model call.
func (p *Provider) RecordLLMCall(_ context.Context, path, outcome string) {
	if p == nil {
		return
	}
	p.Metrics.LLMCallsTotal.WithLabelValues(path, outcome).Inc()
}

// RecordCache counts one cache lookup.
func (p *Provider) RecordCache(_ context.Context, path, result string) {
	if p == nil {
		return
	}
	p.Metrics.LLMCacheTotal.WithLabelValues(path, result).Inc()
}

// RecordExtraction observes the duration of one extraction.
func (p *Provider) RecordExtraction(_ context.Context, d time.Duration) {
	if p == nil {
		return
	}
	p.Metrics.ExtractionDuration.Observe(d.Seconds())
}

// RecordBatchSize observes the size of a processed batch.
func (p *Provider) RecordBatchSize(size int) {
	if p == nil {
		return
	}
	p.Metrics.BatchSize.Observe(float64(size))
}

// WriteTextfile writes every metric in Prometheus text format to path.
func (p *Provider) WriteTextfile(path string) error {
	if p == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, p.Registry)
}

// StartSpan starts a span. The caller must end it.
//
//nolint:spancheck // Caller is responsible for ending the span
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if p == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return p.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}
