package telemetry_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/freefood/internal/telemetry"
)

func TestProviderCounters(t *testing.T) {
	p := telemetry.NewProvider()
	ctx := context.Background()

	p.RecordAccepted(ctx, "instagram", "rule_based")
	p.RecordAccepted(ctx, "", "llm_text")
	p.RecordRejection(ctx, "paid")
	p.RecordRejection(ctx, "paid")
	p.RecordLLMCall(ctx, "text", "ok")
	p.RecordCache(ctx, "vision", "hit")
	p.RecordExtraction(ctx, 3*time.Millisecond)

	assert.InDelta(t, 1, testutil.ToFloat64(p.Metrics.PostsTotal.WithLabelValues("instagram", "rule_based")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(p.Metrics.PostsTotal.WithLabelValues("unknown", "llm_text")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(p.Metrics.RejectionsTotal.WithLabelValues("paid")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(p.Metrics.LLMCallsTotal.WithLabelValues("text", "ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(p.Metrics.LLMCacheTotal.WithLabelValues("vision", "hit")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(p.Metrics.ExtractionDuration))
}

func TestProvidersAreIndependent(t *testing.T) {
	a, b := telemetry.NewProvider(), telemetry.NewProvider()
	a.RecordRejection(context.Background(), "recap")

	assert.InDelta(t, 0, testutil.ToFloat64(b.Metrics.RejectionsTotal.WithLabelValues("recap")), 0)
}

func TestNilProviderIsSafe(t *testing.T) {
	var p *telemetry.Provider
	ctx := context.Background()

	p.RecordAccepted(ctx, "x", "y")
	p.RecordRejection(ctx, "x")
	p.RecordBatchSize(3)
	require.NoError(t, p.WriteTextfile(filepath.Join(t.TempDir(), "m.prom")))

	spanCtx, span := p.StartSpan(ctx, "noop")
	span.End()
	assert.Equal(t, ctx, spanCtx)
}

func TestWriteTextfile(t *testing.T) {
	p := telemetry.NewProvider()
	p.RecordRejection(context.Background(), "nightlife")

	path := filepath.Join(t.TempDir(), "metrics.prom")
	require.NoError(t, p.WriteTextfile(path))

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), `freefood_rejections_total{filter="nightlife"} 1`)
}
