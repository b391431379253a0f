package llm_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/freefood/internal/circuitbreaker"
	"github.com/jonesrussell/freefood/internal/llm"
	"github.com/jonesrussell/freefood/internal/telemetry"
	"github.com/jonesrussell/freefood/internal/testhelpers"
)

const foodReply = `{"food": true, "location": "Newman Building", "time": "13:00"}`

func newFallback(model llm.Model, cache llm.Cache, tp *telemetry.Provider) *llm.Fallback {
	return llm.NewFallback(model, cache, llm.FallbackConfig{
		Timeout: 50 * time.Millisecond,
		Breaker: circuitbreaker.Config{FailureThreshold: 2, Timeout: time.Hour},
	}, testhelpers.NewTestLogger(), tp)
}

func TestClassifyAndExtract_CachesResult(t *testing.T) {
	model := testhelpers.NewMockModel(foodReply)
	cache := testhelpers.NewMockCache()
	tp := telemetry.NewProvider()
	fb := newFallback(model, cache, tp)
	ctx := context.Background()

	first := fb.ClassifyAndExtract(ctx, "snacks after the talk")
	require.NotNil(t, first)
	assert.True(t, first.Food)
	require.NotNil(t, first.Location)
	assert.Equal(t, "Newman Building", *first.Location)
	require.NotNil(t, first.Time)
	assert.Equal(t, "13:00", *first.Time)

	second := fb.ClassifyAndExtract(ctx, "snacks after the talk")
	assert.Equal(t, first, second)
	assert.Equal(t, 1, model.Calls())
	assert.Equal(t, 1, cache.Len())

	assert.InDelta(t, 1, testutil.ToFloat64(tp.Metrics.LLMCacheTotal.WithLabelValues(llm.PathText, "hit")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(tp.Metrics.LLMCallsTotal.WithLabelValues(llm.PathText, "success")), 0)
}

func TestClassifyAndExtract_NegativeVerdictIsCached(t *testing.T) {
	model := testhelpers.NewMockModel(`{"food": false, "location": null, "time": null}`)
	cache := testhelpers.NewMockCache()
	fb := newFallback(model, cache, nil)

	hint := fb.ClassifyAndExtract(context.Background(), "snacks for sale")

	require.NotNil(t, hint)
	assert.False(t, hint.Food)
	assert.Equal(t, 1, cache.Len())
}

func TestClassifyAndExtract_RequestShape(t *testing.T) {
	model := testhelpers.NewMockModel(foodReply)
	fb := newFallback(model, nil, nil)

	fb.ClassifyAndExtract(context.Background(), "snacks after the talk")

	reqs := model.Requests()
	require.Len(t, reqs, 1)
	assert.NotEmpty(t, reqs[0].System)
	assert.Contains(t, reqs[0].Prompt, "snacks after the talk")
	assert.Empty(t, reqs[0].ImageURLs)
	assert.Zero(t, reqs[0].Temperature)
}

func TestClassifyAndExtract_Failures(t *testing.T) {
	tests := []struct {
		name  string
		model *testhelpers.MockModel
	}{
		{name: "model error", model: testhelpers.NewFailingModel(nil)},
		{name: "timeout", model: testhelpers.NewBlockingModel()},
		{name: "prose reply", model: testhelpers.NewMockModel("maybe?")},
		{name: "missing food", model: testhelpers.NewMockModel(`{"time": "12:00"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := testhelpers.NewMockCache()
			fb := newFallback(tt.model, cache, nil)

			hint := fb.ClassifyAndExtract(context.Background(), "snacks")

			assert.Nil(t, hint)
			assert.Zero(t, cache.Len())
		})
	}
}

func TestClassifyAndExtract_BreakerOpens(t *testing.T) {
	model := testhelpers.NewFailingModel(nil)
	tp := telemetry.NewProvider()
	fb := newFallback(model, nil, tp)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.Nil(t, fb.ClassifyAndExtract(ctx, "snacks"))
	}

	assert.Equal(t, 2, model.Calls())
	assert.Equal(t, circuitbreaker.StateOpen, fb.State())
	assert.InDelta(t, 1, testutil.ToFloat64(tp.Metrics.LLMCallsTotal.WithLabelValues(llm.PathText, "breaker_open")), 0)
}

func TestClassifyAndExtract_CacheFailuresAreNotFatal(t *testing.T) {
	model := testhelpers.NewMockModel(foodReply)
	cache := testhelpers.NewMockCache().FailWrites().FailReads()
	fb := newFallback(model, cache, nil)

	hint := fb.ClassifyAndExtract(context.Background(), "snacks")

	require.NotNil(t, hint)
	assert.True(t, hint.Food)
}

func TestClassifyAndExtract_RedisBacked(t *testing.T) {
	cache, mr := newRedisCache(t)
	model := testhelpers.NewMockModel(foodReply)
	fb := newFallback(model, cache, nil)

	require.NotNil(t, fb.ClassifyAndExtract(context.Background(), "snacks"))

	assert.True(t, mr.Exists("freefood:llm:"+llm.TextKey("snacks")))
}

func TestClassifyWithVision(t *testing.T) {
	model := testhelpers.NewMockModel(`{"food": true, "text": "FREE PIZZA 6PM", "location": null, "time": "18:00"}`)
	cache := testhelpers.NewMockCache()
	fb := newFallback(model, cache, nil)
	urls := []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}

	hint := fb.ClassifyWithVision(context.Background(), urls, "see poster")

	require.NotNil(t, hint)
	assert.Equal(t, "FREE PIZZA 6PM", hint.Text)
	reqs := model.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, urls, reqs[0].ImageURLs)
	assert.Contains(t, reqs[0].Prompt, "see poster")

	_, ok, err := cache.Get(context.Background(), llm.VisionKey("see poster", urls))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestClassifyWithVision_NoImages(t *testing.T) {
	model := testhelpers.NewMockModel(foodReply)
	fb := newFallback(model, nil, nil)

	assert.Nil(t, fb.ClassifyWithVision(context.Background(), nil, "caption"))
	assert.Zero(t, model.Calls())
}
