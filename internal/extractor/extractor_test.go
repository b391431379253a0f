package extractor_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/freefood/internal/classifier"
	"github.com/jonesrussell/freefood/internal/dateparse"
	"github.com/jonesrussell/freefood/internal/domain"
	"github.com/jonesrussell/freefood/internal/extractor"
	"github.com/jonesrussell/freefood/internal/llm"
	"github.com/jonesrussell/freefood/internal/location"
	"github.com/jonesrussell/freefood/internal/telemetry"
	"github.com/jonesrussell/freefood/internal/testhelpers"
)

type fakeHints struct {
	mu          sync.Mutex
	text        *domain.LLMHint
	vision      *domain.LLMHint
	textCalls   int
	visionCalls int
	visionURLs  []string
}

func (f *fakeHints) ClassifyAndExtract(context.Context, string) *domain.LLMHint {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.textCalls++
	return f.text
}

func (f *fakeHints) ClassifyWithVision(_ context.Context, urls []string, _ string) *domain.LLMHint {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visionCalls++
	f.visionURLs = urls
	return f.vision
}

func dublin(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Dublin")
	require.NoError(t, err)
	return loc
}

// monday is 2026-02-23, a Monday.
func monday(t *testing.T, hour, minute int) time.Time {
	t.Helper()
	return time.Date(2026, time.February, 23, hour, minute, 0, 0, dublin(t))
}

func newExtractor(t *testing.T, vision bool, opts ...extractor.Option) *extractor.EventExtractor {
	t.Helper()
	log := testhelpers.NewTestLogger()
	now := monday(t, 12, 0)
	opts = append([]extractor.Option{extractor.WithClock(func() time.Time { return now })}, opts...)
	return extractor.New(extractor.Config{
		Location:      dublin(t),
		VisionEnabled: vision,
	}, classifier.New(log), dateparse.New(log), location.NewResolver(log), log, opts...)
}

func post(t *testing.T, text string) domain.Post {
	t.Helper()
	return domain.Post{ID: "p1", Text: text, SourceType: "instagram", PostTimestamp: testhelpers.TimePtr(monday(t, 12, 0))}
}

func TestExtract_RuleBasedComplete(t *testing.T) {
	ex := newExtractor(t, false)

	result, verdict := ex.Extract(context.Background(),
		post(t, "Pizza Night!\nFree pizza at Astra Hall on 25 February 6:30pm - 8pm"))

	require.True(t, verdict.Accepted)
	require.NotNil(t, result)
	assert.Equal(t, "Pizza Night!", result.Title)
	assert.Equal(t, "Student Centre", result.LocationBuilding)
	assert.Equal(t, "Astra Hall", result.LocationRoom)
	assert.True(t, time.Date(2026, time.February, 25, 18, 30, 0, 0, dublin(t)).Equal(result.StartTime))
	require.NotNil(t, result.EndTime)
	assert.True(t, time.Date(2026, time.February, 25, 20, 0, 0, 0, dublin(t)).Equal(*result.EndTime))
	assert.InDelta(t, 1.0, result.ConfidenceScore, 1e-9)
	assert.Equal(t, domain.StageRuleBased, result.ExtractedData.StageReached)
	assert.True(t, result.ExtractedData.DateFound)
	assert.True(t, result.ExtractedData.TimeFound)
	assert.True(t, result.ExtractedData.LocationFound)
	assert.False(t, result.ExtractedData.LLMAssisted)
	assert.Equal(t, "instagram", result.SourceType)
	assert.Equal(t, "p1", result.ID)
}

func TestExtract_DateDayIsNotRangeStart(t *testing.T) {
	ex := newExtractor(t, false)

	tests := []struct {
		name string
		text string
		day  int
	}{
		{"numeric date", "Free pizza Friday 27/02 - 6pm in Newman", 27},
		{"month name", "Free pizza, Thursday February 26 - 6pm, Newman", 26},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, verdict := ex.Extract(context.Background(), post(t, tt.text))

			require.True(t, verdict.Accepted)
			require.NotNil(t, result)
			assert.True(t, time.Date(2026, time.February, tt.day, 18, 0, 0, 0, dublin(t)).Equal(result.StartTime), result.StartTime.String())
			assert.Nil(t, result.EndTime)
		})
	}
}

func TestExtract_DefaultsWhenPartial(t *testing.T) {
	ex := newExtractor(t, false)

	result, verdict := ex.Extract(context.Background(), post(t, "Free pizza for members only tomorrow"))

	require.True(t, verdict.Accepted)
	require.NotNil(t, result)
	assert.True(t, time.Date(2026, time.February, 24, 18, 0, 0, 0, dublin(t)).Equal(result.StartTime))
	assert.Nil(t, result.EndTime)
	assert.InDelta(t, 0.8, result.ConfidenceScore, 1e-9)
	assert.False(t, result.ExtractedData.TimeFound)
	assert.False(t, result.ExtractedData.LocationFound)
	assert.True(t, result.ExtractedData.MembersOnly)
	assert.Equal(t, "Free pizza for members only tomorrow", result.Title)
}

func TestExtract_Titles(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "hashtag line falls back to building", text: "#freefood\nPizza in the Newman Building tomorrow at 1pm", want: "Free Food at Newman Building"},
		{name: "url line falls back to generic", text: "https://example.com\nfree pizza tomorrow", want: "Free Food Event"},
		{name: "too short", text: "Hi\nfree pizza tomorrow", want: "Free Food Event"},
	}

	ex := newExtractor(t, false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, verdict := ex.Extract(context.Background(), post(t, tt.text))
			require.True(t, verdict.Accepted, verdict.Reason)
			assert.Equal(t, tt.want, result.Title)
		})
	}
}

func TestExtract_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		filter string
	}{
		{name: "recap", text: "Thanks for coming, pizza was amazing!", filter: classifier.FilterRecap},
		{name: "no food", text: "AGM on Thursday in the Newman Building", filter: classifier.FilterFood},
		{name: "paid", text: "The entry fee is €15. A free pizza lunch", filter: classifier.FilterPaid},
	}

	ex := newExtractor(t, false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, verdict := ex.Extract(context.Background(), post(t, tt.text))
			assert.Nil(t, result)
			assert.False(t, verdict.Accepted)
			assert.Equal(t, tt.filter, verdict.Filter)
			assert.NotEqual(t, domain.ReasonAccepted, verdict.Reason)
		})
	}
}

func TestExtract_PastDate(t *testing.T) {
	ex := newExtractor(t, false)
	old := time.Date(2026, time.January, 10, 12, 0, 0, 0, dublin(t))

	result, verdict := ex.Extract(context.Background(), domain.Post{
		Text:          "Free pizza on 12 January in the Newman Building",
		PostTimestamp: &old,
	})

	assert.Nil(t, result)
	assert.Equal(t, extractor.FilterPastDate, verdict.Filter)
	assert.Equal(t, extractor.ReasonPastDate, verdict.Reason)
}

func TestExtract_UndatedPostUsesClock(t *testing.T) {
	ex := newExtractor(t, false)

	result, verdict := ex.Extract(context.Background(), domain.Post{Text: "Free pizza tomorrow at 1pm"})

	require.True(t, verdict.Accepted)
	assert.True(t, time.Date(2026, time.February, 24, 13, 0, 0, 0, dublin(t)).Equal(result.StartTime))
}

func TestExtract_AmbiguousMeridiem(t *testing.T) {
	tests := []struct {
		name     string
		posted   time.Time
		wantHour int
	}{
		{name: "morning post reads am", posted: monday(t, 7, 0), wantHour: 9},
		{name: "post after am reading reads pm", posted: monday(t, 10, 0), wantHour: 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := tt.posted
			ex := newExtractor(t, false, extractor.WithClock(func() time.Time { return now }))

			result, verdict := ex.Extract(context.Background(), domain.Post{
				Text:          "Free pizza today at 9:30",
				PostTimestamp: testhelpers.TimePtr(tt.posted),
			})

			require.True(t, verdict.Accepted)
			assert.Equal(t, tt.wantHour, result.StartTime.Hour())
			assert.Equal(t, 30, result.StartTime.Minute())
		})
	}
}

func TestExtract_GreyZoneWithoutFallback(t *testing.T) {
	ex := newExtractor(t, false)

	result, verdict := ex.Extract(context.Background(), post(t, "Come along for lunch with the society on Wednesday"))

	assert.Nil(t, result)
	assert.Equal(t, classifier.FilterFood, verdict.Filter)
}

func TestExtract_TextFallback(t *testing.T) {
	hints := &fakeHints{text: &domain.LLMHint{
		Food:     true,
		Location: testhelpers.StringPtr("Newman Building"),
		Time:     testhelpers.StringPtr("13:00"),
	}}
	ex := newExtractor(t, false, extractor.WithFallback(hints))

	result, verdict := ex.Extract(context.Background(), post(t, "Come along for lunch with the society on Wednesday"))

	require.True(t, verdict.Accepted)
	require.NotNil(t, result)
	assert.Equal(t, 1, hints.textCalls)
	assert.Equal(t, domain.StageLLMText, result.ExtractedData.StageReached)
	assert.True(t, result.ExtractedData.LLMAssisted)
	assert.Equal(t, "Newman Building", result.LocationBuilding)
	assert.Empty(t, result.LocationRoom)
	assert.True(t, time.Date(2026, time.February, 25, 13, 0, 0, 0, dublin(t)).Equal(result.StartTime))
	assert.InDelta(t, 0.7, result.ConfidenceScore, 1e-9)
}

func TestExtract_TextFallbackNoFood(t *testing.T) {
	tests := []struct {
		name string
		hint *domain.LLMHint
	}{
		{name: "circuit break", hint: nil},
		{name: "model says no", hint: &domain.LLMHint{Food: false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hints := &fakeHints{text: tt.hint}
			ex := newExtractor(t, false, extractor.WithFallback(hints))

			result, verdict := ex.Extract(context.Background(), post(t, "Come along for lunch with the society on Wednesday"))

			assert.Nil(t, result)
			assert.Equal(t, classifier.FilterFood, verdict.Filter)
		})
	}
}

func TestExtract_FallbackSkippedForHardFilters(t *testing.T) {
	hints := &fakeHints{text: &domain.LLMHint{Food: true}}
	ex := newExtractor(t, true, extractor.WithFallback(hints))

	result, _ := ex.Extract(context.Background(), post(t, "Lunch at the pub crawl on Friday"))

	assert.Nil(t, result)
	assert.Zero(t, hints.textCalls)
	assert.Zero(t, hints.visionCalls)
}

func visionPost(t *testing.T) domain.Post {
	t.Helper()
	p := post(t, "Big announcement, see poster!")
	p.OCRLowYield = true
	p.ImageURLs = []string{"u1", "u2", "u3", "u4", "u5"}
	return p
}

func TestExtract_VisionFallback(t *testing.T) {
	hints := &fakeHints{vision: &domain.LLMHint{Food: true, Text: "FREE PIZZA THURSDAY 1PM"}}
	ex := newExtractor(t, true, extractor.WithFallback(hints))

	result, verdict := ex.Extract(context.Background(), visionPost(t))

	require.True(t, verdict.Accepted)
	require.NotNil(t, result)
	assert.Equal(t, []string{"u1", "u2", "u3"}, hints.visionURLs)
	assert.Zero(t, hints.textCalls)
	assert.Equal(t, domain.StageLLMVision, result.ExtractedData.StageReached)
	assert.True(t, time.Date(2026, time.February, 26, 13, 0, 0, 0, dublin(t)).Equal(result.StartTime))
	assert.InDelta(t, 0.5, result.ConfidenceScore, 1e-9)
}

func TestExtract_VisionGates(t *testing.T) {
	tests := []struct {
		name       string
		vision     bool
		mutate     func(*domain.Post)
		hint       *domain.LLMHint
		wantCalled bool
	}{
		{
			name:   "vision disabled",
			vision: false,
			hint:   &domain.LLMHint{Food: true},
		},
		{
			name:   "ocr yield fine",
			vision: true,
			mutate: func(p *domain.Post) { p.OCRLowYield = false },
			hint:   &domain.LLMHint{Food: true},
		},
		{
			name:   "no images",
			vision: true,
			mutate: func(p *domain.Post) { p.ImageURLs = nil },
			hint:   &domain.LLMHint{Food: true},
		},
		{
			name:   "negated food",
			vision: true,
			mutate: func(p *domain.Post) { p.Text = "No food at this one, see poster" },
			hint:   &domain.LLMHint{Food: true},
		},
		{
			name:       "vision text hits hard filter",
			vision:     true,
			hint:       &domain.LLMHint{Food: true, Text: "Tickets €15 at the door. Free pizza"},
			wantCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hints := &fakeHints{vision: tt.hint}
			ex := newExtractor(t, tt.vision, extractor.WithFallback(hints))
			p := visionPost(t)
			if tt.mutate != nil {
				tt.mutate(&p)
			}

			result, verdict := ex.Extract(context.Background(), p)

			assert.Nil(t, result)
			assert.False(t, verdict.Accepted)
			assert.Equal(t, tt.wantCalled, hints.visionCalls == 1)
		})
	}
}

func TestExtract_WithLLMFallbackAndTelemetry(t *testing.T) {
	model := testhelpers.NewMockModel(`{"food": true, "location": null, "time": "12:30"}`)
	tp := telemetry.NewProvider()
	fb := llm.NewFallback(model, testhelpers.NewMockCache(), llm.FallbackConfig{}, testhelpers.NewTestLogger(), tp)
	ex := newExtractor(t, false, extractor.WithFallback(fb), extractor.WithTelemetry(tp))

	result, verdict := ex.Extract(context.Background(), post(t, "Come along for lunch with the society on Wednesday"))
	require.True(t, verdict.Accepted)
	assert.Equal(t, 12, result.StartTime.Hour())
	assert.Equal(t, 30, result.StartTime.Minute())

	_, verdict = ex.Extract(context.Background(), post(t, "Thanks for coming, pizza was amazing!"))
	require.False(t, verdict.Accepted)

	assert.InDelta(t, 1, testutil.ToFloat64(tp.Metrics.PostsTotal.WithLabelValues("instagram", string(domain.StageLLMText))), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(tp.Metrics.RejectionsTotal.WithLabelValues(classifier.FilterRecap)), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(tp.Metrics.ExtractionDuration))
	assert.Equal(t, 1, model.Calls())
}

func TestExtract_Concurrent(t *testing.T) {
	ex := newExtractor(t, false)
	texts := []string{
		"Free pizza tomorrow at 1pm",
		"Thanks for coming, pizza was amazing!",
		"Free pizza at Astra Hall on 25 February 6:30pm - 8pm",
	}

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(text string) {
			defer wg.Done()
			_, _ = ex.Extract(context.Background(), post(t, text))
		}(texts[i%len(texts)])
	}
	wg.Wait()
}
