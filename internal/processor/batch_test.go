package processor_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/freefood/internal/domain"
	"github.com/jonesrussell/freefood/internal/processor"
	"github.com/jonesrussell/freefood/internal/telemetry"
	"github.com/jonesrussell/freefood/internal/testhelpers"
)

// echoExtractor accepts posts whose text starts with "yes".
type echoExtractor struct {
	inFlight atomic.Int32
	peak     atomic.Int32
	delay    time.Duration
}

func (e *echoExtractor) Extract(_ context.Context, post domain.Post) (*domain.ExtractionResult, domain.Verdict) {
	n := e.inFlight.Add(1)
	defer e.inFlight.Add(-1)
	for {
		p := e.peak.Load()
		if n <= p || e.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(e.delay)

	if len(post.Text) >= 3 && post.Text[:3] == "yes" {
		return &domain.ExtractionResult{ID: post.ID, RawText: post.Text}, domain.Accept()
	}
	return nil, domain.Reject("food", "No free food mentioned")
}

func makePosts(n int) []domain.Post {
	posts := make([]domain.Post, n)
	for i := range posts {
		text := "no"
		if i%2 == 0 {
			text = "yes"
		}
		posts[i] = domain.Post{ID: fmt.Sprintf("p%d", i), Text: fmt.Sprintf("%s %d", text, i)}
	}
	return posts
}

func TestProcess_PreservesOrder(t *testing.T) {
	ex := &echoExtractor{delay: time.Millisecond}
	bp := processor.NewBatchProcessor(ex, 4, testhelpers.NewTestLogger(), nil)
	posts := makePosts(20)

	results, stats, err := bp.Process(context.Background(), posts)

	require.NoError(t, err)
	require.Len(t, results, len(posts))
	for i, r := range results {
		assert.Equal(t, posts[i].ID, r.Post.ID)
		assert.NoError(t, r.Err)
		if i%2 == 0 {
			require.NotNil(t, r.Result)
			assert.True(t, r.Verdict.Accepted)
		} else {
			assert.Nil(t, r.Result)
			assert.Equal(t, "food", r.Verdict.Filter)
		}
	}
	assert.Equal(t, processor.Stats{Total: 20, Accepted: 10, Rejected: 10, Duration: stats.Duration}, stats)
}

func TestProcess_BoundsConcurrency(t *testing.T) {
	ex := &echoExtractor{delay: 5 * time.Millisecond}
	bp := processor.NewBatchProcessor(ex, 3, nil, nil)

	_, _, err := bp.Process(context.Background(), makePosts(15))

	require.NoError(t, err)
	assert.LessOrEqual(t, ex.peak.Load(), int32(3))
}

func TestProcess_AssignsMissingIDs(t *testing.T) {
	bp := processor.NewBatchProcessor(&echoExtractor{}, 2, nil, nil)

	results, _, err := bp.Process(context.Background(), []domain.Post{{Text: "yes"}, {Text: "yes", ID: "keep"}})

	require.NoError(t, err)
	assert.Len(t, results[0].Post.ID, 36)
	assert.Equal(t, results[0].Post.ID, results[0].Result.ID)
	assert.Equal(t, "keep", results[1].Post.ID)
}

func TestProcess_Empty(t *testing.T) {
	bp := processor.NewBatchProcessor(&echoExtractor{}, 0, nil, nil)

	results, stats, err := bp.Process(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, stats.Total)
}

func TestProcess_Cancelled(t *testing.T) {
	bp := processor.NewBatchProcessor(&echoExtractor{}, 2, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, stats, err := bp.Process(ctx, makePosts(5))

	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 5)
	for _, r := range results {
		require.ErrorIs(t, r.Err, context.Canceled)
		assert.NotEmpty(t, r.Post.ID)
	}
	assert.Equal(t, 5, stats.Skipped)
}

// gateExtractor blocks on the first post until released.
type gateExtractor struct {
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func (g *gateExtractor) Extract(_ context.Context, post domain.Post) (*domain.ExtractionResult, domain.Verdict) {
	g.once.Do(func() {
		close(g.started)
		<-g.release
	})
	return &domain.ExtractionResult{ID: post.ID}, domain.Accept()
}

func TestProcess_CancelMidBatchKeepsFinished(t *testing.T) {
	g := &gateExtractor{started: make(chan struct{}), release: make(chan struct{})}
	bp := processor.NewBatchProcessor(g, 1, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		<-g.started
		cancel()
		close(g.release)
	}()

	results, stats, err := bp.Process(ctx, makePosts(4))

	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, results[0].Result)
	assert.NoError(t, results[0].Err)
	assert.GreaterOrEqual(t, stats.Skipped, 2)
}

func TestProcess_RecordsBatchSize(t *testing.T) {
	tp := telemetry.NewProvider()
	bp := processor.NewBatchProcessor(&echoExtractor{}, 2, nil, tp)

	_, _, err := bp.Process(context.Background(), makePosts(3))

	require.NoError(t, err)
	assert.Equal(t, 1, testutil.CollectAndCount(tp.Metrics.BatchSize))
}
