// Package processor runs the extractor over batches of posts.
package processor

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/freefood/internal/domain"
	"github.com/jonesrussell/freefood/internal/logger"
	"github.com/jonesrussell/freefood/internal/telemetry"
)

const defaultConcurrency = 4

// Extractor is the per-post operation the pool runs.
type Extractor interface {
	Extract(ctx context.Context, post domain.Post) (*domain.ExtractionResult, domain.Verdict)
}

// ProcessResult holds the outcome for one post. Err is set only when the
// post was skipped because the batch was cancelled.
type ProcessResult struct {
	Post    domain.Post
	Result  *domain.ExtractionResult
	Verdict domain.Verdict
	Err     error
}

// Stats summarises a processed batch.
type Stats struct {
	Total    int
	Accepted int
	Rejected int
	Skipped  int
	Duration time.Duration
}

// BatchProcessor processes posts in parallel using a bounded worker pool.
type BatchProcessor struct {
	extractor   Extractor
	concurrency int
	logger      logger.Logger
	telemetry   *telemetry.Provider
}

type job struct {
	index int
	post  domain.Post
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(ex Extractor, concurrency int, log logger.Logger, tp *telemetry.Provider) *BatchProcessor {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &BatchProcessor{
		extractor:   ex,
		concurrency: concurrency,
		logger:      log,
		telemetry:   tp,
	}
}

// Process extracts every post. Results keep input order. Posts without
// an ID are given one. When ctx is cancelled, undispatched posts come back
// with Err set and ctx.Err() is returned alongside the partial results.
func (b *BatchProcessor) Process(ctx context.Context, posts []domain.Post) ([]*ProcessResult, Stats, error) {
	if len(posts) == 0 {
		return []*ProcessResult{}, Stats{}, nil
	}

	b.logger.Info("Starting batch processing",
		logger.Int("batch_size", len(posts)),
		logger.Int("concurrency", b.concurrency))
	b.telemetry.RecordBatchSize(len(posts))
	startTime := time.Now()

	results := make([]*ProcessResult, len(posts))
	jobs := make(chan job)

	workers := min(b.concurrency, len(posts))
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go b.worker(ctx, i, jobs, results, &wg)
	}

	dispatched := 0
dispatch:
	for i, post := range posts {
		if ctx.Err() != nil {
			break
		}
		if post.ID == "" {
			post.ID = uuid.NewString()
		}
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- job{index: i, post: post}:
			dispatched++
		}
	}
	close(jobs)
	wg.Wait()

	for i := dispatched; i < len(posts); i++ {
		post := posts[i]
		if post.ID == "" {
			post.ID = uuid.NewString()
		}
		results[i] = &ProcessResult{Post: post, Err: ctx.Err()}
	}

	stats := summarise(results, time.Since(startTime))
	b.logger.Info("Batch processing complete",
		logger.Int("total", stats.Total),
		logger.Int("accepted", stats.Accepted),
		logger.Int("rejected", stats.Rejected),
		logger.Int("skipped", stats.Skipped),
		logger.Duration("duration", stats.Duration))

	if dispatched < len(posts) {
		return results, stats, ctx.Err()
	}
	return results, stats, nil
}

// worker processes posts from the jobs channel. Each job writes only its
// own slot in results.
func (b *BatchProcessor) worker(
	ctx context.Context,
	id int,
	jobs <-chan job,
	results []*ProcessResult,
	wg *sync.WaitGroup,
) {
	defer wg.Done()

	b.logger.Debug("Worker started", logger.Int("worker_id", id))
	for j := range jobs {
		result, verdict := b.extractor.Extract(ctx, j.post)
		results[j.index] = &ProcessResult{Post: j.post, Result: result, Verdict: verdict}
	}
	b.logger.Debug("Worker finished", logger.Int("worker_id", id))
}

func summarise(results []*ProcessResult, d time.Duration) Stats {
	s := Stats{Total: len(results), Duration: d}
	for _, r := range results {
		switch {
		case r.Err != nil:
			s.Skipped++
		case r.Result != nil:
			s.Accepted++
		default:
			s.Rejected++
		}
	}
	return s
}
