// Package testhelpers provides shared test utilities for the extractor.
package testhelpers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonesrussell/freefood/internal/domain"
	"github.com/jonesrussell/freefood/internal/llm"
	"github.com/jonesrussell/freefood/internal/logger"
)

// ErrMockModel is the default error returned by a failing MockModel.
var ErrMockModel = errors.New("mock model failure")

// ErrMockCache is returned by a MockCache configured to fail.
var ErrMockCache = errors.New("mock cache failure")

// MockModel implements llm.Model with a scripted reply.
type MockModel struct {
	mu       sync.Mutex
	reply    string
	err      error
	block    bool
	requests []llm.Request
}

// NewMockModel returns a model that always answers reply.
func NewMockModel(reply string) *MockModel {
	return &MockModel{reply: reply}
}

// NewFailingModel returns a model that always fails with err.
func NewFailingModel(err error) *MockModel {
	if err == nil {
		err = ErrMockModel
	}
	return &MockModel{err: err}
}

// NewBlockingModel returns a model that waits for the context to end.
func NewBlockingModel() *MockModel {
	return &MockModel{block: true}
}

// Complete records req and returns the scripted reply.
func (m *MockModel) Complete(ctx context.Context, req llm.Request) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	block, reply, err := m.block, m.reply, m.err
	m.mu.Unlock()

	if block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return reply, err
}

// SetReply changes the scripted reply.
func (m *MockModel) SetReply(reply string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reply = reply
	m.err = nil
}

// Calls returns the number of requests seen.
func (m *MockModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Requests returns a copy of the requests seen.
func (m *MockModel) Requests() []llm.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]llm.Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// MockCache implements llm.Cache in memory.
type MockCache struct {
	mu       sync.RWMutex
	hints    map[string]*domain.LLMHint
	failSets bool
	failGets bool
}

// NewMockCache creates an empty cache.
func NewMockCache() *MockCache {
	return &MockCache{hints: make(map[string]*domain.LLMHint)}
}

// FailWrites makes every Set return ErrMockCache.
func (c *MockCache) FailWrites() *MockCache {
	c.failSets = true
	return c
}

// FailReads makes every Get return ErrMockCache.
func (c *MockCache) FailReads() *MockCache {
	c.failGets = true
	return c
}

// Get returns the stored hint.
func (c *MockCache) Get(_ context.Context, key string) (*domain.LLMHint, bool, error) {
	if c.failGets {
		return nil, false, ErrMockCache
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	hint, ok := c.hints[key]
	return hint, ok, nil
}

// Set stores hint under key. The ttl is ignored.
func (c *MockCache) Set(_ context.Context, key string, hint *domain.LLMHint, _ time.Duration) error {
	if c.failSets {
		return ErrMockCache
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hints[key] = hint
	return nil
}

// Len returns the number of stored hints.
func (c *MockCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.hints)
}

// NewTestLogger returns a logger that discards output.
func NewTestLogger() logger.Logger {
	return logger.NewNop()
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// TimePtr returns a pointer to t.
func TimePtr(t time.Time) *time.Time {
	return &t
}
