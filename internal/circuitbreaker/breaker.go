// Package circuitbreaker guards the LLM fallback so a failing provider
// degrades extraction to rules-only instead of stalling every post.
package circuitbreaker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrCircuitOpen is returned by Execute while the breaker rejects calls.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// State represents the state of the circuit breaker.
type State int

const (
	// StateClosed allows every call.
	StateClosed State = iota
	// StateOpen rejects calls until the cooldown elapses.
	StateOpen
	// StateHalfOpen lets probe calls through to test recovery.
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

const (
	defaultFailureThreshold = 5
	defaultSuccessThreshold = 1
	defaultTimeout          = 60 * time.Second
)

// Config configures a circuit breaker.
type Config struct {
	// FailureThreshold is the number of consecutive failures before opening.
	FailureThreshold int
	// SuccessThreshold is the number of half-open successes before closing.
	SuccessThreshold int
	// Timeout is how long the circuit stays open before half-opening.
	Timeout time.Duration
	// OnStateChange is called under the breaker lock; keep it cheap.
	OnStateChange func(from, to State)
	// Now overrides the clock in tests.
	Now func() time.Time
}

// Breaker implements the circuit breaker pattern.
type Breaker struct {
	mu              sync.Mutex
	state           State
	failureCount    int
	successCount    int
	lastFailureTime time.Time
	config          Config
}

// New creates a breaker, filling zero config values with defaults.
func New(config Config) *Breaker {
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = defaultFailureThreshold
	}
	if config.SuccessThreshold <= 0 {
		config.SuccessThreshold = defaultSuccessThreshold
	}
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	return &Breaker{state: StateClosed, config: config}
}

// Execute runs fn unless the circuit is open. A cancelled context is not
// counted against the provider.
func (b *Breaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if err := b.beforeCall(); err != nil {
		return err
	}

	err := fn(ctx)
	if err != nil && ctx.Err() != nil && errors.Is(err, context.Canceled) {
		return err
	}

	b.afterCall(err)
	return err
}

// State returns the current state, half-opening an expired open circuit.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.maybeHalfOpen()
	return b.state
}

func (b *Breaker) beforeCall() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.maybeHalfOpen()
	if b.state == StateOpen {
		remaining := b.config.Timeout - b.config.Now().Sub(b.lastFailureTime)
		return fmt.Errorf("%w: retry after %v", ErrCircuitOpen, remaining)
	}
	return nil
}

func (b *Breaker) maybeHalfOpen() {
	if b.state == StateOpen && b.config.Now().Sub(b.lastFailureTime) >= b.config.Timeout {
		b.transitionTo(StateHalfOpen)
	}
}

func (b *Breaker) afterCall(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		b.recordFailure()
		return
	}
	b.recordSuccess()
}

func (b *Breaker) recordFailure() {
	b.failureCount++
	b.lastFailureTime = b.config.Now()

	switch b.state {
	case StateClosed:
		if b.failureCount >= b.config.FailureThreshold {
			b.transitionTo(StateOpen)
		}
	case StateHalfOpen:
		b.transitionTo(StateOpen)
	case StateOpen:
	}
}

func (b *Breaker) recordSuccess() {
	b.failureCount = 0

	if b.state == StateHalfOpen {
		b.successCount++
		if b.successCount >= b.config.SuccessThreshold {
			b.transitionTo(StateClosed)
		}
	}
}

func (b *Breaker) transitionTo(newState State) {
	if b.state == newState {
		return
	}

	oldState := b.state
	b.state = newState
	b.failureCount = 0
	b.successCount = 0

	if b.config.OnStateChange != nil {
		b.config.OnStateChange(oldState, newState)
	}
}
