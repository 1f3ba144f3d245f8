package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"payment-journey-tracker/internal/core/ports"
	"payment-journey-tracker/internal/metrics"

	"github.com/rs/zerolog"
)

// ErrBreakerOpen is returned by Execute while the breaker rejects calls.
// Callers get a fast, predictable failure instead of hammering a store that
// is already down.
var ErrBreakerOpen = errors.New("circuit breaker is open")

// BreakerState is the current mode of the circuit breaker.
type BreakerState int

const (
	BreakerClosed BreakerState = iota
	BreakerHalfOpen
	BreakerOpen
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "open"
	}
}

// CircuitBreaker protects the event store from cascading failure.
// closed -> open after errorThreshold consecutive failures;
// open -> half-open after resetTimeout since the last failure;
// half-open -> closed on one success, half-open -> open on one failure.
type CircuitBreaker struct {
	mu             sync.Mutex
	state          BreakerState
	failures       int
	lastFailure    time.Time
	trialInFlight  bool
	errorThreshold int
	resetTimeout   time.Duration
	clock          ports.Clock
	log            zerolog.Logger
}

// NewCircuitBreaker creates a closed breaker.
func NewCircuitBreaker(errorThreshold int, resetTimeout time.Duration, clock ports.Clock, log zerolog.Logger) *CircuitBreaker {
	return &CircuitBreaker{
		state:          BreakerClosed,
		errorThreshold: errorThreshold,
		resetTimeout:   resetTimeout,
		clock:          clock,
		log:            log,
	}
}

// State returns the current breaker state.
func (b *CircuitBreaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentState()
}

// currentState resolves open -> half-open lazily once resetTimeout elapsed.
// Caller must hold b.mu.
func (b *CircuitBreaker) currentState() BreakerState {
	if b.state == BreakerOpen && b.clock.Now().Sub(b.lastFailure) >= b.resetTimeout {
		b.state = BreakerHalfOpen
		b.log.Info().Msg("circuit breaker half-open, allowing trial call")
	}
	return b.state
}

// Execute runs fn through the breaker. While open it fails fast with
// ErrBreakerOpen without invoking fn.
func (b *CircuitBreaker) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	b.mu.Lock()
	state := b.currentState()
	if state == BreakerOpen {
		b.mu.Unlock()
		return ErrBreakerOpen
	}
	if state == BreakerHalfOpen {
		// Exactly one trial call probes the dependency.
		if b.trialInFlight {
			b.mu.Unlock()
			return ErrBreakerOpen
		}
		b.trialInFlight = true
	}
	b.mu.Unlock()

	err := fn(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.trialInFlight = false
	if err != nil {
		b.failures++
		b.lastFailure = b.clock.Now()
		if b.state == BreakerHalfOpen || b.failures >= b.errorThreshold {
			if b.state != BreakerOpen {
				b.log.Warn().Int("failures", b.failures).Msg("circuit breaker opened")
			}
			b.state = BreakerOpen
		}
		metrics.BreakerState.Set(float64(b.state))
		return err
	}

	if b.state == BreakerHalfOpen {
		b.log.Info().Msg("circuit breaker closed after successful trial")
	}
	b.state = BreakerClosed
	b.failures = 0
	metrics.BreakerState.Set(float64(BreakerClosed))
	return nil
}

// IsOpen reports whether calls would currently be rejected.
func (b *CircuitBreaker) IsOpen() bool {
	return b.State() == BreakerOpen
}
