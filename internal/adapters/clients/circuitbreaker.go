package clients

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/jsamuelsen/pokedex-service/internal/platform/config"
)

// State is the breaker position for the creature database.
type State int

const (
	// StateClosed lets every call through.
	StateClosed State = iota

	// StateOpen fails calls fast until the cool-down ends.
	StateOpen

	// StateHalfOpen admits a few trial calls to decide whether to close.
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

// CircuitBreakerConfig sets the trip and recovery thresholds.
type CircuitBreakerConfig struct {
	// MaxFailures consecutive failures open the circuit.
	MaxFailures int

	// Timeout is the cool-down before trial calls are admitted.
	Timeout time.Duration

	// HalfOpenLimit caps trial calls in flight and is the number of
	// consecutive healthy trials that close the circuit.
	HalfOpenLimit int
}

// CircuitBreakerConfigFrom converts the loaded client settings, filling
// unset fields with the config package defaults.
func CircuitBreakerConfigFrom(cfg config.CircuitBreakerConfig) CircuitBreakerConfig {
	out := CircuitBreakerConfig{
		MaxFailures:   cfg.MaxFailures,
		Timeout:       cfg.Timeout,
		HalfOpenLimit: cfg.HalfOpenLimit,
	}

	if out.MaxFailures <= 0 {
		out.MaxFailures = config.DefaultClientCircuitMaxFailures
	}

	if out.Timeout <= 0 {
		out.Timeout = config.DefaultClientCircuitTimeout
	}

	if out.HalfOpenLimit <= 0 {
		out.HalfOpenLimit = config.DefaultClientCircuitHalfOpenLimit
	}

	return out
}

// outcome is how one upstream call bears on the circuit.
type outcome int

const (
	// outcomeNeutral calls say nothing about upstream health.
	outcomeNeutral outcome = iota
	outcomeHealthy
	outcomeFailed
)

// classify applies the failure policy. The upstream answering at all,
// including 404 for an unknown creature, is healthy. Transport errors and
// 5xx are failures. A caller that gave up is neutral.
func classify(status int, err error) outcome {
	switch {
	case errors.Is(err, context.Canceled):
		return outcomeNeutral
	case err != nil:
		return outcomeFailed
	case status >= http.StatusInternalServerError:
		return outcomeFailed
	default:
		return outcomeHealthy
	}
}

// CircuitBreaker stops calls to the creature database after repeated
// failures so a down upstream fails fast instead of tying up requests.
//
// An open circuit becomes half-open once its cool-down has passed, whether
// or not a call arrives, so readiness recovers without traffic.
type CircuitBreaker struct {
	mu  sync.Mutex
	cfg CircuitBreakerConfig

	state State

	// streak counts consecutive failures while closed and consecutive
	// healthy trials while half-open.
	streak int

	// trials are half-open calls admitted but not yet observed.
	trials int

	retryAt  time.Time
	listener func(from, to State)
	now      func() time.Time
}

// NewCircuitBreaker returns a closed breaker.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{cfg: cfg, now: time.Now}
}

// OnStateChange registers fn to run after each transition, outside the lock.
func (cb *CircuitBreaker) OnStateChange(fn func(from, to State)) {
	cb.mu.Lock()
	cb.listener = fn
	cb.mu.Unlock()
}

// Allow reports whether a call may go out now. In half-open it reserves one
// of the trial slots, which the matching Observe releases.
func (cb *CircuitBreaker) Allow() bool {
	allowed := false

	cb.transition(func() {
		cb.coolDown()

		switch cb.state {
		case StateClosed:
			allowed = true
		case StateHalfOpen:
			if cb.trials < cb.cfg.HalfOpenLimit {
				cb.trials++
				allowed = true
			}
		}
	})

	return allowed
}

// Observe feeds the result of an allowed call into the breaker.
// status is ignored when err is set.
func (cb *CircuitBreaker) Observe(status int, err error) {
	cb.record(classify(status, err))
}

// RecordSuccess counts a healthy call.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.record(outcomeHealthy)
}

// RecordFailure counts a failed call.
func (cb *CircuitBreaker) RecordFailure() {
	cb.record(outcomeFailed)
}

// Failures returns the consecutive failures seen while closed.
func (cb *CircuitBreaker) Failures() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state != StateClosed {
		return 0
	}

	return cb.streak
}

// State returns the current position, ending an expired cool-down first.
func (cb *CircuitBreaker) State() State {
	var state State

	cb.transition(func() {
		cb.coolDown()
		state = cb.state
	})

	return state
}

func (cb *CircuitBreaker) record(o outcome) {
	cb.transition(func() {
		if cb.state == StateHalfOpen && cb.trials > 0 {
			cb.trials--
		}

		switch o {
		case outcomeHealthy:
			cb.healthy()
		case outcomeFailed:
			cb.failed()
		}
	})
}

func (cb *CircuitBreaker) healthy() {
	switch cb.state {
	case StateClosed:
		cb.streak = 0
	case StateHalfOpen:
		cb.streak++
		if cb.streak >= cb.cfg.HalfOpenLimit {
			cb.moveTo(StateClosed)
		}
	}
}

func (cb *CircuitBreaker) failed() {
	switch cb.state {
	case StateClosed:
		cb.streak++
		if cb.streak >= cb.cfg.MaxFailures {
			cb.trip()
		}
	case StateHalfOpen:
		cb.trip()
	}
}

func (cb *CircuitBreaker) trip() {
	cb.retryAt = cb.now().Add(cb.cfg.Timeout)
	cb.moveTo(StateOpen)
}

// coolDown moves an open circuit to half-open once retryAt has passed.
func (cb *CircuitBreaker) coolDown() {
	if cb.state == StateOpen && !cb.now().Before(cb.retryAt) {
		cb.moveTo(StateHalfOpen)
	}
}

func (cb *CircuitBreaker) moveTo(to State) {
	cb.state = to
	cb.streak = 0
	cb.trials = 0
}

// transition runs fn under the lock and notifies the listener if the state
// changed.
func (cb *CircuitBreaker) transition(fn func()) {
	cb.mu.Lock()
	from := cb.state
	fn()
	to := cb.state
	listener := cb.listener
	cb.mu.Unlock()

	if from != to && listener != nil {
		listener(from, to)
	}
}
