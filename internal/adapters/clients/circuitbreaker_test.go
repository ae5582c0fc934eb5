package clients

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/pokedex-service/internal/platform/config"
)

// trippedBreaker returns a breaker that opened on its first failure and a
// clock the test can advance.
func trippedBreaker(t *testing.T, halfOpenLimit int) (*CircuitBreaker, *time.Time) {
	t.Helper()

	now := time.Now()
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		MaxFailures:   1,
		Timeout:       100 * time.Millisecond,
		HalfOpenLimit: halfOpenLimit,
	})
	cb.now = func() time.Time { return now }

	cb.RecordFailure()
	require.Equal(t, StateOpen, cb.State())

	return cb, &now
}

func TestCircuitBreaker_ClosedCountsFailures(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		MaxFailures:   3,
		Timeout:       30 * time.Second,
		HalfOpenLimit: 2,
	})

	assert.Equal(t, StateClosed, cb.State())
	assert.True(t, cb.Allow())

	cb.RecordFailure()
	cb.RecordFailure()
	assert.Equal(t, 2, cb.Failures())
	assert.Equal(t, StateClosed, cb.State())

	cb.RecordSuccess()
	assert.Zero(t, cb.Failures())

	for range 3 {
		cb.RecordFailure()
	}

	assert.Equal(t, StateOpen, cb.State())
	assert.False(t, cb.Allow())
}

func TestCircuitBreaker_OpenWaitsForTimeout(t *testing.T) {
	cb, now := trippedBreaker(t, 2)

	*now = now.Add(50 * time.Millisecond)
	assert.False(t, cb.Allow())
	assert.Equal(t, StateOpen, cb.State())

	*now = now.Add(100 * time.Millisecond)
	assert.True(t, cb.Allow())
	assert.Equal(t, StateHalfOpen, cb.State())
}

func TestCircuitBreaker_HalfOpen(t *testing.T) {
	t.Run("closes after enough successes", func(t *testing.T) {
		cb, now := trippedBreaker(t, 2)
		*now = now.Add(time.Second)
		require.True(t, cb.Allow())

		cb.RecordSuccess()
		assert.Equal(t, StateHalfOpen, cb.State())

		cb.RecordSuccess()
		assert.Equal(t, StateClosed, cb.State())
	})

	t.Run("reopens on failure", func(t *testing.T) {
		cb, now := trippedBreaker(t, 2)
		*now = now.Add(time.Second)
		require.True(t, cb.Allow())

		cb.RecordFailure()
		assert.Equal(t, StateOpen, cb.State())
	})

	t.Run("limits trials in flight", func(t *testing.T) {
		cb, now := trippedBreaker(t, 2)
		*now = now.Add(time.Second)

		assert.True(t, cb.Allow())
		assert.True(t, cb.Allow())
		assert.False(t, cb.Allow())
	})
}

func TestCircuitBreaker_Observe(t *testing.T) {
	tests := []struct {
		name   string
		status int
		err    error
		want   int
	}{
		{"not found is healthy", http.StatusNotFound, nil, 0},
		{"rate limit is healthy", http.StatusTooManyRequests, nil, 0},
		{"server error fails", http.StatusBadGateway, nil, 2},
		{"transport error fails", 0, errors.New("connection refused"), 2},
		{"deadline fails", 0, context.DeadlineExceeded, 2},
		{"canceled caller is ignored", 0, context.Canceled, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := NewCircuitBreaker(CircuitBreakerConfig{MaxFailures: 5, Timeout: time.Second, HalfOpenLimit: 1})

			// One prior failure shows whether the outcome resets, extends
			// or leaves the streak alone.
			cb.RecordFailure()
			cb.Observe(tt.status, tt.err)

			assert.Equal(t, tt.want, cb.Failures())
		})
	}
}

func TestCircuitBreaker_NotFoundNeverTrips(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{MaxFailures: 2, Timeout: time.Second, HalfOpenLimit: 1})

	for range 10 {
		require.True(t, cb.Allow())
		cb.Observe(http.StatusNotFound, nil)
	}

	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_CanceledTrialFreesSlot(t *testing.T) {
	cb, now := trippedBreaker(t, 1)
	*now = now.Add(time.Second)

	require.True(t, cb.Allow())
	assert.False(t, cb.Allow())

	cb.Observe(0, fmt.Errorf("get: %w", context.Canceled))
	assert.Equal(t, StateHalfOpen, cb.State())
	assert.True(t, cb.Allow(), "slot released without a verdict")
}

func TestCircuitBreaker_StateEndsCoolDown(t *testing.T) {
	cb, now := trippedBreaker(t, 1)

	*now = now.Add(time.Second)

	assert.Equal(t, StateHalfOpen, cb.State(), "readiness sees recovery without traffic")
	assert.True(t, cb.Allow())
}

func TestCircuitBreaker_OnStateChange(t *testing.T) {
	changes := make(chan [2]State, 1)

	cb := NewCircuitBreaker(CircuitBreakerConfig{
		MaxFailures:   1,
		Timeout:       time.Second,
		HalfOpenLimit: 1,
	})
	cb.OnStateChange(func(from, to State) {
		changes <- [2]State{from, to}
	})

	cb.RecordFailure()

	select {
	case got := <-changes:
		assert.Equal(t, [2]State{StateClosed, StateOpen}, got)
	case <-time.After(time.Second):
		t.Fatal("state change callback not invoked")
	}
}

func TestCircuitBreaker_Concurrent(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		MaxFailures:   100,
		Timeout:       time.Second,
		HalfOpenLimit: 10,
	})

	var wg sync.WaitGroup

	for i := range 1000 {
		wg.Go(func() {
			if !cb.Allow() {
				return
			}

			if i%2 == 0 {
				cb.RecordSuccess()
			} else {
				cb.RecordFailure()
			}
		})
	}

	wg.Wait()

	assert.Contains(t, []State{StateClosed, StateOpen, StateHalfOpen}, cb.State())
}

func TestCircuitBreakerConfigFrom(t *testing.T) {
	t.Run("copies configured values", func(t *testing.T) {
		got := CircuitBreakerConfigFrom(config.CircuitBreakerConfig{
			MaxFailures:   7,
			Timeout:       time.Minute,
			HalfOpenLimit: 4,
		})

		assert.Equal(t, CircuitBreakerConfig{MaxFailures: 7, Timeout: time.Minute, HalfOpenLimit: 4}, got)
	})

	t.Run("fills zero values with defaults", func(t *testing.T) {
		got := CircuitBreakerConfigFrom(config.CircuitBreakerConfig{})

		assert.Equal(t, config.DefaultClientCircuitMaxFailures, got.MaxFailures)
		assert.Equal(t, config.DefaultClientCircuitTimeout, got.Timeout)
		assert.Equal(t, config.DefaultClientCircuitHalfOpenLimit, got.HalfOpenLimit)
	})
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateClosed, "closed"},
		{StateOpen, "open"},
		{StateHalfOpen, "half-open"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}
