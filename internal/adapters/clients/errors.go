// Package clients provides the instrumented HTTP client used for outbound
// calls to the creature database.
package clients

import "errors"

// Client errors are infrastructure failures. Callers translate them into
// domain errors before they leave the adapter layer.
var (
	// ErrCircuitOpen is returned when the circuit breaker is blocking calls
	// to an unhealthy downstream.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrRequestFailed wraps transport-level failures: DNS, connect, TLS,
	// timeouts and cancellation. No response was received.
	ErrRequestFailed = errors.New("request failed")

	// ErrInvalidTarget is returned when a request cannot be built for the
	// target, for example a path with a malformed percent escape. Nothing
	// was sent.
	ErrInvalidTarget = errors.New("invalid request target")
)
