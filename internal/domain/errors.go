// Package domain contains the creature record types, the views derived from
// them, and the error taxonomy shared by every entry point.
// Domain errors represent business-level failures, NOT HTTP errors.
// They are infrastructure-agnostic and are mapped to status codes by adapters.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrInvalidIdentifier indicates the caller supplied an empty or blank identifier.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrNotFound indicates the upstream service reports no such entity.
	ErrNotFound = errors.New("not found")

	// ErrUpstream indicates the upstream service failed at the transport,
	// protocol, or decoding level, or returned a malformed record.
	ErrUpstream = errors.New("upstream error")
)

// InvalidIdentifierError provides context for rejected identifiers.
type InvalidIdentifierError struct {
	Reason string
}

// Error implements the error interface.
func (e *InvalidIdentifierError) Error() string {
	if e.Reason != "" {
		return "invalid identifier: " + e.Reason
	}

	return "invalid identifier"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *InvalidIdentifierError) Unwrap() error {
	return ErrInvalidIdentifier
}

// NewInvalidIdentifierError creates an invalid identifier error with context.
func NewInvalidIdentifierError(reason string) error {
	return &InvalidIdentifierError{Reason: reason}
}

// NotFoundError provides context for not found errors.
type NotFoundError struct {
	Entity string
	ID     string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
	}

	return e.Entity + " not found"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// UpstreamError provides context for upstream failures.
// Reason is for logs only and must never be shown to callers.
type UpstreamError struct {
	Service string
	Reason  string
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("upstream %q failed: %s", e.Service, e.Reason)
	}

	return fmt.Sprintf("upstream %q failed", e.Service)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UpstreamError) Unwrap() error {
	return ErrUpstream
}

// NewUpstreamError creates an upstream error with context.
func NewUpstreamError(service, reason string) error {
	return &UpstreamError{Service: service, Reason: reason}
}

// IsInvalidIdentifier checks if an error is an invalid identifier error.
func IsInvalidIdentifier(err error) bool {
	return errors.Is(err, ErrInvalidIdentifier)
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUpstream checks if an error is an upstream error.
func IsUpstream(err error) bool {
	return errors.Is(err, ErrUpstream)
}
