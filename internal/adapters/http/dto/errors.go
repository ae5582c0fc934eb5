// Package dto provides Data Transfer Objects for HTTP request/response handling.
package dto

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jsamuelsen/pokedex-service/internal/domain"
)

// ErrorResponse is the envelope written for every failed request.
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// Fixed caller-facing messages. Upstream text never reaches the caller.
const (
	MessageInvalidIdentifier = "provide a pokemon name or number"
	MessageUpstream          = "error querying the pokemon API"
	MessageInternal          = "internal server error"
	MessageRouteNotFound     = "route not found"
	MessageMethodNotAllowed  = "method not allowed"
	messageNotFoundFormat    = "pokemon %q not found"
	messageNotFoundGeneric   = "pokemon not found"
)

// NewErrorResponse creates an error envelope with the given message.
func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{Error: true, Message: message}
}

// MapDomainError maps an error to its status code and envelope.
// Anything outside the domain taxonomy becomes a generic 500.
func MapDomainError(err error) (int, *ErrorResponse) {
	switch {
	case domain.IsInvalidIdentifier(err):
		return http.StatusBadRequest, NewErrorResponse(MessageInvalidIdentifier)

	case domain.IsNotFound(err):
		var nf *domain.NotFoundError
		if errors.As(err, &nf) && nf.ID != "" {
			return http.StatusNotFound, NewErrorResponse(fmt.Sprintf(messageNotFoundFormat, nf.ID))
		}

		return http.StatusNotFound, NewErrorResponse(messageNotFoundGeneric)

	case domain.IsUpstream(err):
		return http.StatusBadGateway, NewErrorResponse(MessageUpstream)

	default:
		return http.StatusInternalServerError, NewErrorResponse(MessageInternal)
	}
}
