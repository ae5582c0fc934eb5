package acl

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jsamuelsen/pokedex-service/internal/adapters/clients"
	"github.com/jsamuelsen/pokedex-service/internal/domain"
)

// maxErrorSnippet bounds how much of an error body is kept for logs.
const maxErrorSnippet = 256

// MapHTTPError maps a failed call to a domain error.
//
// clientErr is set when no response was received; otherwise resp carries a
// non-2xx status. A target the client could not even build a request for
// names nothing upstream can serve, so it maps to NotFound. entity and entityID name the looked-up resource for
// NotFound errors. The upstream body is kept in the error reason for logs
// only; the HTTP layer never shows it to callers.
func MapHTTPError(resp *http.Response, clientErr error, serviceName, entity, entityID string) error {
	if clientErr != nil {
		if errors.Is(clientErr, clients.ErrInvalidTarget) {
			return domain.NewNotFoundError(entity, entityID)
		}

		return mapClientError(clientErr, serviceName)
	}

	if resp == nil {
		return domain.NewUpstreamError(serviceName, "no response received")
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	if resp.StatusCode == http.StatusNotFound {
		return domain.NewNotFoundError(entity, entityID)
	}

	reason := fmt.Sprintf("HTTP %d", resp.StatusCode)
	if snippet := readSnippet(resp.Body); snippet != "" {
		reason += ": " + snippet
	}

	return domain.NewUpstreamError(serviceName, reason)
}

// mapClientError translates client-level errors to upstream errors.
func mapClientError(err error, serviceName string) error {
	switch {
	case errors.Is(err, clients.ErrCircuitOpen):
		return domain.NewUpstreamError(serviceName, "circuit breaker open")
	default:
		return domain.NewUpstreamError(serviceName, err.Error())
	}
}

// readSnippet returns the start of an error body, trimmed for logging.
func readSnippet(body io.Reader) string {
	if body == nil {
		return ""
	}

	buf, err := io.ReadAll(io.LimitReader(body, maxErrorSnippet))
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(buf))
}
