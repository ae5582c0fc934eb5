package middleware

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/pokedex-service/internal/adapters/http/dto"
)

// httpErrorsTotal counts error envelopes written, by status code.
var httpErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "pokedex",
	Subsystem: "http",
	Name:      "errors_total",
	Help:      "Error responses written, by HTTP status code.",
}, []string{"status"})

// ErrorHandler returns middleware that renders the last error a handler
// attached with c.Error. The error is classified by the domain taxonomy:
// invalid identifiers become 400, unknown creatures 404, upstream failures
// 502, and anything else 500. Only the fixed envelope message reaches the
// caller; the underlying error is logged.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil {
			return
		}

		err := last.Err
		status, resp := dto.MapDomainError(err)

		ctxLogger := requestLogger(c, logger)
		attrs := []any{
			slog.Int("status", status),
			slog.String("path", c.Request.URL.Path),
			slog.Any("error", err),
		}

		switch {
		case status >= http.StatusInternalServerError && status != http.StatusBadGateway:
			ctxLogger.Error("unhandled error", attrs...)
		case status == http.StatusBadGateway:
			ctxLogger.Warn("upstream failure", attrs...)
		default:
			ctxLogger.Debug("request rejected", attrs...)
		}

		if status >= http.StatusInternalServerError {
			span := trace.SpanFromContext(c.Request.Context())
			span.RecordError(err)
			span.SetStatus(codes.Error, resp.Message)
		}

		httpErrorsTotal.WithLabelValues(statusLabel(status)).Inc()

		if c.Writer.Written() {
			return
		}

		c.AbortWithStatusJSON(status, resp)
	}
}

func statusLabel(status int) string {
	return strconv.Itoa(status)
}
