package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/pokedex-service/internal/adapters/http/dto"
)

// Recovery returns middleware that turns a panic into the 500 envelope.
// The panic value and stack are logged; neither reaches the caller.
// Install it first so it wraps every other handler.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return RecoveryWithWriter(logger, nil)
}

// RecoveryWithWriter is Recovery with an extra hook that receives the panic
// value and stack, e.g. for crash reporting.
func RecoveryWithWriter(logger *slog.Logger, stackHandler func(err any, stack []byte)) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			stack := debug.Stack()
			if stackHandler != nil {
				stackHandler(r, stack)
			}

			ctx := c.Request.Context()

			var traceID string
			if span := trace.SpanFromContext(ctx); span.SpanContext().HasTraceID() {
				traceID = span.SpanContext().TraceID().String()
				span.SetStatus(codes.Error, "panic")
				span.RecordError(fmt.Errorf("panic: %v", r))
			}

			requestLogger(c, logger).Error("panic recovered",
				slog.Any("error", r),
				slog.String("stack", string(stack)),
				slog.String("path", c.Request.URL.Path),
				slog.String("method", c.Request.Method),
				slog.String("trace_id", traceID),
			)

			httpErrorsTotal.WithLabelValues(statusLabel(http.StatusInternalServerError)).Inc()

			if !c.Writer.Written() {
				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(dto.MessageInternal))
			} else {
				c.Abort()
			}
		}()

		c.Next()
	}
}
