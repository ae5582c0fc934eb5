package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/pokedex-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/pokedex-service/internal/domain"
	"github.com/jsamuelsen/pokedex-service/internal/platform/logging"
)

const uuidV4Pattern = `^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeEnvelope(t *testing.T, body []byte) dto.ErrorResponse {
	t.Helper()

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))

	return resp
}

// TestIDMiddleware covers both ID middlewares, which share one implementation.
func TestIDMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		middleware gin.HandlerFunc
		header     string
		fromGin    func(*gin.Context) string
		fromCtx    func(context.Context) string
	}{
		{
			name:       "request ID",
			middleware: RequestID(),
			header:     HeaderRequestID,
			fromGin:    GetRequestID,
			fromCtx:    RequestIDFromContext,
		},
		{
			name:       "correlation ID",
			middleware: CorrelationID(),
			header:     HeaderCorrelationID,
			fromGin:    GetCorrelationID,
			fromCtx:    CorrelationIDFromContext,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name+" generates UUID", func(t *testing.T) {
			t.Parallel()

			var ginID, ctxID string

			router := gin.New()
			router.Use(tt.middleware)
			router.GET("/test", func(c *gin.Context) {
				ginID = tt.fromGin(c)
				ctxID = tt.fromCtx(c.Request.Context())
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

			assert.Regexp(t, uuidV4Pattern, ginID)
			assert.Equal(t, ginID, ctxID)
			assert.Equal(t, ginID, w.Header().Get(tt.header))
		})

		t.Run(tt.name+" keeps inbound header", func(t *testing.T) {
			t.Parallel()

			var ginID, ctxID string

			router := gin.New()
			router.Use(tt.middleware)
			router.GET("/test", func(c *gin.Context) {
				ginID = tt.fromGin(c)
				ctxID = tt.fromCtx(c.Request.Context())
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set(tt.header, "inbound-123")
			router.ServeHTTP(w, req)

			assert.Equal(t, "inbound-123", ginID)
			assert.Equal(t, "inbound-123", ctxID)
			assert.Equal(t, "inbound-123", w.Header().Get(tt.header))
		})
	}
}

func TestIDContext(t *testing.T) {
	t.Parallel()

	var nilCtx context.Context
	assert.Empty(t, RequestIDFromContext(nilCtx))
	assert.Empty(t, CorrelationIDFromContext(context.Background()))

	ctx := ContextWithRequestID(context.Background(), "req-25")
	ctx = ContextWithCorrelationID(ctx, "corr-25")

	assert.Equal(t, "req-25", RequestIDFromContext(ctx))
	assert.Equal(t, "corr-25", CorrelationIDFromContext(ctx))

	// Plain string keys used by gin or the logger must not collide.
	ctx = context.WithValue(ctx, ContextKeyRequestID, "shadow") //nolint:staticcheck // collision check
	assert.Equal(t, "req-25", RequestIDFromContext(ctx))
}

func TestRequestID_EnrichesContextLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), base))
		c.Next()
	})
	router.Use(RequestID())
	router.GET("/test", func(c *gin.Context) {
		logging.FromContext(c.Request.Context()).Info("hello")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(HeaderRequestID, "log-me")
	router.ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), `"request_id":"log-me"`)
}

func TestGetters(t *testing.T) {
	t.Parallel()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Empty(t, GetRequestID(c))
	assert.Equal(t, "unknown", MustGetRequestID(c))
	assert.Empty(t, GetCorrelationID(c))
	assert.Equal(t, "unknown", MustGetCorrelationID(c))

	c.Set(ContextKeyRequestID, "req")
	c.Set(ContextKeyCorrelationID, "corr")

	assert.Equal(t, "req", MustGetRequestID(c))
	assert.Equal(t, "corr", MustGetCorrelationID(c))
}

func TestGetIDFromContext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"string value", "test-value", "test-value"},
		{"non-string value", 123, ""},
		{"missing", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			if tt.value != nil {
				c.Set("test-key", tt.value)
			}

			assert.Equal(t, tt.expected, getIDFromContext(c, "test-key"))
		})
	}
}

func TestLoggingWithSkipPaths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		path      string
		status    int
		wantLog   bool
		wantLevel string
	}{
		{"logs api request", "/api/pokemon/pikachu/", http.StatusOK, true, "INFO"},
		{"skips internal prefix", "/-/live", http.StatusOK, false, ""},
		{"skips exact path", "/favicon.ico", http.StatusOK, false, ""},
		{"warns on 4xx", "/api/pokemon/missingno/", http.StatusNotFound, true, "WARN"},
		{"errors on 5xx", "/api/pokemon/boom/", http.StatusInternalServerError, true, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))

			router := gin.New()
			router.Use(LoggingWithSkipPaths(logger, []string{"/favicon.ico"}))
			router.GET("/*path", func(c *gin.Context) {
				c.Status(tt.status)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path+"?debug=1", nil))

			assert.Equal(t, tt.status, w.Code)

			if !tt.wantLog {
				assert.Empty(t, buf.String())
				return
			}

			assert.Contains(t, buf.String(), "request started")
			assert.Contains(t, buf.String(), "request completed")
			assert.Contains(t, buf.String(), `"level":"`+tt.wantLevel+`","msg":"request completed"`)
			assert.Contains(t, buf.String(), "?debug=1")
		})
	}
}

func TestLogging_SkipsInternalRoutes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	router := gin.New()
	router.Use(Logging(slog.New(slog.NewJSONHandler(&buf, nil))))
	router.GET("/-/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/-/metrics", nil))

	assert.Empty(t, buf.String())
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	t.Run("normal request passes through", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Recovery(logging.Discard()))
		router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("panic becomes 500 envelope", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		router := gin.New()
		router.Use(Recovery(slog.New(slog.NewJSONHandler(&buf, nil))))
		router.GET("/test", func(c *gin.Context) {
			panic("secret detail")
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)

		resp := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, resp.Error)
		assert.Equal(t, dto.MessageInternal, resp.Message)
		assert.NotContains(t, w.Body.String(), "secret detail")
		assert.Contains(t, buf.String(), "panic recovered")
	})

	t.Run("stack handler receives panic", func(t *testing.T) {
		t.Parallel()

		var capturedErr any
		var capturedStack []byte

		router := gin.New()
		router.Use(RecoveryWithWriter(logging.Discard(), func(err any, stack []byte) {
			capturedErr = err
			capturedStack = stack
		}))
		router.GET("/test", func(c *gin.Context) {
			panic("test panic")
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "test panic", capturedErr)
		assert.Contains(t, string(capturedStack), "panic")
	})
}

func TestTimeout(t *testing.T) {
	t.Parallel()

	t.Run("sets context deadline", func(t *testing.T) {
		t.Parallel()

		var deadline time.Time
		var hasDeadline bool

		router := gin.New()
		router.Use(Timeout(5 * time.Second))
		router.GET("/test", func(c *gin.Context) {
			deadline, hasDeadline = c.Request.Context().Deadline()
			c.Status(http.StatusOK)
		})

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))

		require.True(t, hasDeadline)
		assert.WithinDuration(t, time.Now().Add(5*time.Second), deadline, time.Second)
	})

	t.Run("zero disables deadline", func(t *testing.T) {
		t.Parallel()

		var hasDeadline bool

		router := gin.New()
		router.Use(Timeout(0))
		router.GET("/test", func(c *gin.Context) {
			_, hasDeadline = c.Request.Context().Deadline()
			c.Status(http.StatusOK)
		})

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.False(t, hasDeadline)
	})

	t.Run("context is cancelled once expired", func(t *testing.T) {
		t.Parallel()

		var ctxErr error

		router := gin.New()
		router.Use(Timeout(10 * time.Millisecond))
		router.GET("/test", func(c *gin.Context) {
			<-c.Request.Context().Done()
			ctxErr = c.Request.Context().Err()
			c.Status(http.StatusOK)
		})

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.ErrorIs(t, ctxErr, context.DeadlineExceeded)
	})
}

func TestErrorHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "invalid identifier",
			err:        domain.NewInvalidIdentifierError("blank"),
			wantStatus: http.StatusBadRequest,
			wantMsg:    dto.MessageInvalidIdentifier,
		},
		{
			name:       "not found",
			err:        domain.NewNotFoundError("pokemon", "pikachuu"),
			wantStatus: http.StatusNotFound,
			wantMsg:    `pokemon "pikachuu" not found`,
		},
		{
			name:       "upstream",
			err:        domain.NewUpstreamError("pokeapi", "HTTP 500: stack trace"),
			wantStatus: http.StatusBadGateway,
			wantMsg:    dto.MessageUpstream,
		},
		{
			name:       "unexpected",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    dto.MessageInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := gin.New()
			router.Use(ErrorHandler(logging.Discard()))
			router.GET("/test", func(c *gin.Context) {
				_ = c.Error(tt.err)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

			assert.Equal(t, tt.wantStatus, w.Code)

			resp := decodeEnvelope(t, w.Body.Bytes())
			assert.True(t, resp.Error)
			assert.Equal(t, tt.wantMsg, resp.Message)
			assert.NotContains(t, w.Body.String(), "stack trace")
		})
	}
}

func TestErrorHandler_NoErrorPassesThrough(t *testing.T) {
	t.Parallel()

	router := gin.New()
	router.Use(ErrorHandler(logging.Discard()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"name": "Pikachu"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"Pikachu"}`, w.Body.String())
}

func TestErrorHandler_DoesNotOverwriteWrittenResponse(t *testing.T) {
	t.Parallel()

	router := gin.New()
	router.Use(ErrorHandler(logging.Discard()))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusTeapot, "already written")
		_ = c.Error(errors.New("late"))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "already written", w.Body.String())
}
