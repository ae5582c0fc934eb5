package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/pokedex-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/pokedex-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/pokedex-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/pokedex-service/internal/platform/config"
	"github.com/jsamuelsen/pokedex-service/internal/platform/telemetry"
)

// APIPrefix is where the creature endpoints are mounted.
const APIPrefix = "/api"

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// AppConfig names the service for tracing.
	AppConfig *config.AppConfig

	// HealthHandler serves /-/ routes. Optional.
	HealthHandler *handlers.HealthHandler

	// PokemonHandler serves the API routes.
	PokemonHandler *handlers.PokemonHandler

	// HomeHandler serves the browser page at /. Optional.
	HomeHandler *handlers.HomeHandler

	// RequestTimeout bounds each API request, including move enrichment.
	// Zero disables the deadline.
	RequestTimeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery
//  2. Request ID
//  3. Correlation ID
//  4. OpenTelemetry span, then server metrics and X-Trace-ID
//  5. Logging (skips /-/ routes)
//  6. Error handler, which renders errors attached by handlers
//
// The API group also gets the request deadline. Unmatched paths and methods
// answer with the same error envelope as the API.
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.HandleMethodNotAllowed = true

	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(cfg.AppConfig.Name),
		telemetry.Middleware(),
		middleware.Logging(cfg.Logger),
		middleware.ErrorHandler(cfg.Logger),
	)

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	if cfg.HomeHandler != nil {
		cfg.HomeHandler.RegisterHomeRoutes(engine)
	}

	api := engine.Group(APIPrefix)
	api.Use(middleware.Timeout(cfg.RequestTimeout))

	if cfg.PokemonHandler != nil {
		cfg.PokemonHandler.RegisterPokemonRoutes(api)
	}

	engine.NoRoute(envelope(http.StatusNotFound, dto.MessageRouteNotFound))
	engine.NoMethod(envelope(http.StatusMethodNotAllowed, dto.MessageMethodNotAllowed))
}

func envelope(status int, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.AbortWithStatusJSON(status, dto.NewErrorResponse(message))
	}
}
