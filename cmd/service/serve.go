package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/pokedex-service/internal/adapters/http"
	"github.com/jsamuelsen/pokedex-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/pokedex-service/internal/platform/telemetry"
	"github.com/jsamuelsen/pokedex-service/internal/ports"
)

// homeTitle is shown on the browser front end.
const homeTitle = "Pokédex"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long:  `Serve the JSON API, the browser front end and the /-/ operational endpoints.`,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// 1. Load and validate configuration (fail fast)
	cfg, err := loadConfig(configDir, profile)
	if err != nil {
		return err
	}

	// 2. Initialize logging
	logger := newLogger(cfg, os.Stdout)
	slog.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("upstream", cfg.Services.PokeAPI.BaseURL),
	)

	// 3. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 4. Upstream adapter, registered as a readiness check
	pokeapi, err := newPokeAPIClient(cfg, logger)
	if err != nil {
		return err
	}

	healthRegistry := ports.NewHealthRegistry()
	if err := healthRegistry.Register(pokeapi); err != nil {
		return fmt.Errorf("registering upstream health check: %w", err)
	}

	// 5. Application service and handlers
	service := newPokemonService(pokeapi, logger)

	buildInfo := handlers.NewBuildInfo(cfg.App.Name, Version, Commit, BuildTime)

	// 6. HTTP server with middleware and routes
	server := http.New(&cfg.Server, logger)
	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:         logger,
		AppConfig:      &cfg.App,
		HealthHandler:  handlers.NewHealthHandler(healthRegistry, buildInfo),
		PokemonHandler: handlers.NewPokemonHandler(service),
		HomeHandler:    handlers.NewHomeHandler(homeTitle, http.APIPrefix),
		RequestTimeout: cfg.Server.RequestTimeout,
	})

	// 7. Start server (non-blocking)
	serverErr, err := server.Start()
	if err != nil {
		return err
	}

	// 8. Wait for shutdown signal
	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// waitForShutdown blocks until a shutdown signal is received or the server
// fails, then drains in-flight requests.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serverErr:
		if ok && err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
