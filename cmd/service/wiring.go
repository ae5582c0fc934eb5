package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/jsamuelsen/pokedex-service/internal/adapters/clients"
	"github.com/jsamuelsen/pokedex-service/internal/adapters/clients/acl"
	"github.com/jsamuelsen/pokedex-service/internal/app"
	"github.com/jsamuelsen/pokedex-service/internal/platform/config"
	"github.com/jsamuelsen/pokedex-service/internal/platform/logging"
)

// loadConfig loads and validates configuration (fail fast).
func loadConfig(dir, profile string) (*config.Config, error) {
	cfg, err := config.LoadFrom(dir, profile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// newLogger builds the service logger writing to w.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	return logging.NewWithWriter(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	}, w)
}

// newPokeAPIClient builds the instrumented upstream client and its adapter.
func newPokeAPIClient(cfg *config.Config, logger *slog.Logger) (*acl.PokeAPIClient, error) {
	upstream := cfg.Services.PokeAPI

	httpClient, err := clients.New(&clients.Config{
		BaseURL:     upstream.BaseURL,
		ServiceName: upstream.Name,
		UserAgent:   upstream.UserAgent,
		Timeout:     cfg.Client.Timeout,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating HTTP client: %w", err)
	}

	return acl.NewPokeAPIClient(acl.PokeAPIClientConfig{
		Client: httpClient,
		Logger: logger,
	}), nil
}

// newPokemonService wires the application service over the upstream adapter.
func newPokemonService(client *acl.PokeAPIClient, logger *slog.Logger) *app.PokemonService {
	return app.NewPokemonService(app.PokemonServiceConfig{
		Client: client,
		Logger: logger,
	})
}
