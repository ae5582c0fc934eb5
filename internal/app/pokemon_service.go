// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/jsamuelsen/pokedex-service/internal/domain"
	"github.com/jsamuelsen/pokedex-service/internal/ports"
)

const instrumentationName = "github.com/jsamuelsen/pokedex-service/internal/app"

// PokemonService turns a raw identifier into one of the creature views:
// normalize, fetch the record, then parse or enrich it.
// It depends on the PokemonClient port, not a concrete adapter.
type PokemonService struct {
	client ports.PokemonClient
	logger *slog.Logger

	enrichmentSkipped metric.Int64Counter
}

// PokemonServiceConfig contains configuration for the pokemon service.
type PokemonServiceConfig struct {
	Client ports.PokemonClient
	Logger *slog.Logger

	// MeterProvider is optional; the global provider is used when nil.
	MeterProvider metric.MeterProvider
}

// NewPokemonService creates a new pokemon service with the provided dependencies.
// Panics if Client is nil. Defaults logger to slog.Default() if nil.
func NewPokemonService(cfg PokemonServiceConfig) *PokemonService {
	if cfg.Client == nil {
		panic("PokemonService: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mp := cfg.MeterProvider
	if mp == nil {
		mp = otel.GetMeterProvider()
	}

	skipped, err := mp.Meter(instrumentationName).Int64Counter(
		"pokedex.moves.enrichment.skipped",
		metric.WithDescription("Level-up moves dropped because their detail could not be fetched"),
	)
	if err != nil {
		otel.Handle(err)
	}

	return &PokemonService{
		client:            cfg.Client,
		logger:            logger,
		enrichmentSkipped: skipped,
	}
}

// Summary returns the basic view for a raw name or number.
func (s *PokemonService) Summary(ctx context.Context, raw string) (*domain.Summary, error) {
	rec, err := s.lookup(ctx, raw)
	if err != nil {
		return nil, err
	}

	return domain.ParseSummary(rec)
}

// Moves returns the level-up moves, each enriched with its move detail.
func (s *PokemonService) Moves(ctx context.Context, raw string) (*domain.MovesView, error) {
	rec, err := s.lookup(ctx, raw)
	if err != nil {
		return nil, err
	}

	moves := s.enrich(ctx, domain.SelectLevelUpMoves(rec.Moves))

	return &domain.MovesView{
		Name:   domain.Capitalize(rec.Name),
		Number: domain.Number(rec),
		Moves:  moves,
	}, nil
}

// Stats returns the base stat view.
func (s *PokemonService) Stats(ctx context.Context, raw string) (*domain.StatsView, error) {
	rec, err := s.lookup(ctx, raw)
	if err != nil {
		return nil, err
	}

	return domain.ParseStats(rec), nil
}

// Abilities returns the ability view.
func (s *PokemonService) Abilities(ctx context.Context, raw string) (*domain.AbilitiesView, error) {
	rec, err := s.lookup(ctx, raw)
	if err != nil {
		return nil, err
	}

	return domain.ParseAbilities(rec), nil
}

// Profile returns every view from a single record fetch.
func (s *PokemonService) Profile(ctx context.Context, raw string) (*domain.Profile, error) {
	rec, err := s.lookup(ctx, raw)
	if err != nil {
		return nil, err
	}

	summary, err := domain.ParseSummary(rec)
	if err != nil {
		return nil, err
	}

	moves := s.enrich(ctx, domain.SelectLevelUpMoves(rec.Moves))

	return &domain.Profile{
		Summary:   summary,
		Moves:     moves,
		Stats:     domain.ParseStats(rec).Stats,
		Abilities: domain.ParseAbilities(rec).Abilities,
	}, nil
}

// lookup normalizes the identifier and fetches the record.
func (s *PokemonService) lookup(ctx context.Context, raw string) (*domain.PokemonRecord, error) {
	id, err := domain.NormalizeIdentifier(raw)
	if err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "fetching pokemon", slog.String("identifier", id))

	rec, err := s.client.FetchPokemon(ctx, id)
	if err != nil {
		s.logger.DebugContext(ctx, "pokemon lookup failed",
			slog.String("identifier", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	return rec, nil
}

// enrich fetches move details one at a time, in order. A failed fetch drops
// that move and the rest continue. Once the request context is done the loop
// stops and the moves enriched so far are returned.
func (s *PokemonService) enrich(ctx context.Context, selected []domain.LevelUpMove) []domain.MoveEntry {
	entries := make([]domain.MoveEntry, 0, len(selected))

	for i, m := range selected {
		if err := ctx.Err(); err != nil {
			s.logger.WarnContext(ctx, "move enrichment interrupted",
				slog.Int("enriched", len(entries)),
				slog.Int("remaining", len(selected)-i),
				slog.Any("error", err),
			)

			break
		}

		detail, err := s.client.FetchMove(ctx, m.URL)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping move without detail",
				slog.String("move", m.Name),
				slog.String("url", m.URL),
				slog.Any("error", err),
			)

			if s.enrichmentSkipped != nil {
				s.enrichmentSkipped.Add(ctx, 1)
			}

			continue
		}

		entries = append(entries, domain.EnrichMove(m, detail))
	}

	return entries
}
