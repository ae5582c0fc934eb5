package acl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/jsamuelsen/pokedex-service/internal/adapters/clients"
	"github.com/jsamuelsen/pokedex-service/internal/domain"
	"github.com/jsamuelsen/pokedex-service/internal/platform/logging"
)

const (
	// pokemonPath is the record endpoint, joined with a normalized identifier.
	pokemonPath = "/api/v2/pokemon/"

	entityPokemon = "pokemon"
	entityMove    = "move"
)

// PokeAPIClientConfig contains configuration for the PokeAPI adapter.
type PokeAPIClientConfig struct {
	// Client is the HTTP client; its BaseURL points at the upstream root.
	Client *clients.Client

	// Logger is the structured logger.
	Logger *slog.Logger
}

// PokeAPIClient fetches creature and move records and translates them into
// domain types. Implements ports.PokemonClient and ports.HealthChecker.
type PokeAPIClient struct {
	BaseAdapter

	logger *slog.Logger
}

// NewPokeAPIClient creates the adapter.
// Panics if Client is nil. Defaults logger to slog.Default() if nil.
func NewPokeAPIClient(cfg PokeAPIClientConfig) *PokeAPIClient {
	if cfg.Client == nil {
		panic("PokeAPIClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &PokeAPIClient{
		BaseAdapter: NewBaseAdapter(cfg.Client, cfg.Client.ServiceName()),
		logger:      logger,
	}
}

// namedResource is the upstream {name, url} reference shape.
type namedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// pokemonResponse is the subset of the upstream creature record we read.
type pokemonResponse struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Height int    `json:"height"`
	Weight int    `json:"weight"`
	Types  []struct {
		Slot int           `json:"slot"`
		Type namedResource `json:"type"`
	} `json:"types"`
	Sprites struct {
		FrontDefault *string `json:"front_default"`
	} `json:"sprites"`
	Moves     []moveEntryResponse `json:"moves"`
	Stats     []statResponse      `json:"stats"`
	Abilities []abilityResponse   `json:"abilities"`
}

type moveEntryResponse struct {
	Move                namedResource `json:"move"`
	VersionGroupDetails []struct {
		LevelLearnedAt  int           `json:"level_learned_at"`
		MoveLearnMethod namedResource `json:"move_learn_method"`
	} `json:"version_group_details"`
}

type statResponse struct {
	BaseStat int           `json:"base_stat"`
	Stat     namedResource `json:"stat"`
}

type abilityResponse struct {
	Ability  namedResource `json:"ability"`
	IsHidden bool          `json:"is_hidden"`
}

// moveResponse is the subset of the upstream move record we read.
type moveResponse struct {
	Type     namedResource `json:"type"`
	Power    *int          `json:"power"`
	Accuracy *int          `json:"accuracy"`
	PP       *int          `json:"pp"`
}

// FetchPokemon fetches the full record for a normalized identifier.
// Implements ports.PokemonClient.
func (c *PokeAPIClient) FetchPokemon(ctx context.Context, identifier string) (*domain.PokemonRecord, error) {
	path := pokemonPath + identifier
	c.logger.Log(ctx, logging.LevelTrace, "starting request", slog.String("path", path))

	// The identifier is already escaped; it is shown unescaped in errors.
	display := identifier
	if unescaped, err := url.PathUnescape(identifier); err == nil {
		display = unescaped
	}

	body, err := c.Get(ctx, path, entityPokemon, display)
	if err != nil {
		return nil, err
	}

	ext, err := DecodeResponse[pokemonResponse](body)
	if err != nil {
		return nil, domain.NewUpstreamError(c.ServiceName(), err.Error())
	}

	rec, err := c.translatePokemon(ext)
	if err != nil {
		c.logger.WarnContext(ctx, "malformed upstream record",
			slog.String("identifier", display),
			slog.Any("error", err))

		return nil, err
	}

	c.logger.Log(ctx, logging.LevelTrace, "translated external DTO to domain",
		slog.Int("pokemon_id", rec.ID),
		slog.Int("moves", len(rec.Moves)))

	return rec, nil
}

// FetchMove fetches a move record by the absolute URL found in a creature
// record. Implements ports.PokemonClient.
func (c *PokeAPIClient) FetchMove(ctx context.Context, moveURL string) (*domain.MoveDetail, error) {
	c.logger.Log(ctx, logging.LevelTrace, "starting request", slog.String("url", moveURL))

	body, err := c.Get(ctx, moveURL, entityMove, moveURL)
	if err != nil {
		return nil, err
	}

	ext, err := DecodeResponse[moveResponse](body)
	if err != nil {
		return nil, domain.NewUpstreamError(c.ServiceName(), err.Error())
	}

	return &domain.MoveDetail{
		Type:     ext.Type.Name,
		Power:    ext.Power,
		Accuracy: ext.Accuracy,
		PP:       ext.PP,
	}, nil
}

// translatePokemon converts the upstream record. A record missing its id or
// name is malformed.
func (c *PokeAPIClient) translatePokemon(ext *pokemonResponse) (*domain.PokemonRecord, error) {
	if ext.ID <= 0 || ext.Name == "" {
		return nil, domain.NewUpstreamError(c.ServiceName(), "record is missing id or name")
	}

	types := make([]string, 0, len(ext.Types))
	for _, t := range ext.Types {
		types = append(types, t.Type.Name)
	}

	moves, err := TranslateSlice(ext.Moves, translateMove)
	if err != nil {
		return nil, domain.NewUpstreamError(c.ServiceName(), err.Error())
	}

	stats, err := TranslateSlice(ext.Stats, translateStat)
	if err != nil {
		return nil, domain.NewUpstreamError(c.ServiceName(), err.Error())
	}

	abilities, err := TranslateSlice(ext.Abilities, translateAbility)
	if err != nil {
		return nil, domain.NewUpstreamError(c.ServiceName(), err.Error())
	}

	return &domain.PokemonRecord{
		ID:        ext.ID,
		Name:      ext.Name,
		Height:    ext.Height,
		Weight:    ext.Weight,
		Types:     types,
		Sprite:    ext.Sprites.FrontDefault,
		Moves:     moves,
		Stats:     stats,
		Abilities: abilities,
	}, nil
}

func translateMove(ext *moveEntryResponse) (domain.LearnedMove, error) {
	if ext.Move.Name == "" {
		return domain.LearnedMove{}, errors.New("move entry without name")
	}

	details := make([]domain.VersionGroupDetail, 0, len(ext.VersionGroupDetails))
	for _, d := range ext.VersionGroupDetails {
		details = append(details, domain.VersionGroupDetail{
			Method: d.MoveLearnMethod.Name,
			Level:  d.LevelLearnedAt,
		})
	}

	return domain.LearnedMove{
		Name:    ext.Move.Name,
		URL:     ext.Move.URL,
		Details: details,
	}, nil
}

func translateStat(ext *statResponse) (domain.BaseStat, error) {
	if ext.Stat.Name == "" {
		return domain.BaseStat{}, errors.New("stat entry without name")
	}

	return domain.BaseStat{Name: ext.Stat.Name, Value: ext.BaseStat}, nil
}

func translateAbility(ext *abilityResponse) (domain.Ability, error) {
	if ext.Ability.Name == "" {
		return domain.Ability{}, errors.New("ability entry without name")
	}

	return domain.Ability{Name: ext.Ability.Name, Hidden: ext.IsHidden}, nil
}

// Name returns the health check name for this client.
// Implements ports.HealthChecker.
func (c *PokeAPIClient) Name() string {
	return c.ServiceName()
}

// Check reports the upstream unhealthy while the circuit breaker is open.
// It makes no request so probes do not spend the upstream's rate limit.
// Implements ports.HealthChecker.
func (c *PokeAPIClient) Check(_ context.Context) error {
	if state := c.Client().CircuitState(); state == clients.StateOpen {
		return fmt.Errorf("%w: %s", clients.ErrCircuitOpen, c.ServiceName())
	}

	return nil
}
