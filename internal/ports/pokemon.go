// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port rules:
//   - Context is always the first parameter
//   - Methods return domain types, never upstream DTOs
//   - Failures are reported with domain error types
package ports

import (
	"context"

	"github.com/jsamuelsen/pokedex-service/internal/domain"
)

// PokemonClient fetches creature data from the upstream Pokémon API.
//
// Implementations map upstream failures onto the domain taxonomy:
// an unknown creature is domain.ErrNotFound, anything else that goes
// wrong talking to the upstream is domain.ErrUpstream.
type PokemonClient interface {
	// FetchPokemon retrieves the record for an already normalized
	// name or number.
	FetchPokemon(ctx context.Context, identifier string) (*domain.PokemonRecord, error)

	// FetchMove retrieves move detail from the absolute URL carried by
	// a creature record's move list.
	FetchMove(ctx context.Context, moveURL string) (*domain.MoveDetail, error)
}
