package dto

import "github.com/jsamuelsen/pokedex-service/internal/domain"

// Unavailable replaces a move power, accuracy or pp the upstream left null or zero.
const Unavailable = "--"

// SearchRequest is the body of POST /api/pokemon/search/, sent as a form
// field or JSON.
type SearchRequest struct {
	Pokemon string `json:"pokemon" form:"pokemon"`
}

// SummaryResponse is the basic view.
type SummaryResponse struct {
	Number string  `json:"number"`
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	Height int     `json:"height"`
	Weight int     `json:"weight"`
	Sprite *string `json:"sprite"`
}

// MoveResponse is one enriched move. Power, accuracy and pp hold either an
// integer or the Unavailable marker.
type MoveResponse struct {
	Name     string `json:"name"`
	Level    int    `json:"level"`
	Type     string `json:"type"`
	Power    any    `json:"power"`
	Accuracy any    `json:"accuracy"`
	PP       any    `json:"pp"`
}

// MovesResponse is the learned-move view.
type MovesResponse struct {
	Name   string         `json:"name"`
	Number string         `json:"number"`
	Moves  []MoveResponse `json:"moves"`
}

// StatResponse is one base stat.
type StatResponse struct {
	Name     string `json:"name"`
	BaseStat int    `json:"base_stat"`
}

// StatsResponse is the base stat view.
type StatsResponse struct {
	Name   string         `json:"name"`
	Number string         `json:"number"`
	Stats  []StatResponse `json:"stats"`
}

// AbilityResponse is one ability.
type AbilityResponse struct {
	Name     string `json:"name"`
	IsHidden bool   `json:"is_hidden"`
}

// AbilitiesResponse is the ability view.
type AbilitiesResponse struct {
	Name      string            `json:"name"`
	Number    string            `json:"number"`
	Abilities []AbilityResponse `json:"abilities"`
}

// ProfileResponse merges every view of one creature.
type ProfileResponse struct {
	SummaryResponse

	Moves     []MoveResponse    `json:"moves"`
	Stats     []StatResponse    `json:"stats"`
	Abilities []AbilityResponse `json:"abilities"`
}

// FromSummary converts the domain summary.
func FromSummary(s *domain.Summary) SummaryResponse {
	return SummaryResponse{
		Number: s.Number,
		Name:   s.Name,
		Type:   s.Type,
		Height: s.Height,
		Weight: s.Weight,
		Sprite: s.Sprite,
	}
}

// FromMoves converts the domain moves view.
func FromMoves(v *domain.MovesView) MovesResponse {
	return MovesResponse{
		Name:   v.Name,
		Number: v.Number,
		Moves:  fromMoveEntries(v.Moves),
	}
}

// FromStats converts the domain stats view.
func FromStats(v *domain.StatsView) StatsResponse {
	return StatsResponse{
		Name:   v.Name,
		Number: v.Number,
		Stats:  fromStats(v.Stats),
	}
}

// FromAbilities converts the domain abilities view.
func FromAbilities(v *domain.AbilitiesView) AbilitiesResponse {
	return AbilitiesResponse{
		Name:      v.Name,
		Number:    v.Number,
		Abilities: fromAbilities(v.Abilities),
	}
}

// FromProfile converts the combined domain profile.
func FromProfile(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		SummaryResponse: FromSummary(p.Summary),
		Moves:           fromMoveEntries(p.Moves),
		Stats:           fromStats(p.Stats),
		Abilities:       fromAbilities(p.Abilities),
	}
}

// OrUnavailable renders an optional move value for the wire.
func OrUnavailable(v *int) any {
	if v == nil {
		return Unavailable
	}

	return *v
}

func fromMoveEntries(entries []domain.MoveEntry) []MoveResponse {
	out := make([]MoveResponse, 0, len(entries))
	for _, m := range entries {
		out = append(out, MoveResponse{
			Name:     m.Name,
			Level:    m.Level,
			Type:     m.Type,
			Power:    OrUnavailable(m.Power),
			Accuracy: OrUnavailable(m.Accuracy),
			PP:       OrUnavailable(m.PP),
		})
	}

	return out
}

func fromStats(stats []domain.BaseStat) []StatResponse {
	out := make([]StatResponse, 0, len(stats))
	for _, s := range stats {
		out = append(out, StatResponse{Name: s.Name, BaseStat: s.Value})
	}

	return out
}

func fromAbilities(abilities []domain.Ability) []AbilityResponse {
	out := make([]AbilityResponse, 0, len(abilities))
	for _, a := range abilities {
		out = append(out, AbilityResponse{Name: a.Name, IsHidden: a.Hidden})
	}

	return out
}
