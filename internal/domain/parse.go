package domain

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxEnrichedMoves bounds the number of move detail requests made per
// creature so a single lookup cannot trip the upstream rate limit.
const MaxEnrichedMoves = 20

// upstreamService names the upstream in errors raised while parsing.
const upstreamService = "pokeapi"

// ParseSummary extracts the basic view from a record.
// A record without types is malformed and yields an upstream error.
func ParseSummary(rec *PokemonRecord) (*Summary, error) {
	if len(rec.Types) == 0 {
		return nil, NewUpstreamError(upstreamService,
			"record "+strconv.Itoa(rec.ID)+" has no types")
	}

	return &Summary{
		Number: Number(rec),
		Name:   Capitalize(rec.Name),
		Type:   rec.Types[0],
		Height: rec.Height,
		Weight: rec.Weight,
		Sprite: rec.Sprite,
	}, nil
}

// SelectLevelUpMoves returns the moves learned by leveling, ordered by level.
//
// For each move the first version group detail with the level-up method and
// a positive level decides the level; later details are ignored. A move name
// is kept once. Ties keep source order. At most MaxEnrichedMoves are returned.
func SelectLevelUpMoves(moves []LearnedMove) []LevelUpMove {
	selected := make([]LevelUpMove, 0, len(moves))
	seen := make(map[string]struct{}, len(moves))

	for _, m := range moves {
		if _, dup := seen[m.Name]; dup {
			continue
		}

		for _, d := range m.Details {
			if d.Method != LearnMethodLevelUp || d.Level <= 0 {
				continue
			}

			selected = append(selected, LevelUpMove{Name: m.Name, Level: d.Level, URL: m.URL})
			seen[m.Name] = struct{}{}

			break
		}
	}

	slices.SortStableFunc(selected, func(a, b LevelUpMove) int {
		return cmp.Compare(a.Level, b.Level)
	})

	if len(selected) > MaxEnrichedMoves {
		selected = selected[:MaxEnrichedMoves]
	}

	return selected
}

// EnrichMove combines a selected move with its upstream detail.
// Null and zero power, accuracy or pp are reported as unavailable.
func EnrichMove(m LevelUpMove, detail *MoveDetail) MoveEntry {
	return MoveEntry{
		Name:     m.Name,
		Level:    m.Level,
		Type:     detail.Type,
		Power:    available(detail.Power),
		Accuracy: available(detail.Accuracy),
		PP:       available(detail.PP),
	}
}

// ParseStats extracts the base stat view in source order.
func ParseStats(rec *PokemonRecord) *StatsView {
	stats := make([]BaseStat, 0, len(rec.Stats))
	stats = append(stats, rec.Stats...)

	return &StatsView{
		Name:   Capitalize(rec.Name),
		Number: Number(rec),
		Stats:  stats,
	}
}

// ParseAbilities extracts the ability view in source order.
func ParseAbilities(rec *PokemonRecord) *AbilitiesView {
	abilities := make([]Ability, 0, len(rec.Abilities))
	abilities = append(abilities, rec.Abilities...)

	return &AbilitiesView{
		Name:      Capitalize(rec.Name),
		Number:    Number(rec),
		Abilities: abilities,
	}
}

// Number renders the record id the way every view reports it.
func Number(rec *PokemonRecord) string {
	return strconv.Itoa(rec.ID)
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}

	first, size := utf8.DecodeRuneInString(s)

	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}

func available(v *int) *int {
	if v == nil || *v == 0 {
		return nil
	}

	n := *v

	return &n
}
