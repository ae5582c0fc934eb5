package domain

// LearnMethodLevelUp is the learn method name for moves acquired by level.
const LearnMethodLevelUp = "level-up"

// PokemonRecord is the subset of the upstream creature record the service reads.
// It is built once per request by the client adapter and never mutated.
type PokemonRecord struct {
	ID     int
	Name   string
	Height int
	Weight int

	// Types holds type names in upstream slot order. The first is the primary type.
	Types []string

	// Sprite is the front default sprite URL, nil when the upstream has none.
	Sprite *string

	Moves     []LearnedMove
	Stats     []BaseStat
	Abilities []Ability
}

// LearnedMove is one entry of the record's move list.
type LearnedMove struct {
	Name    string
	URL     string
	Details []VersionGroupDetail
}

// VersionGroupDetail describes how a move is learned in one version group.
// Level 0 means the move is not learned by leveling.
type VersionGroupDetail struct {
	Method string
	Level  int
}

// MoveDetail is the subset of the upstream move record used for enrichment.
// Nil fields were null or missing upstream.
type MoveDetail struct {
	Type     string
	Power    *int
	Accuracy *int
	PP       *int
}

// BaseStat is a single base stat value.
type BaseStat struct {
	Name  string
	Value int
}

// Ability is a single ability slot.
type Ability struct {
	Name   string
	Hidden bool
}

// Summary is the basic view of a creature.
type Summary struct {
	Number string
	Name   string
	Type   string
	Height int
	Weight int
	Sprite *string
}

// LevelUpMove is a move selected for enrichment.
type LevelUpMove struct {
	Name  string
	Level int
	URL   string
}

// MoveEntry is an enriched level-up move.
// Power, Accuracy and PP are nil when the value is unavailable.
type MoveEntry struct {
	Name     string
	Level    int
	Type     string
	Power    *int
	Accuracy *int
	PP       *int
}

// MovesView is the learned-move view of a creature.
type MovesView struct {
	Name   string
	Number string
	Moves  []MoveEntry
}

// StatsView is the base stat view of a creature.
type StatsView struct {
	Name   string
	Number string
	Stats  []BaseStat
}

// AbilitiesView is the ability view of a creature.
type AbilitiesView struct {
	Name      string
	Number    string
	Abilities []Ability
}

// Profile combines every view of a single creature.
type Profile struct {
	Summary   *Summary
	Moves     []MoveEntry
	Stats     []BaseStat
	Abilities []Ability
}
