package domain

import "strings"

// PokemonFilter selects and paginates documents of the served snapshot.
type PokemonFilter struct {
	// Type matches either the primary or the secondary type, case-insensitively.
	Type string

	// Query is a case-insensitive substring match on the normalized species.
	Query string

	// Limit defaults to DefaultPageLimit and is clamped to MaxPageLimit.
	Limit int

	// Offset below zero is treated as zero.
	Offset int
}

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 500
)

// Normalize returns f with Type and Query lowercased and trimmed and the
// page bounds applied.
func (f PokemonFilter) Normalize() PokemonFilter {
	f.Type = strings.ToLower(strings.TrimSpace(f.Type))
	f.Query = NormalizeSpecies(f.Query)

	if f.Limit <= 0 {
		f.Limit = DefaultPageLimit
	}
	if f.Limit > MaxPageLimit {
		f.Limit = MaxPageLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// Matches reports whether p passes the Type and Query conditions of a
// normalized filter. Pagination is not applied.
func (f PokemonFilter) Matches(p Pokemon) bool {
	if f.Type != "" {
		var hit bool
		for _, t := range p.Types() {
			if strings.ToLower(t) == f.Type {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	if f.Query != "" && !strings.Contains(NormalizeSpecies(p.Species), f.Query) {
		return false
	}
	return true
}
