package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPokemonFilter_Normalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   PokemonFilter
		want PokemonFilter
	}{
		{name: "defaults", in: PokemonFilter{}, want: PokemonFilter{Limit: DefaultPageLimit}},
		{name: "clamp limit", in: PokemonFilter{Limit: 10_000}, want: PokemonFilter{Limit: MaxPageLimit}},
		{name: "negative offset", in: PokemonFilter{Limit: 5, Offset: -3}, want: PokemonFilter{Limit: 5}},
		{
			name: "lowercase and trim",
			in:   PokemonFilter{Type: " Grass ", Query: "  Mr.   MIME ", Limit: 10, Offset: 20},
			want: PokemonFilter{Type: "grass", Query: "mr. mime", Limit: 10, Offset: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestPokemonFilter_Matches(t *testing.T) {
	t.Parallel()

	grass, poison, fire := "Grass", "Poison", "Fire"
	bulbasaur := Pokemon{Species: "Bulbasaur", PrimaryType: &grass, SecondaryType: &poison}
	charmander := Pokemon{Species: "Charmander", PrimaryType: &fire}
	mime := Pokemon{Species: "Mr.  Mime"}

	tests := []struct {
		name   string
		filter PokemonFilter
		doc    Pokemon
		want   bool
	}{
		{"empty filter", PokemonFilter{}, mime, true},
		{"primary type", PokemonFilter{Type: "grass"}, bulbasaur, true},
		{"secondary type", PokemonFilter{Type: "POISON"}, bulbasaur, true},
		{"type miss", PokemonFilter{Type: "fire"}, bulbasaur, false},
		{"type on untyped", PokemonFilter{Type: "fire"}, mime, false},
		{"query substring", PokemonFilter{Query: "CHAR"}, charmander, true},
		{"query normalizes species", PokemonFilter{Query: "mr. mime"}, mime, true},
		{"query miss", PokemonFilter{Query: "squirt"}, charmander, false},
		{"both", PokemonFilter{Type: "fire", Query: "mander"}, charmander, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.filter.Normalize().Matches(tt.doc))
		})
	}
}
