package domain

import (
	"encoding/json"
	"testing"
)

func TestPokemon_Types(t *testing.T) {
	t.Parallel()

	grass, poison, empty := "Grass", "Poison", ""

	tests := []struct {
		name string
		p    Pokemon
		want int
	}{
		{name: "none", p: Pokemon{}, want: 0},
		{name: "primary only", p: Pokemon{PrimaryType: &grass}, want: 1},
		{name: "both", p: Pokemon{PrimaryType: &grass, SecondaryType: &poison}, want: 2},
		{name: "empty secondary", p: Pokemon{PrimaryType: &grass, SecondaryType: &empty}, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.p.Types(); len(got) != tt.want {
				t.Errorf("Types() = %v, want %d entries", got, tt.want)
			}
		})
	}
}

func TestMoves_TierCoversEveryKey(t *testing.T) {
	t.Parallel()

	m := NewMoves()
	for _, k := range MoveTiers {
		tier := m.Tier(k)
		if tier == nil {
			t.Fatalf("Tier(%q) = nil", k)
		}
		if *tier == nil {
			t.Errorf("tier %q is nil, want empty slice", k)
		}
	}
	if m.Tier("level_99") != nil {
		t.Error("unknown tier should return nil")
	}
}

func TestGroupAccessors_CoverEveryKey(t *testing.T) {
	t.Parallel()

	var s Senses
	for _, k := range SenseKeys {
		if s.Field(k) == nil {
			t.Errorf("Senses.Field(%q) = nil", k)
		}
	}
	var mv Movement
	for _, k := range MovementKeys {
		if mv.Field(k) == nil {
			t.Errorf("Movement.Field(%q) = nil", k)
		}
	}
	var a Abilities
	for _, k := range AbilitySlots {
		if a.Slot(k) == nil {
			t.Errorf("Abilities.Slot(%q) = nil", k)
		}
	}
}

func TestPokemon_EmptyTiersEncodeAsArrays(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(Pokemon{Species: "Ditto", Moves: NewMoves()})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded struct {
		Moves map[string]json.RawMessage `json:"moves"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, k := range MoveTiers {
		if got := string(decoded.Moves[k]); got != "[]" {
			t.Errorf("moves.%s = %s, want []", k, got)
		}
	}
}
