// Package sheet converts the pokédex spreadsheet export (an array of
// positional rows) into assembled domain.Pokemon documents.
// Pure functions: decoded rows in, domain structs out. No I/O.
package sheet

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/heartmarshall/shima-pokedex/internal/domain"
)

// Kind is the coercion applied to a column's cell text.
type Kind int

const (
	KindString Kind = iota
	KindInt
)

// Group names the nested document structure a column folds into.
type Group int

const (
	GroupNone Group = iota
	GroupMoves
	GroupAbilityName
	GroupAbilityDescription
	GroupMovement
	GroupSenses
)

func (g Group) String() string {
	switch g {
	case GroupNone:
		return "none"
	case GroupMoves:
		return "moves"
	case GroupAbilityName:
		return "ability_name"
	case GroupAbilityDescription:
		return "ability_description"
	case GroupMovement:
		return "movement"
	case GroupSenses:
		return "senses"
	default:
		return fmt.Sprintf("group(%d)", int(g))
	}
}

// Column describes one positional column of the sheet. Key is the name the
// value takes inside its group (a move tier, an ability slot, a sense or a
// movement mode); it is empty for top-level columns.
type Column struct {
	Name  string
	Kind  Kind
	Group Group
	Key   string
}

// Schema is the validated, ordered column layout. The index of a column in
// Columns is its position in every raw row. A Schema is immutable after
// construction.
type Schema struct {
	columns []Column
	index   map[string]int
}

// groupKeys is the complete key set every group must declare.
var groupKeys = map[Group][]string{
	GroupMoves:              domain.MoveTiers,
	GroupAbilityName:        domain.AbilitySlots,
	GroupAbilityDescription: domain.AbilitySlots,
	GroupMovement:           domain.MovementKeys,
	GroupSenses:             domain.SenseKeys,
}

// topLevelFields maps every top-level document key to the kind Assemble reads
// it with. It is derived from the json tags of domain.Pokemon: *int fields are
// KindInt, string and *string fields are KindString, nested groups are left out.
var topLevelFields = func() map[string]Kind {
	var (
		strType    = reflect.TypeFor[string]()
		strPtrType = reflect.TypeFor[*string]()
		intPtrType = reflect.TypeFor[*int]()
	)

	t := reflect.TypeFor[domain.Pokemon]()
	fields := make(map[string]Kind, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		switch f.Type {
		case strType, strPtrType:
			fields[name] = KindString
		case intPtrType:
			fields[name] = KindInt
		}
	}
	return fields
}()

// NewSchema validates columns and builds a Schema. Column names must be
// unique, grouped columns must be string-typed, and every group must declare
// each of its keys exactly once. A top-level column must name a field of the
// document and carry that field's kind; anything else would be dropped by
// Assemble.
func NewSchema(columns []Column) (*Schema, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("schema has no columns")
	}

	s := &Schema{
		columns: slices.Clone(columns),
		index:   make(map[string]int, len(columns)),
	}

	seen := make(map[Group]map[string]bool)
	for i, c := range columns {
		if c.Name == "" {
			return nil, fmt.Errorf("column %d has empty name", i)
		}
		if _, dup := s.index[c.Name]; dup {
			return nil, fmt.Errorf("column %q declared twice", c.Name)
		}
		s.index[c.Name] = i

		if c.Group == GroupNone {
			if c.Key != "" {
				return nil, fmt.Errorf("column %q: top-level column has group key %q", c.Name, c.Key)
			}
			kind, ok := topLevelFields[c.Name]
			if !ok {
				return nil, fmt.Errorf("column %q: no such document field", c.Name)
			}
			if c.Kind != kind {
				return nil, fmt.Errorf("column %q: kind %d does not match document field kind %d", c.Name, c.Kind, kind)
			}
			continue
		}

		keys, ok := groupKeys[c.Group]
		if !ok {
			return nil, fmt.Errorf("column %q: unknown group %s", c.Name, c.Group)
		}
		if c.Kind != KindString {
			return nil, fmt.Errorf("column %q: grouped column must be string-typed", c.Name)
		}
		if !slices.Contains(keys, c.Key) {
			return nil, fmt.Errorf("column %q: invalid %s key %q", c.Name, c.Group, c.Key)
		}
		if seen[c.Group] == nil {
			seen[c.Group] = make(map[string]bool)
		}
		if seen[c.Group][c.Key] {
			return nil, fmt.Errorf("column %q: %s key %q declared twice", c.Name, c.Group, c.Key)
		}
		seen[c.Group][c.Key] = true
	}

	for g, keys := range groupKeys {
		for _, k := range keys {
			if !seen[g][k] {
				return nil, fmt.Errorf("group %s is missing key %q", g, k)
			}
		}
	}

	if _, ok := s.index[colSpecies]; !ok {
		return nil, fmt.Errorf("schema has no %s column", colSpecies)
	}

	return s, nil
}

// MustSchema is like NewSchema but panics on an invalid declaration.
func MustSchema(columns []Column) *Schema {
	s, err := NewSchema(columns)
	if err != nil {
		panic("sheet: " + err.Error())
	}
	return s
}

// Len returns the number of columns.
func (s *Schema) Len() int { return len(s.columns) }

// Columns returns a copy of the ordered column list.
func (s *Schema) Columns() []Column { return slices.Clone(s.columns) }

// Index returns the position of the named column.
func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

const colSpecies = "Species"

func str(name string) Column { return Column{Name: name, Kind: KindString} }
func num(name string) Column { return Column{Name: name, Kind: KindInt} }

func in(g Group, key, name string) Column {
	return Column{Name: name, Kind: KindString, Group: g, Key: key}
}

// Default is the column layout of the pokédex sheet. Reordering the sheet
// requires reordering this table.
var Default = MustSchema([]Column{
	str("Image1"),
	num("NO1"),
	str(colSpecies),
	str("Image2"),
	num("NO2"),
	str("Classification"),
	str("Description"),
	str("P_Type"),
	str("S_Type"),
	str("Size"),
	str("Rarity"),
	str("P_Habitat"),
	str("Behavior"),
	str("Activity"),
	str("Evolution_R"),
	in(GroupAbilityName, domain.SlotPrimary, "P_Ability"),
	in(GroupAbilityName, domain.SlotSecondary, "S_Ability"),
	in(GroupAbilityName, domain.SlotHidden, "H_Ability"),
	str("CDC"),
	num("Level"),
	num("AC"),
	str("HD"),
	num("HP"),
	str("VD"),
	num("VP"),
	num("Speed"),
	num("Stat_Sum"),
	num("STR"),
	num("DEX"),
	num("CON"),
	num("INT"),
	num("WIS"),
	num("CHA"),
	str("Saving_Throws"),
	str("Proficiency"),
	in(GroupMoves, domain.TierStarting, "Starting_Moves"),
	in(GroupMoves, domain.TierLevel2, "Second_Level_Moves"),
	in(GroupMoves, domain.TierLevel6, "Sixth_Level_Moves"),
	in(GroupMoves, domain.TierLevel10, "Tenth_Level_Moves"),
	in(GroupMoves, domain.TierLevel14, "Fourteenth_Level_Moves"),
	in(GroupMoves, domain.TierLevel18, "Eighteenth_Level_Moves"),
	str("Special_Move1"),
	str("Special_Move2"),
	str("Special_Move3"),
	str("Special_Move4"),
	str("Second_Level1"),
	str("Second_Level2"),
	str("Second_Level3"),
	str("Second_Level4"),
	str("Sixth_Level1"),
	str("Sixth_Level2"),
	str("Sixth_Level3"),
	str("Sixth_Level4"),
	str("Tenth_Level1"),
	str("Tenth_Level2"),
	str("Tenth_Level3"),
	str("Fourteenth_Level1"),
	str("Fourteenth_Level2"),
	str("Fourteenth_Level3"),
	str("Eighteenth_Level1"),
	str("Eighteenth_Level2"),
	str("Eighteenth_Level3"),
	in(GroupAbilityDescription, domain.SlotPrimary, "P_Ability_Description"),
	in(GroupAbilityDescription, domain.SlotSecondary, "S_Ability_Description"),
	in(GroupAbilityDescription, domain.SlotHidden, "H_Ability_Description"),
	in(GroupMovement, "Walking", "Walking"),
	in(GroupMovement, "Climbing", "Climbing"),
	in(GroupMovement, "Flying", "Flying"),
	in(GroupMovement, "Hovering", "Hovering"),
	in(GroupMovement, "Swimming", "Swimming"),
	in(GroupMovement, "Burrowing", "Burrowing"),
	in(GroupSenses, "Sight", "Sight"),
	in(GroupSenses, "Hearing", "Hearing"),
	in(GroupSenses, "Smell", "Smell"),
	in(GroupSenses, "Tremorsense", "Tremorsense"),
	in(GroupSenses, "Echolocation", "Echolocation"),
	in(GroupSenses, "Telepathy", "Telepathy"),
	in(GroupSenses, "Blindsight", "Blindsight"),
	in(GroupSenses, "Darkvision", "Darkvision"),
	in(GroupSenses, "Truesight", "Truesight"),
})
