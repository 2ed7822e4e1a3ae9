package sheet

import (
	"strings"

	"github.com/heartmarshall/shima-pokedex/internal/domain"
)

// Assemble builds a document from a mapped record. It returns false when the
// record has no Species; such rows are dropped, not reported. Any non-empty
// Species, whitespace included, is kept verbatim.
//
// Grouped columns are routed into moves, abilities, movement and senses by
// their schema key and never copied to the top level.
func Assemble(rec FlatRecord) (domain.Pokemon, bool) {
	species := rec.text(colSpecies)
	if species == nil {
		return domain.Pokemon{}, false
	}

	p := domain.Pokemon{
		Image1:         rec.text("Image1"),
		NO1:            rec.integer("NO1"),
		Species:        *species,
		Image2:         rec.text("Image2"),
		NO2:            rec.integer("NO2"),
		Classification: rec.text("Classification"),
		Description:    rec.text("Description"),
		PrimaryType:    rec.text("P_Type"),
		SecondaryType:  rec.text("S_Type"),
		Size:           rec.text("Size"),
		Rarity:         rec.text("Rarity"),
		Habitat:        rec.text("P_Habitat"),
		Behavior:       rec.text("Behavior"),
		Activity:       rec.text("Activity"),
		EvolutionR:     rec.text("Evolution_R"),
		CDC:            rec.text("CDC"),
		Level:          rec.integer("Level"),
		AC:             rec.integer("AC"),
		HD:             rec.text("HD"),
		HP:             rec.integer("HP"),
		VD:             rec.text("VD"),
		VP:             rec.integer("VP"),
		Speed:          rec.integer("Speed"),
		StatSum:        rec.integer("Stat_Sum"),
		STR:            rec.integer("STR"),
		DEX:            rec.integer("DEX"),
		CON:            rec.integer("CON"),
		INT:            rec.integer("INT"),
		WIS:            rec.integer("WIS"),
		CHA:            rec.integer("CHA"),
		SavingThrows:   rec.text("Saving_Throws"),
		Proficiency:    rec.text("Proficiency"),

		SpecialMove1:     rec.text("Special_Move1"),
		SpecialMove2:     rec.text("Special_Move2"),
		SpecialMove3:     rec.text("Special_Move3"),
		SpecialMove4:     rec.text("Special_Move4"),
		SecondLevel1:     rec.text("Second_Level1"),
		SecondLevel2:     rec.text("Second_Level2"),
		SecondLevel3:     rec.text("Second_Level3"),
		SecondLevel4:     rec.text("Second_Level4"),
		SixthLevel1:      rec.text("Sixth_Level1"),
		SixthLevel2:      rec.text("Sixth_Level2"),
		SixthLevel3:      rec.text("Sixth_Level3"),
		SixthLevel4:      rec.text("Sixth_Level4"),
		TenthLevel1:      rec.text("Tenth_Level1"),
		TenthLevel2:      rec.text("Tenth_Level2"),
		TenthLevel3:      rec.text("Tenth_Level3"),
		FourteenthLevel1: rec.text("Fourteenth_Level1"),
		FourteenthLevel2: rec.text("Fourteenth_Level2"),
		FourteenthLevel3: rec.text("Fourteenth_Level3"),
		EighteenthLevel1: rec.text("Eighteenth_Level1"),
		EighteenthLevel2: rec.text("Eighteenth_Level2"),
		EighteenthLevel3: rec.text("Eighteenth_Level3"),

		Moves: domain.NewMoves(),
	}

	for i, c := range rec.schema.columns {
		v, _ := rec.values[i].Text()
		var val *string
		if !rec.values[i].IsAbsent() {
			val = &v
		}

		switch c.Group {
		case GroupMoves:
			*p.Moves.Tier(c.Key) = SplitMoves(val)
		case GroupAbilityName:
			p.Abilities.Slot(c.Key).Name = val
		case GroupAbilityDescription:
			p.Abilities.Slot(c.Key).Description = val
		case GroupMovement:
			*p.Movement.Field(c.Key) = val
		case GroupSenses:
			*p.Senses.Field(c.Key) = val
		}
	}

	return p, true
}

// SplitMoves splits a comma-separated move list, trimming each name and
// dropping empty entries. A nil list yields an empty, non-nil slice.
func SplitMoves(list *string) []string {
	moves := []string{}
	if list == nil {
		return moves
	}
	for _, m := range strings.Split(*list, ",") {
		m = strings.TrimSpace(m)
		if m != "" {
			moves = append(moves, m)
		}
	}
	return moves
}
