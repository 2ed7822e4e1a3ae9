package domain

// Pokemon is one assembled pokédex document. Top-level fields carry the
// spreadsheet column name as their JSON key and encode as null when the cell
// was empty or could not be coerced. Columns folded into Moves, Senses,
// Movement and Abilities never appear at the top level.
type Pokemon struct {
	Image1         *string `json:"Image1"`
	NO1            *int    `json:"NO1"`
	Species        string  `json:"Species"`
	Image2         *string `json:"Image2"`
	NO2            *int    `json:"NO2"`
	Classification *string `json:"Classification"`
	Description    *string `json:"Description"`
	PrimaryType    *string `json:"P_Type"`
	SecondaryType  *string `json:"S_Type"`
	Size           *string `json:"Size"`
	Rarity         *string `json:"Rarity"`
	Habitat        *string `json:"P_Habitat"`
	Behavior       *string `json:"Behavior"`
	Activity       *string `json:"Activity"`
	EvolutionR     *string `json:"Evolution_R"`
	CDC            *string `json:"CDC"`
	Level          *int    `json:"Level"`
	AC             *int    `json:"AC"`
	HD             *string `json:"HD"`
	HP             *int    `json:"HP"`
	VD             *string `json:"VD"`
	VP             *int    `json:"VP"`
	Speed          *int    `json:"Speed"`
	StatSum        *int    `json:"Stat_Sum"`
	STR            *int    `json:"STR"`
	DEX            *int    `json:"DEX"`
	CON            *int    `json:"CON"`
	INT            *int    `json:"INT"`
	WIS            *int    `json:"WIS"`
	CHA            *int    `json:"CHA"`
	SavingThrows   *string `json:"Saving_Throws"`
	Proficiency    *string `json:"Proficiency"`

	SpecialMove1     *string `json:"Special_Move1"`
	SpecialMove2     *string `json:"Special_Move2"`
	SpecialMove3     *string `json:"Special_Move3"`
	SpecialMove4     *string `json:"Special_Move4"`
	SecondLevel1     *string `json:"Second_Level1"`
	SecondLevel2     *string `json:"Second_Level2"`
	SecondLevel3     *string `json:"Second_Level3"`
	SecondLevel4     *string `json:"Second_Level4"`
	SixthLevel1      *string `json:"Sixth_Level1"`
	SixthLevel2      *string `json:"Sixth_Level2"`
	SixthLevel3      *string `json:"Sixth_Level3"`
	SixthLevel4      *string `json:"Sixth_Level4"`
	TenthLevel1      *string `json:"Tenth_Level1"`
	TenthLevel2      *string `json:"Tenth_Level2"`
	TenthLevel3      *string `json:"Tenth_Level3"`
	FourteenthLevel1 *string `json:"Fourteenth_Level1"`
	FourteenthLevel2 *string `json:"Fourteenth_Level2"`
	FourteenthLevel3 *string `json:"Fourteenth_Level3"`
	EighteenthLevel1 *string `json:"Eighteenth_Level1"`
	EighteenthLevel2 *string `json:"Eighteenth_Level2"`
	EighteenthLevel3 *string `json:"Eighteenth_Level3"`

	Moves     Moves     `json:"moves"`
	Senses    Senses    `json:"senses"`
	Movement  Movement  `json:"movement"`
	Abilities Abilities `json:"abilities"`
}

// Move tier keys, in learning order.
const (
	TierStarting = "starting"
	TierLevel2   = "level_2"
	TierLevel6   = "level_6"
	TierLevel10  = "level_10"
	TierLevel14  = "level_14"
	TierLevel18  = "level_18"
)

// MoveTiers lists every move tier key in learning order.
var MoveTiers = []string{TierStarting, TierLevel2, TierLevel6, TierLevel10, TierLevel14, TierLevel18}

// Moves holds the learnable moves per tier. Every tier is a non-nil slice so
// that an empty tier encodes as [] rather than null.
type Moves struct {
	Starting []string `json:"starting"`
	Level2   []string `json:"level_2"`
	Level6   []string `json:"level_6"`
	Level10  []string `json:"level_10"`
	Level14  []string `json:"level_14"`
	Level18  []string `json:"level_18"`
}

// NewMoves returns Moves with every tier initialised to an empty slice.
func NewMoves() Moves {
	return Moves{
		Starting: []string{},
		Level2:   []string{},
		Level6:   []string{},
		Level10:  []string{},
		Level14:  []string{},
		Level18:  []string{},
	}
}

// Tier returns a pointer to the slice for the given tier key, or nil for an
// unknown key.
func (m *Moves) Tier(key string) *[]string {
	switch key {
	case TierStarting:
		return &m.Starting
	case TierLevel2:
		return &m.Level2
	case TierLevel6:
		return &m.Level6
	case TierLevel10:
		return &m.Level10
	case TierLevel14:
		return &m.Level14
	case TierLevel18:
		return &m.Level18
	default:
		return nil
	}
}

// SenseKeys lists every sense column in sheet order.
var SenseKeys = []string{"Sight", "Hearing", "Smell", "Tremorsense", "Echolocation", "Telepathy", "Blindsight", "Darkvision", "Truesight"}

// Senses carries sense ranges exactly as they appear in the sheet.
type Senses struct {
	Sight        *string `json:"Sight"`
	Hearing      *string `json:"Hearing"`
	Smell        *string `json:"Smell"`
	Tremorsense  *string `json:"Tremorsense"`
	Echolocation *string `json:"Echolocation"`
	Telepathy    *string `json:"Telepathy"`
	Blindsight   *string `json:"Blindsight"`
	Darkvision   *string `json:"Darkvision"`
	Truesight    *string `json:"Truesight"`
}

// Field returns a pointer to the sense value for key, or nil for an unknown key.
func (s *Senses) Field(key string) **string {
	switch key {
	case "Sight":
		return &s.Sight
	case "Hearing":
		return &s.Hearing
	case "Smell":
		return &s.Smell
	case "Tremorsense":
		return &s.Tremorsense
	case "Echolocation":
		return &s.Echolocation
	case "Telepathy":
		return &s.Telepathy
	case "Blindsight":
		return &s.Blindsight
	case "Darkvision":
		return &s.Darkvision
	case "Truesight":
		return &s.Truesight
	default:
		return nil
	}
}

// MovementKeys lists every movement-mode column in sheet order.
var MovementKeys = []string{"Walking", "Climbing", "Flying", "Hovering", "Swimming", "Burrowing"}

// Movement carries movement speeds exactly as they appear in the sheet.
type Movement struct {
	Walking   *string `json:"Walking"`
	Climbing  *string `json:"Climbing"`
	Flying    *string `json:"Flying"`
	Hovering  *string `json:"Hovering"`
	Swimming  *string `json:"Swimming"`
	Burrowing *string `json:"Burrowing"`
}

// Field returns a pointer to the movement value for key, or nil for an unknown key.
func (m *Movement) Field(key string) **string {
	switch key {
	case "Walking":
		return &m.Walking
	case "Climbing":
		return &m.Climbing
	case "Flying":
		return &m.Flying
	case "Hovering":
		return &m.Hovering
	case "Swimming":
		return &m.Swimming
	case "Burrowing":
		return &m.Burrowing
	default:
		return nil
	}
}

// Ability slot keys.
const (
	SlotPrimary   = "primary"
	SlotSecondary = "secondary"
	SlotHidden    = "hidden"
)

// AbilitySlots lists every ability slot key.
var AbilitySlots = []string{SlotPrimary, SlotSecondary, SlotHidden}

// Ability is a named ability with its rules text. Either part may be missing.
type Ability struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Abilities holds the three ability slots.
type Abilities struct {
	Primary   Ability `json:"primary"`
	Secondary Ability `json:"secondary"`
	Hidden    Ability `json:"hidden"`
}

// Slot returns a pointer to the ability in the given slot, or nil for an unknown key.
func (a *Abilities) Slot(key string) *Ability {
	switch key {
	case SlotPrimary:
		return &a.Primary
	case SlotSecondary:
		return &a.Secondary
	case SlotHidden:
		return &a.Hidden
	default:
		return nil
	}
}

// Types returns the non-empty elemental types in primary, secondary order.
func (p Pokemon) Types() []string {
	var types []string
	if p.PrimaryType != nil && *p.PrimaryType != "" {
		types = append(types, *p.PrimaryType)
	}
	if p.SecondaryType != nil && *p.SecondaryType != "" {
		types = append(types, *p.SecondaryType)
	}
	return types
}
