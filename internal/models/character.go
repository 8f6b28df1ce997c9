package models

// Race of a character.
type Race string

// Class of a character.
type Class string

// Background of a character.
type Background string

// Ability is one of the six core attributes.
type Ability string

const (
	Strength     Ability = "STR"
	Dexterity    Ability = "DEX"
	Constitution Ability = "CON"
	Intelligence Ability = "INT"
	Wisdom       Ability = "WIS"
	Charisma     Ability = "CHA"
)

// Abilities lists the six attributes in sheet order.
var Abilities = []Ability{Strength, Dexterity, Constitution, Intelligence, Wisdom, Charisma}

// Name returns the long form of the ability.
func (a Ability) Name() string {
	switch a {
	case Strength:
		return "Strength"
	case Dexterity:
		return "Dexterity"
	case Constitution:
		return "Constitution"
	case Intelligence:
		return "Intelligence"
	case Wisdom:
		return "Wisdom"
	case Charisma:
		return "Charisma"
	default:
		return string(a)
	}
}

// AbilityScores holds the six raw scores.
type AbilityScores struct {
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Constitution int `json:"constitution"`
	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Charisma     int `json:"charisma"`
}

// DefaultAbilityScores returns all scores at 10.
func DefaultAbilityScores() AbilityScores {
	return AbilityScores{10, 10, 10, 10, 10, 10}
}

// Score returns the raw score of a.
func (s AbilityScores) Score(a Ability) int {
	switch a {
	case Strength:
		return s.Strength
	case Dexterity:
		return s.Dexterity
	case Constitution:
		return s.Constitution
	case Intelligence:
		return s.Intelligence
	case Wisdom:
		return s.Wisdom
	case Charisma:
		return s.Charisma
	default:
		return 10
	}
}

// Set assigns the raw score of a.
func (s *AbilityScores) Set(a Ability, score int) {
	switch a {
	case Strength:
		s.Strength = score
	case Dexterity:
		s.Dexterity = score
	case Constitution:
		s.Constitution = score
	case Intelligence:
		s.Intelligence = score
	case Wisdom:
		s.Wisdom = score
	case Charisma:
		s.Charisma = score
	}
}

// CharacterSheet is the adventure subject. It is built once during character
// creation and changed only by explicit player actions afterwards.
type CharacterSheet struct {
	Name         string         `json:"name"`
	Race         Race           `json:"race"`
	Class        Class          `json:"class"`
	Background   Background     `json:"background"`
	Level        int            `json:"level"`
	Experience   int            `json:"experience"`
	Abilities    AbilityScores  `json:"abilities"`
	HitPoints    int            `json:"hit_points"`
	MaxHitPoints int            `json:"max_hit_points"`
	ArmorClass   int            `json:"armor_class"`
	Skills       map[Skill]bool `json:"skills"`
	Inventory    []string       `json:"inventory"`
	Gold         int            `json:"gold"`
}

// NewCharacterSheet returns a level 1 sheet with default scores and no proficiencies.
func NewCharacterSheet(name string) *CharacterSheet {
	skills := make(map[Skill]bool, len(Skills))
	for _, sk := range Skills {
		skills[sk] = false
	}
	return &CharacterSheet{
		Name:         name,
		Level:        1,
		Abilities:    DefaultAbilityScores(),
		HitPoints:    10,
		MaxHitPoints: 10,
		ArmorClass:   10,
		Skills:       skills,
		Inventory:    []string{},
	}
}

// Proficient reports whether the character is trained in sk.
func (c *CharacterSheet) Proficient(sk Skill) bool {
	return c.Skills[sk]
}

// ProficientSkills returns trained skills in table order.
func (c *CharacterSheet) ProficientSkills() []Skill {
	var out []Skill
	for _, sk := range Skills {
		if c.Skills[sk] {
			out = append(out, sk)
		}
	}
	return out
}
