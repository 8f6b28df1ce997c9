package mechanics

import (
	"math/rand"

	"dungeon-master/internal/models"
)

// AbilityModifier returns floor((score-10)/2), rounding toward negative infinity.
func AbilityModifier(score int) int {
	delta := score - 10
	if delta < 0 {
		return -((-delta + 1) / 2)
	}
	return delta / 2
}

// ProficiencyBonus returns the level-tiered proficiency bonus.
func ProficiencyBonus(level int) int {
	switch {
	case level <= 4:
		return 2
	case level <= 8:
		return 3
	case level <= 12:
		return 4
	case level <= 16:
		return 5
	default:
		return 6
	}
}

// SkillCheckTotal adds the proficiency bonus only when proficient.
func SkillCheckTotal(d20Roll, abilityMod int, proficient bool, profBonus int) int {
	total := d20Roll + abilityMod
	if proficient {
		total += profBonus
	}
	return total
}

// SkillCheck is a fully resolved check, ready to be shown and embedded in a prompt.
type SkillCheck struct {
	Skill            models.Skill
	Ability          models.Ability
	Roll             int
	AbilityModifier  int
	Proficient       bool
	ProficiencyBonus int
	Total            int
}

// ResolveSkillCheck rolls a d20 for the skill and applies the sheet's modifiers.
func ResolveSkillCheck(rng *rand.Rand, sheet *models.CharacterSheet, skill models.Skill) (SkillCheck, error) {
	ability, err := skill.Ability()
	if err != nil {
		return SkillCheck{}, err
	}
	roll := RollDice(rng, 1, 20)[0]
	return NewSkillCheck(sheet, skill, ability, roll), nil
}

// NewSkillCheck builds a check from an already rolled d20.
func NewSkillCheck(sheet *models.CharacterSheet, skill models.Skill, ability models.Ability, roll int) SkillCheck {
	mod := AbilityModifier(sheet.Abilities.Score(ability))
	prof := sheet.Proficient(skill)
	bonus := ProficiencyBonus(sheet.Level)
	return SkillCheck{
		Skill:            skill,
		Ability:          ability,
		Roll:             roll,
		AbilityModifier:  mod,
		Proficient:       prof,
		ProficiencyBonus: bonus,
		Total:            SkillCheckTotal(roll, mod, prof, bonus),
	}
}
