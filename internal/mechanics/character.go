package mechanics

import (
	"math/rand"
	"slices"

	"dungeon-master/internal/models"
)

// ScoreMethod selects how the six raw ability scores are produced.
type ScoreMethod int

const (
	ScoreMethodRoll ScoreMethod = iota // 4d6, drop the lowest die, six times.
	ScoreMethodStandardArray
	ScoreMethodPointBuy
)

// ScoreMethodNames are the menu labels of the score methods, in ScoreMethod order.
var ScoreMethodNames = []string{"Roll 4d6 (drop lowest)", "Standard Array", "Point Buy"}

// StandardArray returns the fixed standard array.
func StandardArray() []int {
	return []int{15, 14, 13, 12, 10, 8}
}

// PointBuyArray returns a balanced 27-point buy.
func PointBuyArray() []int {
	return []int{13, 13, 13, 12, 12, 8}
}

// RollAbilityScore rolls 4d6 and sums the highest three.
func RollAbilityScore(rng *rand.Rand) (score int, dice []int) {
	dice = RollDice(rng, 4, 6)
	sorted := slices.Clone(dice)
	slices.Sort(sorted)
	return Sum(sorted[1:]), dice
}

// GenerateScores produces six raw scores with the chosen method.
func GenerateScores(rng *rand.Rand, method ScoreMethod) []int {
	switch method {
	case ScoreMethodStandardArray:
		return StandardArray()
	case ScoreMethodPointBuy:
		return PointBuyArray()
	default:
		scores := make([]int, 0, len(models.Abilities))
		for range models.Abilities {
			s, _ := RollAbilityScore(rng)
			scores = append(scores, s)
		}
		return scores
	}
}

// HitPoints returns level 1 hit points: the class hit die plus the CON modifier, at least 1.
func HitPoints(class models.Class, conMod int) int {
	return max(1, models.HitDie(class)+conMod)
}

// ArmorClass returns the armor class granted by the class kit, or 10 + DEX modifier unarmored.
func ArmorClass(class models.Class, dexMod int) int {
	if rule := models.StartingKit(class).Armor; rule != nil {
		return rule(dexMod)
	}
	return max(1, 10+dexMod)
}

// CharacterOptions are the choices made during character creation.
type CharacterOptions struct {
	Name       string
	Race       models.Race
	Class      models.Class
	Background models.Background
	Scores     models.AbilityScores
	Skills     []models.Skill
}

// NewCharacter builds a level 1 sheet: derived stats, proficiencies and starting kit.
// Skills outside the class options are ignored, as are picks beyond the class allowance.
func NewCharacter(opts CharacterOptions) *models.CharacterSheet {
	sheet := models.NewCharacterSheet(opts.Name)
	sheet.Race = opts.Race
	sheet.Class = opts.Class
	sheet.Background = opts.Background
	sheet.Abilities = opts.Scores

	sheet.MaxHitPoints = HitPoints(opts.Class, AbilityModifier(opts.Scores.Constitution))
	sheet.HitPoints = sheet.MaxHitPoints
	sheet.ArmorClass = ArmorClass(opts.Class, AbilityModifier(opts.Scores.Dexterity))

	allowed := models.ClassSkillOptions(opts.Class)
	picks := models.ClassSkillPicks(opts.Class)
	for _, sk := range opts.Skills {
		if picks == 0 {
			break
		}
		if slices.Contains(allowed, sk) && !sheet.Skills[sk] {
			sheet.Skills[sk] = true
			picks--
		}
	}

	kit := models.StartingKit(opts.Class)
	sheet.Inventory = append(sheet.Inventory, kit.Items...)
	sheet.Inventory = append(sheet.Inventory, models.CommonGear...)
	sheet.Gold = kit.Gold
	return sheet
}
