package session

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"dungeon-master/internal/mechanics"
	"dungeon-master/internal/models"

	"go.uber.org/zap"
)

const defaultCharacterName = "Adventurer"

// createCharacter walks the player through building a level 1 character.
func (c *Controller) createCharacter() (*models.CharacterSheet, error) {
	c.ui.Narrate("Character Creation", "Let's create your character.")

	name, err := c.ui.Ask("What is your character's name?", "")
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultCharacterName
	}

	race, err := chooseFrom(c.ui, "Choose your race", models.Races)
	if err != nil {
		return nil, err
	}
	class, err := chooseFrom(c.ui, "Choose your class", models.Classes)
	if err != nil {
		return nil, err
	}
	background, err := chooseFrom(c.ui, "Choose your background", models.Backgrounds)
	if err != nil {
		return nil, err
	}

	scores, err := c.chooseScores()
	if err != nil {
		return nil, err
	}

	options := models.ClassSkillOptions(class)
	picks := models.ClassSkillPicks(class)
	picked, err := c.ui.ChooseMany(
		fmt.Sprintf("Select %d skills", picks),
		stringsOf(options),
		picks,
	)
	if err != nil {
		return nil, err
	}
	skills := make([]models.Skill, 0, len(picked))
	for _, i := range picked {
		if i >= 0 && i < len(options) {
			skills = append(skills, options[i])
		}
	}

	sheet := mechanics.NewCharacter(mechanics.CharacterOptions{
		Name:       name,
		Race:       race,
		Class:      class,
		Background: background,
		Scores:     scores,
		Skills:     skills,
	})
	c.logger.Info("Character created",
		zap.String("race", string(race)),
		zap.String("class", string(class)),
		zap.Int("skills", len(sheet.ProficientSkills())),
	)
	c.ui.ShowSheet(sheet)
	return sheet, nil
}

// chooseScores generates six scores with the chosen method and lets the
// player assign each one to an ability.
func (c *Controller) chooseScores() (models.AbilityScores, error) {
	method, err := c.ui.Choose("How do you want to determine ability scores?", mechanics.ScoreMethodNames, 0)
	if err != nil {
		return models.AbilityScores{}, err
	}

	pool := mechanics.GenerateScores(c.rng, mechanics.ScoreMethod(method))
	if mechanics.ScoreMethod(method) == mechanics.ScoreMethodRoll {
		c.ui.ShowRoll("Ability scores (4d6, drop lowest)", pool)
	}

	var scores models.AbilityScores
	for _, ability := range models.Abilities {
		labels := make([]string, len(pool))
		for i, v := range pool {
			labels[i] = strconv.Itoa(v)
		}
		i, err := c.ui.Choose(fmt.Sprintf("Assign a score to %s", ability.Name()), labels, 0)
		if err != nil {
			return models.AbilityScores{}, err
		}
		if i < 0 || i >= len(pool) {
			i = 0
		}
		scores.Set(ability, pool[i])
		pool = slices.Delete(pool, i, i+1)
	}
	return scores, nil
}

func chooseFrom[T ~string](ui UI, prompt string, values []T) (T, error) {
	i, err := ui.Choose(prompt, stringsOf(values), 0)
	if err != nil {
		var zero T
		return zero, err
	}
	if i < 0 || i >= len(values) {
		i = 0
	}
	return values[i], nil
}

func stringsOf[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
