package session

import (
	"context"
	"fmt"
	"strings"

	"dungeon-master/internal/mechanics"
	"dungeon-master/internal/models"
	"dungeon-master/internal/prompts"

	"go.uber.org/zap"
)

// StartAdventure opens a campaign for sheet: the campaign-opening exchange,
// then the scene-setting exchange, then a save. On a chat failure nothing
// changes and the controller stays where it was.
func (c *Controller) StartAdventure(ctx context.Context, sheet *models.CharacterSheet) error {
	if c.variant != models.VariantAdventure {
		return fmt.Errorf("%w: controller runs %s", models.ErrWrongVariant, c.variant)
	}
	if sheet == nil {
		return models.ErrNoCharacter
	}

	s := c.newSession()
	s.Character = sheet

	opening := prompts.CampaignOpening(sheet)
	response, err := c.exchange(ctx, opening, s.History, "The Dungeon Master is creating your adventure...")
	if err != nil {
		return err
	}
	details := ExtractCampaign(response)
	s.Campaign, s.Location, s.Quest = details.Campaign, details.Location, details.Quest
	s.AppendExchange(opening, response)

	scene := prompts.SceneSetting()
	response, err = c.exchange(ctx, scene, s.History, "The Dungeon Master is setting the scene...")
	if err != nil {
		return err
	}
	s.AppendExchange(scene, response)

	c.session = s
	c.transition(StateActivePlay)
	gamesStartedTotal.WithLabelValues(string(s.Variant)).Inc()
	c.log().Info("Adventure started",
		zap.String("campaign", s.Campaign),
		zap.String("character", sheet.Name),
	)
	return c.Save()
}

// TakeAction narrates the outcome of a free-form player action.
func (c *Controller) TakeAction(ctx context.Context, action string) (string, error) {
	s, err := c.adventure()
	if err != nil {
		return "", err
	}

	prompt := prompts.Action(s.Character, action)
	response, err := c.exchange(ctx, prompt, s.History, "The Dungeon Master is responding...")
	if err != nil {
		return "", err
	}
	s.AppendExchange(prompt, response)
	s.Progress.Asked++
	turnsTotal.WithLabelValues(string(s.Variant), "action").Inc()
	return response, c.Save()
}

// SkillCheck rolls a d20 check for skill and asks the Dungeon Master to narrate it.
// The resolved check is returned even when the exchange fails.
func (c *Controller) SkillCheck(ctx context.Context, skill models.Skill) (mechanics.SkillCheck, string, error) {
	s, err := c.adventure()
	if err != nil {
		return mechanics.SkillCheck{}, "", err
	}

	check, err := mechanics.ResolveSkillCheck(c.rng, s.Character, skill)
	if err != nil {
		return mechanics.SkillCheck{}, "", err
	}
	c.log().Debug("Skill check rolled",
		zap.String("skill", string(skill)),
		zap.Int("roll", check.Roll),
		zap.Int("total", check.Total),
	)

	prompt := prompts.SkillCheck(s.Character, check)
	response, err := c.exchange(ctx, prompt, s.History, "The Dungeon Master is considering your roll...")
	if err != nil {
		return check, "", err
	}
	s.AppendExchange(prompt, response)
	s.Progress.Asked++
	turnsTotal.WithLabelValues(string(s.Variant), "skill_check").Inc()
	return check, response, c.Save()
}

// RollDice rolls count dice with the given sides. It never touches the session.
func (c *Controller) RollDice(count, sides int) []int {
	return mechanics.RollDice(c.rng, count, sides)
}

func (c *Controller) adventure() (*models.Session, error) {
	s, err := c.active(models.VariantAdventure)
	if err != nil {
		return nil, err
	}
	if s.Character == nil {
		return nil, models.ErrNoCharacter
	}
	return s, nil
}

func (c *Controller) setupAdventure(ctx context.Context) error {
	sheet, err := c.createCharacter()
	if err != nil {
		return err
	}

	err = c.StartAdventure(ctx, sheet)
	if c.state != StateActivePlay {
		c.transition(StateMainMenu)
		return c.report(err)
	}

	c.ui.Notice(NoticeSuccess, fmt.Sprintf("Welcome to %s", c.session.Campaign))
	if msg, ok := c.session.LastAssistantMessage(); ok {
		c.ui.Narrate("Dungeon Master", msg)
	}
	return c.report(err)
}

func (c *Controller) playAdventure(ctx context.Context) error {
	s := c.session
	sheet := s.Character
	c.ui.Status(
		fmt.Sprintf("Location: %s | Quest: %s", s.Location, s.Quest),
		fmt.Sprintf("%s: %d/%d HP | AC: %d", sheet.Name, sheet.HitPoints, sheet.MaxHitPoints, sheet.ArmorClass),
	)

	choice, err := c.ui.Choose("What would you like to do?", adventureActions, 0)
	if err != nil {
		return err
	}

	switch choice {
	case 0:
		action, err := c.ui.Ask("What do you do?", "")
		if err != nil {
			return err
		}
		if strings.TrimSpace(action) == "" {
			c.ui.Notice(NoticeWarning, "Describe what your character does.")
			return nil
		}
		response, err := c.TakeAction(ctx, action)
		if response != "" {
			c.ui.Narrate("Dungeon Master", response)
		}
		return c.report(err)

	case 1:
		skill, err := chooseFrom(c.ui, "Choose a skill", models.Skills)
		if err != nil {
			return err
		}
		check, response, err := c.SkillCheck(ctx, skill)
		if check.Skill != "" {
			c.showCheck(check)
		}
		if response != "" {
			c.ui.Narrate("Dungeon Master", response)
		}
		return c.report(err)

	case 2:
		labels := make([]string, len(mechanics.DiceSides))
		for i, sides := range mechanics.DiceSides {
			labels[i] = fmt.Sprintf("d%d", sides)
		}
		i, err := c.ui.Choose("Choose a dice type", labels, mechanics.DefaultDieIndex)
		if err != nil {
			return err
		}
		if i < 0 || i >= len(mechanics.DiceSides) {
			i = mechanics.DefaultDieIndex
		}
		text, err := c.ui.Ask("How many dice?", "1")
		if err != nil {
			return err
		}
		count := mechanics.ParseDiceCount(text)
		sides := mechanics.DiceSides[i]
		c.ui.ShowRoll(fmt.Sprintf("%dd%d", count, sides), c.RollDice(count, sides))

	case 3:
		c.ui.ShowSheet(sheet)

	case 4:
		if err := c.Save(); err != nil {
			return c.report(err)
		}
		c.ui.Notice(NoticeSuccess, "Game saved successfully!")

	default:
		c.ui.Notice(NoticeInfo, "Returning to main menu...")
		c.transition(StateMainMenu)
	}
	return nil
}

func (c *Controller) showCheck(check mechanics.SkillCheck) {
	c.ui.ShowRoll("d20", []int{check.Roll})
	lines := []string{fmt.Sprintf("Ability modifier (%s): %+d", check.Ability, check.AbilityModifier)}
	if check.Proficient {
		lines = append(lines, fmt.Sprintf("Proficiency bonus: %+d", check.ProficiencyBonus))
	}
	lines = append(lines, fmt.Sprintf("Total: %d", check.Total))
	c.ui.Narrate(fmt.Sprintf("%s Check", check.Skill), strings.Join(lines, "\n"))
}

func (c *Controller) showResume() {
	s := c.session
	if s.Variant == models.VariantQuestions {
		c.ui.Notice(NoticeInfo, fmt.Sprintf("Continuing your game: %s, %d of %d questions left.",
			s.Category, s.Progress.Remaining(), s.Progress.Limit))
		if len(s.History) > questionSetupTurns {
			if msg, ok := s.LastAssistantMessage(); ok {
				c.ui.Narrate("Last answer", msg)
			}
		}
		return
	}

	c.ui.Notice(NoticeInfo, fmt.Sprintf("Continuing your adventure in %s...", s.Campaign))
	if msg, ok := s.LastAssistantMessage(); ok {
		c.ui.Narrate("Previously in your adventure:", msg)
	}
}
