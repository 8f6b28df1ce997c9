package prompts

import (
	"fmt"
	"strings"

	"dungeon-master/internal/mechanics"
	"dungeon-master/internal/models"
)

const sceneSettingPrompt = "Now, describe the opening scene. The player's character has just arrived at the starting location. " +
	"Provide rich sensory details and introduce an NPC or situation that connects to the quest hook. " +
	"End with a question or prompt for the player to respond to."

// CampaignOpening asks for a campaign name, starting location and quest hook for the character.
// The response is scanned for "Campaign:", "Location:" and "Quest:" lines.
func CampaignOpening(c *models.CharacterSheet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are the Dungeon Master for a Dungeons & Dragons 5e adventure. "+
		"Create an exciting campaign hook and starting location for a %s %s named %s.\n", c.Race, c.Class, c.Name)
	fmt.Fprintf(&b, "The character is level %d with these ability scores: %s.\n", c.Level, abilityLine(c.Abilities))
	fmt.Fprintf(&b, "Background: %s.\n\n", c.Background)
	b.WriteString("Introduce the campaign setting. Begin your reply with these three lines, exactly in this form:\n")
	b.WriteString("Campaign: <name of the campaign>\n")
	b.WriteString("Location: <name of the starting town, city or village>\n")
	b.WriteString("Quest: <the initial quest or hook, in one sentence>\n\n")
	b.WriteString("Then describe the area and its people. Favor immersive, atmospheric description over mechanical detail.")
	return b.String()
}

// SceneSetting asks for the opening scene once the campaign is established.
func SceneSetting() string {
	return sceneSettingPrompt
}

// Action asks the narrator to resolve a free-form player action.
func Action(c *models.CharacterSheet, action string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The player (%s) takes the following action:\n\n%s\n\n", who(c), action)
	b.WriteString("Respond as the Dungeon Master and describe the outcome of this action with rich, evocative language.\n")
	b.WriteString("If a check would be needed, describe what is being tested but do not roll any dice yourself; the player will roll.\n")
	b.WriteString("If the action is impossible, gently steer the player toward better options.\n")
	b.WriteString("End with a question or a prompt that gives the player clear options for what to do next.")
	return b.String()
}

// SkillCheck asks the narrator to interpret an already resolved skill check.
func SkillCheck(c *models.CharacterSheet, check mechanics.SkillCheck) string {
	proficiency := "No"
	if check.Proficient {
		proficiency = fmt.Sprintf("Yes (%+d)", check.ProficiencyBonus)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "The player (%s) rolls a skill check for %s.\n", who(c), check.Skill)
	fmt.Fprintf(&b, "Dice roll (d20): %d\n", check.Roll)
	fmt.Fprintf(&b, "Ability modifier (%s): %+d\n", check.Ability, check.AbilityModifier)
	fmt.Fprintf(&b, "Proficiency: %s\n", proficiency)
	fmt.Fprintf(&b, "Total: %d\n\n", check.Total)
	b.WriteString("The dice have already been rolled; use this total as final.\n")
	b.WriteString("Interpret the result in the current context and describe the outcome.\n")
	b.WriteString("Typical difficulty classes for reference:\n")
	b.WriteString("- Easy: 10\n- Medium: 15\n- Hard: 20\n- Very Hard: 25\n- Nearly Impossible: 30\n\n")
	b.WriteString("Continue the scene after describing the result of this check.")
	return b.String()
}

func who(c *models.CharacterSheet) string {
	return fmt.Sprintf("%s the %s %s", c.Name, c.Race, c.Class)
}

func abilityLine(s models.AbilityScores) string {
	parts := make([]string, 0, len(models.Abilities))
	for _, a := range models.Abilities {
		parts = append(parts, fmt.Sprintf("%s %d", a, s.Score(a)))
	}
	return strings.Join(parts, ", ")
}
