package console

import (
	"fmt"
	"strings"

	"dungeon-master/internal/mechanics"
	"dungeon-master/internal/models"
)

// ShowSheet prints the full character sheet.
func (c *Console) ShowSheet(sheet *models.CharacterSheet) {
	if sheet == nil {
		return
	}
	heavy := c.paint(ansiBlue, strings.Repeat("=", ruleWidth))
	light := c.paint(ansiBlue, strings.Repeat("-", ruleWidth))
	label := func(s string) string { return c.paint(ansiGreen, s) }

	fmt.Fprintf(c.out, "\n%s\n%s\n", c.paint(ansiYellow+ansiBold, "CHARACTER SHEET"), heavy)
	fmt.Fprintf(c.out, "%s: %s\n", label("Name"), sheet.Name)
	fmt.Fprintf(c.out, "%s: %s | %s: %s | %s: %s\n",
		label("Race"), sheet.Race, label("Class"), sheet.Class, label("Background"), sheet.Background)
	fmt.Fprintf(c.out, "%s: %d | %s: %d | %s: %d GP\n",
		label("Level"), sheet.Level, label("XP"), sheet.Experience, label("Gold"), sheet.Gold)
	fmt.Fprintln(c.out, light)
	fmt.Fprintf(c.out, "%s: %d/%d | %s: %d | %s: %+d\n",
		label("Hit Points"), sheet.HitPoints, sheet.MaxHitPoints,
		label("Armor Class"), sheet.ArmorClass,
		label("Proficiency"), mechanics.ProficiencyBonus(sheet.Level))
	fmt.Fprintln(c.out, light)

	fmt.Fprintln(c.out, c.paint(ansiYellow, "Abilities"))
	for i, a := range models.Abilities {
		score := sheet.Abilities.Score(a)
		fmt.Fprintf(c.out, "%s: %2d (%+d)", label(string(a)), score, mechanics.AbilityModifier(score))
		if i%2 == 0 {
			fmt.Fprint(c.out, " | ")
		} else {
			fmt.Fprintln(c.out)
		}
	}
	fmt.Fprintln(c.out, light)

	fmt.Fprintln(c.out, c.paint(ansiYellow, "Skills"))
	skills := sheet.ProficientSkills()
	if len(skills) == 0 {
		fmt.Fprintln(c.out, "(none)")
	}
	for _, sk := range skills {
		fmt.Fprintf(c.out, "• %s\n", sk)
	}
	fmt.Fprintln(c.out, light)

	fmt.Fprintln(c.out, c.paint(ansiYellow, "Inventory"))
	if len(sheet.Inventory) == 0 {
		fmt.Fprintln(c.out, "(empty)")
	}
	for _, item := range sheet.Inventory {
		fmt.Fprintf(c.out, "• %s\n", item)
	}
	fmt.Fprintln(c.out, heavy)
}
