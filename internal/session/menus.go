package session

import (
	"dungeon-master/internal/models"
	"dungeon-master/internal/prompts"
)

type mainMenuLabels struct {
	start, resume, help, quit string
	starting, noSave, goodbye string
}

func (l mainMenuLabels) options() []string {
	return []string{l.start, l.resume, l.help, l.quit}
}

func menuLabels(v models.Variant) mainMenuLabels {
	if v == models.VariantQuestions {
		return mainMenuLabels{
			start:    "Start New Game",
			resume:   "Continue Saved Game",
			help:     "View Rules & Commands",
			quit:     "Quit",
			starting: "Starting a new game...",
			noSave:   "No saved game found!",
			goodbye:  "Thanks for playing Twenty Questions!",
		}
	}
	return mainMenuLabels{
		start:    "Start New Adventure",
		resume:   "Continue Saved Adventure",
		help:     "View Rules & Commands",
		quit:     "Quit",
		starting: "Starting a new adventure...",
		noSave:   "No saved adventure found!",
		goodbye:  "Thanks for playing AI Dungeon Master!",
	}
}

// In-play menus. Indexes are matched in the play loops.
var (
	adventureActions = []string{
		"Take an action",
		"Roll a skill check",
		"Roll a dice",
		"Show character sheet",
		"Save game",
		"Return to main menu",
	}
	questionActions = []string{
		"Ask a question",
		"Make a guess",
		"Give up",
		"Show progress",
		"Save game",
		"Return to main menu",
	}
)

func helpText(v models.Variant) string {
	if v == models.VariantQuestions {
		return prompts.QuestionsHelp
	}
	return prompts.AdventureHelp
}

func hostName(v models.Variant) string {
	if v == models.VariantQuestions {
		return "The host"
	}
	return "The Dungeon Master"
}
