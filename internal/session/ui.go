package session

import "dungeon-master/internal/models"

// NoticeKind grades a short message to the player.
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeWarning
	NoticeError
)

// UI is the interactive surface the controller drives.
// Input methods block until the player answers and return io.EOF when input is closed.
type UI interface {
	Choose(prompt string, options []string, defaultIndex int) (int, error)
	// ChooseMany returns at most limit distinct indexes.
	ChooseMany(prompt string, options []string, limit int) ([]int, error)
	Ask(prompt, defaultValue string) (string, error)

	Narrate(title, text string)
	Notice(kind NoticeKind, message string)
	Status(lines ...string)
	ShowSheet(sheet *models.CharacterSheet)
	ShowRoll(label string, results []int)
}
