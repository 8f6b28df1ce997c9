package models

import (
	"time"

	"github.com/google/uuid"
)

// SchemaVersion is the version tag written into every saved session.
const SchemaVersion = 1

// DefaultQuestionLimit is the number of questions in a guessing game.
const DefaultQuestionLimit = 20

// Variant selects which game a session belongs to.
type Variant string

const (
	VariantAdventure Variant = "adventure" // Narrative adventure with a Dungeon Master.
	VariantQuestions Variant = "questions" // Twenty questions guessing game.
)

// Valid reports whether v is a known variant.
func (v Variant) Valid() bool {
	return v == VariantAdventure || v == VariantQuestions
}

// Progress tracks turns or questions consumed. Limit 0 means unlimited.
type Progress struct {
	Limit int `json:"limit"`
	Asked int `json:"asked"`
}

// Remaining returns max(0, limit - asked).
func (p Progress) Remaining() int {
	if r := p.Limit - p.Asked; r > 0 {
		return r
	}
	return 0
}

// Exhausted reports whether a bounded game has no questions left.
func (p Progress) Exhausted() bool {
	return p.Limit > 0 && p.Remaining() == 0
}

// Flags are terminal-state markers. Each is set at most once.
type Flags struct {
	HasWon       bool       `json:"has_won"`
	Resolved     bool       `json:"resolved,omitempty"`
	CurrentGuess string     `json:"current_guess,omitempty"` // Guess that decided the game.
	Revealed     bool       `json:"revealed"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
}

// Session is the full persisted game state.
type Session struct {
	Version int       `json:"version"`
	ID      uuid.UUID `json:"id"`
	Variant Variant   `json:"variant"`

	// Adventure subject.
	Character *CharacterSheet `json:"character,omitempty"`
	Campaign  string          `json:"campaign,omitempty"`
	Location  string          `json:"location,omitempty"`
	Quest     string          `json:"quest,omitempty"`

	// Questions subject.
	Category string `json:"category,omitempty"`
	Secret   string `json:"secret,omitempty"`

	Progress    Progress  `json:"progress"`
	History     []Turn    `json:"history"`
	StartedAt   time.Time `json:"started_at"`
	LastSavedAt time.Time `json:"last_saved_at"`
	Flags       Flags     `json:"flags"`
}

// NewSession returns an empty session for the variant, started at now.
func NewSession(variant Variant, questionLimit int, now time.Time) *Session {
	s := &Session{
		Version:     SchemaVersion,
		ID:          uuid.New(),
		Variant:     variant,
		History:     []Turn{},
		StartedAt:   now,
		LastSavedAt: now,
	}
	if variant == VariantQuestions {
		if questionLimit <= 0 {
			questionLimit = DefaultQuestionLimit
		}
		s.Progress.Limit = questionLimit
	}
	return s
}

// AppendExchange appends a prompt and its response as one user/assistant pair.
func (s *Session) AppendExchange(prompt, response string) {
	s.History = append(s.History, UserTurn(prompt), AssistantTurn(response))
}

// LastAssistantMessage returns the most recent assistant turn, if any.
func (s *Session) LastAssistantMessage() (string, bool) {
	for i := len(s.History) - 1; i >= 0; i-- {
		if s.History[i].Role == RoleAssistant {
			return s.History[i].Content, true
		}
	}
	return "", false
}

// Ended reports whether the game reached a terminal state.
func (s *Session) Ended() bool {
	return s.Flags.EndedAt != nil
}

// Resumable reports whether the session holds a game that can be continued.
func (s *Session) Resumable() bool {
	if s.Ended() {
		return false
	}
	switch s.Variant {
	case VariantAdventure:
		return s.Character != nil && s.Campaign != ""
	case VariantQuestions:
		return s.Secret != ""
	default:
		return false
	}
}

// GuessResolved reports whether a deciding guess was recorded.
// Saves written before the resolved flag existed are recognised by their guess.
func (s *Session) GuessResolved() bool {
	return s.Flags.Resolved || s.Flags.CurrentGuess != "" || s.Flags.HasWon
}

// Resolve records the deciding guess. Later calls are ignored, even when guess is empty.
func (s *Session) Resolve(guess string, won bool) {
	if s.GuessResolved() {
		return
	}
	s.Flags.Resolved = true
	s.Flags.CurrentGuess = guess
	s.Flags.HasWon = won
}

// MarkRevealed records that the secret was revealed. Repeated calls have no further effect.
func (s *Session) MarkRevealed() {
	s.Flags.Revealed = true
}

// End marks the game as finished at t. Later calls are ignored.
func (s *Session) End(t time.Time) {
	if s.Flags.EndedAt != nil {
		return
	}
	s.Flags.EndedAt = &t
}
