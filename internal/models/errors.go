package models

import "errors"

// Application-wide standard errors
var (
	// Chat capability
	ErrChatFailed = errors.New("chat exchange failed")

	// Persistence
	ErrPersistence        = errors.New("session persistence failed")
	ErrCorruptSave        = errors.New("saved session is corrupt")
	ErrUnsupportedVersion = errors.New("saved session has an unsupported schema version")
	ErrNoSavedSession     = errors.New("no saved session found")

	// Gameplay
	ErrUnknownSkill    = errors.New("unknown skill")
	ErrGameOver        = errors.New("game is already over")
	ErrNoCharacter     = errors.New("session has no character")
	ErrNoActiveSession = errors.New("no active session")
	ErrWrongVariant    = errors.New("operation not available in this game")
	ErrNoSubject       = errors.New("host did not commit to a subject")
)
