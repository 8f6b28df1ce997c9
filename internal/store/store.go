package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"dungeon-master/internal/logger"
	"dungeon-master/internal/models"

	"github.com/moby/sys/atomicwriter"
	"go.uber.org/zap"
)

// Save file names, one fixed path per game variant.
const (
	AdventureSaveFile = "dnd_adventure_save.json"
	QuestionsSaveFile = "twenty_questions_save.json"
)

// SaveFileName returns the well-known save file of a variant.
func SaveFileName(variant models.Variant) string {
	if variant == models.VariantQuestions {
		return QuestionsSaveFile
	}
	return AdventureSaveFile
}

// FileStore persists a single session as a JSON document.
// Writes go to a temporary file in the same directory which is then renamed over
// the save file, so readers see either the old or the new session, never a mix.
type FileStore struct {
	path          string
	variant       models.Variant
	questionLimit int
	now           func() time.Time
	logger        *zap.Logger
}

// NewFileStore returns a store for the variant's save file inside dir.
func NewFileStore(dir string, variant models.Variant, questionLimit int, log *zap.Logger) *FileStore {
	return &FileStore{
		path:          filepath.Join(dir, SaveFileName(variant)),
		variant:       variant,
		questionLimit: questionLimit,
		now:           func() time.Time { return time.Now().UTC() },
		logger:        logger.Named(log, "SessionStore").With(zap.String("variant", string(variant))),
	}
}

// WithClock replaces the time source used for timestamps.
func (s *FileStore) WithClock(now func() time.Time) *FileStore {
	s.now = now
	return s
}

// Path returns the save file location.
func (s *FileStore) Path() string {
	return s.path
}

// Save writes the full session atomically. On success the session's version and
// lastSavedAt are updated; lastSavedAt never moves backwards.
func (s *FileStore) Save(session *models.Session) error {
	stamp := s.now()
	if stamp.Before(session.LastSavedAt) {
		stamp = session.LastSavedAt
	}

	snapshot := *session
	snapshot.Version = models.SchemaVersion
	snapshot.LastSavedAt = stamp
	if snapshot.Variant == "" {
		snapshot.Variant = s.variant
	}

	data, err := json.MarshalIndent(&snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode session: %w", models.ErrPersistence, err)
	}
	if err := atomicwriter.WriteFile(s.path, data, 0o644); err != nil {
		s.logger.Error("Failed to save session", zap.String("path", s.path), zap.Error(err))
		return fmt.Errorf("%w: write %s: %w", models.ErrPersistence, s.path, err)
	}

	session.Version = snapshot.Version
	session.Variant = snapshot.Variant
	session.LastSavedAt = stamp
	s.logger.Debug("Session saved",
		zap.Stringer("session_id", session.ID),
		zap.Int("history_turns", len(session.History)),
		zap.Int("bytes", len(data)))
	return nil
}

// Load reads the saved session. A missing file yields a fresh default session.
// A file that does not decode to a valid session yields models.ErrCorruptSave.
func (s *FileStore) Load() (*models.Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("No save file, starting from a default session", zap.String("path", s.path))
		return models.NewSession(s.variant, s.questionLimit, s.now()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", models.ErrPersistence, s.path, err)
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		s.logger.Warn("Save file does not decode", zap.String("path", s.path), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", models.ErrCorruptSave, err)
	}
	if err := s.validate(&session); err != nil {
		s.logger.Warn("Save file is not a valid session", zap.String("path", s.path), zap.Error(err))
		return nil, err
	}
	return &session, nil
}

func (s *FileStore) validate(session *models.Session) error {
	switch {
	case session.Version == 0:
		// Files written before the version tag existed.
		session.Version = models.SchemaVersion
	case session.Version > models.SchemaVersion:
		return fmt.Errorf("%w: version %d, supported %d", models.ErrUnsupportedVersion, session.Version, models.SchemaVersion)
	}
	if session.Variant == "" {
		session.Variant = s.variant
	}
	if session.Variant != s.variant {
		return fmt.Errorf("%w: file holds a %q session", models.ErrCorruptSave, session.Variant)
	}
	if !models.ValidHistory(session.History) {
		return fmt.Errorf("%w: history does not alternate user/assistant turns", models.ErrCorruptSave)
	}
	if session.Progress.Asked < 0 || session.Progress.Limit < 0 {
		return fmt.Errorf("%w: negative progress counters", models.ErrCorruptSave)
	}
	return nil
}
