package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"dungeon-master/internal/archive"
	"dungeon-master/internal/logger"
	"dungeon-master/internal/models"

	"go.uber.org/zap"
)

// State is a node of the controller state machine.
type State int

const (
	StateMainMenu State = iota
	StateSetup
	StateActivePlay
	StateEnded
	StateTerminal
)

func (s State) String() string {
	switch s {
	case StateMainMenu:
		return "main_menu"
	case StateSetup:
		return "setup"
	case StateActivePlay:
		return "active_play"
	case StateEnded:
		return "ended"
	case StateTerminal:
		return "terminal"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Exchanger runs one prompt/response round trip. *chat.Orchestrator implements it.
type Exchanger interface {
	Exchange(ctx context.Context, prompt string, history []models.Turn, progressMessage string) (string, error)
}

// Store persists the single active session. *store.FileStore implements it.
type Store interface {
	Load() (*models.Session, error)
	Save(s *models.Session) error
}

// Deps are the collaborators of a Controller.
type Deps struct {
	Chat    Exchanger
	Store   Store
	Archive archive.Repository
	UI      UI
	Rand    *rand.Rand
	Logger  *zap.Logger
}

// Controller owns the active session and drives one game variant.
// Every mutating operation ends with a save; read-only operations never save.
type Controller struct {
	variant       models.Variant
	questionLimit int

	chat    Exchanger
	store   Store
	archive archive.Repository
	ui      UI
	rng     *rand.Rand
	now     func() time.Time
	logger  *zap.Logger

	state   State
	session *models.Session
}

// NewController creates a controller in the main menu state.
func NewController(variant models.Variant, questionLimit int, deps Deps) *Controller {
	if questionLimit <= 0 {
		questionLimit = models.DefaultQuestionLimit
	}
	if deps.Archive == nil {
		deps.Archive = archive.NoopRepository{}
	}
	return &Controller{
		variant:       variant,
		questionLimit: questionLimit,
		chat:          deps.Chat,
		store:         deps.Store,
		archive:       deps.Archive,
		ui:            deps.UI,
		rng:           deps.Rand,
		now:           func() time.Time { return time.Now().UTC() },
		logger:        logger.Named(deps.Logger, "SessionController").With(zap.String("variant", string(variant))),
		state:         StateMainMenu,
	}
}

// WithClock replaces the time source. Used by tests.
func (c *Controller) WithClock(now func() time.Time) *Controller {
	c.now = now
	return c
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Session returns the active session, or nil.
func (c *Controller) Session() *models.Session { return c.session }

// Run drives the state machine until the player quits, input is closed or ctx is done.
func (c *Controller) Run(ctx context.Context) error {
	c.logger.Info("Session controller started")
	defer c.logger.Info("Session controller stopped")

	for c.state != StateTerminal {
		if ctx.Err() != nil {
			return nil
		}

		var err error
		switch c.state {
		case StateMainMenu:
			err = c.mainMenu(ctx)
		case StateSetup:
			err = c.setup(ctx)
		case StateActivePlay:
			err = c.play(ctx)
		case StateEnded:
			c.showOutcome()
			c.transition(StateMainMenu)
		}

		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
	return nil
}

func (c *Controller) transition(to State) {
	if c.state != to {
		c.logger.Debug("State transition", zap.Stringer("from", c.state), zap.Stringer("to", to))
	}
	c.state = to
}

func (c *Controller) mainMenu(ctx context.Context) error {
	labels := menuLabels(c.variant)
	choice, err := c.ui.Choose("Choose an option:", labels.options(), 0)
	if err != nil {
		return err
	}

	switch choice {
	case 0:
		c.ui.Notice(NoticeInfo, labels.starting)
		c.transition(StateSetup)
	case 1:
		if err := c.Resume(); err != nil {
			if errors.Is(err, models.ErrNoSavedSession) {
				c.ui.Notice(NoticeWarning, labels.noSave)
				return nil
			}
			return c.report(err)
		}
		c.showResume()
	case 2:
		c.showHelp(ctx)
	default:
		c.ui.Notice(NoticeInfo, labels.goodbye)
		c.transition(StateTerminal)
	}
	return nil
}

func (c *Controller) setup(ctx context.Context) error {
	if c.variant == models.VariantQuestions {
		return c.setupQuestions(ctx)
	}
	return c.setupAdventure(ctx)
}

func (c *Controller) play(ctx context.Context) error {
	if c.session == nil {
		c.transition(StateMainMenu)
		return nil
	}
	if c.session.Ended() {
		c.transition(StateEnded)
		return nil
	}
	if c.variant == models.VariantQuestions {
		return c.playQuestions(ctx)
	}
	return c.playAdventure(ctx)
}

// Resume loads the persisted session. A missing, finished or corrupt save
// yields models.ErrNoSavedSession.
func (c *Controller) Resume() error {
	s, err := c.store.Load()
	if err != nil {
		if errors.Is(err, models.ErrCorruptSave) || errors.Is(err, models.ErrUnsupportedVersion) {
			c.logger.Warn("Saved session is unreadable, treating it as absent", zap.Error(err))
			return fmt.Errorf("%w: %w", models.ErrNoSavedSession, err)
		}
		return err
	}
	if !s.Resumable() {
		return models.ErrNoSavedSession
	}

	c.session = s
	c.transition(StateActivePlay)
	c.log().Info("Session resumed",
		zap.Int("history_turns", len(s.History)),
		zap.Time("last_saved_at", s.LastSavedAt),
	)
	return nil
}

// Save persists the active session. The in-memory session is kept on failure.
func (c *Controller) Save() error {
	if c.session == nil {
		return models.ErrNoActiveSession
	}
	if err := c.store.Save(c.session); err != nil {
		c.log().Error("Failed to save session", zap.Error(err))
		return err
	}
	c.log().Debug("Session saved", zap.Int("history_turns", len(c.session.History)))
	return nil
}

// exchange runs one round trip against the current history. The caller appends
// the pair to the session only after a successful response.
func (c *Controller) exchange(ctx context.Context, prompt string, history []models.Turn, progress string) (string, error) {
	return c.chat.Exchange(ctx, prompt, history, progress)
}

// finish ends the game, saves it and records the result.
func (c *Controller) finish(ctx context.Context) error {
	s := c.session
	s.End(c.now())
	c.transition(StateEnded)

	outcome := "lost"
	if s.Flags.HasWon {
		outcome = "won"
	}
	gamesFinishedTotal.WithLabelValues(string(s.Variant), outcome).Inc()
	c.log().Info("Game finished",
		zap.String("outcome", outcome),
		zap.Int("questions_asked", s.Progress.Asked),
	)

	saveErr := c.Save()
	if err := c.archive.Record(ctx, archive.ResultFromSession(s)); err != nil {
		c.log().Warn("Failed to record game result", zap.Error(err))
	}
	return saveErr
}

func (c *Controller) active(variant models.Variant) (*models.Session, error) {
	if c.session == nil {
		return nil, models.ErrNoActiveSession
	}
	if c.session.Variant != variant {
		return nil, fmt.Errorf("%w: session is %s", models.ErrWrongVariant, c.session.Variant)
	}
	if c.session.Ended() {
		return nil, models.ErrGameOver
	}
	return c.session, nil
}

// report turns recoverable failures into notices. Anything else is returned.
func (c *Controller) report(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, models.ErrChatFailed):
		c.ui.Notice(NoticeError, fmt.Sprintf("%s could not respond: %v. Nothing was changed, try again.", hostName(c.variant), err))
	case errors.Is(err, models.ErrPersistence):
		c.ui.Notice(NoticeError, fmt.Sprintf("Error saving game: %v", err))
	case errors.Is(err, models.ErrNoSubject):
		c.ui.Notice(NoticeError, "The host did not pick a subject. Please start a new game.")
	default:
		return err
	}
	return nil
}

func (c *Controller) showHelp(ctx context.Context) {
	c.ui.Narrate("", helpText(c.variant))
	stats, err := c.archive.Stats(ctx, c.variant)
	if err != nil {
		c.logger.Warn("Failed to read game stats", zap.Error(err))
		return
	}
	if stats.Played == 0 {
		return
	}
	line := fmt.Sprintf("Games finished: %d | Won: %d", stats.Played, stats.Won)
	if c.variant == models.VariantQuestions && stats.Won > 0 {
		line += fmt.Sprintf(" | Average questions to win: %.1f", stats.AverageQuestions)
	}
	c.ui.Status(line)
}

func (c *Controller) log() *zap.Logger {
	if c.session == nil {
		return c.logger
	}
	return c.logger.With(zap.String("session_id", c.session.ID.String()))
}

func (c *Controller) newSession() *models.Session {
	return models.NewSession(c.variant, c.questionLimit, c.now())
}
