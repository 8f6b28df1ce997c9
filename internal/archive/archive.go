package archive

import (
	"context"
	"time"

	"dungeon-master/internal/models"

	"github.com/google/uuid"
)

// Result is the outcome of one finished game.
type Result struct {
	ID             uuid.UUID
	SessionID      uuid.UUID
	Variant        models.Variant
	Category       string
	Secret         string
	QuestionsAsked int
	QuestionLimit  int
	Won            bool
	StartedAt      time.Time
	EndedAt        time.Time
}

// Stats aggregates the archived results of a variant.
type Stats struct {
	Played           int
	Won              int
	AverageQuestions float64
}

// Repository stores finished games.
type Repository interface {
	// Record stores a result. Recording the same session twice keeps the first result.
	Record(ctx context.Context, result Result) error
	Stats(ctx context.Context, variant models.Variant) (Stats, error)
	Close()
}

// ResultFromSession builds the archive entry of an ended session.
func ResultFromSession(s *models.Session) Result {
	ended := s.LastSavedAt
	if s.Flags.EndedAt != nil {
		ended = *s.Flags.EndedAt
	}
	return Result{
		ID:             uuid.New(),
		SessionID:      s.ID,
		Variant:        s.Variant,
		Category:       s.Category,
		Secret:         s.Secret,
		QuestionsAsked: s.Progress.Asked,
		QuestionLimit:  s.Progress.Limit,
		Won:            s.Flags.HasWon,
		StartedAt:      s.StartedAt,
		EndedAt:        ended,
	}
}

// NoopRepository is used when no archive is configured.
type NoopRepository struct{}

func (NoopRepository) Record(context.Context, Result) error { return nil }

func (NoopRepository) Stats(context.Context, models.Variant) (Stats, error) { return Stats{}, nil }

func (NoopRepository) Close() {}
