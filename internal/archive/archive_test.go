package archive_test

import (
	"context"
	"testing"
	"time"

	"dungeon-master/internal/archive"
	"dungeon-master/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultFromSession(t *testing.T) {
	started := time.Date(2025, 5, 2, 20, 0, 0, 0, time.UTC)
	ended := started.Add(12 * time.Minute)

	s := models.NewSession(models.VariantQuestions, 20, started)
	s.Category = "Vehicle"
	s.Secret = "Tandem bicycle"
	s.Progress.Asked = 14
	s.Resolve("tandem bicycle", true)
	s.End(ended)

	r := archive.ResultFromSession(s)
	assert.NotEqual(t, s.ID, r.ID)
	assert.Equal(t, s.ID, r.SessionID)
	assert.Equal(t, models.VariantQuestions, r.Variant)
	assert.Equal(t, "Tandem bicycle", r.Secret)
	assert.Equal(t, 14, r.QuestionsAsked)
	assert.Equal(t, 20, r.QuestionLimit)
	assert.True(t, r.Won)
	assert.Equal(t, started, r.StartedAt)
	assert.Equal(t, ended, r.EndedAt)
}

func TestResultFromSession_NotEndedUsesLastSave(t *testing.T) {
	s := models.NewSession(models.VariantAdventure, 0, time.Unix(100, 0))
	s.LastSavedAt = time.Unix(500, 0)
	assert.Equal(t, time.Unix(500, 0), archive.ResultFromSession(s).EndedAt)
}

func TestNoopRepository(t *testing.T) {
	var repo archive.Repository = archive.NoopRepository{}
	require.NoError(t, repo.Record(context.Background(), archive.Result{}))
	stats, err := repo.Stats(context.Background(), models.VariantQuestions)
	require.NoError(t, err)
	assert.Zero(t, stats.Played)
	repo.Close()
}
