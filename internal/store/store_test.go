package store_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"dungeon-master/internal/mechanics"
	"dungeon-master/internal/models"
	"dungeon-master/internal/store"

	"github.com/moby/sys/atomicwriter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	t0 = time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC)
	t1 = t0.Add(5 * time.Minute)
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func adventureSession() *models.Session {
	s := models.NewSession(models.VariantAdventure, 0, t0)
	s.Character = mechanics.NewCharacter(mechanics.CharacterOptions{
		Name:       "Lyra",
		Race:       models.Elf,
		Class:      models.Wizard,
		Background: "Sage",
		Scores:     models.AbilityScores{Strength: 8, Dexterity: 14, Constitution: 12, Intelligence: 15, Wisdom: 13, Charisma: 10},
		Skills:     []models.Skill{models.Arcana, models.History},
	})
	s.Campaign = "The Ember Vault"
	s.Location = "Oakhollow"
	s.Quest = "Find the missing archivist"
	s.AppendExchange("campaign prompt", "Campaign: The Ember Vault")
	s.AppendExchange("scene prompt", "You arrive at dusk.")
	s.Progress.Asked = 1
	return s
}

func TestFileStore_LoadMissingFileReturnsDefault(t *testing.T) {
	dir := t.TempDir()

	t.Run("questions", func(t *testing.T) {
		st := store.NewFileStore(dir, models.VariantQuestions, 20, zap.NewNop()).WithClock(fixedClock(t0))
		s, err := st.Load()
		require.NoError(t, err)
		assert.Equal(t, 20, s.Progress.Remaining())
		assert.Empty(t, s.History)
		assert.Equal(t, models.VariantQuestions, s.Variant)
		assert.Equal(t, t0, s.StartedAt)
		assert.False(t, s.Resumable())
	})

	t.Run("adventure", func(t *testing.T) {
		st := store.NewFileStore(dir, models.VariantAdventure, 20, zap.NewNop())
		s, err := st.Load()
		require.NoError(t, err)
		assert.Empty(t, s.History)
		assert.Empty(t, s.Quest)
		assert.Nil(t, s.Character)
	})
}

func TestFileStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	st := store.NewFileStore(dir, models.VariantAdventure, 20, zap.NewNop()).WithClock(fixedClock(t1))

	original := adventureSession()
	require.NoError(t, st.Save(original))
	assert.Equal(t, t1, original.LastSavedAt)
	assert.Equal(t, filepath.Join(dir, store.AdventureSaveFile), st.Path())

	loaded, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
	assert.True(t, loaded.Resumable())
}

func TestFileStore_RoundTripQuestionsWithFlags(t *testing.T) {
	st := store.NewFileStore(t.TempDir(), models.VariantQuestions, 20, zap.NewNop()).WithClock(fixedClock(t1))

	original := models.NewSession(models.VariantQuestions, 20, t0)
	original.Category = "Animal"
	original.Secret = "Octopus"
	original.AppendExchange("q1", "Yes")
	original.Progress.Asked = 1
	original.Resolve("octopus", true)
	original.End(t1)

	require.NoError(t, st.Save(original))
	loaded, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestFileStore_LastSavedAtIsMonotonic(t *testing.T) {
	st := store.NewFileStore(t.TempDir(), models.VariantAdventure, 20, zap.NewNop())

	s := adventureSession()
	st.WithClock(fixedClock(t1))
	require.NoError(t, st.Save(s))
	assert.Equal(t, t1, s.LastSavedAt)

	// Clock went backwards.
	st.WithClock(fixedClock(t0))
	require.NoError(t, st.Save(s))
	assert.Equal(t, t1, s.LastSavedAt)
}

func TestFileStore_InterruptedWriteKeepsPreviousFile(t *testing.T) {
	dir := t.TempDir()
	st := store.NewFileStore(dir, models.VariantAdventure, 20, zap.NewNop()).WithClock(fixedClock(t1))

	committed := adventureSession()
	require.NoError(t, st.Save(committed))
	before, err := os.ReadFile(st.Path())
	require.NoError(t, err)

	// Temp file written, rename never performed.
	w, err := atomicwriter.New(st.Path(), 0o644)
	require.NoError(t, err)
	_, err = w.Write([]byte(`{"version": 1, "variant": "adventure", "history": [{"role": "us`))
	require.NoError(t, err)

	after, err := os.ReadFile(st.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)

	loaded, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, committed, loaded)
}

func TestFileStore_CorruptFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"not json", "{this is not json", models.ErrCorruptSave},
		{"wrong shape", `{"history": "many turns"}`, models.ErrCorruptSave},
		{"odd history", `{"variant": "adventure", "history": [{"role": "user", "content": "hi"}]}`, models.ErrCorruptSave},
		{"other variant", `{"variant": "questions", "history": []}`, models.ErrCorruptSave},
		{"future version", `{"version": 99, "variant": "adventure", "history": []}`, models.ErrUnsupportedVersion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			st := store.NewFileStore(dir, models.VariantAdventure, 20, zap.NewNop())
			require.NoError(t, os.WriteFile(st.Path(), []byte(tt.content), 0o644))

			s, err := st.Load()
			assert.Nil(t, s)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFileStore_LegacyFileWithoutVersion(t *testing.T) {
	dir := t.TempDir()
	st := store.NewFileStore(dir, models.VariantQuestions, 20, zap.NewNop())
	legacy := `{"secret": "Lighthouse", "category": "Place", "progress": {"limit": 20, "asked": 3},
		"history": [{"role": "user", "content": "q"}, {"role": "assistant", "content": "a"}]}`
	require.NoError(t, os.WriteFile(st.Path(), []byte(legacy), 0o644))

	s, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, models.SchemaVersion, s.Version)
	assert.Equal(t, models.VariantQuestions, s.Variant)
	assert.Equal(t, 17, s.Progress.Remaining())
	assert.True(t, s.Resumable())
}

func TestFileStore_SaveFailureIsPersistenceError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does", "not", "exist")
	st := store.NewFileStore(missing, models.VariantAdventure, 20, zap.NewNop())

	s := adventureSession()
	prev := s.LastSavedAt
	err := st.Save(s)
	assert.ErrorIs(t, err, models.ErrPersistence)
	assert.Equal(t, prev, s.LastSavedAt)
}

func TestFileStore_NilLogger(t *testing.T) {
	st := store.NewFileStore(t.TempDir(), models.VariantAdventure, 20, nil).WithClock(fixedClock(t1))

	require.NoError(t, st.Save(adventureSession()))
	_, err := st.Load()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(st.Path(), []byte("{broken"), 0o644))
	_, err = st.Load()
	assert.ErrorIs(t, err, models.ErrCorruptSave)
}
