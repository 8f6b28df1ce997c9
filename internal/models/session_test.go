package models_test

import (
	"errors"
	"testing"
	"time"

	"dungeon-master/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func TestNewSession(t *testing.T) {
	t.Run("questions default", func(t *testing.T) {
		s := models.NewSession(models.VariantQuestions, 0, testNow)
		assert.Equal(t, 20, s.Progress.Remaining())
		assert.Empty(t, s.History)
		assert.Equal(t, models.SchemaVersion, s.Version)
		assert.False(t, s.Resumable())
	})

	t.Run("adventure is unlimited", func(t *testing.T) {
		s := models.NewSession(models.VariantAdventure, 20, testNow)
		assert.Equal(t, 0, s.Progress.Limit)
		assert.False(t, s.Progress.Exhausted())
		assert.Empty(t, s.Quest)
	})
}

func TestProgress_Remaining(t *testing.T) {
	tests := []struct {
		name      string
		p         models.Progress
		remaining int
		exhausted bool
	}{
		{"fresh", models.Progress{Limit: 20}, 20, false},
		{"one left", models.Progress{Limit: 20, Asked: 19}, 1, false},
		{"exhausted", models.Progress{Limit: 20, Asked: 20}, 0, true},
		{"overrun clamps", models.Progress{Limit: 20, Asked: 25}, 0, true},
		{"unlimited", models.Progress{Asked: 7}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.remaining, tt.p.Remaining())
			assert.Equal(t, tt.exhausted, tt.p.Exhausted())
		})
	}
}

func TestSession_AppendExchange(t *testing.T) {
	s := models.NewSession(models.VariantQuestions, 20, testNow)
	for i := 0; i < 3; i++ {
		s.AppendExchange("prompt", "response")
	}
	require.Len(t, s.History, 6)
	assert.True(t, models.ValidHistory(s.History))

	msg, ok := s.LastAssistantMessage()
	assert.True(t, ok)
	assert.Equal(t, "response", msg)
}

func TestValidHistory(t *testing.T) {
	assert.True(t, models.ValidHistory(nil))
	assert.False(t, models.ValidHistory([]models.Turn{models.UserTurn("a")}))
	assert.False(t, models.ValidHistory([]models.Turn{models.AssistantTurn("a"), models.UserTurn("b")}))
}

func TestSession_FlagsSetOnce(t *testing.T) {
	s := models.NewSession(models.VariantQuestions, 20, testNow)
	s.Secret = "penguin"
	assert.True(t, s.Resumable())

	s.Resolve("penguin", true)
	s.Resolve("walrus", false)
	assert.True(t, s.Flags.HasWon)
	assert.Equal(t, "penguin", s.Flags.CurrentGuess)

	s.End(testNow)
	s.End(testNow.Add(time.Hour))
	require.NotNil(t, s.Flags.EndedAt)
	assert.Equal(t, testNow, *s.Flags.EndedAt)
	assert.False(t, s.Resumable())
}

func TestSession_ResolveEmptyGuessIsFinal(t *testing.T) {
	s := models.NewSession(models.VariantQuestions, 20, testNow)
	assert.False(t, s.GuessResolved())

	s.Resolve("", false)
	assert.True(t, s.GuessResolved())
	assert.True(t, s.Flags.Resolved)

	s.Resolve("penguin", true)
	assert.False(t, s.Flags.HasWon)
	assert.Empty(t, s.Flags.CurrentGuess)
}

func TestSession_GuessResolvedForOlderSaves(t *testing.T) {
	s := models.NewSession(models.VariantQuestions, 20, testNow)
	s.Flags.CurrentGuess = "walrus"
	assert.True(t, s.GuessResolved())

	s.Resolve("penguin", true)
	assert.Equal(t, "walrus", s.Flags.CurrentGuess)
	assert.False(t, s.Flags.HasWon)
}

func TestSession_MarkRevealedIsIdempotent(t *testing.T) {
	s := models.NewSession(models.VariantQuestions, 20, testNow)
	s.MarkRevealed()
	s.MarkRevealed()
	assert.True(t, s.Flags.Revealed)
}

func TestSkill_Ability(t *testing.T) {
	a, err := models.Stealth.Ability()
	require.NoError(t, err)
	assert.Equal(t, models.Dexterity, a)

	_, err = models.Skill("Juggling").Ability()
	assert.True(t, errors.Is(err, models.ErrUnknownSkill))

	for _, sk := range models.Skills {
		_, err := sk.Ability()
		assert.NoError(t, err, sk)
	}
}

func TestClassTables(t *testing.T) {
	assert.Equal(t, 4, models.ClassSkillPicks(models.Rogue))
	assert.Equal(t, 3, models.ClassSkillPicks(models.Bard))
	assert.Equal(t, 2, models.ClassSkillPicks(models.Artificer))
	assert.Len(t, models.ClassSkillOptions(models.Bard), len(models.Skills))
	assert.Equal(t, 12, models.HitDie(models.Barbarian))
	assert.Equal(t, 6, models.HitDie(models.Wizard))
	assert.Equal(t, 8, models.HitDie(models.Monk))
	assert.Nil(t, models.StartingKit(models.Wizard).Armor)
	assert.Equal(t, 20, models.StartingKit(models.Druid).Gold)
}
