package session_test

import (
	"io"
	"math/rand"
	"os"
	"strings"
	"testing"
	"time"

	"dungeon-master/internal/archive"
	"dungeon-master/internal/chat"
	"dungeon-master/internal/mocks"
	"dungeon-master/internal/models"
	"dungeon-master/internal/session"
	"dungeon-master/internal/store"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	startedAt = time.Date(2025, 7, 4, 19, 0, 0, 0, time.UTC)
	savedAt   = startedAt.Add(time.Minute)
)

type notice struct {
	kind    session.NoticeKind
	message string
}

// scriptedUI replays queued answers and records everything shown.
// Input methods return io.EOF once their queue is empty.
type scriptedUI struct {
	choices []int
	answers []string
	many    [][]int

	choosePrompts []string
	askPrompts    []string
	narrated      []string
	notices       []notice
	statuses      []string
	rolls         [][]int
	sheets        int
}

func (u *scriptedUI) Choose(prompt string, _ []string, _ int) (int, error) {
	u.choosePrompts = append(u.choosePrompts, prompt)
	if len(u.choices) == 0 {
		return 0, io.EOF
	}
	next := u.choices[0]
	u.choices = u.choices[1:]
	return next, nil
}

func (u *scriptedUI) ChooseMany(prompt string, _ []string, _ int) ([]int, error) {
	u.choosePrompts = append(u.choosePrompts, prompt)
	if len(u.many) == 0 {
		return nil, io.EOF
	}
	next := u.many[0]
	u.many = u.many[1:]
	return next, nil
}

func (u *scriptedUI) Ask(prompt, _ string) (string, error) {
	u.askPrompts = append(u.askPrompts, prompt)
	if len(u.answers) == 0 {
		return "", io.EOF
	}
	next := u.answers[0]
	u.answers = u.answers[1:]
	return next, nil
}

func (u *scriptedUI) Narrate(title, text string) {
	u.narrated = append(u.narrated, title+"\n"+text)
}

func (u *scriptedUI) Notice(kind session.NoticeKind, message string) {
	u.notices = append(u.notices, notice{kind, message})
}

func (u *scriptedUI) Status(lines ...string) {
	u.statuses = append(u.statuses, strings.Join(lines, "\n"))
}

func (u *scriptedUI) ShowSheet(*models.CharacterSheet) { u.sheets++ }

func (u *scriptedUI) ShowRoll(_ string, results []int) { u.rolls = append(u.rolls, results) }

func (u *scriptedUI) hasNotice(kind session.NoticeKind, substr string) bool {
	for _, n := range u.notices {
		if n.kind == kind && strings.Contains(n.message, substr) {
			return true
		}
	}
	return false
}

var _ session.UI = (*scriptedUI)(nil)

// countingStore counts successful and failed saves.
type countingStore struct {
	*store.FileStore
	saves int
}

func (s *countingStore) Save(sess *models.Session) error {
	s.saves++
	return s.FileStore.Save(sess)
}

type harness struct {
	ctl   *session.Controller
	chat  *mocks.MockChat
	store *countingStore
	ui    *scriptedUI
}

type harnessOption func(*session.Deps)

func withArchive(repo archive.Repository) harnessOption {
	return func(d *session.Deps) { d.Archive = repo }
}

func newHarness(t *testing.T, variant models.Variant, opts ...harnessOption) *harness {
	return newHarnessIn(t, t.TempDir(), variant, opts...)
}

func newHarnessIn(t *testing.T, dir string, variant models.Variant, opts ...harnessOption) *harness {
	t.Helper()
	mockChat := mocks.NewMockChat(t)
	fs := store.NewFileStore(dir, variant, 20, zap.NewNop()).WithClock(func() time.Time { return savedAt })
	st := &countingStore{FileStore: fs}
	ui := &scriptedUI{}

	deps := session.Deps{
		Chat:   chat.NewOrchestrator(mockChat, nil, nil, "test-model", zap.NewNop()),
		Store:  st,
		UI:     ui,
		Rand:   rand.New(rand.NewSource(11)),
		Logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&deps)
	}

	ctl := session.NewController(variant, 20, deps).WithClock(func() time.Time { return startedAt })
	return &harness{ctl: ctl, chat: mockChat, store: st, ui: ui}
}

func (h *harness) expect(prompt interface{}, response string) *mock.Call {
	return h.chat.On("Exchange", mock.Anything, prompt, mock.Anything).Return(response, nil).Once()
}

func (h *harness) fail(prompt interface{}, cause error) *mock.Call {
	return h.chat.On("Exchange", mock.Anything, prompt, mock.Anything).Return("", cause).Once()
}

func (h *harness) savedBytes(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(h.store.Path())
	require.NoError(t, err)
	return data
}

func (h *harness) saveFileExists() bool {
	_, err := os.Stat(h.store.Path())
	return err == nil
}

func containing(substr string) interface{} {
	return mock.MatchedBy(func(prompt string) bool { return strings.Contains(prompt, substr) })
}

func testSheet() *models.CharacterSheet {
	sheet := models.NewCharacterSheet("Brienne")
	sheet.Race = models.Human
	sheet.Class = models.Paladin
	sheet.Abilities = models.AbilityScores{Strength: 16, Dexterity: 10, Constitution: 14, Intelligence: 8, Wisdom: 12, Charisma: 15}
	sheet.Skills[models.Athletics] = true
	sheet.HitPoints, sheet.MaxHitPoints, sheet.ArmorClass = 12, 12, 16
	return sheet
}

const campaignReply = "**Campaign:** The Ember Vault\n" +
	"Location: Oakhollow\n" +
	"Quest: Find the missing archivist\n\n" +
	"Smoke curls over the hills."
