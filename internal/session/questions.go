package session

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"dungeon-master/internal/models"
	"dungeon-master/internal/prompts"

	"go.uber.org/zap"
)

// Exchanges made during setup. Their replies are not part of the visible transcript.
const questionSetupTurns = 4

const randomCategory = "Surprise me"

// QuestionResult is the outcome of AskQuestion.
type QuestionResult struct {
	Answer string
	// GuessRequired is set when no questions are left. No exchange happened
	// if Answer is empty.
	GuessRequired bool
}

// GuessResult is the outcome of MakeGuess.
type GuessResult struct {
	Judgment string
	Correct  bool
	Final    bool
	// Reveal holds the host's disclosure after a wrong final guess.
	Reveal string
}

// StartQuestions opens a guessing game in category: the category exchange,
// then the hidden-subject commitment, then a save.
func (c *Controller) StartQuestions(ctx context.Context, category string) error {
	if c.variant != models.VariantQuestions {
		return fmt.Errorf("%w: controller runs %s", models.ErrWrongVariant, c.variant)
	}

	s := c.newSession()
	s.Category = category

	opening := prompts.CategoryCommitment(category, s.Progress.Limit)
	response, err := c.exchange(ctx, opening, s.History, "The host is thinking of something...")
	if err != nil {
		return err
	}
	s.AppendExchange(opening, response)

	commit := prompts.SubjectCommitment(category)
	response, err = c.exchange(ctx, commit, s.History, "The host is writing it down...")
	if err != nil {
		return err
	}
	secret := ExtractSecret(response)
	if secret == "" {
		c.logger.Warn("Commitment reply named no subject", zap.String("category", category))
		return models.ErrNoSubject
	}
	s.AppendExchange(commit, response)
	s.Secret = secret

	c.session = s
	c.transition(StateActivePlay)
	gamesStartedTotal.WithLabelValues(string(s.Variant)).Inc()
	c.log().Info("Guessing game started",
		zap.String("category", category),
		zap.Int("question_limit", s.Progress.Limit),
	)
	return c.Save()
}

// AskQuestion puts a yes/no question to the host and uses one question.
// With no questions left it does nothing and reports that a guess is required.
func (c *Controller) AskQuestion(ctx context.Context, question string) (QuestionResult, error) {
	s, err := c.active(models.VariantQuestions)
	if err != nil {
		return QuestionResult{}, err
	}
	if s.Progress.Exhausted() {
		c.log().Debug("Question refused, limit reached", zap.Int("asked", s.Progress.Asked))
		return QuestionResult{GuessRequired: true}, nil
	}

	prompt := prompts.Question(question, s.Progress.Asked+1, s.Progress.Limit)
	response, err := c.exchange(ctx, prompt, s.History, "The host is considering your question...")
	if err != nil {
		return QuestionResult{}, err
	}
	s.AppendExchange(prompt, response)
	s.Progress.Asked++
	turnsTotal.WithLabelValues(string(s.Variant), "question").Inc()

	result := QuestionResult{Answer: response, GuessRequired: s.Progress.Exhausted()}
	return result, c.Save()
}

// MakeGuess asks the host to judge guess. A guess made while questions remain
// uses one question. Once none remain the guess is final: a correct one wins,
// a wrong one is followed by the reveal. Either way the game ends.
func (c *Controller) MakeGuess(ctx context.Context, guess string) (GuessResult, error) {
	s, err := c.active(models.VariantQuestions)
	if err != nil {
		return GuessResult{}, err
	}
	if s.Progress.Exhausted() && s.GuessResolved() {
		// Final guess already judged, only the reveal is outstanding.
		reveal, err := c.Reveal(ctx)
		return GuessResult{Final: true, Reveal: reveal}, err
	}

	final := s.Progress.Exhausted()
	prompt := prompts.GuessJudgment(guess, final)
	response, err := c.exchange(ctx, prompt, s.History, "The host is checking your guess...")
	if err != nil {
		return GuessResult{}, err
	}
	s.AppendExchange(prompt, response)
	if !final {
		s.Progress.Asked++
	}
	turnsTotal.WithLabelValues(string(s.Variant), "guess").Inc()

	result := GuessResult{Judgment: response, Final: final, Correct: GuessIsCorrect(response, guess, s.Secret)}
	c.log().Info("Guess judged", zap.Bool("correct", result.Correct), zap.Bool("final", final))

	switch {
	case result.Correct:
		s.Resolve(guess, true)
		return result, c.finish(ctx)
	case final:
		s.Resolve(guess, false)
		if err := c.Save(); err != nil {
			return result, err
		}
		result.Reveal, err = c.Reveal(ctx)
		return result, err
	default:
		return result, c.Save()
	}
}

// Reveal asks the host to disclose the subject and ends the game.
func (c *Controller) Reveal(ctx context.Context) (string, error) {
	s, err := c.active(models.VariantQuestions)
	if err != nil {
		return "", err
	}

	prompt := prompts.Reveal()
	response, err := c.exchange(ctx, prompt, s.History, "The host is revealing the answer...")
	if err != nil {
		return "", err
	}
	s.AppendExchange(prompt, response)
	s.MarkRevealed()
	turnsTotal.WithLabelValues(string(s.Variant), "reveal").Inc()
	return response, c.finish(ctx)
}

func (c *Controller) setupQuestions(ctx context.Context) error {
	options := append(slices.Clone(models.Categories), randomCategory)
	i, err := c.ui.Choose("Choose a category", options, 0)
	if err != nil {
		return err
	}
	var category string
	if i >= 0 && i < len(models.Categories) {
		category = models.Categories[i]
	} else {
		category = models.Categories[c.rng.Intn(len(models.Categories))]
	}

	err = c.StartQuestions(ctx, category)
	if c.state != StateActivePlay {
		c.transition(StateMainMenu)
		return c.report(err)
	}

	c.ui.Notice(NoticeSuccess, fmt.Sprintf("The category is %s. You have %d questions.", category, c.session.Progress.Limit))
	if len(c.session.History) >= 2 {
		c.ui.Narrate("Host", c.session.History[1].Content)
	}
	return c.report(err)
}

func (c *Controller) playQuestions(ctx context.Context) error {
	s := c.session
	if s.Progress.Exhausted() {
		return c.forceFinalGuess(ctx)
	}

	c.ui.Status(fmt.Sprintf("Category: %s | Questions left: %d of %d", s.Category, s.Progress.Remaining(), s.Progress.Limit))
	choice, err := c.ui.Choose("What would you like to do?", questionActions, 0)
	if err != nil {
		return err
	}

	switch choice {
	case 0:
		question, err := c.ui.Ask("Your question", "")
		if err != nil {
			return err
		}
		if strings.TrimSpace(question) == "" {
			c.ui.Notice(NoticeWarning, "Ask a yes/no question.")
			return nil
		}
		result, err := c.AskQuestion(ctx, question)
		if result.Answer != "" {
			c.ui.Narrate("Host", result.Answer)
		}
		return c.report(err)

	case 1:
		guess, err := c.ui.Ask("Your guess", "")
		if err != nil {
			return err
		}
		if strings.TrimSpace(guess) == "" {
			return nil
		}
		return c.showGuess(c.MakeGuess(ctx, guess))

	case 2:
		reveal, err := c.Reveal(ctx)
		if reveal != "" {
			c.ui.Narrate("Host", reveal)
		}
		return c.report(err)

	case 3:
		c.ui.Narrate("Progress", transcript(s))

	case 4:
		if err := c.Save(); err != nil {
			return c.report(err)
		}
		c.ui.Notice(NoticeSuccess, "Game saved successfully!")

	default:
		c.ui.Notice(NoticeInfo, "Returning to main menu...")
		c.transition(StateMainMenu)
	}
	return nil
}

// forceFinalGuess is shown instead of the menu once no questions are left.
func (c *Controller) forceFinalGuess(ctx context.Context) error {
	s := c.session
	if s.GuessResolved() {
		return c.showGuess(c.MakeGuess(ctx, s.Flags.CurrentGuess))
	}

	c.ui.Notice(NoticeWarning, "No questions left. You must make your final guess.")
	guess, err := c.ui.Ask("Your final guess", "")
	if err != nil {
		return err
	}
	if strings.TrimSpace(guess) == "" {
		return nil
	}
	return c.showGuess(c.MakeGuess(ctx, guess))
}

func (c *Controller) showGuess(result GuessResult, err error) error {
	if result.Judgment != "" {
		c.ui.Narrate("Host", result.Judgment)
	}
	if result.Reveal != "" {
		c.ui.Narrate("Host", result.Reveal)
	}
	return c.report(err)
}

func (c *Controller) showOutcome() {
	s := c.session
	if s == nil || s.Variant != models.VariantQuestions {
		return
	}
	if s.Flags.HasWon {
		c.ui.Notice(NoticeSuccess, fmt.Sprintf("You got it in %d questions! It was %s.", s.Progress.Asked, s.Secret))
		return
	}
	c.ui.Notice(NoticeInfo, fmt.Sprintf("Game over. The answer was %s.", s.Secret))
}

// transcript lists the questions asked so far with their answers.
func transcript(s *models.Session) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Category: %s\nQuestions asked: %d of %d\n", s.Category, s.Progress.Asked, s.Progress.Limit)
	for i := questionSetupTurns; i+1 < len(s.History); i += 2 {
		question := s.History[i].Content
		if first, _, ok := strings.Cut(question, "\n"); ok {
			question = first
		}
		fmt.Fprintf(&b, "\n%s\n  %s", question, firstLine(s.History[i+1].Content))
	}
	return b.String()
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if first, _, ok := strings.Cut(s, "\n"); ok {
		return first
	}
	return s
}
