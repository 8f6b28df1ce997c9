package prompts

import (
	"fmt"
	"strings"
)

// GuessVerdictCorrect and GuessVerdictIncorrect open every guess judgment.
const (
	GuessVerdictCorrect   = "CORRECT"
	GuessVerdictIncorrect = "INCORRECT"
)

// CategoryCommitment opens a guessing game in the chosen category.
func CategoryCommitment(category string, limit int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Let's play Twenty Questions. The category is: %s.\n", category)
	fmt.Fprintf(&b, "Think of one well-known %s and keep it fixed for the whole game. ", strings.ToLower(category))
	fmt.Fprintf(&b, "I have %d yes/no questions to find it.\n", limit)
	b.WriteString("Do not tell me what it is. Greet me and tell me you are ready.")
	return b.String()
}

// SubjectCommitment asks the host to write down the hidden subject so it stays fixed.
// The reply is stored as the secret and never shown to the player.
func SubjectCommitment(category string) string {
	return fmt.Sprintf("For the game record only: reply with the name of the %s you chose, "+
		"on a single line, with no other words or punctuation. The player will not see this reply.",
		strings.ToLower(category))
}

// Question asks the host to answer question number n of limit.
func Question(question string, n, limit int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question %d of %d: %s\n\n", n, limit, question)
	b.WriteString("Answer truthfully about your secret subject. Start with Yes, No or Sometimes, ")
	b.WriteString("then add at most one short sentence. Do not reveal the subject.")
	return b.String()
}

// GuessJudgment asks the host to judge a guess. A final guess ends the game either way.
func GuessJudgment(guess string, final bool) string {
	var b strings.Builder
	if final {
		b.WriteString("No questions are left. This is my final guess.\n")
	}
	fmt.Fprintf(&b, "My guess is: %s\n\n", guess)
	fmt.Fprintf(&b, "Begin your reply with exactly %s if this matches your secret subject (synonyms count), "+
		"or exactly %s if it does not, then add one short sentence. ", GuessVerdictCorrect, GuessVerdictIncorrect)
	b.WriteString("If it is incorrect, do not reveal the subject.")
	return b.String()
}

// Reveal ends the game and asks the host to disclose the subject.
func Reveal() string {
	return "The game is over. Reveal your secret subject and briefly point out the two answers " +
		"that were the most useful clues."
}
