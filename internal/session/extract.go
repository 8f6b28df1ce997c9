package session

import (
	"strings"
	"unicode"

	"dungeon-master/internal/prompts"
)

// Fallbacks used when the opening reply does not name a field.
const (
	DefaultCampaign = "Mystical Adventure"
	DefaultLocation = "Starting Town"
	DefaultQuest    = "Find adventure"
)

// CampaignDetails are the headline fields of an adventure.
type CampaignDetails struct {
	Campaign string
	Location string
	Quest    string
}

// ExtractCampaign scans a campaign-opening reply for "Label: value" lines.
// The first non-empty value per field wins; missing fields get the defaults.
// This is best effort: the reply is free text.
func ExtractCampaign(response string) CampaignDetails {
	var d CampaignDetails
	for _, line := range strings.Split(response, "\n") {
		label, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		label = strings.ToLower(stripMarkup(label))
		value = stripMarkup(value)
		if value == "" {
			continue
		}
		switch {
		case strings.Contains(label, "location"):
			d.Location = firstNonEmpty(d.Location, value)
		case strings.Contains(label, "quest"), strings.Contains(label, "hook"):
			d.Quest = firstNonEmpty(d.Quest, value)
		case strings.Contains(label, "campaign"), strings.Contains(label, "adventure"):
			d.Campaign = firstNonEmpty(d.Campaign, value)
		}
	}
	d.Campaign = firstNonEmpty(d.Campaign, DefaultCampaign)
	d.Location = firstNonEmpty(d.Location, DefaultLocation)
	d.Quest = firstNonEmpty(d.Quest, DefaultQuest)
	return d
}

// ExtractSecret reads the hidden subject from the commitment reply.
// It returns "" when the reply names nothing.
func ExtractSecret(response string) string {
	for _, line := range strings.Split(response, "\n") {
		line = stripMarkup(line)
		if line == "" {
			continue
		}
		if _, after, ok := strings.Cut(line, ":"); ok && stripMarkup(after) != "" {
			line = stripMarkup(after)
		}
		return strings.TrimRight(line, ".!")
	}
	return ""
}

// GuessIsCorrect decides a guess from the host's verdict, falling back to a
// local comparison with the committed secret.
func GuessIsCorrect(response, guess, secret string) bool {
	verdict := strings.ToUpper(strings.TrimLeftFunc(response, func(r rune) bool {
		return !unicode.IsLetter(r)
	}))
	if strings.HasPrefix(verdict, prompts.GuessVerdictCorrect) {
		return true
	}
	g, s := normalizeSubject(guess), normalizeSubject(secret)
	return g != "" && g == s
}

func normalizeSubject(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, article := range []string{"a ", "an ", "the "} {
		s = strings.TrimPrefix(s, article)
	}
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func stripMarkup(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "#*_>-• ")
	s = strings.TrimRight(s, "*_ ")
	s = strings.Trim(s, "\"'`")
	return strings.TrimSpace(s)
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
