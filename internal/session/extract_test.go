package session_test

import (
	"testing"

	"dungeon-master/internal/session"

	"github.com/stretchr/testify/assert"
)

func TestExtractCampaign(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     session.CampaignDetails
	}{
		{
			name:     "plain labels",
			response: "Campaign: The Sunken Crown\nLocation: Saltmarsh\nQuest: Recover the crown",
			want:     session.CampaignDetails{Campaign: "The Sunken Crown", Location: "Saltmarsh", Quest: "Recover the crown"},
		},
		{
			name:     "markdown headers",
			response: "## **Campaign:** Ashes of Vel\n* **Starting Location:** Greywater\n- **Quest Hook:** Find the lost heir",
			want:     session.CampaignDetails{Campaign: "Ashes of Vel", Location: "Greywater", Quest: "Find the lost heir"},
		},
		{
			name:     "first value wins",
			response: "Adventure: First\nCampaign: Second\nLocation: Here",
			want:     session.CampaignDetails{Campaign: "First", Location: "Here", Quest: session.DefaultQuest},
		},
		{
			name:     "empty values are skipped",
			response: "Campaign:\nCampaign: Late Title",
			want:     session.CampaignDetails{Campaign: "Late Title", Location: session.DefaultLocation, Quest: session.DefaultQuest},
		},
		{
			name:     "free prose falls back to defaults",
			response: "The rain falls on a quiet village.",
			want:     session.CampaignDetails{Campaign: session.DefaultCampaign, Location: session.DefaultLocation, Quest: session.DefaultQuest},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, session.ExtractCampaign(tt.response))
		})
	}
}

func TestExtractSecret(t *testing.T) {
	tests := map[string]string{
		"Octopus":                 "Octopus",
		"  **Lighthouse**  ":      "Lighthouse",
		"\n\nSecret: Fire truck.": "Fire truck",
		"\"Banana\"":              "Banana",
		"***":                     "",
		"":                        "",
	}
	for in, want := range tests {
		assert.Equal(t, want, session.ExtractSecret(in), "input %q", in)
	}
}

func TestGuessIsCorrect(t *testing.T) {
	tests := []struct {
		name     string
		response string
		guess    string
		secret   string
		want     bool
	}{
		{"host says correct", "CORRECT! Well played.", "cephalopod", "Octopus", true},
		{"case and markup", "**Correct**, it is.", "x", "Octopus", true},
		{"host says incorrect", "INCORRECT. Keep trying.", "squid", "Octopus", false},
		{"local match with article", "Hmm, let me think.", "an octopus", "Octopus", true},
		{"empty guess", "No.", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, session.GuessIsCorrect(tt.response, tt.guess, tt.secret))
		})
	}
}
