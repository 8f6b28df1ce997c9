package models

// Role is the author of a history entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one role-tagged message of the conversation history.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// UserTurn returns a user turn with the given content.
func UserTurn(content string) Turn {
	return Turn{Role: RoleUser, Content: content}
}

// AssistantTurn returns an assistant turn with the given content.
func AssistantTurn(content string) Turn {
	return Turn{Role: RoleAssistant, Content: content}
}

// ValidHistory reports whether history alternates user/assistant from index 0
// and ends on an assistant turn.
func ValidHistory(history []Turn) bool {
	if len(history)%2 != 0 {
		return false
	}
	for i, t := range history {
		want := RoleUser
		if i%2 == 1 {
			want = RoleAssistant
		}
		if t.Role != want {
			return false
		}
	}
	return true
}
