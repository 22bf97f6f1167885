package models

// Turn roles. A conversation alternates user and assistant turns.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single utterance in a conversation. Immutable once created;
// owned exclusively by the history window that recorded it.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
