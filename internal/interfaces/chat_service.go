package interfaces

import "context"

// ChatRequest represents one user question plus optional per-request
// overrides of the configured defaults.
type ChatRequest struct {
	// Conversation identifier. Each session owns an independent history
	// window; an empty ID addresses the default session.
	SessionID string `json:"session_id,omitempty"`

	// User's question
	Question string `json:"question"`

	// Model tier override ("small", "large", "large2"). Unknown values
	// fall back to the configured default tier.
	Model string `json:"model,omitempty"`

	// Category filter override. Unknown categories are treated as ALL.
	Category string `json:"category,omitempty"`

	// Context usage override. Nil means use the configured default.
	// When false, both retrieval and source-document display are skipped.
	UseContext *bool `json:"use_context,omitempty"`
}

// ChatResponse represents the answer to a chat request.
type ChatResponse struct {
	Answer string `json:"answer"`

	// Distinct source document paths of the chunks the answer was
	// grounded on. Empty when context was disabled or unavailable.
	SourceDocuments []string `json:"source_documents,omitempty"`

	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// ChatService answers questions over the chunk corpus, maintaining a
// bounded per-session conversation history.
type ChatService interface {
	// Chat resolves one question fully before returning. External
	// failures degrade rather than propagate: retrieval errors produce a
	// context-free answer, completion errors produce a fixed apology.
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

	// Reset discards the history window of the given session.
	Reset(sessionID string)

	// HealthCheck verifies the chat pipeline is operational.
	HealthCheck(ctx context.Context) error
}
