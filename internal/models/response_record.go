package models

import "time"

// ResponseRecord captures one resolved turn for evaluation. Records are
// read-only once emitted; the evaluation store owns them.
type ResponseRecord struct {
	ID        string `json:"id"` // rec_<uuid>
	SessionID string `json:"session_id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`

	// Context the answer was grounded on
	ContextChunks []Chunk  `json:"context_chunks,omitempty"`
	SourcePaths   []string `json:"source_paths,omitempty"`

	// Generation metadata
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Category string `json:"category"`
	Rewrote  bool   `json:"rewrote"` // history-condensed query was used for retrieval

	CreatedAt time.Time `json:"created_at"`
}
