package chat

import "errors"

// Pipeline error kinds. Every kind has a defined degraded fallback: no
// failure in this pipeline is fatal to the overall process.
var (
	// ErrRetrievalUnavailable: chunk store lookup failed; the turn
	// proceeds with a context-free prompt.
	ErrRetrievalUnavailable = errors.New("retrieval unavailable")

	// ErrRewriteFailed: history condensation failed; retrieval falls back
	// to the raw question.
	ErrRewriteFailed = errors.New("query rewrite failed")

	// ErrCompletionUnavailable: completion call failed or timed out; the
	// caller receives the fixed apology message and history is untouched.
	ErrCompletionUnavailable = errors.New("completion unavailable")
)

// ApologyMessage is returned verbatim when the completion service fails.
const ApologyMessage = "Sorry, there was an error processing your question."
