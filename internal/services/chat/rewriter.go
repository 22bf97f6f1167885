package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/moneyfornothin/taxchat/internal/interfaces"
	"github.com/moneyfornothin/taxchat/internal/models"
)

// QueryRewriter condenses a follow-up question plus the conversation so
// far into a single self-contained retrieval query. Rewriting only
// happens when history exists; the first question of a session is always
// used verbatim. On any completion failure the raw question is used
// instead, so a broken rewriter never blocks retrieval.
type QueryRewriter struct {
	completion interfaces.CompletionService
	tier       interfaces.ModelTier
	logger     arbor.ILogger
}

// NewQueryRewriter creates a rewriter using the given completion tier.
func NewQueryRewriter(completion interfaces.CompletionService, tier interfaces.ModelTier, logger arbor.ILogger) *QueryRewriter {
	return &QueryRewriter{
		completion: completion,
		tier:       tier,
		logger:     logger,
	}
}

// Rewrite returns the retrieval query for a question. The second return
// reports whether a rewrite actually happened.
func (r *QueryRewriter) Rewrite(ctx context.Context, question string, history []models.Turn) (string, bool) {
	if len(history) == 0 {
		return question, false
	}

	prompt := buildCondensePrompt(question, history)

	rewritten, err := r.completion.Complete(ctx, r.tier, prompt)
	if err != nil {
		r.logger.Warn().Err(fmt.Errorf("%w: %v", ErrRewriteFailed, err)).
			Msg("Falling back to raw question for retrieval")
		return question, false
	}

	rewritten = strings.TrimSpace(rewritten)
	if rewritten == "" {
		r.logger.Warn().Msg("Rewrite produced empty query, falling back to raw question")
		return question, false
	}

	r.logger.Debug().
		Str("original", question).
		Str("rewritten", rewritten).
		Msg("Condensed question into retrieval query")
	return rewritten, true
}

func buildCondensePrompt(question string, history []models.Turn) string {
	var b strings.Builder

	b.WriteString("CONVERSATION:\n")
	for _, turn := range history {
		b.WriteString(turn.Role)
		b.WriteString(": ")
		b.WriteString(turn.Content)
		b.WriteString("\n")
	}
	b.WriteString("\nQUESTION:\n")
	b.WriteString(question)
	b.WriteString("\n\n")
	b.WriteString(condenseInstruction)
	return b.String()
}
