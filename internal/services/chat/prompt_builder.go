package chat

import (
	"strings"

	"github.com/moneyfornothin/taxchat/internal/models"
)

// BuildPrompt assembles the completion prompt for a question and the
// retrieved context chunks. The assembly is deterministic: the same
// question and chunk sequence always produce the same prompt text.
//
// With chunks present the prompt carries a CONTEXT section with each
// chunk's text exactly once, in retrieval order, separated so chunk
// boundaries stay visible to the model. With no chunks the context
// section is omitted entirely and the instruction block drops the
// context-dependent rules.
func BuildPrompt(question string, chunks []*models.Chunk) string {
	var b strings.Builder

	b.WriteString(expertPreamble)
	b.WriteString("\n\n")

	if len(chunks) > 0 {
		b.WriteString(contextIntro)
		b.WriteString("\n\nCONTEXT:\n")
		for i, chunk := range chunks {
			if i > 0 {
				b.WriteString(chunkSeparator)
			}
			b.WriteString(chunk.Text)
		}
		b.WriteString("\n\nQUESTION:\n")
		b.WriteString(question)
		b.WriteString("\n\n")
		b.WriteString(contextInstructions)
	} else {
		b.WriteString("QUESTION:\n")
		b.WriteString(question)
		b.WriteString("\n\n")
		b.WriteString(bareInstructions)
	}

	b.WriteString("\n\nAnswer:")
	return b.String()
}
