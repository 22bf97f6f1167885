package chat

import (
	"strings"
	"testing"

	"github.com/moneyfornothin/taxchat/internal/models"
)

func TestBuildPrompt_WithChunks(t *testing.T) {
	chunks := []*models.Chunk{
		{ID: "chunk_1", Text: "Standard deduction rules."},
		{ID: "chunk_2", Text: "Filing thresholds by status."},
	}

	prompt := BuildPrompt("What is the standard deduction?", chunks)

	if !strings.Contains(prompt, "CONTEXT:") {
		t.Error("Expected CONTEXT section when chunks are present")
	}
	if !strings.Contains(prompt, "QUESTION:\nWhat is the standard deduction?") {
		t.Error("Expected question section with verbatim question")
	}
	if !strings.HasSuffix(prompt, "Answer:") {
		t.Error("Expected prompt to end with Answer:")
	}

	for _, chunk := range chunks {
		if got := strings.Count(prompt, chunk.Text); got != 1 {
			t.Errorf("Expected chunk %s text exactly once, got %d", chunk.ID, got)
		}
	}
	if !strings.Contains(prompt, chunks[0].Text+chunkSeparator+chunks[1].Text) {
		t.Error("Expected chunks joined in retrieval order with separator")
	}
}

func TestBuildPrompt_WithoutChunks(t *testing.T) {
	prompt := BuildPrompt("Do I need to file?", nil)

	if strings.Contains(prompt, "CONTEXT:") {
		t.Error("Expected no CONTEXT section for empty chunk set")
	}
	if strings.Contains(prompt, contextIntro) {
		t.Error("Expected context intro omitted for empty chunk set")
	}
	if !strings.Contains(prompt, "QUESTION:\nDo I need to file?") {
		t.Error("Expected question section")
	}
	if !strings.Contains(prompt, expertPreamble) {
		t.Error("Expected expert preamble")
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	chunks := []*models.Chunk{
		{ID: "chunk_1", Text: "alpha"},
		{ID: "chunk_2", Text: "beta"},
	}

	first := BuildPrompt("same question", chunks)
	second := BuildPrompt("same question", chunks)

	if first != second {
		t.Error("Expected identical prompts for identical inputs")
	}
}
