package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/moneyfornothin/taxchat/internal/common"
	"github.com/moneyfornothin/taxchat/internal/interfaces"
	"github.com/moneyfornothin/taxchat/internal/models"
)

// mockCompletion implements interfaces.CompletionService for testing
type mockCompletion struct {
	completeFunc  func(ctx context.Context, tier interfaces.ModelTier, prompt string) (string, error)
	completeCalls int
}

func (m *mockCompletion) Complete(ctx context.Context, tier interfaces.ModelTier, prompt string) (string, error) {
	m.completeCalls++
	if m.completeFunc != nil {
		return m.completeFunc(ctx, tier, prompt)
	}
	return "answer", nil
}

func (m *mockCompletion) Provider() string { return "mock" }
func (m *mockCompletion) ModelName(tier interfaces.ModelTier) string {
	return "mock-" + string(tier)
}
func (m *mockCompletion) HealthCheck(ctx context.Context) error { return nil }
func (m *mockCompletion) Close() error                          { return nil }

func TestQueryRewriter_EmptyHistorySkipsCompletion(t *testing.T) {
	completion := &mockCompletion{}
	r := NewQueryRewriter(completion, interfaces.TierSmall, common.GetLogger())

	query, rewrote := r.Rewrite(context.Background(), "What is the EITC?", nil)

	if query != "What is the EITC?" {
		t.Errorf("Expected raw question, got %q", query)
	}
	if rewrote {
		t.Error("Expected no rewrite for empty history")
	}
	if completion.completeCalls != 0 {
		t.Errorf("Expected no completion calls, got %d", completion.completeCalls)
	}
}

func TestQueryRewriter_CondensesWithHistory(t *testing.T) {
	completion := &mockCompletion{
		completeFunc: func(ctx context.Context, tier interfaces.ModelTier, prompt string) (string, error) {
			if !strings.Contains(prompt, "CONVERSATION:") {
				t.Error("Expected condense prompt to include conversation")
			}
			if !strings.Contains(prompt, "What about married couples?") {
				t.Error("Expected condense prompt to include the new question")
			}
			return "  standard deduction for married filing jointly\n", nil
		},
	}
	r := NewQueryRewriter(completion, interfaces.TierSmall, common.GetLogger())

	history := []models.Turn{
		{Role: models.RoleUser, Content: "What is the standard deduction?"},
		{Role: models.RoleAssistant, Content: "It depends on filing status."},
	}
	query, rewrote := r.Rewrite(context.Background(), "What about married couples?", history)

	if !rewrote {
		t.Error("Expected a rewrite with non-empty history")
	}
	if query != "standard deduction for married filing jointly" {
		t.Errorf("Expected trimmed rewritten query, got %q", query)
	}
}

func TestQueryRewriter_FallsBackOnError(t *testing.T) {
	completion := &mockCompletion{
		completeFunc: func(ctx context.Context, tier interfaces.ModelTier, prompt string) (string, error) {
			return "", errors.New("endpoint down")
		},
	}
	r := NewQueryRewriter(completion, interfaces.TierSmall, common.GetLogger())

	history := []models.Turn{{Role: models.RoleUser, Content: "prior question"}}
	query, rewrote := r.Rewrite(context.Background(), "follow-up", history)

	if query != "follow-up" {
		t.Errorf("Expected raw question fallback, got %q", query)
	}
	if rewrote {
		t.Error("Expected rewrote=false on completion error")
	}
}

func TestQueryRewriter_FallsBackOnEmptyResult(t *testing.T) {
	completion := &mockCompletion{
		completeFunc: func(ctx context.Context, tier interfaces.ModelTier, prompt string) (string, error) {
			return "   \n", nil
		},
	}
	r := NewQueryRewriter(completion, interfaces.TierSmall, common.GetLogger())

	history := []models.Turn{{Role: models.RoleUser, Content: "prior question"}}
	query, rewrote := r.Rewrite(context.Background(), "follow-up", history)

	if query != "follow-up" || rewrote {
		t.Errorf("Expected fallback to raw question, got %q (rewrote=%v)", query, rewrote)
	}
}
