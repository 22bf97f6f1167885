package chat

import (
	"fmt"
	"testing"

	"github.com/moneyfornothin/taxchat/internal/models"
)

func TestHistoryWindow_RetainsAtMostTwiceWindowSize(t *testing.T) {
	const windowSize = 3
	h := NewHistoryWindow(windowSize)

	for i := 0; i < 10; i++ {
		h.Append(models.Turn{Role: models.RoleUser, Content: fmt.Sprintf("q%d", i)})
		h.Append(models.Turn{Role: models.RoleAssistant, Content: fmt.Sprintf("a%d", i)})
	}

	if h.Len() != 2*windowSize {
		t.Fatalf("Expected %d turns, got %d", 2*windowSize, h.Len())
	}

	turns := h.Snapshot()
	// Oldest retained exchange should be the 8th (index 7)
	if turns[0].Content != "q7" {
		t.Errorf("Expected oldest retained turn q7, got %s", turns[0].Content)
	}
	if turns[len(turns)-1].Content != "a9" {
		t.Errorf("Expected newest turn a9, got %s", turns[len(turns)-1].Content)
	}
}

func TestHistoryWindow_PreservesOrder(t *testing.T) {
	h := NewHistoryWindow(5)
	h.Append(models.Turn{Role: models.RoleUser, Content: "first"})
	h.Append(models.Turn{Role: models.RoleAssistant, Content: "second"})
	h.Append(models.Turn{Role: models.RoleUser, Content: "third"})

	turns := h.Snapshot()
	if len(turns) != 3 {
		t.Fatalf("Expected 3 turns, got %d", len(turns))
	}
	for i, want := range []string{"first", "second", "third"} {
		if turns[i].Content != want {
			t.Errorf("Turn %d: expected %q, got %q", i, want, turns[i].Content)
		}
	}
}

func TestHistoryWindow_SnapshotIsACopy(t *testing.T) {
	h := NewHistoryWindow(2)
	h.Append(models.Turn{Role: models.RoleUser, Content: "original"})

	snapshot := h.Snapshot()
	snapshot[0].Content = "mutated"

	if got := h.Snapshot()[0].Content; got != "original" {
		t.Errorf("Snapshot mutation leaked into window: got %q", got)
	}
}

func TestHistoryWindow_NonPositiveSizeFallsBackToOne(t *testing.T) {
	h := NewHistoryWindow(0)
	for i := 0; i < 5; i++ {
		h.Append(models.Turn{Role: models.RoleUser, Content: "x"})
	}
	if h.Len() != 2 {
		t.Errorf("Expected 2 retained turns for fallback window, got %d", h.Len())
	}
}
