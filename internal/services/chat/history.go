package chat

import (
	"sync"

	"github.com/moneyfornothin/taxchat/internal/models"
)

// HistoryWindow is a bounded rolling buffer of prior conversation turns.
// A window configured for W exchanges retains at most 2*W turns; the
// oldest turns are discarded first. This bound is what keeps prompt size
// stable over a long conversation.
type HistoryWindow struct {
	mu       sync.Mutex
	turns    []models.Turn
	maxTurns int
}

// NewHistoryWindow creates a window retaining the last windowSize
// user+assistant exchanges. A non-positive size falls back to 1.
func NewHistoryWindow(windowSize int) *HistoryWindow {
	if windowSize <= 0 {
		windowSize = 1
	}
	return &HistoryWindow{
		maxTurns: 2 * windowSize,
	}
}

// Append adds a turn to the end, then trims from the front until the
// retention bound holds.
func (h *HistoryWindow) Append(turn models.Turn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.turns = append(h.turns, turn)
	if over := len(h.turns) - h.maxTurns; over > 0 {
		h.turns = append(h.turns[:0:0], h.turns[over:]...)
	}
}

// Snapshot returns a copy of the current ordered turn sequence, safe to
// hand to other pipeline stages.
func (h *HistoryWindow) Snapshot() []models.Turn {
	h.mu.Lock()
	defer h.mu.Unlock()

	snapshot := make([]models.Turn, len(h.turns))
	copy(snapshot, h.turns)
	return snapshot
}

// Len returns the number of retained turns.
func (h *HistoryWindow) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.turns)
}
