package eval

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/moneyfornothin/taxchat/internal/interfaces"
	"github.com/moneyfornothin/taxchat/internal/models"
)

// Recorder persists resolved chat turns for offline evaluation. It is
// the storage-backed Evaluator implementation; callers treat recording
// as fire-and-forget and only log the returned error.
type Recorder struct {
	storage interfaces.EvalStorage
	logger  arbor.ILogger
}

// NewRecorder creates a recorder over the given evaluation store.
func NewRecorder(storage interfaces.EvalStorage, logger arbor.ILogger) *Recorder {
	return &Recorder{
		storage: storage,
		logger:  logger,
	}
}

// Record persists one response record. The store assigns the record ID
// and timestamp when absent.
func (r *Recorder) Record(ctx context.Context, record *models.ResponseRecord) error {
	if record == nil {
		return fmt.Errorf("record is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := r.storage.SaveRecord(record); err != nil {
		return fmt.Errorf("failed to save response record: %w", err)
	}

	r.logger.Debug().
		Str("record_id", record.ID).
		Str("session_id", record.SessionID).
		Int("context_chunks", len(record.ContextChunks)).
		Msg("Recorded response for evaluation")
	return nil
}
