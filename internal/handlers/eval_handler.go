package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/moneyfornothin/taxchat/internal/interfaces"
)

const (
	defaultRecordLimit = 50
	maxRecordLimit     = 500
)

// EvalHandler exposes recorded chat turns for offline review
type EvalHandler struct {
	storage interfaces.EvalStorage
	logger  arbor.ILogger
}

// NewEvalHandler creates a new evaluation handler
func NewEvalHandler(storage interfaces.EvalStorage, logger arbor.ILogger) *EvalHandler {
	return &EvalHandler{
		storage: storage,
		logger:  logger,
	}
}

// RecordsHandler handles GET /api/eval/records requests. Records are
// returned newest first; ?limit= bounds the page size.
func (h *EvalHandler) RecordsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	limit := GetLimitParam(r, defaultRecordLimit, maxRecordLimit)

	records, err := h.storage.ListRecords(limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list evaluation records")
		WriteError(w, http.StatusInternalServerError, "Failed to list evaluation records")
		return
	}

	total, err := h.storage.CountRecords()
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to count evaluation records")
		WriteError(w, http.StatusInternalServerError, "Failed to count evaluation records")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"records": records,
		"total":   total,
	})
}
