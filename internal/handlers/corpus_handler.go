package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/moneyfornothin/taxchat/internal/interfaces"
	"github.com/moneyfornothin/taxchat/internal/models"
)

// CorpusHandler exposes read-only views over the loaded chunk corpus
type CorpusHandler struct {
	store  interfaces.ChunkStorage
	logger arbor.ILogger
}

// NewCorpusHandler creates a new corpus handler
func NewCorpusHandler(store interfaces.ChunkStorage, logger arbor.ILogger) *CorpusHandler {
	return &CorpusHandler{
		store:  store,
		logger: logger,
	}
}

// StatsHandler handles GET /api/corpus/stats requests
func (h *CorpusHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	stats, err := h.store.Stats()
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to collect corpus stats")
		WriteError(w, http.StatusInternalServerError, "Failed to collect corpus stats")
		return
	}

	WriteJSON(w, http.StatusOK, stats)
}

// CategoriesHandler handles GET /api/corpus/categories requests.
// The wildcard value is prepended so clients can offer it as a filter choice.
func (h *CorpusHandler) CategoriesHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	categories, err := h.store.ListCategories()
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list categories")
		WriteError(w, http.StatusInternalServerError, "Failed to list categories")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"categories": append([]string{models.CategoryAll}, categories...),
	})
}

// DocumentsHandler handles GET /api/corpus/documents requests
func (h *CorpusHandler) DocumentsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	paths, err := h.store.ListSourcePaths()
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list source documents")
		WriteError(w, http.StatusInternalServerError, "Failed to list source documents")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"documents": paths,
		"count":     len(paths),
	})
}
