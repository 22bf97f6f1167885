package chat

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/moneyfornothin/taxchat/internal/interfaces"
	"github.com/moneyfornothin/taxchat/internal/models"
)

// Retriever fetches context chunks from the corpus for a retrieval
// query. It never fails a chat turn: a store error degrades to an empty
// result, and an unknown category widens to the full corpus.
type Retriever struct {
	store  interfaces.ChunkStorage
	logger arbor.ILogger
}

// NewRetriever creates a retriever over the given chunk store.
func NewRetriever(store interfaces.ChunkStorage, logger arbor.ILogger) *Retriever {
	return &Retriever{
		store:  store,
		logger: logger,
	}
}

// Retrieve returns at most query.Limit chunks matching the query's
// category. Category models.CategoryAll, or any category not present in
// the corpus, matches every chunk.
func (r *Retriever) Retrieve(query models.RetrievalQuery) []*models.Chunk {
	if query.Limit <= 0 {
		return nil
	}

	category := r.resolveCategory(query.Category)

	chunks, err := r.store.Query(category, query.Limit)
	if err != nil {
		r.logger.Warn().Err(fmt.Errorf("%w: %v", ErrRetrievalUnavailable, err)).
			Str("category", category).
			Msg("Chunk retrieval failed, answering without context")
		return nil
	}

	if len(chunks) > query.Limit {
		chunks = chunks[:query.Limit]
	}

	r.logger.Debug().
		Str("category", category).
		Int("chunks", len(chunks)).
		Msg("Retrieved context chunks")
	return chunks
}

// resolveCategory maps unknown category values to models.CategoryAll so
// a stale or mistyped filter degrades to the whole corpus instead of
// returning nothing.
func (r *Retriever) resolveCategory(category string) string {
	if category == "" || category == models.CategoryAll {
		return models.CategoryAll
	}

	known, err := r.store.ListCategories()
	if err != nil {
		// The query itself will surface the store failure.
		return category
	}
	for _, c := range known {
		if c == category {
			return category
		}
	}

	r.logger.Warn().
		Str("category", category).
		Msg("Unknown category, widening to full corpus")
	return models.CategoryAll
}
