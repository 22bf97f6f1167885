package summary

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/moneyfornothin/taxchat/internal/interfaces"
	"github.com/moneyfornothin/taxchat/internal/models"
)

// SummaryChunkID is the well-known identifier of the corpus summary
// chunk. Regeneration upserts by this ID so the corpus always holds at
// most one summary.
const SummaryChunkID = "chunk_corpus-summary"

// summaryCategory keeps the summary retrievable under every filter that
// widens to ALL while staying out of narrow per-topic queries.
const summaryCategory = "general"

// Service generates and maintains a summary chunk describing the corpus
// itself. The summary is stored alongside the document chunks, so the
// pipeline can answer questions like "how many documents are loaded".
type Service struct {
	store  interfaces.ChunkStorage
	logger arbor.ILogger
}

// NewService creates a corpus summary service.
func NewService(store interfaces.ChunkStorage, logger arbor.ILogger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// GenerateSummaryChunk creates or refreshes the corpus summary chunk
// from current store statistics.
func (s *Service) GenerateSummaryChunk(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.logger.Info().Msg("Generating corpus summary chunk")

	stats, err := s.store.Stats()
	if err != nil {
		return fmt.Errorf("failed to collect corpus statistics: %w", err)
	}

	now := time.Now().UTC()
	chunk := &models.Chunk{
		ID:         SummaryChunkID,
		Text:       buildSummaryText(stats, now),
		SourcePath: "system/corpus-summary",
		Category:   summaryCategory,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.store.SaveChunk(chunk); err != nil {
		return fmt.Errorf("failed to save summary chunk: %w", err)
	}

	s.logger.Info().
		Int("total_chunks", stats.TotalChunks).
		Int("distinct_documents", stats.DistinctDocuments).
		Msg("Corpus summary chunk updated")
	return nil
}

func buildSummaryText(stats *models.CorpusStats, now time.Time) string {
	categories := make([]string, 0, len(stats.ChunksByCategory))
	for category := range stats.ChunksByCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var breakdown strings.Builder
	for _, category := range categories {
		fmt.Fprintf(&breakdown, "- %s: %d chunks\n", category, stats.ChunksByCategory[category])
	}

	return fmt.Sprintf(`TAX DOCUMENT CORPUS SUMMARY

This chunk describes the loaded IRS document corpus. It is regenerated
automatically so questions about the knowledge base itself can be
answered from context.

Last Updated: %s

CORPUS STATISTICS:
- Total Chunks: %d
- Distinct Source Documents: %d
- Average Chunk Length: %d characters

CATEGORY BREAKDOWN:
%s
Questions this data answers:
- "How many documents are loaded?"
- "What tax topics are covered?"
- "How large is the knowledge base?"
`,
		now.Format(time.RFC3339),
		stats.TotalChunks,
		stats.DistinctDocuments,
		stats.AverageChunkLength,
		breakdown.String(),
	)
}
