package badger

import (
	"fmt"
	"sort"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/moneyfornothin/taxchat/internal/common"
	"github.com/moneyfornothin/taxchat/internal/interfaces"
	"github.com/moneyfornothin/taxchat/internal/models"
)

// ChunkStorage implements the ChunkStorage interface for Badger.
// Category filtering uses badgerhold equality predicates only; a caller
// value is never assembled into a query string.
type ChunkStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewChunkStorage creates a new ChunkStorage instance
func NewChunkStorage(db *BadgerDB, logger arbor.ILogger) interfaces.ChunkStorage {
	return &ChunkStorage{
		db:     db,
		logger: logger,
	}
}

func (s *ChunkStorage) SaveChunk(chunk *models.Chunk) error {
	if chunk.Text == "" {
		return fmt.Errorf("chunk text is required")
	}
	if chunk.ID == "" {
		chunk.ID = common.NewChunkID()
	}

	now := time.Now()
	if chunk.CreatedAt.IsZero() {
		chunk.CreatedAt = now
	}
	chunk.UpdatedAt = now

	if err := s.db.Store().Upsert(chunk.ID, chunk); err != nil {
		return fmt.Errorf("failed to save chunk: %w", err)
	}
	return nil
}

func (s *ChunkStorage) SaveChunks(chunks []*models.Chunk) error {
	for _, chunk := range chunks {
		if err := s.SaveChunk(chunk); err != nil {
			return err
		}
	}
	return nil
}

// Query returns up to limit chunks, filtered by exact category equality
// unless the wildcard is given. Result order is badgerhold's key order,
// which is this store's implementation-defined ranking.
func (s *ChunkStorage) Query(category string, limit int) ([]*models.Chunk, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than 0, got %d", limit)
	}

	query := badgerhold.Where("ID").Ne("") // Select all
	if category != models.CategoryAll {
		query = badgerhold.Where("Category").Eq(category)
	}

	var chunks []models.Chunk
	if err := s.db.Store().Find(&chunks, query.Limit(limit)); err != nil {
		return nil, fmt.Errorf("chunk query failed: %w", err)
	}

	result := make([]*models.Chunk, len(chunks))
	for i := range chunks {
		result[i] = &chunks[i]
	}
	return result, nil
}

// ListCategories returns the distinct category values in the corpus,
// sorted for stable display.
func (s *ChunkStorage) ListCategories() ([]string, error) {
	var chunks []models.Chunk
	if err := s.db.Store().Find(&chunks, nil); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	seen := make(map[string]struct{}, len(chunks))
	categories := []string{}
	for _, chunk := range chunks {
		if chunk.Category == "" {
			continue
		}
		if _, ok := seen[chunk.Category]; ok {
			continue
		}
		seen[chunk.Category] = struct{}{}
		categories = append(categories, chunk.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

// ListSourcePaths returns the distinct source document paths, sorted.
func (s *ChunkStorage) ListSourcePaths() ([]string, error) {
	var chunks []models.Chunk
	if err := s.db.Store().Find(&chunks, nil); err != nil {
		return nil, fmt.Errorf("failed to list source paths: %w", err)
	}

	seen := make(map[string]struct{}, len(chunks))
	paths := []string{}
	for _, chunk := range chunks {
		if chunk.SourcePath == "" {
			continue
		}
		if _, ok := seen[chunk.SourcePath]; ok {
			continue
		}
		seen[chunk.SourcePath] = struct{}{}
		paths = append(paths, chunk.SourcePath)
	}
	sort.Strings(paths)
	return paths, nil
}

// Stats summarizes the corpus in a single pass.
func (s *ChunkStorage) Stats() (*models.CorpusStats, error) {
	var chunks []models.Chunk
	if err := s.db.Store().Find(&chunks, nil); err != nil {
		return nil, fmt.Errorf("failed to collect corpus stats: %w", err)
	}

	stats := &models.CorpusStats{
		TotalChunks:      len(chunks),
		ChunksByCategory: make(map[string]int),
		LastUpdated:      time.Now().UTC(),
	}

	docs := make(map[string]struct{})
	totalLength := 0
	for _, chunk := range chunks {
		stats.ChunksByCategory[chunk.Category]++
		totalLength += len(chunk.Text)
		if chunk.SourcePath != "" {
			docs[chunk.SourcePath] = struct{}{}
		}
	}
	stats.DistinctDocuments = len(docs)
	if len(chunks) > 0 {
		stats.AverageChunkLength = totalLength / len(chunks)
	}

	return stats, nil
}

func (s *ChunkStorage) Count() (int, error) {
	count, err := s.db.Store().Count(&models.Chunk{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}
	return int(count), nil
}
