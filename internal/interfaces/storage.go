package interfaces

import (
	"github.com/moneyfornothin/taxchat/internal/models"
)

// ChunkStorage is the chunk corpus boundary. Queries are parameterized:
// the category value is matched by exact equality inside the store, never
// interpolated into a query string.
type ChunkStorage interface {
	// SaveChunk inserts or replaces a chunk.
	SaveChunk(chunk *models.Chunk) error

	// SaveChunks inserts or replaces a batch of chunks.
	SaveChunks(chunks []*models.Chunk) error

	// Query returns up to limit chunks. Category models.CategoryAll
	// matches every category; any other value is an exact-equality
	// filter. Result order is the store's own ranking.
	Query(category string, limit int) ([]*models.Chunk, error)

	// ListCategories returns the distinct category values in the corpus.
	ListCategories() ([]string, error)

	// ListSourcePaths returns the distinct source document paths.
	ListSourcePaths() ([]string, error)

	// Stats summarizes the corpus.
	Stats() (*models.CorpusStats, error)

	// Count returns the number of stored chunks.
	Count() (int, error)
}

// EvalStorage persists evaluation records.
type EvalStorage interface {
	SaveRecord(record *models.ResponseRecord) error
	ListRecords(limit int) ([]*models.ResponseRecord, error)
	CountRecords() (int, error)
}

// StorageManager provides access to all storage implementations.
type StorageManager interface {
	ChunkStorage() ChunkStorage
	EvalStorage() EvalStorage
	Close() error
}
