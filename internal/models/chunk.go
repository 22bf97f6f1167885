package models

import "time"

// CategoryAll is the wildcard category filter value. A retrieval query
// carrying this value matches chunks from every category.
const CategoryAll = "ALL"

// Chunk represents a pre-segmented excerpt of a source document stored
// for retrieval. Chunks are immutable once loaded into the store.
type Chunk struct {
	// Identity
	ID string `json:"id" toml:"id" yaml:"id"` // chunk_<uuid>, generated when absent

	// Content
	Text string `json:"text" toml:"text" yaml:"text"`

	// Provenance
	SourcePath string `json:"source_path" toml:"source_path" yaml:"source_path"` // relative path of the source document
	Category   string `json:"category" toml:"category" yaml:"category"`          // coarse topical label, exact-match filter

	// Timestamps
	CreatedAt time.Time `json:"created_at" toml:"-" yaml:"-"`
	UpdatedAt time.Time `json:"updated_at" toml:"-" yaml:"-"`
}

// RetrievalQuery describes a single bounded lookup against the chunk
// store. Constructed per turn, never persisted.
type RetrievalQuery struct {
	Text     string `json:"text"`
	Category string `json:"category"` // CategoryAll or an exact category value
	Limit    int    `json:"limit"`    // > 0
}

// CorpusStats summarizes the loaded chunk corpus.
type CorpusStats struct {
	TotalChunks        int            `json:"total_chunks"`
	ChunksByCategory   map[string]int `json:"chunks_by_category"`
	DistinctDocuments  int            `json:"distinct_documents"`
	AverageChunkLength int            `json:"average_chunk_length"`
	LastUpdated        time.Time      `json:"last_updated"`
}
