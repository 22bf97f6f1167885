package common

import (
	"github.com/google/uuid"
)

// NewChunkID generates a unique chunk ID with the "chunk_" prefix
func NewChunkID() string {
	return "chunk_" + uuid.New().String()
}

// NewRecordID generates a unique evaluation record ID with the "rec_" prefix
func NewRecordID() string {
	return "rec_" + uuid.New().String()
}

// NewSessionID generates a unique conversation session ID
func NewSessionID() string {
	return "session_" + uuid.New().String()
}
