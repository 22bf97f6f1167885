package badger

import (
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/moneyfornothin/taxchat/internal/common"
	"github.com/moneyfornothin/taxchat/internal/interfaces"
	"github.com/moneyfornothin/taxchat/internal/models"
)

// EvalStorage implements the EvalStorage interface for Badger
type EvalStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewEvalStorage creates a new EvalStorage instance
func NewEvalStorage(db *BadgerDB, logger arbor.ILogger) interfaces.EvalStorage {
	return &EvalStorage{
		db:     db,
		logger: logger,
	}
}

func (s *EvalStorage) SaveRecord(record *models.ResponseRecord) error {
	if record.ID == "" {
		record.ID = common.NewRecordID()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	if err := s.db.Store().Upsert(record.ID, record); err != nil {
		return fmt.Errorf("failed to save response record: %w", err)
	}
	return nil
}

// ListRecords returns the most recent records, newest first.
func (s *EvalStorage) ListRecords(limit int) ([]*models.ResponseRecord, error) {
	query := badgerhold.Where("ID").Ne("").SortBy("CreatedAt").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []models.ResponseRecord
	if err := s.db.Store().Find(&records, query); err != nil {
		return nil, fmt.Errorf("failed to list response records: %w", err)
	}

	result := make([]*models.ResponseRecord, len(records))
	for i := range records {
		result[i] = &records[i]
	}
	return result, nil
}

func (s *EvalStorage) CountRecords() (int, error) {
	count, err := s.db.Store().Count(&models.ResponseRecord{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count response records: %w", err)
	}
	return int(count), nil
}
