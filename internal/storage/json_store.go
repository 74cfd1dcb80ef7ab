package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/dayshape/internal/logger"
	"github.com/julianstephens/dayshape/internal/models"
)

// JSONStore keeps the history as a single JSON array in one file.
//
// Concurrency note:
//   - Append is an unprotected read-modify-write of the whole file. Two
//     sessions appending at the same time can lose one record (last writer wins).
//   - Nothing is cached between calls; the file is the only source of truth.
type JSONStore struct {
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}
	return nil
}

// Load is a no-op: a missing file is an empty history.
func (s *JSONStore) Load() error {
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// Append adds one record to the end of the history file. A missing or
// unparsable file is treated as an empty history and overwritten.
func (s *JSONStore) Append(record models.HistoryRecord) error {
	records := s.read()
	records = append(records, record)

	if err := s.Init(); err != nil {
		return err
	}
	return s.write(records)
}

// LoadAll returns every record in insertion order. It never fails: a missing,
// unreadable or corrupt file yields an empty history.
func (s *JSONStore) LoadAll() ([]models.HistoryRecord, error) {
	return s.read(), nil
}

func (s *JSONStore) read() []models.HistoryRecord {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Failed to read history, treating as empty", "path", s.path, "error", err)
		}
		return []models.HistoryRecord{}
	}

	var records []models.HistoryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		logger.Warn("Failed to parse history, treating as empty", "path", s.path, "error", err)
		return []models.HistoryRecord{}
	}
	if records == nil {
		records = []models.HistoryRecord{}
	}
	return records
}

func (s *JSONStore) write(records []models.HistoryRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize history: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}

	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
