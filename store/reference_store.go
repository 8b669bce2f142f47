// Package store holds the reference records the pipeline checks
// against. Records can be loaded from a JSON or YAML file at startup or
// replaced over the API; every pipeline run gets its own snapshot so
// records stay immutable for the duration of a run.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/conflictcheck/namecheck/model"
)

// ReferenceStore is a concurrency-safe in-memory record collection.
type ReferenceStore struct {
	mu      sync.RWMutex
	records []model.ReferenceRecord
}

// NewReferenceStore creates an empty store.
func NewReferenceStore() *ReferenceStore {
	return &ReferenceStore{records: make([]model.ReferenceRecord, 0)}
}

// LoadFile reads records from a .json, .yaml or .yml file and replaces
// the store's contents. Records without a name are rejected.
func (s *ReferenceStore) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read records file: %w", err)
	}

	var records []model.ReferenceRecord
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &records); err != nil {
			return fmt.Errorf("failed to parse records file %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &records); err != nil {
			return fmt.Errorf("failed to parse records file %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported records file extension %q (want .json, .yaml or .yml)", ext)
	}

	for i, record := range records {
		if strings.TrimSpace(record.Name) == "" {
			return fmt.Errorf("record %d in %s has no name", i, path)
		}
	}

	s.Replace(records)
	return nil
}

// Replace swaps in a new record collection.
func (s *ReferenceStore) Replace(records []model.ReferenceRecord) {
	copied := make([]model.ReferenceRecord, len(records))
	copy(copied, records)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = copied
}

// Records returns a snapshot copy; callers can hold it across a whole
// pipeline run without seeing concurrent replacements.
func (s *ReferenceStore) Records() []model.ReferenceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]model.ReferenceRecord, len(s.records))
	copy(snapshot, s.records)
	return snapshot
}

// Count returns the number of stored records.
func (s *ReferenceStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
