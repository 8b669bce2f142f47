// Package testing provides shared helpers for pipeline and API tests:
// a scripted stub classifier and reference record fixtures, so the
// deterministic parts of the pipeline are testable without a generative
// backend.
package testing

import (
	"context"
	"fmt"

	"github.com/conflictcheck/namecheck/config"
	"github.com/conflictcheck/namecheck/model"
	"github.com/conflictcheck/namecheck/services"
)

// StubClassifier implements services.Classifier with a scripted
// response. It records the last request it received for assertions.
type StubClassifier struct {
	Matches []model.MatchResult
	Err     error

	Calls       int
	LastRequest services.ClassifierRequest
}

// Classify returns the scripted matches or error.
func (s *StubClassifier) Classify(_ context.Context, req services.ClassifierRequest) ([]model.MatchResult, error) {
	s.Calls++
	s.LastRequest = req
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Matches, nil
}

// TestSettings returns fully defaulted settings for tests.
func TestSettings() config.Settings {
	settings := config.Settings{}
	settings.ApplyDefaults()
	return settings
}

// UnrelatedRecords builds n filler records whose names never survive
// pre-filtering against realistic search names.
func UnrelatedRecords(n int) []model.ReferenceRecord {
	records := make([]model.ReferenceRecord, n)
	for i := range records {
		records[i] = model.ReferenceRecord{
			ID:   fmt.Sprintf("filler-%04d", i),
			Name: fmt.Sprintf("Zzyx Quokka Holdings %04d", i),
		}
	}
	return records
}
