package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalErrors "github.com/conflictcheck/namecheck/internal/errors"
	testutils "github.com/conflictcheck/namecheck/internal/testing"
	"github.com/conflictcheck/namecheck/model"
)

func TestRunRejectsBlankName(t *testing.T) {
	stub := &testutils.StubClassifier{}
	p := New(testutils.TestSettings(), stub)

	_, err := p.Run(context.Background(), model.SearchCriteria{Name: "   "}, nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, internalErrors.ErrInvalidInput))
	assert.Zero(t, stub.Calls, "classifier must not run on invalid input")
}

func TestRunNoCandidatesSkipsClassifier(t *testing.T) {
	stub := &testutils.StubClassifier{}
	p := New(testutils.TestSettings(), stub)

	result, err := p.Run(context.Background(), model.SearchCriteria{Name: "Sarah Mitchell"},
		testutils.UnrelatedRecords(20))

	require.NoError(t, err)
	assert.Empty(t, result.Matches)
	assert.Equal(t, "Sarah Mitchell", result.SearchedName)
	assert.NotEmpty(t, result.QueryID)
	assert.Zero(t, stub.Calls, "classifier must not run with an empty candidate set")
}

func TestRunEndToEndTypoScenario(t *testing.T) {
	records := append(testutils.UnrelatedRecords(500),
		model.ReferenceRecord{ID: "r-1", Name: "Srah Mitchel"})
	stub := &testutils.StubClassifier{
		Matches: []model.MatchResult{{Name: "Srah Mitchel", Tier: 2, Justification: "typo"}},
	}
	p := New(testutils.TestSettings(), stub)

	result, err := p.Run(context.Background(), model.SearchCriteria{Name: "Sarah Mitchell"}, records)

	require.NoError(t, err)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, model.MatchResult{Name: "Srah Mitchel", Tier: 2, Justification: "typo"}, result.Matches[0])

	require.Equal(t, 1, stub.Calls)
	assert.Contains(t, stub.LastRequest.Candidates, "Srah Mitchel")
	assert.Equal(t, "sm", stub.LastRequest.SearchAcronym)
}

func TestRunContactMatchBypassesClassifier(t *testing.T) {
	records := []model.ReferenceRecord{
		{ID: "r-1", Name: "Sarah Mitchell", PhoneNumber: "555-123-4567"},
		{ID: "r-2", Name: "Srah Mitchel"},
	}
	stub := &testutils.StubClassifier{
		Matches: []model.MatchResult{{Name: "Srah Mitchel", Tier: 2, Justification: "typo"}},
	}
	p := New(testutils.TestSettings(), stub)

	result, err := p.Run(context.Background(), model.SearchCriteria{
		Name:        "Sarah Mitchell",
		PhoneNumber: "(555) 123-4567",
	}, records)

	require.NoError(t, err)
	require.NotEmpty(t, result.Matches)

	// Contact match first, Tier 1, deterministic justification.
	assert.Equal(t, "Sarah Mitchell", result.Matches[0].Name)
	assert.Equal(t, 1, result.Matches[0].Tier)
	assert.Equal(t, `Exact Phone Number match: "555-123-4567"`, result.Matches[0].Justification)

	// The contact-confirmed name never reaches the classifier pool.
	require.Equal(t, 1, stub.Calls)
	assert.NotContains(t, stub.LastRequest.Candidates, "Sarah Mitchell")
	assert.Contains(t, stub.LastRequest.Candidates, "Srah Mitchel")
	assert.Equal(t, []model.ContactMatch{{
		Name:         "Sarah Mitchell",
		MatchedField: model.FieldPhoneNumber,
		MatchedValue: "555-123-4567",
	}}, stub.LastRequest.ContactMatches)
}

func TestRunContactOnlySkipsClassifier(t *testing.T) {
	records := []model.ReferenceRecord{
		{ID: "r-1", Name: "Sarah Mitchell", PhoneNumber: "555-123-4567"},
	}
	stub := &testutils.StubClassifier{}
	p := New(testutils.TestSettings(), stub)

	result, err := p.Run(context.Background(), model.SearchCriteria{
		Name:        "Sarah Mitchell",
		PhoneNumber: "555.123.4567",
	}, records)

	require.NoError(t, err)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, 1, result.Matches[0].Tier)
}

func TestRunClassifierUnavailablePropagates(t *testing.T) {
	records := []model.ReferenceRecord{{Name: "Srah Mitchel"}}
	stub := &testutils.StubClassifier{
		Err: internalErrors.NewClassifierUnavailableError(503, nil),
	}
	p := New(testutils.TestSettings(), stub)

	_, err := p.Run(context.Background(), model.SearchCriteria{Name: "Sarah Mitchell"}, records)

	require.Error(t, err)
	assert.True(t, errors.Is(err, internalErrors.ErrClassifierUnavailable))
}

func TestRunMalformedResponseDegrades(t *testing.T) {
	records := []model.ReferenceRecord{
		{Name: "Sarah Mitchell", PhoneNumber: "555-123-4567"},
		{Name: "Srah Mitchel"},
	}
	stub := &testutils.StubClassifier{
		Err: internalErrors.NewMalformedResponseError("not a JSON array", "oops"),
	}
	p := New(testutils.TestSettings(), stub)

	result, err := p.Run(context.Background(), model.SearchCriteria{
		Name:        "Sarah Mitchell",
		PhoneNumber: "555-123-4567",
	}, records)

	require.NoError(t, err, "malformed classifier output must not fail the run")
	assert.True(t, result.ClassifierDegraded)
	require.Len(t, result.Matches, 1, "contact matches survive degradation")
	assert.Equal(t, 1, result.Matches[0].Tier)
}

func TestRunBoundedOutputAndNoDuplicates(t *testing.T) {
	records := make([]model.ReferenceRecord, 0, 30)
	classifierMatches := make([]model.MatchResult, 0, 15)
	for i := 0; i < 15; i++ {
		name := fmt.Sprintf("Sarah Mitchell %c", 'A'+i)
		records = append(records, model.ReferenceRecord{Name: name})
		classifierMatches = append(classifierMatches, model.MatchResult{Name: name, Tier: 3, Justification: "variant"})
	}
	// Duplicate entry the merge must drop.
	classifierMatches = append(classifierMatches, model.MatchResult{Name: "Sarah Mitchell A", Tier: 4, Justification: "dup"})

	stub := &testutils.StubClassifier{Matches: classifierMatches}
	p := New(testutils.TestSettings(), stub)

	result, err := p.Run(context.Background(), model.SearchCriteria{Name: "Sarah Mitchell"}, records)

	require.NoError(t, err)
	assert.LessOrEqual(t, len(result.Matches), 10)

	seen := make(map[string]bool)
	for _, m := range result.Matches {
		assert.False(t, seen[m.Name], "duplicate name %q in result", m.Name)
		seen[m.Name] = true
		assert.GreaterOrEqual(t, m.Tier, 1)
		assert.LessOrEqual(t, m.Tier, 4)
	}
}

func TestRunContactOverflowStillBounded(t *testing.T) {
	records := make([]model.ReferenceRecord, 0, 12)
	for i := 0; i < 12; i++ {
		records = append(records, model.ReferenceRecord{
			Name:        fmt.Sprintf("Mitchell Entity %c", 'A'+i),
			PhoneNumber: "555-123-4567",
		})
	}

	stub := &testutils.StubClassifier{}
	p := New(testutils.TestSettings(), stub)

	result, err := p.Run(context.Background(), model.SearchCriteria{
		Name:        "Sarah Mitchell",
		PhoneNumber: "555-123-4567",
	}, records)

	require.NoError(t, err)
	require.Len(t, result.Matches, 10)
	for _, m := range result.Matches {
		assert.Equal(t, 1, m.Tier)
	}
}

func TestRunTracksEvents(t *testing.T) {
	tracker := &recordingTracker{}
	stub := &testutils.StubClassifier{
		Matches: []model.MatchResult{{Name: "Srah Mitchel", Tier: 2, Justification: "typo"}},
	}
	p := New(testutils.TestSettings(), stub, WithEventTracker(tracker))

	_, err := p.Run(context.Background(), model.SearchCriteria{Name: "Sarah Mitchell"},
		[]model.ReferenceRecord{{Name: "Srah Mitchel"}})

	require.NoError(t, err)
	require.Len(t, tracker.events, 1)
	assert.Equal(t, "Sarah Mitchell", tracker.events[0].SearchedName)
	assert.Equal(t, 1, tracker.events[0].MatchCount)
	assert.Equal(t, 1, tracker.events[0].RecordCount)
}

type recordingTracker struct {
	events []model.CheckEvent
}

func (r *recordingTracker) TrackCheckEvent(event model.CheckEvent) {
	r.events = append(r.events, event)
}
