package services

import (
	"context"

	"github.com/conflictcheck/namecheck/model"
)

// ClassifierRequest is the contract payload sent to the tier
// classifier: the search name, the bounded candidate list the
// pre-filter produced, an optional acronym hint derived from the search
// name, and any contact matches for context. Contact-matched names are
// already excluded from Candidates.
type ClassifierRequest struct {
	SearchName     string               `json:"search_name"`
	Candidates     []string             `json:"candidates"`
	SearchAcronym  string               `json:"search_acronym,omitempty"`
	ContactMatches []model.ContactMatch `json:"contact_matches,omitempty"`
}

// Classifier assigns confidence tiers to pre-filtered candidates. The
// production implementation calls a generative backend; tests use a
// scripted stub. Implementations must only return names drawn from the
// request's candidate list, clamp tiers to [1,4], and return at most 10
// entries.
type Classifier interface {
	Classify(ctx context.Context, req ClassifierRequest) ([]model.MatchResult, error)
}

// Pipeline is the single entry point consumed by the serving layer.
type Pipeline interface {
	Run(ctx context.Context, criteria model.SearchCriteria, records []model.ReferenceRecord) (*model.PipelineResult, error)
}

// ReferenceSource provides the reference records a run checks against
// when the caller does not supply them inline.
type ReferenceSource interface {
	Records() []model.ReferenceRecord
	Replace(records []model.ReferenceRecord)
	Count() int
}

// EventTracker records completed check runs for analytics.
type EventTracker interface {
	TrackCheckEvent(event model.CheckEvent)
}
