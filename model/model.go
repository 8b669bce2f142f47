// Package model defines the data types flowing through the name-check
// pipeline: the search criteria coming in, the reference records being
// checked against, and the tiered match results going out.
package model

// SearchCriteria is the input for one pipeline run. Name is required;
// the contact fields are optional and only used for exact-equality
// pre-qualification. Criteria are immutable for the duration of a run.
type SearchCriteria struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Email       string `json:"email,omitempty"`
	Address     string `json:"address,omitempty"`
}

// ReferenceRecord is one entity in the reference database. Read-only to
// the pipeline.
type ReferenceRecord struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string `json:"name" yaml:"name"`
	PhoneNumber string `json:"phone_number,omitempty" yaml:"phone_number,omitempty"`
	Email       string `json:"email,omitempty" yaml:"email,omitempty"`
	Address     string `json:"address,omitempty" yaml:"address,omitempty"`
}

// Contact match field labels. MatchedField in a ContactMatch is always
// one of these.
const (
	FieldPhoneNumber = "Phone Number"
	FieldEmail       = "Email/Website"
	FieldAddress     = "Address"
)

// ContactMatch is a record whose phone, email or address exactly equals
// the search criteria. Contact matches are certain (Tier 1) and bypass
// name scoring entirely.
type ContactMatch struct {
	Name         string `json:"name"`
	MatchedField string `json:"matched_field"`
	MatchedValue string `json:"matched_value"`
}

// Tier bounds for a MatchResult. Tier 1 is exact/certain, Tier 4 is a
// weak match that warrants investigation.
const (
	MinTier = 1
	MaxTier = 4
)

// ClampTier forces a tier into the valid [MinTier, MaxTier] range.
func ClampTier(tier int) int {
	if tier < MinTier {
		return MinTier
	}
	if tier > MaxTier {
		return MaxTier
	}
	return tier
}

// MatchResult is one entry in the final match list.
type MatchResult struct {
	Name          string `json:"name"`
	Tier          int    `json:"tier"`
	Justification string `json:"justification"`
}

// PipelineResult is the output of one pipeline run. Matches are ordered
// with contact-match-derived entries first, hold no duplicate names, and
// never exceed the pipeline's result cap.
type PipelineResult struct {
	SearchedName string        `json:"searched_name"`
	Matches      []MatchResult `json:"matches"`
	QueryID      string        `json:"query_id,omitempty"`
	Took         int64         `json:"took"` // milliseconds
	// ClassifierDegraded is set when the classifier returned an
	// unparseable response and the run fell back to contact matches
	// only, so callers can tell degradation apart from a genuine
	// empty classifier answer.
	ClassifierDegraded bool `json:"classifier_degraded,omitempty"`
}
