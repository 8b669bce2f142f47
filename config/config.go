// Package config provides configuration structures for the name-check
// pipeline. It defines pre-filter thresholds, classifier connection
// settings, and the defaults matching the documented scoring behavior.
package config

import (
	"strings"
	"time"
)

// DefaultStopWords is the stop-list of legal/business suffixes and
// connectors removed during normalization and skipped when generating
// acronyms. The pre-filter's scoring behavior depends on this exact list.
var DefaultStopWords = []string{
	"ltd", "limited", "llc", "llp", "inc", "incorporated",
	"corp", "corporation", "co", "company", "plc", "partners",
	"and", "&",
}

// PreFilterConfig contains the tunable constants of the candidate
// pre-filter. All thresholds are explicit so tests can run the filter
// with alternate values deterministically.
type PreFilterConfig struct {
	MaxCandidates int `json:"max_candidates"` // Upper bound on the ranked candidate list (e.g., 50)

	// MinScore is the score a reference name must exceed to become a
	// candidate. ShortMinScore applies instead when the normalized
	// search string is at most ShortSearchLength characters and is not
	// itself a likely acronym; short fragments need a higher bar to
	// keep noise out.
	MinScore          float64 `json:"min_score"`
	ShortMinScore     float64 `json:"short_min_score"`
	ShortSearchLength int     `json:"short_search_length"`

	// StopWords are stripped during normalization and ignored when
	// deriving acronyms.
	StopWords []string `json:"stop_words"`
}

// ClassifierConfig contains the connection settings for the external
// tier classifier.
type ClassifierConfig struct {
	BaseURL   string        `json:"base_url"`   // Messages API endpoint
	APIKey    string        `json:"-"`          // Never serialized
	Model     string        `json:"model"`      // Model identifier sent with each request
	MaxTokens int           `json:"max_tokens"` // Completion budget per request
	Timeout   time.Duration `json:"timeout"`    // Bound on the one network-bound pipeline step
}

// Settings bundles all pipeline configuration.
type Settings struct {
	PreFilter  PreFilterConfig  `json:"pre_filter"`
	Classifier ClassifierConfig `json:"classifier"`
	MaxMatches int              `json:"max_matches"` // Cap on the final merged match list
}

// ApplyDefaults applies default values to any unset settings.
func (s *Settings) ApplyDefaults() {
	if s.PreFilter.MaxCandidates == 0 {
		s.PreFilter.MaxCandidates = 50
	}
	if s.PreFilter.MinScore == 0 {
		s.PreFilter.MinScore = 40
	}
	if s.PreFilter.ShortMinScore == 0 {
		s.PreFilter.ShortMinScore = 80
	}
	if s.PreFilter.ShortSearchLength == 0 {
		s.PreFilter.ShortSearchLength = 4
	}
	if s.PreFilter.StopWords == nil {
		s.PreFilter.StopWords = DefaultStopWords
	}
	if s.Classifier.BaseURL == "" {
		s.Classifier.BaseURL = "https://api.anthropic.com/v1/messages"
	}
	if s.Classifier.Model == "" {
		s.Classifier.Model = "claude-sonnet-4-20250514"
	}
	if s.Classifier.MaxTokens == 0 {
		s.Classifier.MaxTokens = 4096
	}
	if s.Classifier.Timeout == 0 {
		s.Classifier.Timeout = 30 * time.Second
	}
	if s.MaxMatches == 0 {
		s.MaxMatches = 10
	}

	// The short threshold exists to be stricter than the regular one.
	if s.PreFilter.ShortMinScore < s.PreFilter.MinScore {
		s.PreFilter.ShortMinScore = s.PreFilter.MinScore
	}
}

// Validate checks the settings for basic consistency and returns a list
// of problems, empty when the settings are usable.
func (s *Settings) Validate() []string {
	var problems []string

	if s.PreFilter.MaxCandidates < 1 {
		problems = append(problems, "pre_filter.max_candidates must be at least 1")
	}
	if s.PreFilter.MinScore < 0 {
		problems = append(problems, "pre_filter.min_score cannot be negative")
	}
	if s.PreFilter.ShortMinScore < s.PreFilter.MinScore {
		problems = append(problems, "pre_filter.short_min_score cannot be below pre_filter.min_score")
	}
	if s.PreFilter.ShortSearchLength < 1 {
		problems = append(problems, "pre_filter.short_search_length must be at least 1")
	}
	for _, w := range s.PreFilter.StopWords {
		if strings.TrimSpace(w) == "" {
			problems = append(problems, "pre_filter.stop_words cannot contain empty entries")
		}
	}
	if s.Classifier.BaseURL == "" {
		problems = append(problems, "classifier.base_url is required")
	}
	if s.Classifier.Timeout <= 0 {
		problems = append(problems, "classifier.timeout must be positive")
	}
	if s.MaxMatches < 1 {
		problems = append(problems, "max_matches must be at least 1")
	}

	return problems
}
