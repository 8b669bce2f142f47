package model

import "time"

// CheckEvent captures metadata about one completed name-check run for
// analytics. It never stores reference records, only counts.
type CheckEvent struct {
	QueryID            string    `json:"query_id"`
	SearchedName       string    `json:"searched_name"`
	RecordCount        int       `json:"record_count"`
	ContactMatchCount  int       `json:"contact_match_count"`
	CandidateCount     int       `json:"candidate_count"`
	MatchCount         int       `json:"match_count"`
	ClassifierDegraded bool      `json:"classifier_degraded"`
	ResponseTimeMs     int64     `json:"response_time_ms"`
	Timestamp          time.Time `json:"timestamp"`
}

// AnalyticsDashboard is the aggregate view over recent check events.
type AnalyticsDashboard struct {
	TotalChecks        int         `json:"total_checks"`
	ChecksWithMatches  int         `json:"checks_with_matches"`
	MatchRatePercent   float64     `json:"match_rate_percent"`
	ContactMatchRate   float64     `json:"contact_match_rate_percent"`
	AvgCandidates      float64     `json:"avg_candidates"`
	AvgResponseTimeMs  float64     `json:"avg_response_time_ms"`
	ClassifierDegraded int         `json:"classifier_degraded_count"`
	TopSearchedNames   []NameCount `json:"top_searched_names"`
}

// NameCount pairs a searched name with how often it was checked.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
