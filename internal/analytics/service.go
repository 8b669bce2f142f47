// Package analytics tracks completed name-check runs in memory and
// summarizes them on demand. Events are bounded and never persisted;
// reference data stays out of the event log.
package analytics

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/conflictcheck/namecheck/model"
)

const (
	maxEventsToKeep = 10000 // Keep last 10k events for performance
	topNamesToShow  = 5
)

// Service implements check-event tracking and reporting. Safe for
// concurrent use.
type Service struct {
	mutex  sync.RWMutex
	events []model.CheckEvent
}

// NewService creates a new analytics service.
func NewService() *Service {
	return &Service{events: make([]model.CheckEvent, 0)}
}

// TrackCheckEvent records a completed run.
func (s *Service) TrackCheckEvent(event model.CheckEvent) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	s.events = append(s.events, event)

	if len(s.events) > maxEventsToKeep {
		s.events = s.events[len(s.events)-maxEventsToKeep:]
	}
}

// EventCount returns the number of retained events.
func (s *Service) EventCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.events)
}

// GetDashboardData aggregates the retained events.
func (s *Service) GetDashboardData() model.AnalyticsDashboard {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	dashboard := model.AnalyticsDashboard{
		TopSearchedNames: []model.NameCount{},
	}
	if len(s.events) == 0 {
		return dashboard
	}

	var withMatches, withContact, degraded int
	var totalCandidates, totalResponseMs int64
	nameCounts := make(map[string]int)

	for _, event := range s.events {
		if event.MatchCount > 0 {
			withMatches++
		}
		if event.ContactMatchCount > 0 {
			withContact++
		}
		if event.ClassifierDegraded {
			degraded++
		}
		totalCandidates += int64(event.CandidateCount)
		totalResponseMs += event.ResponseTimeMs
		nameCounts[strings.ToLower(event.SearchedName)]++
	}

	total := len(s.events)
	dashboard.TotalChecks = total
	dashboard.ChecksWithMatches = withMatches
	dashboard.MatchRatePercent = percent(withMatches, total)
	dashboard.ContactMatchRate = percent(withContact, total)
	dashboard.AvgCandidates = float64(totalCandidates) / float64(total)
	dashboard.AvgResponseTimeMs = float64(totalResponseMs) / float64(total)
	dashboard.ClassifierDegraded = degraded
	dashboard.TopSearchedNames = topNames(nameCounts, topNamesToShow)

	return dashboard
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func topNames(counts map[string]int, limit int) []model.NameCount {
	names := make([]model.NameCount, 0, len(counts))
	for name, count := range counts {
		names = append(names, model.NameCount{Name: name, Count: count})
	}
	sort.Slice(names, func(i, j int) bool {
		if names[i].Count != names[j].Count {
			return names[i].Count > names[j].Count
		}
		return names[i].Name < names[j].Name
	})
	if len(names) > limit {
		names = names[:limit]
	}
	return names
}
