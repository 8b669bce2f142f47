// Package pipeline orchestrates one name-check run: contact matching
// and candidate pre-filtering fan out over the same immutable record
// set, their results are merged into a deduplicated candidate set, and
// the tier classifier turns the remaining candidates into tiered
// matches. All state lives for one run only.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/conflictcheck/namecheck/config"
	"github.com/conflictcheck/namecheck/internal/acronym"
	"github.com/conflictcheck/namecheck/internal/contact"
	internalErrors "github.com/conflictcheck/namecheck/internal/errors"
	"github.com/conflictcheck/namecheck/internal/prefilter"
	"github.com/conflictcheck/namecheck/model"
	"github.com/conflictcheck/namecheck/services"
)

// Pipeline implements services.Pipeline. Safe for concurrent use: runs
// share no mutable state.
type Pipeline struct {
	settings   config.Settings
	preFilter  *prefilter.PreFilter
	generator  *acronym.Generator
	classifier services.Classifier
	tracker    services.EventTracker
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithEventTracker wires an analytics tracker; without it, runs are not
// recorded.
func WithEventTracker(tracker services.EventTracker) Option {
	return func(p *Pipeline) { p.tracker = tracker }
}

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// New creates a Pipeline with the given settings and classifier.
func New(settings config.Settings, classifier services.Classifier, opts ...Option) *Pipeline {
	p := &Pipeline{
		settings:   settings,
		preFilter:  prefilter.New(settings.PreFilter),
		generator:  acronym.NewGenerator(settings.PreFilter.StopWords),
		classifier: classifier,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes one name check against records. It returns
// ErrInvalidInput for a blank search name and ErrClassifierUnavailable
// when the classifier cannot be reached; a malformed classifier
// response degrades to contact matches only and is flagged on the
// result instead of failing the run.
func (p *Pipeline) Run(ctx context.Context, criteria model.SearchCriteria, records []model.ReferenceRecord) (*model.PipelineResult, error) {
	startTime := time.Now()

	searchName := strings.TrimSpace(criteria.Name)
	if searchName == "" {
		return nil, internalErrors.NewValidationError("name", "search name cannot be empty")
	}

	// Contact matching and pre-filtering read the same immutable
	// records and have no data dependency on each other.
	var contactMatches []model.ContactMatch
	var nameCandidates []string

	group, _ := errgroup.WithContext(ctx)
	group.Go(func() error {
		contactMatches = contact.Match(criteria, records)
		return nil
	})
	group.Go(func() error {
		names := make([]string, len(records))
		for i, record := range records {
			names[i] = record.Name
		}
		nameCandidates = p.preFilter.Filter(criteria.Name, names)
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	result := &model.PipelineResult{
		SearchedName: criteria.Name,
		Matches:      make([]model.MatchResult, 0),
		QueryID:      uuid.New().String(),
	}

	contactNames := make(map[string]struct{}, len(contactMatches))
	for _, m := range contactMatches {
		contactNames[m.Name] = struct{}{}
	}

	// Candidate pool for the classifier: pre-filter candidates minus
	// anything contact matching already confirmed. The classifier
	// never second-guesses a contact-detail match.
	seen := make(map[string]struct{}, len(nameCandidates))
	remaining := make([]string, 0, len(nameCandidates))
	for _, name := range nameCandidates {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		if _, confirmed := contactNames[name]; confirmed {
			continue
		}
		remaining = append(remaining, name)
	}

	if len(contactMatches) == 0 && len(remaining) == 0 {
		result.Took = time.Since(startTime).Milliseconds()
		p.track(criteria, records, result, contactMatches, 0)
		return result, nil
	}

	var classifierMatches []model.MatchResult
	if len(remaining) > 0 {
		classifierCtx, cancel := context.WithTimeout(ctx, p.settings.Classifier.Timeout)
		defer cancel()

		var err error
		classifierMatches, err = p.classifier.Classify(classifierCtx, services.ClassifierRequest{
			SearchName:     criteria.Name,
			Candidates:     remaining,
			SearchAcronym:  p.generator.Generate(criteria.Name),
			ContactMatches: contactMatches,
		})
		switch {
		case err == nil:
		case errors.Is(err, internalErrors.ErrMalformedResponse):
			// Loss of semantic judgment, but contact matches are
			// still facts; degrade rather than fail.
			p.logger.Warn("classifier response unusable, degrading to contact matches",
				"query_id", result.QueryID,
				"search_name", criteria.Name,
				"candidates", len(remaining),
				"error", err)
			result.ClassifierDegraded = true
			classifierMatches = nil
		default:
			return nil, err
		}
	}

	result.Matches = p.mergeMatches(contactMatches, classifierMatches)
	result.Took = time.Since(startTime).Milliseconds()

	p.logger.Info("name check completed",
		"query_id", result.QueryID,
		"search_name", criteria.Name,
		"records", len(records),
		"contact_matches", len(contactMatches),
		"candidates", len(remaining),
		"matches", len(result.Matches),
		"took_ms", result.Took)

	p.track(criteria, records, result, contactMatches, len(remaining))
	return result, nil
}

// mergeMatches puts contact matches first as Tier 1, appends classifier
// matches, drops duplicate names, and truncates from the tail of the
// classifier contribution so contact matches are never dropped.
func (p *Pipeline) mergeMatches(contactMatches []model.ContactMatch, classifierMatches []model.MatchResult) []model.MatchResult {
	merged := make([]model.MatchResult, 0, len(contactMatches)+len(classifierMatches))
	seen := make(map[string]struct{}, len(contactMatches)+len(classifierMatches))

	for _, m := range contactMatches {
		if _, dup := seen[m.Name]; dup {
			continue
		}
		seen[m.Name] = struct{}{}
		merged = append(merged, model.MatchResult{
			Name:          m.Name,
			Tier:          model.MinTier,
			Justification: contact.Justification(m),
		})
	}

	for _, m := range classifierMatches {
		if len(merged) >= p.settings.MaxMatches {
			break
		}
		if _, dup := seen[m.Name]; dup {
			continue
		}
		seen[m.Name] = struct{}{}
		m.Tier = model.ClampTier(m.Tier)
		merged = append(merged, m)
	}

	if len(merged) > p.settings.MaxMatches {
		merged = merged[:p.settings.MaxMatches]
	}
	return merged
}

func (p *Pipeline) track(criteria model.SearchCriteria, records []model.ReferenceRecord,
	result *model.PipelineResult, contactMatches []model.ContactMatch, candidateCount int) {
	if p.tracker == nil {
		return
	}
	p.tracker.TrackCheckEvent(model.CheckEvent{
		QueryID:            result.QueryID,
		SearchedName:       criteria.Name,
		RecordCount:        len(records),
		ContactMatchCount:  len(contactMatches),
		CandidateCount:     candidateCount,
		MatchCount:         len(result.Matches),
		ClassifierDegraded: result.ClassifierDegraded,
		ResponseTimeMs:     result.Took,
		Timestamp:          time.Now(),
	})
}
