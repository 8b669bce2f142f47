// Package prefilter scores every reference name against a search name
// with a set of string-similarity heuristics and returns a bounded,
// ranked candidate list for the tier classifier.
//
// The additive weights below are deliberate magic constants: they are
// the documented matching behavior being replicated, not a model to be
// re-derived.
package prefilter

import (
	"regexp"
	"sort"
	"strings"

	"github.com/conflictcheck/namecheck/config"
	"github.com/conflictcheck/namecheck/internal/acronym"
	"github.com/conflictcheck/namecheck/internal/normalizer"
	"github.com/conflictcheck/namecheck/internal/phonetic"
	"github.com/conflictcheck/namecheck/internal/similarity"
	"github.com/conflictcheck/namecheck/internal/tokenizer"
)

// Score weights. Tier ordering in the classifier depends on the
// pre-filter surfacing the right candidates, so these track the
// documented behavior exactly.
const (
	weightExactMatch       = 1000 // normalized forms identical
	weightAcronymExpansion = 300  // acronym matches the other side's generated acronym
	weightAcronymToken     = 200  // the acronym appears verbatim as a token
	weightTokenMatch       = 200  // a whole token matches
	weightHighSimilarity   = 150  // multiplied by similarity when > 0.7
	weightMidSimilarity    = 50   // multiplied by similarity when > 0.5
	weightTokenOverlap     = 80   // multiplied by overlap when > 0.5
	weightSoundex          = 50   // phonetic code match on longer names
	weightSubstring        = 30   // one normalized form contains the other
	weightWordBoundary     = 100  // short search matches at a word boundary

	highSimilarityFloor = 0.7
	midSimilarityFloor  = 0.5
	tokenOverlapFloor   = 0.5
	minLengthRatio      = 0.3 // below this, edit distance is noise
)

// PreFilter scores and ranks reference names. Construct via New; safe
// for concurrent use, all state is read-only after construction.
type PreFilter struct {
	cfg        config.PreFilterConfig
	normalizer *normalizer.Normalizer
	generator  *acronym.Generator
}

// New builds a PreFilter honoring cfg's stop words and thresholds.
func New(cfg config.PreFilterConfig) *PreFilter {
	return &PreFilter{
		cfg:        cfg,
		normalizer: normalizer.New(cfg.StopWords),
		generator:  acronym.NewGenerator(cfg.StopWords),
	}
}

type scoredCandidate struct {
	name  string
	score float64
}

// Filter returns up to cfg.MaxCandidates reference names ranked by
// descending score, ties broken by input order. Names at or below the
// score threshold are dropped. Pure function of its inputs.
func (pf *PreFilter) Filter(searchName string, referenceNames []string) []string {
	normalizedSearch := pf.normalizer.Normalize(searchName)
	searchTokens := tokenizer.Tokenize(searchName)
	searchSoundex := phonetic.Soundex(normalizedSearch)
	isShortSearch := len(normalizedSearch) <= pf.cfg.ShortSearchLength

	searchIsAcronym := acronym.IsLikelyAcronym(searchName)
	searchAcronymLetters := ""
	if searchIsAcronym {
		searchAcronymLetters = acronym.Letters(searchName)
	}
	searchGeneratedAcronym := pf.generator.Generate(searchName)

	// Word-boundary pattern for the short-search substring rule,
	// compiled once per run.
	var wordBoundary *regexp.Regexp
	if isShortSearch && normalizedSearch != "" {
		wordBoundary = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(normalizedSearch) + `\b`)
	}

	scored := make([]scoredCandidate, 0, len(referenceNames))
	for _, name := range referenceNames {
		score := pf.scoreName(name, normalizedSearch, searchTokens, searchSoundex,
			searchAcronymLetters, searchGeneratedAcronym, isShortSearch, wordBoundary)

		threshold := pf.cfg.MinScore
		if isShortSearch && !searchIsAcronym {
			threshold = pf.cfg.ShortMinScore
		}
		if score > threshold {
			scored = append(scored, scoredCandidate{name: name, score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) > pf.cfg.MaxCandidates {
		scored = scored[:pf.cfg.MaxCandidates]
	}

	candidates := make([]string, len(scored))
	for i, sc := range scored {
		candidates[i] = sc.name
	}
	return candidates
}

func (pf *PreFilter) scoreName(name, normalizedSearch string, searchTokens []string,
	searchSoundex, searchAcronymLetters, searchGeneratedAcronym string,
	isShortSearch bool, wordBoundary *regexp.Regexp) float64 {

	normalizedName := pf.normalizer.Normalize(name)
	nameTokens := tokenizer.Tokenize(name)

	score := 0.0

	if normalizedSearch == normalizedName {
		score += weightExactMatch
	}

	// Acronym cross-checks, both directions. "DKNY" should reach
	// "Donna Karan New York" and vice versa.
	if searchAcronymLetters != "" {
		if nameAcronym := pf.generator.Generate(name); nameAcronym != "" && nameAcronym == searchAcronymLetters {
			score += weightAcronymExpansion
		}
		if containsToken(nameTokens, searchAcronymLetters) {
			score += weightAcronymToken
		}
	}
	if acronym.IsLikelyAcronym(name) && searchGeneratedAcronym != "" &&
		searchGeneratedAcronym == acronym.Letters(name) {
		score += weightAcronymExpansion
	}

	if hasExactTokenMatch(nameTokens, searchTokens, normalizedSearch) {
		score += weightTokenMatch
	}

	if similarity.LengthRatio(normalizedSearch, normalizedName) > minLengthRatio {
		ratio := similarity.Ratio(normalizedSearch, normalizedName)
		if ratio > highSimilarityFloor {
			score += ratio * weightHighSimilarity
		} else if ratio > midSimilarityFloor {
			score += ratio * weightMidSimilarity
		}
	}

	if overlap := tokenizer.Overlap(searchTokens, nameTokens); overlap > tokenOverlapFloor {
		score += overlap * weightTokenOverlap
	}

	// Short phonetic codes collide constantly, so Soundex only counts
	// for longer names.
	if !isShortSearch && searchSoundex == phonetic.Soundex(normalizedName) {
		score += weightSoundex
	}

	if !isShortSearch {
		if strings.Contains(normalizedName, normalizedSearch) || strings.Contains(normalizedSearch, normalizedName) {
			score += weightSubstring
		}
	} else if wordBoundary != nil && wordBoundary.MatchString(name) {
		// A short fragment like "tal" must not match inside
		// "Natalie"; it only counts as a complete word.
		score += weightWordBoundary
	}

	return score
}

func containsToken(tokens []string, want string) bool {
	for _, token := range tokens {
		if token == want {
			return true
		}
	}
	return false
}

func hasExactTokenMatch(nameTokens, searchTokens []string, normalizedSearch string) bool {
	for _, token := range nameTokens {
		if token == normalizedSearch {
			return true
		}
		if containsToken(searchTokens, token) {
			return true
		}
	}
	return false
}

