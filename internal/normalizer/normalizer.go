// Package normalizer canonicalizes names for comparison: case folding,
// legal-suffix stripping, punctuation removal and whitespace collapsing.
package normalizer

import (
	"regexp"
	"strings"

	"github.com/conflictcheck/namecheck/config"
)

var (
	nonWordRegex    = regexp.MustCompile(`[^\w\s]`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// Normalizer strips a fixed stop-list of business suffixes and
// connectors before comparison. The zero value is not usable; construct
// via New.
type Normalizer struct {
	stopWordRegex *regexp.Regexp
}

// New builds a Normalizer for the given stop-word list. Stop words are
// removed at word boundaries, case-insensitively.
func New(stopWords []string) *Normalizer {
	quoted := make([]string, len(stopWords))
	for i, w := range stopWords {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return &Normalizer{
		stopWordRegex: regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`),
	}
}

// Default uses the built-in stop-word list.
var Default = New(config.DefaultStopWords)

// Normalize lower-cases s, removes stop words, replaces remaining
// non-alphanumeric characters with spaces, collapses whitespace runs and
// trims. Pure function.
func (n *Normalizer) Normalize(s string) string {
	out := strings.ToLower(s)
	out = n.stopWordRegex.ReplaceAllString(out, "")
	out = nonWordRegex.ReplaceAllString(out, " ")
	out = whitespaceRegex.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// Normalize applies the default Normalizer.
func Normalize(s string) string {
	return Default.Normalize(s)
}
