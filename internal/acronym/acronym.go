// Package acronym detects acronym-shaped strings and derives acronyms
// from multi-word names, so "DKNY" can be matched against
// "Donna Karan New York" in either direction.
package acronym

import (
	"regexp"
	"strings"

	"github.com/conflictcheck/namecheck/config"
)

const (
	minLength = 2
	maxLength = 8
)

var nonWordRegex = regexp.MustCompile(`[^\w\s]`)

// IsLikelyAcronym reports whether s looks like an acronym: 2 to 8
// letters once punctuation is stripped, all of them uppercase in the
// original string.
func IsLikelyAcronym(s string) bool {
	letters := 0
	upper := 0
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			letters++
			upper++
		case r >= 'a' && r <= 'z':
			letters++
		}
	}
	return letters >= minLength && letters <= maxLength && upper == letters
}

// Letters returns only the letters of s, lower-cased. For a string that
// passed IsLikelyAcronym this is the comparable acronym form.
func Letters(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Generator derives acronyms while skipping a stop-word list.
type Generator struct {
	skip map[string]struct{}
}

// NewGenerator builds a Generator. On top of the supplied stop words it
// always skips the single-letter connectors "a" and "an", which would
// otherwise pollute generated acronyms.
func NewGenerator(stopWords []string) *Generator {
	skip := make(map[string]struct{}, len(stopWords)+2)
	for _, w := range stopWords {
		skip[strings.ToLower(w)] = struct{}{}
	}
	skip["a"] = struct{}{}
	skip["an"] = struct{}{}
	return &Generator{skip: skip}
}

// Default uses the built-in stop-word list.
var Default = NewGenerator(config.DefaultStopWords)

// Generate returns the lower-cased acronym of a multi-word name, or ""
// when no meaningful acronym exists: fewer than two significant words,
// or a result outside the 2-8 character range.
func (g *Generator) Generate(s string) string {
	cleaned := nonWordRegex.ReplaceAllString(s, " ")

	var firsts []rune
	for _, word := range strings.Fields(cleaned) {
		if _, skip := g.skip[strings.ToLower(word)]; skip {
			continue
		}
		runes := []rune(strings.ToLower(word))
		firsts = append(firsts, runes[0])
	}

	if len(firsts) < minLength || len(firsts) > maxLength {
		return ""
	}
	return string(firsts)
}

// Generate applies the default Generator.
func Generate(s string) string {
	return Default.Generate(s)
}
