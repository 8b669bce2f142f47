// Package tokenizer splits names into comparable word tokens.
package tokenizer

import (
	"regexp"
	"strings"
)

var nonWordRegex = regexp.MustCompile(`[^\w\s]`)

// Tokenize lower-cases text, replaces punctuation with spaces, splits on
// whitespace and drops tokens of length 1 or less. Order of appearance
// is preserved and duplicates are retained; callers needing set
// semantics de-duplicate themselves.
func Tokenize(text string) []string {
	lower := strings.ToLower(text)
	cleaned := nonWordRegex.ReplaceAllString(lower, " ")

	tokens := make([]string, 0)
	for _, field := range strings.Fields(cleaned) {
		if len(field) > 1 {
			tokens = append(tokens, field)
		}
	}
	return tokens
}

// Overlap computes |intersection| / max(|setA|, |setB|) over the
// distinct tokens of both slices. Zero when either side is empty.
func Overlap(tokensA, tokensB []string) float64 {
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	setA := make(map[string]struct{}, len(tokensA))
	for _, token := range tokensA {
		setA[token] = struct{}{}
	}
	setB := make(map[string]struct{}, len(tokensB))
	for _, token := range tokensB {
		setB[token] = struct{}{}
	}

	shared := 0
	for token := range setA {
		if _, ok := setB[token]; ok {
			shared++
		}
	}

	larger := len(setA)
	if len(setB) > larger {
		larger = len(setB)
	}
	return float64(shared) / float64(larger)
}
