// Package similarity provides edit-distance based string similarity for
// the candidate pre-filter.
package similarity

import "github.com/agnivade/levenshtein"

// Distance returns the classic Levenshtein edit distance between a and
// b: the minimum number of single-rune insertions, deletions and
// substitutions, all at unit cost.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// Ratio returns 1 - distance/max(len) over rune lengths, so 1.0 means
// identical and 0.0 means nothing in common. Two empty strings are
// identical by definition.
func Ratio(a, b string) float64 {
	lenA := len([]rune(a))
	lenB := len([]rune(b))
	maxLen := lenA
	if lenB > maxLen {
		maxLen = lenB
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(Distance(a, b))/float64(maxLen)
}

// LengthRatio returns min(len)/max(len) over rune lengths. The
// pre-filter uses it to skip edit-distance scoring when the strings are
// too different in length for the ratio to mean anything.
func LengthRatio(a, b string) float64 {
	lenA := len([]rune(a))
	lenB := len([]rune(b))
	if lenA == 0 && lenB == 0 {
		return 0
	}
	minLen, maxLen := lenA, lenB
	if minLen > maxLen {
		minLen, maxLen = maxLen, minLen
	}
	return float64(minLen) / float64(maxLen)
}
