// Package phonetic implements the Soundex code used by the candidate
// pre-filter. The variant here carries the previous digit across
// uncoded letters (vowels, h, w, y), so a consonant repeated around a
// vowel emits a single digit. That differs from some library
// implementations, and the pre-filter's scoring depends on these exact
// codes, so the table and loop are kept verbatim.
package phonetic

import "strings"

var digits = map[byte]byte{
	'B': '1', 'F': '1', 'P': '1', 'V': '1',
	'C': '2', 'G': '2', 'J': '2', 'K': '2', 'Q': '2', 'S': '2', 'X': '2', 'Z': '2',
	'D': '3', 'T': '3',
	'L': '4',
	'M': '5', 'N': '5',
	'R': '6',
}

// Soundex returns the 4-character phonetic code for s: the first letter
// followed by up to three digits, right-padded with '0'. Non-letters
// are ignored; an input with no letters codes to "0000".
func Soundex(s string) string {
	letters := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c >= 'A' && c <= 'Z' {
			letters = append(letters, c)
		}
	}
	if len(letters) == 0 {
		return "0000"
	}

	var code strings.Builder
	code.WriteByte(letters[0])
	prev := digits[letters[0]]

	for i := 1; i < len(letters) && code.Len() < 4; i++ {
		d, ok := digits[letters[i]]
		if ok && d != prev {
			code.WriteByte(d)
		}
		if ok {
			prev = d
		}
	}

	for code.Len() < 4 {
		code.WriteByte('0')
	}
	return code.String()
}
