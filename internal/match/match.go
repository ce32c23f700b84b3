// Package match provides the small text-matching primitives the catalog
// lookups and the rule extractor are built on: whole-word phrase
// containment and levenshtein-based fuzzy matching.
package match

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// DefaultCutoff is the minimum similarity for a fuzzy match, matching the
// tolerance the assistant has always used for typo recovery.
const DefaultCutoff = 0.7

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// ContainsWord reports whether phrase occurs in text bounded by
// non-word characters on both sides. Matching is case-insensitive.
// "hi" is not contained in "delhi"; it is contained in "hi there".
func ContainsWord(text, phrase string) bool {
	text = strings.ToLower(text)
	phrase = strings.ToLower(strings.TrimSpace(phrase))
	if phrase == "" {
		return false
	}
	for i := 0; i+len(phrase) <= len(text); i++ {
		if text[i:i+len(phrase)] != phrase {
			continue
		}
		before, _ := utf8.DecodeLastRuneInString(text[:i])
		after, _ := utf8.DecodeRuneInString(text[i+len(phrase):])
		if !isWordRune(before) && !isWordRune(after) {
			return true
		}
	}
	return false
}

// HasWordPrefix reports whether text starts with phrase on a word
// boundary. "hi there" has word prefix "hi"; "high there" does not.
func HasWordPrefix(text, phrase string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	phrase = strings.ToLower(strings.TrimSpace(phrase))
	if phrase == "" || !strings.HasPrefix(text, phrase) {
		return false
	}
	after, _ := utf8.DecodeRuneInString(text[len(phrase):])
	return !isWordRune(after)
}

// HasWordSuffix reports whether text ends with phrase on a word boundary.
func HasWordSuffix(text, phrase string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	phrase = strings.ToLower(strings.TrimSpace(phrase))
	if phrase == "" || !strings.HasSuffix(text, phrase) {
		return false
	}
	before, _ := utf8.DecodeLastRuneInString(text[:len(text)-len(phrase)])
	return !isWordRune(before)
}

// Similarity returns 1 - editDistance/maxLen in [0,1], case-insensitive.
func Similarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 0
	}
	if a == b {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}

// Closest returns the candidate most similar to input, provided the
// similarity reaches cutoff. The empty string means no candidate qualified.
func Closest(input string, candidates []string, cutoff float64) string {
	best := ""
	bestScore := cutoff
	for _, c := range candidates {
		if s := Similarity(input, c); s >= bestScore {
			best = c
			bestScore = s
		}
	}
	return best
}

// Words splits text into lowercase word tokens.
func Words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r) && r != '.' && r != '%'
	})
}
