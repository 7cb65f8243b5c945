// Package textnorm canonicalizes French text for matching. City names,
// station names, and input sentences all pass through the same Normalize so
// every comparison in the resolver is normalization-consistent.
package textnorm

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var (
	apostropheVariants = strings.NewReplacer("’", "'", "ʼ", "'", "`", "'")
	disallowedChars    = regexp.MustCompile(`[^a-z0-9'\s\-]`)
	whitespaceRuns     = regexp.MustCompile(`\s+`)
)

// Normalize lowercases, folds accents to ASCII, unifies apostrophe variants,
// replaces every character outside letters/digits/apostrophe/space/hyphen
// with a space, collapses whitespace, and trims. It is idempotent:
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	s = unidecode.Unidecode(s)
	s = strings.ToLower(s)
	s = apostropheVariants.Replace(s)
	s = disallowedChars.ReplaceAllString(s, " ")
	s = whitespaceRuns.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ContainsWord reports whether needle occurs in haystack as a whole word,
// where words are delimited by start/end of string or whitespace. Both
// arguments are expected to be normalized already.
func ContainsWord(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	idx := 0
	for {
		i := strings.Index(haystack[idx:], needle)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(needle)
		leftOK := start == 0 || haystack[start-1] == ' '
		rightOK := end == len(haystack) || haystack[end] == ' '
		if leftOK && rightOK {
			return true
		}
		idx = start + 1
		if idx >= len(haystack) {
			return false
		}
	}
}
