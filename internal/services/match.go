package services

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Candidate is one (id, name) pair offered to the matcher
type Candidate struct {
	ID   string
	Name string
}

// NormalizeText prepares free text for comparison: trim, locale-aware
// lowercase and collapse internal whitespace runs to a single space.
// Turkish folding matters here: "İ" must become "i", not "i̇".
func NormalizeText(s string) string {
	lowered := cases.Lower(language.Turkish).String(s)
	return strings.Join(strings.Fields(lowered), " ")
}

// Levenshtein computes the edit distance between two strings over code
// points, with insert, delete and substitute all costing 1.
func Levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// ResolveBestMatch resolves free text to the single best candidate.
// Resolution order: exact normalized match, then prefix matches, then
// substring matches, then global minimum edit distance. The last tier is
// deliberately thresholdless: any non-empty input against a non-empty
// candidate set resolves to something. Ties break on the first candidate
// encountered.
func ResolveBestMatch(candidates []Candidate, input string) (string, bool) {
	needle := NormalizeText(input)
	if needle == "" || len(candidates) == 0 {
		return "", false
	}

	normalized := make([]string, len(candidates))
	for i, c := range candidates {
		normalized[i] = NormalizeText(c.Name)
	}

	// Exact match wins outright
	for i, name := range normalized {
		if name == needle {
			return candidates[i].ID, true
		}
	}

	if id, ok := closestWhere(candidates, normalized, needle, strings.HasPrefix); ok {
		return id, true
	}
	if id, ok := closestWhere(candidates, normalized, needle, strings.Contains); ok {
		return id, true
	}

	// Global fallback over every candidate
	bestIdx := 0
	bestDist := Levenshtein(normalized[0], needle)
	for i := 1; i < len(normalized); i++ {
		if d := Levenshtein(normalized[i], needle); d < bestDist {
			bestIdx, bestDist = i, d
		}
	}
	return candidates[bestIdx].ID, true
}

// closestWhere narrows candidates with the given predicate and picks the
// single survivor, or the minimum-distance one when several remain.
func closestWhere(candidates []Candidate, normalized []string, needle string, match func(name, needle string) bool) (string, bool) {
	bestIdx := -1
	bestDist := 0
	for i, name := range normalized {
		if !match(name, needle) {
			continue
		}
		d := Levenshtein(name, needle)
		if bestIdx == -1 || d < bestDist {
			bestIdx, bestDist = i, d
		}
	}
	if bestIdx == -1 {
		return "", false
	}
	return candidates[bestIdx].ID, true
}

// ResolveStrictMatch is ResolveBestMatch without the thresholdless final
// tier: exact, then prefix, then substring, nothing else. The dialogue uses
// it where a wrong guess would silently file the entity under the wrong
// bucket and a re-prompt is cheap.
func ResolveStrictMatch(candidates []Candidate, input string) (string, bool) {
	needle := NormalizeText(input)
	if needle == "" || len(candidates) == 0 {
		return "", false
	}

	normalized := make([]string, len(candidates))
	for i, c := range candidates {
		normalized[i] = NormalizeText(c.Name)
	}

	for i, name := range normalized {
		if name == needle {
			return candidates[i].ID, true
		}
	}
	if id, ok := closestWhere(candidates, normalized, needle, strings.HasPrefix); ok {
		return id, true
	}
	return closestWhere(candidates, normalized, needle, strings.Contains)
}

// SplitFullName splits input into a (given name, family name) pair for the
// strict person lookups. Requires at least two tokens; middle tokens are
// ignored. No fuzzy fallback here: assigning the wrong mentor or student is
// worse than re-asking.
func SplitFullName(input string) (string, string, bool) {
	tokens := strings.Fields(input)
	if len(tokens) < 2 {
		return "", "", false
	}
	return tokens[0], tokens[len(tokens)-1], true
}
