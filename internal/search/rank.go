package search

import (
	"sort"
	"strings"

	"github.com/MKLambda/uscsearch/pkg/types"
)

// SortKey selects the result ordering.
type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortTitle     SortKey = "title"
	SortChapter   SortKey = "chapter"
	SortSection   SortKey = "section"
)

// ParseSortKey maps a raw request value to a SortKey, defaulting to
// relevance for anything unrecognized.
func ParseSortKey(raw string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(raw))) {
	case SortTitle:
		return SortTitle
	case SortChapter:
		return SortChapter
	case SortSection:
		return SortSection
	default:
		return SortRelevance
	}
}

// Rank orders results in place by the given key. The sort is stable, so
// fields not compared keep their insertion order.
//
// Tie-breaks: relevance falls back to ascending title, chapter, section
// (absent divisions first); the positional keys fall back to descending
// score.
func Rank(results []types.SearchResult, key SortKey) {
	switch key {
	case SortTitle:
		sort.SliceStable(results, func(i, j int) bool {
			a, b := &results[i], &results[j]
			if a.TitleNumber != b.TitleNumber {
				return a.TitleNumber < b.TitleNumber
			}
			return a.Score > b.Score
		})
	case SortChapter:
		sort.SliceStable(results, func(i, j int) bool {
			a, b := &results[i], &results[j]
			if a.TitleNumber != b.TitleNumber {
				return a.TitleNumber < b.TitleNumber
			}
			if c := compareDivision(a.ChapterNumber, b.ChapterNumber); c != 0 {
				return c < 0
			}
			return a.Score > b.Score
		})
	case SortSection:
		sort.SliceStable(results, func(i, j int) bool {
			a, b := &results[i], &results[j]
			if a.TitleNumber != b.TitleNumber {
				return a.TitleNumber < b.TitleNumber
			}
			if c := compareDivision(a.ChapterNumber, b.ChapterNumber); c != 0 {
				return c < 0
			}
			if c := compareDivision(a.SectionNumber, b.SectionNumber); c != 0 {
				return c < 0
			}
			return a.Score > b.Score
		})
	default: // SortRelevance
		sort.SliceStable(results, func(i, j int) bool {
			a, b := &results[i], &results[j]
			if a.Score != b.Score {
				return a.Score > b.Score
			}
			if a.TitleNumber != b.TitleNumber {
				return a.TitleNumber < b.TitleNumber
			}
			if c := compareDivision(a.ChapterNumber, b.ChapterNumber); c != 0 {
				return c < 0
			}
			return compareDivision(a.SectionNumber, b.SectionNumber) < 0
		})
	}
}

// compareDivision orders division numbers like "1", "1A", "12".
//
// Rule: split into a leading numeric prefix and the remaining suffix.
// Numeric prefixes compare as integers, then suffixes lexicographically,
// so "2" < "10" and "1" < "1A" < "2". An absent number sorts first; a
// number with no numeric prefix sorts after all numeric ones.
func compareDivision(a, b string) int {
	if a == b {
		return 0
	}
	if a == "" {
		return -1
	}
	if b == "" {
		return 1
	}

	na, sa, okA := splitNumericPrefix(a)
	nb, sb, okB := splitNumericPrefix(b)

	switch {
	case okA && okB:
		if na != nb {
			if na < nb {
				return -1
			}
			return 1
		}
		return strings.Compare(sa, sb)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// splitNumericPrefix returns the leading integer of s and the remainder.
// ok is false when s does not start with a digit.
func splitNumericPrefix(s string) (n int, suffix string, ok bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		n = n*10 + int(s[i]-'0')
		i++
	}
	if i == 0 {
		return 0, s, false
	}
	return n, s[i:], true
}
