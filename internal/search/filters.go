package search

import (
	"strconv"
	"strings"
)

// Filters restrict search candidates to exact title/chapter/section
// numbers. A nil field means "match any". Filters are applied before
// scoring; chapter and section filters suppress title-level candidates
// entirely, since those have no chapter or section to compare.
type Filters struct {
	Title   *int
	Chapter *int
	Section *int
}

// ParseFilters builds Filters from raw request values. Non-numeric or
// empty values are treated as absent, never rejected, to keep search
// permissive.
func ParseFilters(title, chapter, section string) Filters {
	return Filters{
		Title:   parseOptionalInt(title),
		Chapter: parseOptionalInt(chapter),
		Section: parseOptionalInt(section),
	}
}

func parseOptionalInt(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// matchesNumber reports whether a division number like "5" equals the
// numeric filter value. Alphanumeric numbers such as "1A" never match a
// numeric filter.
func matchesNumber(num string, want int) bool {
	n, err := strconv.Atoi(num)
	return err == nil && n == want
}
