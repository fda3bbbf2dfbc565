package search

import (
	"regexp"
	"strings"
)

// Query is a raw search string decomposed into exact phrases and free
// terms. Phrases and terms are tracked separately because they score
// differently; a term equal to a phrase is kept in both sets.
type Query struct {
	Phrases []string // Quoted spans, normalized lowercase, deduplicated
	Terms   []string // Remaining whitespace-delimited tokens, deduplicated
}

// IsEmpty reports whether the query matches nothing by construction.
func (q Query) IsEmpty() bool {
	return len(q.Phrases) == 0 && len(q.Terms) == 0
}

// phraseRe captures double-quoted spans. An unterminated quote simply
// never matches, so everything after it falls through as ordinary terms.
var phraseRe = regexp.MustCompile(`"([^"]+)"`)

// ParseQuery lowercases and trims raw, extracts quoted phrases, then
// splits the remainder on whitespace into terms. Parsing is best-effort
// and never fails; a blank query yields an empty Query.
func ParseQuery(raw string) Query {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return Query{}
	}

	var q Query
	seenPhrases := make(map[string]bool)
	for _, m := range phraseRe.FindAllStringSubmatch(normalized, -1) {
		phrase := strings.TrimSpace(m[1])
		if phrase == "" || seenPhrases[phrase] {
			continue
		}
		seenPhrases[phrase] = true
		q.Phrases = append(q.Phrases, phrase)
	}

	remainder := phraseRe.ReplaceAllString(normalized, " ")
	seenTerms := make(map[string]bool)
	for _, tok := range strings.Fields(remainder) {
		tok = strings.Trim(tok, `"`)
		if tok == "" || seenTerms[tok] {
			continue
		}
		seenTerms[tok] = true
		q.Terms = append(q.Terms, tok)
	}

	return q
}
