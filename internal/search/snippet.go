package search

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// buildSnippet extracts a bounded context window around the first match
// in body and returns it twice: plain and with every matched phrase and
// term wrapped in <mark>, original casing preserved. An empty body
// yields empty snippets; a body that matched only via its heading, or
// whose lowercase form differs in byte length, yields a plain leading
// excerpt with no markers.
func buildSnippet(body string, matched []string, width int) (plain, highlighted string) {
	if body == "" {
		return "", ""
	}

	// Offsets are found in the lowered body but slice the original, so
	// they are only trustworthy when folding preserves byte positions.
	// Same rule as highlight.
	if len(strings.ToLower(body)) != len(body) {
		plain = leadingExcerpt(body, width)
		return plain, plain
	}

	pos, matchLen := firstMatch(body, matched)
	if pos < 0 {
		plain = leadingExcerpt(body, width)
		return plain, plain
	}

	snippet := window(body, pos, matchLen, width)
	return snippet, highlight(snippet, matched)
}

// firstMatch locates the earliest case-insensitive occurrence of any
// matched phrase or term. At the same offset the longest match wins, so
// phrases take precedence over the single terms they contain.
func firstMatch(body string, matched []string) (pos, length int) {
	lower := strings.ToLower(body)
	pos, length = -1, 0
	for _, m := range matched {
		needle := strings.ToLower(m)
		if needle == "" {
			continue
		}
		idx := strings.Index(lower, needle)
		if idx < 0 {
			continue
		}
		if pos < 0 || idx < pos || (idx == pos && len(needle) > length) {
			pos, length = idx, len(needle)
		}
	}
	return pos, length
}

// window slices a ~width window centered on the match, truncating at
// word boundaries where feasible and adding ellipses when the window
// does not cover the full text.
func window(body string, pos, matchLen, width int) string {
	start := pos - width/2
	if start < 0 {
		start = 0
	}
	end := pos + matchLen + width/2
	if end > len(body) {
		end = len(body)
	}

	// Prefer word boundaries over mid-word cuts.
	if start > 0 {
		if space := strings.LastIndex(body[:start], " "); space >= 0 {
			start = space + 1
		}
	}
	if end < len(body) {
		if space := strings.Index(body[end:], " "); space >= 0 {
			end += space
		} else {
			end = len(body)
		}
	}

	// Never split a multi-byte rune.
	for start > 0 && !utf8.RuneStart(body[start]) {
		start--
	}
	for end < len(body) && !utf8.RuneStart(body[end]) {
		end++
	}

	snippet := body[start:end]
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(body) {
		snippet = snippet + "..."
	}
	return snippet
}

// leadingExcerpt returns the first width characters of body, cut at a
// word boundary, with a trailing ellipsis when truncated.
func leadingExcerpt(body string, width int) string {
	if len(body) <= width {
		return body
	}
	end := width
	if space := strings.LastIndex(body[:end], " "); space > 0 {
		end = space
	}
	for end > 0 && !utf8.RuneStart(body[end]) {
		end--
	}
	return body[:end] + "..."
}

// highlight wraps every case-insensitive occurrence of every matched
// phrase and term in <mark>, scanning the snippet once. Overlaps resolve
// to the longest needle at a given offset. Highlighting is skipped when
// lowercasing changes byte offsets (non-ASCII case folding), since the
// marker positions could no longer be trusted.
func highlight(snippet string, matched []string) string {
	if snippet == "" || len(matched) == 0 {
		return snippet
	}

	lower := strings.ToLower(snippet)
	if len(lower) != len(snippet) {
		return snippet
	}

	needles := make([]string, 0, len(matched))
	for _, m := range matched {
		if n := strings.ToLower(m); n != "" {
			needles = append(needles, n)
		}
	}
	// Longest first, so a phrase beats the terms it contains.
	sort.Slice(needles, func(i, j int) bool {
		return len(needles[i]) > len(needles[j])
	})

	var b strings.Builder
	b.Grow(len(snippet) + 16*len(needles))

	i := 0
	for i < len(snippet) {
		n := needleAt(lower, i, needles)
		if n == 0 {
			b.WriteByte(snippet[i])
			i++
			continue
		}
		b.WriteString("<mark>")
		b.WriteString(snippet[i : i+n])
		b.WriteString("</mark>")
		i += n
	}
	return b.String()
}

// needleAt returns the length of the longest needle matching at offset
// i, or zero. Needles must be pre-sorted longest first.
func needleAt(lower string, i int, needles []string) int {
	for _, n := range needles {
		if strings.HasPrefix(lower[i:], n) {
			return len(n)
		}
	}
	return 0
}
