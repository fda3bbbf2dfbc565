package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKLambda/uscsearch/internal/corpus"
	"github.com/MKLambda/uscsearch/pkg/types"
)

// Scoring weights. Points are additive across all matching signals.
const (
	phrasePoints      = 10 // Exact phrase found in heading+body
	headingTermPoints = 3  // Free term found in the heading
	bodyTermPoints    = 1  // Free term found in the body
)

// Options tunes the engine. Zero values select the defaults.
type Options struct {
	SnippetWidth int // Context window size in characters (default: 160)
	SuggestLimit int // Default suggestion bound (default: 10)
	MaxResults   int // Hard cap on results per search; zero means no cap
}

// Request contains parameters for one search operation.
type Request struct {
	Query   string
	Filters Filters
	Sort    SortKey
	Limit   int // Max results returned; zero means unbounded
}

// Response contains the ordered results and summary statistics. Stats
// describe the full match set even when Limit truncated the results.
type Response struct {
	Results  []types.SearchResult
	Stats    types.SearchStats
	Duration time.Duration
}

// Engine performs relevance-ranked search over an immutable corpus
// snapshot. It holds no mutable state and is safe for concurrent use.
type Engine struct {
	store        corpus.Store
	snippetWidth int
	suggestLimit int
	maxResults   int
}

// NewEngine creates an Engine reading from store.
func NewEngine(store corpus.Store, opts Options) *Engine {
	width := opts.SnippetWidth
	if width <= 0 {
		width = 160
	}
	limit := opts.SuggestLimit
	if limit <= 0 {
		limit = 10
	}
	return &Engine{
		store:        store,
		snippetWidth: width,
		suggestLimit: limit,
		maxResults:   opts.MaxResults,
	}
}

// Search scans the corpus for the parsed query and returns ranked
// results. It fails closed: an empty query, malformed filters, or an
// unloadable title all narrow the result set instead of erroring.
func (e *Engine) Search(ctx context.Context, req Request) *Response {
	start := time.Now()
	resp := &Response{}

	query := ParseQuery(req.Query)
	if query.IsEmpty() {
		resp.Duration = time.Since(start)
		return resp
	}

	summaries, err := e.store.ListTitles(ctx)
	if err != nil {
		resp.Duration = time.Since(start)
		return resp
	}

	var results []types.SearchResult
	for _, summary := range summaries {
		if ctx.Err() != nil {
			break
		}
		if req.Filters.Title != nil && summary.Number != *req.Filters.Title {
			continue
		}

		title, err := e.store.GetTitle(ctx, summary.Number)
		if err != nil {
			// A title that cannot be loaded contributes nothing.
			continue
		}
		results = append(results, e.scanTitle(title, query, req.Filters)...)
	}

	Rank(results, req.Sort)
	for i := range results {
		results[i].Rank = i + 1
	}

	resp.Stats = computeStats(results)
	limit := req.Limit
	if e.maxResults > 0 && (limit <= 0 || limit > e.maxResults) {
		limit = e.maxResults
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	resp.Results = results
	resp.Duration = time.Since(start)
	return resp
}

// scanTitle scores every candidate unit in one title. Section candidates
// come first; the title as a whole is a candidate only when none of its
// sections matched and no chapter/section filter is in force.
func (e *Engine) scanTitle(title *types.Title, query Query, filters Filters) []types.SearchResult {
	var results []types.SearchResult

	for ci := range title.Chapters {
		chapter := &title.Chapters[ci]
		if filters.Chapter != nil && !matchesNumber(chapter.Number, *filters.Chapter) {
			continue
		}

		for si := range chapter.Sections {
			section := &chapter.Sections[si]
			if filters.Section != nil && !matchesNumber(section.Number, *filters.Section) {
				continue
			}

			score, matched := scoreUnit(section.Heading, section.Body, query)
			if score == 0 {
				continue
			}

			snippet, highlighted := buildSnippet(section.Body, matched, e.snippetWidth)
			results = append(results, types.SearchResult{
				TitleNumber:        title.Number,
				TitleName:          title.Name,
				ChapterNumber:      chapter.Number,
				ChapterHeading:     chapter.Heading,
				SectionNumber:      section.Number,
				SectionHeading:     section.Heading,
				Score:              score,
				MatchedTerms:       matched,
				Snippet:            snippet,
				HighlightedSnippet: highlighted,
			})
		}
	}

	if len(results) > 0 || filters.Chapter != nil || filters.Section != nil {
		return results
	}

	// Title-level candidate: the heading is the title's own name.
	score, matched := scoreUnit(title.Name, "", query)
	if score == 0 {
		return results
	}

	terms := strings.Join(matched, ", ")
	marked := make([]string, len(matched))
	for i, m := range matched {
		marked[i] = "<mark>" + m + "</mark>"
	}
	results = append(results, types.SearchResult{
		TitleNumber:        title.Number,
		TitleName:          title.Name,
		IsTitleMatch:       true,
		Score:              score,
		MatchedTerms:       matched,
		Snippet:            fmt.Sprintf("Title contains the search term(s): %s", terms),
		HighlightedSnippet: fmt.Sprintf("Title contains the search term(s): %s", strings.Join(marked, ", ")),
	})
	return results
}

// scoreUnit computes the relevance score for one candidate unit. Matched
// phrases and terms are returned in query order, so identical inputs
// always produce identical output.
func scoreUnit(heading, body string, query Query) (int, []string) {
	headingLower := strings.ToLower(heading)
	bodyLower := strings.ToLower(body)
	searchable := headingLower + " " + bodyLower

	score := 0
	var matched []string

	for _, phrase := range query.Phrases {
		if strings.Contains(searchable, phrase) {
			score += phrasePoints
			matched = append(matched, phrase)
		}
	}

	for _, term := range query.Terms {
		points := 0
		if strings.Contains(headingLower, term) {
			points += headingTermPoints
		}
		if strings.Contains(bodyLower, term) {
			points += bodyTermPoints
		}
		if points > 0 {
			score += points
			matched = append(matched, term)
		}
	}

	return score, matched
}

// computeStats summarizes the full result set.
func computeStats(results []types.SearchResult) types.SearchStats {
	stats := types.SearchStats{TotalResults: len(results)}

	titles := make(map[int]bool)
	chapters := make(map[string]bool)
	for i := range results {
		r := &results[i]
		titles[r.TitleNumber] = true
		if r.IsTitleMatch {
			stats.TitleMatches++
			continue
		}
		stats.SectionMatches++
		chapters[fmt.Sprintf("%d/%s", r.TitleNumber, r.ChapterNumber)] = true
	}

	stats.TitlesFound = len(titles)
	stats.ChaptersFound = len(chapters)
	return stats
}
