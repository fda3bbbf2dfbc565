// Package search implements the relevance-ranked search core over the
// United States Code corpus.
//
// The engine is a linear scan over the immutable document store with an
// additive point-scoring heuristic:
//
//   - +10 per distinct quoted phrase found in a unit's heading+body
//   - +3 per distinct free term found in the heading
//   - +1 per distinct free term found in the body
//
// Zero-scoring candidates are excluded. A whole title whose sections all
// miss can still match on its own name, producing a title-level result.
//
// # Basic Usage
//
//	engine := search.NewEngine(store, search.Options{})
//
//	resp := engine.Search(ctx, search.Request{
//	    Query:   `"due process" hearing`,
//	    Filters: search.ParseFilters("5", "", ""),
//	    Sort:    search.SortRelevance,
//	})
//
//	for _, r := range resp.Results {
//	    fmt.Printf("[%d] %s (score: %d)\n", r.Rank, r.SectionHeading, r.Score)
//	}
//
// # Fail-closed contract
//
// Search never returns an error: an empty or unparsable query yields an
// empty result set, malformed filters are treated as absent, and a title
// that cannot be loaded contributes nothing. The engine holds no mutable
// state and is safe for concurrent callers sharing one store snapshot.
//
// # Suggestions
//
// Suggest is a deliberately simpler substring lookup over title, chapter,
// and section headings for autocomplete, separate from full search:
//
//	suggestions := engine.Suggest(ctx, "cong", 10)
package search
