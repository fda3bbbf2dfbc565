package types

import "errors"

// SearchResult represents a single search hit with relevance information.
//
// A result is either a title-level match (IsTitleMatch true, no chapter or
// section) or a section-level match (chapter and section both present).
// Chapter-only matches do not exist.
type SearchResult struct {
	// Identification
	TitleNumber int
	TitleName   string

	// Section-level results only; empty for title matches.
	ChapterNumber  string
	ChapterHeading string
	SectionNumber  string
	SectionHeading string

	IsTitleMatch bool

	// Scoring
	Score        int      // Additive match points; always > 0 for included results
	MatchedTerms []string // Subset of the query's phrases and terms
	Rank         int      // Position in the ordered result set (1-based)

	// Display
	Snippet            string // Plain context window around the best match
	HighlightedSnippet string // Same window with <mark> wrapping
}

// Validate checks the search result invariants.
func (r *SearchResult) Validate() error {
	if !ValidTitleNumber(r.TitleNumber) {
		return ErrInvalidTitleNumber
	}
	if r.Score <= 0 {
		return ErrNonPositiveScore
	}
	if r.Rank < 1 {
		return ErrInvalidRank
	}
	hasChapter := r.ChapterNumber != ""
	hasSection := r.SectionNumber != ""
	if hasChapter != hasSection {
		return ErrChapterOnlyMatch
	}
	if r.IsTitleMatch == hasSection {
		return ErrChapterOnlyMatch
	}
	return nil
}

// SearchStats summarizes a result set for presentation.
type SearchStats struct {
	TotalResults   int
	TitleMatches   int
	SectionMatches int
	TitlesFound    int // Distinct titles in the result set
	ChaptersFound  int // Distinct (title, chapter) pairs among section matches
}

// Search result errors
var (
	ErrNonPositiveScore = errors.New("relevance score must be positive")
	ErrInvalidRank      = errors.New("rank must be >= 1")
	ErrChapterOnlyMatch = errors.New("result must match a whole title or a full chapter+section")
)
