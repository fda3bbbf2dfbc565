package types

// SuggestionType tags what a suggestion navigates to.
type SuggestionType string

const (
	SuggestTitle   SuggestionType = "title"
	SuggestChapter SuggestionType = "chapter"
	SuggestSection SuggestionType = "section"
	// SuggestSearch is the trailing "search for this query" entry.
	SuggestSearch SuggestionType = "search"
)

// Suggestion is a lightweight autocomplete entry. Only the identifying
// numbers needed to build a navigation target are populated; a title
// suggestion carries no chapter or section number.
type Suggestion struct {
	Type          SuggestionType
	Text          string
	TitleNumber   int    // Zero for SuggestSearch
	ChapterNumber string // Chapter and section suggestions only
	SectionNumber string // Section suggestions only
}
