package search

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MKLambda/uscsearch/pkg/types"
)

// Per-type caps keep any one suggestion kind from crowding out the rest.
const (
	maxTitleSuggestions   = 5
	maxChapterSuggestions = 3
	maxSectionSuggestions = 5
	minSuggestChars       = 2
)

// Suggest returns autocomplete entries for a partial query: titles
// first, then chapters, then sections, each matched by case-insensitive
// substring against the heading, plus a trailing generic "search for
// this" entry when the bound is not yet reached.
//
// Inputs shorter than two characters after trimming yield an empty
// sequence, never an error.
func (e *Engine) Suggest(ctx context.Context, partial string, limit int) []types.Suggestion {
	needle := strings.ToLower(strings.TrimSpace(partial))
	if utf8.RuneCountInString(needle) < minSuggestChars {
		return nil
	}
	if limit <= 0 {
		limit = e.suggestLimit
	}

	summaries, err := e.store.ListTitles(ctx)
	if err != nil {
		return nil
	}

	var suggestions []types.Suggestion

	titleCount := 0
	for _, summary := range summaries {
		if titleCount >= maxTitleSuggestions || len(suggestions) >= limit {
			break
		}
		if !strings.Contains(strings.ToLower(summary.Name), needle) {
			continue
		}
		suggestions = append(suggestions, types.Suggestion{
			Type:        types.SuggestTitle,
			TitleNumber: summary.Number,
			Text:        fmt.Sprintf("Title %d: %s", summary.Number, summary.Name),
		})
		titleCount++
	}

	// Chapters rank above sections, so collect both before appending.
	var chapterSugg, sectionSugg []types.Suggestion
	for _, summary := range summaries {
		if len(chapterSugg) >= maxChapterSuggestions && len(sectionSugg) >= maxSectionSuggestions {
			break
		}

		title, err := e.store.GetTitle(ctx, summary.Number)
		if err != nil {
			continue
		}

		for ci := range title.Chapters {
			chapter := &title.Chapters[ci]

			if len(chapterSugg) < maxChapterSuggestions &&
				strings.Contains(strings.ToLower(chapter.Heading), needle) {
				chapterSugg = append(chapterSugg, types.Suggestion{
					Type:          types.SuggestChapter,
					TitleNumber:   title.Number,
					ChapterNumber: chapter.Number,
					Text: fmt.Sprintf("Title %d, Chapter %s: %s",
						title.Number, chapter.Number, chapter.Heading),
				})
			}

			for si := range chapter.Sections {
				if len(sectionSugg) >= maxSectionSuggestions {
					break
				}
				section := &chapter.Sections[si]
				if !strings.Contains(strings.ToLower(section.Heading), needle) {
					continue
				}
				sectionSugg = append(sectionSugg, types.Suggestion{
					Type:          types.SuggestSection,
					TitleNumber:   title.Number,
					ChapterNumber: chapter.Number,
					SectionNumber: section.Number,
					Text: fmt.Sprintf("Title %d, Chapter %s, Section %s: %s",
						title.Number, chapter.Number, section.Number, section.Heading),
				})
			}
		}
	}

	for _, s := range chapterSugg {
		if len(suggestions) >= limit {
			break
		}
		suggestions = append(suggestions, s)
	}
	for _, s := range sectionSugg {
		if len(suggestions) >= limit {
			break
		}
		suggestions = append(suggestions, s)
	}

	if len(suggestions) < limit {
		suggestions = append(suggestions, types.Suggestion{
			Type: types.SuggestSearch,
			Text: fmt.Sprintf("Search for %q in all titles", strings.TrimSpace(partial)),
		})
	}

	return suggestions
}
