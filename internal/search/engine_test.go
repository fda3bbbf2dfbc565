package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKLambda/uscsearch/internal/corpus"
	"github.com/MKLambda/uscsearch/pkg/types"
)

// mockStore implements corpus.Store over an in-memory title map.
type mockStore struct {
	titles  map[int]*types.Title
	listErr error
	getErr  map[int]error
}

func (m *mockStore) GetTitle(ctx context.Context, number int) (*types.Title, error) {
	if err := m.getErr[number]; err != nil {
		return nil, err
	}
	title, ok := m.titles[number]
	if !ok {
		return nil, corpus.ErrNotFound
	}
	return title, nil
}

func (m *mockStore) ListTitles(ctx context.Context) ([]types.TitleSummary, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var summaries []types.TitleSummary
	for n := 1; n <= types.MaxTitleNumber; n++ {
		if title, ok := m.titles[n]; ok {
			summaries = append(summaries, types.TitleSummary{Number: n, Name: title.Name})
		}
	}
	return summaries, nil
}

// testCorpus builds a small store covering the behaviors under test.
func testCorpus() *mockStore {
	return &mockStore{
		titles: map[int]*types.Title{
			1: {
				Number: 1,
				Name:   "General Provisions",
				Chapters: []types.Chapter{
					{
						Number:  "1",
						Heading: "RULES OF CONSTRUCTION",
						Sections: []types.Section{
							{
								Number:  "1",
								Heading: "Words denoting number, gender, and so forth",
								Body:    "In determining the meaning of any Act of Congress, unless the context indicates otherwise, words importing the singular include and apply to several persons.",
							},
							{
								Number:  "2",
								Heading: "County as including parish",
								Body:    "The word county includes a parish, or any other equivalent subdivision of a State.",
							},
						},
					},
				},
			},
			5: {
				Number: 5,
				Name:   "Government Organization and Employees",
				Chapters: []types.Chapter{
					{
						Number:  "3",
						Heading: "POWERS",
						Sections: []types.Section{
							{
								Number:  "301",
								Heading: "Departmental regulations",
								Body:    "The head of an Executive department may prescribe regulations, not inconsistent with law, for the government of his department. Congress delegates this power.",
							},
						},
					},
				},
			},
			14: {
				Number: 14,
				Name:   "Coast Guard",
				Chapters: []types.Chapter{
					{
						Number:  "1",
						Heading: "ESTABLISHMENT AND DUTIES",
						Sections: []types.Section{
							{
								Number:  "101",
								Heading: "Establishment of Coast Guard",
								Body:    "The Coast Guard shall be a military service. No person shall be deprived of due process of law in its proceedings.",
							},
						},
					},
				},
			},
		},
		getErr: map[int]error{},
	}
}

func newTestEngine(store corpus.Store) *Engine {
	return NewEngine(store, Options{})
}

func TestSearch_NoMatchIsEmpty(t *testing.T) {
	e := newTestEngine(testCorpus())

	resp := e.Search(context.Background(), Request{Query: "zymurgy"})

	assert.Empty(t, resp.Results)
	assert.Equal(t, 0, resp.Stats.TotalResults)
}

func TestSearch_TermScoring(t *testing.T) {
	e := newTestEngine(testCorpus())

	resp := e.Search(context.Background(), Request{Query: "context"})

	require.Len(t, resp.Results, 1)
	r := resp.Results[0]
	assert.Equal(t, 1, r.TitleNumber)
	assert.Equal(t, "1", r.SectionNumber)
	assert.False(t, r.IsTitleMatch)
	assert.Equal(t, bodyTermPoints, r.Score)
	assert.Equal(t, []string{"context"}, r.MatchedTerms)
	assert.Equal(t, 1, r.Rank)
}

func TestSearch_HeadingAndBodyTermScoresAdd(t *testing.T) {
	e := newTestEngine(testCorpus())

	// "county" appears in both the heading and the body of 1 USC 2.
	resp := e.Search(context.Background(), Request{Query: "county"})

	require.Len(t, resp.Results, 1)
	assert.Equal(t, headingTermPoints+bodyTermPoints, resp.Results[0].Score)
}

func TestSearch_PhraseScoring(t *testing.T) {
	e := newTestEngine(testCorpus())

	resp := e.Search(context.Background(), Request{Query: `"due process"`})

	require.Len(t, resp.Results, 1)
	r := resp.Results[0]
	assert.Equal(t, 14, r.TitleNumber)
	assert.Equal(t, phrasePoints, r.Score)
	assert.Equal(t, []string{"due process"}, r.MatchedTerms)
	assert.Contains(t, r.HighlightedSnippet, "<mark>due process</mark>")
}

func TestSearch_PhraseAndTermsAccumulate(t *testing.T) {
	e := newTestEngine(testCorpus())

	// Phrase 10 + "law" in body 1 = 11 against 14 USC 101.
	resp := e.Search(context.Background(), Request{
		Query:   `"due process" law`,
		Filters: ParseFilters("14", "", ""),
	})

	require.Len(t, resp.Results, 1)
	assert.Equal(t, phrasePoints+bodyTermPoints, resp.Results[0].Score)
	assert.Equal(t, []string{"due process", "law"}, resp.Results[0].MatchedTerms)
}

func TestSearch_TitleFilterExcludesOtherTitles(t *testing.T) {
	e := newTestEngine(testCorpus())

	// "congress" matches sections in titles 1 and 5; the filter keeps 5.
	unfiltered := e.Search(context.Background(), Request{Query: "congress"})
	require.Len(t, unfiltered.Results, 2)

	resp := e.Search(context.Background(), Request{
		Query:   "congress",
		Filters: ParseFilters("5", "", ""),
	})

	require.Len(t, resp.Results, 1)
	assert.Equal(t, 5, resp.Results[0].TitleNumber)
}

func TestSearch_ChapterAndSectionFilters(t *testing.T) {
	e := newTestEngine(testCorpus())

	resp := e.Search(context.Background(), Request{
		Query:   "congress",
		Filters: ParseFilters("", "1", ""),
	})
	require.Len(t, resp.Results, 1)
	assert.Equal(t, 1, resp.Results[0].TitleNumber)

	resp = e.Search(context.Background(), Request{
		Query:   "congress",
		Filters: ParseFilters("", "", "301"),
	})
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "301", resp.Results[0].SectionNumber)
}

func TestSearch_TitleLevelMatch(t *testing.T) {
	e := newTestEngine(testCorpus())

	// "guard" appears only in Title 14's name and a section heading+body.
	// "coast" in the title name with no section match elsewhere: use a
	// query hitting only the title name of Title 5.
	resp := e.Search(context.Background(), Request{Query: "organization"})

	require.Len(t, resp.Results, 1)
	r := resp.Results[0]
	assert.True(t, r.IsTitleMatch)
	assert.Equal(t, 5, r.TitleNumber)
	assert.Empty(t, r.ChapterNumber)
	assert.Empty(t, r.SectionNumber)
	assert.Equal(t, headingTermPoints, r.Score)
	assert.Contains(t, r.Snippet, "Title contains the search term(s): organization")
	assert.Contains(t, r.HighlightedSnippet, "<mark>organization</mark>")
}

func TestSearch_SectionMatchSuppressesTitleMatch(t *testing.T) {
	e := newTestEngine(testCorpus())

	// "coast" hits both Title 14's name and its section; only the
	// section-level result should surface.
	resp := e.Search(context.Background(), Request{Query: "coast"})

	require.Len(t, resp.Results, 1)
	assert.False(t, resp.Results[0].IsTitleMatch)
	assert.Equal(t, "101", resp.Results[0].SectionNumber)
}

func TestSearch_DivisionFilterSuppressesTitleMatch(t *testing.T) {
	e := newTestEngine(testCorpus())

	// A chapter filter makes title-level candidates ineligible even
	// when no section matches.
	resp := e.Search(context.Background(), Request{
		Query:   "organization",
		Filters: ParseFilters("", "3", ""),
	})

	assert.Empty(t, resp.Results)
}

func TestSearch_EmptyQueryFailsClosed(t *testing.T) {
	e := newTestEngine(testCorpus())

	for _, raw := range []string{"", "   ", `""`} {
		resp := e.Search(context.Background(), Request{Query: raw})
		assert.Empty(t, resp.Results, "query %q", raw)
	}
}

func TestSearch_StoreErrorsFailClosed(t *testing.T) {
	store := testCorpus()
	store.listErr = errors.New("disk gone")
	e := newTestEngine(store)

	resp := e.Search(context.Background(), Request{Query: "congress"})
	assert.Empty(t, resp.Results)

	// A single unloadable title narrows the set instead of failing.
	store = testCorpus()
	store.getErr[1] = errors.New("corrupt file")
	e = newTestEngine(store)

	resp = e.Search(context.Background(), Request{Query: "congress"})
	require.Len(t, resp.Results, 1)
	assert.Equal(t, 5, resp.Results[0].TitleNumber)
}

func TestSearch_LimitTruncatesButStatsCoverFullSet(t *testing.T) {
	e := newTestEngine(testCorpus())

	resp := e.Search(context.Background(), Request{Query: "congress", Limit: 1})

	assert.Len(t, resp.Results, 1)
	assert.Equal(t, 2, resp.Stats.TotalResults)
	assert.Equal(t, 2, resp.Stats.SectionMatches)
	assert.Equal(t, 2, resp.Stats.TitlesFound)
	assert.Equal(t, 2, resp.Stats.ChaptersFound)
}

func TestSearch_MaxResultsCapsUnboundedRequests(t *testing.T) {
	e := NewEngine(testCorpus(), Options{MaxResults: 1})

	resp := e.Search(context.Background(), Request{Query: "congress"})
	assert.Len(t, resp.Results, 1)
	assert.Equal(t, 2, resp.Stats.TotalResults)

	// A request limit above the cap is still capped.
	resp = e.Search(context.Background(), Request{Query: "congress", Limit: 50})
	assert.Len(t, resp.Results, 1)
}

func TestSearch_RanksAreSequential(t *testing.T) {
	e := newTestEngine(testCorpus())

	resp := e.Search(context.Background(), Request{Query: "congress shall"})

	require.NotEmpty(t, resp.Results)
	for i, r := range resp.Results {
		assert.Equal(t, i+1, r.Rank)
		assert.Positive(t, r.Score)
		require.NoError(t, r.Validate())
	}
}

func TestSearch_SortKeyChangesOrdering(t *testing.T) {
	store := testCorpus()
	// Give title 5 a stronger match so relevance and title orderings
	// diverge.
	store.titles[5].Chapters[0].Sections = append(store.titles[5].Chapters[0].Sections,
		types.Section{
			Number:  "302",
			Heading: "Sessions of Congress",
			Body:    "Congress convenes at least once in every year.",
		})
	e := newTestEngine(store)

	byRelevance := e.Search(context.Background(), Request{Query: "congress", Sort: SortRelevance})
	byTitle := e.Search(context.Background(), Request{Query: "congress", Sort: SortTitle})

	require.Len(t, byRelevance.Results, 3)
	require.Len(t, byTitle.Results, 3)

	// Relevance puts the heading match first regardless of title order.
	assert.Equal(t, 5, byRelevance.Results[0].TitleNumber)
	assert.Equal(t, "302", byRelevance.Results[0].SectionNumber)
	assert.Equal(t, 1, byRelevance.Results[1].TitleNumber)
	// Title order groups title 1 ahead of title 5 regardless of score.
	assert.Equal(t, 1, byTitle.Results[0].TitleNumber)
	assert.Equal(t, 5, byTitle.Results[1].TitleNumber)
	assert.Equal(t, 5, byTitle.Results[2].TitleNumber)
	assert.Equal(t, "302", byTitle.Results[1].SectionNumber)
}

func TestSearch_DeterministicAcrossRuns(t *testing.T) {
	e := newTestEngine(testCorpus())
	req := Request{Query: `"due process" congress law`}

	first := e.Search(context.Background(), req)
	for i := 0; i < 5; i++ {
		again := e.Search(context.Background(), req)
		require.Equal(t, len(first.Results), len(again.Results))
		for j := range first.Results {
			assert.Equal(t, first.Results[j].Score, again.Results[j].Score)
			assert.Equal(t, first.Results[j].TitleNumber, again.Results[j].TitleNumber)
			assert.Equal(t, first.Results[j].SectionNumber, again.Results[j].SectionNumber)
			assert.Equal(t, first.Results[j].MatchedTerms, again.Results[j].MatchedTerms)
		}
	}
}

func TestScoreUnit(t *testing.T) {
	tests := []struct {
		name    string
		heading string
		body    string
		query   string
		score   int
		matched []string
	}{
		{
			name:    "no match",
			heading: "Definitions",
			body:    "The word vessel includes every description of watercraft.",
			query:   "congress",
			score:   0,
		},
		{
			name:    "body term",
			heading: "Definitions",
			body:    "An Act of Congress takes effect on enactment.",
			query:   "congress",
			score:   bodyTermPoints,
			matched: []string{"congress"},
		},
		{
			name:    "heading term",
			heading: "Meetings of Congress",
			body:    "The assembly convenes in January.",
			query:   "congress",
			score:   headingTermPoints,
			matched: []string{"congress"},
		},
		{
			name:    "phrase spans heading and body text",
			heading: "Oath of office",
			body:    "No person shall be deprived of due process of law.",
			query:   `"due process"`,
			score:   phrasePoints,
			matched: []string{"due process"},
		},
		{
			name:    "case insensitive",
			heading: "CONGRESS",
			body:    "congress Congress CONGRESS",
			query:   "Congress",
			score:   headingTermPoints + bodyTermPoints,
			matched: []string{"congress"},
		},
		{
			name:    "matched terms in query order",
			heading: "Departmental regulations",
			body:    "Congress grants authority over regulations.",
			query:   "regulations congress authority",
			score:   (headingTermPoints + bodyTermPoints) + bodyTermPoints + bodyTermPoints,
			matched: []string{"regulations", "congress", "authority"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, matched := scoreUnit(tt.heading, tt.body, ParseQuery(tt.query))
			assert.Equal(t, tt.score, score)
			assert.Equal(t, tt.matched, matched)
		})
	}
}
