// Package types provides shared type definitions for the uscsearch server.
//
// This package defines the domain entities loaded from processed United
// States Code JSON, plus the result types produced by the search core.
//
// # Core Types
//
// Title is a top-level division of the Code (1 through 54, with 53
// reserved). It holds an ordered sequence of chapters, each holding an
// ordered sequence of sections:
//
//	title := &types.Title{
//	    Number: 1,
//	    Name:   "General Provisions",
//	    Chapters: []types.Chapter{
//	        {Number: "1", Heading: "Rules of Construction", Sections: ...},
//	    },
//	}
//
// Chapter and section numbers are strings because the Code uses
// alphanumeric identifiers such as "1A" and "112a".
//
// # Search Results
//
// SearchResult is either a title-level match (no chapter/section) or a
// section-level match (both present), never a chapter-only match:
//
//	result := types.SearchResult{
//	    TitleNumber:   5,
//	    ChapterNumber: "5",
//	    SectionNumber: "552",
//	    Score:         14,
//	    MatchedTerms:  []string{"due process"},
//	}
//
// Relevance scores are additive match points, not probabilities; any
// included result has a strictly positive score.
//
// # Validation
//
// Entities validate structural invariants at the Document Store boundary
// so the search core never handles missing-field ambiguity:
//
//	if err := title.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package types
