package types

import "errors"

const (
	// MinTitleNumber is the lowest valid title number in the Code.
	MinTitleNumber = 1
	// MaxTitleNumber is the highest valid title number in the Code.
	MaxTitleNumber = 54
	// ReservedTitleNumber is permanently reserved and never published.
	ReservedTitleNumber = 53
)

// Title is a top-level division of the United States Code.
// A Title is immutable once loaded for a given release.
type Title struct {
	Number   int
	Name     string
	Chapters []Chapter
}

// Chapter is a subdivision within a Title. Its number is a string because
// the Code uses alphanumeric chapter identifiers such as "1A".
type Chapter struct {
	Number   string
	Heading  string
	Sections []Section
}

// Section is a leaf legal provision within a Chapter, the finest unit
// normally searched.
type Section struct {
	Number      string
	Heading     string
	Body        string
	Subsections []Subsection
}

// Subsection is a numbered passage within a Section.
type Subsection struct {
	Number string
	Text   string
}

// TitleSummary identifies a title without carrying its content.
type TitleSummary struct {
	Number int
	Name   string
}

// ValidTitleNumber reports whether n identifies a publishable title.
func ValidTitleNumber(n int) bool {
	return n >= MinTitleNumber && n <= MaxTitleNumber && n != ReservedTitleNumber
}

// Validate checks the structural invariants of a loaded title.
func (t *Title) Validate() error {
	if !ValidTitleNumber(t.Number) {
		return ErrInvalidTitleNumber
	}
	if t.Name == "" {
		return ErrMissingTitleName
	}
	for i := range t.Chapters {
		if t.Chapters[i].Number == "" {
			return ErrMissingChapterNumber
		}
	}
	return nil
}

// SectionCount returns the number of sections across all chapters.
func (t *Title) SectionCount() int {
	n := 0
	for i := range t.Chapters {
		n += len(t.Chapters[i].Sections)
	}
	return n
}

// Domain errors for entity validation
var (
	ErrInvalidTitleNumber   = errors.New("title number out of range")
	ErrMissingTitleName     = errors.New("title name is required")
	ErrMissingChapterNumber = errors.New("chapter number is required")
)
