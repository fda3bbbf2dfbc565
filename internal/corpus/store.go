package corpus

import (
	"context"
	"errors"

	"github.com/MKLambda/uscsearch/pkg/types"
)

var (
	// ErrNotFound is returned when a requested title doesn't exist.
	ErrNotFound = errors.New("title not found")
	// ErrInvalidNumber is returned for title numbers outside 1-54 or the
	// reserved title 53.
	ErrInvalidNumber = errors.New("invalid title number")
)

// Store is the document store contract consumed by the search core.
// Implementations must be safe for concurrent readers; returned titles
// are treated as immutable snapshots.
type Store interface {
	// GetTitle returns one title, or ErrNotFound if it isn't in the corpus.
	GetTitle(ctx context.Context, number int) (*types.Title, error)

	// ListTitles returns summaries of every loaded title, ordered by number.
	ListTitles(ctx context.Context) ([]types.TitleSummary, error)
}
