package secondary

import (
	"context"

	"gitlab.com/scoreboard.net/internal/domain"
)

// ResultRepository defines the interface for storing and retrieving results
type ResultRepository interface {
	// Create inserts a result and sets its ID from the store
	Create(ctx context.Context, result *domain.Result) error

	// List returns every stored result in insertion order
	List(ctx context.Context) ([]*domain.Result, error)
}

// ResultCache holds a copy of the full result list, keyed by a generation
// number that every invalidation advances.
type ResultCache interface {
	// Get returns the current generation and, if present, its cached list
	Get(ctx context.Context) (results []*domain.Result, generation int64, ok bool, err error)

	// Set stores results under generation; a list read before an invalidation
	// is written to a generation nobody reads any more.
	Set(ctx context.Context, generation int64, results []*domain.Result) error

	// Invalidate advances the generation so the next read goes to the repository
	Invalidate(ctx context.Context) error
}
