package result

import (
	"context"

	"gitlab.com/scoreboard.net/internal/domain"
)

// IResultService defines the interface for submitting and listing results
type IResultService interface {
	// SubmitResult persists a new result and returns its id
	SubmitResult(ctx context.Context, name string, score int32) (int64, error)

	// ListResults returns every result in insertion order
	ListResults(ctx context.Context) ([]*domain.Result, error)
}
