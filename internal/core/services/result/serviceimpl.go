package result

import (
	"context"
	"fmt"
	"sync/atomic"

	"gitlab.com/scoreboard.net/internal/core/ports/primary"
	"gitlab.com/scoreboard.net/internal/core/ports/secondary"
	"gitlab.com/scoreboard.net/internal/domain"
	"gitlab.com/scoreboard.net/internal/metrics"
)

var _ IResultService = (*ResultService)(nil)

// ResultService implements IResultService on top of a repository and a
// read-through cache of the full list.
type ResultService struct {
	resultRepo  secondary.ResultRepository
	resultCache secondary.ResultCache
	logger      primary.Logger
	metrics     *metrics.Metrics

	// failedInvalidations counts submits whose cache invalidation failed; while
	// non-zero the cached list may miss committed rows.
	failedInvalidations atomic.Int64
}

func NewResultService(
	resultRepo secondary.ResultRepository,
	resultCache secondary.ResultCache,
	logger primary.Logger,
	m *metrics.Metrics,
) *ResultService {
	return &ResultService{
		resultRepo:  resultRepo,
		resultCache: resultCache,
		logger:      logger,
		metrics:     m,
	}
}

func (s *ResultService) SubmitResult(ctx context.Context, name string, score int32) (int64, error) {
	result := &domain.Result{
		Name:  name,
		Score: score,
	}

	if err := s.resultRepo.Create(ctx, result); err != nil {
		return 0, fmt.Errorf("failed to save result: %w", err)
	}
	s.metrics.ResultSubmitted()

	if err := s.resultCache.Invalidate(ctx); err != nil {
		s.failedInvalidations.Add(1)
		s.logger.Warn("Failed to invalidate results cache", "error", err)
	}

	s.logger.Info("Result submitted", "id", result.ID, "name", name, "score", score)
	return result.ID, nil
}

func (s *ResultService) ListResults(ctx context.Context) ([]*domain.Result, error) {
	if !s.recoverInvalidation(ctx) {
		s.metrics.ObserveCache(metrics.CacheError)
		return s.listFromRepo(ctx)
	}

	cached, generation, ok, err := s.resultCache.Get(ctx)
	switch {
	case err != nil:
		s.metrics.ObserveCache(metrics.CacheError)
		s.logger.Warn("Failed to read results cache", "error", err)
	case ok:
		s.metrics.ObserveCache(metrics.CacheHit)
		return cached, nil
	default:
		s.metrics.ObserveCache(metrics.CacheMiss)
	}

	results, err := s.listFromRepo(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.resultCache.Set(ctx, generation, results); err != nil {
		s.logger.Warn("Failed to fill results cache", "error", err)
	}

	return results, nil
}

func (s *ResultService) listFromRepo(ctx context.Context) ([]*domain.Result, error) {
	results, err := s.resultRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	return results, nil
}

// recoverInvalidation retries a previously failed invalidation and reports
// whether the cache may be read.
func (s *ResultService) recoverInvalidation(ctx context.Context) bool {
	pending := s.failedInvalidations.Load()
	if pending == 0 {
		return true
	}

	if err := s.resultCache.Invalidate(ctx); err != nil {
		s.logger.Warn("Results cache still not invalidated, bypassing it", "error", err)
		return false
	}

	// a submit failing meanwhile keeps the counter non-zero
	s.failedInvalidations.CompareAndSwap(pending, 0)
	return true
}
