package resultrepository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gitlab.com/scoreboard.net/internal/core/ports/primary"
	"gitlab.com/scoreboard.net/internal/core/ports/secondary"
	"gitlab.com/scoreboard.net/internal/domain"
	querybuilder "gitlab.com/scoreboard.net/internal/utils"
)

var _ secondary.ResultRepository = (*ResultRepository)(nil)

// ResultRepository implements the ResultRepository interface with PostgreSQL
type ResultRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

// NewResultRepository creates a new PostgreSQL result repository
func NewResultRepository(db *sqlx.DB, logger primary.Logger, schema string) *ResultRepository {
	return &ResultRepository{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

// Create inserts the result in its own transaction and sets result.ID
func (r *ResultRepository) Create(ctx context.Context, result *domain.Result) (err error) {
	tbl := domain.GetResultTable()
	query, args, err := querybuilder.NewQueryBuilder(r.schema).
		Insert(tbl.Name, tbl.Score).
		Into(tbl.GetTableName()).
		Values(result.Name, result.Score).
		Returning(tbl.ID).
		Build()
	if err != nil {
		return err
	}
	query = r.db.Rebind(query)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", "error", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var id int64
	if err = tx.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		r.logger.Error("Failed to insert result", "name", result.Name, "error", err)
		return fmt.Errorf("failed to insert result: %w", err)
	}

	if err = tx.Commit(); err != nil {
		r.logger.Error("Failed to commit result", "error", err)
		return fmt.Errorf("failed to commit result: %w", err)
	}

	result.ID = id
	return nil
}

// List returns every result ordered by id
func (r *ResultRepository) List(ctx context.Context) ([]*domain.Result, error) {
	tbl := domain.GetResultTable()
	query, args, err := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.ID, tbl.Name, tbl.Score).
		From(tbl.GetTableName()).
		OrderBy(tbl.ID, true).
		Build()
	if err != nil {
		return nil, err
	}

	results := make([]*domain.Result, 0)
	if err := r.db.SelectContext(ctx, &results, r.db.Rebind(query), args...); err != nil {
		r.logger.Error("Failed to list results", "error", err)
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	return results, nil
}
