package resultrepository

import (
	"context"
	"fmt"

	"gitlab.com/scoreboard.net/internal/domain"
)

// Migrate creates the schema and result table when they do not exist yet
func (r *ResultRepository) Migrate(ctx context.Context) error {
	tbl := domain.GetResultTable()

	statements := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			%s SERIAL PRIMARY KEY,
			%s VARCHAR NOT NULL,
			%s INTEGER NOT NULL
		)`, r.table(), tbl.ID, tbl.Name, tbl.Score),
	}
	if r.schema != "" {
		statements = append([]string{fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", r.schema)}, statements...)
	}

	for _, stmt := range statements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			r.logger.Error("Failed to run migration", "error", err)
			return fmt.Errorf("failed to migrate result table: %w", err)
		}
	}

	r.logger.Info("Result table ready", "table", r.table())
	return nil
}

func (r *ResultRepository) table() string {
	name := domain.GetResultTable().GetTableName()
	if r.schema == "" {
		return name
	}
	return r.schema + "." + name
}
