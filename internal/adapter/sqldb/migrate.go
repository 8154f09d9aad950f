package sqldb

import (
	"context"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/heartmarshall/temple-api/internal/adapter/sqldb/query"
	"github.com/heartmarshall/temple-api/migrations"
)

// Migrate applies the development schema. It returns the number of
// migrations applied.
func (d *DB) Migrate(ctx context.Context) (int, error) {
	fsys, err := migrations.FS(d.dialect.Name)
	if err != nil {
		return 0, fmt.Errorf("migrations fs: %w", err)
	}

	dialect := goose.DialectPostgres
	if d.dialect.Name == query.SQLite.Name {
		dialect = goose.DialectSQLite3
	}

	provider, err := goose.NewProvider(dialect, d.db, fsys)
	if err != nil {
		return 0, fmt.Errorf("goose new provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("goose up: %w", err)
	}
	return len(results), nil
}
