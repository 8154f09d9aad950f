package sqldb

import (
	"context"
	"fmt"
	"math"

	"github.com/georgysavva/scany/v2/sqlscan"

	"github.com/heartmarshall/temple-api/internal/adapter/sqldb/query"
)

// Stats summarizes the database for operators.
type Stats struct {
	Driver    string   `json:"driver"`
	Tables    []string `json:"tables"`
	SizeBytes int64    `json:"sizeBytes"`
	SizeMB    float64  `json:"sizeMb"`
}

// Stats lists user tables and reports the database size.
func (d *DB) Stats(ctx context.Context) (Stats, error) {
	s := Stats{Driver: d.dialect.Name}

	var tablesSQL, sizeSQL string
	switch d.dialect.Name {
	case query.SQLite.Name:
		tablesSQL = `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`
		sizeSQL = `SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()`
	default:
		tablesSQL = `SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema() ORDER BY table_name`
		sizeSQL = `SELECT pg_database_size(current_database())`
	}

	if err := sqlscan.Select(ctx, d.db, &s.Tables, tablesSQL); err != nil {
		return Stats{}, fmt.Errorf("list tables: %w", err)
	}
	if err := sqlscan.Get(ctx, d.db, &s.SizeBytes, sizeSQL); err != nil {
		return Stats{}, fmt.Errorf("database size: %w", err)
	}

	s.SizeMB = math.Round(float64(s.SizeBytes)/1024/1024*100) / 100
	return s, nil
}
