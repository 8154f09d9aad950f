package query

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// Dialect captures the SQL differences between the supported engines.
type Dialect struct {
	Name        string
	Placeholder sq.PlaceholderFormat

	// auditTime renders an expression that reads an audit date column as
	// "YYYY-MM-DD HH:MM:SS" text.
	auditTime func(col string) string
}

// SQLite stores audit dates as epoch milliseconds.
var SQLite = Dialect{
	Name:        "sqlite",
	Placeholder: sq.Question,
	auditTime: func(col string) string {
		return "CASE WHEN " + col + " IS NOT NULL THEN datetime(" + col + " / 1000, 'unixepoch') ELSE NULL END"
	},
}

// Postgres stores audit dates as timestamps.
var Postgres = Dialect{
	Name:        "postgres",
	Placeholder: sq.Dollar,
	auditTime: func(col string) string {
		return "to_char(" + col + ", 'YYYY-MM-DD HH24:MI:SS')"
	},
}

// Quote quotes an identifier. Both engines accept double quotes and keep
// the identifier's case.
func Quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}
