// Package registration stores form registrations in registrationDB.
package registration

import (
	"log/slog"

	"github.com/heartmarshall/temple-api/internal/adapter/sqldb"
	"github.com/heartmarshall/temple-api/internal/adapter/sqldb/query"
	"github.com/heartmarshall/temple-api/internal/adapter/sqldb/record"
	"github.com/heartmarshall/temple-api/internal/domain"
)

// Table describes registrationDB.
var Table = &query.Table{
	Name: "registrationDB",
	Key:  "id",
	Columns: query.EntityColumns(
		query.Column{Name: "id", Kind: query.KindInt, ReadOnly: true},
		query.Column{Name: "state"},
		query.Column{Name: "formId"},
		query.Column{Name: "formName"},
		query.Column{Name: "formSource"},
		query.Column{Name: "salvation", Kind: query.KindJSON},
		query.Column{Name: "contact", Kind: query.KindJSON},
		query.Column{Name: "blessing", Kind: query.KindJSON},
	),
	Filters: []query.Filter{
		{Param: "state", Column: "state"},
		{Param: "formId", Column: "formId"},
	},
	Sortable:    []string{"id", "state", "formId", "formName", query.CreatedAt, query.UpdatedAt},
	DefaultSort: "-" + query.CreatedAt,
	Lookups:     []string{"formId", "state", "user_created"},
}

// Repo provides access to registrations.
type Repo = record.Repo[domain.Registration, int64]

// New creates a Repo.
func New(db *sqldb.DB, builder *query.Builder, logger *slog.Logger) *Repo {
	return record.New[domain.Registration](db, builder, logger, record.Config[int64]{
		Entity: "registration",
		Table:  Table,
	})
}
