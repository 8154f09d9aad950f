// Package mydata stores generic form submissions in the mydata table.
// Identities are generated here rather than by the store.
package mydata

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/temple-api/internal/adapter/sqldb"
	"github.com/heartmarshall/temple-api/internal/adapter/sqldb/query"
	"github.com/heartmarshall/temple-api/internal/adapter/sqldb/record"
	"github.com/heartmarshall/temple-api/internal/domain"
)

// Table describes mydata.
var Table = &query.Table{
	Name: "mydata",
	Key:  "id",
	Columns: query.EntityColumns(
		query.Column{Name: "id"},
		query.Column{Name: "state"},
		query.Column{Name: "formName"},
		query.Column{Name: "contact", Kind: query.KindJSON},
	),
	Filters: []query.Filter{
		{Param: "state", Column: "state"},
		{Param: "formName", Column: "formName", Op: query.OpLike},
	},
	Sortable:    []string{"id", "state", "formName", "date_created", query.CreatedAt, query.UpdatedAt},
	DefaultSort: "-date_created",
	Lookups:     []string{"state"},
}

// Repo provides access to form submissions.
type Repo = record.Repo[domain.FormSubmission, string]

// New creates a Repo.
func New(db *sqldb.DB, builder *query.Builder, logger *slog.Logger) *Repo {
	return record.New[domain.FormSubmission](db, builder, logger, record.Config[string]{
		Entity: "form submission",
		Table:  Table,
		NewID:  uuid.NewString,
	})
}
