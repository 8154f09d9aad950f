// Package monthlydonate stores recurring donation pledges in monthlyDonateDB.
package monthlydonate

import (
	"log/slog"

	"github.com/heartmarshall/temple-api/internal/adapter/sqldb"
	"github.com/heartmarshall/temple-api/internal/adapter/sqldb/query"
	"github.com/heartmarshall/temple-api/internal/adapter/sqldb/record"
	"github.com/heartmarshall/temple-api/internal/domain"
)

// Table describes monthlyDonateDB.
var Table = &query.Table{
	Name: "monthlyDonateDB",
	Key:  "id",
	Columns: query.EntityColumns(
		query.Column{Name: "id", Kind: query.KindInt, ReadOnly: true},
		query.Column{Name: "name"},
		query.Column{Name: "registrationId", Kind: query.KindInt},
		query.Column{Name: "donateId"},
		query.Column{Name: "donateType"},
		query.Column{Name: "donateItems", Kind: query.KindJSON},
		query.Column{Name: "memo"},
	),
	Filters: []query.Filter{
		{Param: "name", Column: "name", Op: query.OpLike},
		{Param: "registrationId", Column: "registrationId", Kind: query.KindInt},
		{Param: "donateId", Column: "donateId"},
		{Param: "donateType", Column: "donateType"},
	},
	Sortable:    []string{"id", "name", "donateType", "registrationId", query.CreatedAt, query.UpdatedAt},
	DefaultSort: "-" + query.CreatedAt,
	Lookups:     []string{"donateId", "registrationId", "donateType"},
}

// Repo provides access to monthly donations.
type Repo = record.Repo[domain.MonthlyDonate, int64]

// New creates a Repo.
func New(db *sqldb.DB, builder *query.Builder, logger *slog.Logger) *Repo {
	return record.New[domain.MonthlyDonate](db, builder, logger, record.Config[int64]{
		Entity: "monthly donate",
		Table:  Table,
	})
}
