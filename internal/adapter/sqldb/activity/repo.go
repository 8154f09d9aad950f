// Package activity stores ceremonies and events in activityDB.
package activity

import (
	"log/slog"

	"github.com/heartmarshall/temple-api/internal/adapter/sqldb"
	"github.com/heartmarshall/temple-api/internal/adapter/sqldb/query"
	"github.com/heartmarshall/temple-api/internal/adapter/sqldb/record"
	"github.com/heartmarshall/temple-api/internal/domain"
)

// Table describes activityDB.
var Table = &query.Table{
	Name: "activityDB",
	Key:  "id",
	Columns: query.EntityColumns(
		query.Column{Name: "id", Kind: query.KindInt, ReadOnly: true},
		query.Column{Name: "activityId"},
		query.Column{Name: "name"},
		query.Column{Name: "item_type", JSON: "itemType"},
		query.Column{Name: "participants", Kind: query.KindInt},
		query.Column{Name: "date"},
		query.Column{Name: "state"},
		query.Column{Name: "icon"},
		query.Column{Name: "description"},
		query.Column{Name: "location"},
	),
	Filters: []query.Filter{
		{Param: "state", Column: "state"},
		{Param: "itemType", Column: "item_type"},
	},
	Sortable:    []string{"id", "date", "name", "item_type", "state", "participants", query.CreatedAt, query.UpdatedAt},
	DefaultSort: "-date",
	Lookups:     []string{"activityId", "state"},
	NaturalKey:  "activityId",
}

// Repo provides access to activities.
type Repo = record.Repo[domain.Activity, int64]

// New creates a Repo.
func New(db *sqldb.DB, builder *query.Builder, logger *slog.Logger) *Repo {
	return record.New[domain.Activity](db, builder, logger, record.Config[int64]{
		Entity: "activity",
		Table:  Table,
	})
}
