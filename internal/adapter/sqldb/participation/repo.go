// Package participation stores activity participation records in
// participationRecordDB.
package participation

import (
	"log/slog"

	"github.com/heartmarshall/temple-api/internal/adapter/sqldb"
	"github.com/heartmarshall/temple-api/internal/adapter/sqldb/query"
	"github.com/heartmarshall/temple-api/internal/adapter/sqldb/record"
	"github.com/heartmarshall/temple-api/internal/domain"
)

// Table describes participationRecordDB.
var Table = &query.Table{
	Name: "participationRecordDB",
	Key:  "id",
	Columns: query.EntityColumns(
		query.Column{Name: "id", Kind: query.KindInt, ReadOnly: true},
		query.Column{Name: "registrationId", Kind: query.KindInt},
		query.Column{Name: "activityId", Kind: query.KindInt},
		query.Column{Name: "state"},
		query.Column{Name: "items", Kind: query.KindJSON},
		query.Column{Name: "contact", Kind: query.KindJSON},
		query.Column{Name: "totalAmount", Kind: query.KindInt},
		query.Column{Name: "discountAmount", Kind: query.KindInt},
		query.Column{Name: "finalAmount", Kind: query.KindInt},
		query.Column{Name: "paidAmount", Kind: query.KindInt},
		query.Column{Name: "needReceipt"},
		query.Column{Name: "receiptNumber"},
		query.Column{Name: "receiptIssued"},
		query.Column{Name: "receiptIssuedAt"},
		query.Column{Name: "receiptIssuedBy"},
		query.Column{Name: "accountingState"},
		query.Column{Name: "accountingDate"},
		query.Column{Name: "accountingBy"},
		query.Column{Name: "accountingNotes"},
		query.Column{Name: "paymentState"},
		query.Column{Name: "paymentMethod"},
		query.Column{Name: "paymentDate"},
		query.Column{Name: "paymentNotes"},
		query.Column{Name: "notes"},
	),
	Filters: []query.Filter{
		{Param: "registrationId", Column: "registrationId", Kind: query.KindInt},
		{Param: "activityId", Column: "activityId", Kind: query.KindInt},
		{Param: "state", Column: "state"},
		{Param: "paymentState", Column: "paymentState"},
		{Param: "accountingState", Column: "accountingState"},
	},
	Sortable: []string{
		"id", "registrationId", "activityId", "state", "finalAmount", "paidAmount",
		"paymentDate", "accountingDate", query.CreatedAt, query.UpdatedAt,
	},
	DefaultSort: "-" + query.CreatedAt,
	Lookups:     []string{"registrationId", "activityId", "state"},
}

// Repo provides access to participation records.
type Repo = record.Repo[domain.ParticipationRecord, int64]

// New creates a Repo.
func New(db *sqldb.DB, builder *query.Builder, logger *slog.Logger) *Repo {
	return record.New[domain.ParticipationRecord](db, builder, logger, record.Config[int64]{
		Entity: "participation record",
		Table:  Table,
	})
}
