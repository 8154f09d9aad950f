// Package record implements the CRUD pattern shared by every entity table.
// A Repo is parameterized by the row type it scans into and by its identity
// type, and driven entirely by a query.Table descriptor.
package record

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"

	"github.com/heartmarshall/temple-api/internal/adapter/sqldb"
	"github.com/heartmarshall/temple-api/internal/adapter/sqldb/query"
	"github.com/heartmarshall/temple-api/internal/domain"
	"github.com/heartmarshall/temple-api/internal/observability"
)

// ID is the set of identity types.
type ID interface {
	int64 | string
}

// Config describes one entity.
type Config[K ID] struct {
	// Entity names the entity in errors and logs.
	Entity string
	Table  *query.Table
	// NewID generates the identity on create. Nil when the store assigns it.
	NewID func() K
	// Now is the clock used for createdAt/updatedAt. Defaults to time.Now.
	Now func() time.Time
}

// Page is one page of a list together with the total number of matching
// rows. Total comes from a separate statement and may briefly disagree
// with Items under concurrent writes.
type Page[T any] struct {
	Items  []T
	Total  int
	Limit  int
	Offset int
}

// Repo provides CRUD access to one table.
type Repo[T any, K ID] struct {
	db      *sqldb.DB
	tx      *sqldb.TxManager
	builder *query.Builder
	table   *query.Table
	entity  string
	newID   func() K
	now     func() time.Time
	logger  *slog.Logger

	// betweenReads runs after the page read and before the count read.
	betweenReads func()
}

// New creates a Repo.
func New[T any, K ID](db *sqldb.DB, builder *query.Builder, logger *slog.Logger, cfg Config[K]) *Repo[T, K] {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Repo[T, K]{
		db:      db,
		tx:      sqldb.NewTxManager(db),
		builder: builder,
		table:   cfg.Table,
		entity:  cfg.Entity,
		newID:   cfg.NewID,
		now:     now,
		logger:  logger.With("repo", cfg.Entity),
	}
}

// Entity returns the entity name.
func (r *Repo[T, K]) Entity() string { return r.entity }

// Table returns the table descriptor.
func (r *Repo[T, K]) Table() *query.Table { return r.table }

// ParseID converts a path segment into an identity.
func (r *Repo[T, K]) ParseID(raw string) (K, error) {
	var id K
	switch p := any(&id).(type) {
	case *int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return id, domain.NewValidationError("id", "must be an integer")
		}
		*p = n
	case *string:
		if strings.TrimSpace(raw) == "" {
			return id, domain.NewValidationError("id", "required")
		}
		*p = raw
	}
	return id, nil
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// List returns one page of rows matching p and the total match count.
func (r *Repo[T, K]) List(ctx context.Context, p query.ListParams) (page Page[T], err error) {
	defer r.observe("list", time.Now(), &err)

	fetch, count, pg, err := r.builder.List(r.table, p)
	if err != nil {
		return Page[T]{}, err
	}

	items := make([]T, 0)
	var total int
	err = r.db.Run(ctx, func(q sqldb.Querier) error {
		if err := sqlscan.Select(ctx, q, &items, fetch.SQL, fetch.Args...); err != nil {
			return err
		}
		if r.betweenReads != nil {
			r.betweenReads()
		}
		return sqlscan.Get(ctx, q, &total, count.SQL, count.Args...)
	})
	if err != nil {
		return Page[T]{}, sqldb.MapError(err, r.entity, "list")
	}

	return Page[T]{Items: items, Total: total, Limit: pg.Limit, Offset: pg.Offset}, nil
}

// GetByID returns the row with the given identity.
func (r *Repo[T, K]) GetByID(ctx context.Context, id K) (T, error) {
	return r.get(ctx, r.table.Key, id)
}

// GetBy returns the first row whose column equals raw. Only lookup columns
// are accepted. Several matches resolve to the lowest identity.
func (r *Repo[T, K]) GetBy(ctx context.Context, column, raw string) (T, error) {
	var zero T
	value, err := r.lookupValue(column, raw)
	if err != nil {
		return zero, err
	}
	return r.get(ctx, column, value)
}

// ListBy returns every row whose column equals raw, in default order.
func (r *Repo[T, K]) ListBy(ctx context.Context, column, raw string) (items []T, err error) {
	defer r.observe("list_by", time.Now(), &err)

	value, err := r.lookupValue(column, raw)
	if err != nil {
		return nil, err
	}

	st, err := r.builder.ListBy(r.table, column, value)
	if err != nil {
		return nil, err
	}

	items = make([]T, 0)
	err = r.db.Run(ctx, func(q sqldb.Querier) error {
		return sqlscan.Select(ctx, q, &items, st.SQL, st.Args...)
	})
	if err != nil {
		return nil, sqldb.MapError(err, r.entity, column+"="+raw)
	}
	return items, nil
}

func (r *Repo[T, K]) get(ctx context.Context, column string, value any) (row T, err error) {
	defer r.observe("get", time.Now(), &err)

	st, err := r.builder.Get(r.table, column, value)
	if err != nil {
		return row, err
	}

	err = r.db.Run(ctx, func(q sqldb.Querier) error {
		return sqlscan.Get(ctx, q, &row, st.SQL, st.Args...)
	})
	if err != nil {
		return row, sqldb.MapError(err, r.entity, describe(r.table, column, value))
	}
	return row, nil
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

// Create validates in, inserts it with fresh timestamps and returns the
// stored row. When the table has a natural key, the existence check and the
// insert run in one write transaction so concurrent creates cannot both
// succeed.
func (r *Repo[T, K]) Create(ctx context.Context, in domain.Input) (row T, err error) {
	defer r.observe("create", time.Now(), &err)

	if err := in.Validate(); err != nil {
		return row, err
	}

	fields := in.Fields()
	if r.newID != nil {
		fields = append([]domain.Field{{Column: r.table.Key, Value: r.newID()}}, fields...)
	}

	st, err := r.builder.Insert(r.table, fields, domain.Timestamp(r.now()))
	if err != nil {
		return row, err
	}

	var id K
	insert := func(ctx context.Context) error {
		return r.db.Run(ctx, func(q sqldb.Querier) error {
			if err := r.checkNaturalKey(ctx, q, fields); err != nil {
				return err
			}
			return sqlscan.Get(ctx, q, &id, st.SQL, st.Args...)
		})
	}

	if r.table.NaturalKey != "" {
		err = r.tx.RunInTx(ctx, insert)
	} else {
		err = insert(ctx)
	}
	if err != nil {
		return row, sqldb.MapError(err, r.entity, "create")
	}

	return r.GetByID(ctx, id)
}

func (r *Repo[T, K]) checkNaturalKey(ctx context.Context, q sqldb.Querier, fields []domain.Field) error {
	if r.table.NaturalKey == "" {
		return nil
	}
	var value any
	for _, f := range fields {
		if f.Column == r.table.NaturalKey {
			value = f.Value
		}
	}
	if value == nil {
		return nil
	}

	st, err := r.builder.Count(r.table, r.table.NaturalKey, value)
	if err != nil {
		return err
	}
	var n int
	if err := sqlscan.Get(ctx, q, &n, st.SQL, st.Args...); err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%s=%v: %w", r.table.NaturalKey, value, domain.ErrAlreadyExists)
	}
	return nil
}

// Update applies a partial update to an existing row and returns the
// updated row. An input that sets nothing fails before touching the store.
func (r *Repo[T, K]) Update(ctx context.Context, id K, in domain.Input) (row T, err error) {
	defer r.observe("update", time.Now(), &err)

	if err := in.Validate(); err != nil {
		return row, err
	}

	st, err := r.builder.Update(r.table, id, in.Fields(), domain.Timestamp(r.now()))
	if err != nil {
		return row, err
	}

	err = r.db.Run(ctx, func(q sqldb.Querier) error {
		exists, err := r.builder.Count(r.table, r.table.Key, id)
		if err != nil {
			return err
		}
		var n int
		if err := sqlscan.Get(ctx, q, &n, exists.SQL, exists.Args...); err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrNotFound
		}

		res, err := q.ExecContext(ctx, st.SQL, st.Args...)
		if err != nil {
			return err
		}
		if affected, err := res.RowsAffected(); err == nil && affected == 0 {
			r.logger.WarnContext(ctx, "update affected no rows after existence check",
				slog.Any("id", id))
		}
		return nil
	})
	if err != nil {
		return row, sqldb.MapError(err, r.entity, id)
	}

	return r.GetByID(ctx, id)
}

// Delete removes the row with the given identity.
func (r *Repo[T, K]) Delete(ctx context.Context, id K) (err error) {
	defer r.observe("delete", time.Now(), &err)

	st, err := r.builder.Delete(r.table, id)
	if err != nil {
		return err
	}

	err = r.db.Run(ctx, func(q sqldb.Querier) error {
		res, err := q.ExecContext(ctx, st.SQL, st.Args...)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	return sqldb.MapError(err, r.entity, id)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (r *Repo[T, K]) lookupValue(column, raw string) (any, error) {
	if !r.table.IsLookup(column) {
		return nil, fmt.Errorf("%s: column %q is not a lookup column", r.entity, column)
	}
	c, ok := r.table.Column(column)
	if !ok {
		return nil, fmt.Errorf("%s: unknown column %q", r.entity, column)
	}
	if c.Kind != query.KindInt {
		return raw, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, domain.NewValidationError(c.Name, "must be an integer")
	}
	return n, nil
}

func describe(t *query.Table, column string, value any) string {
	if column == t.Key {
		return fmt.Sprint(value)
	}
	return fmt.Sprintf("%s=%v", column, value)
}

func (r *Repo[T, K]) observe(op string, start time.Time, err *error) {
	observability.StoreOpDuration.WithLabelValues(r.table.Name, op).Observe(time.Since(start).Seconds())
	if *err != nil {
		observability.StoreErrors.WithLabelValues(r.table.Name, op, errorKind(*err)).Inc()
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrUnavailable):
		return "unavailable"
	default:
		return "store"
	}
}
