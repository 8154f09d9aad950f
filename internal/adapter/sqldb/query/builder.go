// Package query builds the parameter-bound SQL statements used by the
// entity repositories. Only identifiers taken from a Table descriptor are
// interpolated into statement text; every caller-supplied value is bound.
package query

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/heartmarshall/temple-api/internal/domain"
)

// Statement is a rendered SQL statement with its bound arguments.
type Statement struct {
	SQL  string
	Args []any
}

// Builder renders statements for one dialect.
type Builder struct {
	dialect Dialect
	limits  Limits
	sb      sq.StatementBuilderType
}

// NewBuilder creates a Builder. Zero limits fall back to DefaultLimits.
func NewBuilder(d Dialect, limits Limits) *Builder {
	if limits.Max <= 0 {
		limits.Max = DefaultLimits.Max
	}
	if limits.Default <= 0 || limits.Default > limits.Max {
		limits.Default = min(DefaultLimits.Default, limits.Max)
	}
	return &Builder{
		dialect: d,
		limits:  limits,
		sb:      sq.StatementBuilder.PlaceholderFormat(d.Placeholder),
	}
}

// Dialect returns the builder's dialect.
func (b *Builder) Dialect() Dialect { return b.dialect }

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// List renders the page statement and the matching count statement for p.
// The count ignores sort and pagination.
func (b *Builder) List(t *Table, p ListParams) (fetch, count Statement, page Page, err error) {
	where, err := b.where(t, p.Filters)
	if err != nil {
		return Statement{}, Statement{}, Page{}, err
	}

	orderBy, err := b.orderBy(t, p.Sort)
	if err != nil {
		return Statement{}, Statement{}, Page{}, err
	}

	page, err = b.limits.resolve(p)
	if err != nil {
		return Statement{}, Statement{}, Page{}, err
	}

	fetchQ := b.sb.Select(b.selectColumns(t)...).
		From(Quote(t.Name)).
		OrderBy(orderBy...).
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset))
	countQ := b.sb.Select("COUNT(*)").From(Quote(t.Name))
	for _, w := range where {
		fetchQ = fetchQ.Where(w)
		countQ = countQ.Where(w)
	}

	if fetch, err = render(fetchQ); err != nil {
		return Statement{}, Statement{}, Page{}, err
	}
	if count, err = render(countQ); err != nil {
		return Statement{}, Statement{}, Page{}, err
	}
	return fetch, count, page, nil
}

// Get renders a single-row select by exact match on column. When several
// rows match, the one with the lowest identity wins.
func (b *Builder) Get(t *Table, column string, value any) (Statement, error) {
	if _, ok := t.Column(column); !ok {
		return Statement{}, fmt.Errorf("query: %s has no column %q", t.Name, column)
	}
	return render(b.sb.Select(b.selectColumns(t)...).
		From(Quote(t.Name)).
		Where(sq.Eq{Quote(column): value}).
		OrderBy(Quote(t.Key) + " ASC").
		Limit(1))
}

// ListBy renders an unpaginated select of every row matching column, in
// the table's default order.
func (b *Builder) ListBy(t *Table, column string, value any) (Statement, error) {
	if _, ok := t.Column(column); !ok {
		return Statement{}, fmt.Errorf("query: %s has no column %q", t.Name, column)
	}
	orderBy, err := b.orderBy(t, "")
	if err != nil {
		return Statement{}, err
	}
	return render(b.sb.Select(b.selectColumns(t)...).
		From(Quote(t.Name)).
		Where(sq.Eq{Quote(column): value}).
		OrderBy(orderBy...))
}

// Count renders a COUNT(*) of rows matching column.
func (b *Builder) Count(t *Table, column string, value any) (Statement, error) {
	return render(b.sb.Select("COUNT(*)").
		From(Quote(t.Name)).
		Where(sq.Eq{Quote(column): value}))
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

// Insert renders an INSERT of fields plus both business timestamps set to
// now, returning the identity.
func (b *Builder) Insert(t *Table, fields []domain.Field, now string) (Statement, error) {
	if err := checkWritable(t, fields, true); err != nil {
		return Statement{}, err
	}

	cols := make([]string, 0, len(fields)+2)
	vals := make([]any, 0, len(fields)+2)
	for _, f := range fields {
		cols = append(cols, Quote(f.Column))
		vals = append(vals, f.Value)
	}
	cols = append(cols, Quote(CreatedAt), Quote(UpdatedAt))
	vals = append(vals, now, now)

	return render(b.sb.Insert(Quote(t.Name)).
		Columns(cols...).
		Values(vals...).
		Suffix("RETURNING " + Quote(t.Key)))
}

// Update renders an UPDATE touching only fields and refreshing updatedAt.
// An empty field list is a validation error.
func (b *Builder) Update(t *Table, id any, fields []domain.Field, now string) (Statement, error) {
	if len(fields) == 0 {
		return Statement{}, domain.ErrNoFieldsToUpdate
	}
	if err := checkWritable(t, fields, false); err != nil {
		return Statement{}, err
	}

	q := b.sb.Update(Quote(t.Name))
	for _, f := range fields {
		q = q.Set(Quote(f.Column), f.Value)
	}
	q = q.Set(Quote(UpdatedAt), now).Where(sq.Eq{Quote(t.Key): id})

	return render(q)
}

// Delete renders a DELETE by identity.
func (b *Builder) Delete(t *Table, id any) (Statement, error) {
	return render(b.sb.Delete(Quote(t.Name)).Where(sq.Eq{Quote(t.Key): id}))
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (b *Builder) selectColumns(t *Table) []string {
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		if c.Kind == KindAuditTime {
			cols[i] = b.dialect.auditTime(Quote(c.Name)) + " AS " + Quote(c.Name)
			continue
		}
		cols[i] = Quote(c.Name)
	}
	return cols
}

// where builds one predicate per present filter. Filters are applied in
// parameter order so rendered statements are stable.
func (b *Builder) where(t *Table, filters map[string]string) ([]sq.Sqlizer, error) {
	params := make([]string, 0, len(filters))
	for p := range filters {
		params = append(params, p)
	}
	sort.Strings(params)

	var (
		preds []sq.Sqlizer
		errs  []domain.FieldError
	)
	for _, param := range params {
		f, ok := t.filter(param)
		if !ok {
			errs = append(errs, domain.FieldError{
				Field:   param,
				Message: "unknown filter; allowed: " + strings.Join(t.FilterNames(), ", "),
			})
			continue
		}

		var value any = filters[param]
		if f.Kind == KindInt {
			n, err := strconv.ParseInt(filters[param], 10, 64)
			if err != nil {
				errs = append(errs, domain.FieldError{Field: param, Message: "must be an integer"})
				continue
			}
			value = n
		}

		switch f.Op {
		case OpLike:
			preds = append(preds, sq.Expr(Quote(f.Column)+` LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(filters[param])+"%"))
		default:
			preds = append(preds, sq.Eq{Quote(f.Column): value})
		}
	}

	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}
	return preds, nil
}

// likeEscaper makes LIKE wildcards in a filter value match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// orderBy resolves a sort expression against the table's allow-list. A
// leading "-" sorts descending. The identity column is appended as a tie
// breaker so pages are stable.
func (b *Builder) orderBy(t *Table, expr string) ([]string, error) {
	if expr == "" {
		expr = t.DefaultSort
	}

	dir := "ASC"
	name := expr
	if strings.HasPrefix(expr, "-") {
		dir = "DESC"
		name = expr[1:]
	}

	col, ok := t.sortColumn(name)
	if !ok {
		return nil, domain.NewValidationError(ParamSort,
			fmt.Sprintf("cannot sort by %q; allowed: %s", name, strings.Join(t.SortNames(), ", ")))
	}

	order := []string{Quote(col) + " " + dir}
	if col != t.Key {
		order = append(order, Quote(t.Key)+" "+dir)
	}
	return order, nil
}

// checkWritable rejects columns that are unknown or read-only. The identity
// is accepted only on insert, and only when it is caller-generated text.
func checkWritable(t *Table, fields []domain.Field, insert bool) error {
	for _, f := range fields {
		c, ok := t.Column(f.Column)
		switch {
		case !ok, c.ReadOnly:
		case c.Name != t.Key:
			continue
		case insert && c.Kind == KindText:
			continue
		}
		return fmt.Errorf("query: %s column %q is not writable", t.Name, f.Column)
	}
	return nil
}

type sqlizer interface {
	ToSql() (string, []any, error)
}

func render(q sqlizer) (Statement, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return Statement{}, fmt.Errorf("query: render: %w", err)
	}
	return Statement{SQL: sql, Args: args}, nil
}
