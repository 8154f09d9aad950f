package query

import "slices"

// Kind is the storage kind of a column.
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindJSON
	// KindAuditTime is a date maintained by the external auth system,
	// rendered as text on read and never written here.
	KindAuditTime
)

// Column describes one column of a table.
type Column struct {
	Name string
	// JSON is the name callers use for the column; defaults to Name.
	JSON     string
	Kind     Kind
	ReadOnly bool
}

func (c Column) jsonName() string {
	if c.JSON != "" {
		return c.JSON
	}
	return c.Name
}

// Op is a filter comparison.
type Op int

const (
	OpEq Op = iota
	// OpLike matches the value as a substring.
	OpLike
)

// Filter maps a query parameter to a column predicate.
type Filter struct {
	Param  string
	Column string
	Op     Op
	Kind   Kind
}

// Table describes an entity table: everything the builder needs to produce
// its statements.
type Table struct {
	Name string
	// Key is the identity column.
	Key     string
	Columns []Column
	Filters []Filter
	// Sortable lists the columns callers may sort by.
	Sortable []string
	// DefaultSort is a sort expression ("-date") applied when none is given.
	DefaultSort string
	// Lookups lists the columns accepted for single-row and by-field lookups.
	Lookups []string
	// NaturalKey is a caller-assigned unique column, if any.
	NaturalKey string
}

// Business timestamp columns written on every create and update.
const (
	CreatedAt = "createdAt"
	UpdatedAt = "updatedAt"
)

// AuditColumns are the columns maintained by the external auth system.
// user_created and user_updated accept passthrough writes.
func AuditColumns() []Column {
	return []Column{
		{Name: "user_created", JSON: "userCreated"},
		{Name: "date_created", JSON: "dateCreated", Kind: KindAuditTime, ReadOnly: true},
		{Name: "user_updated", JSON: "userUpdated"},
		{Name: "date_updated", JSON: "dateUpdated", Kind: KindAuditTime, ReadOnly: true},
	}
}

// StampColumns are the business timestamps.
func StampColumns() []Column {
	return []Column{
		{Name: CreatedAt, ReadOnly: true},
		{Name: UpdatedAt, ReadOnly: true},
	}
}

// Column returns the column with the given name.
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// sortColumn resolves a caller-supplied sort name, accepting either the
// column name or its JSON name.
func (t *Table) sortColumn(name string) (string, bool) {
	for _, c := range t.Columns {
		if c.Name != name && c.jsonName() != name {
			continue
		}
		if slices.Contains(t.Sortable, c.Name) {
			return c.Name, true
		}
	}
	return "", false
}

func (t *Table) filter(param string) (Filter, bool) {
	for _, f := range t.Filters {
		if f.Param == param {
			return f, true
		}
	}
	return Filter{}, false
}

// IsLookup reports whether column may be used for by-field lookups.
func (t *Table) IsLookup(column string) bool {
	return column == t.Key || slices.Contains(t.Lookups, column)
}

// SortNames returns the names accepted by the sort parameter.
func (t *Table) SortNames() []string {
	out := make([]string, 0, len(t.Sortable))
	for _, name := range t.Sortable {
		if c, ok := t.Column(name); ok {
			out = append(out, c.jsonName())
		}
	}
	return out
}

// FilterNames returns the accepted filter parameters.
func (t *Table) FilterNames() []string {
	out := make([]string, len(t.Filters))
	for i, f := range t.Filters {
		out[i] = f.Param
	}
	return out
}

// EntityColumns lays out a table's columns: the key, the audit columns,
// the entity's own columns and the business timestamps.
func EntityColumns(key Column, own ...Column) []Column {
	cols := make([]Column, 0, len(own)+7)
	cols = append(cols, key)
	cols = append(cols, AuditColumns()...)
	cols = append(cols, own...)
	return append(cols, StampColumns()...)
}
