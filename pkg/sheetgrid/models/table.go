package models

// Column describes one named field of a Table.
type Column struct {
	// Name is the header text of the column.
	Name string `json:"name"`
	// Kind is the common kind of the column's non-null values.
	Kind Kind `json:"kind"`
}

// Table is an immutable, in-memory dataset. Every row holds a value (possibly
// Null) for every column. A Table is safe for concurrent reads.
type Table struct {
	source  string
	columns []Column
	index   map[string]int
	rows    []Row
}

// NewTable builds a table from ordered column names and rows. Rows are
// re-keyed to the column order; keys missing from a row become Null and keys
// not named in columns are dropped. Column kinds are inferred from the data.
func NewTable(source string, names []string, rows []Row) *Table {
	t := &Table{
		source:  source,
		columns: make([]Column, len(names)),
		index:   make(map[string]int, len(names)),
		rows:    make([]Row, len(rows)),
	}
	for i, name := range names {
		t.columns[i] = Column{Name: name}
		t.index[name] = i
	}
	for i, r := range rows {
		t.rows[i] = r.Project(names)
	}
	for i := range t.columns {
		t.columns[i].Kind = InferKind(t.Values(t.columns[i].Name))
	}
	return t
}

// InferKind returns the common kind of the non-null values. Integers mixed
// with floats widen to KindFloat; any other mix is KindMixed. With no non-null
// values the result is KindNull.
func InferKind(values []Value) Kind {
	kind := KindNull
	for _, v := range values {
		k := v.Kind()
		switch {
		case k == KindNull || k == kind:
		case kind == KindNull:
			kind = k
		case (kind == KindInt && k == KindFloat) || (kind == KindFloat && k == KindInt):
			kind = KindFloat
		default:
			return KindMixed
		}
	}
	return kind
}

// Source returns the name of the file the table was loaded from.
func (t *Table) Source() string { return t.source }

// RowCount returns the number of rows.
func (t *Table) RowCount() int { return len(t.rows) }

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int { return len(t.columns) }

// Columns returns the column descriptors in declared order.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// ColumnNames returns the column names in declared order.
func (t *Table) ColumnNames() []string {
	out := make([]string, len(t.columns))
	for i, c := range t.columns {
		out[i] = c.Name
	}
	return out
}

// Column looks up a column by name.
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.columns[i], true
}

// HasColumn reports whether name is a column of t.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Row returns the i-th row. The returned row is shared and must not be modified.
func (t *Table) Row(i int) Row { return t.rows[i] }

// Rows returns all rows in table order. The rows are shared and must not be
// modified.
func (t *Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// Values returns the column vector for name, or nil when the column is unknown.
func (t *Table) Values(name string) []Value {
	if !t.HasColumn(name) {
		return nil
	}
	out := make([]Value, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.Value(name)
	}
	return out
}
