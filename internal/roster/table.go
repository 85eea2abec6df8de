package roster

import "slices"

// Schema is the ordered list of column names. Column order is presentation
// order: ingestion order first, then columns introduced later by appends and
// edits.
type Schema []string

// Index returns the position of col, or -1.
func (s Schema) Index(col string) int {
	return slices.Index(s, col)
}

// Has reports whether col is part of the schema.
func (s Schema) Has(col string) bool {
	return s.Index(col) >= 0
}

// Clone returns a copy.
func (s Schema) Clone() Schema {
	return slices.Clone(s)
}

// Record is one row: a mapping from column name to cell value. A record that
// belongs to a Table has an entry for every schema column.
type Record map[string]Value

// Clone returns a copy of the record.
func (r Record) Clone() Record {
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// Table is an ordered sequence of records sharing one schema. Row order is
// insertion order; rows have no intrinsic identifier. Tables are plain data:
// all invariants are enforced by the Store that owns one.
type Table struct {
	Columns Schema   `json:"columns"`
	Rows    []Record `json:"rows"`
}

// NewTable returns an empty table with the given columns.
func NewTable(cols ...string) *Table {
	return &Table{Columns: Schema(cols)}
}

// Len returns the row count.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Clone deep-copies the table.
func (t *Table) Clone() *Table {
	c := &Table{Columns: t.Columns.Clone(), Rows: make([]Record, len(t.Rows))}
	for i, r := range t.Rows {
		c.Rows[i] = r.Clone()
	}
	return c
}

// Value returns the cell at (row, col); null when the column is unknown.
func (t *Table) Value(row int, col string) Value {
	return t.Rows[row][col]
}

// AddColumn extends the schema with col and backfills null for every
// existing row. No-op when the column already exists.
func (t *Table) AddColumn(col string) {
	if t.Columns.Has(col) {
		return
	}
	t.Columns = append(t.Columns, col)
	for _, r := range t.Rows {
		if _, ok := r[col]; !ok {
			r[col] = Null()
		}
	}
}

// absorb reconciles rec's column set with the table's: columns new to the
// table are added (null backfill for prior rows), and the returned record
// has a value for every table column, null where rec supplied none. New
// columns join the schema in sorted name order so the resulting column
// order does not depend on map iteration.
func (t *Table) absorb(rec Record) Record {
	added := make([]string, 0, len(rec))
	for col := range rec {
		if !t.Columns.Has(col) {
			added = append(added, col)
		}
	}
	slices.Sort(added)
	for _, col := range added {
		t.AddColumn(col)
	}
	full := make(Record, len(t.Columns))
	for _, col := range t.Columns {
		if v, ok := rec[col]; ok {
			full[col] = v
		} else {
			full[col] = Null()
		}
	}
	return full
}

// Complete fills every row out to the full schema, inserting null for
// missing cells. Ingestors call this once after building a table by hand.
func (t *Table) Complete() {
	for _, r := range t.Rows {
		for _, col := range t.Columns {
			if _, ok := r[col]; !ok {
				r[col] = Null()
			}
		}
	}
}
