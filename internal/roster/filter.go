package roster

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Filter is a conjunction of column-membership predicates plus an optional
// case-insensitive substring search. A row passes when, for every
// constrained column, its display value is a member of the allowed set.
// Predicates over columns the table doesn't have are ignored; columns with
// no predicate are unconstrained.
type Filter struct {
	// Allowed maps column name to the set of accepted display values.
	Allowed map[string][]string
	// Search is matched as a substring against SearchColumns.
	Search string
	// SearchColumns lists the columns Search looks at. Columns absent from
	// the table are skipped.
	SearchColumns []string
}

// Empty reports whether the filter constrains nothing.
func (f *Filter) Empty() bool {
	return f == nil || (len(f.Allowed) == 0 && strings.TrimSpace(f.Search) == "")
}

// Apply returns a new table holding copies of the rows that pass the filter.
func (f *Filter) Apply(t *Table) *Table {
	if f.Empty() {
		return t.Clone()
	}
	out := &Table{Columns: t.Columns.Clone()}
	for _, r := range t.Rows {
		if f.match(t.Columns, r) {
			out.Rows = append(out.Rows, r.Clone())
		}
	}
	return out
}

func (f *Filter) match(cols Schema, r Record) bool {
	for col, allowed := range f.Allowed {
		if len(allowed) == 0 || !cols.Has(col) {
			continue
		}
		v := r[col].String()
		found := false
		for _, a := range allowed {
			if v == a {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		q = strings.ToLower(q)
		hit := false
		for _, col := range f.SearchColumns {
			if !cols.Has(col) {
				continue
			}
			if strings.Contains(strings.ToLower(r[col].String()), q) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

// Options returns the distinct non-null display values of col, sorted with
// language-aware collation so dropdown lists read naturally. Returns nil
// when the column is unknown.
func Options(t *Table, col string) []string {
	if !t.Columns.Has(col) {
		return nil
	}
	seen := map[string]bool{}
	var opts []string
	for _, r := range t.Rows {
		v := r[col]
		if v.IsNull() {
			continue
		}
		s := v.String()
		if !seen[s] {
			seen[s] = true
			opts = append(opts, s)
		}
	}
	collate.New(language.English, collate.IgnoreCase).SortStrings(opts)
	return opts
}

// NonNull returns the rows where col has a value, e.g. the students assigned
// to any class in a class column.
func NonNull(t *Table, col string) *Table {
	out := &Table{Columns: t.Columns.Clone()}
	if !t.Columns.Has(col) {
		return out
	}
	for _, r := range t.Rows {
		if !r[col].IsNull() {
			out.Rows = append(out.Rows, r.Clone())
		}
	}
	return out
}
