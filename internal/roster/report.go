package roster

import (
	"sort"
	"sync"
	"time"
)

// Reporter computes the dashboard's derived views from a table snapshot.
// All methods are pure functions of their inputs; Views adds per-revision
// caching on top.
type Reporter struct {
	// HireDateColumn feeds the recent-hire metric.
	HireDateColumn string
	// RecentWindow is how far back a hire still counts as recent.
	RecentWindow time.Duration
	// ClassColumns are the training class columns tracked by the metrics
	// and completion views, in display order.
	ClassColumns []string
}

// Metrics are the headline counts at the top of the dashboard.
type Metrics struct {
	TotalEmployees int `json:"total_employees"`
	RecentHires    int `json:"recent_hires"`
	// ClassCounts holds the number of distinct classes per class column,
	// keyed by column name.
	ClassCounts map[string]int `json:"class_counts"`
}

// Metrics computes the overview counts as of now.
func (rp *Reporter) Metrics(t *Table, now time.Time) Metrics {
	m := Metrics{TotalEmployees: t.Len(), ClassCounts: make(map[string]int, len(rp.ClassColumns))}
	if t.Columns.Has(rp.HireDateColumn) {
		cutoff := now.Add(-rp.RecentWindow)
		for _, r := range t.Rows {
			v := r[rp.HireDateColumn]
			if v.Kind() == KindDate && !v.DateValue().Before(cutoff) {
				m.RecentHires++
			}
		}
	}
	for _, col := range rp.ClassColumns {
		m.ClassCounts[col] = len(Options(t, col))
	}
	return m
}

// ClassGroup is one class and the rows assigned to it.
type ClassGroup struct {
	Name     string `json:"name"`
	Students int    `json:"students"`
}

// Classes groups the rows with a value in col by that value, newest class
// first (class names embed dates, so reverse-lexical puts the most recent
// cohort on top, as the original report did).
func (rp *Reporter) Classes(t *Table, col string) []ClassGroup {
	counts := map[string]int{}
	for _, r := range t.Rows {
		if v := r[col]; !v.IsNull() {
			counts[v.String()]++
		}
	}
	groups := make([]ClassGroup, 0, len(counts))
	for name, n := range counts {
		groups = append(groups, ClassGroup{Name: name, Students: n})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name > groups[j].Name })
	return groups
}

// Completion is the completed / not-completed split for one class column.
type Completion struct {
	Column       string `json:"column"`
	Completed    int    `json:"completed"`
	NotCompleted int    `json:"not_completed"`
}

// Completion reports, per tracked class column, how many rows have a value.
func (rp *Reporter) Completion(t *Table) []Completion {
	out := make([]Completion, 0, len(rp.ClassColumns))
	for _, col := range rp.ClassColumns {
		c := Completion{Column: col}
		if t.Columns.Has(col) {
			for _, r := range t.Rows {
				if r[col].IsNull() {
					c.NotCompleted++
				} else {
					c.Completed++
				}
			}
		} else {
			c.NotCompleted = t.Len()
		}
		out = append(out, c)
	}
	return out
}

// ValueCount is one value and how many rows carry it.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Distribution returns value counts for col, most frequent first, ties by
// value for determinism.
func Distribution(t *Table, col string) []ValueCount {
	counts := map[string]int{}
	for _, r := range t.Rows {
		if v := r[col]; !v.IsNull() {
			counts[v.String()]++
		}
	}
	out := make([]ValueCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, ValueCount{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// Views caches derived views per store revision. Any successful mutation
// bumps the revision, which invalidates everything cached here on the next
// read; stale entries are dropped, never served.
type Views struct {
	store    *Store
	reporter *Reporter

	mu       sync.Mutex
	revision uint64
	snapshot *Table
	classes  map[string][]ClassGroup
}

// NewViews wraps store with a per-revision view cache.
func NewViews(store *Store, reporter *Reporter) *Views {
	return &Views{store: store, reporter: reporter}
}

// current returns a cached snapshot of the table, refreshing the cache when
// the store has moved on. Caller must hold v.mu.
func (v *Views) current() *Table {
	if rev := v.store.Revision(); rev != v.revision || v.snapshot == nil {
		v.revision = rev
		v.snapshot = v.store.Snapshot()
		v.classes = map[string][]ClassGroup{}
	}
	return v.snapshot
}

// Snapshot returns the cached table for the current revision.
func (v *Views) Snapshot() *Table {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current().Clone()
}

// Metrics returns the overview counts as of now. Never cached: RecentHires
// is a function of the clock, not just the revision, and the scan is
// O(rows).
func (v *Views) Metrics(now time.Time) Metrics {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.reporter.Metrics(v.current(), now)
}

// Classes returns the class grouping for col at the current revision.
func (v *Views) Classes(col string) []ClassGroup {
	v.mu.Lock()
	defer v.mu.Unlock()
	t := v.current()
	if g, ok := v.classes[col]; ok {
		return g
	}
	g := v.reporter.Classes(t, col)
	v.classes[col] = g
	return g
}

// Completion returns the completion split at the current revision over the
// rows passing f. A nil or empty filter covers the whole table.
func (v *Views) Completion(f *Filter) []Completion {
	v.mu.Lock()
	defer v.mu.Unlock()
	t := v.current()
	if !f.Empty() {
		t = f.Apply(t)
	}
	return v.reporter.Completion(t)
}

// Distribution returns value counts for col at the current revision.
func (v *Views) Distribution(col string) []ValueCount {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Distribution(v.current(), col)
}

// Options returns filter options for col at the current revision.
func (v *Views) Options(col string) []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Options(v.current(), col)
}
