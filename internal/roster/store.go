package roster

import (
	"fmt"
	"slices"
	"sync"

	"github.com/maruel/ksid"
)

// DefaultRequiredColumns are the fields a new record must carry: a display
// name and the unique contact address used as the edit identity.
var DefaultRequiredColumns = []string{"Preferred Name", "Work Email"}

// Key identifies the row an update targets. Exactly one of the two forms is
// used: a column/value match (the only strategy the HTTP surface exposes) or
// a positional index for programmatic callers that just enumerated a
// snapshot. A column miss never falls back to a position; stale positions
// silently mutating the wrong row is the defect class Update exists to
// prevent.
type Key struct {
	column string
	value  string
	index  int
}

// ByColumn keys an update by the row whose col equals value.
func ByColumn(col, value string) Key {
	return Key{column: col, value: value, index: -1}
}

// ByIndex keys an update by row position in the current table.
func ByIndex(i int) Key {
	return Key{index: i}
}

// Store owns the authoritative table for one session. All mutations go
// through it; everything it returns is a copy. A mutation either commits
// fully or leaves the table byte-for-byte unchanged.
type Store struct {
	mu       sync.RWMutex
	table    *Table
	dataset  ksid.ID
	revision uint64
	required []string
}

// NewStore returns a store with an empty table. required lists the columns
// Append demands; nil means DefaultRequiredColumns.
func NewStore(required []string) *Store {
	if required == nil {
		required = DefaultRequiredColumns
	}
	return &Store{table: NewTable(), required: required}
}

// Load replaces the table wholesale, discarding the previous one. Used when
// a new file is ingested. The store takes ownership of t.
func (s *Store) Load(t *Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.Complete()
	s.table = t
	s.dataset = ksid.NewID()
	s.revision++
}

// Clear discards all data.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = NewTable()
	s.dataset = 0
	s.revision++
}

// Snapshot returns a deep copy of the current table. Mutating the copy has
// no effect on the store.
func (s *Store) Snapshot() *Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Clone()
}

// Len returns the current row count.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Len()
}

// Revision returns a counter that increases on every successful mutation.
// Derived-view caches key on it.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// DatasetID identifies the currently loaded dataset; zero when empty.
func (s *Store) DatasetID() ksid.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}

// Append validates and adds one record as the last row. The record's column
// set is reconciled with the table's in both directions: new columns are
// added with null backfill for prior rows, and the stored record gets null
// for every column it didn't supply. Returns *ValidationError when a
// required field is missing; the table is untouched on any error.
func (s *Store) Append(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	norm := make(Record, len(rec))
	for col, v := range rec {
		norm[col] = v.Normalize()
	}
	for _, field := range s.required {
		if norm[field].IsNull() {
			return &ValidationError{Field: field}
		}
	}

	before := s.table.Len()
	full := s.table.absorb(norm)
	s.table.Rows = append(s.table.Rows, full)
	if s.table.Len() != before+1 {
		// Unreachable with the slice append above; kept as the invariant
		// the operation promises.
		s.table.Rows = s.table.Rows[:before]
		return &IntegrityError{Op: "append", Reason: fmt.Sprintf("row count %d, want %d", s.table.Len(), before+1)}
	}
	if s.dataset.IsZero() {
		s.dataset = ksid.NewID()
	}
	s.revision++
	return nil
}

// Update merges patch into the row key resolves to. Every column named by
// the patch takes the normalized patch value; every other table column
// carries forward unchanged, including columns the edit form never saw.
// Patch columns unknown to the table extend the schema with null backfill.
//
// Returns *NotFoundError when the key matches no row and *IntegrityError
// when the post-merge row count differs or the updated identity no longer
// resolves to exactly one row. On any error the table is left in its
// pre-update state.
func (s *Store) Update(key Key, patch Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, err := s.resolve(key)
	if err != nil {
		return err
	}

	// Merge into a clone so a failed post-condition check reverts by simply
	// not committing. Patch columns are merged in sorted name order so new
	// columns join the schema deterministically.
	next := s.table.Clone()
	row := next.Rows[target]
	cols := make([]string, 0, len(patch))
	for col := range patch {
		cols = append(cols, col)
	}
	slices.Sort(cols)
	for _, col := range cols {
		next.AddColumn(col)
		row[col] = patch[col].Normalize()
	}

	before := s.table.Len()
	if next.Len() != before {
		return &IntegrityError{Op: "update", Reason: fmt.Sprintf("row count changed from %d to %d", before, next.Len())}
	}
	if key.column != "" {
		// Re-resolve using the post-merge identity value: the edit may have
		// changed the identity column itself.
		ident := row[key.column]
		if ident.IsNull() {
			return &IntegrityError{Op: "update", Reason: fmt.Sprintf("identity column %q is empty after merge", key.column)}
		}
		matches := 0
		for _, r := range next.Rows {
			if !r[key.column].IsNull() && r[key.column].String() == ident.String() {
				matches++
			}
		}
		if matches != 1 {
			return &IntegrityError{Op: "update", Reason: fmt.Sprintf("%d records match %s = %q after merge, want 1", matches, key.column, ident.String())}
		}
	}

	s.table = next
	s.revision++
	return nil
}

// resolve maps a key to a row index in the current table. Caller holds the
// lock.
func (s *Store) resolve(key Key) (int, error) {
	if key.column != "" {
		if key.value == "" {
			return 0, &NotFoundError{Column: key.column, Value: key.value, Index: -1}
		}
		for i, r := range s.table.Rows {
			v := r[key.column]
			if !v.IsNull() && v.String() == key.value {
				return i, nil
			}
		}
		return 0, &NotFoundError{Column: key.column, Value: key.value, Index: -1}
	}
	if key.index < 0 || key.index >= s.table.Len() {
		return 0, &NotFoundError{Index: key.index}
	}
	return key.index, nil
}
