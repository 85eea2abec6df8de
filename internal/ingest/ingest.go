// Package ingest parses uploaded spreadsheets (CSV, XLSX, legacy XLS) into a
// roster table: header row becomes the schema, column names are trimmed,
// configured date columns are coerced to typed dates, and numeric-looking
// cells become numbers. Parse failures are *ParseError and are never
// retried; the caller re-uploads.
package ingest

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rosterd/rosterd/internal/roster"
)

// DefaultDateColumns are coerced to typed dates unless the caller overrides
// them.
var DefaultDateColumns = []string{"Hire Date", "Course Completion", "SE Capstone"}

// Options controls parsing.
type Options struct {
	// DateColumns lists the columns whose cells are coerced to dates.
	// Unparseable dates become null, never an error. Nil means
	// DefaultDateColumns.
	DateColumns []string
}

func (o Options) dateColumns() map[string]bool {
	cols := o.DateColumns
	if cols == nil {
		cols = DefaultDateColumns
	}
	m := make(map[string]bool, len(cols))
	for _, c := range cols {
		m[c] = true
	}
	return m
}

// ParseError reports a file that could not be ingested.
type ParseError struct {
	Name string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Name, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Read parses the named spreadsheet into a table, dispatching on the file
// extension (.csv, .xlsx, .xls).
func Read(name string, r io.Reader, opts Options) (*roster.Table, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return readCSV(name, r, opts)
	case ".xlsx":
		return readXLSX(name, r, opts)
	case ".xls":
		return readXLS(name, r, opts)
	default:
		return nil, &ParseError{Name: name, Err: fmt.Errorf("unsupported file type %q, use .csv, .xlsx or .xls", filepath.Ext(name))}
	}
}

// header trims and validates the schema row.
func header(name string, cells []string) (roster.Schema, error) {
	if len(cells) == 0 {
		return nil, &ParseError{Name: name, Err: fmt.Errorf("missing header row")}
	}
	cols := make(roster.Schema, 0, len(cells))
	seen := map[string]bool{}
	for i, c := range cells {
		c = strings.TrimSpace(c)
		if c == "" {
			// Trailing padding columns produced by spreadsheet editors are
			// dropped; a hole in the middle is a broken file.
			if rest := cells[i:]; allBlank(rest) {
				break
			}
			return nil, &ParseError{Name: name, Err: fmt.Errorf("column %d has an empty name", i+1)}
		}
		if seen[c] {
			return nil, &ParseError{Name: name, Err: fmt.Errorf("duplicate column %q", c)}
		}
		seen[c] = true
		cols = append(cols, c)
	}
	if len(cols) == 0 {
		return nil, &ParseError{Name: name, Err: fmt.Errorf("missing header row")}
	}
	return cols, nil
}

func allBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseCell types one raw cell: blank → null, date columns → CoerceDate,
// numeric text → number, everything else text.
func parseCell(raw string, isDate bool) roster.Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return roster.Null()
	}
	if isDate {
		return roster.CoerceDate(roster.Text(s))
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return roster.Number(f)
	}
	return roster.Text(s)
}

// buildRows assembles records from raw data rows, padding short rows with
// null and ignoring cells beyond the schema.
func buildRows(t *roster.Table, rows [][]string, dates map[string]bool) {
	for _, raw := range rows {
		if allBlank(raw) {
			continue
		}
		rec := make(roster.Record, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(raw) {
				rec[col] = parseCell(raw[i], dates[col])
			} else {
				rec[col] = roster.Null()
			}
		}
		t.Rows = append(t.Rows, rec)
	}
}
