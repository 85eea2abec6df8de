package ingest

import (
	"fmt"
	"io"

	"github.com/rosterd/rosterd/internal/roster"
	"github.com/xuri/excelize/v2"
)

func readXLSX(name string, r io.Reader, opts Options) (*roster.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &ParseError{Name: name, Err: err}
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ParseError{Name: name, Err: fmt.Errorf("workbook has no sheets")}
	}
	// Only the first sheet is ingested, like the original report template.
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &ParseError{Name: name, Err: err}
	}
	if len(rows) == 0 {
		return nil, &ParseError{Name: name, Err: fmt.Errorf("sheet %q is empty", sheets[0])}
	}

	cols, err := header(name, rows[0])
	if err != nil {
		return nil, err
	}
	t := &roster.Table{Columns: cols}
	buildRows(t, rows[1:], opts.dateColumns())
	return t, nil
}
