package ingest

import (
	"bytes"
	"fmt"
	"io"

	"github.com/extrame/xls"
	"github.com/rosterd/rosterd/internal/roster"
)

func readXLS(name string, r io.Reader, opts Options) (*roster.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Name: name, Err: err}
	}
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, &ParseError{Name: name, Err: err}
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, &ParseError{Name: name, Err: fmt.Errorf("workbook has no sheets")}
	}

	raw := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			raw = append(raw, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for j := row.FirstCol(); j < row.LastCol(); j++ {
			cells[j] = row.Col(j)
		}
		raw = append(raw, cells)
	}
	if len(raw) == 0 {
		return nil, &ParseError{Name: name, Err: fmt.Errorf("sheet is empty")}
	}

	cols, err := header(name, raw[0])
	if err != nil {
		return nil, err
	}
	t := &roster.Table{Columns: cols}
	buildRows(t, raw[1:], opts.dateColumns())
	return t, nil
}
