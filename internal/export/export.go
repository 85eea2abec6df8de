// Package export serializes a roster table snapshot to CSV and XLSX. Both
// are pure transformations: header row = column names, one row per record,
// null → empty field. The XLSX writer emits native typed cells so dates and
// numbers survive a round trip through a spreadsheet editor.
package export

import (
	"encoding/csv"
	"io"

	"github.com/rosterd/rosterd/internal/roster"
	"github.com/xuri/excelize/v2"
)

// SheetName is the single sheet written by XLSX.
const SheetName = "Roster"

// CSV writes the table as comma-separated text. Dates render as 2006-01-02.
func CSV(t *roster.Table, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	row := make([]string, len(t.Columns))
	for _, r := range t.Rows {
		for i, col := range t.Columns {
			row[i] = r[col].String()
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// XLSX writes the table as a one-sheet workbook with typed cells.
func XLSX(t *roster.Table, w io.Writer) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return err
	}
	// numFmt 14 is the builtin short date format.
	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	if err != nil {
		return err
	}

	for i, col := range t.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, cell, col); err != nil {
			return err
		}
	}
	for rowIdx, r := range t.Rows {
		for colIdx, col := range t.Columns {
			v := r[col]
			if v.IsNull() {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			switch v.Kind() {
			case roster.KindNumber:
				err = f.SetCellValue(SheetName, cell, v.NumberValue())
			case roster.KindDate:
				if err = f.SetCellValue(SheetName, cell, v.DateValue()); err == nil {
					err = f.SetCellStyle(SheetName, cell, cell, dateStyle)
				}
			default:
				err = f.SetCellValue(SheetName, cell, v.String())
			}
			if err != nil {
				return err
			}
		}
	}
	return f.Write(w)
}
