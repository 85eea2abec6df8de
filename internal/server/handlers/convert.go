// Converts between wire records (plain JSON values) and typed table cells.

package handlers

import (
	"fmt"
	"strconv"

	"github.com/rosterd/rosterd/internal/roster"
)

// recordFromWire types the cells of a decoded JSON record. Columns listed in
// dateCols get their text coerced to a date the same way ingest does, so an
// edit through the API behaves like the same cell in an uploaded file.
func recordFromWire(rec map[string]any, dateCols map[string]bool) roster.Record {
	out := make(roster.Record, len(rec))
	for col, raw := range rec {
		v := valueFromWire(raw)
		if dateCols[col] {
			v = roster.CoerceDate(v)
		}
		out[col] = v
	}
	return out
}

func valueFromWire(raw any) roster.Value {
	switch x := raw.(type) {
	case nil:
		return roster.Null()
	case string:
		return roster.Text(x).Normalize()
	case float64:
		return roster.Number(x)
	case bool:
		return roster.Text(strconv.FormatBool(x))
	default:
		return roster.Text(fmt.Sprint(x)).Normalize()
	}
}

// rowToWire flattens one row to plain JSON values in schema order. Nulls
// stay null, numbers stay numbers, dates render as 2006-01-02.
func rowToWire(cols roster.Schema, r roster.Record) map[string]any {
	out := make(map[string]any, len(cols))
	for _, col := range cols {
		out[col] = valueToWire(r[col])
	}
	return out
}

func valueToWire(v roster.Value) any {
	switch v.Kind() {
	case roster.KindNull:
		return nil
	case roster.KindNumber:
		return v.NumberValue()
	default:
		return v.String()
	}
}

func tableToWire(t *roster.Table) ([]string, []map[string]any) {
	rows := make([]map[string]any, 0, t.Len())
	for _, r := range t.Rows {
		rows = append(rows, rowToWire(t.Columns, r))
	}
	return []string(t.Columns), rows
}
