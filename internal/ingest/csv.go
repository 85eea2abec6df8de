package ingest

import (
	"bytes"
	"encoding/csv"
	"io"
	"unicode/utf8"

	"github.com/rosterd/rosterd/internal/roster"
	"golang.org/x/text/encoding/charmap"
)

// utf8BOM is stripped when an exporting tool (Excel, mostly) prefixed one.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func readCSV(name string, r io.Reader, opts Options) (*roster.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Name: name, Err: err}
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		// Excel on Windows still emits CP-1252 CSVs; transcode rather than
		// reject.
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return nil, &ParseError{Name: name, Err: err}
		}
		data = decoded
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1 // rows are padded/truncated against the header
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, &ParseError{Name: name, Err: err}
	}
	if len(rows) == 0 {
		return nil, &ParseError{Name: name, Err: io.ErrUnexpectedEOF}
	}

	cols, err := header(name, rows[0])
	if err != nil {
		return nil, err
	}
	t := &roster.Table{Columns: cols}
	buildRows(t, rows[1:], opts.dateColumns())
	return t, nil
}
