package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/rosterd/rosterd/internal/roster"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func fixture() *roster.Table {
	t := roster.NewTable("Preferred Name", "Work Email", "Hire Date", "Cost Center #", "Notes")
	t.Rows = []roster.Record{
		{
			"Preferred Name": roster.Text("Alice"),
			"Work Email":     roster.Text("a@x.com"),
			"Hire Date":      roster.Date(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)),
			"Cost Center #":  roster.Number(4410),
			"Notes":          roster.Text("Remote, part-time"),
		},
		{
			"Preferred Name": roster.Text("Bob"),
			"Work Email":     roster.Text("b@x.com"),
			"Hire Date":      roster.Null(),
			"Cost Center #":  roster.Null(),
			"Notes":          roster.Null(),
		},
	}
	return t
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSV(fixture(), &buf))
	g := goldie.New(t)
	g.Assert(t, "roster", buf.Bytes())
}

func TestCSVEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSV(roster.NewTable("Preferred Name", "Work Email"), &buf))
	assert.Equal(t, "Preferred Name,Work Email\n", buf.String())
}

func TestXLSXRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, XLSX(fixture(), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Preferred Name", "Work Email", "Hire Date", "Cost Center #", "Notes"}, rows[0])

	// The date cell must be a real serial date, not text.
	typ, err := f.GetCellType(SheetName, "C2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, typ)
	assert.NotEqual(t, excelize.CellTypeInlineString, typ)

	got, err := f.GetCellValue(SheetName, "D2")
	require.NoError(t, err)
	assert.Equal(t, "4410", got)

	// Null cells stay empty.
	got, err = f.GetCellValue(SheetName, "C3")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}
