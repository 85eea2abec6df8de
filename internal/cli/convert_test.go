package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rosterd/rosterd/internal/ingest"
	"github.com/rosterd/rosterd/internal/roster"
)

const convertInput = `Preferred Name,Work Email,Hire Date
Alice,a@x.com,3/15/2024
Bob,b@x.com,
`

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConvertCSVToXLSX(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "people.csv")
	out := filepath.Join(dir, "people.xlsx")
	if err := os.WriteFile(in, []byte(convertInput), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCommand(t, "convert", in, out); err != nil {
		t.Fatalf("convert: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	tb, err := ingest.Read("people.xlsx", f, ingest.Options{})
	if err != nil {
		t.Fatalf("read converted file: %v", err)
	}
	if tb.Len() != 2 {
		t.Fatalf("rows = %d", tb.Len())
	}
	if got := tb.Rows[0]["Preferred Name"].String(); got != "Alice" {
		t.Errorf("name = %q", got)
	}
}

func TestConvertNormalizesDates(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "people.csv")
	out := filepath.Join(dir, "out.csv")
	if err := os.WriteFile(in, []byte(convertInput), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCommand(t, "convert", in, out); err != nil {
		t.Fatalf("convert: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	tb, err := ingest.Read("out.csv", f, ingest.Options{})
	if err != nil {
		t.Fatal(err)
	}
	hire := tb.Rows[0]["Hire Date"]
	if hire.Kind() != roster.KindDate {
		t.Fatalf("kind = %v", hire.Kind())
	}
	if got := hire.String(); got != "2024-03-15" {
		t.Errorf("date = %q", got)
	}
	if !tb.Rows[1]["Hire Date"].IsNull() {
		t.Error("blank date did not stay blank")
	}
}

func TestConvertUnsupportedOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "people.csv")
	if err := os.WriteFile(in, []byte(convertInput), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := runCommand(t, "convert", in, filepath.Join(dir, "out.pdf")); err == nil {
		t.Fatal("expected error")
	}
}
