package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const inspectInput = `Preferred Name,Work Email,Hire Date,Boot Camp In-Person,VILT
Alice,a@x.com,2024-03-15,2024-01 Boot Camp,
Bob,b@x.com,2021-06-01,,2023-11 VILT
`

func TestInspectJSON(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "people.csv")
	if err := os.WriteFile(in, []byte(inspectInput), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCommand(t, "inspect", "--json", in)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}

	var report inspectReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if report.Rows != 2 || report.TotalEmployees != 2 {
		t.Errorf("report = %+v", report)
	}
	if len(report.Columns) != 5 {
		t.Errorf("columns = %v", report.Columns)
	}
	if report.ClassCounts["Boot Camp In-Person"] != 1 {
		t.Errorf("class counts = %v", report.ClassCounts)
	}
	if len(report.Completion) != 2 {
		t.Fatalf("completion = %v", report.Completion)
	}
	if report.Completion[0].Completed != 1 || report.Completion[0].NotCompleted != 1 {
		t.Errorf("completion = %+v", report.Completion[0])
	}
}

func TestInspectText(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "people.csv")
	if err := os.WriteFile(in, []byte(inspectInput), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCommand(t, "inspect", in)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if !strings.Contains(out, "2 rows, 5 columns") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "employees: 2") {
		t.Errorf("output = %q", out)
	}
}

func TestInspectMissingFile(t *testing.T) {
	if _, err := runCommand(t, "inspect", filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("expected error")
	}
}
