// Implements the inspect command: a dataset summary without a server.

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/rosterd/rosterd/internal/config"
	"github.com/rosterd/rosterd/internal/ingest"
	"github.com/rosterd/rosterd/internal/roster"
)

// inspectReport is the JSON shape of the inspect output.
type inspectReport struct {
	File           string              `json:"file"`
	Rows           int                 `json:"rows"`
	Columns        []string            `json:"columns"`
	TotalEmployees int                 `json:"total_employees"`
	RecentHires    int                 `json:"recent_hires"`
	ClassCounts    map[string]int      `json:"class_counts"`
	Completion     []roster.Completion `json:"completion"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Summarize a roster spreadsheet",
		Long:  "Parse a spreadsheet and print its schema and headline metrics without starting a server.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(rootOpts, cmd, args[0], asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

func runInspect(opts *RootOptions, cmd *cobra.Command, path string, asJSON bool) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	t, err := ingest.Read(filepath.Base(path), f, ingest.Options{DateColumns: cfg.DateColumns})
	if err != nil {
		return err
	}

	reporter := &roster.Reporter{
		HireDateColumn: cfg.HireDateColumn,
		RecentWindow:   time.Duration(cfg.RecentHireDays) * 24 * time.Hour,
		ClassColumns:   cfg.ClassColumns,
	}
	m := reporter.Metrics(t, time.Now())
	report := inspectReport{
		File:           path,
		Rows:           t.Len(),
		Columns:        []string(t.Columns),
		TotalEmployees: m.TotalEmployees,
		RecentHires:    m.RecentHires,
		ClassCounts:    m.ClassCounts,
		Completion:     reporter.Completion(t),
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(&report)
	}

	fmt.Fprintf(out, "%s: %d rows, %d columns\n", report.File, report.Rows, len(report.Columns))
	for _, col := range report.Columns {
		fmt.Fprintf(out, "  %s\n", col)
	}
	fmt.Fprintf(out, "employees: %d (recent hires: %d)\n", report.TotalEmployees, report.RecentHires)
	for _, c := range report.Completion {
		fmt.Fprintf(out, "%s: %d completed, %d not completed\n", c.Column, c.Completed, c.NotCompleted)
	}
	return nil
}
