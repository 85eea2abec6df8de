// Implements the convert command: spreadsheet format conversion.

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rosterd/rosterd/internal/config"
	"github.com/rosterd/rosterd/internal/export"
	"github.com/rosterd/rosterd/internal/ingest"
)

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert a spreadsheet between formats",
		Long: `Convert a spreadsheet between formats.

Reads .csv, .xlsx or legacy .xls and writes .csv or .xlsx. Cells in the
configured date columns are normalized to 2006-01-02; blank cells stay
blank in the output.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(rootOpts, args[0], args[1])
		},
	}
	return cmd
}

func runConvert(opts *RootOptions, in, out string) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return err
	}

	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	t, err := ingest.Read(filepath.Base(in), f, ingest.Options{DateColumns: cfg.DateColumns})
	if err != nil {
		return err
	}

	o, err := os.Create(out)
	if err != nil {
		return err
	}
	switch ext := strings.ToLower(filepath.Ext(out)); ext {
	case ".csv":
		err = export.CSV(t, o)
	case ".xlsx":
		err = export.XLSX(t, o)
	default:
		err = fmt.Errorf("unsupported output format %q (want .csv or .xlsx)", ext)
	}
	if cerr := o.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(out)
		return err
	}
	return nil
}
