// Package export handles the book export command
package export

import (
	"context"
	"fmt"
	"io"

	"fjacquet/clinic-journal/cmd/root"
	"fjacquet/clinic-journal/internal/container"
	"fjacquet/clinic-journal/internal/ledger"
	"fjacquet/clinic-journal/internal/report"
	"fjacquet/clinic-journal/internal/validation"

	"github.com/spf13/cobra"
)

// Options are the export command flags.
type Options struct {
	Book        string
	Format      string
	OutputDir   string
	WithOpening bool
}

var opts Options

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export the Libro Diario, Libro Mayor or mapping gaps",
	Long: `Export the books of a fiscal year as CSV, XLSX or JSON files.
Files are named after the book and the year, e.g. Libro_Mayor_2026.xlsx.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.Context(), root.AppContainer, cmd.OutOrStdout(), root.Year(), root.SharedFlags.Search, opts)
	},
}

func init() {
	Cmd.Flags().StringVarP(&opts.Book, "book", "b", "all", "Book to export: diario, mayor, gaps or all")
	Cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Export format: csv, xlsx or json (default: export.format)")
	Cmd.Flags().StringVarP(&opts.OutputDir, "out", "o", "", "Output directory (default: export.directory)")
	Cmd.Flags().BoolVar(&opts.WithOpening, "with-opening", false, "Include opening balances in the Libro Mayor")
}

// Run derives the year and writes the requested books, printing each path to w.
func Run(ctx context.Context, c *container.Container, w io.Writer, year int, search string, o Options) error {
	cfg := c.GetConfig()
	if o.Format == "" {
		o.Format = cfg.Export.Format
	}
	if o.OutputDir == "" {
		o.OutputDir = cfg.Export.Directory
	}
	if err := validation.IsValidExportFormat(o.Format); err != nil {
		return err
	}

	kinds := []report.Kind{report.KindDiario, report.KindMayor, report.KindGaps}
	if o.Book != "all" {
		kind, err := report.ParseKind(o.Book)
		if err != nil {
			return err
		}
		kinds = []report.Kind{kind}
	}

	d, err := c.GetYearView().Select(ctx, year)
	if err != nil {
		return fmt.Errorf("error deriving books: %w", err)
	}

	for _, kind := range kinds {
		var book *report.Book
		switch kind {
		case report.KindDiario:
			book = report.NewDiarioBook(year, report.FilterEntries(d.Entries, search))
		case report.KindMayor:
			summaries := d.Ledger
			if o.WithOpening {
				if summaries, err = c.GetService().LedgerWithOpening(ctx, d); err != nil {
					return fmt.Errorf("error loading opening balances: %w", err)
				}
			}
			book = report.NewMayorBook(year, ledger.Filter(summaries.Sorted(), search))
		default:
			book = report.NewGapsBook(year, d.Gaps)
		}

		path, err := c.GetGenerator().WriteFile(o.OutputDir, book, o.Format)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, path)
	}
	return nil
}
