// Package ledger handles the Libro Mayor command
package ledger

import (
	"context"
	"fmt"
	"io"

	"fjacquet/clinic-journal/cmd/common"
	"fjacquet/clinic-journal/cmd/root"
	"fjacquet/clinic-journal/internal/container"
	"fjacquet/clinic-journal/internal/ledger"
	"fjacquet/clinic-journal/internal/logging"

	"github.com/spf13/cobra"
)

var withOpening bool

// Cmd represents the ledger command
var Cmd = &cobra.Command{
	Use:   "ledger",
	Short: "Print the Libro Mayor of a fiscal year",
	Long: `Derive and print the per-account totals of a fiscal year, sorted by account code,
followed by the totals row. --with-opening posts the year's opening balances on top.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.Context(), root.AppContainer, cmd.OutOrStdout(), root.Year(), root.SharedFlags.Search, withOpening)
	},
}

func init() {
	Cmd.Flags().BoolVar(&withOpening, "with-opening", false, "Include the opening balances of the year")
}

// Run derives the year and prints its ledger to w.
func Run(ctx context.Context, c *container.Container, w io.Writer, year int, search string, opening bool) error {
	d, err := c.GetYearView().Select(ctx, year)
	if err != nil {
		return fmt.Errorf("error deriving ledger: %w", err)
	}

	summaries := d.Ledger
	if opening {
		summaries, err = c.GetService().LedgerWithOpening(ctx, d)
		if err != nil {
			return fmt.Errorf("error loading opening balances: %w", err)
		}
	}

	lines := ledger.Filter(summaries.Sorted(), search)
	c.GetLogger().Info("Libro Mayor derived",
		logging.F(logging.FieldYear, year),
		logging.F(logging.FieldCount, len(lines)))

	return common.PrintLedger(w, lines)
}
