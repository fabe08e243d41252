// Package journal handles the Libro Diario command
package journal

import (
	"context"
	"fmt"
	"io"

	"fjacquet/clinic-journal/cmd/common"
	"fjacquet/clinic-journal/cmd/root"
	"fjacquet/clinic-journal/internal/container"
	"fjacquet/clinic-journal/internal/journal"
	"fjacquet/clinic-journal/internal/logging"
	"fjacquet/clinic-journal/internal/report"

	"github.com/spf13/cobra"
)

// Cmd represents the journal command
var Cmd = &cobra.Command{
	Use:   "journal",
	Short: "Print the Libro Diario of a fiscal year",
	Long: `Derive and print the journal entries of a fiscal year, newest first.
Use --search to keep only lines whose account code, account name or document matches.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.Context(), root.AppContainer, cmd.OutOrStdout(), root.Year(), root.SharedFlags.Search)
	},
}

// Run derives the year and prints its journal to w.
func Run(ctx context.Context, c *container.Container, w io.Writer, year int, search string) error {
	d, err := c.GetYearView().Select(ctx, year)
	if err != nil {
		return fmt.Errorf("error deriving journal: %w", err)
	}

	entries := report.FilterEntries(journal.SortForDisplay(d.Entries), search)
	c.GetLogger().Info("Libro Diario derived",
		logging.F(logging.FieldYear, year),
		logging.F(logging.FieldCount, len(entries)))
	if len(d.Rejected) > 0 {
		c.GetLogger().Warn("Some records were skipped as malformed",
			logging.F(logging.FieldCount, len(d.Rejected)))
	}

	return common.PrintJournal(w, entries)
}
