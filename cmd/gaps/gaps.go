// Package gaps handles the mapping-gap command
package gaps

import (
	"context"
	"fmt"
	"io"

	"fjacquet/clinic-journal/cmd/common"
	"fjacquet/clinic-journal/cmd/root"
	"fjacquet/clinic-journal/internal/container"

	"github.com/spf13/cobra"
)

// Cmd represents the gaps command
var Cmd = &cobra.Command{
	Use:   "gaps",
	Short: "List expenses whose type has no mapped account",
	Long: `List the expenses of a fiscal year that were posted to the default expense
account because their expense type has no entry in the expense catalog.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.Context(), root.AppContainer, cmd.OutOrStdout(), root.Year())
	},
}

// Run derives the year and prints its mapping gaps to w.
func Run(ctx context.Context, c *container.Container, w io.Writer, year int) error {
	d, err := c.GetYearView().Select(ctx, year)
	if err != nil {
		return fmt.Errorf("error deriving mapping gaps: %w", err)
	}
	return common.PrintGaps(w, d.Gaps)
}
