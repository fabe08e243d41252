// Package snapshot handles the command that saves a fiscal year as YAML tables
package snapshot

import (
	"context"
	"fmt"

	"fjacquet/clinic-journal/cmd/root"
	"fjacquet/clinic-journal/internal/container"
	"fjacquet/clinic-journal/internal/logging"
	"fjacquet/clinic-journal/internal/store"

	"github.com/spf13/cobra"
)

var outputDir string

// Cmd represents the snapshot command
var Cmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Save the source tables of a fiscal year as YAML files",
	Long: `Fetch the catalogs, incomes, expenses and opening balances of a fiscal year
from the configured source and write them as YAML table files that the yaml
driver can read back, e.g. to work offline from a MySQL database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.Context(), root.AppContainer, root.Year(), outputDir)
	},
}

func init() {
	Cmd.Flags().StringVarP(&outputDir, "out", "o", "", "Directory to write the table files to (required)")
	_ = Cmd.MarkFlagRequired("out")
}

// Run fetches the year from the configured source and writes it into dir.
func Run(ctx context.Context, c *container.Container, year int, dir string) error {
	service := c.GetService()

	snapshot, err := service.Fetch(ctx, year)
	if err != nil {
		return fmt.Errorf("error fetching year %d: %w", year, err)
	}
	openings, err := service.OpeningBalances(ctx, year)
	if err != nil {
		return fmt.Errorf("error fetching opening balances: %w", err)
	}

	target := store.NewFileSource(dir, c.GetLogger())
	if err := target.WriteSnapshot(snapshot, openings); err != nil {
		return err
	}

	c.GetLogger().Info("Snapshot written",
		logging.F(logging.FieldYear, year),
		logging.F(logging.FieldSource, service.Source().Name()),
		logging.F(logging.FieldOutputFile, target.Dir()))
	return nil
}
