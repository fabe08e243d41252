// Package root contains the root command for the application
package root

import (
	"fmt"
	"time"

	"fjacquet/clinic-journal/internal/config"
	"fjacquet/clinic-journal/internal/container"
	"fjacquet/clinic-journal/internal/currencyutils"
	"fjacquet/clinic-journal/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to all commands
type CommonFlags struct {
	Year       int
	ConfigFile string
	Source     string
	DataDir    string
	Search     string
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.GetLogger()

	// AppContainer holds the dependencies built before each command runs
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "clinic-journal",
		Short: "Derive the double-entry journal and ledger of a clinic fiscal year.",
		Long: `clinic-journal reads the clinic's incomes, expenses and accounting catalogs
and derives the Libro Diario, the Libro Mayor and the list of expenses whose
type has no mapped account.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to clinic-journal!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer == nil {
				return
			}
			if err := AppContainer.Close(); err != nil {
				Log.WithError(err).Warn("Failed to close container")
			}
		},
	}

	// SharedFlags holds the values of the persistent flags
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	flags := Cmd.PersistentFlags()
	flags.IntVarP(&SharedFlags.Year, "year", "y", 0, "Fiscal year (default: current year)")
	flags.StringVarP(&SharedFlags.ConfigFile, "config", "c", "", "Config file (default: ./config.yaml or ~/.clinic-journal/config.yaml)")
	flags.StringVar(&SharedFlags.Source, "source", "", "Data source driver: yaml or mysql (overrides store.driver)")
	flags.StringVar(&SharedFlags.DataDir, "data-dir", "", "Directory of YAML table files (overrides store.data_dir)")
	flags.StringVarP(&SharedFlags.Search, "search", "s", "", "Filter rows by account code, name or document")
}

// LoadConfig reads the configuration and applies the command-line overrides.
func LoadConfig(flags CommonFlags) (*config.Config, error) {
	config.LoadEnv()

	cfg, err := config.InitializeConfigFromFile(flags.ConfigFile)
	if err != nil {
		return nil, err
	}
	if flags.Source != "" {
		cfg.Store.Driver = flags.Source
	}
	if flags.DataDir != "" {
		cfg.Store.DataDir = flags.DataDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(SharedFlags)
	if err != nil {
		return err
	}

	currencyutils.SetLogger(config.ConfigureLoggingFromConfig(cfg))

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	AppContainer = c
	Log = c.GetLogger()
	return nil
}

// Year returns the --year flag, or the current year when unset.
func Year() int {
	if SharedFlags.Year == 0 {
		return time.Now().Year()
	}
	return SharedFlags.Year
}
