// Package container provides dependency injection for the clinic-journal application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"
	"io"
	"path/filepath"

	"fjacquet/clinic-journal/internal/config"
	"fjacquet/clinic-journal/internal/engine"
	"fjacquet/clinic-journal/internal/fileutils"
	"fjacquet/clinic-journal/internal/journal"
	"fjacquet/clinic-journal/internal/logging"
	"fjacquet/clinic-journal/internal/report"
	"fjacquet/clinic-journal/internal/store"
	"fjacquet/clinic-journal/internal/validation"
)

// Store drivers
const (
	DriverYAML  = "yaml"
	DriverMySQL = "mysql"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation; dependencies are only reachable
// through getter methods.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	source    store.Source
	service   *engine.Service
	view      *engine.YearView
	generator *report.Generator
}

// NewContainer creates and wires all application dependencies, opening the
// source selected by cfg.Store.Driver.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Create logger first as it's needed by other components
	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)

	source, err := openSource(cfg, logger)
	if err != nil {
		return nil, err
	}

	return NewContainerWithSource(cfg, source, logger)
}

// NewContainerWithSource wires the application around an already opened source.
func NewContainerWithSource(cfg *config.Config, source store.Source, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if source == nil {
		return nil, fmt.Errorf("source cannot be nil")
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}

	service := engine.NewService(source,
		engine.WithDefaults(journal.Defaults{
			RevenueAccount:  cfg.Journal.DefaultRevenueAccount,
			ExpenseAccount:  cfg.Journal.DefaultExpenseAccount,
			TreasuryAccount: cfg.Journal.DefaultTreasuryAccount,
		}),
		engine.WithFetchTimeout(cfg.FetchTimeout()),
		engine.WithLogger(logger))

	generator := report.NewGenerator(delimiter(cfg.Export.CSVDelimiter), logger)

	logger.Info("Container initialized successfully",
		logging.F(logging.FieldSource, source.Name()))

	return &Container{
		logger:    logger,
		config:    cfg,
		source:    source,
		service:   service,
		view:      engine.NewYearView(service),
		generator: generator,
	}, nil
}

func openSource(cfg *config.Config, logger logging.Logger) (store.Source, error) {
	switch cfg.Store.Driver {
	case DriverYAML, "":
		return openFileSource(cfg.Store.DataDir, logger)
	case DriverMySQL:
		src, err := store.OpenSQLSource(cfg.Store.DSN, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open mysql source: %w", err)
		}
		return src, nil
	default:
		return nil, fmt.Errorf("unknown store driver: %s", cfg.Store.Driver)
	}
}

// openFileSource checks the data directory before any table is read from it.
func openFileSource(dataDir string, logger logging.Logger) (*store.FileSource, error) {
	dir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("invalid data directory %q: %w", dataDir, err)
	}
	if err := validation.IsValidPath(dir); err != nil {
		return nil, fmt.Errorf("invalid data directory: %w", err)
	}
	tables, err := fileutils.ListFilesWithExtension(dir, ".yaml")
	if err != nil {
		return nil, fmt.Errorf("invalid data directory: %w", err)
	}
	if len(tables) == 0 {
		logger.Warn("Data directory holds no table files",
			logging.F(logging.FieldSource, dir))
	}
	logger.Debug("Opening YAML source",
		logging.F(logging.FieldSource, dir),
		logging.F(logging.FieldCount, len(tables)))
	return store.NewFileSource(dir, logger), nil
}

func delimiter(s string) rune {
	for _, r := range s {
		return r
	}
	return ','
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetSource returns the data source.
func (c *Container) GetSource() store.Source {
	return c.source
}

// GetService returns the derivation service.
func (c *Container) GetService() *engine.Service {
	return c.service
}

// GetYearView returns the shared year selector.
func (c *Container) GetYearView() *engine.YearView {
	return c.view
}

// GetGenerator returns the export generator.
func (c *Container) GetGenerator() *report.Generator {
	return c.generator
}

// Close releases the source if it holds resources.
func (c *Container) Close() error {
	if closer, ok := c.source.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("failed to close source: %w", err)
		}
	}
	c.logger.Info("Container closed")
	return nil
}
