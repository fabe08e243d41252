package container

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/clinic-journal/internal/config"
	"fjacquet/clinic-journal/internal/logging"
	"fjacquet/clinic-journal/internal/models"
	"fjacquet/clinic-journal/internal/store"
	"github.com/shopspring/decimal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(dir string) *config.Config {
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Store.Driver = DriverYAML
	cfg.Store.DataDir = dir
	cfg.Store.FetchTimeoutSeconds = 5
	cfg.Journal.DefaultRevenueAccount = "70500000"
	cfg.Journal.DefaultExpenseAccount = "62900000"
	cfg.Journal.DefaultTreasuryAccount = "57299999"
	cfg.Export.CSVDelimiter = ";"
	cfg.Export.Format = "csv"
	return cfg
}

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name        string
		config      func() *config.Config
		expectError bool
		errorMsg    string
	}{
		{
			name:        "nil config",
			config:      func() *config.Config { return nil },
			expectError: true,
			errorMsg:    "configuration cannot be nil",
		},
		{
			name:   "yaml driver",
			config: func() *config.Config { return testConfig(t.TempDir()) },
		},
		{
			name:        "missing data directory",
			config:      func() *config.Config { return testConfig(filepath.Join(t.TempDir(), "missing")) },
			expectError: true,
			errorMsg:    "path does not exist",
		},
		{
			name: "data directory is a file",
			config: func() *config.Config {
				path := filepath.Join(t.TempDir(), "incomes.yaml")
				require.NoError(t, os.WriteFile(path, []byte("[]\n"), 0600))
				return testConfig(path)
			},
			expectError: true,
			errorMsg:    "invalid data directory",
		},
		{
			name: "unknown driver",
			config: func() *config.Config {
				cfg := testConfig(t.TempDir())
				cfg.Store.Driver = "postgres"
				return cfg
			},
			expectError: true,
			errorMsg:    "unknown store driver",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewContainer(tt.config())
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, c.GetLogger())
			assert.NotNil(t, c.GetConfig())
			assert.NotNil(t, c.GetService())
			assert.NotNil(t, c.GetYearView())
			assert.NotNil(t, c.GetGenerator())
			assert.IsType(t, &store.FileSource{}, c.GetSource())
			assert.NoError(t, c.Close())
		})
	}
}

func TestNewContainerWithSource_UsesConfiguredDefaults(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.Journal.DefaultTreasuryAccount = "57000001"

	src := &store.MockSource{
		IncomeRecords: []models.IncomeRecord{{
			IssueDate: "2026-01-10", InvoiceNumber: "F001", ClientName: "Ana Ruiz",
			TotalAmount: decimal.NewFromInt(121), TaxBase: decimal.NewFromInt(100),
			VATQuota: decimal.NewFromInt(21), PaymentMethod: "Bizum",
		}},
	}
	logger := logging.NewMockLogger()

	c, err := NewContainerWithSource(cfg, src, logger)
	require.NoError(t, err)
	assert.Same(t, src, c.GetSource())
	assert.True(t, logger.HasEntry("INFO", "Container initialized successfully"))

	entries, err := c.GetService().GetJournal(context.Background(), 2026)
	require.NoError(t, err)

	var treasury []string
	for _, e := range entries {
		if e.TransactionType == models.TransactionTypeCollection && e.Debit.IsPositive() {
			treasury = append(treasury, e.AccountCode)
		}
	}
	assert.Equal(t, []string{"57000001"}, treasury)
}

func TestNewContainerWithSource_NilSource(t *testing.T) {
	_, err := NewContainerWithSource(testConfig(t.TempDir()), nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source cannot be nil")
}

func TestDelimiter(t *testing.T) {
	assert.Equal(t, ';', delimiter(";"))
	assert.Equal(t, '\t', delimiter("\t"))
	assert.Equal(t, ',', delimiter(""))
}

func TestOpenFileSource(t *testing.T) {
	dir := t.TempDir()
	logger := logging.NewMockLogger()

	src, err := openFileSource(dir, logger)
	require.NoError(t, err)
	assert.Equal(t, dir, src.Dir())
	assert.True(t, logger.HasEntry("WARN", "Data directory holds no table files"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, store.TableIncomes+".yaml"), []byte("[]\n"), 0600))
	logger = logging.NewMockLogger()
	_, err = openFileSource(dir, logger)
	require.NoError(t, err)
	assert.False(t, logger.HasEntry("WARN", "Data directory holds no table files"))
	assert.True(t, logger.HasEntry("DEBUG", "Opening YAML source"))
}
