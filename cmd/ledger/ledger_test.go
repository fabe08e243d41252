package ledger

import (
	"bytes"
	"context"
	"testing"

	"fjacquet/clinic-journal/internal/config"
	"fjacquet/clinic-journal/internal/container"
	"fjacquet/clinic-journal/internal/logging"
	"fjacquet/clinic-journal/internal/models"
	"fjacquet/clinic-journal/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newTestContainer(t *testing.T) *container.Container {
	t.Helper()
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Store.Driver = "yaml"
	cfg.Store.DataDir = t.TempDir()
	cfg.Store.FetchTimeoutSeconds = 5
	cfg.Journal.DefaultRevenueAccount = "70500000"
	cfg.Journal.DefaultExpenseAccount = "62900000"
	cfg.Journal.DefaultTreasuryAccount = "57299999"
	cfg.Export.Directory = t.TempDir()
	cfg.Export.CSVDelimiter = ";"
	cfg.Export.Format = "csv"
	cfg.Server.Address = ":0"

	source := &store.MockSource{
		ExpenseTypes: []models.ExpenseCatalogRow{{Name: "Laboratorio", AccountCode: "60700000"}},
		IncomeRecords: []models.IncomeRecord{
			{InvoiceNumber: "F001", IssueDate: "2026-03-10", ClientName: "Ana Ruiz", TotalAmount: d("121"), VATQuota: d("21"), TaxBase: d("100"), PaymentMethod: "Tarjeta"},
			{InvoiceNumber: "F002", IssueDate: "2026-13-45", ClientName: "Fecha Mala", TotalAmount: d("10"), TaxBase: d("10")},
		},
		ExpenseRecords: []models.ExpenseRecord{
			{ProviderInvoiceNumber: "P-9", IssueDate: "2026-03-11", ProviderName: "Lab XY", TotalPayment: d("242"), VATQuota: d("42"), TaxBase: d("200"), ExpenseTypeLabel: "Rarísimo", PaymentMethod: "Efectivo"},
			{ProviderInvoiceNumber: "P-10", IssueDate: "2026-05-02", ProviderName: "Lab XY", TotalPayment: d("100"), TaxBase: d("100"), ExpenseTypeLabel: "Laboratorio", PaymentMethod: "Transferencia"},
		},
		OpeningRows: []models.OpeningBalanceRow{
			{AccountCode: "10000000", AccountName: "Capital", CreditBalance: d("500"), FiscalYear: 2026},
		},
	}

	c, err := container.NewContainerWithSource(cfg, source, logging.NewMockLogger())
	require.NoError(t, err)
	return c
}

func TestRun(t *testing.T) {
	c := newTestContainer(t)
	var buf bytes.Buffer

	require.NoError(t, Run(context.Background(), c, &buf, 2026, "", false))
	out := buf.String()
	assert.Contains(t, out, "SUMA DEBE")
	assert.Contains(t, out, "TOTALES:")
	assert.Contains(t, out, "60700000")
	assert.NotContains(t, out, "Capital")
}

func TestRun_WithOpening(t *testing.T) {
	c := newTestContainer(t)
	var buf bytes.Buffer

	require.NoError(t, Run(context.Background(), c, &buf, 2026, "", true))
	assert.Contains(t, buf.String(), "10000000")
	assert.Contains(t, buf.String(), "Capital")
}

func TestRun_Search(t *testing.T) {
	c := newTestContainer(t)
	var buf bytes.Buffer

	require.NoError(t, Run(context.Background(), c, &buf, 2026, "6070", false))
	assert.Contains(t, buf.String(), "60700000")
	assert.NotContains(t, buf.String(), "47200000")
}

func TestCmd_Flags(t *testing.T) {
	assert.Equal(t, "ledger", Cmd.Use)
	assert.NotNil(t, Cmd.Flags().Lookup("with-opening"))
}
