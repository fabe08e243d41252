package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/clinic-journal/internal/logging"
	"fjacquet/clinic-journal/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	err := os.WriteFile(path, []byte(content), 0600)
	require.NoError(t, err)
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestFileSource_Catalogs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "treatment_catalog.yaml"), `
- name: Limpieza
  account_code: "70500001"
- name: null
  account_code: "70500009"
`)
	writeFile(t, filepath.Join(dir, "expense_catalog.yaml"), `
- name: " Laboratorio "
  account_code: 60700000
`)
	writeFile(t, filepath.Join(dir, "accounting_map.yaml"), `
- concept_name: Servicios odontológicos
  account_code: "70500001"
  category_type: ingreso
`)

	s := NewFileSource(dir, logging.NewMockLogger())
	ctx := context.Background()

	treatments, err := s.TreatmentCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.TreatmentCatalogRow{
		{Name: "Limpieza", AccountCode: "70500001"},
		{Name: "", AccountCode: "70500009"},
	}, treatments)

	expenses, err := s.ExpenseCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.ExpenseCatalogRow{{Name: "Laboratorio", AccountCode: "60700000"}}, expenses)

	accounting, err := s.AccountingMap(ctx)
	require.NoError(t, err)
	require.Len(t, accounting, 1)
	assert.Equal(t, models.CategoryIncome, accounting[0].CategoryType)
}

func TestFileSource_IncomesFilteredByYear(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "incomes.yaml"), `
- invoice_number: F001
  issue_date: 2026-03-10
  client_name: Ana Ruiz
  total_amount: 121.00
  vat_quota: "21,00"
  tax_base: "100"
  payment_method: Tarjeta
- invoice_number: 1002
  issue_date: "2025-12-31"
  client_name: Old
  total_amount: 10
- invoice_number: F003
  issue_date: "2026-06-01T10:00:00Z"
  client_name: null
  total_amount: "1.234,56"
  vat_quota: null
  tax_base: "n/a"
- invoice_number: F004
  issue_date: null
  total_amount: 5
`)

	s := NewFileSource(dir, logging.NewMockLogger())
	incomes, err := s.Incomes(context.Background(), 2026)
	require.NoError(t, err)
	require.Len(t, incomes, 3)

	first := incomes[0]
	assert.Equal(t, "F001", first.InvoiceNumber)
	assert.Equal(t, "2026-03-10", first.IssueDate)
	assert.True(t, d("121").Equal(first.TotalAmount))
	assert.True(t, d("21").Equal(first.VATQuota))
	assert.True(t, d("100").Equal(first.TaxBase))
	assert.Equal(t, "Tarjeta", first.PaymentMethod)

	third := incomes[1]
	assert.Equal(t, "2026-06-01", third.IssueDate)
	assert.Equal(t, "", third.ClientName)
	assert.True(t, d("1234.56").Equal(third.TotalAmount))
	assert.True(t, third.VATQuota.IsZero())
	assert.True(t, third.TaxBase.IsZero())

	// a missing date is passed on for validation to reject
	assert.Equal(t, "F004", incomes[2].InvoiceNumber)
	assert.Equal(t, "", incomes[2].IssueDate)

	older, err := s.Incomes(context.Background(), 2025)
	require.NoError(t, err)
	require.Len(t, older, 2)
	assert.Equal(t, "1002", older[0].InvoiceNumber)
}

func TestFileSource_Expenses(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "expenses.yaml"), `
- provider_invoice_number: P-9
  issue_date: "11/03/2026"
  provider_name: Lab XY
  total_payment: 242
  vat_quota: 42
  tax_base: 200
  expense_type_label: Rarísimo
  payment_method: Efectivo
`)

	s := NewFileSource(dir, logging.NewMockLogger())
	expenses, err := s.Expenses(context.Background(), 2026)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "2026-03-11", expenses[0].IssueDate)
	assert.Equal(t, "Rarísimo", expenses[0].ExpenseTypeLabel)
	assert.True(t, d("242").Equal(expenses[0].TotalPayment))
}

func TestFileSource_OpeningBalances(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "opening_balances.yaml"), `
- account_code: "57200001"
  account_name: Banco
  debit_balance: "1.000,00"
  credit_balance: 0
  fiscal_year: 2026
- account_code: "10000000"
  account_name: Capital
  debit_balance: 0
  credit_balance: 500
  fiscal_year: "2025"
`)

	s := NewFileSource(dir, logging.NewMockLogger())
	rows, err := s.OpeningBalances(context.Background(), 2026)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, d("1000").Equal(rows[0].DebitBalance))

	rows, err = s.OpeningBalances(context.Background(), 2025)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Capital", rows[0].AccountName)
}

func TestFileSource_MissingAndInvalid(t *testing.T) {
	dir := t.TempDir()
	logger := logging.NewMockLogger()
	s := NewFileSource(dir, logger)

	incomes, err := s.Incomes(context.Background(), 2026)
	require.NoError(t, err)
	assert.Empty(t, incomes)
	assert.True(t, logger.HasEntry("DEBUG", "Table file not found, treating as empty"))

	writeFile(t, filepath.Join(dir, "expenses.yaml"), "- provider_name: [unterminated")
	_, err = s.Expenses(context.Background(), 2026)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error parsing")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.TreatmentCatalog(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileSource_WriteSnapshotRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dump")
	s := NewFileSource(dir, logging.NewMockLogger())

	snapshot := &models.Snapshot{
		Year:          2026,
		Treatments:    []models.TreatmentCatalogRow{{Name: "Limpieza", AccountCode: "70500001"}},
		ExpenseTypes:  []models.ExpenseCatalogRow{{Name: "Laboratorio", AccountCode: "60700000"}},
		AccountingMap: []models.AccountingMapRow{{ConceptName: "Caja", AccountCode: "57000000", CategoryType: "Income"}},
		Incomes: []models.IncomeRecord{{
			InvoiceNumber: "F001", IssueDate: "2026-03-10", ClientName: "Ana Ruiz",
			TotalAmount: d("121"), VATQuota: d("21"), TaxBase: d("100"), PaymentMethod: "Tarjeta",
		}},
		Expenses: []models.ExpenseRecord{{
			ProviderInvoiceNumber: "P-9", IssueDate: "2026-03-11", ProviderName: "Lab XY",
			TotalPayment: d("242.50"), VATQuota: d("42.50"), TaxBase: d("200"), ExpenseTypeLabel: "Rarísimo",
		}},
	}
	openings := []models.OpeningBalanceRow{{AccountCode: "57200001", AccountName: "Banco", DebitBalance: d("1000"), CreditBalance: decimal.Zero, FiscalYear: 2026}}

	require.NoError(t, s.WriteSnapshot(snapshot, openings))
	for _, table := range Tables {
		assert.FileExists(t, s.TablePath(table))
	}

	ctx := context.Background()
	incomes, err := s.Incomes(ctx, 2026)
	require.NoError(t, err)
	require.Len(t, incomes, 1)
	assert.Equal(t, "Ana Ruiz", incomes[0].ClientName)
	assert.True(t, d("121").Equal(incomes[0].TotalAmount))

	expenses, err := s.Expenses(ctx, 2026)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.True(t, d("242.5").Equal(expenses[0].TotalPayment))

	rows, err := s.OpeningBalances(ctx, 2026)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, d("1000").Equal(rows[0].DebitBalance))
}

func TestFileSource_Name(t *testing.T) {
	s := NewFileSource("data", nil)
	assert.Equal(t, "yaml:data", s.Name())
	assert.Equal(t, "data", s.Dir())
	assert.Equal(t, filepath.Join("data", "incomes.yaml"), s.TablePath(TableIncomes))
}

func TestText(t *testing.T) {
	str := " x "
	var nilStr *string
	assert.Equal(t, "x", text(&str))
	assert.Equal(t, "", text(nilStr))
	assert.Equal(t, "", text(nil))
	assert.Equal(t, "12", text(12))
	assert.Equal(t, "12.5", text(12.5))
	assert.Equal(t, 2026, fiscalYear("2026"))
	assert.Equal(t, 0, fiscalYear("soon"))
	assert.Equal(t, 2026, fiscalYear(2026))
}
