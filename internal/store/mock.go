package store

import (
	"context"
	"sync"

	"fjacquet/clinic-journal/internal/models"
)

// MockSource is an in-memory Source for tests. Incomes and Expenses are
// filtered by year like the real sources. Errors set per table are returned
// instead of data.
type MockSource struct {
	Treatments     []models.TreatmentCatalogRow
	ExpenseTypes   []models.ExpenseCatalogRow
	AccountingRows []models.AccountingMapRow
	IncomeRecords  []models.IncomeRecord
	ExpenseRecords []models.ExpenseRecord
	OpeningRows    []models.OpeningBalanceRow
	Errors         map[string]error

	// Gate, when set, is called at the start of every query with the table
	// and year. A test can block in it to hold a fetch open.
	Gate func(ctx context.Context, table string, year int) error

	mu    sync.Mutex
	calls map[string]int
}

// Name implements Source.
func (m *MockSource) Name() string {
	return "mock"
}

// Calls returns how many times a table was queried.
func (m *MockSource) Calls(table string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[table]
}

func (m *MockSource) enter(ctx context.Context, table string, year int) error {
	m.mu.Lock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[table]++
	err := m.Errors[table]
	m.mu.Unlock()

	if m.Gate != nil {
		if gateErr := m.Gate(ctx, table, year); gateErr != nil {
			return gateErr
		}
	}
	if err != nil {
		return err
	}
	return ctx.Err()
}

// TreatmentCatalog implements Source.
func (m *MockSource) TreatmentCatalog(ctx context.Context) ([]models.TreatmentCatalogRow, error) {
	if err := m.enter(ctx, TableTreatmentCatalog, 0); err != nil {
		return nil, err
	}
	return append([]models.TreatmentCatalogRow(nil), m.Treatments...), nil
}

// ExpenseCatalog implements Source.
func (m *MockSource) ExpenseCatalog(ctx context.Context) ([]models.ExpenseCatalogRow, error) {
	if err := m.enter(ctx, TableExpenseCatalog, 0); err != nil {
		return nil, err
	}
	return append([]models.ExpenseCatalogRow(nil), m.ExpenseTypes...), nil
}

// AccountingMap implements Source.
func (m *MockSource) AccountingMap(ctx context.Context) ([]models.AccountingMapRow, error) {
	if err := m.enter(ctx, TableAccountingMap, 0); err != nil {
		return nil, err
	}
	return append([]models.AccountingMapRow(nil), m.AccountingRows...), nil
}

// Incomes implements Source.
func (m *MockSource) Incomes(ctx context.Context, year int) ([]models.IncomeRecord, error) {
	if err := m.enter(ctx, TableIncomes, year); err != nil {
		return nil, err
	}
	var out []models.IncomeRecord
	for _, r := range m.IncomeRecords {
		if inYear(r.IssueDate, year) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Expenses implements Source.
func (m *MockSource) Expenses(ctx context.Context, year int) ([]models.ExpenseRecord, error) {
	if err := m.enter(ctx, TableExpenses, year); err != nil {
		return nil, err
	}
	var out []models.ExpenseRecord
	for _, r := range m.ExpenseRecords {
		if inYear(r.IssueDate, year) {
			out = append(out, r)
		}
	}
	return out, nil
}

// OpeningBalances implements Source.
func (m *MockSource) OpeningBalances(ctx context.Context, year int) ([]models.OpeningBalanceRow, error) {
	if err := m.enter(ctx, TableOpeningBalances, year); err != nil {
		return nil, err
	}
	var out []models.OpeningBalanceRow
	for _, r := range m.OpeningRows {
		if r.FiscalYear == year {
			out = append(out, r)
		}
	}
	return out, nil
}
