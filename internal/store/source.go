// Package store provides the read-only adapters to the clinic's external data
// store: YAML snapshot files, a MySQL database through gorm, and an in-memory
// mock for tests.
package store

import (
	"context"

	"fjacquet/clinic-journal/internal/models"
)

// Table names of the external data store
const (
	TableTreatmentCatalog = "treatment_catalog"
	TableExpenseCatalog   = "expense_catalog"
	TableAccountingMap    = "accounting_map"
	TableIncomes          = "incomes"
	TableExpenses         = "expenses"
	TableOpeningBalances  = "opening_balances"
)

// Tables lists every table in fetch order.
var Tables = []string{
	TableTreatmentCatalog,
	TableExpenseCatalog,
	TableAccountingMap,
	TableIncomes,
	TableExpenses,
	TableOpeningBalances,
}

// Source is the query contract the journal engine consumes. Implementations
// must be safe for concurrent use: the engine issues the queries in parallel.
// Incomes and Expenses return the records whose issue date falls in the
// fiscal year, in a stable order.
type Source interface {
	TreatmentCatalog(ctx context.Context) ([]models.TreatmentCatalogRow, error)
	ExpenseCatalog(ctx context.Context) ([]models.ExpenseCatalogRow, error)
	AccountingMap(ctx context.Context) ([]models.AccountingMapRow, error)
	Incomes(ctx context.Context, year int) ([]models.IncomeRecord, error)
	Expenses(ctx context.Context, year int) ([]models.ExpenseRecord, error)
	OpeningBalances(ctx context.Context, year int) ([]models.OpeningBalanceRow, error)

	// Name identifies the source in logs.
	Name() string
}
