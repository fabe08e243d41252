package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TreatmentCatalogRow maps a treatment name to its revenue account.
type TreatmentCatalogRow struct {
	Name        string `json:"name" yaml:"name"`
	AccountCode string `json:"account_code" yaml:"account_code"`
}

// ExpenseCatalogRow maps an expense-type name to its expense account.
type ExpenseCatalogRow struct {
	Name        string `json:"name" yaml:"name"`
	AccountCode string `json:"account_code" yaml:"account_code"`
}

// AccountingMapRow gives the display name of an account code.
type AccountingMapRow struct {
	ConceptName  string `json:"concept_name" yaml:"concept_name"`
	AccountCode  string `json:"account_code" yaml:"account_code"`
	CategoryType string `json:"category_type" yaml:"category_type"`
}

// NormalizeCategory maps the Spanish or English spelling of a category type,
// in any case, to CategoryIncome or CategoryExpense. Other values come back trimmed.
func NormalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	switch strings.ToLower(category) {
	case "income", "ingreso":
		return CategoryIncome
	case "expense", "gasto":
		return CategoryExpense
	default:
		return category
	}
}

// OpeningBalanceRow is the balance an account carries into a fiscal year.
type OpeningBalanceRow struct {
	AccountCode   string          `json:"account_code" yaml:"account_code"`
	AccountName   string          `json:"account_name" yaml:"account_name"`
	DebitBalance  decimal.Decimal `json:"debit_balance" yaml:"debit_balance"`
	CreditBalance decimal.Decimal `json:"credit_balance" yaml:"credit_balance"`
	FiscalYear    int             `json:"fiscal_year" yaml:"fiscal_year"`
}

// Snapshot is everything fetched from the data store for one fiscal year.
// It is immutable once built.
type Snapshot struct {
	Year          int
	Treatments    []TreatmentCatalogRow
	ExpenseTypes  []ExpenseCatalogRow
	AccountingMap []AccountingMapRow
	Incomes       []IncomeRecord
	Expenses      []ExpenseRecord
}
