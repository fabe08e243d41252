package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/clinic-journal/internal/currencyutils"
	"fjacquet/clinic-journal/internal/fileutils"
	"fjacquet/clinic-journal/internal/logging"
	"fjacquet/clinic-journal/internal/models"
	"gopkg.in/yaml.v3"
)

// FileSource reads one YAML file per table from a directory. A missing file
// is an empty table. Amount columns accept numbers or strings such as
// "1.234,56"; unparseable amounts read as zero.
type FileSource struct {
	dir    string
	logger logging.Logger
}

// NewFileSource creates a FileSource over dir.
func NewFileSource(dir string, logger logging.Logger) *FileSource {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &FileSource{dir: dir, logger: logger}
}

// Name implements Source.
func (s *FileSource) Name() string {
	return "yaml:" + s.dir
}

// Dir returns the snapshot directory.
func (s *FileSource) Dir() string {
	return s.dir
}

// TablePath returns the file backing a table.
func (s *FileSource) TablePath(table string) string {
	return filepath.Join(s.dir, table+".yaml")
}

type rawCatalogRow struct {
	Name        interface{} `yaml:"name"`
	AccountCode interface{} `yaml:"account_code"`
}

type rawAccountingMapRow struct {
	ConceptName  interface{} `yaml:"concept_name"`
	AccountCode  interface{} `yaml:"account_code"`
	CategoryType interface{} `yaml:"category_type"`
}

type rawIncome struct {
	InvoiceNumber interface{} `yaml:"invoice_number"`
	IssueDate     interface{} `yaml:"issue_date"`
	ClientName    interface{} `yaml:"client_name"`
	TotalAmount   interface{} `yaml:"total_amount"`
	VATQuota      interface{} `yaml:"vat_quota"`
	TaxBase       interface{} `yaml:"tax_base"`
	PaymentMethod interface{} `yaml:"payment_method"`
	TreatmentName interface{} `yaml:"treatment_name"`
}

type rawExpense struct {
	ProviderInvoiceNumber interface{} `yaml:"provider_invoice_number"`
	IssueDate             interface{} `yaml:"issue_date"`
	ProviderName          interface{} `yaml:"provider_name"`
	TotalPayment          interface{} `yaml:"total_payment"`
	VATQuota              interface{} `yaml:"vat_quota"`
	TaxBase               interface{} `yaml:"tax_base"`
	ExpenseTypeLabel      interface{} `yaml:"expense_type_label"`
	PaymentMethod         interface{} `yaml:"payment_method"`
}

type rawOpeningBalance struct {
	AccountCode   interface{} `yaml:"account_code"`
	AccountName   interface{} `yaml:"account_name"`
	DebitBalance  interface{} `yaml:"debit_balance"`
	CreditBalance interface{} `yaml:"credit_balance"`
	FiscalYear    interface{} `yaml:"fiscal_year"`
}

// load decodes a table file into out. It reports false when the file does not exist.
func (s *FileSource) load(ctx context.Context, table string, out interface{}) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	path := s.TablePath(table)
	if !fileutils.FileExists(path) {
		s.logger.Debug("Table file not found, treating as empty",
			logging.F(logging.FieldTable, table),
			logging.F(logging.FieldSource, path))
		return false, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("error reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("error parsing %s: %w", path, err)
	}
	return true, nil
}

// TreatmentCatalog implements Source.
func (s *FileSource) TreatmentCatalog(ctx context.Context) ([]models.TreatmentCatalogRow, error) {
	var raw []rawCatalogRow
	if _, err := s.load(ctx, TableTreatmentCatalog, &raw); err != nil {
		return nil, err
	}
	rows := make([]models.TreatmentCatalogRow, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, models.TreatmentCatalogRow{Name: text(r.Name), AccountCode: text(r.AccountCode)})
	}
	return rows, nil
}

// ExpenseCatalog implements Source.
func (s *FileSource) ExpenseCatalog(ctx context.Context) ([]models.ExpenseCatalogRow, error) {
	var raw []rawCatalogRow
	if _, err := s.load(ctx, TableExpenseCatalog, &raw); err != nil {
		return nil, err
	}
	rows := make([]models.ExpenseCatalogRow, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, models.ExpenseCatalogRow{Name: text(r.Name), AccountCode: text(r.AccountCode)})
	}
	return rows, nil
}

// AccountingMap implements Source.
func (s *FileSource) AccountingMap(ctx context.Context) ([]models.AccountingMapRow, error) {
	var raw []rawAccountingMapRow
	if _, err := s.load(ctx, TableAccountingMap, &raw); err != nil {
		return nil, err
	}
	rows := make([]models.AccountingMapRow, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, models.AccountingMapRow{
			ConceptName:  text(r.ConceptName),
			AccountCode:  text(r.AccountCode),
			CategoryType: models.NormalizeCategory(text(r.CategoryType)),
		})
	}
	return rows, nil
}

// Incomes implements Source.
func (s *FileSource) Incomes(ctx context.Context, year int) ([]models.IncomeRecord, error) {
	var raw []rawIncome
	if _, err := s.load(ctx, TableIncomes, &raw); err != nil {
		return nil, err
	}
	records := make([]models.IncomeRecord, 0, len(raw))
	for _, r := range raw {
		date := issueDate(r.IssueDate)
		if !inYear(date, year) {
			continue
		}
		records = append(records, models.IncomeRecord{
			InvoiceNumber: text(r.InvoiceNumber),
			IssueDate:     date,
			ClientName:    text(r.ClientName),
			TotalAmount:   currencyutils.ToNum(r.TotalAmount),
			VATQuota:      currencyutils.ToNum(r.VATQuota),
			TaxBase:       currencyutils.ToNum(r.TaxBase),
			PaymentMethod: text(r.PaymentMethod),
			TreatmentName: text(r.TreatmentName),
		})
	}
	return records, nil
}

// Expenses implements Source.
func (s *FileSource) Expenses(ctx context.Context, year int) ([]models.ExpenseRecord, error) {
	var raw []rawExpense
	if _, err := s.load(ctx, TableExpenses, &raw); err != nil {
		return nil, err
	}
	records := make([]models.ExpenseRecord, 0, len(raw))
	for _, r := range raw {
		date := issueDate(r.IssueDate)
		if !inYear(date, year) {
			continue
		}
		records = append(records, models.ExpenseRecord{
			ProviderInvoiceNumber: text(r.ProviderInvoiceNumber),
			IssueDate:             date,
			ProviderName:          text(r.ProviderName),
			TotalPayment:          currencyutils.ToNum(r.TotalPayment),
			VATQuota:              currencyutils.ToNum(r.VATQuota),
			TaxBase:               currencyutils.ToNum(r.TaxBase),
			ExpenseTypeLabel:      text(r.ExpenseTypeLabel),
			PaymentMethod:         text(r.PaymentMethod),
		})
	}
	return records, nil
}

// OpeningBalances implements Source.
func (s *FileSource) OpeningBalances(ctx context.Context, year int) ([]models.OpeningBalanceRow, error) {
	var raw []rawOpeningBalance
	if _, err := s.load(ctx, TableOpeningBalances, &raw); err != nil {
		return nil, err
	}
	rows := make([]models.OpeningBalanceRow, 0, len(raw))
	for _, r := range raw {
		row := models.OpeningBalanceRow{
			AccountCode:   text(r.AccountCode),
			AccountName:   text(r.AccountName),
			DebitBalance:  currencyutils.ToNum(r.DebitBalance),
			CreditBalance: currencyutils.ToNum(r.CreditBalance),
			FiscalYear:    fiscalYear(r.FiscalYear),
		}
		if row.FiscalYear == year {
			rows = append(rows, row)
		}
	}
	return rows, nil
}
