package store

import (
	"context"
	"fmt"
	"time"

	"fjacquet/clinic-journal/internal/currencyutils"
	"fjacquet/clinic-journal/internal/dateutils"
	"fjacquet/clinic-journal/internal/logging"
	"fjacquet/clinic-journal/internal/models"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SQLSource reads the tables from a MySQL database through gorm. Nullable
// columns are scanned into pointers and NullDecimal, then normalized the same
// way FileSource normalizes YAML values.
type SQLSource struct {
	db     *gorm.DB
	logger logging.Logger
}

type treatmentCatalogRow struct {
	Name        *string
	AccountCode *string
}

func (treatmentCatalogRow) TableName() string { return TableTreatmentCatalog }

type expenseCatalogRow struct {
	Name        *string
	AccountCode *string
}

func (expenseCatalogRow) TableName() string { return TableExpenseCatalog }

type accountingMapRow struct {
	ConceptName  *string
	AccountCode  *string
	CategoryType *string
}

func (accountingMapRow) TableName() string { return TableAccountingMap }

type incomeRow struct {
	InvoiceNumber *string
	IssueDate     *time.Time
	ClientName    *string
	TotalAmount   decimal.NullDecimal
	VatQuota      decimal.NullDecimal
	TaxBase       decimal.NullDecimal
	PaymentMethod *string
	TreatmentName *string
}

func (incomeRow) TableName() string { return TableIncomes }

type expenseRow struct {
	ProviderInvoiceNumber *string
	IssueDate             *time.Time
	ProviderName          *string
	TotalPayment          decimal.NullDecimal
	VatQuota              decimal.NullDecimal
	TaxBase               decimal.NullDecimal
	ExpenseTypeLabel      *string
	PaymentMethod         *string
}

func (expenseRow) TableName() string { return TableExpenses }

type openingBalanceRow struct {
	AccountCode   *string
	AccountName   *string
	DebitBalance  decimal.NullDecimal
	CreditBalance decimal.NullDecimal
	FiscalYear    *int
}

func (openingBalanceRow) TableName() string { return TableOpeningBalances }

// OpenSQLSource connects to MySQL with the given DSN.
func OpenSQLSource(dsn string, logger logging.Logger) (*SQLSource, error) {
	dsnConfig, err := parseDSN(dsn)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(mysql.New(mysql.Config{DSNConfig: dsnConfig}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewSQLSource(db, logger), nil
}

// parseDSN reads a go-sql-driver DSN. DATE columns are scanned into
// time.Time, so parseTime is always on whatever the DSN says.
func parseDSN(dsn string) (*gomysql.Config, error) {
	cfg, err := gomysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	return cfg, nil
}

// NewSQLSource wraps an open gorm connection.
func NewSQLSource(db *gorm.DB, logger logging.Logger) *SQLSource {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &SQLSource{db: db, logger: logger}
}

// Name implements Source.
func (s *SQLSource) Name() string {
	return s.db.Dialector.Name()
}

// Close releases the underlying connection pool.
func (s *SQLSource) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *SQLSource) catalogQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Order("name")
}

func (s *SQLSource) yearQuery(ctx context.Context, year int, docColumn string) *gorm.DB {
	from, to := dateutils.FiscalYearBounds(year)
	return s.db.WithContext(ctx).
		Where("issue_date >= ? AND issue_date <= ?", from, to).
		Order("issue_date").
		Order(docColumn)
}

// TreatmentCatalog implements Source.
func (s *SQLSource) TreatmentCatalog(ctx context.Context) ([]models.TreatmentCatalogRow, error) {
	var raw []treatmentCatalogRow
	if err := s.catalogQuery(ctx).Find(&raw).Error; err != nil {
		return nil, err
	}
	rows := make([]models.TreatmentCatalogRow, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, models.TreatmentCatalogRow{Name: text(r.Name), AccountCode: text(r.AccountCode)})
	}
	return rows, nil
}

// ExpenseCatalog implements Source.
func (s *SQLSource) ExpenseCatalog(ctx context.Context) ([]models.ExpenseCatalogRow, error) {
	var raw []expenseCatalogRow
	if err := s.catalogQuery(ctx).Find(&raw).Error; err != nil {
		return nil, err
	}
	rows := make([]models.ExpenseCatalogRow, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, models.ExpenseCatalogRow{Name: text(r.Name), AccountCode: text(r.AccountCode)})
	}
	return rows, nil
}

// AccountingMap implements Source.
func (s *SQLSource) AccountingMap(ctx context.Context) ([]models.AccountingMapRow, error) {
	var raw []accountingMapRow
	if err := s.db.WithContext(ctx).Order("account_code").Find(&raw).Error; err != nil {
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
func (s *SQLSource) Incomes(ctx context.Context, year int) ([]models.IncomeRecord, error) {
	var raw []incomeRow
	if err := s.yearQuery(ctx, year, "invoice_number").Find(&raw).Error; err != nil {
		return nil, err
	}
	records := make([]models.IncomeRecord, 0, len(raw))
	for _, r := range raw {
		records = append(records, models.IncomeRecord{
			InvoiceNumber: text(r.InvoiceNumber),
			IssueDate:     sqlDate(r.IssueDate),
			ClientName:    text(r.ClientName),
			TotalAmount:   currencyutils.ToNum(r.TotalAmount),
			VATQuota:      currencyutils.ToNum(r.VatQuota),
			TaxBase:       currencyutils.ToNum(r.TaxBase),
			PaymentMethod: text(r.PaymentMethod),
			TreatmentName: text(r.TreatmentName),
		})
	}
	return records, nil
}

// Expenses implements Source.
func (s *SQLSource) Expenses(ctx context.Context, year int) ([]models.ExpenseRecord, error) {
	var raw []expenseRow
	if err := s.yearQuery(ctx, year, "provider_invoice_number").Find(&raw).Error; err != nil {
		return nil, err
	}
	records := make([]models.ExpenseRecord, 0, len(raw))
	for _, r := range raw {
		records = append(records, models.ExpenseRecord{
			ProviderInvoiceNumber: text(r.ProviderInvoiceNumber),
			IssueDate:             sqlDate(r.IssueDate),
			ProviderName:          text(r.ProviderName),
			TotalPayment:          currencyutils.ToNum(r.TotalPayment),
			VATQuota:              currencyutils.ToNum(r.VatQuota),
			TaxBase:               currencyutils.ToNum(r.TaxBase),
			ExpenseTypeLabel:      text(r.ExpenseTypeLabel),
			PaymentMethod:         text(r.PaymentMethod),
		})
	}
	return records, nil
}

// OpeningBalances implements Source.
func (s *SQLSource) OpeningBalances(ctx context.Context, year int) ([]models.OpeningBalanceRow, error) {
	var raw []openingBalanceRow
	err := s.db.WithContext(ctx).
		Where("fiscal_year = ?", year).
		Order("account_code").
		Find(&raw).Error
	if err != nil {
		return nil, err
	}
	rows := make([]models.OpeningBalanceRow, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, models.OpeningBalanceRow{
			AccountCode:   text(r.AccountCode),
			AccountName:   text(r.AccountName),
			DebitBalance:  currencyutils.ToNum(r.DebitBalance),
			CreditBalance: currencyutils.ToNum(r.CreditBalance),
			FiscalYear:    year,
		})
	}
	return rows, nil
}

func sqlDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return dateutils.ToISODate(*t)
}
