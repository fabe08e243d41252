// Package validation decides which upstream records may enter the derivation
// and checks user-supplied options such as years and export formats.
package validation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"fjacquet/clinic-journal/internal/dateutils"
	"fjacquet/clinic-journal/internal/journalerror"
	"fjacquet/clinic-journal/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Record kinds reported in MalformedRecordError
const (
	KindIncome  = "income"
	KindExpense = "expense"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// Income validates an income record in place. A zero tax base is derived
// from total minus VAT; otherwise the three amounts must reconcile.
func Income(r *models.IncomeRecord) error {
	if err := validate.Struct(r); err != nil {
		return malformed(KindIncome, r.DocumentRef(), err)
	}
	if r.VATQuota.IsNegative() {
		return negativeVAT(KindIncome, r.DocumentRef(), r.VATQuota)
	}
	if r.TaxBase.IsZero() {
		r.TaxBase = r.TotalAmount.Sub(r.VATQuota)
	}
	if !models.Reconciles(r.TotalAmount, r.TaxBase, r.VATQuota) {
		return &journalerror.MalformedRecordError{
			Kind:        KindIncome,
			DocumentRef: r.DocumentRef(),
			Field:       "total_amount",
			Reason:      fmt.Sprintf("%s does not equal tax_base %s plus vat_quota %s", r.TotalAmount, r.TaxBase, r.VATQuota),
		}
	}
	return nil
}

// Expense validates an expense record in place, with the same amount rules as Income.
func Expense(r *models.ExpenseRecord) error {
	if err := validate.Struct(r); err != nil {
		return malformed(KindExpense, r.DocumentRef(), err)
	}
	if r.VATQuota.IsNegative() {
		return negativeVAT(KindExpense, r.DocumentRef(), r.VATQuota)
	}
	if r.TaxBase.IsZero() {
		r.TaxBase = r.TotalPayment.Sub(r.VATQuota)
	}
	if !models.Reconciles(r.TotalPayment, r.TaxBase, r.VATQuota) {
		return &journalerror.MalformedRecordError{
			Kind:        KindExpense,
			DocumentRef: r.DocumentRef(),
			Field:       "total_payment",
			Reason:      fmt.Sprintf("%s does not equal tax_base %s plus vat_quota %s", r.TotalPayment, r.TaxBase, r.VATQuota),
		}
	}
	return nil
}

// Incomes returns the valid records, in order, and one error per rejected record.
func Incomes(records []models.IncomeRecord) ([]models.IncomeRecord, []error) {
	valid := make([]models.IncomeRecord, 0, len(records))
	var rejected []error
	for _, r := range records {
		if err := Income(&r); err != nil {
			rejected = append(rejected, err)
			continue
		}
		valid = append(valid, r)
	}
	return valid, rejected
}

// Expenses returns the valid records, in order, and one error per rejected record.
func Expenses(records []models.ExpenseRecord) ([]models.ExpenseRecord, []error) {
	valid := make([]models.ExpenseRecord, 0, len(records))
	var rejected []error
	for _, r := range records {
		if err := Expense(&r); err != nil {
			rejected = append(rejected, err)
			continue
		}
		valid = append(valid, r)
	}
	return valid, rejected
}

// A negative quota would post no VAT line and leave the transaction unbalanced.
func negativeVAT(kind, doc string, vat decimal.Decimal) error {
	return &journalerror.MalformedRecordError{
		Kind:        kind,
		DocumentRef: doc,
		Field:       "vat_quota",
		Reason:      fmt.Sprintf("%s is negative", vat),
	}
}

func malformed(kind, doc string, err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return &journalerror.MalformedRecordError{Kind: kind, DocumentRef: doc, Field: "record", Reason: err.Error()}
	}
	fe := fieldErrors[0]
	return &journalerror.MalformedRecordError{
		Kind:        kind,
		DocumentRef: doc,
		Field:       fe.Field(),
		Reason:      reason(fe),
	}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is missing"
	case "datetime":
		return fmt.Sprintf("%q is not a %s date", fe.Value(), fe.Param())
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}

// Year checks a fiscal year.
func Year(year int) error {
	if !dateutils.ValidYear(year) {
		return &journalerror.InvalidYearError{Year: year}
	}
	return nil
}

// IsValidExportFormat checks if the given export format is supported.
func IsValidExportFormat(format string) error {
	switch format {
	case "csv", "xlsx", "json":
		return nil
	default:
		return &journalerror.UnsupportedFormatError{Format: format}
	}
}

// IsValidPath checks that path is absolute and names an existing file or directory.
func IsValidPath(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}

	if !filepath.IsAbs(path) {
		return fmt.Errorf("path must be absolute: %s", path)
	}

	if !info.IsDir() && !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is neither a file nor a directory", path)
	}

	return nil
}
