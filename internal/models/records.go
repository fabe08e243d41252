package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// IncomeRecord is one issued invoice of the clinic, as read from the incomes table.
type IncomeRecord struct {
	InvoiceNumber string          `json:"invoice_number" yaml:"invoice_number"`
	IssueDate     string          `json:"issue_date" yaml:"issue_date" validate:"required,datetime=2006-01-02"`
	ClientName    string          `json:"client_name" yaml:"client_name"`
	TotalAmount   decimal.Decimal `json:"total_amount" yaml:"total_amount"`
	VATQuota      decimal.Decimal `json:"vat_quota" yaml:"vat_quota"`
	TaxBase       decimal.Decimal `json:"tax_base" yaml:"tax_base"`
	PaymentMethod string          `json:"payment_method" yaml:"payment_method"`
	TreatmentName string          `json:"treatment_name,omitempty" yaml:"treatment_name,omitempty"`
}

// DocumentRef returns the trimmed invoice number or "S/N".
func (r IncomeRecord) DocumentRef() string {
	return orDefault(r.InvoiceNumber, DefaultDocumentRef)
}

// Counterparty returns the trimmed client name or "Cliente Varios".
func (r IncomeRecord) Counterparty() string {
	return orDefault(r.ClientName, DefaultClientName)
}

// ExpenseRecord is one received provider invoice, as read from the expenses table.
type ExpenseRecord struct {
	ProviderInvoiceNumber string          `json:"provider_invoice_number" yaml:"provider_invoice_number"`
	IssueDate             string          `json:"issue_date" yaml:"issue_date" validate:"required,datetime=2006-01-02"`
	ProviderName          string          `json:"provider_name" yaml:"provider_name"`
	TotalPayment          decimal.Decimal `json:"total_payment" yaml:"total_payment"`
	VATQuota              decimal.Decimal `json:"vat_quota" yaml:"vat_quota"`
	TaxBase               decimal.Decimal `json:"tax_base" yaml:"tax_base"`
	ExpenseTypeLabel      string          `json:"expense_type_label" yaml:"expense_type_label"`
	PaymentMethod         string          `json:"payment_method" yaml:"payment_method"`
}

// DocumentRef returns the trimmed provider invoice number or "S/N".
func (r ExpenseRecord) DocumentRef() string {
	return orDefault(r.ProviderInvoiceNumber, DefaultDocumentRef)
}

// Counterparty returns the trimmed provider name or "Proveedor".
func (r ExpenseRecord) Counterparty() string {
	return orDefault(r.ProviderName, DefaultProviderName)
}

// Concept returns the trimmed expense-type label.
func (r ExpenseRecord) Concept() string {
	return strings.TrimSpace(r.ExpenseTypeLabel)
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
