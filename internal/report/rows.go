// Package report projects a derivation into the plain rows of the Libro
// Diario, the Libro Mayor and the mapping-gap list, and writes them as CSV,
// XLSX or JSON.
package report

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"fjacquet/clinic-journal/internal/currencyutils"
	"fjacquet/clinic-journal/internal/ledger"
	"fjacquet/clinic-journal/internal/models"
	"github.com/shopspring/decimal"
)

// Amount is a decimal written with two decimals in CSV.
type Amount struct {
	decimal.Decimal
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (a Amount) MarshalCSV() (string, error) {
	return currencyutils.FormatAmount(a.Decimal), nil
}

// MarshalJSON writes the amount as a number with two decimals.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(currencyutils.FormatAmount(a.Decimal)), nil
}

func amount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// DiarioRow is one line of the Libro Diario.
type DiarioRow struct {
	Date          string `csv:"FECHA" json:"date"`
	TransactionID int    `csv:"ASIENTO" json:"transaction_id"`
	AccountCode   string `csv:"CUENTA" json:"account_code"`
	AccountName   string `csv:"NOMBRE" json:"account_name"`
	Description   string `csv:"CONCEPTO" json:"description"`
	Debit         Amount `csv:"DEBE" json:"debit"`
	Credit        Amount `csv:"HABER" json:"credit"`
}

// MayorRow is one account of the Libro Mayor.
type MayorRow struct {
	AccountCode string `csv:"CUENTA" json:"account_code"`
	AccountName string `csv:"NOMBRE" json:"account_name"`
	TotalDebit  Amount `csv:"SUMA DEBE" json:"total_debit"`
	TotalCredit Amount `csv:"SUMA HABER" json:"total_credit"`
	Balance     Amount `csv:"SALDO FINAL" json:"balance"`
}

// GapRow is one expense without a catalog account.
type GapRow struct {
	Date        string `csv:"FECHA" json:"date"`
	DocumentRef string `csv:"DOCUMENTO" json:"document_ref"`
	Concept     string `csv:"CONCEPTO" json:"concept"`
	Amount      Amount `csv:"IMPORTE" json:"amount"`
}

// TotalsLabel names the footer row of the Libro Mayor.
const TotalsLabel = "TOTALES:"

// DiarioRows projects entries, keeping their order.
func DiarioRows(entries []models.LedgerEntry) []DiarioRow {
	rows := make([]DiarioRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, DiarioRow{
			Date:          e.Date,
			TransactionID: e.TransactionID,
			AccountCode:   e.AccountCode,
			AccountName:   e.AccountName,
			Description:   e.Description,
			Debit:         amount(e.Debit),
			Credit:        amount(e.Credit),
		})
	}
	return rows
}

// MayorRows projects ledger lines, keeping their order, and returns the
// totals footer separately.
func MayorRows(lines []models.LedgerAccountSummary) ([]MayorRow, MayorRow) {
	rows := make([]MayorRow, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, MayorRow{
			AccountCode: l.AccountCode,
			AccountName: l.AccountName,
			TotalDebit:  amount(l.TotalDebit),
			TotalCredit: amount(l.TotalCredit),
			Balance:     amount(l.Balance),
		})
	}
	totals := ledger.SumLines(lines)
	footer := MayorRow{
		AccountName: TotalsLabel,
		TotalDebit:  amount(totals.Debit),
		TotalCredit: amount(totals.Credit),
		Balance:     amount(totals.Difference),
	}
	return rows, footer
}

// GapRows projects mapping gaps, keeping their order.
func GapRows(gaps []models.MappingGap) []GapRow {
	rows := make([]GapRow, 0, len(gaps))
	for _, g := range gaps {
		rows = append(rows, GapRow{
			Date:        g.Date,
			DocumentRef: g.DocumentRef,
			Concept:     g.Concept,
			Amount:      amount(g.Amount),
		})
	}
	return rows
}

// FilterEntries returns the entries whose account code contains term, or
// whose account name or document ref contains it case-insensitively. An
// empty term keeps everything.
func FilterEntries(entries []models.LedgerEntry, term string) []models.LedgerEntry {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return entries
	}
	out := make([]models.LedgerEntry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(e.AccountCode, term) ||
			strings.Contains(strings.ToLower(e.AccountName), term) ||
			strings.Contains(strings.ToLower(e.DocumentRef), term) {
			out = append(out, e)
		}
	}
	return out
}

// Truncate shortens s to at most n runes.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// FileName returns the export file name of a book for a year, e.g. "Libro_Mayor_2026.xlsx".
func FileName(book Kind, year int, format string) string {
	return fmt.Sprintf("%s_%d.%s", book.Title(), year, format)
}
