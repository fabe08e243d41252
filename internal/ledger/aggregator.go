// Package ledger folds journal entries into the per-account general ledger
// (Libro Mayor).
package ledger

import (
	"sort"
	"strings"

	"fjacquet/clinic-journal/internal/models"
	"github.com/shopspring/decimal"
)

// Summaries maps an account code to its ledger line.
type Summaries map[string]models.LedgerAccountSummary

// Totals are the column sums of a set of ledger lines.
type Totals struct {
	Debit      decimal.Decimal `json:"total_debit"`
	Credit     decimal.Decimal `json:"total_credit"`
	Difference decimal.Decimal `json:"difference"`
}

// Aggregator accumulates entries one at a time. Balances are correct after
// every Add. The first entry seen for an account fixes its name.
type Aggregator struct {
	buckets map[string]*models.LedgerAccountSummary
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{buckets: make(map[string]*models.LedgerAccountSummary)}
}

// Add posts one entry.
func (a *Aggregator) Add(e models.LedgerEntry) {
	a.post(e.AccountCode, e.AccountName, e.Debit, e.Credit)
}

func (a *Aggregator) post(code, name string, debit, credit decimal.Decimal) {
	bucket, ok := a.buckets[code]
	if !ok {
		bucket = &models.LedgerAccountSummary{AccountCode: code, AccountName: name}
		a.buckets[code] = bucket
	}
	bucket.Post(debit, credit)
}

// Summary returns the current line of one account.
func (a *Aggregator) Summary(code string) (models.LedgerAccountSummary, bool) {
	bucket, ok := a.buckets[code]
	if !ok {
		return models.LedgerAccountSummary{}, false
	}
	return *bucket, true
}

// Summaries returns a copy of the current lines.
func (a *Aggregator) Summaries() Summaries {
	out := make(Summaries, len(a.buckets))
	for code, bucket := range a.buckets {
		out[code] = *bucket
	}
	return out
}

// Aggregate folds entries in a single pass.
func Aggregate(entries []models.LedgerEntry) Summaries {
	a := NewAggregator()
	for _, e := range entries {
		a.Add(e)
	}
	return a.Summaries()
}

// Sorted returns the lines ordered by account code.
func (s Summaries) Sorted() []models.LedgerAccountSummary {
	out := make([]models.LedgerAccountSummary, 0, len(s))
	for _, summary := range s {
		out = append(out, summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountCode < out[j].AccountCode })
	return out
}

// Totals sums the lines.
func (s Summaries) Totals() Totals {
	return SumLines(s.Sorted())
}

// SumLines sums the debit and credit columns of the given lines.
func SumLines(lines []models.LedgerAccountSummary) Totals {
	t := Totals{Debit: decimal.Zero, Credit: decimal.Zero}
	for _, l := range lines {
		t.Debit = t.Debit.Add(l.TotalDebit)
		t.Credit = t.Credit.Add(l.TotalCredit)
	}
	t.Difference = t.Debit.Sub(t.Credit)
	return t
}

// Filter returns the lines whose code contains term, or whose name contains
// it case-insensitively. An empty term keeps everything.
func Filter(lines []models.LedgerAccountSummary, term string) []models.LedgerAccountSummary {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return lines
	}
	out := make([]models.LedgerAccountSummary, 0, len(lines))
	for _, l := range lines {
		if strings.Contains(l.AccountCode, term) || strings.Contains(strings.ToLower(l.AccountName), term) {
			out = append(out, l)
		}
	}
	return out
}
