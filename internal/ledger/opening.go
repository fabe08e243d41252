package ledger

import (
	"strings"

	"fjacquet/clinic-journal/internal/models"
)

// WithOpeningBalances returns a copy of s with the opening balances of year
// posted on top. Rows of other years or without an account code are ignored.
// Accounts missing from s are created with the row's name; existing accounts
// keep their name.
func WithOpeningBalances(s Summaries, rows []models.OpeningBalanceRow, year int) Summaries {
	a := &Aggregator{buckets: make(map[string]*models.LedgerAccountSummary, len(s)+len(rows))}
	for code, summary := range s {
		summary := summary
		a.buckets[code] = &summary
	}

	for _, row := range rows {
		code := strings.TrimSpace(row.AccountCode)
		if code == "" || row.FiscalYear != year {
			continue
		}
		name := strings.TrimSpace(row.AccountName)
		if name == "" {
			name = code
		}
		a.post(code, name, row.DebitBalance, row.CreditBalance)
	}

	return a.Summaries()
}
