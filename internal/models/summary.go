package models

import "github.com/shopspring/decimal"

// LedgerAccountSummary is the Libro Mayor line of one account.
type LedgerAccountSummary struct {
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// Post accumulates a debit and a credit and recomputes the balance.
func (s *LedgerAccountSummary) Post(debit, credit decimal.Decimal) {
	s.TotalDebit = s.TotalDebit.Add(debit)
	s.TotalCredit = s.TotalCredit.Add(credit)
	s.Balance = s.TotalDebit.Sub(s.TotalCredit)
}

// MappingGap records an expense whose type has no catalog account.
type MappingGap struct {
	Date        string          `json:"date"`
	DocumentRef string          `json:"document_ref"`
	Concept     string          `json:"concept"`
	Amount      decimal.Decimal `json:"amount"`
}
