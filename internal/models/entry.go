package models

import (
	"sort"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one line of the general journal. Entries sharing a
// TransactionID form one balanced transaction.
type LedgerEntry struct {
	TransactionID   int             `json:"transaction_id"`
	Date            string          `json:"date"`
	TransactionType string          `json:"transaction_type"`
	DocumentRef     string          `json:"document_ref"`
	AccountCode     string          `json:"account_code"`
	AccountName     string          `json:"account_name"`
	Description     string          `json:"description"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
}

// TransactionTotals holds the debit and credit sums of one transaction.
type TransactionTotals struct {
	TransactionID int
	Debit         decimal.Decimal
	Credit        decimal.Decimal
}

// Balanced reports whether debits equal credits.
func (t TransactionTotals) Balanced() bool {
	return t.Debit.Equal(t.Credit)
}

// TotalsByTransaction sums debits and credits per transaction id, ordered by id.
func TotalsByTransaction(entries []LedgerEntry) []TransactionTotals {
	byID := make(map[int]*TransactionTotals)
	for _, e := range entries {
		t, ok := byID[e.TransactionID]
		if !ok {
			t = &TransactionTotals{TransactionID: e.TransactionID}
			byID[e.TransactionID] = t
		}
		t.Debit = t.Debit.Add(e.Debit)
		t.Credit = t.Credit.Add(e.Credit)
	}

	totals := make([]TransactionTotals, 0, len(byID))
	for _, t := range byID {
		totals = append(totals, *t)
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].TransactionID < totals[j].TransactionID })
	return totals
}
