package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestTotalsByTransaction(t *testing.T) {
	entries := []LedgerEntry{
		{TransactionID: 2, Debit: d("121"), Credit: decimal.Zero},
		{TransactionID: 1, Debit: d("121"), Credit: decimal.Zero},
		{TransactionID: 1, Debit: decimal.Zero, Credit: d("100")},
		{TransactionID: 1, Debit: decimal.Zero, Credit: d("21")},
		{TransactionID: 2, Debit: decimal.Zero, Credit: d("120")},
	}

	totals := TotalsByTransaction(entries)
	require.Len(t, totals, 2)
	assert.Equal(t, 1, totals[0].TransactionID)
	assert.True(t, totals[0].Balanced())
	assert.Equal(t, 2, totals[1].TransactionID)
	assert.False(t, totals[1].Balanced())
}

func TestLedgerAccountSummaryPost(t *testing.T) {
	var s LedgerAccountSummary
	s.Post(d("121"), decimal.Zero)
	assert.True(t, s.Balance.Equal(d("121")))
	s.Post(decimal.Zero, d("121"))
	assert.True(t, s.Balance.IsZero())
	assert.True(t, s.TotalDebit.Equal(d("121")))
	assert.True(t, s.TotalCredit.Equal(d("121")))
}

func TestReconciles(t *testing.T) {
	assert.True(t, Reconciles(d("121"), d("100"), d("21")))
	assert.True(t, Reconciles(d("121.004"), d("100"), d("21")))
	assert.False(t, Reconciles(d("121.01"), d("100"), d("21")))
	assert.True(t, Sum(d("1.5"), d("2.5")).Equal(d("4")))
	assert.True(t, Sum().IsZero())
}
