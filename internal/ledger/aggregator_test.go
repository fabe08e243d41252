package ledger

import (
	"math/rand"
	"testing"

	"fjacquet/clinic-journal/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func entry(id int, code, name, debit, credit string) models.LedgerEntry {
	return models.LedgerEntry{TransactionID: id, AccountCode: code, AccountName: name, Debit: d(debit), Credit: d(credit)}
}

func TestAggregate(t *testing.T) {
	entries := []models.LedgerEntry{
		entry(1, "43028266", "Ana Ruiz", "121", "0"),
		entry(1, "70500000", "Ventas", "0", "100"),
		entry(1, "47700000", "H.P. IVA Repercutido", "0", "21"),
		entry(2, "57200001", "Tesorería", "121", "0"),
		entry(2, "43028266", "ANA RUIZ", "0", "121"),
	}

	s := Aggregate(entries)

	require.Len(t, s, 4)
	client := s["43028266"]
	assert.Equal(t, "Ana Ruiz", client.AccountName, "first name wins")
	assert.True(t, client.TotalDebit.Equal(d("121")))
	assert.True(t, client.TotalCredit.Equal(d("121")))
	assert.True(t, client.Balance.IsZero())

	revenue := s["70500000"]
	assert.True(t, revenue.Balance.Equal(d("-100")))
	assert.True(t, s["57200001"].Balance.Equal(d("121")))

	totals := s.Totals()
	assert.True(t, totals.Debit.Equal(d("242")))
	assert.True(t, totals.Credit.Equal(d("242")))
	assert.True(t, totals.Difference.IsZero())
}

func TestAggregator_BalanceAfterEveryAdd(t *testing.T) {
	a := NewAggregator()
	a.Add(entry(1, "57000000", "Caja", "50", "0"))
	s, ok := a.Summary("57000000")
	require.True(t, ok)
	assert.True(t, s.Balance.Equal(d("50")))

	a.Add(entry(2, "57000000", "Otra", "0", "80"))
	s, _ = a.Summary("57000000")
	assert.True(t, s.Balance.Equal(d("-30")))
	assert.Equal(t, "Caja", s.AccountName)

	_, ok = a.Summary("99999999")
	assert.False(t, ok)
}

func TestAggregate_Conservation(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	codes := []string{"43000001", "70500000", "47700000", "57200001", "62900000", "41000002"}
	var entries []models.LedgerEntry
	for id := 1; id <= 200; id++ {
		amount := decimal.New(int64(r.Intn(1000000)), -2)
		entries = append(entries,
			models.LedgerEntry{TransactionID: id, AccountCode: codes[r.Intn(len(codes))], Debit: amount, Credit: decimal.Zero},
			models.LedgerEntry{TransactionID: id, AccountCode: codes[r.Intn(len(codes))], Debit: decimal.Zero, Credit: amount},
		)
	}

	s := Aggregate(entries)

	totals := s.Totals()
	assert.True(t, totals.Debit.Equal(totals.Credit))
	sum := decimal.Zero
	for _, line := range s {
		sum = sum.Add(line.Balance)
	}
	assert.True(t, sum.IsZero(), "balances sum to zero, got %s", sum)
}

func TestAggregate_Idempotent(t *testing.T) {
	entries := []models.LedgerEntry{
		entry(1, "62900000", "Gastos", "200", "0"),
		entry(1, "41020571", "Lab XY", "0", "200"),
	}
	assert.Equal(t, Aggregate(entries), Aggregate(entries))
	assert.Empty(t, Aggregate(nil))
}

func TestSortedAndFilter(t *testing.T) {
	s := Aggregate([]models.LedgerEntry{
		entry(1, "70500000", "Ventas", "0", "10"),
		entry(1, "43028266", "Ana Ruiz", "10", "0"),
		entry(2, "57000000", "Caja", "10", "0"),
		entry(2, "43028266", "Ana Ruiz", "0", "10"),
	})

	sorted := s.Sorted()
	require.Len(t, sorted, 3)
	assert.Equal(t, "43028266", sorted[0].AccountCode)
	assert.Equal(t, "57000000", sorted[1].AccountCode)
	assert.Equal(t, "70500000", sorted[2].AccountCode)

	tests := []struct {
		term     string
		expected []string
	}{
		{"", []string{"43028266", "57000000", "70500000"}},
		{"430", []string{"43028266"}},
		{"RUIZ", []string{"43028266"}},
		{"  caja ", []string{"57000000"}},
		{"0000", []string{"57000000", "70500000"}},
		{"nada", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			codes := []string{}
			for _, l := range Filter(sorted, tt.term) {
				codes = append(codes, l.AccountCode)
			}
			assert.Equal(t, tt.expected, codes)
		})
	}

	filtered := SumLines(Filter(sorted, "ventas"))
	assert.True(t, filtered.Credit.Equal(d("10")))
	assert.True(t, filtered.Difference.Equal(d("-10")))
}
