package ledger

import (
	"testing"

	"fjacquet/clinic-journal/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithOpeningBalances(t *testing.T) {
	base := Aggregate([]models.LedgerEntry{
		entry(1, "57200001", "Tesorería", "121", "0"),
		entry(1, "43028266", "Ana Ruiz", "0", "121"),
	})
	rows := []models.OpeningBalanceRow{
		{AccountCode: "57200001", AccountName: "Banco Sabadell", DebitBalance: d("1000"), CreditBalance: d("0"), FiscalYear: 2026},
		{AccountCode: "10000000", AccountName: "Capital social", DebitBalance: d("0"), CreditBalance: d("1000"), FiscalYear: 2026},
		{AccountCode: "10000000", AccountName: "Capital", DebitBalance: d("0"), CreditBalance: d("500"), FiscalYear: 2025},
		{AccountCode: " ", AccountName: "Sin código", DebitBalance: d("5"), CreditBalance: d("0"), FiscalYear: 2026},
		{AccountCode: "12900000", DebitBalance: d("0"), CreditBalance: d("0"), FiscalYear: 2026},
	}

	withOpening := WithOpeningBalances(base, rows, 2026)

	require.Len(t, withOpening, 4)
	bank := withOpening["57200001"]
	assert.Equal(t, "Tesorería", bank.AccountName, "existing name is kept")
	assert.True(t, bank.TotalDebit.Equal(d("1121")))
	assert.True(t, bank.Balance.Equal(d("1121")))

	capital := withOpening["10000000"]
	assert.Equal(t, "Capital social", capital.AccountName)
	assert.True(t, capital.Balance.Equal(d("-1000")))

	assert.Equal(t, "12900000", withOpening["12900000"].AccountName)

	assert.True(t, withOpening.Totals().Difference.IsZero())

	// the input is left untouched
	assert.True(t, base["57200001"].TotalDebit.Equal(d("121")))
	assert.Len(t, base, 2)
}
