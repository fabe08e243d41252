package common

import (
	"bytes"
	"strings"
	"testing"

	"fjacquet/clinic-journal/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestPrintJournal(t *testing.T) {
	var buf bytes.Buffer
	err := PrintJournal(&buf, []models.LedgerEntry{
		{TransactionID: 1, Date: "2026-03-10", AccountCode: "43028266", AccountName: "Ana Ruiz",
			Description: "Fra. F001", Debit: d("121"), Credit: decimal.Zero},
		{TransactionID: 1, Date: "2026-03-10", AccountCode: "70500000",
			AccountName: "Prestación de servicios odontológicos generales", Description: "Base F001",
			Debit: decimal.Zero, Credit: d("12345.6")},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "FECHA"))
	assert.Contains(t, lines[1], "10/03/2026")
	assert.Contains(t, lines[1], "121,00 €")
	assert.Contains(t, lines[2], "12.345,60 €")
	// account name cut to 20 runes
	assert.Contains(t, lines[2], "Prestación de servic")
	assert.NotContains(t, lines[2], "odontológicos")
}

func TestPrintLedger(t *testing.T) {
	var buf bytes.Buffer
	err := PrintLedger(&buf, []models.LedgerAccountSummary{
		{AccountCode: "43028266", AccountName: "Ana Ruiz", TotalDebit: d("121"), TotalCredit: d("121"), Balance: decimal.Zero},
		{AccountCode: "70500000", AccountName: "Ventas", TotalDebit: decimal.Zero, TotalCredit: d("100"), Balance: d("-100")},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "SALDO FINAL")
	assert.Contains(t, out, "-100,00 €")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	last := lines[len(lines)-1]
	assert.Contains(t, last, "TOTALES:")
	assert.Contains(t, last, "121,00 €")
	assert.Contains(t, last, "221,00 €")
	assert.Contains(t, last, "-100,00 €")
}

func TestPrintGaps(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintGaps(&buf, nil))
	assert.Contains(t, buf.String(), "No mapping gaps")

	buf.Reset()
	require.NoError(t, PrintGaps(&buf, []models.MappingGap{
		{Date: "2026-03-11", DocumentRef: "P-9", Concept: "Rarísimo", Amount: d("242")},
	}))
	assert.Contains(t, buf.String(), "DOCUMENTO")
	assert.Contains(t, buf.String(), "11/03/2026")
	assert.Contains(t, buf.String(), "242,00 €")
}
