// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"io"
	"text/tabwriter"

	"fjacquet/clinic-journal/internal/currencyutils"
	"fjacquet/clinic-journal/internal/dateutils"
	"fjacquet/clinic-journal/internal/ledger"
	"fjacquet/clinic-journal/internal/models"
	"fjacquet/clinic-journal/internal/report"
)

// Column widths of the printed books
const (
	journalNameWidth        = 20
	journalDescriptionWidth = 25
	ledgerNameWidth         = 40
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// PrintJournal prints entries as the Libro Diario, in the order given.
func PrintJournal(w io.Writer, entries []models.LedgerEntry) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "FECHA\tASIENTO\tCUENTA\tNOMBRE\tCONCEPTO\tDEBE\tHABER\t")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t\n",
			dateutils.ToSpanishFormat(e.Date),
			e.TransactionID,
			e.AccountCode,
			report.Truncate(e.AccountName, journalNameWidth),
			report.Truncate(e.Description, journalDescriptionWidth),
			amountCell(e.Debit.IsZero(), currencyutils.FormatEUR(e.Debit)),
			amountCell(e.Credit.IsZero(), currencyutils.FormatEUR(e.Credit)))
	}
	return tw.Flush()
}

// PrintLedger prints lines as the Libro Mayor followed by the totals row.
func PrintLedger(w io.Writer, lines []models.LedgerAccountSummary) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "CUENTA\tNOMBRE\tSUMA DEBE\tSUMA HABER\tSALDO FINAL\t")
	for _, l := range lines {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n",
			l.AccountCode,
			report.Truncate(l.AccountName, ledgerNameWidth),
			currencyutils.FormatEUR(l.TotalDebit),
			currencyutils.FormatEUR(l.TotalCredit),
			currencyutils.FormatEUR(l.Balance))
	}
	totals := ledger.SumLines(lines)
	fmt.Fprintf(tw, "\t%s\t%s\t%s\t%s\t\n",
		report.TotalsLabel,
		currencyutils.FormatEUR(totals.Debit),
		currencyutils.FormatEUR(totals.Credit),
		currencyutils.FormatEUR(totals.Difference))
	return tw.Flush()
}

// PrintGaps prints the expenses whose type has no mapped account.
func PrintGaps(w io.Writer, gaps []models.MappingGap) error {
	if len(gaps) == 0 {
		_, err := fmt.Fprintln(w, "No mapping gaps: every expense type has an account.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "FECHA\tDOCUMENTO\tCONCEPTO\tIMPORTE\t")
	for _, g := range gaps {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n",
			dateutils.ToSpanishFormat(g.Date),
			g.DocumentRef,
			g.Concept,
			currencyutils.FormatEUR(g.Amount))
	}
	return tw.Flush()
}

// amountCell leaves zero amounts blank, as a printed journal does.
func amountCell(zero bool, formatted string) string {
	if zero {
		return ""
	}
	return formatted
}
