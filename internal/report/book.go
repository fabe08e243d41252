package report

import (
	"fmt"
	"strings"

	"fjacquet/clinic-journal/internal/journal"
	"fjacquet/clinic-journal/internal/ledger"
	"fjacquet/clinic-journal/internal/models"
)

// Kind identifies an exportable book.
type Kind string

// Exportable books
const (
	KindDiario Kind = "diario"
	KindMayor  Kind = "mayor"
	KindGaps   Kind = "gaps"
)

// ParseKind accepts "diario", "mayor" or "gaps", case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindDiario, KindMayor, KindGaps:
		return k, nil
	default:
		return "", fmt.Errorf("unknown book %q: expected diario, mayor or gaps", s)
	}
}

// Title returns the file-name title of the book.
func (k Kind) Title() string {
	switch k {
	case KindDiario:
		return "Libro_Diario"
	case KindMayor:
		return "Libro_Mayor"
	default:
		return "Errores_Mapeo"
	}
}

// Book is a projected table ready to be written in any format.
type Book struct {
	Kind     Kind
	Year     int
	Headings []string

	diario []DiarioRow
	mayor  []MayorRow
	footer *MayorRow
	gaps   []GapRow
}

// NewDiarioBook builds the Libro Diario from entries in display order.
func NewDiarioBook(year int, entries []models.LedgerEntry) *Book {
	return &Book{
		Kind:     KindDiario,
		Year:     year,
		Headings: []string{"FECHA", "ASIENTO", "CUENTA", "NOMBRE", "CONCEPTO", "DEBE", "HABER"},
		diario:   DiarioRows(journal.SortForDisplay(entries)),
	}
}

// NewMayorBook builds the Libro Mayor sorted by account code, with a totals footer.
func NewMayorBook(year int, lines []models.LedgerAccountSummary) *Book {
	sorted := ledger.Summaries{}
	for _, l := range lines {
		sorted[l.AccountCode] = l
	}
	rows, footer := MayorRows(sorted.Sorted())
	return &Book{
		Kind:     KindMayor,
		Year:     year,
		Headings: []string{"CUENTA", "NOMBRE", "SUMA DEBE", "SUMA HABER", "SALDO FINAL"},
		mayor:    rows,
		footer:   &footer,
	}
}

// NewGapsBook builds the mapping-gap list.
func NewGapsBook(year int, gaps []models.MappingGap) *Book {
	return &Book{
		Kind:     KindGaps,
		Year:     year,
		Headings: []string{"FECHA", "DOCUMENTO", "CONCEPTO", "IMPORTE"},
		gaps:     GapRows(gaps),
	}
}

// Len returns the number of data rows, without footer.
func (b *Book) Len() int {
	switch b.Kind {
	case KindDiario:
		return len(b.diario)
	case KindMayor:
		return len(b.mayor)
	default:
		return len(b.gaps)
	}
}

// csvRows returns the row structs including the footer, for gocsv.
func (b *Book) csvRows() interface{} {
	switch b.Kind {
	case KindDiario:
		return b.diario
	case KindMayor:
		rows := append([]MayorRow(nil), b.mayor...)
		if b.footer != nil {
			rows = append(rows, *b.footer)
		}
		return rows
	default:
		return b.gaps
	}
}

// cells returns the data rows as spreadsheet values; amounts become float64.
func (b *Book) cells() [][]interface{} {
	var out [][]interface{}
	switch b.Kind {
	case KindDiario:
		for _, r := range b.diario {
			out = append(out, []interface{}{r.Date, r.TransactionID, r.AccountCode, r.AccountName, r.Description,
				r.Debit.InexactFloat64(), r.Credit.InexactFloat64()})
		}
	case KindMayor:
		rows := b.mayor
		if b.footer != nil {
			rows = append(append([]MayorRow(nil), rows...), *b.footer)
		}
		for _, r := range rows {
			out = append(out, []interface{}{r.AccountCode, r.AccountName,
				r.TotalDebit.InexactFloat64(), r.TotalCredit.InexactFloat64(), r.Balance.InexactFloat64()})
		}
	default:
		for _, r := range b.gaps {
			out = append(out, []interface{}{r.Date, r.DocumentRef, r.Concept, r.Amount.InexactFloat64()})
		}
	}
	return out
}

// amountColumns returns the 1-based columns holding amounts.
func (b *Book) amountColumns() []int {
	switch b.Kind {
	case KindDiario:
		return []int{6, 7}
	case KindMayor:
		return []int{3, 4, 5}
	default:
		return []int{4}
	}
}

type mayorPayload struct {
	Year     int        `json:"year"`
	Accounts []MayorRow `json:"accounts"`
	Totals   MayorRow   `json:"totals"`
}

type listPayload struct {
	Year int         `json:"year"`
	Rows interface{} `json:"rows"`
}

// payload returns the JSON document of the book.
func (b *Book) payload() interface{} {
	switch b.Kind {
	case KindDiario:
		return listPayload{Year: b.Year, Rows: b.diario}
	case KindMayor:
		p := mayorPayload{Year: b.Year, Accounts: b.mayor}
		if b.footer != nil {
			p.Totals = *b.footer
		}
		return p
	default:
		return listPayload{Year: b.Year, Rows: b.gaps}
	}
}

// DiarioRows returns the projected journal rows.
func (b *Book) DiarioRows() []DiarioRow { return b.diario }

// MayorRows returns the projected ledger rows and the totals footer.
func (b *Book) MayorRows() ([]MayorRow, *MayorRow) { return b.mayor, b.footer }

// GapRows returns the projected gap rows.
func (b *Book) GapRows() []GapRow { return b.gaps }
