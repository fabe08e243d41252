package journal

import (
	"sort"

	"fjacquet/clinic-journal/internal/dateutils"
	"fjacquet/clinic-journal/internal/models"
)

// SortForDisplay returns a copy of entries ordered by date descending, then
// transaction id descending. Lines of one transaction keep their order.
func SortForDisplay(entries []models.LedgerEntry) []models.LedgerEntry {
	out := make([]models.LedgerEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if c := dateutils.CompareISODates(out[i].Date, out[j].Date); c != 0 {
			return c > 0
		}
		return out[i].TransactionID > out[j].TransactionID
	})
	return out
}
