package journal

import (
	"fjacquet/clinic-journal/internal/logging"
	"fjacquet/clinic-journal/internal/models"
)

// GapReporter collects expenses whose type has no catalog mapping during a
// synthesis pass.
type GapReporter struct {
	gaps   []models.MappingGap
	logger logging.Logger
}

// NewGapReporter returns an empty reporter logging each gap at WARN.
func NewGapReporter(logger logging.Logger) *GapReporter {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &GapReporter{logger: logger}
}

// Report records a gap for the expense. The amount is the total payment.
func (r *GapReporter) Report(expense models.ExpenseRecord) {
	gap := models.MappingGap{
		Date:        expense.IssueDate,
		DocumentRef: expense.DocumentRef(),
		Concept:     expense.Concept(),
		Amount:      expense.TotalPayment,
	}
	r.gaps = append(r.gaps, gap)

	r.logger.Warn("Expense type has no catalog account, using default",
		logging.F(logging.FieldDocumentRef, gap.DocumentRef),
		logging.F(logging.FieldConcept, gap.Concept))
}

// Gaps returns the collected gaps in report order.
func (r *GapReporter) Gaps() []models.MappingGap {
	out := make([]models.MappingGap, len(r.gaps))
	copy(out, r.gaps)
	return out
}

// Len returns the number of collected gaps.
func (r *GapReporter) Len() int {
	return len(r.gaps)
}
