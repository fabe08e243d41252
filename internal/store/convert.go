package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fjacquet/clinic-journal/internal/dateutils"
)

// text converts a raw column value to a trimmed string. Nil becomes "".
func text(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case *string:
		if v == nil {
			return ""
		}
		return strings.TrimSpace(*v)
	case time.Time:
		return dateutils.ToISODate(v)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// issueDate normalizes a raw date column to YYYY-MM-DD. Values that cannot
// be parsed are kept as-is so validation reports the record instead of the
// store silently dropping it.
func issueDate(value interface{}) string {
	raw := text(value)
	if normalized := dateutils.NormalizeIssueDate(raw); normalized != "" {
		return normalized
	}
	return raw
}

// inYear reports whether a normalized date belongs to year. Unparseable
// dates are kept so they surface as malformed records.
func inYear(date string, year int) bool {
	if _, err := time.Parse(dateutils.DateLayoutISO, date); err != nil {
		return true
	}
	return dateutils.InFiscalYear(date, year)
}

// fiscalYear converts a raw year column. Invalid values become 0.
func fiscalYear(value interface{}) int {
	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		year, err := strconv.Atoi(text(v))
		if err != nil {
			return 0
		}
		return year
	}
}
