// Package dateutils provides the date handling used throughout the application:
// issue-date normalization, fiscal-year bounds and display formatting.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Common date format constants used throughout the application
const (
	DateLayoutISO     = "2006-01-02"
	DateLayoutSpanish = "02/01/2006"
	DateLayoutFull    = "2006-01-02 15:04:05"
)

// MinYear and MaxYear bound the fiscal years accepted by the application.
const (
	MinYear = 1900
	MaxYear = 9999
)

// issueDateFormats are tried in order when normalizing an upstream issue date
var issueDateFormats = []string{
	DateLayoutISO,
	time.RFC3339,
	time.RFC3339Nano,
	DateLayoutFull,
	DateLayoutISO + "T15:04:05",
	DateLayoutSpanish,
	"02-01-2006",
	"2006/01/02",
}

// ParseIssueDate parses an issue date in any accepted upstream format.
func ParseIssueDate(dateStr string) (time.Time, error) {
	clean := strings.TrimSpace(dateStr)
	if clean == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, format := range issueDateFormats {
		if t, err := time.Parse(format, clean); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// NormalizeIssueDate returns the date as YYYY-MM-DD, or an empty string when
// it cannot be parsed. Callers treat the empty result as a missing field.
func NormalizeIssueDate(dateStr string) string {
	t, err := ParseIssueDate(dateStr)
	if err != nil {
		return ""
	}
	return ToISODate(t)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.Format(DateLayoutISO)
}

// ToSpanishFormat formats an ISO date as DD/MM/YYYY. Unparseable input is returned unchanged.
func ToSpanishFormat(isoDate string) string {
	t, err := time.Parse(DateLayoutISO, isoDate)
	if err != nil {
		return isoDate
	}
	return t.Format(DateLayoutSpanish)
}

// ValidYear reports whether year is an accepted fiscal year.
func ValidYear(year int) bool {
	return year >= MinYear && year <= MaxYear
}

// FiscalYearBounds returns the first and last day of the fiscal year as ISO dates.
func FiscalYearBounds(year int) (string, string) {
	return fmt.Sprintf("%04d-01-01", year), fmt.Sprintf("%04d-12-31", year)
}

// FiscalYearRange returns the fiscal year as a half-open [start, end) time range in UTC.
func FiscalYearRange(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}

// InFiscalYear reports whether an ISO date falls inside the fiscal year.
func InFiscalYear(isoDate string, year int) bool {
	from, to := FiscalYearBounds(year)
	return len(isoDate) == len(DateLayoutISO) && isoDate >= from && isoDate <= to
}

// CompareISODates compares two ISO dates and returns -1, 0 or 1.
func CompareISODates(a, b string) int {
	return strings.Compare(a, b)
}
