// Package journalerror defines the error taxonomy of the journal engine.
//
// Systemic failures (UpstreamFetchError) abort a derivation. Record-level
// problems (MalformedRecordError) are reported and the record is skipped.
package journalerror

import (
	"errors"
	"fmt"
)

// ErrStaleResult is returned when a finished derivation was superseded by a
// newer fiscal-year selection and its result was discarded.
var ErrStaleResult = errors.New("derivation result is stale: a newer year was selected")

// UpstreamFetchError wraps a failed read query against the external store.
type UpstreamFetchError struct {
	Table string
	Year  int
	Err   error
}

func (e *UpstreamFetchError) Error() string {
	if e.Year == 0 {
		return fmt.Sprintf("fetching %s failed: %v", e.Table, e.Err)
	}
	return fmt.Sprintf("fetching %s for %d failed: %v", e.Table, e.Year, e.Err)
}

func (e *UpstreamFetchError) Unwrap() error {
	return e.Err
}

// MalformedRecordError describes an income or expense record that cannot take
// part in the derivation.
type MalformedRecordError struct {
	Kind        string // "income" or "expense"
	DocumentRef string
	Field       string
	Reason      string
}

func (e *MalformedRecordError) Error() string {
	ref := e.DocumentRef
	if ref == "" {
		ref = "S/N"
	}
	return fmt.Sprintf("malformed %s record %s: field %s %s", e.Kind, ref, e.Field, e.Reason)
}

// InvalidYearError is returned for fiscal years outside the supported range.
type InvalidYearError struct {
	Year int
}

func (e *InvalidYearError) Error() string {
	return fmt.Sprintf("invalid fiscal year %d: must be between 1900 and 9999", e.Year)
}

// UnsupportedFormatError is returned when an export format is unknown.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported export format %q: supported formats are csv, xlsx, json", e.Format)
}

// IsUpstream reports whether err is, or wraps, an UpstreamFetchError.
func IsUpstream(err error) bool {
	var target *UpstreamFetchError
	return errors.As(err, &target)
}
