// Package auxaccount derives subsidiary-ledger account codes for clients and
// providers from their names, so the same counterparty always lands in the
// same account without a registry.
package auxaccount

import (
	"strconv"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const suffixLength = 5

// Derive returns prefix followed by a five-digit suffix computed from name.
// Names are compared trimmed and upper-cased with full Unicode case mapping
// ("ß" becomes "SS"); an empty name yields prefix+"00000".
//
// Different names may share a suffix. Collisions are neither detected nor
// resolved: existing account codes must stay stable across releases.
func Derive(name, prefix string) string {
	clean := cases.Upper(language.Und).String(strings.TrimSpace(name))
	if clean == "" {
		return prefix + strings.Repeat("0", suffixLength)
	}

	digits := strconv.FormatInt(abs(hash(clean)), 10)
	if len(digits) > suffixLength {
		digits = digits[:suffixLength]
	}
	return prefix + digits + strings.Repeat("0", suffixLength-len(digits))
}

// Client derives the 430 account of a client.
func Client(name string) string {
	return Derive(name, "430")
}

// Provider derives the 410 account of a provider.
func Provider(name string) string {
	return Derive(name, "410")
}

// hash is the rolling hash h = c + (h<<5) - h over UTF-16 code units.
// Only the shift is 32-bit: the shifted value wraps as int32, while the
// subtraction and addition keep full precision, so h may leave int32 range.
// Existing codes depend on exactly this mix.
func hash(s string) int64 {
	var h int64
	for _, c := range utf16.Encode([]rune(s)) {
		h = int64(c) + int64(int32(h)<<5) - h
	}
	return h
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
