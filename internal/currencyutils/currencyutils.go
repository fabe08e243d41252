// Package currencyutils provides the tolerant amount parsing and euro
// formatting shared by the data store adapters and the report writers.
package currencyutils

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

var currencySymbols = regexp.MustCompile(`[€$£\s]|EUR`)

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// ParseAmount parses a string representation of an amount into a decimal value
// It handles formats like "1.234,56", "1234.56", "1234,56" and "121,00 €"
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	if strings.TrimSpace(amountStr) == "" {
		return decimal.Zero, nil
	}

	standardized := StandardizeAmount(amountStr)

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}

	return amount, nil
}

// StandardizeAmount converts euro-style amount strings to a form accepted by decimal.NewFromString
func StandardizeAmount(amountStr string) string {
	amountStr = currencySymbols.ReplaceAllString(amountStr, "")

	switch {
	case strings.Contains(amountStr, ",") && strings.Contains(amountStr, "."):
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			// 1.234,56
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// 1,234.56
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	case strings.Contains(amountStr, ","):
		amountStr = strings.ReplaceAll(amountStr, ",", ".")
	case strings.Count(amountStr, ".") > 1:
		// 1.234.567
		amountStr = strings.ReplaceAll(amountStr, ".", "")
	}

	return amountStr
}

// ToNum converts a raw column value into an amount. Nil, blank, NaN and
// unparseable values become zero; the data store is never trusted to hold
// clean numerics.
func ToNum(value interface{}) decimal.Decimal {
	switch v := value.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return v
	case *decimal.Decimal:
		if v == nil {
			return decimal.Zero
		}
		return *v
	case decimal.NullDecimal:
		if !v.Valid {
			return decimal.Zero
		}
		return v.Decimal
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(v)
	case float32:
		return ToNum(float64(v))
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case int32:
		return decimal.NewFromInt(int64(v))
	case string:
		amount, err := ParseAmount(v)
		if err != nil {
			log.WithField("value", v).Debug("Unparseable amount treated as zero")
			return decimal.Zero
		}
		return amount
	case []byte:
		return ToNum(string(v))
	default:
		return ToNum(fmt.Sprint(v))
	}
}

// FormatEUR formats an amount the way es-ES renders euros: comma decimals,
// dot grouping from five integer digits on, trailing "€".
// e.g. FormatEUR(1234.5) returns "1234,50 €" and FormatEUR(12345.67) returns "12.345,67 €"
func FormatEUR(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	if len(intPart) >= 5 {
		var b strings.Builder
		lead := len(intPart) % 3
		if lead > 0 {
			b.WriteString(intPart[:lead])
		}
		for i := lead; i < len(intPart); i += 3 {
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(intPart[i : i+3])
		}
		intPart = b.String()
	}

	sign := ""
	if amount.Round(2).IsNegative() {
		sign = "-"
	}
	return sign + intPart + "," + fracPart + " €"
}

// FormatAmount formats an amount with two decimals and no grouping, as used
// in machine-readable exports.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
