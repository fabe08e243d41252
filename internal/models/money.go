package models

import "github.com/shopspring/decimal"

// CentTolerance is the largest difference treated as equal when reconciling
// amounts that were rounded to cents upstream.
var CentTolerance = decimal.RequireFromString("0.005")

// Sum adds the given amounts.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Reconciles reports whether total equals base plus vat within CentTolerance.
func Reconciles(total, base, vat decimal.Decimal) bool {
	return total.Sub(Sum(base, vat)).Abs().LessThanOrEqual(CentTolerance)
}
