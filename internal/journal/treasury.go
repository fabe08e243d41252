package journal

import "strings"

// treasuryAccounts maps a payment method to its treasury account.
// Matching is exact after trimming.
var treasuryAccounts = map[string]string{
	"Tarjeta":       "57200001",
	"Transferencia": "57200000",
	"Efectivo":      "57000000",
	"Domiciliación": "57200000",
}

// TreasuryAccount returns the treasury account of a payment method, or
// fallback when the method is unknown or missing.
func TreasuryAccount(paymentMethod, fallback string) string {
	if code, ok := treasuryAccounts[strings.TrimSpace(paymentMethod)]; ok {
		return code
	}
	return fallback
}
