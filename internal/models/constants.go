package models

// Transaction types of the synthesized journal
const (
	TransactionTypeInvoice    = "FACTURA"
	TransactionTypeCollection = "COBRO"
	TransactionTypePayment    = "PAGO"
)

// Fixed accounts of the Spanish chart of accounts used by the derivation
const (
	DefaultRevenueAccount  = "70500000"
	DefaultExpenseAccount  = "62900000"
	DefaultTreasuryAccount = "57299999"
	VATOutputAccount       = "47700000"
	VATInputAccount        = "47200000"
)

// Auxiliary account prefixes
const (
	ClientAccountPrefix   = "430"
	ProviderAccountPrefix = "410"
)

// Fallback values applied at the derivation boundary
const (
	DefaultDocumentRef  = "S/N"
	DefaultClientName   = "Cliente Varios"
	DefaultProviderName = "Proveedor"
	RevenueAccountName  = "Ventas"
	TreasuryAccountName = "Tesorería"
	VATOutputName       = "H.P. IVA Repercutido"
	VATInputName        = "H.P. IVA Soportado"
)

// Category types of the accounting map
const (
	CategoryIncome  = "Income"
	CategoryExpense = "Expense"
)

// File permissions
const (
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
