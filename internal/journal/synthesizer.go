// Package journal turns income and expense records into the double-entry
// general journal (Libro Diario).
//
// Every income yields an invoice transaction and a collection transaction;
// every expense yields an invoice transaction and a payment transaction.
// Transaction ids are allocated densely from 1 in input order.
package journal

import (
	"fjacquet/clinic-journal/internal/auxaccount"
	"fjacquet/clinic-journal/internal/catalog"
	"fjacquet/clinic-journal/internal/logging"
	"fjacquet/clinic-journal/internal/models"
	"github.com/shopspring/decimal"
)

// Defaults are the fallback accounts used when a mapping is missing.
type Defaults struct {
	RevenueAccount  string
	ExpenseAccount  string
	TreasuryAccount string
}

// DefaultAccounts returns the standard fallback accounts.
func DefaultAccounts() Defaults {
	return Defaults{
		RevenueAccount:  models.DefaultRevenueAccount,
		ExpenseAccount:  models.DefaultExpenseAccount,
		TreasuryAccount: models.DefaultTreasuryAccount,
	}
}

// Result is the output of one synthesis pass.
type Result struct {
	Entries []models.LedgerEntry
	Gaps    []models.MappingGap
}

// Synthesizer derives journal entries from records using a catalog snapshot.
type Synthesizer struct {
	mappings catalog.Mappings
	defaults Defaults
	logger   logging.Logger
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithDefaults overrides the fallback accounts. Blank fields keep the standard value.
func WithDefaults(d Defaults) Option {
	return func(s *Synthesizer) {
		if d.RevenueAccount != "" {
			s.defaults.RevenueAccount = d.RevenueAccount
		}
		if d.ExpenseAccount != "" {
			s.defaults.ExpenseAccount = d.ExpenseAccount
		}
		if d.TreasuryAccount != "" {
			s.defaults.TreasuryAccount = d.TreasuryAccount
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger logging.Logger) Option {
	return func(s *Synthesizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSynthesizer creates a Synthesizer over the given mappings.
func NewSynthesizer(mappings catalog.Mappings, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		mappings: mappings,
		defaults: DefaultAccounts(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.GetLogger()
	}
	return s
}

// Synthesize derives the journal for the given records with standard defaults.
func Synthesize(incomes []models.IncomeRecord, expenses []models.ExpenseRecord, mappings catalog.Mappings, logger logging.Logger) Result {
	return NewSynthesizer(mappings, WithLogger(logger)).Synthesize(incomes, expenses)
}

// Synthesize derives the entries of all incomes, then all expenses. Entries
// are ordered by transaction id. The records are expected to be validated.
func (s *Synthesizer) Synthesize(incomes []models.IncomeRecord, expenses []models.ExpenseRecord) Result {
	b := &builder{entries: make([]models.LedgerEntry, 0, 5*(len(incomes)+len(expenses))), nextID: 1}
	gaps := NewGapReporter(s.logger)

	for _, inc := range incomes {
		s.income(b, inc)
	}
	for _, exp := range expenses {
		s.expense(b, exp, gaps)
	}

	s.logger.Debug("Journal synthesized",
		logging.F(logging.FieldCount, len(b.entries)),
		logging.F("transactions", b.nextID-1),
		logging.F("gaps", gaps.Len()))

	return Result{Entries: b.entries, Gaps: gaps.Gaps()}
}

func (s *Synthesizer) income(b *builder, inc models.IncomeRecord) {
	doc := inc.DocumentRef()
	client := inc.Counterparty()
	clientAccount := auxaccount.Derive(client, models.ClientAccountPrefix)

	revenueAccount, ok := s.mappings.TreatmentAccount(inc.TreatmentName)
	if !ok {
		revenueAccount = s.defaults.RevenueAccount
	}
	treasuryAccount := TreasuryAccount(inc.PaymentMethod, s.defaults.TreasuryAccount)

	b.begin(inc.IssueDate, models.TransactionTypeInvoice, doc)
	b.debit(clientAccount, client, "Fra. "+doc, inc.TotalAmount)
	b.credit(revenueAccount, s.name(revenueAccount, models.RevenueAccountName), "Base "+doc, inc.TaxBase)
	if inc.VATQuota.IsPositive() {
		b.credit(models.VATOutputAccount, models.VATOutputName, "IVA "+doc, inc.VATQuota)
	}

	b.begin(inc.IssueDate, models.TransactionTypeCollection, doc)
	b.debit(treasuryAccount, s.name(treasuryAccount, models.TreasuryAccountName), "Cobro "+doc, inc.TotalAmount)
	b.credit(clientAccount, client, "Cobro "+doc, inc.TotalAmount)
}

func (s *Synthesizer) expense(b *builder, exp models.ExpenseRecord, gaps *GapReporter) {
	doc := exp.DocumentRef()
	provider := exp.Counterparty()
	concept := exp.Concept()
	providerAccount := auxaccount.Derive(provider, models.ProviderAccountPrefix)

	expenseAccount, ok := s.mappings.ExpenseAccount(concept)
	if !ok {
		expenseAccount = s.defaults.ExpenseAccount
		gaps.Report(exp)
	}
	treasuryAccount := TreasuryAccount(exp.PaymentMethod, s.defaults.TreasuryAccount)

	b.begin(exp.IssueDate, models.TransactionTypeInvoice, doc)
	b.debit(expenseAccount, s.name(expenseAccount, concept), "Gasto "+doc, exp.TaxBase)
	if exp.VATQuota.IsPositive() {
		b.debit(models.VATInputAccount, models.VATInputName, "IVA "+doc, exp.VATQuota)
	}
	b.credit(providerAccount, provider, "Fra. "+doc, exp.TotalPayment)

	b.begin(exp.IssueDate, models.TransactionTypePayment, doc)
	b.debit(providerAccount, provider, "Pago "+doc, exp.TotalPayment)
	b.credit(treasuryAccount, s.name(treasuryAccount, models.TreasuryAccountName), "Pago "+doc, exp.TotalPayment)
}

func (s *Synthesizer) name(accountCode, fallback string) string {
	if name, ok := s.mappings.DisplayName(accountCode); ok {
		return name
	}
	return fallback
}

// builder appends the lines of the transaction currently open.
type builder struct {
	entries []models.LedgerEntry
	nextID  int
	current models.LedgerEntry
}

func (b *builder) begin(date, txType, doc string) {
	b.current = models.LedgerEntry{
		TransactionID:   b.nextID,
		Date:            date,
		TransactionType: txType,
		DocumentRef:     doc,
	}
	b.nextID++
}

func (b *builder) debit(account, name, desc string, amount decimal.Decimal) {
	b.line(account, name, desc, amount, decimal.Zero)
}

func (b *builder) credit(account, name, desc string, amount decimal.Decimal) {
	b.line(account, name, desc, decimal.Zero, amount)
}

func (b *builder) line(account, name, desc string, debit, credit decimal.Decimal) {
	e := b.current
	e.AccountCode = account
	e.AccountName = name
	e.Description = desc
	e.Debit = debit
	e.Credit = credit
	b.entries = append(b.entries, e)
}
