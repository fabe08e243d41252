// Package engine runs the journal derivation for a fiscal year: it fetches
// the five source tables concurrently, drops malformed records, synthesizes
// the journal and aggregates the ledger.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fjacquet/clinic-journal/internal/catalog"
	"fjacquet/clinic-journal/internal/journal"
	"fjacquet/clinic-journal/internal/journalerror"
	"fjacquet/clinic-journal/internal/ledger"
	"fjacquet/clinic-journal/internal/logging"
	"fjacquet/clinic-journal/internal/models"
	"fjacquet/clinic-journal/internal/store"
	"fjacquet/clinic-journal/internal/validation"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Derivation is the complete result of one run. It is never modified after
// Derive returns.
type Derivation struct {
	RunID    string
	Year     int
	Entries  []models.LedgerEntry
	Ledger   ledger.Summaries
	Gaps     []models.MappingGap
	Rejected []error
	Catalog  catalog.Stats
	Duration time.Duration
}

// Service is the derivation entry point used by the CLI and the HTTP API.
type Service struct {
	source   store.Source
	defaults journal.Defaults
	timeout  time.Duration
	logger   logging.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithDefaults sets the fallback accounts.
func WithDefaults(d journal.Defaults) Option {
	return func(s *Service) { s.defaults = d }
}

// WithFetchTimeout bounds the concurrent fetch. Zero means no bound.
func WithFetchTimeout(timeout time.Duration) Option {
	return func(s *Service) { s.timeout = timeout }
}

// WithLogger sets the logger.
func WithLogger(logger logging.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a Service reading from source.
func NewService(source store.Source, opts ...Option) *Service {
	s := &Service{
		source:   source,
		defaults: journal.DefaultAccounts(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.GetLogger()
	}
	return s
}

// Source returns the underlying data source.
func (s *Service) Source() store.Source {
	return s.source
}

// Fetch issues the five source queries concurrently and waits for all of
// them. The first failure cancels the others and is returned as an
// UpstreamFetchError; no partial snapshot is ever returned.
func (s *Service) Fetch(ctx context.Context, year int) (*models.Snapshot, error) {
	if err := validation.Year(year); err != nil {
		return nil, err
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	snapshot := &models.Snapshot{Year: year}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		snapshot.Treatments, err = s.source.TreatmentCatalog(gctx)
		return wrapFetch(store.TableTreatmentCatalog, 0, err)
	})
	g.Go(func() (err error) {
		snapshot.ExpenseTypes, err = s.source.ExpenseCatalog(gctx)
		return wrapFetch(store.TableExpenseCatalog, 0, err)
	})
	g.Go(func() (err error) {
		snapshot.AccountingMap, err = s.source.AccountingMap(gctx)
		return wrapFetch(store.TableAccountingMap, 0, err)
	})
	g.Go(func() (err error) {
		snapshot.Incomes, err = s.source.Incomes(gctx, year)
		return wrapFetch(store.TableIncomes, year, err)
	})
	g.Go(func() (err error) {
		snapshot.Expenses, err = s.source.Expenses(gctx, year)
		return wrapFetch(store.TableExpenses, year, err)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// OpeningBalances fetches the opening balances of year.
func (s *Service) OpeningBalances(ctx context.Context, year int) ([]models.OpeningBalanceRow, error) {
	if err := validation.Year(year); err != nil {
		return nil, err
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	rows, err := s.source.OpeningBalances(ctx, year)
	if err != nil {
		return nil, wrapFetch(store.TableOpeningBalances, year, err)
	}
	return rows, nil
}

func wrapFetch(table string, year int, err error) error {
	if err == nil {
		return nil
	}
	var upstream *journalerror.UpstreamFetchError
	if errors.As(err, &upstream) {
		return err
	}
	return &journalerror.UpstreamFetchError{Table: table, Year: year, Err: err}
}

// Derive fetches the year and derives its journal, ledger and mapping gaps.
func (s *Service) Derive(ctx context.Context, year int) (*Derivation, error) {
	runID := uuid.NewString()
	logger := s.logger.WithFields(
		logging.F(logging.FieldRunID, runID),
		logging.F(logging.FieldYear, year),
	)
	start := time.Now()

	snapshot, err := s.Fetch(ctx, year)
	if err != nil {
		logger.WithError(err).Error("Derivation aborted",
			logging.F(logging.FieldSource, s.source.Name()))
		return nil, fmt.Errorf("deriving journal for %d: %w", year, err)
	}

	d := DeriveSnapshot(snapshot, s.defaults, logger)
	d.RunID = runID
	d.Duration = time.Since(start)

	logger.Info("Derivation complete",
		logging.F("entries", len(d.Entries)),
		logging.F("accounts", len(d.Ledger)),
		logging.F("gaps", len(d.Gaps)),
		logging.F("rejected", len(d.Rejected)),
		logging.F(logging.FieldDuration, d.Duration.Milliseconds()))

	return d, nil
}

// DeriveSnapshot runs the pure part of the derivation over fetched data.
func DeriveSnapshot(snapshot *models.Snapshot, defaults journal.Defaults, logger logging.Logger) *Derivation {
	if logger == nil {
		logger = logging.GetLogger()
	}

	incomes, rejectedIncomes := validation.Incomes(snapshot.Incomes)
	expenses, rejectedExpenses := validation.Expenses(snapshot.Expenses)
	rejected := append(rejectedIncomes, rejectedExpenses...)
	for _, err := range rejected {
		logRejected(logger, err)
	}

	mappings := catalog.FromSnapshot(snapshot)
	result := journal.NewSynthesizer(mappings,
		journal.WithDefaults(defaults),
		journal.WithLogger(logger),
	).Synthesize(incomes, expenses)

	return &Derivation{
		Year:     snapshot.Year,
		Entries:  result.Entries,
		Ledger:   ledger.Aggregate(result.Entries),
		Gaps:     result.Gaps,
		Rejected: rejected,
		Catalog:  mappings.Stats(),
	}
}

func logRejected(logger logging.Logger, err error) {
	var malformed *journalerror.MalformedRecordError
	if errors.As(err, &malformed) {
		logger.Warn("Skipping malformed record",
			logging.F(logging.FieldRecordKind, malformed.Kind),
			logging.F(logging.FieldDocumentRef, malformed.DocumentRef),
			logging.F(logging.FieldReason, malformed.Field+" "+malformed.Reason))
		return
	}
	logger.WithError(err).Warn("Skipping malformed record")
}

// GetJournal returns the journal entries of year in transaction order.
func (s *Service) GetJournal(ctx context.Context, year int) ([]models.LedgerEntry, error) {
	d, err := s.Derive(ctx, year)
	if err != nil {
		return nil, err
	}
	return d.Entries, nil
}

// GetLedger returns the ledger summaries of year.
func (s *Service) GetLedger(ctx context.Context, year int) (ledger.Summaries, error) {
	d, err := s.Derive(ctx, year)
	if err != nil {
		return nil, err
	}
	return d.Ledger, nil
}

// GetMappingGaps returns the mapping gaps of year.
func (s *Service) GetMappingGaps(ctx context.Context, year int) ([]models.MappingGap, error) {
	d, err := s.Derive(ctx, year)
	if err != nil {
		return nil, err
	}
	return d.Gaps, nil
}

// LedgerWithOpening returns the ledger of d with the opening balances of its
// year posted on top. d itself is not modified.
func (s *Service) LedgerWithOpening(ctx context.Context, d *Derivation) (ledger.Summaries, error) {
	rows, err := s.OpeningBalances(ctx, d.Year)
	if err != nil {
		return nil, err
	}
	return ledger.WithOpeningBalances(d.Ledger, rows, d.Year), nil
}
