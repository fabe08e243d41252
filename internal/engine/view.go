package engine

import (
	"context"
	"sync"
	"sync/atomic"

	"fjacquet/clinic-journal/internal/journalerror"
	"fjacquet/clinic-journal/internal/logging"
)

// YearView holds the derivation of the currently selected fiscal year.
// Selecting a year supersedes any selection still in flight: the older
// fetch is cancelled and its result is discarded, so an older year can
// never overwrite a newer one. The held derivation is replaced as a whole.
type YearView struct {
	service *Service

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc

	current atomic.Pointer[Derivation]
}

// NewYearView creates an empty view over service.
func NewYearView(service *Service) *YearView {
	return &YearView{service: service}
}

// Select derives year and makes it current. It returns ErrStaleResult when
// another Select started before this one finished.
func (v *YearView) Select(ctx context.Context, year int) (*Derivation, error) {
	ctx, gen := v.begin(ctx)

	d, err := v.service.Derive(ctx, year)

	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.generation {
		v.service.logger.Debug("Discarding superseded derivation", logging.F(logging.FieldYear, year))
		return nil, journalerror.ErrStaleResult
	}
	v.cancel()
	v.cancel = nil
	if err != nil {
		return nil, err
	}
	v.current.Store(d)
	return d, nil
}

func (v *YearView) begin(parent context.Context) (context.Context, uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.cancel != nil {
		v.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	v.generation++
	v.cancel = cancel
	return ctx, v.generation
}

// Current returns the last derivation that completed as the newest
// selection, or nil.
func (v *YearView) Current() *Derivation {
	return v.current.Load()
}
