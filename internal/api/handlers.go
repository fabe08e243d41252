// Package api exposes the journal, ledger, mapping gaps and exports of a
// fiscal year over HTTP.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"fjacquet/clinic-journal/internal/engine"
	"fjacquet/clinic-journal/internal/journal"
	"fjacquet/clinic-journal/internal/journalerror"
	"fjacquet/clinic-journal/internal/ledger"
	"fjacquet/clinic-journal/internal/logging"
	"fjacquet/clinic-journal/internal/models"
	"fjacquet/clinic-journal/internal/report"
	"github.com/gin-gonic/gin"
)

// Handlers serves the read API over a derivation service.
type Handlers struct {
	service       *engine.Service
	generator     *report.Generator
	defaultFormat string
	logger        logging.Logger
}

// NewHandlers creates the API handlers. defaultFormat applies to exports
// requested without ?format=.
func NewHandlers(service *engine.Service, generator *report.Generator, defaultFormat string, logger logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if defaultFormat == "" {
		defaultFormat = report.FormatCSV
	}
	return &Handlers{
		service:       service,
		generator:     generator,
		defaultFormat: defaultFormat,
		logger:        logger,
	}
}

// LedgerResponse is the body of the ledger endpoint.
type LedgerResponse struct {
	Year     int                           `json:"year"`
	Accounts []models.LedgerAccountSummary `json:"accounts"`
	Totals   ledger.Totals                 `json:"totals"`
}

// JournalHandler returns the journal of a year in display order.
func (h *Handlers) JournalHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		year, ok := h.year(c)
		if !ok {
			return
		}
		d, err := h.service.Derive(c.Request.Context(), year)
		if err != nil {
			h.fail(c, err)
			return
		}
		entries := report.FilterEntries(journal.SortForDisplay(d.Entries), c.Query("q"))
		c.JSON(http.StatusOK, entries)
	}
}

// LedgerHandler returns the ledger of a year sorted by account code, with
// opening balances when ?opening=true.
func (h *Handlers) LedgerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		year, ok := h.year(c)
		if !ok {
			return
		}
		summaries, err := h.ledger(c, year)
		if err != nil {
			h.fail(c, err)
			return
		}
		lines := ledger.Filter(summaries.Sorted(), c.Query("q"))
		c.JSON(http.StatusOK, LedgerResponse{
			Year:     year,
			Accounts: lines,
			Totals:   ledger.SumLines(lines),
		})
	}
}

// GapsHandler returns the mapping gaps of a year.
func (h *Handlers) GapsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		year, ok := h.year(c)
		if !ok {
			return
		}
		gaps, err := h.service.GetMappingGaps(c.Request.Context(), year)
		if err != nil {
			h.fail(c, err)
			return
		}
		if gaps == nil {
			gaps = []models.MappingGap{}
		}
		c.JSON(http.StatusOK, gaps)
	}
}

// ExportHandler downloads one book of a year as csv, xlsx or json.
func (h *Handlers) ExportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		year, ok := h.year(c)
		if !ok {
			return
		}
		kind, err := report.ParseKind(c.Param("book"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		format := strings.ToLower(c.DefaultQuery("format", h.defaultFormat))

		book, err := h.book(c, kind, year)
		if err != nil {
			h.fail(c, err)
			return
		}

		data, err := h.generator.Bytes(book, format)
		if err != nil {
			h.fail(c, err)
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName(kind, year, format)))
		c.Data(http.StatusOK, report.ContentType(format), data)
	}
}

func (h *Handlers) ledger(c *gin.Context, year int) (ledger.Summaries, error) {
	d, err := h.service.Derive(c.Request.Context(), year)
	if err != nil {
		return nil, err
	}
	if c.Query("opening") == "true" {
		return h.service.LedgerWithOpening(c.Request.Context(), d)
	}
	return d.Ledger, nil
}

func (h *Handlers) book(c *gin.Context, kind report.Kind, year int) (*report.Book, error) {
	switch kind {
	case report.KindDiario:
		d, err := h.service.Derive(c.Request.Context(), year)
		if err != nil {
			return nil, err
		}
		return report.NewDiarioBook(year, report.FilterEntries(d.Entries, c.Query("q"))), nil
	case report.KindMayor:
		summaries, err := h.ledger(c, year)
		if err != nil {
			return nil, err
		}
		return report.NewMayorBook(year, ledger.Filter(summaries.Sorted(), c.Query("q"))), nil
	default:
		gaps, err := h.service.GetMappingGaps(c.Request.Context(), year)
		if err != nil {
			return nil, err
		}
		return report.NewGapsBook(year, gaps), nil
	}
}

func (h *Handlers) year(c *gin.Context) (int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid year %q", c.Param("year"))})
		return 0, false
	}
	return year, true
}

// fail writes the status matching err.
func (h *Handlers) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	var invalidYear *journalerror.InvalidYearError
	var unsupported *journalerror.UnsupportedFormatError
	switch {
	case errors.As(err, &invalidYear), errors.As(err, &unsupported):
		status = http.StatusBadRequest
	case journalerror.IsUpstream(err):
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		h.logger.WithError(err).Error("Request failed",
			logging.F("path", c.FullPath()),
			logging.F("status", status))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
