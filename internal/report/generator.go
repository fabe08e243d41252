package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"fjacquet/clinic-journal/internal/fileutils"
	"fjacquet/clinic-journal/internal/logging"
	"fjacquet/clinic-journal/internal/validation"
	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"
)

// Export formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatJSON = "json"
)

// amountNumFmt is the built-in "#,##0.00" number format.
const amountNumFmt = 4

// Generator writes books in the supported export formats.
type Generator struct {
	delimiter rune
	logger    logging.Logger
}

// NewGenerator creates a generator writing CSV with the given delimiter.
// A zero delimiter means ','.
func NewGenerator(delimiter rune, logger logging.Logger) *Generator {
	if delimiter == 0 {
		delimiter = ','
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Generator{delimiter: delimiter, logger: logger}
}

// ContentType returns the MIME type of an export format.
func ContentType(format string) string {
	switch format {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json; charset=utf-8"
	}
}

// Write renders the book to w in the given format.
func (g *Generator) Write(w io.Writer, book *Book, format string) error {
	format = strings.ToLower(strings.TrimSpace(format))
	if err := validation.IsValidExportFormat(format); err != nil {
		return err
	}

	var err error
	switch format {
	case FormatCSV:
		err = g.writeCSV(w, book)
	case FormatXLSX:
		err = g.writeXLSX(w, book)
	default:
		err = g.writeJSON(w, book)
	}
	if err != nil {
		return fmt.Errorf("error writing %s as %s: %w", book.Kind, format, err)
	}

	g.logger.Debug("Book rendered",
		logging.F(logging.FieldFormat, format),
		logging.F(logging.FieldCount, book.Len()),
		logging.F(logging.FieldYear, book.Year))
	return nil
}

// Bytes renders the book in memory.
func (g *Generator) Bytes(book *Book, format string) ([]byte, error) {
	var buf bytes.Buffer
	if err := g.Write(&buf, book, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile renders the book into dir and returns the path written.
func (g *Generator) WriteFile(dir string, book *Book, format string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	data, err := g.Bytes(book, format)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, FileName(book.Kind, book.Year, format))
	if err := fileutils.WriteFile(path, data); err != nil {
		return "", err
	}

	g.logger.Info("Export written",
		logging.F(logging.FieldOutputFile, path),
		logging.F(logging.FieldFormat, format),
		logging.F(logging.FieldCount, book.Len()))
	return path, nil
}

func (g *Generator) writeCSV(w io.Writer, book *Book) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = g.delimiter
	return gocsv.MarshalCSV(book.csvRows(), gocsv.NewSafeCSVWriter(csvWriter))
}

func (g *Generator) writeXLSX(w io.Writer, book *Book) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	sheet := strings.ReplaceAll(book.Kind.Title(), "_", " ")
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	for i, heading := range book.Headings {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, heading); err != nil {
			return err
		}
	}

	rows := book.cells()
	for r, values := range rows {
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	if len(rows) > 0 {
		style, err := f.NewStyle(&excelize.Style{NumFmt: amountNumFmt})
		if err != nil {
			return err
		}
		for _, col := range book.amountColumns() {
			top, _ := excelize.CoordinatesToCellName(col, 2)
			bottom, _ := excelize.CoordinatesToCellName(col, len(rows)+1)
			if err := f.SetCellStyle(sheet, top, bottom, style); err != nil {
				return err
			}
		}
	}

	_, err = f.WriteTo(w)
	return err
}

func (g *Generator) writeJSON(w io.Writer, book *Book) error {
	data, err := json.MarshalIndent(book.payload(), "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
