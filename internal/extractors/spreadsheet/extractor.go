// Package spreadsheet extracts cell text from Excel workbooks.
// Modern .xlsx files are read with excelize, legacy .xls files with
// extrame/xls. Every cell is read as its stored string, without number
// formats applied.
package spreadsheet

import (
	"context"
	"fmt"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/tendera/internal/core/domain"
	"github.com/custodia-labs/tendera/internal/core/ports/driven"
	"github.com/custodia-labs/tendera/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// cellSeparator joins cells so that rows read as tabular lines.
const cellSeparator = " | "

// Extractor handles .xlsx and .xls workbooks.
type Extractor struct{}

// New creates a new spreadsheet extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedExtensions returns the extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".xlsx", ".xls"}
}

// Extract renders every sheet as a sheet header followed by one line per
// non-empty row.
func (e *Extractor) Extract(ctx context.Context, file domain.SourceFile) (string, error) {
	if file.Ext == ".xls" {
		return extractXLS(ctx, file)
	}
	return extractXLSX(ctx, file)
}

func extractXLSX(ctx context.Context, file domain.SourceFile) (string, error) {
	f, err := excelize.OpenFile(file.Path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	defer f.Close()

	var b strings.Builder
	for _, sheet := range f.GetSheetList() {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		// Raw values: number formats would round quantities and prices.
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			logger.Debug("xlsx %s: sheet %q skipped: %v", file.Name(), sheet, err)
			continue
		}
		writeSheet(&b, sheet, rows)
	}
	return b.String(), nil
}

func extractXLS(ctx context.Context, file domain.SourceFile) (text string, err error) {
	// The BIFF reader panics on some malformed records.
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("%w: malformed workbook: %v", domain.ErrExtractionFailed, rec)
		}
	}()

	wb, err := xls.Open(file.Path, "utf-8")
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	var b strings.Builder
	for i := 0; i < wb.NumSheets(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		sheet := wb.GetSheet(i)
		if sheet == nil {
			continue
		}
		rows := make([][]string, 0, int(sheet.MaxRow)+1)
		for r := 0; r <= int(sheet.MaxRow); r++ {
			row := sheet.Row(r)
			if row == nil {
				continue
			}
			cells := make([]string, 0, row.LastCol()-row.FirstCol()+1)
			for c := row.FirstCol(); c <= row.LastCol(); c++ {
				cells = append(cells, row.Col(c))
			}
			rows = append(rows, cells)
		}
		writeSheet(&b, sheet.Name, rows)
	}
	return b.String(), nil
}

// writeSheet appends a sheet header and its non-empty rows.
func writeSheet(b *strings.Builder, name string, rows [][]string) {
	var body strings.Builder
	for _, row := range rows {
		if line := formatRow(row); line != "" {
			body.WriteString(line)
			body.WriteString("\n")
		}
	}
	if body.Len() == 0 {
		return
	}
	fmt.Fprintf(b, "Лист: %s\n", name)
	b.WriteString(body.String())
	b.WriteString("\n")
}

// formatRow trims cells, drops trailing empties and joins the rest.
// Returns "" for a row without content.
func formatRow(row []string) string {
	cells := make([]string, len(row))
	last := -1
	for i, c := range row {
		cells[i] = strings.Join(strings.Fields(c), " ")
		if cells[i] != "" {
			last = i
		}
	}
	if last < 0 {
		return ""
	}
	return strings.Join(cells[:last+1], cellSeparator)
}
