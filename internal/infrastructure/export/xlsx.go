// Package export renders report sheets into spreadsheet documents.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/iho/compta/internal/usecase"
)

var _ usecase.ReportExporter = (*XLSXExporter)(nil)

const (
	maxSheetName  = 31
	minColWidth   = 10
	maxColWidth   = 60
	defaultSheet  = "Sheet1"
	xlsxMediaType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// XLSXExporter writes one worksheet per report sheet.
type XLSXExporter struct{}

// NewXLSXExporter creates a new XLSXExporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// ContentType returns the xlsx media type.
func (e *XLSXExporter) ContentType() string {
	return xlsxMediaType
}

// Extension returns the file extension, dot included.
func (e *XLSXExporter) Extension() string {
	return ".xlsx"
}

// Write renders sheets into a workbook and writes it to w. Cells that hold
// amounts are stored as numbers so totals can be recomputed in the sheet.
func (e *XLSXExporter) Write(w io.Writer, sheets ...usecase.Sheet) error {
	if len(sheets) == 0 {
		return errors.New("export: no sheet to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("export: header style: %w", err)
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return fmt.Errorf("export: amount style: %w", err)
	}

	used := make(map[string]int, len(sheets))
	for i, sheet := range sheets {
		name := uniqueSheetName(sheet.Name, used)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return fmt.Errorf("export: rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("export: new sheet %q: %w", name, err)
		}

		if err := writeSheet(f, name, sheet, headerStyle, amountStyle); err != nil {
			return fmt.Errorf("export: sheet %q: %w", name, err)
		}
	}

	f.SetActiveSheet(0)

	return f.Write(w)
}

func writeSheet(f *excelize.File, name string, sheet usecase.Sheet, headerStyle, amountStyle int) error {
	widths := make([]int, len(sheet.Header))
	for i, h := range sheet.Header {
		widths[i] = utf8.RuneCountInString(h)
	}

	if len(sheet.Header) > 0 {
		if err := f.SetSheetRow(name, "A1", &sheet.Header); err != nil {
			return err
		}
		last, err := excelize.CoordinatesToCellName(len(sheet.Header), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(name, "A1", last, headerStyle); err != nil {
			return err
		}
		if err := f.SetPanes(name, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return err
		}
	}

	for r, row := range sheet.Rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}

			if amount, ok := parseAmount(value); ok {
				if err := f.SetCellValue(name, cell, amount.InexactFloat64()); err != nil {
					return err
				}
				if err := f.SetCellStyle(name, cell, cell, amountStyle); err != nil {
					return err
				}
			} else if err := f.SetCellStr(name, cell, value); err != nil {
				return err
			}

			if c >= len(widths) {
				widths = append(widths, 0)
			}
			if n := utf8.RuneCountInString(value); n > widths[c] {
				widths[c] = n
			}
		}
	}

	for c, width := range widths {
		col, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(name, col, col, float64(clamp(width+2, minColWidth, maxColWidth))); err != nil {
			return err
		}
	}

	return nil
}

// parseAmount accepts the fixed two-decimal format used for money columns.
func parseAmount(s string) (decimal.Decimal, bool) {
	i := strings.IndexByte(s, '.')
	if i <= 0 || len(s)-i != 3 {
		return decimal.Decimal{}, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}

	return d, true
}

var sheetNameReplacer = strings.NewReplacer(
	":", "-", "\\", "-", "/", "-", "?", "", "*", "", "[", "(", "]", ")",
)

func uniqueSheetName(name string, used map[string]int) string {
	name = strings.TrimSpace(sheetNameReplacer.Replace(name))
	if name == "" {
		name = "Feuille"
	}
	name = truncateRunes(name, maxSheetName)

	key := strings.ToLower(name)
	used[key]++
	if n := used[key]; n > 1 {
		suffix := fmt.Sprintf(" (%d)", n)
		name = truncateRunes(name, maxSheetName-len(suffix)) + suffix
		used[strings.ToLower(name)]++
	}

	return name
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}

	return string([]rune(s)[:n])
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}
