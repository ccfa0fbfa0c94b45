// Package workbook reads budget spreadsheets: the first sheet holds a header
// row "Code | Jan | Feb | ... | Dec" and one row per category code.
package workbook

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/dentalbudget/internal/apperr"
	"github.com/MrJamesThe3rd/dentalbudget/internal/budget"
	"github.com/MrJamesThe3rd/dentalbudget/internal/money"
)

var monthNames = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// Parse reads the budget rows of the workbook in r. Blank cells are left out
// of the row; rows without a code are skipped.
func Parse(r io.Reader) ([]budget.ImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, err, "file is not a valid xlsx workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperr.Validation("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheets[0], err)
	}

	if len(rows) == 0 {
		return nil, apperr.Validation("sheet %s is empty", sheets[0])
	}

	months, err := parseHeader(rows[0])
	if err != nil {
		return nil, err
	}

	var result []budget.ImportRow

	for i, row := range rows[1:] {
		rowNum := i + 2

		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		ir := budget.ImportRow{
			Row:    rowNum,
			Code:   strings.TrimSpace(row[0]),
			Months: make(map[int]decimal.Decimal),
		}

		for col, month := range months {
			if col >= len(row) || strings.TrimSpace(row[col]) == "" {
				continue
			}

			amount, err := money.Parse(row[col])
			if err != nil {
				return nil, apperr.Validation("row %d: invalid amount %q for month %d", rowNum, row[col], month)
			}

			ir.Months[month] = amount
		}

		result = append(result, ir)
	}

	return result, nil
}

// parseHeader maps column indexes to calendar months. The first column must
// be "Code"; month columns accept short or full English names.
func parseHeader(header []string) (map[int]int, error) {
	if len(header) == 0 || !strings.EqualFold(strings.TrimSpace(header[0]), "code") {
		return nil, apperr.Validation("first header cell must be 'Code'")
	}

	months := make(map[int]int, 12)
	seen := make(map[int]bool, 12)

	for col, cell := range header[1:] {
		name := strings.ToLower(strings.TrimSpace(cell))
		if len(name) < 3 {
			continue
		}

		month, ok := monthNames[name[:3]]
		if !ok {
			continue
		}

		if seen[month] {
			return nil, apperr.Validation("month column %q appears twice", cell)
		}

		seen[month] = true
		months[col+1] = month
	}

	if len(months) == 0 {
		return nil, apperr.Validation("header has no month columns")
	}

	return months, nil
}
