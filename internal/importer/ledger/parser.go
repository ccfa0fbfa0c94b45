// Package ledger reads actual amounts from accounting exports (QuickBooks,
// Xero, or the plain import template) in CSV form.
package ledger

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/dentalbudget/internal/apperr"
	"github.com/MrJamesThe3rd/dentalbudget/internal/budget"
	enc "github.com/MrJamesThe3rd/dentalbudget/internal/encoding"
	"github.com/MrJamesThe3rd/dentalbudget/internal/money"
)

// dateLayouts are tried in order. US exports use month-first dates.
var dateLayouts = []string{
	time.DateOnly,
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"02 Jan 2006",
	"2 Jan 2006",
	"Jan 2, 2006",
}

// Batch is the parsed content of one export file.
type Batch struct {
	Profile string
	Source  budget.Source
	Charset enc.Charset
	Entries []budget.ActualEntry
}

// Parser auto-detects the export format by matching column headers against
// known profiles.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse reads r. A non-empty format restricts detection to profiles of that
// source (quickbooks, xero or import).
func (p *Parser) Parse(r io.Reader, format budget.Source) (*Batch, error) {
	utf8r, charset, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, lines, err := readRows(reader)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, err, "file is not valid CSV")
	}

	profile, colMap, headerIdx := detectProfile(rows, format)
	if profile == nil {
		return nil, apperr.Validation(
			"no matching export format found: expected columns for quickbooks (Account, Date, Amount), " +
				"xero (Account Code, Date, Net Amount) or import (code, period_date, amount)")
	}

	entries, err := parseRows(profile, colMap, rows[headerIdx+1:], lines[headerIdx+1:])
	if err != nil {
		return nil, err
	}

	return &Batch{
		Profile: profile.Name,
		Source:  profile.Source,
		Charset: charset,
		Entries: entries,
	}, nil
}

// sniffDelimiter picks ';' when the first non-empty line has more semicolons
// than commas.
func sniffDelimiter(data []byte) rune {
	for line := range bytes.Lines(data) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
			return ';'
		}

		break
	}

	return ','
}

// colIndex maps lower-cased column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
// Returns the matched profile, column index map, and header row index.
func detectProfile(rows [][]string, format budget.Source) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if _, seen := cols[name]; name != "" && !seen {
				cols[name] = i
			}
		}

		for i := range profiles {
			if format != "" && profiles[i].Source != format {
				continue
			}

			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

// matchesProfile checks if all required columns of a profile are present.
func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// readRows reads every record along with the file line it starts on, so
// errors can point at the line even when blank lines were skipped.
func readRows(reader *csv.Reader) ([][]string, []int, error) {
	var (
		rows  [][]string
		lines []int
	)

	for {
		row, err := reader.Read()
		if err == io.EOF {
			return rows, lines, nil
		}

		if err != nil {
			return nil, nil, err
		}

		line, _ := reader.FieldPos(0)
		rows = append(rows, row)
		lines = append(lines, line)
	}
}

// parseRows extracts entries from data rows using the matched profile.
// lines[i] is the file line of rows[i], used in error messages.
func parseRows(p *Profile, cols colIndex, rows [][]string, lines []int) ([]budget.ActualEntry, error) {
	accountIdx := cols[p.AccountCol]
	dateIdx := cols[p.DateCol]

	var entries []budget.ActualEntry

	for i, row := range rows {
		rowNum := lines[i]

		date, ok := parseDate(row, dateIdx)
		if !ok {
			continue
		}

		account := cellValue(row, accountIdx)
		if account == "" {
			return nil, apperr.Validation("row %d: missing account", rowNum)
		}

		amount, ok, err := parseAmount(p, cols, row)
		if err != nil {
			return nil, apperr.Validation("row %d: %v", rowNum, err)
		}

		if !ok {
			continue
		}

		entries = append(entries, budget.ActualEntry{
			Row:     rowNum,
			Account: account,
			Date:    date,
			Amount:  amount,
		})
	}

	return entries, nil
}

// parseDate tries to parse a date from the given cell index.
// Returns false for empty cells or unparseable values (totals, footers).
func parseDate(row []string, idx int) (time.Time, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// parseAmount extracts the amount of a row based on the profile's amount
// mode. Zero or blank amounts report false.
func parseAmount(p *Profile, cols colIndex, row []string) (decimal.Decimal, bool, error) {
	switch p.AmountMode {
	case amountSingle:
		return parseSingleAmount(row, cols[p.AmountCol])
	case amountSplit:
		return parseSplitAmount(row, cols[p.DebitCol], cols[p.CreditCol])
	}

	return decimal.Zero, false, nil
}

// parseSingleAmount handles a single signed amount column. The sign is kept.
func parseSingleAmount(row []string, idx int) (decimal.Decimal, bool, error) {
	s := cellValue(row, idx)
	if s == "" {
		return decimal.Zero, false, nil
	}

	d, err := money.Parse(s)
	if err != nil {
		return decimal.Zero, false, err
	}

	return d, !d.IsZero(), nil
}

// parseSplitAmount handles separate debit/credit columns. Whichever side
// is filled gives the amount, as a positive value.
func parseSplitAmount(row []string, debitIdx, creditIdx int) (decimal.Decimal, bool, error) {
	for _, idx := range []int{debitIdx, creditIdx} {
		s := cellValue(row, idx)
		if s == "" {
			continue
		}

		d, err := money.Parse(s)
		if err != nil {
			return decimal.Zero, false, err
		}

		if !d.IsZero() {
			return d.Abs(), true, nil
		}
	}

	return decimal.Zero, false, nil
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
