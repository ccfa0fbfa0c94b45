package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/dentalbudget/internal/money"
	"github.com/MrJamesThe3rd/dentalbudget/internal/report"
)

const (
	varianceSheet = "Variance"
	summarySheet  = "Summary"
	// Built-in "#,##0.00" number format.
	amountFormat = 4
)

// Item links an exported variance report to the workbook written for it.
type Item struct {
	Report   *report.Variance
	FilePath string
}

type Reporter interface {
	Variance(ctx context.Context, practiceID, periodID int64) (*report.Variance, error)
}

// Service renders variance reports as xlsx workbooks.
type Service struct {
	reports Reporter
}

func NewService(reports Reporter) *Service {
	return &Service{reports: reports}
}

// Export writes one workbook per period into outputDir and returns them in
// the order of periodIDs.
func (s *Service) Export(ctx context.Context, practiceID int64, periodIDs []int64, outputDir string) ([]Item, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	items := make([]Item, 0, len(periodIDs))

	for _, periodID := range periodIDs {
		r, err := s.reports.Variance(ctx, practiceID, periodID)
		if err != nil {
			return nil, err
		}

		path := filepath.Join(outputDir, FileName(r))

		if err := writeFile(path, r); err != nil {
			return nil, fmt.Errorf("writing workbook for period %d: %w", periodID, err)
		}

		items = append(items, Item{Report: r, FilePath: path})
	}

	return items, nil
}

func writeFile(path string, r *report.Variance) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	return WriteWorkbook(f, r)
}

// WriteWorkbook renders r as an xlsx workbook with a line sheet and a
// summary sheet.
func WriteWorkbook(w io.Writer, r *report.Variance) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", varianceSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	amount, err := f.NewStyle(&excelize.Style{NumFmt: amountFormat})
	if err != nil {
		return fmt.Errorf("creating amount style: %w", err)
	}

	header := []any{"Code", "Category", "Type", "Budget", "Actual", "Variance"}
	if err := f.SetSheetRow(varianceSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	if err := f.SetCellStyle(varianceSheet, "A1", "F1", bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	row := 2

	for _, li := range r.LineItems {
		values := []any{
			li.CategoryCode,
			li.CategoryName,
			string(li.CategoryType),
			li.Budget.InexactFloat64(),
			li.Actual.InexactFloat64(),
			li.Variance.InexactFloat64(),
		}

		if err := setRow(f, varianceSheet, row, values); err != nil {
			return err
		}

		row++
	}

	totals := []any{"", "Total", "", r.TotalBudget.InexactFloat64(), r.TotalActual.InexactFloat64(), r.TotalVariance.InexactFloat64()}
	if err := setRow(f, varianceSheet, row, totals); err != nil {
		return err
	}

	last := fmt.Sprintf("F%d", row)
	if err := f.SetCellStyle(varianceSheet, "D2", last, amount); err != nil {
		return fmt.Errorf("styling amounts: %w", err)
	}

	if err := f.SetCellStyle(varianceSheet, fmt.Sprintf("A%d", row), last, bold); err != nil {
		return fmt.Errorf("styling totals: %w", err)
	}

	if err := f.SetColWidth(varianceSheet, "B", "B", 32); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}

	if err := writeSummarySheet(f, r); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	return nil
}

func writeSummarySheet(f *excelize.File, r *report.Variance) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}

	rows := [][]any{
		{"Practice", r.Practice.Name},
		{"Location", r.Practice.Location},
		{"Period", r.Period.PeriodDate.Format("2006-01")},
		{"Total budget", money.Format(r.TotalBudget)},
		{"Total actual", money.Format(r.TotalActual)},
		{"Total variance", money.Format(r.TotalVariance)},
		{"Variance %", fmt.Sprintf("%.1f", r.VariancePercentage)},
	}

	for _, w := range r.Warnings {
		rows = append(rows, []any{"Warning", w})
	}

	for i, values := range rows {
		if err := setRow(f, summarySheet, i+1, values); err != nil {
			return err
		}
	}

	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("resolving cell: %w", err)
	}

	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing row %d of %s: %w", row, sheet, err)
	}

	return nil
}

// FileName builds the workbook name, e.g. 20260101_Austin_PC_variance.xlsx.
func FileName(r *report.Variance) string {
	safeName := strings.Map(func(c rune) rune {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == '_' {
			return c
		}

		return '_'
	}, r.Practice.Name)

	return fmt.Sprintf("%s_%s_variance.xlsx", r.Period.PeriodDate.Format("20060102"), safeName)
}

// GenerateSummary lists the exported reports, one line each.
func (s *Service) GenerateSummary(items []Item) string {
	var sb strings.Builder

	for _, item := range items {
		r := item.Report

		fileStatus := "not written"
		if item.FilePath != "" {
			fileStatus = filepath.Base(item.FilePath)
		}

		sb.WriteString(fmt.Sprintf("* %s | %s | budget %s | actual %s | variance %s (%.1f%%) | %s\n",
			r.Period.PeriodDate.Format("2006-01"),
			r.Practice.Name,
			money.Format(r.TotalBudget),
			money.Format(r.TotalActual),
			money.Format(r.TotalVariance),
			r.VariancePercentage,
			fileStatus,
		))

		for _, w := range r.Warnings {
			sb.WriteString("  ! " + w + "\n")
		}
	}

	return sb.String()
}
