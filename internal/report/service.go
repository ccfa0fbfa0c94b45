package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/dentalbudget/internal/apperr"
	"github.com/MrJamesThe3rd/dentalbudget/internal/category"
	"github.com/MrJamesThe3rd/dentalbudget/internal/fiscal"
	"github.com/MrJamesThe3rd/dentalbudget/internal/practice"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=report
type Repository interface {
	GetPractice(ctx context.Context, id int64) (*practice.Practice, error)
	GetPeriod(ctx context.Context, id int64) (*fiscal.BudgetPeriod, error)
	// ListBudgetRows returns the practice's lines in the period, ordered by
	// category sort order, then line id.
	ListBudgetRows(ctx context.Context, practiceID, periodID int64) ([]BudgetRow, error)
	// ListActuals returns the practice's actuals dated in [from, to), ordered by id.
	ListActuals(ctx context.Context, practiceID int64, from, to time.Time) ([]ActualRow, error)
	// ListPeriodsWithin returns periods whose whole month lies in [start, end].
	ListPeriodsWithin(ctx context.Context, start, end time.Time) ([]*fiscal.BudgetPeriod, error)
	// SumActualsByCategory totals the practice's actuals dated inside any of
	// the periods, for every category. Categories without actuals sum to zero.
	SumActualsByCategory(ctx context.Context, practiceID int64, periodIDs []int64) ([]CategoryTotal, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

var hundred = decimal.NewFromInt(100)

// Variance builds the budget vs actual report of a practice for one period.
// When a category has several actuals in the period the one with the highest
// id is used and the category is listed in Warnings.
func (s *Service) Variance(ctx context.Context, practiceID, periodID int64) (*Variance, error) {
	p, err := s.repo.GetPractice(ctx, practiceID)
	if err != nil {
		return nil, err
	}

	period, err := s.repo.GetPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListBudgetRows(ctx, practiceID, periodID)
	if err != nil {
		return nil, fmt.Errorf("listing budget rows: %w", err)
	}

	actuals, err := s.repo.ListActuals(ctx, practiceID, period.PeriodDate, period.PeriodDate.AddDate(0, 1, 0))
	if err != nil {
		return nil, fmt.Errorf("listing actuals: %w", err)
	}

	byCategory := make(map[int64]decimal.Decimal, len(actuals))
	counts := make(map[int64]int, len(actuals))

	for _, a := range actuals {
		byCategory[a.CategoryID] = a.Amount
		counts[a.CategoryID]++
	}

	report := &Variance{
		Practice:    p,
		Period:      period,
		LineItems:   make([]LineItem, 0, len(rows)),
		TotalBudget: decimal.Zero,
		TotalActual: decimal.Zero,
		Warnings:    []string{},
	}

	warned := make(map[int64]bool)

	for _, row := range rows {
		actual := byCategory[row.CategoryID]

		item := LineItem{
			LineID:       row.LineID,
			CategoryID:   row.CategoryID,
			CategoryCode: row.CategoryCode,
			CategoryName: row.CategoryName,
			CategoryType: row.CategoryType,
			Budget:       row.Budget,
			Actual:       actual,
			Variance:     actual.Sub(row.Budget),
		}
		report.LineItems = append(report.LineItems, item)

		report.TotalBudget = report.TotalBudget.Add(row.Budget)
		report.TotalActual = report.TotalActual.Add(actual)

		if n := counts[row.CategoryID]; n > 1 && !warned[row.CategoryID] {
			warned[row.CategoryID] = true

			slog.Warn("multiple actuals for category in period, using the latest",
				"practice_id", practiceID,
				"period_id", periodID,
				"category", row.CategoryCode,
				"count", n,
			)

			report.Warnings = append(report.Warnings,
				fmt.Sprintf("category %s has %d actuals in the period; the latest was used", row.CategoryCode, n))
		}
	}

	report.TotalVariance = report.TotalActual.Sub(report.TotalBudget)
	report.VariancePercentage = percentage(report.TotalVariance, report.TotalBudget)

	return report, nil
}

// percentage returns part/whole*100, or 0 for a zero whole.
func percentage(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}

	f, _ := part.Div(whole).Mul(hundred).Round(4).Float64()

	return f
}

// ProfitAndLoss totals revenue and expenses of a practice over every budget
// period that lies within [start, end]. Metric categories are listed in
// Categories but left out of the totals.
func (s *Service) ProfitAndLoss(ctx context.Context, practiceID int64, start, end time.Time) (*ProfitAndLoss, error) {
	if end.Before(start) {
		return nil, apperr.Validation("end_date must not be before start_date")
	}

	p, err := s.repo.GetPractice(ctx, practiceID)
	if err != nil {
		return nil, err
	}

	periods, err := s.repo.ListPeriodsWithin(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("listing periods: %w", err)
	}

	if len(periods) == 0 {
		return nil, apperr.NotFound("No budget periods found between %s and %s",
			start.Format(time.DateOnly), end.Format(time.DateOnly))
	}

	ids := make([]int64, 0, len(periods))
	for _, period := range periods {
		ids = append(ids, period.ID)
	}

	totals, err := s.repo.SumActualsByCategory(ctx, practiceID, ids)
	if err != nil {
		return nil, fmt.Errorf("summing actuals: %w", err)
	}

	pl := &ProfitAndLoss{
		Practice:      p,
		StartDate:     start,
		EndDate:       end,
		PeriodIDs:     ids,
		Categories:    totals,
		Revenue:       []CategoryTotal{},
		Expenses:      []CategoryTotal{},
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
	}

	for _, t := range totals {
		switch t.Type {
		case category.TypeRevenue:
			pl.Revenue = append(pl.Revenue, t)
			pl.TotalRevenue = pl.TotalRevenue.Add(t.Amount)
		case category.TypeExpense:
			pl.Expenses = append(pl.Expenses, t)
			pl.TotalExpenses = pl.TotalExpenses.Add(t.Amount)
		}
	}

	pl.NetIncome = pl.TotalRevenue.Sub(pl.TotalExpenses)

	return pl, nil
}
