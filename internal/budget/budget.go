package budget

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/dentalbudget/internal/money"
)

// Line is the budgeted and actual amount of one category in one period.
// Variance is derived and always equals ActualAmount - BudgetAmount.
type Line struct {
	ID             int64
	PracticeID     int64
	BudgetPeriodID int64
	CategoryID     int64
	Month          int
	BudgetAmount   decimal.Decimal
	ActualAmount   decimal.Decimal
	Variance       decimal.Decimal
	Notes          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Recompute refreshes Variance from the two amounts.
func (l *Line) Recompute() {
	l.Variance = l.ActualAmount.Sub(l.BudgetAmount)
}

func (l *Line) Snapshot() map[string]any {
	snap := map[string]any{
		"practice_id":      l.PracticeID,
		"budget_period_id": l.BudgetPeriodID,
		"category_id":      l.CategoryID,
		"month":            l.Month,
		"budget_amount":    money.Format(l.BudgetAmount),
		"actual_amount":    money.Format(l.ActualAmount),
		"variance":         money.Format(l.Variance),
		"notes":            nil,
	}

	if l.Notes != nil {
		snap["notes"] = *l.Notes
	}

	return snap
}

type LineFilter struct {
	PracticeID     *int64
	FiscalYearID   *int64
	BudgetPeriodID *int64
	CategoryID     *int64
	Offset         int
	Limit          int
}

// Source records where an actual amount came from.
type Source string

const (
	SourceManual     Source = "manual"
	SourceQuickBooks Source = "quickbooks"
	SourceXero       Source = "xero"
	SourceImport     Source = "import"
)

func ParseSource(s string) (Source, error) {
	switch src := Source(s); src {
	case SourceManual, SourceQuickBooks, SourceXero, SourceImport:
		return src, nil
	}

	return "", fmt.Errorf("source must be one of [manual quickbooks xero import], got %q", s)
}

func (s *Source) UnmarshalText(b []byte) error {
	src, err := ParseSource(string(b))
	if err != nil {
		return err
	}

	*s = src

	return nil
}

// Actual is a booked amount for a category on a date.
type Actual struct {
	ID         int64
	PracticeID int64
	CategoryID int64
	PeriodDate time.Time
	Amount     decimal.Decimal
	Source     Source
	ImportedAt time.Time
}

func (a *Actual) Snapshot() map[string]any {
	return map[string]any{
		"practice_id": a.PracticeID,
		"category_id": a.CategoryID,
		"period_date": a.PeriodDate.Format(time.DateOnly),
		"amount":      money.Format(a.Amount),
		"source":      string(a.Source),
	}
}

type ActualFilter struct {
	PracticeID *int64
	CategoryID *int64
	StartDate  *time.Time
	EndDate    *time.Time
	Offset     int
	Limit      int
}

// ImportRow is one category row of a budget workbook. Months maps a calendar
// month to its budget amount; blank cells are absent.
type ImportRow struct {
	Row    int
	Code   string
	Months map[int]decimal.Decimal
}
