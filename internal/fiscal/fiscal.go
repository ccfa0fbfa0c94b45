package fiscal

import (
	"fmt"
	"time"
)

// FiscalYear is a practice's budgeting year.
type FiscalYear struct {
	ID         int64
	PracticeID int64
	Year       int
	StartDate  time.Time
	EndDate    time.Time
}

func (fy *FiscalYear) Snapshot() map[string]any {
	return map[string]any{
		"practice_id": fy.PracticeID,
		"year":        fy.Year,
		"start_date":  fy.StartDate.Format(time.DateOnly),
		"end_date":    fy.EndDate.Format(time.DateOnly),
	}
}

// PeriodStatus is the lifecycle state of a budget period.
type PeriodStatus string

const (
	PeriodDraft  PeriodStatus = "draft"
	PeriodActive PeriodStatus = "active"
	PeriodLocked PeriodStatus = "locked"
)

func ParsePeriodStatus(s string) (PeriodStatus, error) {
	switch st := PeriodStatus(s); st {
	case PeriodDraft, PeriodActive, PeriodLocked:
		return st, nil
	}

	return "", fmt.Errorf("status must be one of [draft active locked], got %q", s)
}

func (s *PeriodStatus) UnmarshalText(b []byte) error {
	st, err := ParsePeriodStatus(string(b))
	if err != nil {
		return err
	}

	*s = st

	return nil
}

// BudgetPeriod is one month of a fiscal year. It covers the dates from
// PeriodDate up to one month later, exclusive.
type BudgetPeriod struct {
	ID           int64
	FiscalYearID int64
	PeriodMonth  int
	PeriodDate   time.Time
	Status       PeriodStatus
}

// End returns the last day inside the period window.
func (p *BudgetPeriod) End() time.Time {
	return p.PeriodDate.AddDate(0, 1, -1)
}

// Contains reports whether d falls inside the period window.
func (p *BudgetPeriod) Contains(d time.Time) bool {
	return !d.Before(p.PeriodDate) && d.Before(p.PeriodDate.AddDate(0, 1, 0))
}

func (p *BudgetPeriod) Snapshot() map[string]any {
	return map[string]any{
		"fiscal_year_id": p.FiscalYearID,
		"period_month":   p.PeriodMonth,
		"period_date":    p.PeriodDate.Format(time.DateOnly),
		"status":         string(p.Status),
	}
}
