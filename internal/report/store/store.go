package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/dentalbudget/internal/apperr"
	"github.com/MrJamesThe3rd/dentalbudget/internal/category"
	"github.com/MrJamesThe3rd/dentalbudget/internal/fiscal"
	"github.com/MrJamesThe3rd/dentalbudget/internal/practice"
	"github.com/MrJamesThe3rd/dentalbudget/internal/report"
)

// Store runs the read-only reporting queries.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetPractice(ctx context.Context, id int64) (*practice.Practice, error) {
	var (
		p      practice.Practice
		status string
	)

	query := `SELECT id, name, location, status FROM practices WHERE id = $1`

	err := s.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Location, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Practice with id %d not found", id)
		}

		return nil, fmt.Errorf("getting practice: %w", err)
	}

	p.Status = practice.Status(status)

	return &p, nil
}

func (s *Store) GetPeriod(ctx context.Context, id int64) (*fiscal.BudgetPeriod, error) {
	var (
		p      fiscal.BudgetPeriod
		status string
	)

	query := `SELECT id, fiscal_year_id, period_month, period_date, status FROM budget_periods WHERE id = $1`

	err := s.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.FiscalYearID, &p.PeriodMonth, &p.PeriodDate, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Budget period with id %d not found", id)
		}

		return nil, fmt.Errorf("getting budget period: %w", err)
	}

	p.Status = fiscal.PeriodStatus(status)

	return &p, nil
}

func (s *Store) ListBudgetRows(ctx context.Context, practiceID, periodID int64) ([]report.BudgetRow, error) {
	query := `
		SELECT l.id, c.id, c.code, c.name, c.category_type, l.budget_amount
		FROM budget_lines l
		JOIN account_categories c ON c.id = l.category_id
		WHERE l.practice_id = $1 AND l.budget_period_id = $2
		ORDER BY c.sort_order ASC, l.id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, practiceID, periodID)
	if err != nil {
		return nil, fmt.Errorf("querying budget rows: %w", err)
	}
	defer rows.Close()

	result := make([]report.BudgetRow, 0)

	for rows.Next() {
		var (
			r       report.BudgetRow
			catType string
		)

		if err := rows.Scan(&r.LineID, &r.CategoryID, &r.CategoryCode, &r.CategoryName, &catType, &r.Budget); err != nil {
			return nil, fmt.Errorf("scanning budget row: %w", err)
		}

		r.CategoryType = category.Type(catType)
		result = append(result, r)
	}

	return result, rows.Err()
}

func (s *Store) ListActuals(ctx context.Context, practiceID int64, from, to time.Time) ([]report.ActualRow, error) {
	query := `
		SELECT id, category_id, amount
		FROM actuals
		WHERE practice_id = $1 AND period_date >= $2 AND period_date < $3
		ORDER BY id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, practiceID, from, to)
	if err != nil {
		return nil, fmt.Errorf("querying actuals: %w", err)
	}
	defer rows.Close()

	result := make([]report.ActualRow, 0)

	for rows.Next() {
		var a report.ActualRow
		if err := rows.Scan(&a.ID, &a.CategoryID, &a.Amount); err != nil {
			return nil, fmt.Errorf("scanning actual: %w", err)
		}

		result = append(result, a)
	}

	return result, rows.Err()
}

func (s *Store) ListPeriodsWithin(ctx context.Context, start, end time.Time) ([]*fiscal.BudgetPeriod, error) {
	query := `
		SELECT id, fiscal_year_id, period_month, period_date, status
		FROM budget_periods
		WHERE period_date >= $1
		  AND (period_date + INTERVAL '1 month' - INTERVAL '1 day')::date <= $2
		ORDER BY period_date ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying budget periods: %w", err)
	}
	defer rows.Close()

	periods := make([]*fiscal.BudgetPeriod, 0)

	for rows.Next() {
		var (
			p      fiscal.BudgetPeriod
			status string
		)

		if err := rows.Scan(&p.ID, &p.FiscalYearID, &p.PeriodMonth, &p.PeriodDate, &status); err != nil {
			return nil, fmt.Errorf("scanning budget period: %w", err)
		}

		p.Status = fiscal.PeriodStatus(status)
		periods = append(periods, &p)
	}

	return periods, rows.Err()
}

// SumActualsByCategory counts an actual once even when period windows overlap.
func (s *Store) SumActualsByCategory(ctx context.Context, practiceID int64, periodIDs []int64) ([]report.CategoryTotal, error) {
	query := `
		SELECT c.id, c.code, c.name, c.category_type, COALESCE(SUM(a.amount), 0)
		FROM account_categories c
		LEFT JOIN actuals a
		  ON a.category_id = c.id
		 AND a.practice_id = $1
		 AND EXISTS (
			SELECT 1 FROM budget_periods bp
			WHERE bp.id = ANY($2)
			  AND a.period_date >= bp.period_date
			  AND a.period_date < bp.period_date + INTERVAL '1 month'
		 )
		GROUP BY c.id, c.code, c.name, c.category_type, c.sort_order
		ORDER BY c.sort_order ASC, c.code ASC
	`

	rows, err := s.db.QueryContext(ctx, query, practiceID, periodIDs)
	if err != nil {
		return nil, fmt.Errorf("summing actuals: %w", err)
	}
	defer rows.Close()

	totals := make([]report.CategoryTotal, 0)

	for rows.Next() {
		var (
			t       report.CategoryTotal
			catType string
		)

		if err := rows.Scan(&t.CategoryID, &t.Code, &t.Name, &catType, &t.Amount); err != nil {
			return nil, fmt.Errorf("scanning category total: %w", err)
		}

		t.Type = category.Type(catType)
		totals = append(totals, t)
	}

	return totals, rows.Err()
}
