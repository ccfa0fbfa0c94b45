package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/dentalbudget/internal/apperr"
	"github.com/MrJamesThe3rd/dentalbudget/internal/audit"
	"github.com/MrJamesThe3rd/dentalbudget/internal/database"
	"github.com/MrJamesThe3rd/dentalbudget/internal/fiscal"
)

const (
	fiscalYearsTable   = "fiscal_years"
	budgetPeriodsTable = "budget_periods"
)

type Store struct {
	db    *sql.DB
	audit audit.Recorder
}

func New(db *sql.DB, recorder audit.Recorder) *Store {
	return &Store{db: db, audit: recorder}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFiscalYear(s scanner) (*fiscal.FiscalYear, error) {
	var fy fiscal.FiscalYear

	if err := s.Scan(&fy.ID, &fy.PracticeID, &fy.Year, &fy.StartDate, &fy.EndDate); err != nil {
		return nil, err
	}

	return &fy, nil
}

func scanPeriod(s scanner) (*fiscal.BudgetPeriod, error) {
	var (
		p      fiscal.BudgetPeriod
		status string
	)

	if err := s.Scan(&p.ID, &p.FiscalYearID, &p.PeriodMonth, &p.PeriodDate, &status); err != nil {
		return nil, err
	}

	p.Status = fiscal.PeriodStatus(status)

	return &p, nil
}

func (s *Store) CreateFiscalYear(ctx context.Context, fy *fiscal.FiscalYear) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		query := `
			INSERT INTO fiscal_years (practice_id, year, start_date, end_date)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`

		err := tx.QueryRowContext(ctx, query, fy.PracticeID, fy.Year, fy.StartDate, fy.EndDate).Scan(&fy.ID)
		if err != nil {
			if _, ok := database.IsForeignKeyViolation(err); ok {
				return apperr.Wrap(apperr.KindValidation, err, "Practice with id %d does not exist", fy.PracticeID)
			}

			return fmt.Errorf("creating fiscal year: %w", err)
		}

		return s.audit.Record(ctx, tx, audit.NewEntry(ctx, audit.ActionCreate, fiscalYearsTable, fy.ID, fy.Snapshot()))
	})
}

const selectFiscalYear = `SELECT id, practice_id, year, start_date, end_date FROM fiscal_years`

func (s *Store) GetFiscalYear(ctx context.Context, id int64) (*fiscal.FiscalYear, error) {
	fy, err := scanFiscalYear(s.db.QueryRowContext(ctx, selectFiscalYear+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Fiscal year with id %d not found", id)
		}

		return nil, fmt.Errorf("getting fiscal year: %w", err)
	}

	return fy, nil
}

func (s *Store) FindFiscalYear(ctx context.Context, practiceID int64, year int) (*fiscal.FiscalYear, error) {
	query := selectFiscalYear + ` WHERE practice_id = $1 AND year = $2 ORDER BY id ASC LIMIT 1`

	fy, err := scanFiscalYear(s.db.QueryRowContext(ctx, query, practiceID, year))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Fiscal year %d not found for practice %d", year, practiceID)
		}

		return nil, fmt.Errorf("finding fiscal year: %w", err)
	}

	return fy, nil
}

func (s *Store) ListFiscalYears(ctx context.Context, practiceID *int64) ([]*fiscal.FiscalYear, error) {
	query := selectFiscalYear

	var args []any

	if practiceID != nil {
		query += ` WHERE practice_id = $1`

		args = append(args, *practiceID)
	}

	query += ` ORDER BY year ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing fiscal years: %w", err)
	}
	defer rows.Close()

	years := make([]*fiscal.FiscalYear, 0)

	for rows.Next() {
		fy, err := scanFiscalYear(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning fiscal year: %w", err)
		}

		years = append(years, fy)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating fiscal years: %w", err)
	}

	return years, nil
}

func (s *Store) DeleteFiscalYear(ctx context.Context, id int64) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		query := `DELETE FROM fiscal_years WHERE id = $1 RETURNING id, practice_id, year, start_date, end_date`

		fy, err := scanFiscalYear(tx.QueryRowContext(ctx, query, id))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperr.NotFound("Fiscal year with id %d not found", id)
			}

			if _, ok := database.IsForeignKeyViolation(err); ok {
				return apperr.Wrap(apperr.KindConflict, err, "Fiscal year with id %d still has budget periods", id)
			}

			return fmt.Errorf("deleting fiscal year: %w", err)
		}

		return s.audit.Record(ctx, tx, audit.NewEntry(ctx, audit.ActionDelete, fiscalYearsTable, id, fy.Snapshot()))
	})
}

// CreatePeriods inserts all periods in one transaction.
func (s *Store) CreatePeriods(ctx context.Context, periods []*fiscal.BudgetPeriod) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		query := `
			INSERT INTO budget_periods (fiscal_year_id, period_month, period_date, status)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`

		for _, p := range periods {
			err := tx.QueryRowContext(ctx, query, p.FiscalYearID, p.PeriodMonth, p.PeriodDate, p.Status).Scan(&p.ID)
			if err != nil {
				if _, ok := database.IsForeignKeyViolation(err); ok {
					return apperr.Wrap(apperr.KindValidation, err, "Fiscal year with id %d does not exist", p.FiscalYearID)
				}

				return fmt.Errorf("creating budget period: %w", err)
			}

			entry := audit.NewEntry(ctx, audit.ActionCreate, budgetPeriodsTable, p.ID, p.Snapshot())
			if err := s.audit.Record(ctx, tx, entry); err != nil {
				return err
			}
		}

		return nil
	})
}

const selectPeriod = `SELECT id, fiscal_year_id, period_month, period_date, status FROM budget_periods`

func (s *Store) GetPeriod(ctx context.Context, id int64) (*fiscal.BudgetPeriod, error) {
	p, err := scanPeriod(s.db.QueryRowContext(ctx, selectPeriod+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Budget period with id %d not found", id)
		}

		return nil, fmt.Errorf("getting budget period: %w", err)
	}

	return p, nil
}

func (s *Store) ListPeriods(ctx context.Context, fiscalYearID *int64) ([]*fiscal.BudgetPeriod, error) {
	query := selectPeriod

	var args []any

	if fiscalYearID != nil {
		query += ` WHERE fiscal_year_id = $1`

		args = append(args, *fiscalYearID)
	}

	query += ` ORDER BY period_date ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing budget periods: %w", err)
	}
	defer rows.Close()

	periods := make([]*fiscal.BudgetPeriod, 0)

	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning budget period: %w", err)
		}

		periods = append(periods, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating budget periods: %w", err)
	}

	return periods, nil
}

func (s *Store) UpdatePeriodStatus(ctx context.Context, p *fiscal.BudgetPeriod, before fiscal.PeriodStatus) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE budget_periods SET status = $1 WHERE id = $2`, p.Status, p.ID)
		if err != nil {
			return fmt.Errorf("updating budget period status: %w", err)
		}

		if n, _ := res.RowsAffected(); n == 0 {
			return apperr.NotFound("Budget period with id %d not found", p.ID)
		}

		changes := map[string]any{"status": audit.Change{Old: string(before), New: string(p.Status)}}

		return s.audit.Record(ctx, tx, audit.NewEntry(ctx, audit.ActionUpdate, budgetPeriodsTable, p.ID, changes))
	})
}
