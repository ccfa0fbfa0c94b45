package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/dentalbudget/internal/apperr"
	"github.com/MrJamesThe3rd/dentalbudget/internal/audit"
	"github.com/MrJamesThe3rd/dentalbudget/internal/budget"
	"github.com/MrJamesThe3rd/dentalbudget/internal/database"
)

const (
	linesTable   = "budget_lines"
	actualsTable = "actuals"
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

const lineColumns = `
	l.id, l.practice_id, l.budget_period_id, l.category_id, l.month,
	l.budget_amount, l.actual_amount, l.variance, l.notes, l.created_at, l.updated_at
`

func scanLine(s scanner) (*budget.Line, error) {
	var (
		l     budget.Line
		notes sql.NullString
	)

	err := s.Scan(
		&l.ID, &l.PracticeID, &l.BudgetPeriodID, &l.CategoryID, &l.Month,
		&l.BudgetAmount, &l.ActualAmount, &l.Variance, &notes, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if notes.Valid {
		l.Notes = &notes.String
	}

	return &l, nil
}

// referenceError maps constraint failures on insert or update.
func referenceError(err error) error {
	if constraint, ok := database.IsForeignKeyViolation(err); ok {
		return apperr.Wrap(apperr.KindValidation, err, "Referenced record does not exist (%s)", constraint)
	}

	if constraint, ok := database.IsCheckViolation(err); ok {
		return apperr.Wrap(apperr.KindValidation, err, "Value violates constraint %s", constraint)
	}

	return nil
}

func insertLine(ctx context.Context, tx *sql.Tx, l *budget.Line) error {
	query := `
		INSERT INTO budget_lines (practice_id, budget_period_id, category_id, month,
			budget_amount, actual_amount, variance, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := tx.QueryRowContext(ctx, query,
		l.PracticeID, l.BudgetPeriodID, l.CategoryID, l.Month,
		l.BudgetAmount, l.ActualAmount, l.Variance, l.Notes,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if mapped := referenceError(err); mapped != nil {
			return mapped
		}

		return fmt.Errorf("creating budget line: %w", err)
	}

	return nil
}

func updateLine(ctx context.Context, tx *sql.Tx, l *budget.Line) error {
	query := `
		UPDATE budget_lines
		SET budget_amount = $1, actual_amount = $2, variance = $3, notes = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := tx.QueryRowContext(ctx, query, l.BudgetAmount, l.ActualAmount, l.Variance, l.Notes, l.ID).
		Scan(&l.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("Budget line with id %d not found", l.ID)
		}

		if mapped := referenceError(err); mapped != nil {
			return mapped
		}

		return fmt.Errorf("updating budget line: %w", err)
	}

	return nil
}

func (s *Store) CreateLine(ctx context.Context, l *budget.Line) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := insertLine(ctx, tx, l); err != nil {
			return err
		}

		return s.audit.Record(ctx, tx, audit.NewEntry(ctx, audit.ActionCreate, linesTable, l.ID, l.Snapshot()))
	})
}

func (s *Store) GetLine(ctx context.Context, id int64) (*budget.Line, error) {
	query := `SELECT ` + lineColumns + ` FROM budget_lines l WHERE l.id = $1`

	l, err := scanLine(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Budget line with id %d not found", id)
		}

		return nil, fmt.Errorf("getting budget line: %w", err)
	}

	return l, nil
}

func (s *Store) ListLines(ctx context.Context, filter budget.LineFilter) ([]*budget.Line, error) {
	query := `
		SELECT ` + lineColumns + `
		FROM budget_lines l
		JOIN budget_periods bp ON bp.id = l.budget_period_id
		WHERE 1 = 1`

	var args []any

	argIdx := 1

	if filter.PracticeID != nil {
		query += fmt.Sprintf(" AND l.practice_id = $%d", argIdx)

		args = append(args, *filter.PracticeID)
		argIdx++
	}

	if filter.FiscalYearID != nil {
		query += fmt.Sprintf(" AND bp.fiscal_year_id = $%d", argIdx)

		args = append(args, *filter.FiscalYearID)
		argIdx++
	}

	if filter.BudgetPeriodID != nil {
		query += fmt.Sprintf(" AND l.budget_period_id = $%d", argIdx)

		args = append(args, *filter.BudgetPeriodID)
		argIdx++
	}

	if filter.CategoryID != nil {
		query += fmt.Sprintf(" AND l.category_id = $%d", argIdx)

		args = append(args, *filter.CategoryID)
		argIdx++
	}

	query += fmt.Sprintf(" ORDER BY l.id ASC OFFSET $%d LIMIT $%d", argIdx, argIdx+1)

	args = append(args, filter.Offset, filter.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing budget lines: %w", err)
	}
	defer rows.Close()

	lines := make([]*budget.Line, 0)

	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning budget line: %w", err)
		}

		lines = append(lines, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating budget lines: %w", err)
	}

	return lines, nil
}

// UpdateLines writes every line and its audit diff in one transaction.
// before[i] is the stored state of lines[i].
func (s *Store) UpdateLines(ctx context.Context, lines []*budget.Line, before []*budget.Line) error {
	if len(lines) != len(before) {
		return fmt.Errorf("updating budget lines: %d lines but %d previous states", len(lines), len(before))
	}

	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		for i, l := range lines {
			if err := updateLine(ctx, tx, l); err != nil {
				return err
			}

			changes := audit.Diff(before[i].Snapshot(), l.Snapshot())
			if len(changes) == 0 {
				continue
			}

			if err := s.audit.Record(ctx, tx, audit.NewEntry(ctx, audit.ActionUpdate, linesTable, l.ID, changes)); err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *Store) DeleteLine(ctx context.Context, id int64) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		query := `DELETE FROM budget_lines l WHERE l.id = $1 RETURNING ` + lineColumns

		l, err := scanLine(tx.QueryRowContext(ctx, query, id))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperr.NotFound("Budget line with id %d not found", id)
			}

			return fmt.Errorf("deleting budget line: %w", err)
		}

		return s.audit.Record(ctx, tx, audit.NewEntry(ctx, audit.ActionDelete, linesTable, id, l.Snapshot()))
	})
}

func (s *Store) UpsertLines(ctx context.Context, lines []*budget.Line) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		query := `
			SELECT ` + lineColumns + `
			FROM budget_lines l
			WHERE l.practice_id = $1 AND l.budget_period_id = $2 AND l.category_id = $3
			ORDER BY l.id ASC
			LIMIT 1
			FOR UPDATE
		`

		for _, l := range lines {
			existing, err := scanLine(tx.QueryRowContext(ctx, query, l.PracticeID, l.BudgetPeriodID, l.CategoryID))

			switch {
			case errors.Is(err, sql.ErrNoRows):
				l.Recompute()

				if err := insertLine(ctx, tx, l); err != nil {
					return err
				}
			case err != nil:
				return fmt.Errorf("finding budget line: %w", err)
			default:
				budgetAmount := l.BudgetAmount
				*l = *existing
				l.BudgetAmount = budgetAmount
				l.Recompute()

				if err := updateLine(ctx, tx, l); err != nil {
					return err
				}
			}

			if err := s.audit.Record(ctx, tx, audit.NewEntry(ctx, audit.ActionImport, linesTable, l.ID, l.Snapshot())); err != nil {
				return err
			}
		}

		return nil
	})
}

const actualColumns = `id, practice_id, category_id, period_date, amount, source, imported_at`

func scanActual(s scanner) (*budget.Actual, error) {
	var (
		a      budget.Actual
		source string
	)

	if err := s.Scan(&a.ID, &a.PracticeID, &a.CategoryID, &a.PeriodDate, &a.Amount, &source, &a.ImportedAt); err != nil {
		return nil, err
	}

	a.Source = budget.Source(source)

	return &a, nil
}

// CreateActuals inserts a batch in one transaction. A non-empty batchID marks
// the audit rows as an import.
func (s *Store) CreateActuals(ctx context.Context, actuals []*budget.Actual, batchID string) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		query := `
			INSERT INTO actuals (practice_id, category_id, period_date, amount, source, imported_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`

		action := audit.ActionCreate
		if batchID != "" {
			action = audit.ActionImport
		}

		for _, a := range actuals {
			err := tx.QueryRowContext(ctx, query,
				a.PracticeID, a.CategoryID, a.PeriodDate, a.Amount, a.Source, a.ImportedAt,
			).Scan(&a.ID)
			if err != nil {
				if mapped := referenceError(err); mapped != nil {
					return mapped
				}

				return fmt.Errorf("creating actual: %w", err)
			}

			changes := a.Snapshot()
			if batchID != "" {
				changes["batch_id"] = batchID
			}

			if err := s.audit.Record(ctx, tx, audit.NewEntry(ctx, action, actualsTable, a.ID, changes)); err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *Store) GetActual(ctx context.Context, id int64) (*budget.Actual, error) {
	query := `SELECT ` + actualColumns + ` FROM actuals WHERE id = $1`

	a, err := scanActual(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Actual with id %d not found", id)
		}

		return nil, fmt.Errorf("getting actual: %w", err)
	}

	return a, nil
}

func (s *Store) ListActuals(ctx context.Context, filter budget.ActualFilter) ([]*budget.Actual, error) {
	query := `SELECT ` + actualColumns + ` FROM actuals WHERE 1 = 1`

	var args []any

	argIdx := 1

	if filter.PracticeID != nil {
		query += fmt.Sprintf(" AND practice_id = $%d", argIdx)

		args = append(args, *filter.PracticeID)
		argIdx++
	}

	if filter.CategoryID != nil {
		query += fmt.Sprintf(" AND category_id = $%d", argIdx)

		args = append(args, *filter.CategoryID)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND period_date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND period_date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += fmt.Sprintf(" ORDER BY period_date ASC, id ASC OFFSET $%d LIMIT $%d", argIdx, argIdx+1)

	args = append(args, filter.Offset, filter.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing actuals: %w", err)
	}
	defer rows.Close()

	actuals := make([]*budget.Actual, 0)

	for rows.Next() {
		a, err := scanActual(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning actual: %w", err)
		}

		actuals = append(actuals, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating actuals: %w", err)
	}

	return actuals, nil
}

func (s *Store) DeleteActual(ctx context.Context, id int64) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		query := `DELETE FROM actuals WHERE id = $1 RETURNING ` + actualColumns

		a, err := scanActual(tx.QueryRowContext(ctx, query, id))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperr.NotFound("Actual with id %d not found", id)
			}

			return fmt.Errorf("deleting actual: %w", err)
		}

		return s.audit.Record(ctx, tx, audit.NewEntry(ctx, audit.ActionDelete, actualsTable, id, a.Snapshot()))
	})
}
