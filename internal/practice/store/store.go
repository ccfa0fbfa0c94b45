package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/dentalbudget/internal/apperr"
	"github.com/MrJamesThe3rd/dentalbudget/internal/audit"
	"github.com/MrJamesThe3rd/dentalbudget/internal/database"
	"github.com/MrJamesThe3rd/dentalbudget/internal/practice"
)

const table = "practices"

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

func scanPractice(s scanner) (*practice.Practice, error) {
	var (
		p      practice.Practice
		status string
	)

	if err := s.Scan(&p.ID, &p.Name, &p.Location, &status); err != nil {
		return nil, err
	}

	p.Status = practice.Status(status)

	return &p, nil
}

func (s *Store) CreatePractice(ctx context.Context, p *practice.Practice) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		query := `
			INSERT INTO practices (name, location, status)
			VALUES ($1, $2, $3)
			RETURNING id
		`

		err := tx.QueryRowContext(ctx, query, p.Name, p.Location, p.Status).Scan(&p.ID)
		if err != nil {
			if _, ok := database.IsUniqueViolation(err); ok {
				return apperr.Wrap(apperr.KindConflict, err, "Practice with name '%s' already exists", p.Name)
			}

			return fmt.Errorf("creating practice: %w", err)
		}

		return s.audit.Record(ctx, tx, audit.NewEntry(ctx, audit.ActionCreate, table, p.ID, p.Snapshot()))
	})
}

func (s *Store) GetPractice(ctx context.Context, id int64) (*practice.Practice, error) {
	query := `SELECT id, name, location, status FROM practices WHERE id = $1`

	p, err := scanPractice(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Practice with id %d not found", id)
		}

		return nil, fmt.Errorf("getting practice: %w", err)
	}

	return p, nil
}

func (s *Store) GetPracticeByName(ctx context.Context, name string) (*practice.Practice, error) {
	query := `SELECT id, name, location, status FROM practices WHERE name = $1`

	p, err := scanPractice(s.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Practice with name '%s' not found", name)
		}

		return nil, fmt.Errorf("getting practice by name: %w", err)
	}

	return p, nil
}

func (s *Store) ListPractices(ctx context.Context, offset, limit int) ([]*practice.Practice, error) {
	query := `
		SELECT id, name, location, status
		FROM practices
		ORDER BY id ASC
		OFFSET $1 LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("listing practices: %w", err)
	}
	defer rows.Close()

	practices := make([]*practice.Practice, 0)

	for rows.Next() {
		p, err := scanPractice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning practice: %w", err)
		}

		practices = append(practices, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating practices: %w", err)
	}

	return practices, nil
}

func (s *Store) UpdatePractice(ctx context.Context, p *practice.Practice, before *practice.Practice) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		query := `
			UPDATE practices
			SET name = $1, location = $2, status = $3
			WHERE id = $4
		`

		res, err := tx.ExecContext(ctx, query, p.Name, p.Location, p.Status, p.ID)
		if err != nil {
			if _, ok := database.IsUniqueViolation(err); ok {
				return apperr.Wrap(apperr.KindConflict, err, "Practice with name '%s' already exists", p.Name)
			}

			return fmt.Errorf("updating practice: %w", err)
		}

		if n, _ := res.RowsAffected(); n == 0 {
			return apperr.NotFound("Practice with id %d not found", p.ID)
		}

		changes := audit.Diff(before.Snapshot(), p.Snapshot())

		return s.audit.Record(ctx, tx, audit.NewEntry(ctx, audit.ActionUpdate, table, p.ID, changes))
	})
}

func (s *Store) DeletePractice(ctx context.Context, id int64) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		query := `DELETE FROM practices WHERE id = $1 RETURNING id, name, location, status`

		p, err := scanPractice(tx.QueryRowContext(ctx, query, id))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperr.NotFound("Practice with id %d not found", id)
			}

			if _, ok := database.IsForeignKeyViolation(err); ok {
				return apperr.Wrap(apperr.KindConflict, err, "Practice with id %d is still referenced by other records", id)
			}

			return fmt.Errorf("deleting practice: %w", err)
		}

		return s.audit.Record(ctx, tx, audit.NewEntry(ctx, audit.ActionDelete, table, id, p.Snapshot()))
	})
}
