package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/dentalbudget/internal/apperr"
	"github.com/MrJamesThe3rd/dentalbudget/internal/audit"
	"github.com/MrJamesThe3rd/dentalbudget/internal/category"
	"github.com/MrJamesThe3rd/dentalbudget/internal/database"
)

const table = "account_categories"

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

const selectCategory = `
	SELECT id, code, name, category_type, parent_id, level, sort_order
	FROM account_categories
`

func scanCategory(s scanner) (*category.AccountCategory, error) {
	var (
		c        category.AccountCategory
		catType  string
		parentID sql.NullInt64
	)

	if err := s.Scan(&c.ID, &c.Code, &c.Name, &catType, &parentID, &c.Level, &c.SortOrder); err != nil {
		return nil, err
	}

	c.Type = category.Type(catType)

	if parentID.Valid {
		c.ParentID = &parentID.Int64
	}

	return &c, nil
}

func (s *Store) CreateCategory(ctx context.Context, c *category.AccountCategory) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		query := `
			INSERT INTO account_categories (code, name, category_type, parent_id, level, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`

		err := tx.QueryRowContext(ctx, query, c.Code, c.Name, c.Type, c.ParentID, c.Level, c.SortOrder).Scan(&c.ID)
		if err != nil {
			if _, ok := database.IsUniqueViolation(err); ok {
				return apperr.Wrap(apperr.KindConflict, err, "Category with code '%s' already exists", c.Code)
			}

			if _, ok := database.IsForeignKeyViolation(err); ok {
				return apperr.Wrap(apperr.KindValidation, err, "Parent category does not exist")
			}

			if constraint, ok := database.IsCheckViolation(err); ok {
				return apperr.Wrap(apperr.KindValidation, err, "Category violates constraint %s", constraint)
			}

			return fmt.Errorf("creating category: %w", err)
		}

		return s.audit.Record(ctx, tx, audit.NewEntry(ctx, audit.ActionCreate, table, c.ID, c.Snapshot()))
	})
}

func (s *Store) GetCategory(ctx context.Context, id int64) (*category.AccountCategory, error) {
	c, err := scanCategory(s.db.QueryRowContext(ctx, selectCategory+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Category with id %d not found", id)
		}

		return nil, fmt.Errorf("getting category: %w", err)
	}

	return c, nil
}

func (s *Store) GetCategoryByCode(ctx context.Context, code string) (*category.AccountCategory, error) {
	c, err := scanCategory(s.db.QueryRowContext(ctx, selectCategory+` WHERE code = $1`, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Category with code '%s' not found", code)
		}

		return nil, fmt.Errorf("getting category by code: %w", err)
	}

	return c, nil
}

func (s *Store) ListCategories(ctx context.Context, categoryType *category.Type) ([]*category.AccountCategory, error) {
	query := selectCategory

	var args []any

	if categoryType != nil {
		query += ` WHERE category_type = $1`

		args = append(args, string(*categoryType))
	}

	query += ` ORDER BY sort_order ASC, code ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	cats := make([]*category.AccountCategory, 0)

	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		cats = append(cats, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}

	return cats, nil
}

func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		query := `
			DELETE FROM account_categories WHERE id = $1
			RETURNING id, code, name, category_type, parent_id, level, sort_order
		`

		c, err := scanCategory(tx.QueryRowContext(ctx, query, id))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperr.NotFound("Category with id %d not found", id)
			}

			if _, ok := database.IsForeignKeyViolation(err); ok {
				return apperr.Wrap(apperr.KindConflict, err, "Category with id %d is still referenced", id)
			}

			return fmt.Errorf("deleting category: %w", err)
		}

		return s.audit.Record(ctx, tx, audit.NewEntry(ctx, audit.ActionDelete, table, id, c.Snapshot()))
	})
}
