package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/dentalbudget/internal/apperr"
	"github.com/MrJamesThe3rd/dentalbudget/internal/audit"
	"github.com/MrJamesThe3rd/dentalbudget/internal/database"
	"github.com/MrJamesThe3rd/dentalbudget/internal/mapping"
)

const table = "account_mappings"

type Store struct {
	db    *sql.DB
	audit audit.Recorder
}

func New(db *sql.DB, recorder audit.Recorder) *Store {
	return &Store{db: db, audit: recorder}
}

func (s *Store) FindMatch(ctx context.Context, rawAccount string) (string, error) {
	query := `
		SELECT category_code
		FROM account_mappings
		WHERE $1 ILIKE '%' || raw_pattern || '%'
		ORDER BY LENGTH(raw_pattern) DESC, created_at DESC
		LIMIT 1
	`

	var code string

	err := s.db.QueryRowContext(ctx, query, rawAccount).Scan(&code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}

		return "", fmt.Errorf("finding mapping: %w", err)
	}

	return code, nil
}

func (s *Store) CreateMapping(ctx context.Context, m *mapping.Mapping) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		query := `
			INSERT INTO account_mappings (raw_pattern, category_code, created_at)
			VALUES ($1, $2, NOW())
			RETURNING id, created_at
		`

		err := tx.QueryRowContext(ctx, query, m.RawPattern, m.CategoryCode).Scan(&m.ID, &m.CreatedAt)
		if err != nil {
			if _, ok := database.IsForeignKeyViolation(err); ok {
				return apperr.Wrap(apperr.KindValidation, err, "Category with code '%s' does not exist", m.CategoryCode)
			}

			return fmt.Errorf("creating mapping: %w", err)
		}

		return s.audit.Record(ctx, tx, audit.NewEntry(ctx, audit.ActionCreate, table, m.ID, m.Snapshot()))
	})
}
