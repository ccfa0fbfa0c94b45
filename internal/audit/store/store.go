package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/MrJamesThe3rd/dentalbudget/internal/audit"
	"github.com/MrJamesThe3rd/dentalbudget/internal/database"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record inserts e through q, which is normally the transaction of the
// change being audited.
func (s *Store) Record(ctx context.Context, q database.Querier, e *audit.Entry) error {
	var changes []byte

	if e.Changes != nil {
		b, err := json.Marshal(e.Changes)
		if err != nil {
			return fmt.Errorf("encoding audit changes: %w", err)
		}

		changes = b
	}

	query := `
		INSERT INTO audit_log (user_id, action, table_name, record_id, changes, timestamp)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, timestamp
	`

	err := q.QueryRowContext(ctx, query,
		e.UserID,
		e.Action,
		e.TableName,
		e.RecordID,
		changes,
	).Scan(&e.ID, &e.Timestamp)
	if err != nil {
		return fmt.Errorf("recording audit entry: %w", err)
	}

	return nil
}

func (s *Store) ListEntries(ctx context.Context, filter audit.ListFilter) ([]*audit.Entry, error) {
	query := `
		SELECT id, user_id, action, table_name, record_id, changes, timestamp
		FROM audit_log
		WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.TableName != nil {
		query += fmt.Sprintf(" AND table_name = $%d", argIdx)

		args = append(args, *filter.TableName)
		argIdx++
	}

	if filter.RecordID != nil {
		query += fmt.Sprintf(" AND record_id = $%d", argIdx)

		args = append(args, *filter.RecordID)
		argIdx++
	}

	query += fmt.Sprintf(" ORDER BY id DESC OFFSET $%d LIMIT $%d", argIdx, argIdx+1)
	args = append(args, filter.Offset, filter.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*audit.Entry

	for rows.Next() {
		var (
			e       audit.Entry
			action  string
			changes []byte
		)

		if err := rows.Scan(&e.ID, &e.UserID, &action, &e.TableName, &e.RecordID, &changes, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}

		e.Action = audit.Action(action)

		if len(changes) > 0 {
			if err := json.Unmarshal(changes, &e.Changes); err != nil {
				return nil, fmt.Errorf("decoding audit changes: %w", err)
			}
		}

		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit entries: %w", err)
	}

	return entries, nil
}
