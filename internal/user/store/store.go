package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/dentalbudget/internal/apperr"
	"github.com/MrJamesThe3rd/dentalbudget/internal/audit"
	"github.com/MrJamesThe3rd/dentalbudget/internal/database"
	"github.com/MrJamesThe3rd/dentalbudget/internal/user"
)

const table = "users"

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

const selectUser = `
	SELECT id, email, hashed_password, full_name, role, practice_id, last_login
	FROM users
`

func scanUser(s scanner) (*user.User, error) {
	var (
		u          user.User
		role       string
		practiceID sql.NullInt64
		lastLogin  sql.NullTime
	)

	if err := s.Scan(&u.ID, &u.Email, &u.HashedPassword, &u.FullName, &role, &practiceID, &lastLogin); err != nil {
		return nil, err
	}

	u.Role = user.Role(role)

	if practiceID.Valid {
		u.PracticeID = &practiceID.Int64
	}

	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}

	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		query := `
			INSERT INTO users (email, hashed_password, full_name, role, practice_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`

		err := tx.QueryRowContext(ctx, query, u.Email, u.HashedPassword, u.FullName, u.Role, u.PracticeID).Scan(&u.ID)
		if err != nil {
			if _, ok := database.IsUniqueViolation(err); ok {
				return apperr.Wrap(apperr.KindConflict, err, "User with email '%s' already exists", u.Email)
			}

			if _, ok := database.IsForeignKeyViolation(err); ok {
				return apperr.Wrap(apperr.KindValidation, err, "Practice with id %d does not exist", *u.PracticeID)
			}

			return fmt.Errorf("creating user: %w", err)
		}

		return s.audit.Record(ctx, tx, audit.NewEntry(ctx, audit.ActionCreate, table, u.ID, u.Snapshot()))
	})
}

func (s *Store) GetUser(ctx context.Context, id int64) (*user.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, selectUser+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("User with id %d not found", id)
		}

		return nil, fmt.Errorf("getting user: %w", err)
	}

	return u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, selectUser+` WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("User with email '%s' not found", email)
		}

		return nil, fmt.Errorf("getting user by email: %w", err)
	}

	return u, nil
}

func (s *Store) ListUsers(ctx context.Context, offset, limit int) ([]*user.User, error) {
	rows, err := s.db.QueryContext(ctx, selectUser+` ORDER BY id ASC OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	users := make([]*user.User, 0)

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}

		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}

	return users, nil
}

func (s *Store) UpdateUser(ctx context.Context, u *user.User, before *user.User) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		query := `
			UPDATE users
			SET email = $1, hashed_password = $2, full_name = $3, role = $4, practice_id = $5
			WHERE id = $6
		`

		res, err := tx.ExecContext(ctx, query, u.Email, u.HashedPassword, u.FullName, u.Role, u.PracticeID, u.ID)
		if err != nil {
			if _, ok := database.IsUniqueViolation(err); ok {
				return apperr.Wrap(apperr.KindConflict, err, "User with email '%s' already exists", u.Email)
			}

			if _, ok := database.IsForeignKeyViolation(err); ok {
				return apperr.Wrap(apperr.KindValidation, err, "Referenced practice does not exist")
			}

			return fmt.Errorf("updating user: %w", err)
		}

		if n, _ := res.RowsAffected(); n == 0 {
			return apperr.NotFound("User with id %d not found", u.ID)
		}

		changes := audit.Diff(before.Snapshot(), u.Snapshot())
		if u.HashedPassword != before.HashedPassword {
			changes["password"] = audit.Change{Old: "***", New: "***"}
		}

		if len(changes) == 0 {
			return nil
		}

		return s.audit.Record(ctx, tx, audit.NewEntry(ctx, audit.ActionUpdate, table, u.ID, changes))
	})
}

func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		query := `
			DELETE FROM users WHERE id = $1
			RETURNING id, email, hashed_password, full_name, role, practice_id, last_login
		`

		u, err := scanUser(tx.QueryRowContext(ctx, query, id))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperr.NotFound("User with id %d not found", id)
			}

			if _, ok := database.IsForeignKeyViolation(err); ok {
				return apperr.Wrap(apperr.KindConflict, err, "User with id %d is still referenced by audit entries", id)
			}

			return fmt.Errorf("deleting user: %w", err)
		}

		return s.audit.Record(ctx, tx, audit.NewEntry(ctx, audit.ActionDelete, table, id, u.Snapshot()))
	})
}

// SetLastLogin stores the login date and records the login, attributed to
// the user who signed in.
func (s *Store) SetLastLogin(ctx context.Context, id int64, day time.Time) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE users SET last_login = $1 WHERE id = $2`, day, id)
		if err != nil {
			return fmt.Errorf("updating last login: %w", err)
		}

		if n, _ := res.RowsAffected(); n == 0 {
			return apperr.NotFound("User with id %d not found", id)
		}

		actorCtx := audit.WithActor(ctx, id)
		entry := audit.NewEntry(actorCtx, audit.ActionLogin, table, id, map[string]any{"last_login": day.Format(time.DateOnly)})

		return s.audit.Record(actorCtx, tx, entry)
	})
}
