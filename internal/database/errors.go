package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes the stores translate into application errors.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

func pgCode(err error) (string, string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}

	return "", ""
}

// IsUniqueViolation reports whether err is a unique constraint violation and
// returns the constraint name.
func IsUniqueViolation(err error) (string, bool) {
	code, constraint := pgCode(err)
	return constraint, code == codeUniqueViolation
}

func IsForeignKeyViolation(err error) (string, bool) {
	code, constraint := pgCode(err)
	return constraint, code == codeForeignKeyViolation
}

func IsCheckViolation(err error) (string, bool) {
	code, constraint := pgCode(err)
	return constraint, code == codeCheckViolation
}
