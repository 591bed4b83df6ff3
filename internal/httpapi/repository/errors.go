package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// postgres unique_violation
const uniqueViolationCode = "23505"

// IsUniqueViolation reports whether err is a postgres unique-constraint failure.
// Uniqueness (slug, username, email, one review per title and author) is enforced
// at the store so concurrent conflicting writes fail atomically there.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
