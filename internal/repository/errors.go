package repository

import (
	"errors"

	"github.com/lib/pq"
)

// IsUniqueViolation reports whether the error is a PostgreSQL unique
// constraint violation, the signal for a duplicate email or identifier.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
