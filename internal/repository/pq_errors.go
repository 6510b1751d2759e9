package repository

import (
	"errors"

	"github.com/lib/pq"
)

// uniqueViolation is the PostgreSQL error code for unique index conflicts.
const uniqueViolation = "23505"

// violatedConstraint returns the name of the unique constraint an insert or
// update ran into, or "" when the error is not a unique violation. Unique
// indexes are the authoritative guard against races; application pre-checks
// are optimizations only.
func violatedConstraint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return pqErr.Constraint
	}
	return ""
}
