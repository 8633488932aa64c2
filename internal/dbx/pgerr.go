package dbx

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes the server cares about.
const (
	sqlstateSerializationFailure = "40001"
	sqlstateDeadlockDetected     = "40P01"
	sqlstateUniqueViolation      = "23505"
	sqlstateCheckViolation       = "23514"
)

// IsSerializationFailure reports whether err is a transient concurrency fault
// (serialization failure or deadlock) that makes the whole transaction safe to
// retry from scratch.
func IsSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == sqlstateSerializationFailure || pgErr.Code == sqlstateDeadlockDetected
}

// IsUniqueViolation reports whether err is a unique-constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == sqlstateUniqueViolation
}

// IsCheckViolation reports whether err violated a CHECK constraint, optionally
// matching a specific constraint name when name is non-empty.
func IsCheckViolation(err error, name string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != sqlstateCheckViolation {
		return false
	}
	return name == "" || pgErr.ConstraintName == name
}
