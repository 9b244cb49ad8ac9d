package errors

import (
	"context"
	stderrs "errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	sqlstateUniqueViolation  = "23505"
	sqlstateNotNullViolation = "23502"
	sqlstateCheckViolation   = "23514"
)

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsDuplicateKey reports a unique constraint violation anywhere in err's chain
func IsDuplicateKey(err error) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == sqlstateUniqueViolation
}

// FromPostgres classifies a driver error by SQLSTATE class and wraps it with msg.
// Errors that already carry a code pass through unchanged
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	if _, ok := As(err); ok {
		return err
	}
	return Wrap(err, classify(err), msg)
}

func classify(err error) Code {
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return CodeUnavailable
	}
	pgErr, ok := pgError(err)
	if !ok {
		if pgconn.Timeout(err) {
			return CodeUnavailable
		}
		var connErr *pgconn.ConnectError
		if stderrs.As(err, &connErr) {
			return CodeUnavailable
		}
		return CodeDB
	}
	switch pgErr.Code {
	case sqlstateUniqueViolation:
		return CodeConflict
	case sqlstateNotNullViolation, sqlstateCheckViolation:
		return CodeValidation
	}
	if len(pgErr.Code) < 2 {
		return CodeDB
	}
	switch pgErr.Code[:2] {
	case "22", "23":
		// data exceptions and the remaining integrity violations
		return CodeInvalid
	case "08", "40", "53", "57":
		// connection, rollback, resources, operator intervention
		return CodeUnavailable
	}
	return CodeDB
}
