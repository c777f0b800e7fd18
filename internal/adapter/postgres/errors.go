package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/library-backend/internal/domain"
)

// PostgreSQL error codes the repositories care about.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeCheckViolation       = "23514"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
	codeQueryCanceled        = "57014"
)

// MapError converts pgx/pgconn errors to domain errors. key identifies the
// row (an id, an ISBN, a card number) and is only used in the message.
// context.Canceled passes through; context.DeadlineExceeded and lock or
// serialization conflicts become domain.ErrTransient.
func MapError(err error, entity string, key any) error {
	if err == nil {
		return nil
	}

	// caller gave up: pass through as-is
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %v: %w", entity, key, err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s %v: %w: %w", entity, key, domain.ErrTransient, err)
	}

	// pgx.ErrNoRows → domain.ErrNotFound
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %v: %w", entity, key, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%s %v: %w", entity, key, domain.ErrAlreadyExists)
		case codeForeignKeyViolation:
			return fmt.Errorf("%s %v: %w", entity, key, domain.ErrNotFound)
		case codeCheckViolation:
			// stock counters are guarded by CHECK constraints; reaching one
			// means the ledger let an invalid write through
			return fmt.Errorf("%s %v: %w: %s", entity, key, domain.ErrInvariantViolation, pgErr.ConstraintName)
		case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable, codeQueryCanceled:
			return fmt.Errorf("%s %v: %w: %w", entity, key, domain.ErrTransient, err)
		}
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return fmt.Errorf("%s %v: %w: %w", entity, key, domain.ErrTransient, err)
	}

	return fmt.Errorf("%s %v: %w", entity, key, err)
}
