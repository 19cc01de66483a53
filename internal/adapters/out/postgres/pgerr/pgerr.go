// Package pgerr maps PostgreSQL failures onto the storage errors the order
// core understands.
package pgerr

import (
	"errors"
	"fmt"

	"marketplace/internal/core/ports"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation      = "23505"
	serializationFailure = "40001"
	deadlockDetected     = "40P01"
	lockNotAvailable     = "55P03"
)

// Classify wraps err with ports.ErrDuplicate or ports.ErrConcurrentUpdate
// when the server reported a uniqueness or locking conflict. Other errors are
// returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case uniqueViolation:
		return fmt.Errorf("%w: %s", ports.ErrDuplicate, pgErr.ConstraintName)
	case serializationFailure, deadlockDetected, lockNotAvailable:
		return fmt.Errorf("%w: %w", ports.ErrConcurrentUpdate, err)
	default:
		return err
	}
}
