package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/BadhanCB/outfitex-backend/pkg/util"
)

const uniqueViolation = "23505"

// readFailure maps a failed storage read.
func readFailure(resource string, err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return apperrors.NewNotFound(resource, nil)
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.NewStorageTimeout(err)
	default:
		return apperrors.MapError(err)
	}
}

// writeFailure maps a storage write that was not acknowledged.
func writeFailure(code, message string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewStorageTimeout(err)
	}
	return apperrors.NewPersistenceError(code, message, err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
