package repositories

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicate        = errors.New("duplicate record")
	ErrInvalidReference = errors.New("referenced record does not exist")
	ErrConstraint       = errors.New("constraint violation")
)

// mapPgError translates integrity violations into repository errors.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case "23505":
		return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
	case "23503":
		return fmt.Errorf("%w: %s", ErrInvalidReference, pgErr.ConstraintName)
	case "23514", "23502", "22P02":
		return fmt.Errorf("%w: %s", ErrConstraint, pgErr.Message)
	}
	return err
}
