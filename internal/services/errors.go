package services

import (
	"errors"
	"fmt"

	"codama/internal/repositories"
	"codama/internal/storage"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func forbidden(reason string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, reason)
}

// translate maps repository and storage errors onto service errors.
// Anything it does not recognize is returned unchanged.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound), errors.Is(err, storage.ErrNotExist):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, repositories.ErrDuplicate):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	case errors.Is(err, repositories.ErrInvalidReference), errors.Is(err, repositories.ErrConstraint):
		return fmt.Errorf("%w: %v", ErrValidation, err)
	case errors.Is(err, storage.ErrInvalidPath):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}
