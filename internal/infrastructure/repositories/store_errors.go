package repositories

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	domainerrors "veab-goa.backend/internal/domain/errors"
)

const (
	pgInsufficientPrivilege = "42501"
	pgUniqueViolation       = "23505"
	pgInvalidTextRepr       = "22P02"
)

// storeError maps a gorm/pgx failure onto the domain error taxonomy.
func storeError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainerrors.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgInsufficientPrivilege:
			return domainerrors.NewStoreError(op, pgErr.Code, fmt.Errorf("%w: %s", domainerrors.ErrPermissionDenied, pgErr.Message))
		case pgUniqueViolation:
			return domainerrors.NewStoreError(op, pgErr.Code, fmt.Errorf("%w: %s", domainerrors.ErrAlreadyExists, pgErr.Message))
		case pgInvalidTextRepr:
			// a malformed uuid can never match a row
			return domainerrors.ErrNotFound
		}
		return domainerrors.NewStoreError(op, pgErr.Code, err)
	}
	return domainerrors.NewStoreError(op, "", err)
}
