// Package pgerr translates driver level postgres errors into errors the
// repositories expose.
package pgerr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// ErrDuplicate is returned by Add when the aggregate already exists.
var ErrDuplicate = errors.New("record already exists")

// IsUniqueViolation reports whether err carries SQLSTATE 23505.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Translate maps unique violations to ErrDuplicate and passes any other error through.
func Translate(err error, entity string, id any) error {
	if err == nil {
		return nil
	}
	if IsUniqueViolation(err) {
		return fmt.Errorf("%s %v: %w", entity, id, ErrDuplicate)
	}
	return err
}
