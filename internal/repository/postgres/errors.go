package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"ridehail/internal/repository"
)

// PostgreSQL error codes
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

// Constraint names from the migrations.
const (
	accountsEmailKey        = "accounts_email_key"
	outstandingRidePerPassg = "rides_one_outstanding_per_passenger"
	ridesPassengerFK        = "rides_passenger_id_fkey"
)

// mapError translates pgx errors into repository errors; anything it does not
// recognise is returned unchanged. notFound is used for pgx.ErrNoRows.
func mapError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			switch pgErr.ConstraintName {
			case accountsEmailKey:
				return repository.ErrEmailExists
			case outstandingRidePerPassg:
				return repository.ErrOutstandingRide
			default:
				return fmt.Errorf("%w: %s", repository.ErrDuplicate, pgErr.ConstraintName)
			}
		case foreignKeyViolationCode:
			if pgErr.ConstraintName == ridesPassengerFK {
				return repository.ErrAccountNotFound
			}
		}
	}
	return err
}
