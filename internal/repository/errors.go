// Package repository declares the persistence contracts for accounts and rides
// and the errors shared by every implementation (memory, postgres, sqlite).
package repository

import (
	"errors"
	"fmt"

	"ridehail/internal/domain/entities"
)

var (
	// ErrNotFound is the base of every entity-specific "not found" error.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is the base of every uniqueness violation.
	ErrDuplicate = errors.New("entity already exists")

	ErrAccountNotFound = fmt.Errorf("%w: account", ErrNotFound)
	ErrRideNotFound    = fmt.Errorf("%w: ride", ErrNotFound)

	// ErrEmailExists is returned when an account with the same email is stored.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrOutstandingRide is returned when the passenger already has a ride
	// that is not completed.
	ErrOutstandingRide = fmt.Errorf("%w: outstanding ride for passenger", ErrDuplicate)
)

// IsNotFound reports whether err is any kind of "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// ErrInvalidRideStatus is returned when a ride carries a status outside
// the known lifecycle.
var ErrInvalidRideStatus = errors.New("invalid ride status")

// CheckRideStatus rejects statuses outside the known lifecycle before a
// ride is stored.
func CheckRideStatus(s entities.RideStatus) error {
	if !s.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRideStatus, s)
	}
	return nil
}
