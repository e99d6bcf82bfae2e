package repository

import (
	"context"

	"ridehail/internal/domain/entities"
)

// AccountRepository owns Account records. Every implementation must reject a
// second account with the same email (ErrEmailExists), even when two signups
// race past the service-level lookup.
type AccountRepository interface {
	Create(ctx context.Context, account *entities.Account) error
	// GetByID returns ErrAccountNotFound when no account has the id.
	GetByID(ctx context.Context, id string) (*entities.Account, error)
	// GetByEmail returns ErrAccountNotFound when no account has the email.
	GetByEmail(ctx context.Context, email string) (*entities.Account, error)
}

// RideRepository owns Ride records. Create must refuse a ride whose passenger
// already has an outstanding ride (ErrOutstandingRide), which closes the window
// between the service's check and the insert.
type RideRepository interface {
	Create(ctx context.Context, ride *entities.Ride) error
	// GetByID returns ErrRideNotFound when no ride has the id.
	GetByID(ctx context.Context, id string) (*entities.Ride, error)
	// GetByPassengerID returns every ride of the passenger, oldest first.
	// A passenger without rides yields an empty slice and a nil error.
	GetByPassengerID(ctx context.Context, passengerID string) ([]*entities.Ride, error)
}
