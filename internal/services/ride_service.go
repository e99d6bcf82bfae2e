package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"ridehail/internal/config"
	"ridehail/internal/domain/entities"
	"ridehail/internal/repository"
	"ridehail/pkg/utils"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// AccountReader resolves accounts for the ride service. AccountService
// satisfies it; the ride service never writes accounts.
type AccountReader interface {
	GetAccount(ctx context.Context, accountID string) (*entities.Account, error)
}

// RequestRideInput is the validated payload of a ride request. Coordinates
// are pointers so that a missing field can be told apart from zero.
type RequestRideInput struct {
	PassengerID string   `json:"passenger_id" validate:"required"`
	FromLat     *float64 `json:"from_lat" validate:"required"`
	FromLong    *float64 `json:"from_long" validate:"required"`
	ToLat       *float64 `json:"to_lat" validate:"required"`
	ToLong      *float64 `json:"to_long" validate:"required"`
}

type RequestRideOutput struct {
	RideID string `json:"ride_id"`
}

type RideService struct {
	accounts AccountReader
	rides    repository.RideRepository
	fare     float64
	distance float64
	newID    utils.IDGenerator
	now      func() time.Time
	logger   *slog.Logger
}

func NewRideService(accounts AccountReader, rides repository.RideRepository, cfg config.RideConfig, logger *slog.Logger) *RideService {
	return &RideService{
		accounts: accounts,
		rides:    rides,
		fare:     cfg.PlaceholderFare,
		distance: cfg.PlaceholderDistance,
		newID:    utils.GenerateID,
		now:      time.Now,
		logger:   logger,
	}
}

// RequestRide creates a ride in the requested state for a passenger with no
// outstanding ride.
func (s *RideService) RequestRide(ctx context.Context, in RequestRideInput) (*RequestRideOutput, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRideRequest, err)
	}

	account, err := s.accounts.GetAccount(ctx, in.PassengerID)
	if err != nil {
		return nil, err
	}
	if !account.IsPassenger {
		return nil, ErrNotAPassenger
	}

	previous, err := s.rides.GetByPassengerID(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("listing passenger rides: %w", err)
	}
	for _, ride := range previous {
		if ride.IsOutstanding() {
			return nil, ErrOutstandingRide
		}
	}

	ride := entities.NewRide(
		s.newID(),
		account.ID,
		entities.NewLocation(*in.FromLat, *in.FromLong),
		entities.NewLocation(*in.ToLat, *in.ToLong),
		s.fare,
		s.distance,
		s.now(),
	)
	if err := s.rides.Create(ctx, ride); err != nil {
		switch {
		case errors.Is(err, repository.ErrOutstandingRide):
			return nil, fmt.Errorf("%w: %w", ErrOutstandingRide, err)
		case errors.Is(err, repository.ErrAccountNotFound):
			return nil, fmt.Errorf("%w: %w", ErrAccountNotFound, err)
		}
		return nil, fmt.Errorf("creating ride: %w", err)
	}

	s.logger.InfoContext(ctx, "ride requested",
		slog.String("ride_id", ride.ID),
		slog.String("passenger_id", ride.PassengerID),
	)

	return &RequestRideOutput{RideID: ride.ID}, nil
}

// GetRide returns the stored ride or ErrRideNotFound.
func (s *RideService) GetRide(ctx context.Context, rideID string) (*entities.Ride, error) {
	ride, err := s.rides.GetByID(ctx, rideID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %w", ErrRideNotFound, err)
		}
		return nil, fmt.Errorf("getting ride: %w", err)
	}
	return ride, nil
}
