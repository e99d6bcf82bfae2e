package memory

import (
	"context"
	"sort"
	"sync"

	"ridehail/internal/domain/entities"
	"ridehail/internal/repository"
)

// RideRepository stores rides in memory, with a per-passenger index so the
// outstanding-ride check does not have to scan every ride.
//
// Records are copied on the way in and on the way out; callers never share a
// pointer with the store.
type RideRepository struct {
	mu          sync.RWMutex
	rides       map[string]*entities.Ride
	byPassenger map[string][]string // passengerID → rideIDs in insertion order
}

var _ repository.RideRepository = (*RideRepository)(nil)

func NewRideRepository() *RideRepository {
	return &RideRepository{
		rides:       make(map[string]*entities.Ride),
		byPassenger: make(map[string][]string),
	}
}

// Create inserts the ride unless its passenger already holds an outstanding
// ride. The check and the insert happen under one write lock.
func (r *RideRepository) Create(ctx context.Context, ride *entities.Ride) error {
	if err := repository.CheckRideStatus(ride.Status); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rides[ride.ID]; exists {
		return repository.ErrDuplicate
	}
	if ride.IsOutstanding() {
		for _, id := range r.byPassenger[ride.PassengerID] {
			if r.rides[id].IsOutstanding() {
				return repository.ErrOutstandingRide
			}
		}
	}

	r.rides[ride.ID] = copyRide(ride)
	r.byPassenger[ride.PassengerID] = append(r.byPassenger[ride.PassengerID], ride.ID)
	return nil
}

func (r *RideRepository) GetByID(ctx context.Context, id string) (*entities.Ride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ride, exists := r.rides[id]
	if !exists {
		return nil, repository.ErrRideNotFound
	}
	return copyRide(ride), nil
}

// GetByPassengerID returns all rides for a given passenger (history + active).
func (r *RideRepository) GetByPassengerID(ctx context.Context, passengerID string) ([]*entities.Ride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byPassenger[passengerID]
	rides := make([]*entities.Ride, 0, len(ids))
	for _, id := range ids {
		rides = append(rides, copyRide(r.rides[id]))
	}
	sort.SliceStable(rides, func(i, j int) bool {
		return rides[i].RequestedAt.Before(rides[j].RequestedAt)
	})
	return rides, nil
}

func copyRide(ride *entities.Ride) *entities.Ride {
	out := *ride
	if ride.DriverID != nil {
		driverID := *ride.DriverID
		out.DriverID = &driverID
	}
	return &out
}
