package entities

import (
	"time"
)

// RideStatus represents the current lifecycle state of a ride.
//
// Go Learning Note (Type Aliases for Enums):
// Go doesn't have a native enum keyword. The idiomatic pattern is to define a
// named type and then declare constants of that type. String-based enums are
// preferred when the value will be serialized to JSON or stored in a database,
// because they're human-readable.
//
// Only RideStatusRequested is produced here. The remaining states are written by
// the driver-side lifecycle and are read back when deciding whether a passenger
// still has a ride in flight.
type RideStatus string

const (
	RideStatusRequested  RideStatus = "requested"
	RideStatusAccepted   RideStatus = "accepted"
	RideStatusInProgress RideStatus = "in_progress"
	RideStatusCompleted  RideStatus = "completed"
	RideStatusCancelled  RideStatus = "cancelled"
)

// Valid reports whether s is one of the known ride states.
func (s RideStatus) Valid() bool {
	switch s {
	case RideStatusRequested,
		RideStatusAccepted,
		RideStatusInProgress,
		RideStatusCompleted,
		RideStatusCancelled:
		return true
	}
	return false
}

// Ride is a transportation request from a passenger.
//
// DriverID is a pointer so that "no driver yet" serializes as JSON null and is
// stored as SQL NULL, rather than as an empty string that looks like an id.
type Ride struct {
	ID          string     `json:"ride_id"`
	PassengerID string     `json:"passenger_id"`
	DriverID    *string    `json:"driver_id"`
	Status      RideStatus `json:"status"`
	Fare        float64    `json:"fare"`
	Distance    float64    `json:"distance"`
	From        Location   `json:"from"`
	To          Location   `json:"to"`
	RequestedAt time.Time  `json:"requested_at"`
}

// NewRide creates a Ride in the Requested state with no driver assigned.
// Fare and distance are placeholders fixed at creation time.
func NewRide(id, passengerID string, from, to Location, fare, distance float64, requestedAt time.Time) *Ride {
	return &Ride{
		ID:          id,
		PassengerID: passengerID,
		Status:      RideStatusRequested,
		Fare:        fare,
		Distance:    distance,
		From:        from,
		To:          to,
		RequestedAt: requestedAt.UTC(),
	}
}

// IsOutstanding reports whether the ride still blocks its passenger from
// requesting another one. Every state other than Completed counts.
func (r *Ride) IsOutstanding() bool {
	return r.Status != RideStatusCompleted
}
