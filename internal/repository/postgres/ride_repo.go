package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"ridehail/internal/domain/entities"
	"ridehail/internal/repository"
	"ridehail/pkg/utils"
)

// RideRepository implements repository.RideRepository on the rides table. The
// one-outstanding-ride rule is enforced by the rides_one_outstanding_per_passenger
// partial unique index, so concurrent inserts for one passenger cannot both win.
type RideRepository struct {
	db DBTX
}

var _ repository.RideRepository = (*RideRepository)(nil)

func NewRideRepository(db DBTX) *RideRepository {
	return &RideRepository{db: db}
}

const selectRide = `
	SELECT ride_id::text, passenger_id::text, driver_id::text, status, fare, distance,
	       from_lat, from_long, to_lat, to_long, requested_at
	FROM rides`

func (r *RideRepository) Create(ctx context.Context, ride *entities.Ride) error {
	const query = `
		INSERT INTO rides (ride_id, passenger_id, driver_id, status, fare, distance,
		                   from_lat, from_long, to_lat, to_long, requested_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	if err := repository.CheckRideStatus(ride.Status); err != nil {
		return err
	}

	_, err := r.db.Exec(ctx, query,
		ride.ID,
		ride.PassengerID,
		ride.DriverID,
		string(ride.Status),
		ride.Fare,
		ride.Distance,
		ride.From.Latitude,
		ride.From.Longitude,
		ride.To.Latitude,
		ride.To.Longitude,
		ride.RequestedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting ride: %w", mapError(err, repository.ErrRideNotFound))
	}
	return nil
}

func (r *RideRepository) GetByID(ctx context.Context, id string) (*entities.Ride, error) {
	if !utils.IsID(id) {
		return nil, repository.ErrRideNotFound
	}
	ride, err := scanRide(r.db.QueryRow(ctx, selectRide+` WHERE ride_id = $1`, id))
	if err != nil {
		return nil, mapError(err, repository.ErrRideNotFound)
	}
	return ride, nil
}

func (r *RideRepository) GetByPassengerID(ctx context.Context, passengerID string) ([]*entities.Ride, error) {
	if !utils.IsID(passengerID) {
		return []*entities.Ride{}, nil
	}

	rows, err := r.db.Query(ctx, selectRide+` WHERE passenger_id = $1 ORDER BY requested_at`, passengerID)
	if err != nil {
		return nil, fmt.Errorf("querying rides by passenger: %w", err)
	}
	defer rows.Close()

	rides := []*entities.Ride{}
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning ride: %w", err)
		}
		rides = append(rides, ride)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rides: %w", err)
	}
	return rides, nil
}

func scanRide(row pgx.Row) (*entities.Ride, error) {
	var (
		ride   entities.Ride
		status string
	)
	err := row.Scan(
		&ride.ID,
		&ride.PassengerID,
		&ride.DriverID,
		&status,
		&ride.Fare,
		&ride.Distance,
		&ride.From.Latitude,
		&ride.From.Longitude,
		&ride.To.Latitude,
		&ride.To.Longitude,
		&ride.RequestedAt,
	)
	if err != nil {
		return nil, err
	}
	ride.Status = entities.RideStatus(status)
	ride.RequestedAt = ride.RequestedAt.UTC()
	return &ride, nil
}
