package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ridehail/internal/domain/entities"
	"ridehail/internal/repository"
)

// timeLayout has fixed-width fractional seconds so that stored timestamps
// sort lexically in chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// RideRepository implements repository.RideRepository on the rides table.
type RideRepository struct {
	db DBTX
}

var _ repository.RideRepository = (*RideRepository)(nil)

func NewRideRepository(db DBTX) *RideRepository {
	return &RideRepository{db: db}
}

const selectRide = `
	SELECT ride_id, passenger_id, driver_id, status, fare, distance,
	       from_lat, from_long, to_lat, to_long, requested_at
	FROM rides`

func (r *RideRepository) Create(ctx context.Context, ride *entities.Ride) error {
	const query = `
		INSERT INTO rides (ride_id, passenger_id, driver_id, status, fare, distance,
		                   from_lat, from_long, to_lat, to_long, requested_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if err := repository.CheckRideStatus(ride.Status); err != nil {
		return err
	}

	var driverID sql.NullString
	if ride.DriverID != nil {
		driverID = sql.NullString{String: *ride.DriverID, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		ride.ID,
		ride.PassengerID,
		driverID,
		string(ride.Status),
		ride.Fare,
		ride.Distance,
		ride.From.Latitude,
		ride.From.Longitude,
		ride.To.Latitude,
		ride.To.Longitude,
		ride.RequestedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting ride: %w", mapError(err, repository.ErrRideNotFound))
	}
	return nil
}

func (r *RideRepository) GetByID(ctx context.Context, id string) (*entities.Ride, error) {
	ride, err := scanRide(r.db.QueryRowContext(ctx, selectRide+` WHERE ride_id = ?`, id))
	if err != nil {
		return nil, mapError(err, repository.ErrRideNotFound)
	}
	return ride, nil
}

func (r *RideRepository) GetByPassengerID(ctx context.Context, passengerID string) ([]*entities.Ride, error) {
	rows, err := r.db.QueryContext(ctx, selectRide+` WHERE passenger_id = ? ORDER BY requested_at`, passengerID)
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

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRide(row rowScanner) (*entities.Ride, error) {
	var (
		ride        entities.Ride
		driverID    sql.NullString
		status      string
		requestedAt string
	)
	err := row.Scan(
		&ride.ID,
		&ride.PassengerID,
		&driverID,
		&status,
		&ride.Fare,
		&ride.Distance,
		&ride.From.Latitude,
		&ride.From.Longitude,
		&ride.To.Latitude,
		&ride.To.Longitude,
		&requestedAt,
	)
	if err != nil {
		return nil, err
	}

	if driverID.Valid {
		ride.DriverID = &driverID.String
	}
	ride.Status = entities.RideStatus(status)
	ride.RequestedAt, err = time.Parse(timeLayout, requestedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing requested_at %q: %w", requestedAt, err)
	}
	return &ride, nil
}
