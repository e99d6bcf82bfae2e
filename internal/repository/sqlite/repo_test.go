package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ridehail/internal/domain/entities"
	"ridehail/internal/logger"
	"ridehail/internal/repository"
	"ridehail/pkg/utils"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	db, err := Connect(ctx, filepath.Join(t.TempDir(), "ridehail.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, Migrate(ctx, db, logger.Discard()))
	return db
}

func newPassenger(email string) *entities.Account {
	return entities.NewAccount(utils.GenerateID(), "John Doe", email, "97456321558", "", true, false)
}

func newRide(passengerID string, at time.Time) *entities.Ride {
	return entities.NewRide(utils.GenerateID(), passengerID,
		entities.NewLocation(-29.9069906, -51.1720954),
		entities.NewLocation(-29.7282985, -51.157259),
		0, 0, at)
}

func TestConnect_CreatesNestedDirectoryAndMigrateIsReentrant(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "nested", "ridehail.db")

	db, err := Connect(ctx, path)
	require.NoError(t, err)
	require.NoError(t, Migrate(ctx, db, logger.Discard()))
	require.NoError(t, db.Close())

	// A second run finds the schema already at the latest version.
	db, err = Connect(ctx, path)
	require.NoError(t, err)
	require.NoError(t, Migrate(ctx, db, logger.Discard()))
	require.NoError(t, db.Close())
}

func TestAccountRepository_SQLite(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(openTestDB(t))

	driver := entities.NewAccount(utils.GenerateID(), "Jane Roe", "jane@roe.com", "97456321558", "AAA9999", false, true)
	require.NoError(t, repo.Create(ctx, driver))

	passenger := newPassenger("john@doe.com")
	require.NoError(t, repo.Create(ctx, passenger))

	got, err := repo.GetByID(ctx, driver.ID)
	require.NoError(t, err)
	assert.Equal(t, driver, got)

	got, err = repo.GetByEmail(ctx, "john@doe.com")
	require.NoError(t, err)
	assert.Equal(t, passenger, got)
	assert.Empty(t, got.LicensePlate)

	_, err = repo.GetByID(ctx, utils.GenerateID())
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)

	_, err = repo.GetByID(ctx, "str")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)

	_, err = repo.GetByEmail(ctx, "nobody@doe.com")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestAccountRepository_SQLiteDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(openTestDB(t))

	require.NoError(t, repo.Create(ctx, newPassenger("dup@doe.com")))
	err := repo.Create(ctx, newPassenger("dup@doe.com"))
	assert.ErrorIs(t, err, repository.ErrEmailExists)
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestRideRepository_SQLite(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	accounts := NewAccountRepository(db)
	rides := NewRideRepository(db)

	passenger := newPassenger("rider@doe.com")
	require.NoError(t, accounts.Create(ctx, passenger))

	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	// Inserted out of order, and with a fractional second, to check ordering.
	current := newRide(passenger.ID, base.Add(time.Hour))
	done := newRide(passenger.ID, base.Add(500*time.Millisecond))
	done.Status = entities.RideStatusCompleted
	require.NoError(t, rides.Create(ctx, done))
	require.NoError(t, rides.Create(ctx, current))

	got, err := rides.GetByID(ctx, current.ID)
	require.NoError(t, err)
	assert.Equal(t, current, got)

	list, err := rides.GetByPassengerID(ctx, passenger.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, done.ID, list[0].ID)
	assert.Equal(t, current.ID, list[1].ID)

	err = rides.Create(ctx, newRide(passenger.ID, base.Add(2*time.Hour)))
	assert.ErrorIs(t, err, repository.ErrOutstandingRide)

	_, err = rides.GetByID(ctx, utils.GenerateID())
	assert.ErrorIs(t, err, repository.ErrRideNotFound)

	empty, err := rides.GetByPassengerID(ctx, utils.GenerateID())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestRideRepository_SQLiteCancelledRideIsOutstanding(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	accounts := NewAccountRepository(db)
	rides := NewRideRepository(db)

	passenger := newPassenger("cancel@doe.com")
	require.NoError(t, accounts.Create(ctx, passenger))

	cancelled := newRide(passenger.ID, time.Now())
	cancelled.Status = entities.RideStatusCancelled
	require.NoError(t, rides.Create(ctx, cancelled))

	err := rides.Create(ctx, newRide(passenger.ID, time.Now()))
	assert.ErrorIs(t, err, repository.ErrOutstandingRide)
}

func TestRideRepository_SQLiteUnknownPassenger(t *testing.T) {
	err := NewRideRepository(openTestDB(t)).Create(context.Background(), newRide(utils.GenerateID(), time.Now()))
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestRideRepository_SQLiteConcurrentCreateAllowsOne(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	require.NoError(t, NewAccountRepository(db).Create(ctx, newPassenger("race@doe.com")))
	passenger, err := NewAccountRepository(db).GetByEmail(ctx, "race@doe.com")
	require.NoError(t, err)

	rides := NewRideRepository(db)
	const n = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := rides.Create(ctx, newRide(passenger.ID, time.Now()))
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, repository.ErrOutstandingRide)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
}

func TestMapError_PassesThroughUnknownErrors(t *testing.T) {
	assert.NoError(t, mapError(nil, repository.ErrRideNotFound))
	assert.ErrorIs(t, mapError(sql.ErrNoRows, repository.ErrRideNotFound), repository.ErrRideNotFound)

	other := errors.New("disk I/O error")
	assert.Same(t, other, mapError(other, repository.ErrRideNotFound))
}

func TestRideRepository_SQLiteRejectsUnknownStatus(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	passenger := newPassenger("status@doe.com")
	require.NoError(t, NewAccountRepository(db).Create(ctx, passenger))

	ride := newRide(passenger.ID, time.Now())
	ride.Status = ""
	err := NewRideRepository(db).Create(ctx, ride)
	assert.ErrorIs(t, err, repository.ErrInvalidRideStatus)
}
