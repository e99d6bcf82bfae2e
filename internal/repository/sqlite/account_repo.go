package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"ridehail/internal/domain/entities"
	"ridehail/internal/repository"
)

// AccountRepository implements repository.AccountRepository on the accounts table.
type AccountRepository struct {
	db DBTX
}

var _ repository.AccountRepository = (*AccountRepository)(nil)

func NewAccountRepository(db DBTX) *AccountRepository {
	return &AccountRepository{db: db}
}

const selectAccount = `
	SELECT account_id, name, email, national_id, license_plate, is_passenger, is_driver
	FROM accounts`

func (r *AccountRepository) Create(ctx context.Context, account *entities.Account) error {
	const query = `
		INSERT INTO accounts (account_id, name, email, national_id, license_plate, is_passenger, is_driver)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.Name,
		account.Email,
		account.NationalID,
		sql.NullString{String: account.LicensePlate, Valid: account.LicensePlate != ""},
		account.IsPassenger,
		account.IsDriver,
	)
	if err != nil {
		return fmt.Errorf("inserting account: %w", mapError(err, repository.ErrAccountNotFound))
	}
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*entities.Account, error) {
	return r.getOne(ctx, selectAccount+` WHERE account_id = ?`, id)
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entities.Account, error) {
	return r.getOne(ctx, selectAccount+` WHERE email = ?`, email)
}

func (r *AccountRepository) getOne(ctx context.Context, query, arg string) (*entities.Account, error) {
	var (
		account entities.Account
		plate   sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.NationalID,
		&plate,
		&account.IsPassenger,
		&account.IsDriver,
	)
	if err != nil {
		return nil, mapError(err, repository.ErrAccountNotFound)
	}
	account.LicensePlate = plate.String
	return &account, nil
}
