package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"ridehail/internal/domain/entities"
	"ridehail/internal/repository"
	"ridehail/pkg/utils"
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
	SELECT account_id::text, name, email, national_id, license_plate, is_passenger, is_driver
	FROM accounts`

func (r *AccountRepository) Create(ctx context.Context, account *entities.Account) error {
	const query = `
		INSERT INTO accounts (account_id, name, email, national_id, license_plate, is_passenger, is_driver)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		account.ID,
		account.Name,
		account.Email,
		account.NationalID,
		nullString(account.LicensePlate),
		account.IsPassenger,
		account.IsDriver,
	)
	if err != nil {
		return fmt.Errorf("inserting account: %w", mapError(err, repository.ErrAccountNotFound))
	}
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*entities.Account, error) {
	// account_id is a uuid column; anything else cannot match and would make
	// postgres reject the whole statement.
	if !utils.IsID(id) {
		return nil, repository.ErrAccountNotFound
	}
	return r.getOne(ctx, selectAccount+` WHERE account_id = $1`, id)
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entities.Account, error) {
	return r.getOne(ctx, selectAccount+` WHERE email = $1`, email)
}

func (r *AccountRepository) getOne(ctx context.Context, query string, arg string) (*entities.Account, error) {
	var (
		account entities.Account
		plate   sql.NullString
	)
	err := r.db.QueryRow(ctx, query, arg).Scan(
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

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
