package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ridehail/internal/domain/entities"
	"ridehail/internal/domain/validation"
	"ridehail/internal/repository"
	"ridehail/pkg/utils"
)

// WelcomeNotifier is told about every account that signs up.
type WelcomeNotifier interface {
	SendWelcome(ctx context.Context, email string)
}

// SignupInput is the validated payload of a signup request. LicensePlate is
// only looked at when IsDriver is set.
type SignupInput struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	NationalID   string `json:"national_id"`
	LicensePlate string `json:"license_plate"`
	IsPassenger  bool   `json:"is_passenger"`
	IsDriver     bool   `json:"is_driver"`
}

type SignupOutput struct {
	AccountID string `json:"account_id"`
}

type AccountService struct {
	accounts repository.AccountRepository
	notifier WelcomeNotifier
	newID    utils.IDGenerator
	logger   *slog.Logger
}

func NewAccountService(accounts repository.AccountRepository, notifier WelcomeNotifier, logger *slog.Logger) *AccountService {
	return &AccountService{
		accounts: accounts,
		notifier: notifier,
		newID:    utils.GenerateID,
		logger:   logger,
	}
}

// Signup registers a new account. Checks run in a fixed order and the first
// failure is returned; nothing is stored unless every check passes.
func (s *AccountService) Signup(ctx context.Context, in SignupInput) (*SignupOutput, error) {
	_, err := s.accounts.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, ErrDuplicateAccount
	case !repository.IsNotFound(err):
		return nil, fmt.Errorf("looking up account by email: %w", err)
	}

	if !validation.ValidName(in.Name) {
		return nil, ErrInvalidName
	}
	if !validation.ValidEmail(in.Email) {
		return nil, ErrInvalidEmail
	}
	if !validation.ValidNationalID(in.NationalID) {
		return nil, ErrInvalidNationalID
	}
	if in.IsDriver && !validation.ValidLicensePlate(in.LicensePlate) {
		return nil, ErrInvalidLicensePlate
	}

	account := entities.NewAccount(s.newID(), in.Name, in.Email, in.NationalID, in.LicensePlate, in.IsPassenger, in.IsDriver)
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			// Lost a race with a concurrent signup for the same email.
			return nil, fmt.Errorf("%w: %w", ErrDuplicateAccount, err)
		}
		return nil, fmt.Errorf("creating account: %w", err)
	}

	s.logger.InfoContext(ctx, "account created",
		slog.String("account_id", account.ID),
		slog.Bool("is_passenger", account.IsPassenger),
		slog.Bool("is_driver", account.IsDriver),
	)

	s.notifier.SendWelcome(ctx, account.Email)

	return &SignupOutput{AccountID: account.ID}, nil
}

// GetAccount returns the stored account or ErrAccountNotFound.
func (s *AccountService) GetAccount(ctx context.Context, accountID string) (*entities.Account, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %w", ErrAccountNotFound, err)
		}
		return nil, fmt.Errorf("getting account: %w", err)
	}
	return account, nil
}
