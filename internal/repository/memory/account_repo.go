package memory

import (
	"context"
	"sync"

	"ridehail/internal/domain/entities"
	"ridehail/internal/repository"
)

// AccountRepository stores accounts in memory with a secondary email index.
// Both maps are written under the same lock so the email uniqueness check and
// the insert are a single atomic step.
type AccountRepository struct {
	mu      sync.RWMutex
	byID    map[string]*entities.Account
	byEmail map[string]*entities.Account
}

var _ repository.AccountRepository = (*AccountRepository)(nil)

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		byID:    make(map[string]*entities.Account),
		byEmail: make(map[string]*entities.Account),
	}
}

func (r *AccountRepository) Create(ctx context.Context, account *entities.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[account.Email]; exists {
		return repository.ErrEmailExists
	}
	if _, exists := r.byID[account.ID]; exists {
		return repository.ErrDuplicate
	}

	stored := *account
	r.byID[stored.ID] = &stored
	r.byEmail[stored.Email] = &stored
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*entities.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, exists := r.byID[id]
	if !exists {
		return nil, repository.ErrAccountNotFound
	}
	out := *account
	return &out, nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entities.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, exists := r.byEmail[email]
	if !exists {
		return nil, repository.ErrAccountNotFound
	}
	out := *account
	return &out, nil
}
