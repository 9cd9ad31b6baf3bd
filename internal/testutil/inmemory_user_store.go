package testutil

import (
	"context"
	"sync"

	"github.com/givepoint/givepoint/internal/domain/user"
	ierr "github.com/givepoint/givepoint/internal/errors"
)

// InMemoryUserStore is an in-memory implementation of the user repository
type InMemoryUserStore struct {
	mu       sync.Mutex
	accounts map[string]*user.Account
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		accounts: make(map[string]*user.Account),
	}
}

func (s *InMemoryUserStore) Get(ctx context.Context, id string) (*user.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, exists := s.accounts[id]
	if !exists {
		return nil, ierr.NewError("account not found").
			WithHint("Account not found").
			Mark(ierr.ErrNotFound)
	}

	copy := *account
	return &copy, nil
}

func (s *InMemoryUserStore) Create(ctx context.Context, account *user.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.ID]; exists {
		return ierr.NewError("account already exists").
			WithHint("Account already exists").
			Mark(ierr.ErrAlreadyExists)
	}

	copy := *account
	s.accounts[account.ID] = &copy
	return nil
}

func (s *InMemoryUserStore) SetGatewayCustomerID(ctx context.Context, id string, customerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, exists := s.accounts[id]
	if !exists {
		return ierr.NewError("account not found").
			WithHint("Account not found").
			Mark(ierr.ErrNotFound)
	}

	account.GatewayCustomerID = &customerID
	return nil
}
