package store

import (
	"context"

	"build-chat/src/accounts"
)

// MemoryStore is an in-memory implementation of Store.
// Used when no account source is configured, and in tests.
type MemoryStore struct {
	accounts []accounts.Account
}

// NewMemoryStore creates a store holding a fixed account list.
func NewMemoryStore(list ...accounts.Account) *MemoryStore {
	return &MemoryStore{accounts: list}
}

// Accounts returns a copy of the account list.
func (s *MemoryStore) Accounts(ctx context.Context) ([]accounts.Account, error) {
	out := make([]accounts.Account, len(s.accounts))
	copy(out, s.accounts)
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
