// Package store provides the sources of the account mapping table.
package store

import (
	"context"

	"build-chat/src/accounts"
)

// Store defines the interface for reading the account mapping.
type Store interface {
	// Accounts returns every account record
	Accounts(ctx context.Context) ([]accounts.Account, error)

	// Close releases the store connection
	Close() error
}

// Open returns the account source for the given settings. The blob store
// takes precedence over Postgres. With neither set, an empty MemoryStore is
// returned and configured is false.
func Open(connectionString, postgresDSN string) (st Store, configured bool, err error) {
	switch {
	case connectionString != "":
		st, err = NewBlobStore(connectionString)
	case postgresDSN != "":
		st, err = NewPostgresStore(postgresDSN)
	default:
		return NewMemoryStore(), false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return st, true, nil
}
