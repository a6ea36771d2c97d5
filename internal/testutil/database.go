// Package testutil provides shared test helpers for storage-backed tests.
package testutil

import (
	"context"
	"testing"

	"github.com/florinledger/florin/internal/model"
	"github.com/florinledger/florin/internal/storage"
)

// NewTestStorage creates an in-memory migrated store that is closed when the
// test finishes.
func NewTestStorage(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// SeedTransactions inserts the given records, failing the test on any error.
func SeedTransactions(t *testing.T, store *storage.SQLiteStorage, txns ...model.Transaction) {
	t.Helper()

	ctx := context.Background()
	for _, txn := range txns {
		if err := store.CreateTransaction(ctx, txn); err != nil {
			t.Fatalf("failed to seed transaction %q: %v", txn.ID, err)
		}
	}
}
