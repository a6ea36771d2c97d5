// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/florinledger/florin/internal/model"
)

// Storage defines the contract for the persistence layer: a per-user
// collection of transaction documents supporting create, delete-by-id, and a
// live query that delivers full-snapshot replacements.
type Storage interface {
	// CreateTransaction inserts a record. Records are immutable once written.
	CreateTransaction(ctx context.Context, txn model.Transaction) error

	// DeleteTransaction removes the record with the given id from the user's
	// collection. Deleting an id that is not present is a no-op.
	DeleteTransaction(ctx context.Context, userID, id string) error

	// ListTransactions returns the user's full collection ordered by
	// occurrence date descending, creation time descending.
	ListTransactions(ctx context.Context, userID string) ([]model.Transaction, error)

	// Subscribe opens a live query over the user's collection. The channel
	// receives the full current snapshot immediately and again after every
	// change; each delivery is authoritative and replaces prior state
	// wholesale. The channel closes when ctx is done or the store closes.
	Subscribe(ctx context.Context, userID string) (<-chan []model.Transaction, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
