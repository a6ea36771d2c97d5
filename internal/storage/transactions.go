package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/florinledger/florin/internal/model"
)

// CreateTransaction inserts a single transaction into the user's collection
// and notifies live-query subscribers.
func (s *SQLiteStorage) CreateTransaction(ctx context.Context, txn model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(&txn); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, amount, type, category, description, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		txn.ID,
		txn.UserID,
		txn.Amount,
		string(txn.Type),
		txn.Category,
		txn.Description,
		txn.Date,
		txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", txn.ID, err)
	}

	s.notifyChange(ctx, txn.UserID)
	return nil
}

// DeleteTransaction removes the record with the given id from the user's
// collection. Deleting an id that is not present is a no-op; subscribers are
// only notified when a row was actually removed.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, userID, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", id, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if rows == 0 {
		slog.Debug("delete of unknown transaction id ignored", "user_id", userID, "id", id)
		return nil
	}

	s.notifyChange(ctx, userID)
	return nil
}

// ListTransactions returns the user's full collection ordered by occurrence
// date descending, creation time descending.
func (s *SQLiteStorage) ListTransactions(ctx context.Context, userID string) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, amount, type, category, description, date, created_at
		FROM transactions
		WHERE user_id = ?
		ORDER BY date DESC, created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		var typ string
		if err := rows.Scan(
			&txn.ID,
			&txn.UserID,
			&txn.Amount,
			&typ,
			&txn.Category,
			&txn.Description,
			&txn.Date,
			&txn.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txn.Type = model.TransactionType(typ)
		transactions = append(transactions, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return transactions, nil
}

// notifyChange rebuilds the user's snapshot and broadcasts it to subscribers.
// The snapshot query runs detached from the caller's context so a cancelled
// request cannot starve the live feed.
func (s *SQLiteStorage) notifyChange(ctx context.Context, userID string) {
	if !s.watcher.hasSubscribers(userID) {
		return
	}

	snapshot, err := s.ListTransactions(context.WithoutCancel(ctx), userID)
	if err != nil {
		slog.Warn("failed to build change snapshot", "user_id", userID, "error", err)
		return
	}

	s.watcher.broadcast(userID, snapshot)
}
