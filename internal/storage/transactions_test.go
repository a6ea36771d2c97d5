package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/florinledger/florin/internal/model"
)

func TestCreateAndListTransactions(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	txns := []model.Transaction{
		testTxn("txn-1", "user-1", 42.50, model.TypeExpense, "Food", base, base),
		testTxn("txn-2", "user-1", 1200, model.TypeIncome, "Salary", base.AddDate(0, 0, 2), base),
		testTxn("txn-3", "user-1", 15, model.TypeExpense, "Transport", base.AddDate(0, 0, 1), base),
	}
	for _, txn := range txns {
		if err := store.CreateTransaction(ctx, txn); err != nil {
			t.Fatalf("CreateTransaction(%s) error = %v", txn.ID, err)
		}
	}

	got, err := store.ListTransactions(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListTransactions() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ListTransactions() returned %d transactions, want 3", len(got))
	}

	// Most recent occurrence date first.
	wantOrder := []string{"txn-2", "txn-3", "txn-1"}
	for i, want := range wantOrder {
		if got[i].ID != want {
			t.Errorf("position %d: got ID %s, want %s", i, got[i].ID, want)
		}
	}

	first := got[0]
	if first.Amount != 1200 || first.Type != model.TypeIncome || first.Category != "Salary" {
		t.Errorf("round-trip mismatch: got %+v", first)
	}
}

func TestListTransactions_SameDateOrdersByCreation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	older := testTxn("txn-old", "user-1", 5, model.TypeExpense, "Food", date, date.Add(1*time.Minute))
	newer := testTxn("txn-new", "user-1", 6, model.TypeExpense, "Food", date, date.Add(2*time.Minute))

	if err := store.CreateTransaction(ctx, newer); err != nil {
		t.Fatalf("CreateTransaction() error = %v", err)
	}
	if err := store.CreateTransaction(ctx, older); err != nil {
		t.Fatalf("CreateTransaction() error = %v", err)
	}

	got, err := store.ListTransactions(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListTransactions() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListTransactions() returned %d transactions, want 2", len(got))
	}
	if got[0].ID != "txn-new" || got[1].ID != "txn-old" {
		t.Errorf("order = [%s, %s], want [txn-new, txn-old]", got[0].ID, got[1].ID)
	}
}

func TestListTransactions_UserIsolation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	if err := store.CreateTransaction(ctx, testTxn("txn-a", "alice", 10, model.TypeExpense, "Food", date, date)); err != nil {
		t.Fatalf("CreateTransaction() error = %v", err)
	}
	if err := store.CreateTransaction(ctx, testTxn("txn-b", "bob", 20, model.TypeExpense, "Food", date, date)); err != nil {
		t.Fatalf("CreateTransaction() error = %v", err)
	}

	got, err := store.ListTransactions(ctx, "alice")
	if err != nil {
		t.Fatalf("ListTransactions() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "txn-a" {
		t.Errorf("alice sees %v, want only txn-a", got)
	}
}

func TestListTransactions_EmptyCollection(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	got, err := store.ListTransactions(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("ListTransactions() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ListTransactions() returned %d transactions, want 0", len(got))
	}
}

func TestDeleteTransaction(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	if err := store.CreateTransaction(ctx, testTxn("txn-1", "user-1", 10, model.TypeExpense, "Food", date, date)); err != nil {
		t.Fatalf("CreateTransaction() error = %v", err)
	}

	if err := store.DeleteTransaction(ctx, "user-1", "txn-1"); err != nil {
		t.Fatalf("DeleteTransaction() error = %v", err)
	}

	got, err := store.ListTransactions(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListTransactions() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("transaction still present after delete: %v", got)
	}
}

func TestDeleteTransaction_UnknownIDIsNoOp(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	if err := store.DeleteTransaction(context.Background(), "user-1", "no-such-id"); err != nil {
		t.Errorf("DeleteTransaction() of unknown id should be a no-op, got error = %v", err)
	}
}

func TestDeleteTransaction_OtherUsersRecordIsNoOp(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	if err := store.CreateTransaction(ctx, testTxn("txn-1", "alice", 10, model.TypeExpense, "Food", date, date)); err != nil {
		t.Fatalf("CreateTransaction() error = %v", err)
	}

	// Bob addressing Alice's id must not touch her record.
	if err := store.DeleteTransaction(ctx, "bob", "txn-1"); err != nil {
		t.Fatalf("DeleteTransaction() error = %v", err)
	}

	got, err := store.ListTransactions(ctx, "alice")
	if err != nil {
		t.Fatalf("ListTransactions() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("alice's transaction was deleted through bob's scope")
	}
}

func TestCreateTransaction_Validation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		txn  model.Transaction
	}{
		{name: "missing ID", txn: testTxn("", "user-1", 10, model.TypeExpense, "Food", date, date)},
		{name: "missing user", txn: testTxn("txn-1", "", 10, model.TypeExpense, "Food", date, date)},
		{name: "zero date", txn: testTxn("txn-1", "user-1", 10, model.TypeExpense, "Food", time.Time{}, date)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.CreateTransaction(ctx, tt.txn)
			if !errors.Is(err, ErrInvalidTransaction) {
				t.Errorf("CreateTransaction() error = %v, want ErrInvalidTransaction", err)
			}
		})
	}
}

func TestTransactionOperations_RequireContext(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	if err := store.CreateTransaction(nil, model.Transaction{}); !errors.Is(err, ErrNilContext) { //nolint:staticcheck
		t.Errorf("CreateTransaction(nil ctx) error = %v, want ErrNilContext", err)
	}
	if err := store.DeleteTransaction(nil, "user-1", "txn-1"); !errors.Is(err, ErrNilContext) { //nolint:staticcheck
		t.Errorf("DeleteTransaction(nil ctx) error = %v, want ErrNilContext", err)
	}
	if _, err := store.ListTransactions(nil, "user-1"); !errors.Is(err, ErrNilContext) { //nolint:staticcheck
		t.Errorf("ListTransactions(nil ctx) error = %v, want ErrNilContext", err)
	}
}
