// Package model defines the core domain types for the finance tracker.
package model

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// TransactionType indicates whether a transaction is income or an expense.
type TransactionType string

const (
	// TypeIncome represents money coming in.
	TypeIncome TransactionType = "income"
	// TypeExpense represents money going out.
	TypeExpense TransactionType = "expense"
)

// Valid reports whether the type is one of the known values.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction represents a single income or expense record.
// Records are immutable after creation: they are inserted once and only
// ever removed, never updated.
type Transaction struct {
	Date        time.Time // occurrence time, user-editable at entry
	CreatedAt   time.Time // system-assigned, immutable
	ID          string
	UserID      string
	Category    string
	Description string
	Type        TransactionType
	Amount      float64
}

// NewTransaction builds a transaction with a fresh identifier and creation
// timestamp. Identical submissions get distinct IDs; nothing is deduplicated.
func NewTransaction(userID string, amount float64, typ TransactionType, category, description string, date time.Time) Transaction {
	return Transaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		Amount:      amount,
		Type:        typ,
		Category:    category,
		Description: description,
		Date:        date,
		CreatedAt:   time.Now().UTC(),
	}
}

// Validate checks a transaction before it is offered for persistence.
func (t *Transaction) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("transaction missing ID")
	}
	if t.UserID == "" {
		return fmt.Errorf("transaction missing user ID")
	}
	if !t.Type.Valid() {
		return fmt.Errorf("invalid transaction type: %q", t.Type)
	}
	if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) {
		return fmt.Errorf("transaction amount is not a number")
	}
	if t.Amount < 0 {
		return fmt.Errorf("transaction amount cannot be negative")
	}
	if t.Date.IsZero() {
		return fmt.Errorf("transaction missing date")
	}
	return nil
}
