package model

import "time"

// Draft is an assistant-proposed transaction parsed from free text. It is
// validated before being offered to the user and is never persisted directly;
// accepting a draft creates a regular Transaction.
type Draft struct {
	Date        time.Time
	Category    string
	Description string
	Type        TransactionType
	Amount      float64
}

// Transaction converts an accepted draft into a persistable transaction for
// the given user.
func (d *Draft) Transaction(userID string) Transaction {
	return NewTransaction(userID, d.Amount, d.Type, d.Category, d.Description, d.Date)
}
