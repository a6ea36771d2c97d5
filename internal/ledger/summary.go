// Package ledger computes derived statistics over transaction records.
package ledger

import (
	"math"
	"sort"

	"github.com/florinledger/florin/internal/model"
)

// Summary holds the aggregate figures derived from a transaction set.
type Summary struct {
	// ExpenseByCategory maps category name to summed expense amount.
	// Income records are excluded entirely. Unordered.
	ExpenseByCategory map[string]float64
	TotalIncome       float64
	TotalExpense      float64
	// Balance is TotalIncome - TotalExpense, exactly.
	Balance float64
}

// Summarize computes totals and the per-category expense breakdown over the
// full sequence. Pure function: no side effects, and its only failure mode is
// treating non-numeric amounts as zero. Records whose category violates the
// set for their type are grouped by whatever string is present.
func Summarize(txns []model.Transaction) Summary {
	s := Summary{
		ExpenseByCategory: make(map[string]float64),
	}

	for _, txn := range txns {
		amount := numericOrZero(txn.Amount)
		switch txn.Type {
		case model.TypeIncome:
			s.TotalIncome += amount
		case model.TypeExpense:
			s.TotalExpense += amount
			s.ExpenseByCategory[txn.Category] += amount
		}
	}

	s.Balance = s.TotalIncome - s.TotalExpense
	return s
}

// numericOrZero maps the float64 renderings of "not a number" to zero.
func numericOrZero(amount float64) float64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}
	return amount
}

// CategoryAmount pairs a category with its summed expense amount.
type CategoryAmount struct {
	Category string
	Amount   float64
}

// TopExpenseCategories returns up to n categories ordered by amount
// descending, with category name as the tiebreak for a stable order.
// n <= 0 returns every category.
func TopExpenseCategories(s Summary, n int) []CategoryAmount {
	ranked := make([]CategoryAmount, 0, len(s.ExpenseByCategory))
	for category, amount := range s.ExpenseByCategory {
		ranked = append(ranked, CategoryAmount{Category: category, Amount: amount})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Amount != ranked[j].Amount {
			return ranked[i].Amount > ranked[j].Amount
		}
		return ranked[i].Category < ranked[j].Category
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Recent returns up to n transactions ordered by occurrence date descending,
// creation time as tiebreak. n <= 0 returns everything. The input slice is
// not modified.
func Recent(txns []model.Transaction, n int) []model.Transaction {
	recent := make([]model.Transaction, len(txns))
	copy(recent, txns)

	sort.Slice(recent, func(i, j int) bool {
		if !recent[i].Date.Equal(recent[j].Date) {
			return recent[i].Date.After(recent[j].Date)
		}
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})

	if n > 0 && len(recent) > n {
		recent = recent[:n]
	}
	return recent
}
