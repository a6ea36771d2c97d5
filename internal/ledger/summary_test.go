package ledger

import (
	"math"
	"testing"
	"time"

	"github.com/florinledger/florin/internal/model"
)

func txn(typ model.TransactionType, amount float64, category string) model.Transaction {
	return model.Transaction{
		ID:       "txn",
		UserID:   "user-1",
		Amount:   amount,
		Type:     typ,
		Category: category,
		Date:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name           string
		wantByCategory map[string]float64
		txns           []model.Transaction
		wantIncome     float64
		wantExpense    float64
		wantBalance    float64
	}{
		{
			name:           "empty sequence",
			txns:           nil,
			wantIncome:     0,
			wantExpense:    0,
			wantBalance:    0,
			wantByCategory: map[string]float64{},
		},
		{
			name: "income and grouped expenses",
			txns: []model.Transaction{
				txn(model.TypeIncome, 100000, "Salary"),
				txn(model.TypeExpense, 4000, "Food"),
				txn(model.TypeExpense, 1000, "Food"),
			},
			wantIncome:     100000,
			wantExpense:    5000,
			wantBalance:    95000,
			wantByCategory: map[string]float64{"Food": 5000},
		},
		{
			name: "income excluded from category breakdown",
			txns: []model.Transaction{
				txn(model.TypeIncome, 500, "Salary"),
				txn(model.TypeIncome, 200, "Gift"),
				txn(model.TypeExpense, 75, "Transport"),
			},
			wantIncome:     700,
			wantExpense:    75,
			wantBalance:    625,
			wantByCategory: map[string]float64{"Transport": 75},
		},
		{
			name: "expenses exceed income",
			txns: []model.Transaction{
				txn(model.TypeIncome, 100, "Salary"),
				txn(model.TypeExpense, 150, "Shopping"),
			},
			wantIncome:     100,
			wantExpense:    150,
			wantBalance:    -50,
			wantByCategory: map[string]float64{"Shopping": 150},
		},
		{
			name: "non-numeric amounts count as zero",
			txns: []model.Transaction{
				txn(model.TypeIncome, math.NaN(), "Salary"),
				txn(model.TypeExpense, math.Inf(1), "Food"),
				txn(model.TypeExpense, 40, "Food"),
			},
			wantIncome:     0,
			wantExpense:    40,
			wantBalance:    -40,
			wantByCategory: map[string]float64{"Food": 40},
		},
		{
			name: "unknown category strings still grouped",
			txns: []model.Transaction{
				txn(model.TypeExpense, 10, "Mystery"),
				txn(model.TypeExpense, 15, "Mystery"),
			},
			wantIncome:     0,
			wantExpense:    25,
			wantBalance:    -25,
			wantByCategory: map[string]float64{"Mystery": 25},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(tt.txns)

			if s.TotalIncome != tt.wantIncome {
				t.Errorf("TotalIncome = %v, want %v", s.TotalIncome, tt.wantIncome)
			}
			if s.TotalExpense != tt.wantExpense {
				t.Errorf("TotalExpense = %v, want %v", s.TotalExpense, tt.wantExpense)
			}
			if s.Balance != tt.wantBalance {
				t.Errorf("Balance = %v, want %v", s.Balance, tt.wantBalance)
			}
			if len(s.ExpenseByCategory) != len(tt.wantByCategory) {
				t.Errorf("ExpenseByCategory = %v, want %v", s.ExpenseByCategory, tt.wantByCategory)
			}
			for category, want := range tt.wantByCategory {
				if got := s.ExpenseByCategory[category]; got != want {
					t.Errorf("ExpenseByCategory[%q] = %v, want %v", category, got, want)
				}
			}

			// The balance identity must hold exactly for any input.
			if s.Balance != s.TotalIncome-s.TotalExpense {
				t.Errorf("balance identity violated: %v != %v - %v", s.Balance, s.TotalIncome, s.TotalExpense)
			}
		})
	}
}

func TestSummarize_Pure(t *testing.T) {
	txns := []model.Transaction{
		txn(model.TypeIncome, 100, "Salary"),
		txn(model.TypeExpense, 30, "Food"),
	}

	first := Summarize(txns)
	second := Summarize(txns)

	if first.Balance != second.Balance || first.TotalIncome != second.TotalIncome {
		t.Error("repeated invocations over the same sequence disagree")
	}
	if txns[0].Amount != 100 || txns[1].Amount != 30 {
		t.Error("Summarize mutated its input")
	}
}

func TestTopExpenseCategories(t *testing.T) {
	s := Summarize([]model.Transaction{
		txn(model.TypeExpense, 50, "Food"),
		txn(model.TypeExpense, 120, "Housing"),
		txn(model.TypeExpense, 75, "Transport"),
		txn(model.TypeExpense, 75, "Shopping"),
	})

	top := TopExpenseCategories(s, 3)
	if len(top) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(top))
	}
	if top[0].Category != "Housing" || top[0].Amount != 120 {
		t.Errorf("top[0] = %+v, want Housing 120", top[0])
	}
	// Equal amounts order by name for stability.
	if top[1].Category != "Shopping" || top[2].Category != "Transport" {
		t.Errorf("tie ordering = %s, %s, want Shopping, Transport", top[1].Category, top[2].Category)
	}

	all := TopExpenseCategories(s, 0)
	if len(all) != 4 {
		t.Errorf("n=0 should return all categories, got %d", len(all))
	}
}

func TestRecent(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
	}

	txns := []model.Transaction{
		{ID: "a", Date: day(1)},
		{ID: "b", Date: day(5)},
		{ID: "c", Date: day(3)},
		{ID: "d", Date: day(4)},
	}

	recent := Recent(txns, 2)
	if len(recent) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(recent))
	}
	if recent[0].ID != "b" || recent[1].ID != "d" {
		t.Errorf("recent order = %s, %s, want b, d", recent[0].ID, recent[1].ID)
	}

	// Input order untouched.
	if txns[0].ID != "a" {
		t.Error("Recent mutated its input")
	}
}
