package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/florinledger/florin/internal/cli"
	"github.com/florinledger/florin/internal/common"
	"github.com/florinledger/florin/internal/model"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Long: `Record an income or expense transaction.

Examples:
  florin add --amount 12.50 --category Food --description "lunch"
  florin add --amount 3200 --type income --category Salary --date 2025-03-01`,
		RunE: runAdd,
	}

	cmd.Flags().StringP("amount", "a", "", "Transaction amount (required)")
	cmd.Flags().StringP("type", "t", "expense", "Transaction type (income, expense)")
	cmd.Flags().StringP("category", "c", "", "Category (defaults to the first for the type)")
	cmd.Flags().StringP("description", "m", "", "Free-text description")
	cmd.Flags().StringP("date", "d", "", "Occurrence date (YYYY-MM-DD, defaults to today)")

	return cmd
}

func runAdd(cmd *cobra.Command, _ []string) error {
	amount, _ := cmd.Flags().GetString("amount")
	typ, _ := cmd.Flags().GetString("type")
	category, _ := cmd.Flags().GetString("category")
	description, _ := cmd.Flags().GetString("description")
	date, _ := cmd.Flags().GetString("date")

	// Input is validated in full before storage is touched
	txn, err := buildTransaction(currentUser(), amount, typ, category, description, date, time.Now())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.CreateTransaction(ctx, txn); err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s %s (%s)",
		txn.Category, cli.FormatAmount(txn.Type, txn.Amount), txn.ID)))

	return nil
}

// buildTransaction validates the raw flag values and assembles a record.
// A missing or non-numeric amount is rejected here, before any storage or
// network call, with nothing partially applied.
func buildTransaction(userID, amountStr, typStr, category, description, dateStr string, now time.Time) (model.Transaction, error) {
	amountStr = strings.TrimSpace(amountStr)
	if amountStr == "" {
		return model.Transaction{}, &common.UserError{
			UserMessage: "Amount is required",
			Err:         common.ErrInvalidInput,
		}
	}

	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil {
		return model.Transaction{}, &common.UserError{
			UserMessage: fmt.Sprintf("Amount %q is not a number", amountStr),
			Err:         common.ErrInvalidInput,
		}
	}
	if amount <= 0 {
		return model.Transaction{}, &common.UserError{
			UserMessage: "Amount must be greater than zero",
			Err:         common.ErrInvalidInput,
		}
	}

	typ := model.TransactionType(strings.ToLower(strings.TrimSpace(typStr)))
	if typ == "" {
		typ = model.TypeExpense
	}
	if !typ.Valid() {
		return model.Transaction{}, &common.UserError{
			UserMessage: fmt.Sprintf("Type %q is not one of income, expense", typStr),
			Err:         common.ErrInvalidInput,
		}
	}

	// Unknown categories land on the first category for the type
	category = model.NormalizeCategory(typ, category)

	date := now
	if strings.TrimSpace(dateStr) != "" {
		parsed, err := time.Parse("2006-01-02", strings.TrimSpace(dateStr))
		if err != nil {
			return model.Transaction{}, &common.UserError{
				UserMessage: fmt.Sprintf("Date %q is not in YYYY-MM-DD form", dateStr),
				Err:         common.ErrInvalidInput,
			}
		}
		date = parsed
	}

	return model.NewTransaction(userID, amount, typ, category, strings.TrimSpace(description), date), nil
}
