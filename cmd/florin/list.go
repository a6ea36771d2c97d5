package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/florinledger/florin/internal/cli"
	"github.com/florinledger/florin/internal/model"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded transactions",
		RunE:  runList,
	}

	cmd.Flags().IntP("limit", "n", 0, "Show at most this many transactions (0 = all)")

	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	txns, err := store.ListTransactions(ctx, currentUser())
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	if len(txns) == 0 {
		fmt.Println(cli.FormatInfo("No transactions recorded yet. Try 'florin add'."))
		return nil
	}

	if limit > 0 && len(txns) > limit {
		txns = txns[:limit]
	}

	fmt.Println(renderTransactionList(txns))
	return nil
}

// renderTransactionList formats transactions as an aligned listing,
// newest first.
func renderTransactionList(txns []model.Transaction) string {
	var b strings.Builder

	b.WriteString(cli.TitleStyle.Render(fmt.Sprintf("%s Transactions", cli.CoinIcon)))
	b.WriteString("\n")

	for _, txn := range txns {
		desc := txn.Description
		if desc == "" {
			desc = "-"
		}
		b.WriteString(fmt.Sprintf("%s  %-10s  %-13s  %10s  %s\n",
			txn.Date.Format("2006-01-02"),
			txn.Type,
			txn.Category,
			cli.FormatAmount(txn.Type, txn.Amount),
			cli.SubtleStyle.Render(desc),
		))
	}

	b.WriteString(cli.SubtleStyle.Render(fmt.Sprintf("%d transaction(s)", len(txns))))
	return b.String()
}
