package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/florinledger/florin/internal/cli"
	"github.com/florinledger/florin/internal/ledger"
	"github.com/florinledger/florin/internal/model"
)

func summaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show income, expenses, and balance",
		Long: `Show the financial summary for the current user: total income, total
expenses, the resulting balance, and a per-category breakdown of spending.`,
		RunE: runSummary,
	}

	cmd.Flags().IntP("top", "n", 0, "Limit the category breakdown to the top N categories (0 = all)")

	return cmd
}

func runSummary(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	txns, err := store.ListTransactions(ctx, currentUser())
	if err != nil {
		return fmt.Errorf("failed to list transactions: %w", err)
	}

	top, _ := cmd.Flags().GetInt("top")

	summary := ledger.Summarize(txns)
	fmt.Println(renderSummary(summary, len(txns), top))

	return nil
}

// renderSummary formats a ledger summary for terminal display.
func renderSummary(summary ledger.Summary, txnCount, top int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Total Income:    %s\n", cli.FormatAmount(model.TypeIncome, summary.TotalIncome)))
	b.WriteString(fmt.Sprintf("Total Expenses:  %s\n", cli.FormatAmount(model.TypeExpense, summary.TotalExpense)))
	b.WriteString(fmt.Sprintf("Balance:         %s\n", cli.FormatBalance(summary.Balance)))
	b.WriteString(fmt.Sprintf("Transactions:    %d", txnCount))

	breakdown := ledger.TopExpenseCategories(summary, top)
	if len(breakdown) > 0 {
		b.WriteString("\n\n")
		b.WriteString(cli.SubtitleStyle.UnsetMargins().Render("Expenses by category"))
		for _, entry := range breakdown {
			b.WriteString(fmt.Sprintf("\n  %-14s %10.2f", entry.Category, entry.Amount))
		}
	}

	return cli.RenderBox(cli.ChartIcon+" Summary", b.String())
}
