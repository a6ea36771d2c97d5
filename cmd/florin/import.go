package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/florinledger/florin/internal/cli"
	"github.com/florinledger/florin/internal/model"
	"github.com/florinledger/florin/internal/service"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import transactions from external sources",
		Long: `Import transactions from bank exports or connected accounts.

Each source produces drafts that are converted into regular transactions and
saved to the current user's ledger. Nothing is deduplicated: importing the
same file twice records everything twice.`,
	}

	cmd.AddCommand(importOFXCmd())
	cmd.AddCommand(importPlaidCmd())

	return cmd
}

// draftsToTransactions converts imported drafts into transactions owned by
// the given user.
func draftsToTransactions(userID string, drafts []model.Draft) []model.Transaction {
	txns := make([]model.Transaction, 0, len(drafts))
	for i := range drafts {
		txns = append(txns, drafts[i].Transaction(userID))
	}
	return txns
}

// saveTransactions inserts transactions one at a time, showing progress.
// Individual failures are logged and skipped; the count of saved records is
// returned.
func saveTransactions(ctx context.Context, store service.Storage, txns []model.Transaction) int {
	bar := progressbar.NewOptions(len(txns),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Saving transactions...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)

	saved := 0
	for _, txn := range txns {
		if err := store.CreateTransaction(ctx, txn); err != nil {
			slog.Error("Failed to save transaction",
				"id", txn.ID,
				"description", txn.Description,
				"error", err)
		} else {
			saved++
		}
		if err := bar.Add(1); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
	}

	return saved
}

// previewDrafts prints imported drafts without saving them.
func previewDrafts(drafts []model.Draft) {
	fmt.Println(cli.FormatInfo(fmt.Sprintf("Dry run: %d transaction(s) would be imported", len(drafts))))
	for _, d := range drafts {
		fmt.Printf("  %s  %-10s  %-13s  %10s  %s\n",
			d.Date.Format("2006-01-02"),
			d.Type,
			d.Category,
			cli.FormatAmount(d.Type, d.Amount),
			cli.SubtleStyle.Render(d.Description),
		)
	}
}
