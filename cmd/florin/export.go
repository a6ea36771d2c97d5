package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/florinledger/florin/internal/cli"
	"github.com/florinledger/florin/internal/config"
	"github.com/florinledger/florin/internal/ledger"
	"github.com/florinledger/florin/internal/service"
	"github.com/florinledger/florin/internal/sheets"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the ledger to external destinations",
	}

	cmd.AddCommand(exportSheetsCmd())

	return cmd
}

func exportSheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets",
		Short: "Export a financial report to Google Sheets",
		Long: `Export the current user's transactions and summary to a Google Sheets
spreadsheet. The sheet is cleared and rewritten on every export.

Run 'florin auth sheets' first to set up credentials.`,
		RunE: runExportSheets,
	}
}

func runExportSheets(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	sheetsConfig, err := config.LoadSheetsConfig()
	if err != nil {
		return fmt.Errorf("sheets configuration error: %w\n\nRun 'florin auth sheets' to set up credentials", err)
	}

	writer, err := sheets.NewWriter(ctx, *sheetsConfig, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to create sheets writer: %w", err)
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	count, err := exportReport(ctx, store, writer, currentUser())
	if err != nil {
		return fmt.Errorf("failed to export report: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d transaction(s) to Google Sheets", count)))

	return nil
}

// exportReport loads the user's ledger, summarizes it, and hands both to the
// report writer. It returns the number of transactions exported.
func exportReport(ctx context.Context, store service.Storage, writer sheets.ReportWriter, userID string) (int, error) {
	txns, err := store.ListTransactions(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to list transactions: %w", err)
	}

	summary := ledger.Summarize(txns)
	if err := writer.Write(ctx, txns, summary); err != nil {
		return 0, err
	}

	return len(txns), nil
}
