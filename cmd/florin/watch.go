package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/florinledger/florin/internal/cli"
	"github.com/florinledger/florin/internal/ledger"
)

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the ledger and reprint the summary on every change",
		Long: `Watch opens a live query over the current user's transactions. The full
summary is printed immediately and again whenever the collection changes.
Each update replaces the previous state wholesale. Press Ctrl+C to stop.`,
		RunE: runWatch,
	}
}

func runWatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	snapshots, err := store.Subscribe(ctx, currentUser())
	if err != nil {
		return fmt.Errorf("failed to subscribe to transactions: %w", err)
	}

	fmt.Println(cli.FormatInfo(cli.WatchIcon + " Watching for changes. Press Ctrl+C to stop."))

	for txns := range snapshots {
		summary := ledger.Summarize(txns)
		fmt.Println(renderSummary(summary, len(txns), 0))
	}

	return nil
}
