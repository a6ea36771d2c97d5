package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/florinledger/florin/internal/cli"
)

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction by id",
		Long: `Delete a transaction from the ledger.

Deleting an id that does not exist is a no-op; totals are recomputed
over whatever remains.`,
		Args: cobra.ExactArgs(1),
		RunE: runDelete,
	}
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.DeleteTransaction(ctx, currentUser(), args[0]); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted %s (if it existed)", args[0])))
	return nil
}
