package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/florinledger/florin/internal/cli"
	"github.com/florinledger/florin/internal/plaid"
)

func importPlaidCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plaid",
		Short: "Import transactions from connected Plaid accounts",
		Long: `Import transactions from your connected Plaid accounts.

Credentials come from the config file (plaid.client_id, plaid.secret,
plaid.environment, plaid.access_token) or the PLAID_CLIENT_ID, PLAID_SECRET,
PLAID_ENV, and PLAID_ACCESS_TOKEN environment variables.`,
		RunE: runImportPlaid,
	}

	cmd.Flags().StringP("start", "s", "", "Start date (format: 2006-01-02)")
	cmd.Flags().StringP("end", "e", "", "End date (format: 2006-01-02)")
	cmd.Flags().Int("days", 30, "Number of days to import when no start date is given")
	cmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")
	cmd.Flags().Bool("list-accounts", false, "List connected account IDs without importing")

	return cmd
}

func runImportPlaid(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	client, err := createPlaidClient()
	if err != nil {
		return err
	}

	if list, _ := cmd.Flags().GetBool("list-accounts"); list {
		accounts, err := client.GetAccounts(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch accounts: %w", err)
		}
		fmt.Println(cli.FormatTitle("Connected accounts"))
		for _, id := range accounts {
			fmt.Printf("  - %s\n", id)
		}
		return nil
	}

	startStr, _ := cmd.Flags().GetString("start")
	endStr, _ := cmd.Flags().GetString("end")
	days, _ := cmd.Flags().GetInt("days")

	start, end, err := resolveDateRange(startStr, endStr, days, time.Now())
	if err != nil {
		return err
	}

	slog.Info("Importing transactions from Plaid",
		"start", start.Format("2006-01-02"),
		"end", end.Format("2006-01-02"))

	drafts, err := client.GetTransactions(ctx, start, end)
	if err != nil {
		return fmt.Errorf("failed to fetch transactions: %w", err)
	}
	if len(drafts) == 0 {
		fmt.Println(cli.FormatInfo("No transactions found in that date range."))
		return nil
	}

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		previewDrafts(drafts)
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	saved := saveTransactions(ctx, store, draftsToTransactions(currentUser(), drafts))
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d transaction(s) from Plaid", saved)))

	return nil
}

// createPlaidClient builds a Plaid client from config keys, falling back to
// environment variables for anything unset.
func createPlaidClient() (*plaid.Client, error) {
	cfg := plaid.Config{
		ClientID:    viper.GetString("plaid.client_id"),
		Secret:      viper.GetString("plaid.secret"),
		Environment: viper.GetString("plaid.environment"),
		AccessToken: viper.GetString("plaid.access_token"),
	}

	if cfg.ClientID == "" {
		cfg.ClientID = os.Getenv("PLAID_CLIENT_ID")
	}
	if cfg.Secret == "" {
		cfg.Secret = os.Getenv("PLAID_SECRET")
	}
	if cfg.Environment == "" {
		cfg.Environment = os.Getenv("PLAID_ENV")
	}
	if cfg.AccessToken == "" {
		cfg.AccessToken = os.Getenv("PLAID_ACCESS_TOKEN")
	}
	if cfg.Environment == "" {
		cfg.Environment = "sandbox"
	}

	return plaid.NewClient(cfg)
}

// resolveDateRange turns the start/end flags into a concrete range. A missing
// end defaults to today; a missing start defaults to end minus the given
// number of days.
func resolveDateRange(startStr, endStr string, days int, now time.Time) (start, end time.Time, err error) {
	end = now
	if endStr != "" {
		end, err = time.Parse("2006-01-02", endStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q: expected format 2006-01-02", endStr)
		}
	}

	if startStr != "" {
		start, err = time.Parse("2006-01-02", startStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q: expected format 2006-01-02", startStr)
		}
	} else {
		start = end.AddDate(0, 0, -days)
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start date %s is after end date %s",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	return start, end, nil
}
