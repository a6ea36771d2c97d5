package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/florinledger/florin/internal/assist"
	"github.com/florinledger/florin/internal/cli"
	"github.com/florinledger/florin/internal/common"
	"github.com/florinledger/florin/internal/ledger"
	"github.com/florinledger/florin/internal/model"
)

// createAssistClient creates a model client based on configuration.
// This function is shared by the commands that need assistant functionality.
func createAssistClient() (assist.Client, error) {
	provider := viper.GetString("assistant.provider")
	if provider == "" {
		provider = "openai" // default provider
	}

	config := assist.Config{
		Provider:    provider,
		Model:       viper.GetString("assistant.model"),
		BaseURL:     viper.GetString("assistant.base_url"),
		Temperature: viper.GetFloat64("assistant.temperature"),
		MaxTokens:   viper.GetInt("assistant.max_tokens"),
	}

	// Get API key based on provider
	switch provider {
	case "openai":
		apiKey := viper.GetString("assistant.openai_api_key")
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("OpenAI API key not found in config or OPENAI_API_KEY environment variable")
		}
		config.APIKey = apiKey

	case "anthropic":
		apiKey := viper.GetString("assistant.anthropic_api_key")
		if apiKey == "" {
			apiKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("anthropic API key not found in config or ANTHROPIC_API_KEY environment variable")
		}
		config.APIKey = apiKey

	default:
		return nil, fmt.Errorf("unsupported assistant provider: %s", provider)
	}

	client, err := assist.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create assistant client: %w", err)
	}

	return client, nil
}

func assistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assist",
		Short: "Ask the assistant for drafts and advice",
		Long:  `Ask the configured language model to draft a transaction from free text or to comment on your recent spending.`,
	}

	cmd.AddCommand(assistDraftCmd())
	cmd.AddCommand(assistForecastCmd())
	cmd.AddCommand(assistAnalyzeCmd())

	return cmd
}

func assistDraftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft <text>",
		Short: "Draft a transaction from free text",
		Long: `Draft a transaction from a natural-language description.

Examples:
  florin assist draft "spent 12.50 on lunch yesterday"
  florin assist draft "march salary 3200" --save`,
		Args: cobra.ExactArgs(1),
		RunE: runAssistDraft,
	}

	cmd.Flags().Bool("save", false, "Save the drafted transaction to the ledger")

	return cmd
}

func runAssistDraft(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	save, _ := cmd.Flags().GetBool("save")

	client, err := createAssistClient()
	if err != nil {
		return err
	}
	bridge := assist.NewBridge(client)

	draft, err := bridge.DraftTransaction(ctx, args[0], time.Now())
	if err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			return &common.UserError{UserMessage: "Nothing to draft: the description is empty", Err: err}
		}
		// External failure proposes no changes; report and move on
		slog.Warn("draft extraction failed", "error", err)
		fmt.Println(cli.FormatWarning("The assistant could not extract a transaction from that text."))
		return nil
	}

	fmt.Println(cli.FormatTitle(fmt.Sprintf("%s Proposed transaction", cli.RobotIcon)))
	fmt.Printf("  Amount:      %s\n", cli.FormatAmount(draft.Type, draft.Amount))
	fmt.Printf("  Type:        %s\n", draft.Type)
	fmt.Printf("  Category:    %s\n", draft.Category)
	fmt.Printf("  Description: %s\n", draft.Description)
	fmt.Printf("  Date:        %s\n", draft.Date.Format("2006-01-02"))

	if !save {
		fmt.Println(cli.FormatInfo("Re-run with --save to record it."))
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	txn := draft.Transaction(currentUser())
	if err := store.CreateTransaction(ctx, txn); err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded transaction %s", txn.ID)))
	return nil
}

func assistForecastCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forecast",
		Short: "Ask for a short-term spending forecast",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAdvisory(cmd, "Forecast", (*assist.Bridge).Forecast)
		},
	}
}

func assistAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Ask for an analysis of your spending",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAdvisory(cmd, "Spending Analysis", (*assist.Bridge).Analyze)
		},
	}
}

// runAdvisory runs one advisory request and prints the response verbatim.
// An empty or failed response leaves everything as it was.
func runAdvisory(cmd *cobra.Command, title string, ask func(*assist.Bridge, context.Context, ledger.Summary, []model.Transaction) (string, error)) error {
	ctx := cmd.Context()

	client, err := createAssistClient()
	if err != nil {
		return err
	}
	bridge := assist.NewBridge(client)

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	txns, err := store.ListTransactions(ctx, currentUser())
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	advice, err := ask(bridge, ctx, ledger.Summarize(txns), txns)
	if err != nil {
		slog.Warn("advisory request failed", "error", err)
		fmt.Println(cli.FormatWarning("No advisory available right now."))
		return nil
	}

	fmt.Println(cli.RenderBox(fmt.Sprintf("%s %s", cli.RobotIcon, title), advice))
	return nil
}
