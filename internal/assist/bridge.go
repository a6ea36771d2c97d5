package assist

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/florinledger/florin/internal/common"
	"github.com/florinledger/florin/internal/ledger"
	"github.com/florinledger/florin/internal/model"
)

// maxPromptTransactions caps how many recent transactions ride along in an
// advisory prompt.
const maxPromptTransactions = 20

// Bridge turns free text into transaction drafts and aggregate figures into
// advisory prose. Every call is a single attempt against the provider; a
// failure surfaces as an error and the caller keeps whatever it had.
type Bridge struct {
	client Client
}

// NewBridge creates a bridge over the given provider client.
func NewBridge(client Client) *Bridge {
	return &Bridge{client: client}
}

// DraftTransaction extracts a transaction draft from free text. The reference
// time anchors relative dates like "yesterday". A provider failure or an
// unusable amount rejects the whole input; no partial draft is returned.
func (b *Bridge) DraftTransaction(ctx context.Context, text string, now time.Time) (model.Draft, error) {
	if strings.TrimSpace(text) == "" {
		return model.Draft{}, fmt.Errorf("%w: transaction text cannot be empty", common.ErrInvalidInput)
	}

	content, err := b.client.Generate(ctx, buildDraftPrompt(text, now), draftSystemPrompt)
	if err != nil {
		return model.Draft{}, fmt.Errorf("draft extraction failed: %w", err)
	}

	return parseDraft(content, now)
}

// Forecast produces a next-month spending forecast from the user's summary
// and most recent transactions.
func (b *Bridge) Forecast(ctx context.Context, summary ledger.Summary, recent []model.Transaction) (string, error) {
	return b.advise(ctx, buildForecastPrompt(summary, capRecent(recent)))
}

// Analyze produces a spending habit review from the user's summary and most
// recent transactions.
func (b *Bridge) Analyze(ctx context.Context, summary ledger.Summary, recent []model.Transaction) (string, error) {
	return b.advise(ctx, buildAnalysisPrompt(summary, capRecent(recent)))
}

// advise runs one advisory request. Non-blank responses are returned exactly
// as the provider sent them.
func (b *Bridge) advise(ctx context.Context, prompt string) (string, error) {
	content, err := b.client.Generate(ctx, prompt, advisorySystemPrompt)
	if err != nil {
		return "", fmt.Errorf("advisory request failed: %w", err)
	}

	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w: advisory response was empty", common.ErrEmptyResponse)
	}

	return content, nil
}

func capRecent(txns []model.Transaction) []model.Transaction {
	if len(txns) > maxPromptTransactions {
		return txns[:maxPromptTransactions]
	}
	return txns
}
