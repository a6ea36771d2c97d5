// Package plaid provides a client for importing transactions from the Plaid API.
package plaid

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/plaid/plaid-go/v20/plaid"

	"github.com/florinledger/florin/internal/common"
	"github.com/florinledger/florin/internal/model"
)

// Config holds Plaid API configuration.
type Config struct {
	ClientID    string
	Secret      string
	Environment string // sandbox or production
	AccessToken string
}

// Validate ensures all required fields are present.
func (c *Config) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("%w: plaid client ID is required", common.ErrMissingConfig)
	}
	if c.Secret == "" {
		return fmt.Errorf("%w: plaid secret is required", common.ErrMissingConfig)
	}
	if c.AccessToken == "" {
		return fmt.Errorf("%w: plaid access token is required", common.ErrMissingConfig)
	}
	if c.Environment == "" {
		return fmt.Errorf("%w: plaid environment is required", common.ErrMissingConfig)
	}

	validEnvs := map[string]bool{
		"sandbox":    true,
		"production": true,
	}
	if !validEnvs[c.Environment] {
		return fmt.Errorf("%w: invalid Plaid environment: must be sandbox or production", common.ErrInvalidConfig)
	}

	return nil
}

// Client fetches transactions from Plaid and maps them into drafts.
type Client struct {
	client      *plaid.APIClient
	logger      *slog.Logger
	accessToken string
	environment string
}

// NewClient creates a new Plaid client with the given configuration.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configuration := plaid.NewConfiguration()
	configuration.AddDefaultHeader("PLAID-CLIENT-ID", cfg.ClientID)
	configuration.AddDefaultHeader("PLAID-SECRET", cfg.Secret)

	switch cfg.Environment {
	case "sandbox":
		configuration.UseEnvironment(plaid.Sandbox)
	case "production":
		configuration.UseEnvironment(plaid.Production)
	}

	return &Client{
		client:      plaid.NewAPIClient(configuration),
		accessToken: cfg.AccessToken,
		environment: cfg.Environment,
		logger:      slog.Default().With("component", "plaid"),
	}, nil
}

// GetTransactions fetches transactions from Plaid within the specified date
// range. Each page is requested exactly once; any failure, including a rate
// limit, aborts the fetch and surfaces to the caller.
func (c *Client) GetTransactions(ctx context.Context, startDate, endDate time.Time) ([]model.Draft, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}

	if startDate.After(endDate) {
		return nil, fmt.Errorf("%w: start date must be before end date", common.ErrInvalidInput)
	}

	c.logger.Info("Fetching transactions from Plaid",
		"start_date", startDate.Format("2006-01-02"),
		"end_date", endDate.Format("2006-01-02"))

	var allTransactions []plaid.Transaction
	offset := int32(0)
	const pageSize = int32(500) // Plaid's max page size

	for {
		request := plaid.NewTransactionsGetRequest(
			c.accessToken,
			startDate.Format("2006-01-02"),
			endDate.Format("2006-01-02"),
		)
		options := plaid.TransactionsGetRequestOptions{
			Count:  plaid.PtrInt32(pageSize),
			Offset: plaid.PtrInt32(offset),
		}
		request.SetOptions(options)

		resp, _, err := c.client.PlaidApi.TransactionsGet(ctx).TransactionsGetRequest(*request).Execute()
		if err != nil {
			if plaidError := extractPlaidError(err); plaidError != nil {
				return nil, fmt.Errorf("%w: plaid API error: %s - %s", common.ErrTransport, plaidError.ErrorCode, plaidError.ErrorMessage)
			}
			return nil, fmt.Errorf("%w: failed to fetch transactions: %v", common.ErrTransport, err)
		}

		page := resp.GetTransactions()
		c.logger.Debug("Fetched transaction batch",
			"count", len(page),
			"offset", offset,
			"total", resp.GetTotalTransactions())

		allTransactions = append(allTransactions, page...)

		if len(page) < int(pageSize) {
			break
		}
		offset += pageSize
	}

	c.logger.Info("Fetched all transactions", "count", len(allTransactions))

	drafts := make([]model.Draft, 0, len(allTransactions))
	for _, pt := range allTransactions {
		drafts = append(drafts, c.mapPlaidTransaction(pt))
	}

	return drafts, nil
}

// GetAccounts fetches account IDs from Plaid.
func (c *Client) GetAccounts(ctx context.Context) ([]string, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}

	c.logger.Info("Fetching accounts from Plaid")

	request := plaid.NewAccountsGetRequest(c.accessToken)
	resp, _, err := c.client.PlaidApi.AccountsGet(ctx).AccountsGetRequest(*request).Execute()
	if err != nil {
		if plaidError := extractPlaidError(err); plaidError != nil {
			return nil, fmt.Errorf("%w: plaid API error: %s - %s", common.ErrTransport, plaidError.ErrorCode, plaidError.ErrorMessage)
		}
		return nil, fmt.Errorf("%w: failed to fetch accounts: %v", common.ErrTransport, err)
	}

	accounts := resp.GetAccounts()
	c.logger.Info("Fetched accounts", "count", len(accounts))

	accountIDs := make([]string, 0, len(accounts))
	for _, account := range accounts {
		accountIDs = append(accountIDs, account.GetAccountId())
	}

	return accountIDs, nil
}

// mapPlaidTransaction converts a Plaid transaction into a draft. In Plaid,
// positive amounts are money out and negative amounts are money in.
func (c *Client) mapPlaidTransaction(pt plaid.Transaction) model.Draft {
	date, err := time.Parse("2006-01-02", pt.GetDate())
	if err != nil {
		c.logger.Warn("Failed to parse transaction date", "date", pt.GetDate(), "error", err)
		date = time.Now()
	}

	merchantName := pt.GetMerchantName()
	if merchantName == "" {
		merchantName = pt.GetName()
	}
	merchantName = cleanMerchantName(merchantName)

	typ, amount := splitAmount(pt.GetAmount())

	return model.Draft{
		Amount:      amount,
		Type:        typ,
		Category:    mapPlaidCategory(typ, pt.GetCategory()),
		Description: merchantName,
		Date:        date,
	}
}

// splitAmount derives the transaction type from the sign of a Plaid amount
// and returns the absolute value.
func splitAmount(amount float64) (model.TransactionType, float64) {
	if amount < 0 {
		return model.TypeIncome, -amount
	}
	return model.TypeExpense, amount
}

// plaidExpenseCategories maps Plaid's expense category names onto ours.
var plaidExpenseCategories = map[string]string{
	"food and drink":             "Food",
	"groceries":                  "Food",
	"restaurants":                "Food",
	"travel":                     "Transport",
	"transportation":             "Transport",
	"taxi":                       "Transport",
	"gas stations":               "Transport",
	"rent":                       "Housing",
	"mortgage":                   "Housing",
	"home improvement":           "Housing",
	"utilities":                  "Utilities",
	"telecommunication services": "Utilities",
	"recreation":                 "Entertainment",
	"entertainment":              "Entertainment",
	"arts and entertainment":     "Entertainment",
	"healthcare":                 "Health",
	"medical":                    "Health",
	"pharmacies":                 "Health",
	"shops":                      "Shopping",
	"general merchandise":        "Shopping",
	"clothing and accessories":   "Shopping",
	"education":                  "Education",
}

// plaidIncomeCategories maps Plaid's income category names onto ours.
var plaidIncomeCategories = map[string]string{
	"payroll":    "Salary",
	"salary":     "Salary",
	"interest":   "Investment",
	"dividends":  "Investment",
	"investment": "Investment",
	"gift":       "Gift",
}

// mapPlaidCategory picks a category for the transaction type from Plaid's
// category hierarchy, most specific element first. Unknown hierarchies land
// in Other rather than guessing.
func mapPlaidCategory(typ model.TransactionType, hierarchy []string) string {
	table := plaidExpenseCategories
	if typ == model.TypeIncome {
		table = plaidIncomeCategories
	}

	for i := len(hierarchy) - 1; i >= 0; i-- {
		entry := strings.TrimSpace(hierarchy[i])
		if model.ValidCategory(typ, entry) {
			return model.NormalizeCategory(typ, entry)
		}
		if mapped, ok := table[strings.ToLower(entry)]; ok {
			return mapped
		}
	}

	return "Other"
}

// cleanMerchantName standardizes merchant names by title-casing them and
// stripping trailing transaction IDs.
func cleanMerchantName(name string) string {
	words := strings.Fields(strings.ToLower(name))
	for i, word := range words {
		runes := []rune(word)
		for j := range runes {
			if j == 0 || !isLetter(runes[j-1]) {
				runes[j] = toUpper(runes[j])
			}
		}
		words[i] = string(runes)
	}

	// If the last token is a long digit run, it's usually a transaction ID.
	if len(words) > 1 {
		last := words[len(words)-1]
		if len(last) > 5 && isAllDigits(last) {
			words = words[:len(words)-1]
		}
	}

	return strings.Join(words, " ")
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// extractPlaidError attempts to convert a generic error into a structured
// Plaid error.
func extractPlaidError(err error) *plaid.PlaidError {
	plaidErr, convErr := plaid.ToPlaidError(err)
	if convErr != nil {
		return nil
	}
	return &plaidErr
}
