package assist

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/florinledger/florin/internal/common"
	"github.com/florinledger/florin/internal/ledger"
	"github.com/florinledger/florin/internal/model"
)

// mockClient is a test implementation of the Client interface.
type mockClient struct {
	responses []string
	errors    []error
	prompts   []string
	systems   []string
	calls     int
	mu        sync.Mutex
}

func (m *mockClient) Generate(_ context.Context, prompt string, systemPrompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	callIdx := m.calls
	m.calls++
	m.prompts = append(m.prompts, prompt)
	m.systems = append(m.systems, systemPrompt)

	if callIdx < len(m.errors) && m.errors[callIdx] != nil {
		return "", m.errors[callIdx]
	}
	if callIdx < len(m.responses) {
		return m.responses[callIdx], nil
	}
	return "", nil
}

func (m *mockClient) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func TestBridge_DraftTransaction(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)
	client := &mockClient{
		responses: []string{`{"amount": 12.5, "type": "expense", "category": "Food", "description": "lunch at cafe", "date": "2025-03-14"}`},
	}
	bridge := NewBridge(client)

	draft, err := bridge.DraftTransaction(context.Background(), "spent 12.50 on lunch yesterday", now)
	require.NoError(t, err)

	assert.InDelta(t, 12.5, draft.Amount, 1e-9)
	assert.Equal(t, model.TypeExpense, draft.Type)
	assert.Equal(t, "Food", draft.Category)
	assert.Equal(t, "lunch at cafe", draft.Description)
	assert.Equal(t, 1, client.callCount())

	// The user's text and the category sets must reach the model.
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "spent 12.50 on lunch yesterday")
	assert.Contains(t, client.prompts[0], "Salary")
	assert.Contains(t, client.prompts[0], "Food")
	assert.Contains(t, client.prompts[0], "2025-03-15")
	assert.Contains(t, client.systems[0], "ONLY a valid JSON object")
}

func TestBridge_DraftTransaction_EmptyText(t *testing.T) {
	client := &mockClient{}
	bridge := NewBridge(client)

	_, err := bridge.DraftTransaction(context.Background(), "   ", time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	assert.Equal(t, 0, client.callCount(), "empty input must be rejected before any provider call")
}

func TestBridge_DraftTransaction_ProviderErrorIsSingleAttempt(t *testing.T) {
	client := &mockClient{
		errors: []error{common.ErrTransport},
	}
	bridge := NewBridge(client)

	draft, err := bridge.DraftTransaction(context.Background(), "coffee 4.50", time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrTransport)
	assert.Equal(t, model.Draft{}, draft)
	assert.Equal(t, 1, client.callCount(), "transport failures must not be retried")
}

func TestBridge_DraftTransaction_MalformedResponseRejectsWholeInput(t *testing.T) {
	client := &mockClient{
		responses: []string{`{"type": "expense", "category": "Food", "description": "lunch"}`},
	}
	bridge := NewBridge(client)

	draft, err := bridge.DraftTransaction(context.Background(), "lunch", time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMalformedResponse)
	assert.Equal(t, model.Draft{}, draft)
	assert.Equal(t, 1, client.callCount())
}

func TestBridge_Forecast(t *testing.T) {
	client := &mockClient{
		responses: []string{"Expect roughly the same grocery spend next month."},
	}
	bridge := NewBridge(client)

	summary := ledger.Summary{
		TotalIncome:  1000,
		TotalExpense: 400,
		Balance:      600,
		ExpenseByCategory: map[string]float64{
			"Food": 400,
		},
	}
	recent := []model.Transaction{
		{ID: "txn-1", Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Type: model.TypeExpense, Category: "Food", Amount: 400, Description: "groceries"},
	}

	advice, err := bridge.Forecast(context.Background(), summary, recent)
	require.NoError(t, err)
	assert.Equal(t, "Expect roughly the same grocery spend next month.", advice)

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "Total Income: 1000.00")
	assert.Contains(t, client.prompts[0], "Food: 400.00")
	assert.Contains(t, client.prompts[0], "groceries")
}

func TestBridge_Advisory_ResponseReturnedVerbatim(t *testing.T) {
	raw := "  Two observations.\n\nFirst, food dominates.  "
	client := &mockClient{responses: []string{raw}}
	bridge := NewBridge(client)

	advice, err := bridge.Analyze(context.Background(), ledger.Summary{}, nil)
	require.NoError(t, err)
	assert.Equal(t, raw, advice, "non-blank advisory text must not be rewritten")
}

func TestBridge_Advisory_EmptyResponse(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{name: "empty string", response: ""},
		{name: "whitespace only", response: "  \n\t "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockClient{responses: []string{tt.response}}
			bridge := NewBridge(client)

			advice, err := bridge.Forecast(context.Background(), ledger.Summary{}, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrEmptyResponse)
			assert.Empty(t, advice)
			assert.Equal(t, 1, client.callCount(), "empty responses must not trigger a retry")
		})
	}
}

func TestBridge_Advisory_ErrorIsSingleAttempt(t *testing.T) {
	client := &mockClient{errors: []error{common.ErrTransport}}
	bridge := NewBridge(client)

	advice, err := bridge.Analyze(context.Background(), ledger.Summary{}, nil)
	require.Error(t, err)
	assert.Empty(t, advice)
	assert.Equal(t, 1, client.callCount())
}

func TestBridge_Advisory_CapsRecentTransactions(t *testing.T) {
	client := &mockClient{responses: []string{"ok"}}
	bridge := NewBridge(client)

	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	recent := make([]model.Transaction, maxPromptTransactions+15)
	for i := range recent {
		recent[i] = model.Transaction{
			ID:          string(rune('a' + i%26)),
			Date:        date,
			Type:        model.TypeExpense,
			Category:    "Food",
			Amount:      float64(i + 1),
			Description: "entry",
		}
	}

	_, err := bridge.Forecast(context.Background(), ledger.Summary{}, recent)
	require.NoError(t, err)

	require.Len(t, client.prompts, 1)
	lines := strings.Count(client.prompts[0], "| Food |")
	assert.Equal(t, maxPromptTransactions, lines, "prompt must carry at most %d transactions", maxPromptTransactions)
}
