package sheets

import (
	"context"
	"sync"

	"github.com/florinledger/florin/internal/ledger"
	"github.com/florinledger/florin/internal/model"
)

// MockWriter is a mock implementation of ReportWriter for testing.
type MockWriter struct {
	WriteFunc      func(ctx context.Context, txns []model.Transaction, summary ledger.Summary) error
	WriteCalls     []WriteCall
	LastTxns       []model.Transaction
	LastSummary    ledger.Summary
	WriteCallCount int
	mu             sync.Mutex
}

// WriteCall represents a single call to Write.
type WriteCall struct {
	Error   error
	Summary ledger.Summary
	Txns    []model.Transaction
}

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{
		WriteCalls: make([]WriteCall, 0),
	}
}

// Write implements the ReportWriter interface.
func (m *MockWriter) Write(ctx context.Context, txns []model.Transaction, summary ledger.Summary) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount++
	m.LastTxns = txns
	m.LastSummary = summary

	var err error
	if m.WriteFunc != nil {
		err = m.WriteFunc(ctx, txns, summary)
	}

	m.WriteCalls = append(m.WriteCalls, WriteCall{
		Txns:    txns,
		Summary: summary,
		Error:   err,
	})

	return err
}

// Reset clears all recorded calls.
func (m *MockWriter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount = 0
	m.WriteCalls = make([]WriteCall, 0)
	m.LastTxns = nil
	m.LastSummary = ledger.Summary{}
}

// GetWriteCalls returns a copy of all write calls.
func (m *MockWriter) GetWriteCalls() []WriteCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]WriteCall, len(m.WriteCalls))
	copy(calls, m.WriteCalls)
	return calls
}

// SetWriteError configures the mock to return an error on every Write call.
func (m *MockWriter) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteFunc = func(_ context.Context, _ []model.Transaction, _ ledger.Summary) error {
		return err
	}
}

var _ ReportWriter = (*MockWriter)(nil)
