package ofx

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/florinledger/florin/internal/model"
)

// Sample OFX data for testing.
const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2024011501
<NAME>STARBUCKS STORE #1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>-125.00
<FITID>2024012001
<NAME>Whole Foods Market
</STMTTRN>
<STMTTRN>
<TRNTYPE>DIRECTDEP
<DTPOSTED>20240125120000[0:GMT]
<TRNAMT>2500.00
<FITID>2024012501
<NAME>ACME CORP PAYROLL
</STMTTRN>
<STMTTRN>
<TRNTYPE>INT
<DTPOSTED>20240131120000[0:GMT]
<TRNAMT>1.25
<FITID>2024013101
<NAME>INTEREST PAYMENT
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

const sampleCreditCardOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>USD
<CCACCTFROM>
<ACCTID>4111111111111111
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240110120000[0:GMT]
<TRNAMT>-45.99
<FITID>CC2024011001
<NAME>AMAZON.COM*RT4Y7HG2
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-15.00
<FITID>CC2024011501
<NAME>NETFLIX.COM
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>-500.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func TestParseFile(t *testing.T) {
	tests := []struct {
		name          string
		ofxData       string
		expectedCount int
		expectedError bool
	}{
		{
			name:          "valid bank statement",
			ofxData:       sampleBankOFX,
			expectedCount: 4,
			expectedError: false,
		},
		{
			name:          "valid credit card statement",
			ofxData:       sampleCreditCardOFX,
			expectedCount: 2,
			expectedError: false,
		},
		{
			name:          "invalid OFX data",
			ofxData:       "not valid OFX",
			expectedCount: 0,
			expectedError: true,
		},
		{
			name:          "empty OFX",
			ofxData:       "",
			expectedCount: 0,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := NewParser()
			reader := strings.NewReader(tt.ofxData)

			drafts, err := parser.ParseFile(context.Background(), reader)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Len(t, drafts, tt.expectedCount)
			}
		})
	}
}

func TestParseBankStatement(t *testing.T) {
	parser := NewParser()
	reader := strings.NewReader(sampleBankOFX)

	drafts, err := parser.ParseFile(context.Background(), reader)
	require.NoError(t, err)
	require.Len(t, drafts, 4)

	// Debits come through as expenses with positive amounts
	d1 := drafts[0]
	assert.Equal(t, model.TypeExpense, d1.Type)
	assert.Equal(t, 25.50, d1.Amount)
	assert.Equal(t, "Other", d1.Category)
	assert.Equal(t, "STARBUCKS STORE #1234", d1.Description)
	// Compare just the date components, ignoring timezone
	assert.Equal(t, 2024, d1.Date.Year())
	assert.Equal(t, time.January, d1.Date.Month())
	assert.Equal(t, 15, d1.Date.Day())

	d2 := drafts[1]
	assert.Equal(t, model.TypeExpense, d2.Type)
	assert.Equal(t, 125.00, d2.Amount)
	assert.Equal(t, "Whole Foods Market", d2.Description)

	// Direct deposit is income in the Salary category
	d3 := drafts[2]
	assert.Equal(t, model.TypeIncome, d3.Type)
	assert.Equal(t, 2500.00, d3.Amount)
	assert.Equal(t, "Salary", d3.Category)
	assert.Equal(t, "ACME CORP PAYROLL", d3.Description)

	// Interest is income in the Investment category
	d4 := drafts[3]
	assert.Equal(t, model.TypeIncome, d4.Type)
	assert.Equal(t, 1.25, d4.Amount)
	assert.Equal(t, "Investment", d4.Category)
}

func TestParseCreditCardStatement(t *testing.T) {
	parser := NewParser()
	reader := strings.NewReader(sampleCreditCardOFX)

	drafts, err := parser.ParseFile(context.Background(), reader)
	require.NoError(t, err)
	require.Len(t, drafts, 2)

	d1 := drafts[0]
	assert.Equal(t, model.TypeExpense, d1.Type)
	assert.Equal(t, 45.99, d1.Amount)
	assert.Equal(t, "AMAZON.COM*RT4Y7HG2", d1.Description)

	d2 := drafts[1]
	assert.Equal(t, model.TypeExpense, d2.Type)
	assert.Equal(t, 15.00, d2.Amount)
	assert.Equal(t, "NETFLIX.COM", d2.Description)
}

func TestPreprocessOFX(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "uppercases mixed-case severity",
			input:    "<SEVERITY>Info</SEVERITY>",
			expected: "<SEVERITY>INFO</SEVERITY>",
		},
		{
			name:     "adds missing closing bracket",
			input:    "<STMTTRN",
			expected: "<STMTTRN>",
		},
		{
			name:     "trims leading blank lines",
			input:    "\n\n  OFXHEADER:100",
			expected: "OFXHEADER:100",
		},
		{
			name:     "leaves well-formed content alone",
			input:    "<TRNAMT>-25.50",
			expected: "<TRNAMT>-25.50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parser.preprocessOFX(tt.input))
		})
	}
}

func TestOFXCategory(t *testing.T) {
	tests := []struct {
		name     string
		typ      model.TransactionType
		trnType  string
		expected string
	}{
		{
			name:     "interest is investment income",
			typ:      model.TypeIncome,
			trnType:  "INT",
			expected: "Investment",
		},
		{
			name:     "dividends are investment income",
			typ:      model.TypeIncome,
			trnType:  "DIV",
			expected: "Investment",
		},
		{
			name:     "direct deposit is salary",
			typ:      model.TypeIncome,
			trnType:  "DIRECTDEP",
			expected: "Salary",
		},
		{
			name:     "plain deposit falls back to Other",
			typ:      model.TypeIncome,
			trnType:  "DEP",
			expected: "Other",
		},
		{
			name:     "debit falls back to Other",
			typ:      model.TypeExpense,
			trnType:  "DEBIT",
			expected: "Other",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ofxCategory(tt.typ, tt.trnType))
		})
	}
}

func TestExtractMerchantName(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "remove POS prefix",
			input:    "POS PURCHASE STARBUCKS",
			expected: "STARBUCKS",
		},
		{
			name:     "remove DEBIT CARD prefix",
			input:    "DEBIT CARD PURCHASE WHOLE FOODS",
			expected: "WHOLE FOODS",
		},
		{
			name:     "remove leading date pattern",
			input:    "01/15 STARBUCKS",
			expected: "STARBUCKS",
		},
		{
			name:     "keep clean name",
			input:    "NETFLIX.COM",
			expected: "NETFLIX.COM",
		},
		{
			name:     "trim whitespace",
			input:    "  AMAZON.COM  ",
			expected: "AMAZON.COM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := ofxgo.Transaction{
				Name: ofxgo.String(tt.input),
			}
			assert.Equal(t, tt.expected, parser.extractMerchantName(tx))
		})
	}
}

func TestExtractMerchantName_PrefersPayee(t *testing.T) {
	parser := NewParser()

	tx := ofxgo.Transaction{
		Name: ofxgo.String("POS PURCHASE 1234"),
		Payee: &ofxgo.Payee{
			Name: ofxgo.String("Starbucks"),
		},
	}
	assert.Equal(t, "Starbucks", parser.extractMerchantName(tx))
}

func TestExtractMerchantName_UsesMemoForGenericName(t *testing.T) {
	parser := NewParser()

	tx := ofxgo.Transaction{
		Name: ofxgo.String("DEBIT"),
		Memo: ofxgo.String("STARBUCKS #5678"),
	}
	assert.Equal(t, "STARBUCKS #5678", parser.extractMerchantName(tx))
}

func TestIsGenericDescription(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"DEBIT", true},
		{"debit", true},
		{"PURCHASE", true},
		{"CARD PURCHASE", true},
		{"STARBUCKS", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, isGenericDescription(tt.input))
		})
	}
}
