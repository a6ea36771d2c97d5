package assist

import (
	"fmt"
	"strings"
	"time"

	"github.com/florinledger/florin/internal/ledger"
	"github.com/florinledger/florin/internal/model"
)

// draftSystemPrompt instructs the model to emit bare JSON for extraction.
const draftSystemPrompt = "You are a personal finance assistant that extracts transaction details from natural language. You MUST respond with ONLY a valid JSON object. Do not include any explanatory text, markdown formatting, or commentary before or after the JSON. Start your response directly with { and end with }."

// advisorySystemPrompt frames the free-text advisory requests.
const advisorySystemPrompt = "You are a personal finance advisor. You give short, practical advice grounded in the numbers you are shown. Respond in plain text without markdown formatting."

// buildDraftPrompt creates the extraction prompt for a free-text transaction
// description.
func buildDraftPrompt(text string, now time.Time) string {
	incomeList := ""
	for _, cat := range model.CategoriesFor(model.TypeIncome) {
		incomeList += fmt.Sprintf("- %s\n", cat)
	}
	expenseList := ""
	for _, cat := range model.CategoriesFor(model.TypeExpense) {
		expenseList += fmt.Sprintf("- %s\n", cat)
	}

	return fmt.Sprintf(`Extract a single financial transaction from the user's message.

IMPORTANT GUIDELINES:
- "type" MUST be either "income" or "expense"
- "category" MUST be exactly one of the categories listed for the chosen type. Never invent new categories.
- "amount" MUST be a positive number, never a string with currency symbols
- "date" MUST be in YYYY-MM-DD format. Resolve relative dates like "yesterday" against today's date. If no date is mentioned, use today.
- "description" is a short human-readable summary of the transaction

Income Categories:
%s
Expense Categories:
%s
Today's Date: %s

User Message:
%s

Respond with a JSON object in exactly this shape:
{"amount": 12.50, "type": "expense", "category": "Food", "description": "lunch at cafe", "date": "2025-03-01"}`,
		incomeList,
		expenseList,
		now.Format("2006-01-02"),
		text)
}

// buildForecastPrompt creates the prompt for a next-month spending forecast.
func buildForecastPrompt(summary ledger.Summary, recent []model.Transaction) string {
	return fmt.Sprintf(`Forecast this user's spending for the next month based on their current financial position.

IMPORTANT GUIDELINES:
- Ground every figure you mention in the numbers below
- Call out categories trending above their share of total spending
- Keep the forecast to a few short paragraphs
- Do not invent transactions that are not shown

Financial Summary:
%s
Recent Transactions:
%s`,
		formatSummary(summary),
		formatTransactionLines(recent))
}

// buildAnalysisPrompt creates the prompt for a spending habit review.
func buildAnalysisPrompt(summary ledger.Summary, recent []model.Transaction) string {
	return fmt.Sprintf(`Analyze this user's spending habits and point out concrete ways to improve them.

IMPORTANT GUIDELINES:
- Ground every observation in the numbers below
- Name the specific categories driving the largest expenses
- Suggest at most three actionable changes
- Keep the analysis to a few short paragraphs

Financial Summary:
%s
Recent Transactions:
%s`,
		formatSummary(summary),
		formatTransactionLines(recent))
}

// formatSummary renders the aggregate totals for inclusion in a prompt.
func formatSummary(summary ledger.Summary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Total Income: %.2f\n", summary.TotalIncome)
	fmt.Fprintf(&sb, "Total Expenses: %.2f\n", summary.TotalExpense)
	fmt.Fprintf(&sb, "Balance: %.2f\n", summary.Balance)

	top := ledger.TopExpenseCategories(summary, len(summary.ExpenseByCategory))
	if len(top) > 0 {
		sb.WriteString("Expenses by Category:\n")
		for _, entry := range top {
			fmt.Fprintf(&sb, "- %s: %.2f\n", entry.Category, entry.Amount)
		}
	}
	return sb.String()
}

// formatTransactionLines renders transactions one per line for a prompt.
func formatTransactionLines(txns []model.Transaction) string {
	if len(txns) == 0 {
		return "(none)\n"
	}

	var sb strings.Builder
	for _, txn := range txns {
		fmt.Fprintf(&sb, "- %s | %s | %s | %.2f | %s\n",
			txn.Date.Format("2006-01-02"),
			txn.Type,
			txn.Category,
			txn.Amount,
			txn.Description)
	}
	return sb.String()
}
