package assist

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/florinledger/florin/internal/common"
	"github.com/florinledger/florin/internal/model"
)

// draftDateLayouts are tried in order when parsing the model's date field.
var draftDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// cleanMarkdownWrapper strips a markdown code fence from around the model's
// response. Models wrap JSON in ```json blocks despite instructions not to.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSpace(content)
	content = strings.TrimSuffix(content, "```")

	return strings.TrimSpace(content)
}

// draftPayload is the raw JSON shape the model is asked to produce. Amount
// stays untyped because models send both numbers and numeric strings.
type draftPayload struct {
	Amount      any    `json:"amount"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// parseDraft turns the model's raw response into a validated draft. A missing
// or non-numeric amount rejects the whole response; every other field is
// coerced to something usable.
func parseDraft(content string, now time.Time) (model.Draft, error) {
	content = cleanMarkdownWrapper(content)

	var payload draftPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return model.Draft{}, fmt.Errorf("%w: failed to parse draft JSON: %v", common.ErrMalformedResponse, err)
	}

	amount, ok := numericAmount(payload.Amount)
	if !ok {
		return model.Draft{}, fmt.Errorf("%w: draft amount is missing or not numeric", common.ErrMalformedResponse)
	}

	typ := model.TransactionType(strings.ToLower(strings.TrimSpace(payload.Type)))
	if !typ.Valid() {
		typ = model.TypeExpense
	}

	return model.Draft{
		Amount:      math.Abs(amount),
		Type:        typ,
		Category:    model.NormalizeCategory(typ, payload.Category),
		Description: strings.TrimSpace(payload.Description),
		Date:        parseDraftDate(payload.Date, now),
	}, nil
}

// numericAmount accepts JSON numbers and numeric strings. Anything else,
// including a missing field, is rejected.
func numericAmount(v any) (float64, bool) {
	switch amount := v.(type) {
	case float64:
		return amount, true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// parseDraftDate tries the known layouts and falls back to the reference
// time when the model's date is absent or unparsable.
func parseDraftDate(value string, now time.Time) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return now
	}

	for _, layout := range draftDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed
		}
	}

	return now
}
