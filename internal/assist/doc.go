// Package assist provides the language model integration for the finance
// tracker. It supports OpenAI and Anthropic providers and exposes two flows:
// extracting transaction drafts from free text and generating advisory prose
// from aggregate figures.
package assist
