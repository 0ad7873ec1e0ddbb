// Package cost prices model token usage.
package cost

import (
	"github.com/shopspring/decimal"

	"github.com/sells-group/ecom-prep/pkg/anthropic"
)

// ModelRate is per-model token pricing in USD per million tokens.
type ModelRate struct {
	Input  decimal.Decimal
	Output decimal.Decimal
}

// Rates maps model IDs to their pricing.
type Rates map[string]ModelRate

// Calculator prices token usage.
type Calculator struct {
	rates Rates
}

// NewCalculator creates a Calculator with the given rates.
func NewCalculator(rates Rates) *Calculator {
	return &Calculator{rates: rates}
}

var perMillion = decimal.NewFromInt(1_000_000)

// Messages returns the USD cost of usage on model, rounded to four
// places, and false when the model has no rate.
func (c *Calculator) Messages(model string, usage anthropic.TokenUsage) (decimal.Decimal, bool) {
	rate, ok := c.rates[model]
	if !ok {
		return decimal.Zero, false
	}
	in := decimal.NewFromInt(usage.InputTokens).Div(perMillion).Mul(rate.Input)
	out := decimal.NewFromInt(usage.OutputTokens).Div(perMillion).Mul(rate.Output)
	return in.Add(out).Round(4), true
}

// DefaultRates returns list prices for the models the review writer uses.
func DefaultRates() Rates {
	return Rates{
		"claude-haiku-4-5-20251001": {
			Input:  decimal.RequireFromString("1.00"),
			Output: decimal.RequireFromString("5.00"),
		},
		"claude-sonnet-4-5-20250929": {
			Input:  decimal.RequireFromString("3.00"),
			Output: decimal.RequireFromString("15.00"),
		},
	}
}
