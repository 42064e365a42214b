// Package pricing centralizes price resolution so cart totals, product
// responses and order summaries cannot diverge in fallback behavior.
package pricing

import (
	"github.com/shopspring/decimal"

	"stablecart-api/internal/model"
)

// Resolve returns the price entry matching currency. When no entry matches
// it silently falls back to the first listed entry; an empty list resolves
// to zero in the requested currency. It never errors.
func Resolve(prices []model.ProductPrice, currency string) model.ProductPrice {
	for _, p := range prices {
		if p.Currency == currency {
			return p
		}
	}
	if len(prices) > 0 {
		return prices[0]
	}
	return model.ProductPrice{Currency: currency, Amount: decimal.Zero}
}

// Amount is a shorthand for Resolve(...).Amount.
func Amount(prices []model.ProductPrice, currency string) decimal.Decimal {
	return Resolve(prices, currency).Amount
}
