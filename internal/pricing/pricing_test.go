package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"stablecart-api/internal/model"
)

func price(currency, amount string) model.ProductPrice {
	return model.ProductPrice{Currency: currency, Amount: decimal.RequireFromString(amount)}
}

func TestResolveExactMatch(t *testing.T) {
	prices := []model.ProductPrice{price("USDC", "10.00"), price("DAI", "10.50")}

	got := Resolve(prices, "DAI")
	assert.Equal(t, "DAI", got.Currency)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("10.50")))
}

func TestResolveFallsBackToFirstListed(t *testing.T) {
	// a DAI request against a USDC-only product resolves to the USDC
	// price, not zero
	prices := []model.ProductPrice{price("USDC", "10.00")}

	got := Resolve(prices, "DAI")
	assert.Equal(t, "USDC", got.Currency)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(10)))
}

func TestResolveEmptyListIsZero(t *testing.T) {
	got := Resolve(nil, "USDT")
	assert.Equal(t, "USDT", got.Currency)
	assert.True(t, got.Amount.IsZero())
}

func TestAmountShorthand(t *testing.T) {
	prices := []model.ProductPrice{price("USDT", "3.25")}
	assert.True(t, Amount(prices, "USDT").Equal(decimal.RequireFromString("3.25")))
}
