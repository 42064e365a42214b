package model

// Stablecoin is a supported settlement currency.
type Stablecoin string

const (
	USDC  Stablecoin = "USDC"
	USDT  Stablecoin = "USDT"
	DAI   Stablecoin = "DAI"
	PYUSD Stablecoin = "PYUSD"
	FDUSD Stablecoin = "FDUSD"
)

// DefaultCurrency is the settlement currency a fresh cart starts with.
const DefaultCurrency = USDC

var stablecoins = map[Stablecoin]struct{}{
	USDC: {}, USDT: {}, DAI: {}, PYUSD: {}, FDUSD: {},
}

// ValidCurrency reports whether code names a supported stablecoin.
func ValidCurrency(code string) bool {
	_, ok := stablecoins[Stablecoin(code)]
	return ok
}
