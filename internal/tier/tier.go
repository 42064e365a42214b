package tier

import "github.com/shopspring/decimal"

// Tier is a membership level. Membership is always derived from lifetime
// spend; nothing in the system stores a tier as an independent fact.
type Tier string

const (
	NodeRunner Tier = "NODE_RUNNER"
	MasterNode Tier = "MASTER_NODE"
	Whale      Tier = "WHALE"
	Validator  Tier = "VALIDATOR"
	Satoshi    Tier = "SATOSHI"
)

// UpgradeBonusPoints is awarded once per purchase that crosses a tier
// threshold, regardless of how many thresholds the purchase crosses.
const UpgradeBonusPoints int64 = 1000

// Config holds the static settings for one tier.
type Config struct {
	Tier            Tier
	MinSpend        decimal.Decimal
	PointMultiplier float64
	Colors          []string
	Benefits        []string
	ExclusiveDrops  bool
}

// ordered lowest to highest; MinSpend must be strictly increasing
var configs = []Config{
	{
		Tier:            NodeRunner,
		MinSpend:        decimal.Zero,
		PointMultiplier: 1.0,
		Colors:          []string{"#6B7280", "#9CA3AF"},
		Benefits:        []string{"1x points on every purchase", "Standard shipping"},
	},
	{
		Tier:            MasterNode,
		MinSpend:        decimal.NewFromInt(1000),
		PointMultiplier: 1.25,
		Colors:          []string{"#2563EB", "#60A5FA"},
		Benefits:        []string{"1.25x points on every purchase", "Free shipping", "Monthly mystery box"},
	},
	{
		Tier:            Whale,
		MinSpend:        decimal.NewFromInt(5000),
		PointMultiplier: 1.5,
		Colors:          []string{"#7C3AED", "#A78BFA"},
		Benefits:        []string{"1.5x points on every purchase", "Priority support", "Weekly mystery box"},
		ExclusiveDrops:  true,
	},
	{
		Tier:            Validator,
		MinSpend:        decimal.NewFromInt(15000),
		PointMultiplier: 2.0,
		Colors:          []string{"#D97706", "#FBBF24"},
		Benefits:        []string{"2x points on every purchase", "Early access to drops", "Dedicated support"},
		ExclusiveDrops:  true,
	},
	{
		Tier:            Satoshi,
		MinSpend:        decimal.NewFromInt(50000),
		PointMultiplier: 3.0,
		Colors:          []string{"#B91C1C", "#F87171"},
		Benefits:        []string{"3x points on every purchase", "All drops unlocked", "Concierge checkout"},
		ExclusiveDrops:  true,
	},
}

// All returns the tier configs ordered lowest to highest.
func All() []Config {
	out := make([]Config, len(configs))
	copy(out, configs)
	return out
}

// Lookup returns the config for t, falling back to the lowest tier for
// unknown values.
func Lookup(t Tier) Config {
	for _, c := range configs {
		if c.Tier == t {
			return c
		}
	}
	return configs[0]
}

// Index returns t's position in tier order, or 0 for unknown values.
func Index(t Tier) int {
	for i, c := range configs {
		if c.Tier == t {
			return i
		}
	}
	return 0
}

// AtLeast reports whether t meets or exceeds required under tier ordering.
func AtLeast(t, required Tier) bool {
	return Index(t) >= Index(required)
}

// FromSpend derives the tier for a lifetime spend total. It scans from the
// highest tier down and returns the first whose threshold is covered, so it
// is a pure function of spend and monotonic non-decreasing in it.
func FromSpend(spend decimal.Decimal) Tier {
	for i := len(configs) - 1; i >= 0; i-- {
		if spend.GreaterThanOrEqual(configs[i].MinSpend) {
			return configs[i].Tier
		}
	}
	return configs[0].Tier
}

// Next returns the tier above t, or false at the top.
func Next(t Tier) (Tier, bool) {
	i := Index(t)
	if i >= len(configs)-1 {
		return "", false
	}
	return configs[i+1].Tier, true
}

// Progress describes how far a spend total has advanced toward the next tier.
type Progress struct {
	Percent     float64
	SpendNeeded decimal.Decimal
	NextTier    Tier
	HasNext     bool
}

// ProgressToNext computes progress from t toward the tier above it. At the
// top tier progress is complete. Division by zero cannot occur because
// thresholds are strictly increasing.
func ProgressToNext(spend decimal.Decimal, t Tier) Progress {
	next, ok := Next(t)
	if !ok {
		return Progress{Percent: 100, SpendNeeded: decimal.Zero}
	}

	cur := Lookup(t).MinSpend
	nxt := Lookup(next).MinSpend

	needed := nxt.Sub(spend)
	if needed.IsNegative() {
		needed = decimal.Zero
	}

	span := nxt.Sub(cur)
	pct, _ := spend.Sub(cur).Div(span).Mul(decimal.NewFromInt(100)).Float64()
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	return Progress{Percent: pct, SpendNeeded: needed, NextTier: next, HasNext: true}
}
