package tier

// Plan is a paid subscription add-on. Plan multipliers are tracked
// separately from tier multipliers; this package defines no rule for
// combining the two.
type Plan string

const (
	PlanBasic    Plan = "BASIC"
	PlanPremium  Plan = "PREMIUM"
	PlanUltimate Plan = "ULTIMATE"
)

// PlanConfig is the flat multiplier/boost/bonus triple a plan applies to
// the subscription rewards record.
type PlanConfig struct {
	Plan            Plan
	PointMultiplier float64
	DropBoost       int64
	WelcomeBonus    int64
}

var planConfigs = map[Plan]PlanConfig{
	PlanBasic:    {Plan: PlanBasic, PointMultiplier: 1.1, DropBoost: 1, WelcomeBonus: 100},
	PlanPremium:  {Plan: PlanPremium, PointMultiplier: 1.25, DropBoost: 2, WelcomeBonus: 500},
	PlanUltimate: {Plan: PlanUltimate, PointMultiplier: 1.5, DropBoost: 5, WelcomeBonus: 2000},
}

// LookupPlan returns the config for p and whether p is a known plan.
func LookupPlan(p Plan) (PlanConfig, bool) {
	cfg, ok := planConfigs[p]
	return cfg, ok
}
