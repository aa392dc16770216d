// Package billing holds the plan tier catalog and the Stripe checkout flow.
package billing

import "golfphysics/internal/types"

// PlanLimits defines what one plan tier allows. Zero means unlimited;
// enforcement code must treat 0 as no limit.
type PlanLimits struct {
	PriceMonthlyUSD   int
	RequestsPerMinute int
	RequestsPerDay    int
	RequestsPerMonth  int
}

// PlanRegistry is the authoritative source of per-tier limits.
type PlanRegistry interface {
	// GetLimits returns the limits for the given tier. Unknown tiers get
	// the developer limits so a bad tier value fails restrictive.
	GetLimits(tier types.PlanTier) PlanLimits
}

// staticPlanRegistry is a compile-time registry backed by an in-memory map.
type staticPlanRegistry struct {
	limits map[types.PlanTier]PlanLimits
}

// planDefaults is the published pricing page in code form.
//
//	| Plan         | $/mo  | req/min   | req/day   |
//	|--------------|-------|-----------|-----------|
//	| Developer    | 0     | 60        | 1,000     |
//	| Starter      | 99    | 200       | 10,000    |
//	| Professional | 299   | 500       | 25,000    |
//	| Business     | 599   | 2,000     | 100,000   |
//	| Enterprise   | 1999  | unlimited | unlimited |
var planDefaults = map[types.PlanTier]PlanLimits{
	types.TierDeveloper: {
		PriceMonthlyUSD:   0,
		RequestsPerMinute: 60,
		RequestsPerDay:    1000,
		RequestsPerMonth:  30000,
	},
	types.TierStarter: {
		PriceMonthlyUSD:   99,
		RequestsPerMinute: 200,
		RequestsPerDay:    10000,
		RequestsPerMonth:  300000,
	},
	types.TierProfessional: {
		PriceMonthlyUSD:   299,
		RequestsPerMinute: 500,
		RequestsPerDay:    25000,
		RequestsPerMonth:  750000,
	},
	types.TierBusiness: {
		PriceMonthlyUSD:   599,
		RequestsPerMinute: 2000,
		RequestsPerDay:    100000,
		RequestsPerMonth:  3000000,
	},
	types.TierEnterprise: {
		// Starting price; actual enterprise contracts are negotiated.
		PriceMonthlyUSD:   1999,
		RequestsPerMinute: 0,
		RequestsPerDay:    0,
		RequestsPerMonth:  0,
	},
}

// developerLimits is cached for the unknown-tier fallback path.
var developerLimits = planDefaults[types.TierDeveloper]

// NewStaticPlanRegistry returns the production PlanRegistry backed by the
// hardcoded catalog above.
func NewStaticPlanRegistry() PlanRegistry {
	// Copy so callers cannot mutate the package-level defaults.
	m := make(map[types.PlanTier]PlanLimits, len(planDefaults))
	for k, v := range planDefaults {
		m[k] = v
	}
	return &staticPlanRegistry{limits: m}
}

func (r *staticPlanRegistry) GetLimits(tier types.PlanTier) PlanLimits {
	if limits, ok := r.limits[tier]; ok {
		return limits
	}
	return developerLimits
}

// PerMinuteLimit adapts a registry to the middleware's limit resolver:
// tier in, requests-per-minute out, 0 meaning unlimited.
func PerMinuteLimit(registry PlanRegistry) func(tier types.PlanTier) int {
	return func(tier types.PlanTier) int {
		return registry.GetLimits(tier).RequestsPerMinute
	}
}

// PerDayLimit is the daily counterpart, used by the quota middleware.
func PerDayLimit(registry PlanRegistry) func(tier types.PlanTier) int {
	return func(tier types.PlanTier) int {
		return registry.GetLimits(tier).RequestsPerDay
	}
}
