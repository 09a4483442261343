// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// PLAN CATALOG
// =============================================================================

// Plan describes one subscription tier: static reference data, not user
// state.
type Plan struct {
	ID       string
	Name     PlanType
	Price    string
	Period   string
	Features []string
	Popular  bool
}

// Boost is the fixed-price add-on granting extra interactions without
// changing the plan tier.
const (
	BoostPrice = "$3.99"
	BoostChats = 100
)

// LowBalanceThreshold is the remaining-interaction count at or below which
// the plan view shows the low-balance warning and the boost offer.
const LowBalanceThreshold = 25

// InputBannerThreshold is the remaining count at or below which the chat
// input shows its inline upgrade banner.
const InputBannerThreshold = 10

// Catalog returns the four subscription tiers.
func Catalog() []Plan {
	return []Plan{
		{
			ID:    "free",
			Name:  PlanFree,
			Price: "$0",
			Features: []string{
				"5 free chat interactions",
				"Email required after 5 interactions",
				"5 additional free chat interactions",
				"No memory (resets after each session)",
			},
		},
		{
			ID:      "pro",
			Name:    PlanPro,
			Price:   "$9.99",
			Period:  "/month",
			Popular: true,
			Features: []string{
				"300 chat interactions per month",
				"Session-based memory",
				"Priority support",
			},
		},
		{
			ID:     "pro-plus",
			Name:   PlanProPlus,
			Price:  "$14.99",
			Period: "/month",
			Features: []string{
				"500 chat interactions per month",
				"Session-based memory",
				"Priority support",
			},
		},
		{
			ID:     "premium",
			Name:   PlanPremium,
			Price:  "$34.99",
			Period: "/month",
			Features: []string{
				"Unlimited chat interactions",
				"Extended memory",
				"Priority support",
				"Advanced features",
			},
		},
	}
}

// ShowBoostOffer reports whether the boost add-on should be offered: paid
// bounded tiers running low. Free users go through email capture instead,
// and Premium has nothing to boost.
func ShowBoostOffer(plan PlanType, remaining int) bool {
	if plan == PlanFree || plan == PlanPremium {
		return false
	}
	return remaining != Unlimited && remaining <= LowBalanceThreshold
}
