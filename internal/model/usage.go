// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// =============================================================================
// PLAN TYPE
// =============================================================================

// PlanType identifies the subscription tier.
type PlanType string

const (
	PlanFree    PlanType = "Free"
	PlanPro     PlanType = "Pro"
	PlanProPlus PlanType = "ProPlus"
	PlanPremium PlanType = "Premium"
)

// String returns the string representation of the plan.
func (p PlanType) String() string {
	return string(p)
}

// IsUnlimited reports whether the plan carries unlimited interactions.
// Premium is the only unlimited tier.
func (p PlanType) IsUnlimited() bool {
	return p == PlanPremium
}

// ParsePlanType maps a remote plan string to a PlanType, defaulting to
// Free for anything unrecognized.
func ParsePlanType(s string) PlanType {
	switch PlanType(s) {
	case PlanPro, PlanProPlus, PlanPremium:
		return PlanType(s)
	default:
		return PlanFree
	}
}

// =============================================================================
// USAGE STATE
// =============================================================================

// Unlimited is the sentinel count for plans without a numeric ceiling.
const Unlimited = -1

// UsageState is the client's view of the remote rate-limit counters.
// The usage tracker is its sole writer and always replaces the whole
// object; readers never observe a partial merge.
type UsageState struct {
	Plan           PlanType
	CurrentUsage   int
	Limit          int // Unlimited for Premium
	Remaining      int // Unlimited for Premium
	ResetTime      time.Time
	BoostCredits   int
	WindowDuration string

	Loading bool
	Err     string
}

// DefaultUsageState is the pre-fetch state shown while the first refresh
// is in flight.
func DefaultUsageState() UsageState {
	return UsageState{
		Plan:           PlanFree,
		CurrentUsage:   0,
		Limit:          5,
		Remaining:      5,
		WindowDuration: "24 hours",
		Loading:        true,
	}
}

// IsUnlimited reports whether the remaining count has no numeric ceiling.
func (u UsageState) IsUnlimited() bool {
	return u.Remaining == Unlimited || u.Plan.IsUnlimited()
}

// CanSend reports whether the send action should be enabled: unlimited
// plans always can; bounded plans need a positive remaining count.
func (u UsageState) CanSend() bool {
	return u.IsUnlimited() || u.Remaining > 0
}

// RemainingFraction returns remaining/limit in [0,1], or 1 for unlimited
// plans. Used for the usage bar and its color thresholds.
func (u UsageState) RemainingFraction() float64 {
	if u.IsUnlimited() || u.Limit <= 0 {
		return 1
	}
	f := float64(u.Remaining) / float64(u.Limit)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
