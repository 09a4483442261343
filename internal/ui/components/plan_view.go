// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bluedash/bluedash-tui/internal/model"
	"github.com/bluedash/bluedash-tui/internal/ui/styles"
)

// =============================================================================
// PLAN VIEW
// =============================================================================

// PlanSelection identifies what the cursor in the plan view points at:
// one of the four tiers, or the boost offer when it is shown. Name is the
// plan's wire value for the checkout endpoint.
type PlanSelection struct {
	PlanID  string
	Name    model.PlanType
	IsBoost bool
}

// PlanView renders the pricing grid with keyboard selection, the
// low-balance warning, and the boost offer.
type PlanView struct {
	theme *styles.Theme
	plans []model.Plan

	cursor  int // index into plans, or len(plans) for the boost row
	pending bool
	usage   model.UsageState
}

// NewPlanView creates a plan view over the static catalog.
func NewPlanView(theme *styles.Theme) PlanView {
	return PlanView{
		theme: theme,
		plans: model.Catalog(),
	}
}

// SetUsage updates the usage snapshot the view renders against.
func (v *PlanView) SetUsage(u model.UsageState) {
	v.usage = u
	v.clampCursor()
}

// SetPending disables plan selection while a checkout is outstanding.
// Both the upgrade and boost actions are disabled together.
func (v *PlanView) SetPending(pending bool) {
	v.pending = pending
}

// Pending reports whether a purchase is in flight.
func (v PlanView) Pending() bool {
	return v.pending
}

// boostVisible reports whether the boost row is part of the selection space.
func (v PlanView) boostVisible() bool {
	return model.ShowBoostOffer(v.usage.Plan, v.usage.Remaining)
}

func (v *PlanView) clampCursor() {
	max := len(v.plans) - 1
	if v.boostVisible() {
		max = len(v.plans)
	}
	if v.cursor > max {
		v.cursor = max
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

// MoveNext advances the cursor.
func (v *PlanView) MoveNext() {
	v.cursor++
	v.clampCursor()
}

// MovePrev moves the cursor back.
func (v *PlanView) MovePrev() {
	v.cursor--
	v.clampCursor()
}

// Selected returns what the cursor points at.
func (v PlanView) Selected() PlanSelection {
	if v.cursor >= len(v.plans) {
		return PlanSelection{IsBoost: true}
	}
	p := v.plans[v.cursor]
	return PlanSelection{PlanID: p.ID, Name: p.Name}
}

// View renders the plan grid.
func (v PlanView) View() string {
	var sections []string

	if !v.usage.IsUnlimited() && v.usage.Remaining != model.Unlimited &&
		v.usage.Remaining <= model.LowBalanceThreshold && !v.usage.Loading {
		banner := v.theme.WarnBanner.Render(fmt.Sprintf(
			"Running low: %d interactions left on your %s plan",
			v.usage.Remaining, v.usage.Plan))
		sections = append(sections, banner)
	}

	var cards []string
	for i, p := range v.plans {
		cards = append(cards, v.renderCard(p, i == v.cursor))
	}
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, cards...))

	if v.boostVisible() {
		sections = append(sections, v.renderBoost(v.cursor == len(v.plans)))
	}

	if v.pending {
		sections = append(sections, v.theme.UsageMeta.Render("Opening checkout..."))
	}

	return strings.Join(sections, "\n\n")
}

func (v PlanView) renderCard(p model.Plan, selected bool) string {
	var b strings.Builder

	if p.Popular {
		b.WriteString(v.theme.PopularTag.Render("POPULAR"))
		b.WriteString("\n")
	}
	b.WriteString(v.theme.PlanName.Render(p.Name.String()))
	b.WriteString("\n")
	b.WriteString(v.theme.PlanPrice.Render(p.Price))
	if p.Period != "" {
		b.WriteString(v.theme.UsageMeta.Render(p.Period))
	}
	b.WriteString("\n\n")
	for _, f := range p.Features {
		b.WriteString(v.theme.PlanFeature.Render("- " + f))
		b.WriteString("\n")
	}
	if p.Name == v.usage.Plan {
		b.WriteString("\n")
		b.WriteString(v.theme.UsageMeta.Render("Current plan"))
	}

	card := v.theme.PlanCard
	if p.Popular {
		card = v.theme.PlanCardPopular
	}
	if selected {
		card = v.theme.PlanCardSelected
	}
	return card.Render(b.String())
}

func (v PlanView) renderBoost(selected bool) string {
	text := fmt.Sprintf("Boost: %d extra chats for %s (one-time)",
		model.BoostChats, model.BoostPrice)

	style := v.theme.Button
	if selected {
		style = v.theme.ButtonActive
	}
	return style.Render(text)
}
