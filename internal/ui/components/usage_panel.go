// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bluedash/bluedash-tui/internal/model"
	"github.com/bluedash/bluedash-tui/internal/ui/styles"
)

// =============================================================================
// USAGE PANEL
// =============================================================================

// UsagePanel renders the current quota snapshot: plan badge, remaining
// interactions with a colored bar, reset time, and boost credits.
type UsagePanel struct {
	theme *styles.Theme
	width int
}

// NewUsagePanel creates a usage panel.
func NewUsagePanel(theme *styles.Theme) UsagePanel {
	return UsagePanel{theme: theme, width: 32}
}

// SetWidth sets the panel's render width.
func (p *UsagePanel) SetWidth(width int) {
	if width < 20 {
		width = 20
	}
	p.width = width
}

// View renders the panel for the given snapshot.
func (p UsagePanel) View(u model.UsageState) string {
	var b strings.Builder

	badge := p.theme.PlanBadge.Render(u.Plan.String() + " Plan")
	b.WriteString(badge)
	b.WriteString("\n")

	switch {
	case u.Loading:
		b.WriteString(p.theme.UsageMeta.Render("Loading usage..."))
	case u.IsUnlimited():
		// Premium gets no numeric countdown.
		b.WriteString(p.theme.UsageHealthy.Render("Unlimited interactions"))
	default:
		frac := u.RemainingFraction()
		style := p.theme.QuotaStyle(frac)
		b.WriteString(style.Render(fmt.Sprintf("%d / %d interactions left", u.Remaining, u.Limit)))
		b.WriteString("\n")
		b.WriteString(p.renderBar(frac, style))
	}

	if !u.Loading && !u.IsUnlimited() && !u.ResetTime.IsZero() {
		b.WriteString("\n")
		b.WriteString(p.theme.UsageMeta.Render("Resets " + FormatResetTime(u.ResetTime, time.Now())))
	}

	if u.BoostCredits > 0 {
		b.WriteString("\n")
		b.WriteString(p.theme.UsageHealthy.Render(fmt.Sprintf("+%d boost credits", u.BoostCredits)))
	}

	if u.Err != "" {
		b.WriteString("\n")
		b.WriteString(p.theme.UsageMeta.Render("(showing last known usage)"))
	}

	return p.theme.UsagePanel.Width(p.width).Render(b.String())
}

// renderBar draws a proportional bar for the remaining fraction.
func (p UsagePanel) renderBar(frac float64, style lipgloss.Style) string {
	inner := p.width - 4
	if inner < 4 {
		inner = 4
	}
	filled := int(frac * float64(inner))
	if filled > inner {
		filled = inner
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("=", filled) + strings.Repeat("-", inner-filled)
	return style.Render("[" + bar + "]")
}

// FormatResetTime renders a reset timestamp relative to now: "Today at
// 3:04 PM", "Tomorrow at 3:04 PM", or the date for anything later.
func FormatResetTime(reset, now time.Time) string {
	reset = reset.Local()
	now = now.Local()

	y1, m1, d1 := now.Date()
	y2, m2, d2 := reset.Date()
	clock := reset.Format("3:04 PM")

	switch {
	case y1 == y2 && m1 == m2 && d1 == d2:
		return "Today at " + clock
	case isNextDay(now, reset):
		return "Tomorrow at " + clock
	default:
		return reset.Format("Jan 2") + " at " + clock
	}
}

func isNextDay(now, t time.Time) bool {
	next := now.AddDate(0, 0, 1)
	y1, m1, d1 := next.Date()
	y2, m2, d2 := t.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
