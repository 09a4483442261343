// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderBrand lipgloss.Style
	HeaderMeta  lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble   lipgloss.Style
	ExpertBubble lipgloss.Style
	SenderLabel  lipgloss.Style
	Timestamp    lipgloss.Style

	// ==========================================================================
	// SIDEBAR STYLES
	// ==========================================================================

	Sidebar              lipgloss.Style
	SidebarTitle         lipgloss.Style
	SidebarItem          lipgloss.Style
	SidebarItemSelected  lipgloss.Style
	SidebarItemTemporary lipgloss.Style
	SidebarMeta          lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputPlaceholder lipgloss.Style
	InputDisabled    lipgloss.Style

	// ==========================================================================
	// USAGE PANEL STYLES
	// ==========================================================================

	UsagePanel    lipgloss.Style
	PlanBadge     lipgloss.Style
	UsageHealthy  lipgloss.Style
	UsageLow      lipgloss.Style
	UsageCritical lipgloss.Style
	UsageMeta     lipgloss.Style

	// ==========================================================================
	// MODAL / DIALOG STYLES
	// ==========================================================================

	ModalBox     lipgloss.Style
	ModalTitle   lipgloss.Style
	ModalBody    lipgloss.Style
	ErrorBox     lipgloss.Style
	ErrorTitle   lipgloss.Style
	WarnBanner   lipgloss.Style
	Button       lipgloss.Style
	ButtonActive lipgloss.Style

	// ==========================================================================
	// PLAN GRID STYLES
	// ==========================================================================

	PlanCard         lipgloss.Style
	PlanCardSelected lipgloss.Style
	PlanCardPopular  lipgloss.Style
	PlanName         lipgloss.Style
	PlanPrice        lipgloss.Style
	PlanFeature      lipgloss.Style
	PopularTag       lipgloss.Style

	// ==========================================================================
	// FORM STYLES
	// ==========================================================================

	FormBox        lipgloss.Style
	FormTitle      lipgloss.Style
	FormLabel      lipgloss.Style
	FormFieldError lipgloss.Style
	FormHint       lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// Spinner / loading
	Spinner      lipgloss.Style
	ThinkingText lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()
	hasTrueColor := colorProfile == termenv.TrueColor
	isDark := termenv.HasDarkBackground()

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: hasTrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Blue).
		Background(SurfaceDim).
		Padding(0, 2)

	t.HeaderBrand = lipgloss.NewStyle().
		Bold(true).
		Foreground(Blue)

	t.HeaderMeta = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 2).
		MarginLeft(4)

	t.ExpertBubble = lipgloss.NewStyle().
		Foreground(ExpertBubbleFg).
		Background(ExpertBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ExpertBubbleBorder).
		Padding(0, 2).
		MarginRight(4)

	t.SenderLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextSecondary)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Sidebar
	t.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.SidebarTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Blue).
		Padding(0, 1)

	t.SidebarItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.SidebarItemSelected = lipgloss.NewStyle().
		Background(Blue).
		Foreground(TextInverse).
		Bold(true).
		Padding(0, 1)

	t.SidebarItemTemporary = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true).
		Padding(0, 1)

	t.SidebarMeta = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Blue).
		Bold(true)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.InputDisabled = lipgloss.NewStyle().
		Foreground(TextMuted).
		Strikethrough(false)

	// Usage panel
	t.UsagePanel = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.PlanBadge = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Blue).
		Padding(0, 1)

	t.UsageHealthy = lipgloss.NewStyle().Foreground(QuotaHealthy)
	t.UsageLow = lipgloss.NewStyle().Foreground(QuotaLow)
	t.UsageCritical = lipgloss.NewStyle().Foreground(QuotaCritical).Bold(true)

	t.UsageMeta = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Modals
	t.ModalBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Blue).
		Background(Surface).
		Padding(1, 2)

	t.ModalTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Blue)

	t.ModalBody = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.ErrorBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Rose).
		Padding(1, 2)

	t.ErrorTitle = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.WarnBanner = lipgloss.NewStyle().
		Foreground(AmberDeep).
		Background(Amber).
		Bold(true).
		Padding(0, 1)

	t.Button = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(Overlay).
		Padding(0, 2).
		MarginRight(1)

	t.ButtonActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Blue).
		Bold(true).
		Padding(0, 2).
		MarginRight(1)

	// Plan grid
	t.PlanCard = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(1, 2).
		MarginRight(1)

	t.PlanCardSelected = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Blue).
		Padding(1, 2).
		MarginRight(1)

	t.PlanCardPopular = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Teal).
		Padding(1, 2).
		MarginRight(1)

	t.PlanName = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.PlanPrice = lipgloss.NewStyle().
		Bold(true).
		Foreground(Blue)

	t.PlanFeature = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.PopularTag = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Teal).
		Bold(true).
		Padding(0, 1)

	// Forms
	t.FormBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Blue).
		Padding(1, 3)

	t.FormTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Blue).
		MarginBottom(1)

	t.FormLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.FormFieldError = lipgloss.NewStyle().
		Foreground(Rose)

	t.FormHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Blue).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Spinner
	t.Spinner = lipgloss.NewStyle().
		Foreground(Teal)

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(TextSecondary)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns: no sidebar
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// QuotaStyle picks the usage style for a remaining fraction of the limit.
func (t *Theme) QuotaStyle(fraction float64) lipgloss.Style {
	switch {
	case fraction <= 0.10:
		return t.UsageCritical
	case fraction <= 0.25:
		return t.UsageLow
	default:
		return t.UsageHealthy
	}
}
