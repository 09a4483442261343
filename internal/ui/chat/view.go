// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bluedash/bluedash-tui/internal/model"
	"github.com/bluedash/bluedash-tui/internal/ui/styles"
)

const (
	sidebarWidth    = 32
	statusBarHeight = 1
	headerHeight    = 2
	inputHeight     = 3
)

// =============================================================================
// TOP-LEVEL VIEW
// =============================================================================

// View renders the chat screen.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.overlay {
	case overlayPlans:
		return m.renderPlansOverlay()
	case overlayEmailCapture:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.emailForm.View())
	case overlayModal:
		return m.modal.View(m.width, m.height)
	}

	header := m.renderHeader()
	status := m.renderStatusBar()

	main := m.renderTranscriptColumn()
	if m.theme.GetLayoutMode() != styles.LayoutNarrow {
		main = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), main)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, main, status)
}

func (m Model) transcriptWidth() int {
	if m.theme.GetLayoutMode() == styles.LayoutNarrow {
		return m.width
	}
	return m.width - sidebarWidth
}

func (m Model) transcriptHeight() int {
	h := m.height - headerHeight - inputHeight - statusBarHeight
	if m.inputBannerVisible() {
		h--
	}
	if h < 3 {
		h = 3
	}
	return h
}

// =============================================================================
// HEADER AND STATUS BAR
// =============================================================================

func (m Model) renderHeader() string {
	brand := m.theme.HeaderBrand.Render("BlueDash")

	u := m.tracker.State()
	meta := string(u.Plan) + " Plan"
	if u.Loading {
		meta = "..."
	}
	right := m.theme.HeaderMeta.Render(meta)

	gap := m.width - lipgloss.Width(brand) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	line := brand + strings.Repeat(" ", gap) + right
	return m.theme.Header.Width(m.width).Render(line)
}

func (m Model) renderStatusBar() string {
	var parts []string
	for _, b := range m.keyMap.ShortHelp() {
		h := b.Help()
		parts = append(parts,
			m.theme.ShortcutKey.Render(h.Key)+" "+m.theme.ShortcutDesc.Render(h.Desc))
	}
	return m.theme.StatusBar.Width(m.width).Render(strings.Join(parts, "  "))
}

// =============================================================================
// SIDEBAR
// =============================================================================

func (m Model) renderSidebar() string {
	var b strings.Builder

	b.WriteString(m.theme.SidebarTitle.Render("Conversations"))
	b.WriteString("\n")

	switch {
	case m.listLoading:
		b.WriteString(m.theme.SidebarMeta.Render("Loading..."))
		b.WriteString("\n")
	case m.list.Len() == 0:
		b.WriteString(m.theme.SidebarMeta.Render("No conversations yet"))
		b.WriteString("\n")
	default:
		if m.listStale {
			b.WriteString(m.theme.SidebarMeta.Render("(offline, showing cached)"))
			b.WriteString("\n")
		}
		activeID := m.list.ActiveID()
		for i, conv := range m.list.Items() {
			b.WriteString(m.renderSidebarItem(i, conv, activeID))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.usagePanel.View(m.tracker.State()))

	height := m.height - headerHeight - statusBarHeight
	return m.theme.Sidebar.Width(sidebarWidth - 2).Height(height).Render(b.String())
}

func (m Model) renderSidebarItem(i int, conv *model.Conversation, activeID string) string {
	title := conv.Title
	if title == "" {
		title = "New chat"
	}

	style := m.theme.SidebarItem
	switch {
	case m.focus == focusSidebar && i == m.cursor:
		style = m.theme.SidebarItemSelected
	case conv.Temporary:
		style = m.theme.SidebarItemTemporary
	case conv.ID == activeID:
		style = m.theme.SidebarItemSelected
	}

	if conv.ID == m.loadingConv {
		title += " ..."
	}
	return style.MaxWidth(sidebarWidth - 4).Render(title)
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

func (m Model) renderTranscriptColumn() string {
	sections := []string{m.viewport.View()}
	if m.inputBannerVisible() {
		sections = append(sections, m.renderInputBanner())
	}
	sections = append(sections, m.renderInput())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// refreshViewport rebuilds the transcript content and keeps the view
// pinned to the newest message.
func (m *Model) refreshViewport() {
	conv := m.list.Active()
	if conv == nil {
		m.viewport.SetContent(m.renderEmptyTranscript())
		return
	}

	width := m.transcriptWidth()
	var blocks []string
	for _, msg := range conv.Messages {
		blocks = append(blocks, m.renderMessage(msg, width))
	}
	m.viewport.SetContent(strings.Join(blocks, "\n\n"))
	m.viewport.GotoBottom()
}

func (m Model) renderEmptyTranscript() string {
	return lipgloss.Place(m.transcriptWidth(), m.transcriptHeight(),
		lipgloss.Center, lipgloss.Center,
		m.theme.ThinkingText.Render("Ask the Expert AI anything to get started."))
}

func (m Model) renderMessage(msg model.Message, width int) string {
	if msg.Typing {
		return m.theme.ExpertBubble.Render(m.typing.View())
	}

	bubbleWidth := width * 3 / 4
	if bubbleWidth < 20 {
		bubbleWidth = width - 2
	}

	if msg.Role == model.RoleUser {
		bubble := m.theme.UserBubble.MaxWidth(bubbleWidth).Render(msg.Content)
		label := m.theme.SenderLabel.Render("You")
		block := lipgloss.JoinVertical(lipgloss.Right, label, bubble)
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, block)
	}

	rendered := m.markdown.render(msg.Content)
	bubble := m.theme.ExpertBubble.MaxWidth(bubbleWidth).Render(rendered)
	label := m.theme.SenderLabel.Render("Expert AI")
	return lipgloss.JoinVertical(lipgloss.Left, label, bubble)
}

// =============================================================================
// INPUT AREA
// =============================================================================

func (m Model) inputBannerVisible() bool {
	u := m.tracker.State()
	if u.Loading || u.IsUnlimited() {
		return false
	}
	return u.Remaining <= model.InputBannerThreshold
}

func (m Model) renderInputBanner() string {
	u := m.tracker.State()
	var text string
	if u.Remaining <= 0 {
		text = "You're out of interactions. Press ctrl+p to view plans."
	} else {
		text = fmt.Sprintf("Only %d interactions left. Press ctrl+p to view plans.", u.Remaining)
	}
	return m.theme.WarnBanner.Width(m.transcriptWidth() - 2).Render(text)
}

func (m Model) renderInput() string {
	width := m.transcriptWidth() - 2

	if !m.tracker.State().CanSend() {
		return m.theme.InputDisabled.Width(width).
			Render("Out of interactions. Upgrade your plan to continue chatting.")
	}

	field := m.input.View()
	if m.turn.InFlight() {
		field += "  " + m.theme.ThinkingText.Render("sending...")
	}
	return m.theme.InputContainer.Width(width).Render(field)
}

// =============================================================================
// OVERLAYS
// =============================================================================

func (m Model) renderPlansOverlay() string {
	content := m.planView.View()

	if m.rateLimit != nil {
		note := fmt.Sprintf("You've hit your %s plan limit of %d interactions.",
			m.rateLimit.Plan, m.rateLimit.Limit)
		if !m.rateLimit.ResetTime.IsZero() {
			note += " Your quota resets soon."
		}
		banner := m.theme.WarnBanner.Render(note)
		content = lipgloss.JoinVertical(lipgloss.Center, banner, "", content)
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
