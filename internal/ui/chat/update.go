// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bluedash/bluedash-tui/internal/api"
	"github.com/bluedash/bluedash-tui/internal/model"
	"github.com/bluedash/bluedash-tui/internal/ui/components"
)

// Init fetches the conversation list, refreshes usage, and starts the
// periodic poll.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		fetchChatsCmd(m.client, m.cache),
		refreshUsageCmd(m.tracker),
		usagePollCmd(m.pollInterval),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ChatsLoadedMsg:
		return m.handleChatsLoaded(msg)

	case ConversationLoadedMsg:
		return m.handleConversationLoaded(msg)

	case TurnResultMsg:
		return m.handleTurnResult(msg)

	case DeleteResultMsg:
		return m.handleDeleteResult(msg)

	case UsageRefreshedMsg:
		m.planView.SetUsage(msg.State)
		m.refreshViewport()
		return m, nil

	case UsagePollTickMsg:
		return m, tea.Batch(
			refreshUsageCmd(m.tracker),
			usagePollCmd(m.pollInterval),
		)

	case CheckoutResultMsg:
		return m.handleCheckoutResult(msg)

	case EmailCaptureResultMsg:
		return m.handleEmailCaptureResult(msg)
	}

	// Spinner ticks and other component messages. The typing placeholder
	// is baked into the viewport content, so each frame needs a rebuild
	// to animate.
	var cmd tea.Cmd
	m.typing, cmd = m.typing.Update(msg)
	if m.turn.InFlight() {
		m.refreshViewport()
	}
	return m, cmd
}

// =============================================================================
// LAYOUT AND KEYS
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)

	transcriptWidth := m.transcriptWidth()
	m.viewport.Width = transcriptWidth
	m.viewport.Height = m.transcriptHeight()
	m.markdown.setWidth(transcriptWidth - 4)
	m.usagePanel.SetWidth(sidebarWidth)
	m.refreshViewport()
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// Quit always works.
	if matches(msg, m.keyMap.Quit) {
		return m, tea.Quit
	}

	switch m.overlay {
	case overlayPlans:
		return m.handlePlansKey(msg)
	case overlayEmailCapture:
		return m.handleEmailCaptureKey(msg)
	case overlayModal:
		if matches(msg, m.keyMap.Dismiss) || matches(msg, m.keyMap.Submit) {
			m.overlay = overlayNone
		}
		return m, nil
	}

	switch {
	case matches(msg, m.keyMap.NewChat):
		return m.startNewChat()

	case matches(msg, m.keyMap.Plans):
		m.planView.SetUsage(m.tracker.State())
		m.overlay = overlayPlans
		return m, nil

	case matches(msg, m.keyMap.Logout):
		return m, func() tea.Msg { return LogoutMsg{} }

	case matches(msg, m.keyMap.ToggleSide):
		if m.focus == focusInput {
			m.focus = focusSidebar
			m.input.Blur()
		} else {
			m.focus = focusInput
			m.input.Focus()
		}
		return m, nil

	case matches(msg, m.keyMap.ScrollUp):
		m.viewport.LineUp(5)
		return m, nil

	case matches(msg, m.keyMap.ScrollDown):
		m.viewport.LineDown(5)
		return m, nil
	}

	if m.focus == focusSidebar {
		return m.handleSidebarKey(msg)
	}

	if matches(msg, m.keyMap.Submit) {
		return m.submitInput()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleSidebarKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case matches(msg, m.keyMap.SideUp):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case matches(msg, m.keyMap.SideDown):
		if m.cursor < m.list.Len()-1 {
			m.cursor++
		}
		return m, nil

	case matches(msg, m.keyMap.Submit):
		return m.selectConversation()

	case matches(msg, m.keyMap.DeleteChat):
		return m.deleteSelected()
	}
	return m, nil
}

func matches(msg tea.KeyMsg, binding key.Binding) bool {
	return key.Matches(msg, binding)
}

// =============================================================================
// CONVERSATION LIST
// =============================================================================

func (m Model) handleChatsLoaded(msg ChatsLoadedMsg) (Model, tea.Cmd) {
	m.listLoading = false
	if msg.Err != nil {
		log.Printf("chat list fetch failed: %v", msg.Err)
		m.modal = components.NewErrorModal(m.theme, "Couldn't load conversations",
			"The conversation list is unavailable right now. You can still start a new chat.")
		m.overlay = overlayModal
		return m, nil
	}

	m.listStale = msg.FromCache
	m.list.ReplaceAll(model.FromSummaries(msg.Summaries))
	m.clampCursor()
	m.refreshViewport()

	if msg.FromCache {
		return m, nil
	}
	return m, saveCacheCmd(m.cache, msg.Summaries)
}

func (m Model) selectConversation() (Model, tea.Cmd) {
	items := m.list.Items()
	if m.cursor >= len(items) {
		return m, nil
	}
	conv := items[m.cursor]
	m.list.SetActive(conv.ID)
	m.focus = focusInput
	m.input.Focus()

	// Temporary conversations have nothing to load; everything is local.
	if conv.Temporary || len(conv.Messages) > 0 {
		m.refreshViewport()
		return m, nil
	}

	m.loadingConv = conv.ID
	m.refreshViewport()
	return m, loadConversationCmd(m.client, conv.ID)
}

func (m Model) handleConversationLoaded(msg ConversationLoadedMsg) (Model, tea.Cmd) {
	if m.loadingConv == msg.ID {
		m.loadingConv = ""
	}

	if msg.Err != nil {
		log.Printf("conversation load failed: %v", msg.Err)
		if errors.Is(msg.Err, api.ErrAuthRequired) {
			// No partial state: the conversation stays unloaded.
			return m, func() tea.Msg { return SessionExpiredMsg{} }
		}
		m.modal = components.NewErrorModal(m.theme, "Couldn't open conversation",
			serverText(msg.Err, "The conversation could not be loaded. Please try again."))
		m.overlay = overlayModal
		return m, nil
	}

	if conv := m.list.Find(msg.ID); conv != nil {
		conv.Messages = msg.Messages
	}
	m.refreshViewport()
	return m, nil
}

func (m Model) startNewChat() (Model, tea.Cmd) {
	// Reuse an existing empty draft instead of stacking them.
	if active := m.list.Active(); active != nil && active.Temporary && active.IsEmpty() {
		return m, nil
	}
	m.list.CreateLocal()
	m.cursor = 0
	m.focus = focusInput
	m.input.Focus()
	m.refreshViewport()
	return m, nil
}

func (m Model) deleteSelected() (Model, tea.Cmd) {
	items := m.list.Items()
	if m.cursor >= len(items) {
		return m, nil
	}
	conv := items[m.cursor]

	// A temporary conversation exists only locally; drop it outright.
	if conv.Temporary {
		m.list.Remove(conv.ID)
		m.clampCursor()
		m.refreshViewport()
		return m, nil
	}

	// Persisted conversations are removed only after the server confirms.
	return m, deleteChatCmd(m.client, conv.ID)
}

func (m Model) handleDeleteResult(msg DeleteResultMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		log.Printf("delete failed for %s: %v", msg.ID, msg.Err)
		m.modal = components.NewErrorModal(m.theme, "Couldn't delete conversation",
			serverText(msg.Err, "The conversation was not deleted. Please try again."))
		m.overlay = overlayModal
		return m, nil
	}

	m.list.Remove(msg.ID)
	m.clampCursor()
	m.refreshViewport()
	return m, saveCacheCmd(m.cache, m.summaries())
}

// =============================================================================
// TURNS
// =============================================================================

// submitInput starts a turn from the input field: optimistic user append,
// typing placeholder, then the create-or-append request plus a
// fire-and-forget usage refresh.
func (m Model) submitInput() (Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}
	if !m.canSubmit() {
		return m, nil
	}

	conv := m.list.Active()
	if conv == nil {
		conv = m.list.CreateLocal()
		m.cursor = 0
	}

	conv.Append(model.NewUserMessage(text))
	conv.AppendTyping()
	m.input.Reset()

	m.turn.begin(conv.ID, text)
	m.refreshViewport()

	return m, tea.Batch(
		m.typing.Start(),
		sendTurnCmd(m.client, conv.ID, text, conv.Temporary),
		refreshUsageCmd(m.tracker),
	)
}

// resendAfterCapture replays the gated message once. The user message is
// already in the transcript, so only the placeholder and the request are
// recreated.
func (m Model) resendAfterCapture() (Model, tea.Cmd) {
	conv := m.list.Find(m.resend.convID)
	if conv == nil || m.resend.used {
		return m, nil
	}
	m.resend.used = true

	conv.AppendTyping()
	m.turn.begin(conv.ID, m.resend.message)
	m.refreshViewport()

	return m, tea.Batch(
		m.typing.Start(),
		sendTurnCmd(m.client, conv.ID, m.resend.message, conv.Temporary),
	)
}

func (m Model) handleTurnResult(msg TurnResultMsg) (Model, tea.Cmd) {
	// A result for a conversation we no longer track (deleted mid-flight)
	// only settles the turn.
	conv := m.list.Find(msg.ConvID)
	if conv == nil {
		m.turn.settle()
		m.typing.Stop()
		return m, nil
	}

	m.turn.finish(msg.Err)
	log.Printf("turn %s: %s", msg.ConvID, m.turn.Phase)

	var cmd tea.Cmd
	switch m.turn.Phase {
	case TurnSuccess:
		cmd = m.applyTurnSuccess(conv, msg)

	case TurnAuthRequired:
		// The user message stays; the placeholder goes. The root model
		// handles the switch to the auth view.
		conv.DropTyping()
		cmd = func() tea.Msg { return SessionExpiredMsg{} }

	case TurnEmailCaptureRequired:
		conv.DropTyping()
		m.resend = pendingResend{convID: conv.ID, message: m.turn.Message}
		m.emailForm = components.NewEmailCaptureForm(m.theme)
		m.overlay = overlayEmailCapture

	case TurnRateLimited:
		conv.DropTyping()
		var rle *api.RateLimitError
		if errors.As(msg.Err, &rle) {
			m.rateLimit = rle
			log.Printf("rate limited: limit=%d plan=%s suggested=%s",
				rle.Limit, rle.Plan, rle.SuggestedPlan)
		}
		m.planView.SetUsage(m.tracker.State())
		m.overlay = overlayPlans

	case TurnError:
		// Generic and network failures read the same to the user.
		conv.ResolveTyping(model.NewAIMessage(apologyMessage))
	}

	m.turn.settle()
	m.typing.Stop()
	m.refreshViewport()

	return m, cmd
}

// applyTurnSuccess applies a successful reply: id reconciliation for first
// sends, in-place placeholder resolution, and the direct usage update.
func (m *Model) applyTurnSuccess(conv *model.Conversation, msg TurnResultMsg) tea.Cmd {
	if msg.NewID != "" {
		// First send: adopt the server id in place and take the server's
		// message history, which already includes the reply.
		m.list.ReplaceID(msg.ConvID, msg.NewID)
		conv.Messages = msg.Messages
		conv.RefreshTitle()
	} else {
		conv.ResolveTyping(model.NewAIMessage(msg.Response))
	}

	var cmds []tea.Cmd
	if msg.InteractionsLeft >= 0 {
		state := m.tracker.ApplyRemaining(msg.InteractionsLeft)
		m.planView.SetUsage(state)
	} else {
		// The server did not report the count; poll for it.
		cmds = append(cmds, refreshUsageCmd(m.tracker))
	}

	cmds = append(cmds, saveCacheCmd(m.cache, m.summaries()))
	return tea.Batch(cmds...)
}

// =============================================================================
// PLANS / CHECKOUT
// =============================================================================

func (m Model) handlePlansKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if !m.planView.Pending() {
			m.overlay = overlayNone
			m.rateLimit = nil
		}
		return m, nil
	case "left", "shift+tab", "up":
		m.planView.MovePrev()
		return m, nil
	case "right", "tab", "down":
		m.planView.MoveNext()
		return m, nil
	case "enter":
		if m.planView.Pending() {
			return m, nil
		}
		// The endpoint takes the plan's display name, not the catalog id.
		sel := m.planView.Selected()
		plan := string(sel.Name)
		if sel.IsBoost {
			plan = boostCheckoutPlan
		}
		m.planView.SetPending(true)
		return m, checkoutCmd(m.client, plan)
	}
	return m, nil
}

func (m Model) handleCheckoutResult(msg CheckoutResultMsg) (Model, tea.Cmd) {
	m.planView.SetPending(false)

	if msg.Err != nil {
		log.Printf("checkout failed for %q: %v", msg.Plan, msg.Err)
		if errors.Is(msg.Err, api.ErrNoCheckoutURL) {
			// 2xx without a session URL: stay put, nothing to navigate to.
			return m, nil
		}
		m.modal = components.NewErrorModal(m.theme, "Checkout unavailable",
			serverText(msg.Err, "The checkout session could not be created. Please try again."))
		m.overlay = overlayModal
		return m, nil
	}

	m.overlay = overlayModal
	m.modal = components.NewInfoModal(m.theme, "Complete your purchase",
		fmt.Sprintf("Open this link in your browser to finish checkout:\n\n%s", msg.URL))
	return m, nil
}

// =============================================================================
// EMAIL CAPTURE
// =============================================================================

func (m Model) handleEmailCaptureKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// The form is not dismissable while a submission is in flight.
	if m.emailForm.Submitting() {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.overlay = overlayNone
		m.resend = pendingResend{}
		return m, nil
	case "enter":
		if !m.emailForm.Validate() {
			return m, nil
		}
		m.emailForm.SetSubmitting(true)
		return m, captureEmailCmd(m.client, m.emailForm.Name(), m.emailForm.Email())
	}

	var cmd tea.Cmd
	m.emailForm, cmd = m.emailForm.Update(msg)
	return m, cmd
}

func (m Model) handleEmailCaptureResult(msg EmailCaptureResultMsg) (Model, tea.Cmd) {
	m.emailForm.SetSubmitting(false)

	if msg.Err != nil {
		// The form stays open with the failure under it.
		m.emailForm.SetError(serverText(msg.Err, "Submission failed. Please try again."))
		return m, nil
	}

	m.overlay = overlayModal
	m.modal = components.NewInfoModal(m.theme, "You're all set",
		"Thanks! You've unlocked 5 additional chat interactions.")

	next, cmd := m.resendAfterCapture()
	return next, tea.Batch(cmd, refreshUsageCmd(next.tracker))
}

// =============================================================================
// HELPERS
// =============================================================================

func (m *Model) clampCursor() {
	if m.cursor >= m.list.Len() {
		m.cursor = m.list.Len() - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// summaries snapshots the list for the cache.
func (m Model) summaries() []model.Summary {
	items := m.list.Items()
	out := make([]model.Summary, 0, len(items))
	for _, c := range items {
		out = append(out, model.Summary{
			ID:          c.ID,
			Title:       c.Title,
			LastUpdated: c.LastUpdated,
		})
	}
	return out
}

// serverText prefers the server's own message, falling back to a fixed
// line for errors with nothing quotable.
func serverText(err error, fallback string) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
