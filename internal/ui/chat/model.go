// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/bluedash/bluedash-tui/internal/api"
	"github.com/bluedash/bluedash-tui/internal/model"
	"github.com/bluedash/bluedash-tui/internal/ui/components"
	"github.com/bluedash/bluedash-tui/internal/ui/styles"
	"github.com/bluedash/bluedash-tui/internal/usage"
)

// apologyMessage replaces the typing placeholder when a turn fails for a
// reason the user cannot act on.
const apologyMessage = "Sorry, I encountered an error. Please try again."

// boostCheckoutPlan is the fixed plan argument for the boost add-on: the
// checkout endpoint books boost purchases against the Pro plan.
const boostCheckoutPlan = "Pro"

// focusArea tracks which pane owns navigation keys.
type focusArea int

const (
	focusInput focusArea = iota
	focusSidebar
)

// overlay tracks which overlay, if any, is covering the chat view.
type overlay int

const (
	overlayNone overlay = iota
	overlayPlans
	overlayEmailCapture
	overlayModal
)

// pendingResend remembers the message that hit the email-capture gate so
// it can be resent exactly once after a successful capture.
type pendingResend struct {
	convID  string
	message string
	used    bool
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// Collaborators
	theme   *styles.Theme
	client  Client
	tracker *usage.Tracker
	cache   ListCache

	// Dimensions
	width  int
	height int

	// Conversations
	list        *model.ConversationList
	listLoading bool
	listStale   bool // showing the cached snapshot after a failed fetch
	loadingConv string

	// Turn state
	turn   TurnState
	resend pendingResend

	// UI components
	viewport   viewport.Model
	input      textinput.Model
	typing     components.TypingIndicator
	usagePanel components.UsagePanel
	planView   components.PlanView
	emailForm  components.EmailCaptureForm
	modal      components.Modal
	markdown   *markdownRenderer

	// Focus and overlays
	focus   focusArea
	overlay overlay
	cursor  int // sidebar cursor

	keyMap KeyMap

	// Usage poll
	pollInterval time.Duration

	// Rate-limit details from the last 429, shown in the plans overlay.
	rateLimit *api.RateLimitError
}

// New creates the chat model.
func New(theme *styles.Theme, client Client, tracker *usage.Tracker, cache ListCache) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask the Expert AI anything..."
	ti.CharLimit = 4096
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	return Model{
		theme:        theme,
		client:       client,
		tracker:      tracker,
		cache:        cache,
		list:         model.NewConversationList(),
		listLoading:  true,
		viewport:     vp,
		input:        ti,
		typing:       components.NewTypingIndicator(),
		usagePanel:   components.NewUsagePanel(theme),
		planView:     components.NewPlanView(theme),
		emailForm:    components.NewEmailCaptureForm(theme),
		markdown:     newMarkdownRenderer(76),
		keyMap:       DefaultKeyMap(),
		pollInterval: usage.PollInterval,
	}
}

// SetPollInterval overrides the usage poll period (config-driven).
func (m *Model) SetPollInterval(d time.Duration) {
	if d > 0 {
		m.pollInterval = d
	}
}

// Active returns the active conversation, or nil.
func (m Model) Active() *model.Conversation {
	return m.list.Active()
}

// TurnPhase exposes the current turn phase.
func (m Model) TurnPhase() TurnPhase {
	return m.turn.Phase
}

// Usage returns the current usage snapshot.
func (m Model) Usage() model.UsageState {
	return m.tracker.State()
}

// canSubmit reports whether a new turn may start right now.
func (m Model) canSubmit() bool {
	if m.turn.InFlight() || m.overlay != overlayNone {
		return false
	}
	return m.tracker.State().CanSend()
}
