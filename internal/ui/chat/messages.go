// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view: transcript, sidebar, input, usage
// panel, and the plan/upgrade and email-capture overlays.
//
// This file defines the Bubble Tea message types used by the chat view,
// grouped by concern: conversation list, turns, usage, billing, and the
// email-capture gate.
package chat

import (
	"github.com/bluedash/bluedash-tui/internal/model"
)

// =============================================================================
// CONVERSATION LIST MESSAGES
// =============================================================================

// ChatsLoadedMsg delivers the conversation list. FromCache is set when the
// network fetch failed and the local snapshot was used instead.
type ChatsLoadedMsg struct {
	Summaries []model.Summary
	FromCache bool
	Err       error
}

// ConversationLoadedMsg delivers a conversation's full message history.
type ConversationLoadedMsg struct {
	ID       string
	Messages []model.Message
	Err      error
}

// DeleteResultMsg delivers the outcome of a server-side delete.
type DeleteResultMsg struct {
	ID  string
	Err error
}

// =============================================================================
// TURN MESSAGES
// =============================================================================

// TurnResultMsg delivers the outcome of one chat turn. For a first send on
// a temporary conversation, NewID carries the server-assigned id and
// Messages the full history (which already includes the reply). For a
// follow-up send, Response carries the reply text.
type TurnResultMsg struct {
	ConvID string // the id the send targeted (may be temporary)

	// First send on a new conversation
	NewID    string
	Messages []model.Message

	// Follow-up send
	Response string

	// Remaining interactions if the server reported them, else -1.
	InteractionsLeft int

	Err error
}

// SessionExpiredMsg tells the root model the token no longer works; it
// clears the session and switches back to the auth view.
type SessionExpiredMsg struct{}

// LogoutMsg is emitted when the user logs out explicitly.
type LogoutMsg struct{}

// =============================================================================
// USAGE MESSAGES
// =============================================================================

// UsageRefreshedMsg delivers the tracker's state after a refresh.
type UsageRefreshedMsg struct {
	State model.UsageState
}

// UsagePollTickMsg fires on the periodic usage poll interval.
type UsagePollTickMsg struct{}

// =============================================================================
// BILLING MESSAGES
// =============================================================================

// CheckoutResultMsg delivers the checkout session URL for an upgrade or
// boost purchase.
type CheckoutResultMsg struct {
	Plan string
	URL  string
	Err  error
}

// =============================================================================
// EMAIL CAPTURE MESSAGES
// =============================================================================

// EmailCaptureResultMsg delivers the outcome of the free-tier name/email
// submission.
type EmailCaptureResultMsg struct {
	Err error
}
