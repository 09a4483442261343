// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"

	"github.com/bluedash/bluedash-tui/internal/api"
)

// =============================================================================
// TURN STATE MACHINE
// =============================================================================

// TurnPhase is the tagged state of the current chat turn. At most one turn
// is in flight at a time; the input rejects submits while Sending.
//
// Transitions:
//
//	Idle -> Sending                      on submit
//	Sending -> Success                   reply applied in place
//	Sending -> AuthRequired              401: session is over
//	Sending -> EmailCaptureRequired      402 with the capture flag
//	Sending -> RateLimited               429: quota exhausted
//	Sending -> Error                     anything else, incl. network
//
// Every terminal phase collapses back to Idle once its side effects have
// been applied (modal opened, apology appended, etc.).
type TurnPhase int

const (
	TurnIdle TurnPhase = iota
	TurnSending
	TurnSuccess
	TurnAuthRequired
	TurnEmailCaptureRequired
	TurnRateLimited
	TurnError
)

// String returns the phase name for logging.
func (p TurnPhase) String() string {
	switch p {
	case TurnIdle:
		return "idle"
	case TurnSending:
		return "sending"
	case TurnSuccess:
		return "success"
	case TurnAuthRequired:
		return "auth-required"
	case TurnEmailCaptureRequired:
		return "email-capture-required"
	case TurnRateLimited:
		return "rate-limited"
	case TurnError:
		return "error"
	default:
		return "unknown"
	}
}

// TurnState carries the in-flight turn: which conversation it targets and
// the message text, kept so the email-capture flow can resend it.
type TurnState struct {
	Phase   TurnPhase
	ConvID  string
	Message string
}

// begin moves Idle -> Sending.
func (t *TurnState) begin(convID, message string) {
	t.Phase = TurnSending
	t.ConvID = convID
	t.Message = message
}

// finish resolves Sending into a terminal phase based on the turn error.
func (t *TurnState) finish(err error) {
	switch {
	case err == nil:
		t.Phase = TurnSuccess
	case errors.Is(err, api.ErrAuthRequired):
		t.Phase = TurnAuthRequired
	case errors.Is(err, api.ErrEmailCaptureRequired):
		t.Phase = TurnEmailCaptureRequired
	case errors.Is(err, api.ErrRateLimited):
		t.Phase = TurnRateLimited
	default:
		t.Phase = TurnError
	}
}

// settle collapses a terminal phase back to Idle.
func (t *TurnState) settle() {
	t.Phase = TurnIdle
	t.ConvID = ""
	t.Message = ""
}

// InFlight reports whether a send is outstanding.
func (t TurnState) InFlight() bool {
	return t.Phase == TurnSending
}
