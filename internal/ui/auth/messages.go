// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth provides the authentication screens: login, signup,
// forgot-password, and reset-password.
//
// This file defines the Bubble Tea message types used by the auth flow.
package auth

// =============================================================================
// RESULT MESSAGES
// =============================================================================

// AuthenticatedMsg signals a successful login or signup. The root model
// persists the token and switches to the chat view.
type AuthenticatedMsg struct {
	Token string
}

// LoginResultMsg delivers the outcome of a login request.
type LoginResultMsg struct {
	Token string
	Err   error
}

// SignupResultMsg delivers the outcome of a signup request.
type SignupResultMsg struct {
	Token string
	Err   error
}

// ForgotResultMsg delivers the outcome of a forgot-password request.
// Message is the server's acknowledgment text, shown verbatim.
type ForgotResultMsg struct {
	Message string
	Err     error
}

// ResetResultMsg delivers the outcome of a reset-password request.
type ResetResultMsg struct {
	Message string
	Err     error
}
