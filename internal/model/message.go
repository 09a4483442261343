// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations, messages,
// usage state, and the plan catalog.
package model

import "time"

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser Role = "user"
	RoleAI   Role = "ai"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAI:
		return "Expert AI"
	default:
		return string(r)
	}
}

// MapRemoteRole maps the remote API's role vocabulary onto the local one.
// The service reports assistant turns as "assistant"; every other role is
// passed through unchanged.
func MapRemoteRole(remote string) Role {
	if remote == "assistant" {
		return RoleAI
	}
	return Role(remote)
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a conversation.
//
// Typing marks the transient placeholder shown while a response is in
// flight. At most one typing message may exist, always at the tail of the
// conversation, and it is always replaced in place (never appended after)
// by the real response or an error message. Typing messages are never
// persisted.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`

	Typing bool `json:"-"`
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content, Timestamp: time.Now()}
}

// NewAIMessage creates a new assistant message.
func NewAIMessage(content string) Message {
	return Message{Role: RoleAI, Content: content, Timestamp: time.Now()}
}

// NewTypingPlaceholder creates the transient typing-indicator message.
func NewTypingPlaceholder() Message {
	return Message{Role: RoleAI, Typing: true, Timestamp: time.Now()}
}
