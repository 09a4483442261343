// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bluedash/bluedash-tui/internal/util"
)

// TempIDPrefix marks client-generated placeholder ids. A conversation keeps
// a placeholder id until the server assigns a permanent one on the first
// successful send.
const TempIDPrefix = "temp-"

// TitleMaxRunes is the maximum title length derived from the first user
// message before an ellipsis is appended.
const TitleMaxRunes = 30

// DefaultTitle is the title of a conversation with no user messages yet.
const DefaultTitle = "New Conversation"

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds a chat conversation with its metadata.
//
// Temporary conversations exist only in this client; they have no
// server-side representation until their first message is sent, at which
// point the server id replaces the placeholder in place.
type Conversation struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	LastUpdated time.Time `json:"last_updated"`
	Messages    []Message `json:"messages"`
	Temporary   bool      `json:"-"`
}

// NewTemporary creates a client-side conversation with a placeholder id.
func NewTemporary() *Conversation {
	return &Conversation{
		ID:          TempIDPrefix + uuid.NewString(),
		Title:       DefaultTitle,
		LastUpdated: time.Now(),
		Temporary:   true,
	}
}

// IsTempID reports whether id is a client-generated placeholder.
func IsTempID(id string) bool {
	return strings.HasPrefix(id, TempIDPrefix)
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// Append adds a message and refreshes the title and timestamp.
func (c *Conversation) Append(msg Message) {
	c.Messages = append(c.Messages, msg)
	c.LastUpdated = time.Now()
	c.RefreshTitle()
}

// AppendTyping appends the typing placeholder. It is a no-op when a
// placeholder is already pending, preserving the at-most-one invariant.
func (c *Conversation) AppendTyping() {
	if c.TypingIndex() >= 0 {
		return
	}
	c.Messages = append(c.Messages, NewTypingPlaceholder())
}

// TypingIndex returns the index of the pending typing placeholder, or -1.
// The placeholder only ever lives at the tail, so only the tail is checked.
func (c *Conversation) TypingIndex() int {
	if n := len(c.Messages); n > 0 && c.Messages[n-1].Typing {
		return n - 1
	}
	return -1
}

// ResolveTyping replaces the typing placeholder in place with the given
// message. Replacement is by index substitution, never by filtering, so
// exactly one assistant slot exists per turn regardless of outcome. When no
// placeholder is pending the message is appended instead.
func (c *Conversation) ResolveTyping(msg Message) {
	if i := c.TypingIndex(); i >= 0 {
		c.Messages[i] = msg
	} else {
		c.Messages = append(c.Messages, msg)
	}
	c.LastUpdated = time.Now()
	c.RefreshTitle()
}

// DropTyping removes a pending typing placeholder, leaving the transcript
// as it was before the turn's assistant slot was opened. Used when a turn
// is abandoned (authentication required) rather than settled.
func (c *Conversation) DropTyping() {
	if i := c.TypingIndex(); i >= 0 {
		c.Messages = c.Messages[:i]
	}
}

// LastUserMessage returns the content of the most recent user message,
// or "" when there is none.
func (c *Conversation) LastUserMessage() string {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleUser {
			return c.Messages[i].Content
		}
	}
	return ""
}

// IsEmpty returns true if there are no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// =============================================================================
// TITLE MANAGEMENT
// =============================================================================

// RefreshTitle re-derives the title from the first user message, truncated
// to TitleMaxRunes with an ellipsis marker when cut. Conversations without
// a user message keep the default title.
func (c *Conversation) RefreshTitle() {
	for _, msg := range c.Messages {
		if msg.Role == RoleUser {
			c.Title = DeriveTitle(msg.Content)
			return
		}
	}
}

// DeriveTitle computes a conversation title from a first user message.
func DeriveTitle(firstUserMessage string) string {
	title := strings.ReplaceAll(firstUserMessage, "\n", " ")
	title = strings.TrimSpace(title)
	if title == "" {
		return DefaultTitle
	}
	return util.TruncateRunes(title, TitleMaxRunes)
}
