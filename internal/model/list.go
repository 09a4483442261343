// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// =============================================================================
// CONVERSATION LIST
// =============================================================================

// ConversationList is the ordered set of conversation summaries plus the
// active conversation. Exactly one conversation may be active at a time.
// The list is owned by the chat screen and mutated only through these
// operations.
type ConversationList struct {
	items    []*Conversation
	activeID string
}

// NewConversationList creates an empty list with no active conversation.
func NewConversationList() *ConversationList {
	return &ConversationList{}
}

// Items returns the conversations in display order (most recent first for
// server data; locally created conversations sit at the head).
func (l *ConversationList) Items() []*Conversation {
	return l.items
}

// Len returns the number of conversations.
func (l *ConversationList) Len() int {
	return len(l.items)
}

// Active returns the active conversation, or nil when none is selected.
func (l *ConversationList) Active() *Conversation {
	return l.Find(l.activeID)
}

// ActiveID returns the id of the active conversation, or "".
func (l *ConversationList) ActiveID() string {
	return l.activeID
}

// SetActive marks the conversation with the given id as active.
func (l *ConversationList) SetActive(id string) {
	l.activeID = id
}

// ClearActive deselects the active conversation.
func (l *ConversationList) ClearActive() {
	l.activeID = ""
}

// Find returns the conversation with the given id, or nil.
func (l *ConversationList) Find(id string) *Conversation {
	if id == "" {
		return nil
	}
	for _, c := range l.items {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// CreateLocal inserts a new temporary conversation at the head of the list
// and makes it active. No network call happens here; the server learns
// about the conversation when its first message is sent.
func (l *ConversationList) CreateLocal() *Conversation {
	conv := NewTemporary()
	l.items = append([]*Conversation{conv}, l.items...)
	l.activeID = conv.ID
	return conv
}

// ReplaceID swaps a temporary conversation's placeholder id for the
// server-assigned one, in place: list position is preserved and no
// duplicate entry is created. The active selection follows the rename.
func (l *ConversationList) ReplaceID(oldID, newID string) {
	for _, c := range l.items {
		if c.ID == oldID {
			c.ID = newID
			c.Temporary = false
			if l.activeID == oldID {
				l.activeID = newID
			}
			return
		}
	}
}

// Remove deletes the conversation with the given id from the list. When the
// removed conversation was active, the selection is cleared.
func (l *ConversationList) Remove(id string) {
	for i, c := range l.items {
		if c.ID == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			if l.activeID == id {
				l.activeID = ""
			}
			return
		}
	}
}

// ReplaceAll swaps the whole list for freshly fetched summaries. There is
// no merging of remote and cached data; the last fetch wins wholesale.
// The active selection is kept when the conversation survives the swap.
func (l *ConversationList) ReplaceAll(items []*Conversation) {
	l.items = items
	if l.activeID != "" && l.Find(l.activeID) == nil {
		l.activeID = ""
	}
}

// Summary is a lightweight listing entry as reported by the recent-chats
// endpoint.
type Summary struct {
	ID          string
	Title       string
	LastUpdated time.Time
}

// FromSummaries builds list entries from remote summaries. Message
// histories are loaded lazily when a conversation is selected.
func FromSummaries(summaries []Summary) []*Conversation {
	items := make([]*Conversation, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, &Conversation{
			ID:          s.ID,
			Title:       s.Title,
			LastUpdated: s.LastUpdated,
		})
	}
	return items
}
