// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/bluedash/bluedash-tui/internal/model"
)

// =============================================================================
// CHAT ENDPOINTS
// =============================================================================

// remoteMessage is the wire form of a chat message.
type remoteMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// toMessages converts wire messages into domain messages, mapping the
// service's "assistant" role onto the local "ai" role.
func toMessages(remote []remoteMessage) []model.Message {
	msgs := make([]model.Message, 0, len(remote))
	for _, m := range remote {
		msgs = append(msgs, model.Message{
			Role:      model.MapRemoteRole(m.Role),
			Content:   m.Content,
			Timestamp: time.Now(),
		})
	}
	return msgs
}

// RecentChats fetches the conversation list, most recent first.
func (c *Client) RecentChats(ctx context.Context) ([]model.Summary, error) {
	body, err := c.do(ctx, http.MethodGet, "/chat/recent", nil, true)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Chats []struct {
			ID        string    `json:"id"`
			Title     string    `json:"title"`
			UpdatedAt time.Time `json:"updatedAt"`
		} `json:"chats"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse chat list: %w", err)
	}

	summaries := make([]model.Summary, 0, len(resp.Chats))
	for _, ch := range resp.Chats {
		summaries = append(summaries, model.Summary{
			ID:          ch.ID,
			Title:       ch.Title,
			LastUpdated: ch.UpdatedAt,
		})
	}
	return summaries, nil
}

// GetChat fetches the full message history of one conversation.
func (c *Client) GetChat(ctx context.Context, id string) ([]model.Message, error) {
	body, err := c.do(ctx, http.MethodGet, "/chat/"+url.PathEscape(id), nil, true)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Chat struct {
			Messages []remoteMessage `json:"messages"`
		} `json:"chat"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse chat: %w", err)
	}
	return toMessages(resp.Chat.Messages), nil
}

// CreatedChat is the result of creating a conversation with its first
// message: the server-assigned id plus the full message list, which already
// includes the assistant's reply.
type CreatedChat struct {
	ID       string
	Messages []model.Message
}

// CreateChat creates a conversation from its first user message.
func (c *Client) CreateChat(ctx context.Context, message string) (*CreatedChat, error) {
	req := map[string]string{"message": message}
	body, err := c.do(ctx, http.MethodPost, "/chat", req, true)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Chat struct {
			ID       string          `json:"_id"`
			Messages []remoteMessage `json:"messages"`
		} `json:"chat"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse created chat: %w", err)
	}
	return &CreatedChat{
		ID:       resp.Chat.ID,
		Messages: toMessages(resp.Chat.Messages),
	}, nil
}

// SendResult is the assistant's reply to a follow-up message. The remaining
// interaction count is only present on some responses; -1 means the server
// did not report it.
type SendResult struct {
	Response         string
	InteractionsLeft int
}

// SendMessage sends a follow-up message on an existing conversation.
func (c *Client) SendMessage(ctx context.Context, chatID, message string) (*SendResult, error) {
	req := map[string]string{"message": message}
	body, err := c.do(ctx, http.MethodPost, "/chat/"+url.PathEscape(chatID)+"/message", req, true)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Response         string `json:"response"`
		InteractionsLeft *int   `json:"interactionsLeft"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse reply: %w", err)
	}

	result := &SendResult{Response: resp.Response, InteractionsLeft: -1}
	if resp.InteractionsLeft != nil {
		result.InteractionsLeft = *resp.InteractionsLeft
	}
	return result, nil
}

// DeleteChat deletes a conversation on the server.
func (c *Client) DeleteChat(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/chat/"+url.PathEscape(id), nil, true)
	return err
}
