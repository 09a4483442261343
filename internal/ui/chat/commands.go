// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file holds the tea.Cmd constructors that talk to the remote
// service. Every command resolves into exactly one message type from
// messages.go; error classification happens in the turn state machine,
// not here.
package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bluedash/bluedash-tui/internal/api"
	"github.com/bluedash/bluedash-tui/internal/model"
	"github.com/bluedash/bluedash-tui/internal/usage"
)

// requestTimeout bounds list/load/delete requests. Sends use a longer
// window because generation can be slow.
const (
	requestTimeout = 30 * time.Second
	sendTimeout    = 120 * time.Second
)

// Client is the slice of the API the chat view needs.
type Client interface {
	RecentChats(ctx context.Context) ([]model.Summary, error)
	GetChat(ctx context.Context, id string) ([]model.Message, error)
	CreateChat(ctx context.Context, message string) (*api.CreatedChat, error)
	SendMessage(ctx context.Context, chatID, message string) (*api.SendResult, error)
	DeleteChat(ctx context.Context, id string) error
	CaptureEmail(ctx context.Context, name, email string) error
	Checkout(ctx context.Context, plan string) (string, error)
}

// ListCache is the slice of the local store the chat view needs. It is
// best effort: a nil cache disables the fallback without changing flow.
type ListCache interface {
	SaveSummaries(summaries []model.Summary) error
	LoadSummaries() ([]model.Summary, error)
}

// =============================================================================
// CONVERSATION LIST COMMANDS
// =============================================================================

// fetchChatsCmd fetches the recent conversation list, falling back to the
// local cache when the network fails. A cache miss surfaces the original
// network error.
func fetchChatsCmd(client Client, cache ListCache) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		summaries, err := client.RecentChats(ctx)
		if err == nil {
			return ChatsLoadedMsg{Summaries: summaries}
		}

		if cache != nil {
			if cached, cacheErr := cache.LoadSummaries(); cacheErr == nil {
				return ChatsLoadedMsg{Summaries: cached, FromCache: true}
			}
		}
		return ChatsLoadedMsg{Err: err}
	}
}

// saveCacheCmd writes the list snapshot to the local cache. Failures are
// swallowed: the cache never affects the chat flow.
func saveCacheCmd(cache ListCache, summaries []model.Summary) tea.Cmd {
	if cache == nil {
		return nil
	}
	return func() tea.Msg {
		_ = cache.SaveSummaries(summaries)
		return nil
	}
}

// loadConversationCmd fetches one conversation's history.
func loadConversationCmd(client Client, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		msgs, err := client.GetChat(ctx, id)
		return ConversationLoadedMsg{ID: id, Messages: msgs, Err: err}
	}
}

// deleteChatCmd deletes a conversation on the server. The list entry is
// only removed when the delete succeeds.
func deleteChatCmd(client Client, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return DeleteResultMsg{ID: id, Err: client.DeleteChat(ctx, id)}
	}
}

// =============================================================================
// TURN COMMANDS
// =============================================================================

// sendTurnCmd issues the chat turn: create-with-first-message for a
// temporary conversation, append otherwise.
func sendTurnCmd(client Client, convID, message string, temporary bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		if temporary {
			created, err := client.CreateChat(ctx, message)
			if err != nil {
				return TurnResultMsg{ConvID: convID, InteractionsLeft: -1, Err: err}
			}
			return TurnResultMsg{
				ConvID:           convID,
				NewID:            created.ID,
				Messages:         created.Messages,
				InteractionsLeft: -1,
			}
		}

		res, err := client.SendMessage(ctx, convID, message)
		if err != nil {
			return TurnResultMsg{ConvID: convID, InteractionsLeft: -1, Err: err}
		}
		return TurnResultMsg{
			ConvID:           convID,
			Response:         res.Response,
			InteractionsLeft: res.InteractionsLeft,
		}
	}
}

// =============================================================================
// USAGE COMMANDS
// =============================================================================

// refreshUsageCmd runs a tracker refresh off the UI goroutine.
func refreshUsageCmd(tracker *usage.Tracker) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return UsageRefreshedMsg{State: tracker.Refresh(ctx)}
	}
}

// usagePollCmd schedules the next periodic usage poll.
func usagePollCmd(interval time.Duration) tea.Cmd {
	if interval <= 0 {
		interval = usage.PollInterval
	}
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return UsagePollTickMsg{}
	})
}

// =============================================================================
// BILLING COMMANDS
// =============================================================================

// checkoutCmd starts a checkout session for a plan upgrade or the boost
// add-on ("boost" is a fixed plan argument on the same endpoint).
func checkoutCmd(client Client, plan string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		url, err := client.Checkout(ctx, plan)
		return CheckoutResultMsg{Plan: plan, URL: url, Err: err}
	}
}

// captureEmailCmd submits the free-tier name/email gate.
func captureEmailCmd(client Client, name, email string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return EmailCaptureResultMsg{Err: client.CaptureEmail(ctx, name, email)}
	}
}
