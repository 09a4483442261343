// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the root Bubble Tea model that routes between the
// auth screens and the chat view.
package ui

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bluedash/bluedash-tui/internal/api"
	"github.com/bluedash/bluedash-tui/internal/session"
	"github.com/bluedash/bluedash-tui/internal/storage"
	"github.com/bluedash/bluedash-tui/internal/ui/auth"
	"github.com/bluedash/bluedash-tui/internal/ui/chat"
	"github.com/bluedash/bluedash-tui/internal/ui/styles"
	"github.com/bluedash/bluedash-tui/internal/usage"
)

// mode selects which sub-model owns the screen.
type mode int

const (
	modeAuth mode = iota
	modeChat
)

// App is the top-level model. It owns the session store and swaps
// between the auth flow and the chat view as the session changes.
type App struct {
	theme   *styles.Theme
	client  *api.Client
	tracker *usage.Tracker
	cache   *storage.Cache
	session *session.Store

	mode mode
	auth auth.Model
	chat chat.Model

	width  int
	height int
}

// NewApp builds the root model. An already-authenticated session goes
// straight to chat; otherwise the login screen shows first.
func NewApp(theme *styles.Theme, client *api.Client, tracker *usage.Tracker,
	cache *storage.Cache, store *session.Store) App {

	a := App{
		theme:   theme,
		client:  client,
		tracker: tracker,
		cache:   cache,
		session: store,
		auth:    auth.New(theme, client),
		chat:    chat.New(theme, client, tracker, listCache(cache)),
	}
	if store.IsAuthenticated() {
		a.mode = modeChat
	}
	return a
}

// NewAppWithResetToken builds the root model on the password-reset
// screen, as launched from a reset email's deep link. Any existing
// session is ignored until the reset completes.
func NewAppWithResetToken(theme *styles.Theme, client *api.Client, tracker *usage.Tracker,
	cache *storage.Cache, store *session.Store, resetToken string) App {

	a := NewApp(theme, client, tracker, cache, store)
	a.mode = modeAuth
	a.auth = auth.NewReset(theme, client, resetToken)
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.mode == modeChat {
		return a.chat.Init()
	}
	return a.auth.Init()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Both sub-models track the size so switching modes never
		// renders at a stale width.
		var authCmd, chatCmd tea.Cmd
		a.auth, authCmd = a.auth.Update(msg)
		a.chat, chatCmd = a.chat.Update(msg)
		return a, tea.Batch(authCmd, chatCmd)

	case auth.AuthenticatedMsg:
		return a.enterChat(msg.Token)

	case chat.SessionExpiredMsg:
		return a.enterAuth("Your session has expired. Please sign in again.")

	case chat.LogoutMsg:
		return a.enterAuth("")
	}

	switch a.mode {
	case modeAuth:
		var cmd tea.Cmd
		a.auth, cmd = a.auth.Update(msg)
		return a, cmd
	default:
		var cmd tea.Cmd
		a.chat, cmd = a.chat.Update(msg)
		return a, cmd
	}
}

// View implements tea.Model.
func (a App) View() string {
	if a.mode == modeAuth {
		return a.auth.View()
	}
	return a.chat.View()
}

// listCache avoids handing the chat view a typed nil when the local
// store failed to open.
func listCache(c *storage.Cache) chat.ListCache {
	if c == nil {
		return nil
	}
	return c
}

// enterChat persists the fresh token and starts the chat view.
func (a App) enterChat(token string) (tea.Model, tea.Cmd) {
	if err := a.session.Set(token); err != nil {
		// The session still works in-memory for this run.
		log.Printf("failed to persist session token: %v", err)
	}

	a.mode = modeChat
	a.chat = chat.New(a.theme, a.client, a.tracker, listCache(a.cache))

	cmds := []tea.Cmd{a.chat.Init()}
	if a.width > 0 {
		var cmd tea.Cmd
		a.chat, cmd = a.chat.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

// enterAuth clears the session and returns to the login screen.
func (a App) enterAuth(notice string) (tea.Model, tea.Cmd) {
	if err := a.session.Clear(); err != nil {
		log.Printf("failed to clear session token: %v", err)
	}

	a.mode = modeAuth
	a.auth = auth.New(a.theme, a.client)
	if notice != "" {
		a.auth.SetNotice(notice)
	}

	cmds := []tea.Cmd{a.auth.Init()}
	if a.width > 0 {
		var cmd tea.Cmd
		a.auth, cmd = a.auth.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}
