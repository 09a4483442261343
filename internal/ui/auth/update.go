// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bluedash/bluedash-tui/internal/api"
)

// requestTimeout bounds each auth request issued from a tea.Cmd.
const requestTimeout = 30 * time.Second

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case LoginResultMsg:
		m.submitting = false
		if msg.Err != nil {
			m.errMsg = serverMessage(msg.Err)
			return m, nil
		}
		return m, announce(msg.Token)

	case SignupResultMsg:
		m.submitting = false
		if msg.Err != nil {
			m.errMsg = serverMessage(msg.Err)
			return m, nil
		}
		return m, announce(msg.Token)

	case ForgotResultMsg:
		m.submitting = false
		if msg.Err != nil {
			m.errMsg = serverMessage(msg.Err)
			return m, nil
		}
		m.infoMsg = msg.Message
		if m.infoMsg == "" {
			m.infoMsg = "If that email exists, a reset link is on its way."
		}
		return m, nil

	case ResetResultMsg:
		m.submitting = false
		if msg.Err != nil {
			m.errMsg = serverMessage(msg.Err)
			return m, nil
		}
		m.infoMsg = msg.Message
		if m.infoMsg == "" {
			m.infoMsg = "Password updated. You can log in now."
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

// handleKey routes key input: navigation, screen switching, submit.
func (m Model) handleKey(key tea.KeyMsg) (Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	switch key.String() {
	case "tab", "down":
		m.moveFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.moveFocus(-1)
		return m, nil
	case "enter":
		return m.submit()
	case "ctrl+l":
		m.setScreen(ScreenLogin)
		return m, nil
	case "ctrl+s":
		if m.screen != ScreenReset {
			m.setScreen(ScreenSignup)
		}
		return m, nil
	case "ctrl+f":
		if m.screen != ScreenReset {
			m.setScreen(ScreenForgot)
		}
		return m, nil
	}

	return m.updateFocused(key)
}

func (m *Model) moveFocus(delta int) {
	if len(m.fields) == 0 {
		return
	}
	m.fields[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.fields)) % len(m.fields)
	m.fields[m.focus].Focus()
}

func (m Model) updateFocused(msg tea.Msg) (Model, tea.Cmd) {
	if m.submitting || len(m.fields) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.fields[m.focus], cmd = m.fields[m.focus].Update(msg)
	return m, cmd
}

// =============================================================================
// SUBMIT
// =============================================================================

// submit validates locally and issues the request for the current screen.
func (m Model) submit() (Model, tea.Cmd) {
	m.errMsg = ""
	m.infoMsg = ""

	switch m.screen {
	case ScreenLogin:
		email, password := m.fieldValue(0), m.rawValue(1)
		if email == "" || password == "" {
			m.errMsg = "Email and password are required"
			return m, nil
		}
		m.submitting = true
		return m, m.loginCmd(email, password)

	case ScreenSignup:
		name, email, password := m.fieldValue(0), m.fieldValue(1), m.rawValue(2)
		if name == "" || email == "" {
			m.errMsg = "All fields are required"
			return m, nil
		}
		if len(password) < MinPasswordLen {
			m.errMsg = "Password must be at least 8 characters"
			return m, nil
		}
		m.submitting = true
		return m, m.signupCmd(name, email, password)

	case ScreenForgot:
		email := m.fieldValue(0)
		if email == "" || !strings.Contains(email, "@") {
			m.errMsg = "Please enter a valid email address"
			return m, nil
		}
		m.submitting = true
		return m, m.forgotCmd(email)

	case ScreenReset:
		if m.invalidLink {
			return m, nil
		}
		password, confirm := m.rawValue(0), m.rawValue(1)
		if len(password) < MinPasswordLen {
			m.errMsg = "Password must be at least 8 characters"
			return m, nil
		}
		if password != confirm {
			m.errMsg = "Passwords do not match"
			return m, nil
		}
		m.submitting = true
		return m, m.resetCmd(password)
	}

	return m, nil
}

// =============================================================================
// COMMANDS
// =============================================================================

func (m Model) loginCmd(email, password string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		token, err := client.Login(ctx, email, password)
		return LoginResultMsg{Token: token, Err: err}
	}
}

func (m Model) signupCmd(name, email, password string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		token, err := client.Signup(ctx, name, email, password)
		return SignupResultMsg{Token: token, Err: err}
	}
}

func (m Model) forgotCmd(email string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		message, err := client.ForgotPassword(ctx, email)
		return ForgotResultMsg{Message: message, Err: err}
	}
}

func (m Model) resetCmd(password string) tea.Cmd {
	client := m.client
	token := m.resetToken
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		message, err := client.ResetPassword(ctx, token, password)
		return ResetResultMsg{Message: message, Err: err}
	}
}

func announce(token string) tea.Cmd {
	return func() tea.Msg {
		return AuthenticatedMsg{Token: token}
	}
}

// serverMessage extracts the text to show for a failed request. Server
// messages are surfaced verbatim; transport errors get a generic line.
func serverMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, api.ErrNetwork) {
		return "Network error. Please check your connection and try again."
	}
	return err.Error()
}
