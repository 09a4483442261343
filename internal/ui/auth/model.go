// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/bluedash/bluedash-tui/internal/ui/styles"
)

// =============================================================================
// AUTH SCREENS
// =============================================================================

// Screen identifies which auth form is showing.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenSignup
	ScreenForgot
	ScreenReset
)

// MinPasswordLen is the minimum accepted password length. Checked locally
// before any request goes out.
const MinPasswordLen = 8

// Client is the slice of the API the auth screens need.
type Client interface {
	Login(ctx context.Context, email, password string) (string, error)
	Signup(ctx context.Context, name, email, password string) (string, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, resetToken, password string) (string, error)
}

// Model is the auth view: one form at a time, Tab between fields, Enter
// submits, and footer links switch screens.
type Model struct {
	theme  *styles.Theme
	client Client

	screen Screen
	fields []textinput.Model
	focus  int

	// Reset flow: the emailed token. Empty means the reset screen shows
	// its invalid-link state and never issues a request.
	resetToken  string
	invalidLink bool

	submitting bool
	errMsg     string // validation error or server error, shown under the form
	infoMsg    string // server acknowledgment (forgot/reset), shown verbatim

	width  int
	height int
}

// New creates the auth model on the login screen.
func New(theme *styles.Theme, client Client) Model {
	m := Model{
		theme:  theme,
		client: client,
	}
	m.setScreen(ScreenLogin)
	return m
}

// NewReset creates the auth model on the reset-password screen for the
// given emailed token. An empty token is an invalid link: the screen says
// so immediately and no network call is ever made.
func NewReset(theme *styles.Theme, client Client, resetToken string) Model {
	m := Model{
		theme:      theme,
		client:     client,
		resetToken: resetToken,
	}
	m.setScreen(ScreenReset)
	if resetToken == "" {
		m.invalidLink = true
	}
	return m
}

// Screen returns the current screen.
func (m Model) Screen() Screen {
	return m.screen
}

// SetNotice shows an informational line above the form, e.g. the reason
// the user was returned here after a session expiry.
func (m *Model) SetNotice(notice string) {
	m.infoMsg = notice
}

// Submitting reports whether a request is in flight.
func (m Model) Submitting() bool {
	return m.submitting
}

// setScreen switches forms and rebuilds the field set.
func (m *Model) setScreen(s Screen) {
	m.screen = s
	m.focus = 0
	m.errMsg = ""
	m.infoMsg = ""

	newField := func(placeholder string, secret bool) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 254
		if secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '*'
		}
		return ti
	}

	switch s {
	case ScreenLogin:
		m.fields = []textinput.Model{
			newField("Email", false),
			newField("Password", true),
		}
	case ScreenSignup:
		m.fields = []textinput.Model{
			newField("Name", false),
			newField("Email", false),
			newField("Password", true),
		}
	case ScreenForgot:
		m.fields = []textinput.Model{
			newField("Email", false),
		}
	case ScreenReset:
		m.fields = []textinput.Model{
			newField("New password", true),
			newField("Confirm password", true),
		}
	}
	if len(m.fields) > 0 {
		m.fields[0].Focus()
	}
}

// fieldValue returns the trimmed value of field i. Passwords are read
// with rawValue instead so leading/trailing characters survive.
func (m Model) fieldValue(i int) string {
	if i >= len(m.fields) {
		return ""
	}
	return strings.TrimSpace(m.fields[i].Value())
}

// rawValue returns the untrimmed value of field i.
func (m Model) rawValue(i int) string {
	if i >= len(m.fields) {
		return ""
	}
	return m.fields[i].Value()
}
