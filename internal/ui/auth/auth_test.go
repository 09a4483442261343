// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluedash/bluedash-tui/internal/ui/styles"
)

// fakeClient records calls and returns scripted results.
type fakeClient struct {
	loginCalls  int
	signupCalls int
	forgotCalls int
	resetCalls  int

	token string
	msg   string
	err   error
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (string, error) {
	f.loginCalls++
	return f.token, f.err
}

func (f *fakeClient) Signup(ctx context.Context, name, email, password string) (string, error) {
	f.signupCalls++
	return f.token, f.err
}

func (f *fakeClient) ForgotPassword(ctx context.Context, email string) (string, error) {
	f.forgotCalls++
	return f.msg, f.err
}

func (f *fakeClient) ResetPassword(ctx context.Context, token, password string) (string, error) {
	f.resetCalls++
	return f.msg, f.err
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func press(m Model, key string) (Model, tea.Cmd) {
	var k tea.KeyMsg
	switch key {
	case "enter":
		k = tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		k = tea.KeyMsg{Type: tea.KeyTab}
	default:
		k = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	return m.Update(k)
}

func TestLoginRequiresBothFields(t *testing.T) {
	c := &fakeClient{}
	m := New(styles.NewTheme(), c)

	m = typeText(m, "a@b.c")
	m, cmd := press(m, "enter")

	assert.Nil(t, cmd)
	assert.Equal(t, 0, c.loginCalls)
	assert.Contains(t, m.View(), "Email and password are required")
}

func TestLoginSuccessAnnouncesToken(t *testing.T) {
	c := &fakeClient{token: "tok-1"}
	m := New(styles.NewTheme(), c)

	m = typeText(m, "a@b.c")
	m, _ = press(m, "tab")
	m = typeText(m, "hunter22")
	m, cmd := press(m, "enter")
	require.NotNil(t, cmd)
	assert.True(t, m.Submitting())

	// Run the command and feed the result back, the way the runtime would.
	msg := cmd()
	result, ok := msg.(LoginResultMsg)
	require.True(t, ok)
	assert.Equal(t, 1, c.loginCalls)

	m, cmd = m.Update(result)
	require.NotNil(t, cmd)
	authed, ok := cmd().(AuthenticatedMsg)
	require.True(t, ok)
	assert.Equal(t, "tok-1", authed.Token)
	assert.False(t, m.Submitting())
}

func TestLoginFailureShowsServerMessage(t *testing.T) {
	c := &fakeClient{err: errors.New("Invalid credentials")}
	m := New(styles.NewTheme(), c)

	m = typeText(m, "a@b.c")
	m, _ = press(m, "tab")
	m = typeText(m, "hunter22")
	m, cmd := press(m, "enter")
	require.NotNil(t, cmd)

	m, next := m.Update(cmd())
	assert.Nil(t, next)
	assert.False(t, m.Submitting())
	assert.Contains(t, m.View(), "Invalid credentials")
}

func TestSignupRejectsShortPassword(t *testing.T) {
	c := &fakeClient{}
	m := New(styles.NewTheme(), c)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Equal(t, ScreenSignup, m.Screen())

	m = typeText(m, "Ada")
	m, _ = press(m, "tab")
	m = typeText(m, "ada@example.com")
	m, _ = press(m, "tab")
	m = typeText(m, "short")
	m, cmd := press(m, "enter")

	assert.Nil(t, cmd)
	assert.Equal(t, 0, c.signupCalls)
	assert.Contains(t, m.View(), "at least 8 characters")
}

func TestResetPasswordsMustMatch(t *testing.T) {
	c := &fakeClient{}
	m := NewReset(styles.NewTheme(), c, "rst-1")

	m = typeText(m, "longenough")
	m, _ = press(m, "tab")
	m = typeText(m, "different1")
	m, cmd := press(m, "enter")

	assert.Nil(t, cmd)
	assert.Equal(t, 0, c.resetCalls)
	assert.Contains(t, m.View(), "Passwords do not match")
}

func TestResetWithMissingTokenNeverCallsServer(t *testing.T) {
	c := &fakeClient{}
	m := NewReset(styles.NewTheme(), c, "")

	assert.Contains(t, m.View(), "Invalid or expired reset link")

	m = typeText(m, "longenough")
	m, cmd := press(m, "enter")
	assert.Nil(t, cmd)
	assert.Equal(t, 0, c.resetCalls)
	_ = m
}

func TestForgotShowsServerAcknowledgment(t *testing.T) {
	c := &fakeClient{msg: "Check your inbox"}
	m := New(styles.NewTheme(), c)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlF})
	require.Equal(t, ScreenForgot, m.Screen())

	m = typeText(m, "ada@example.com")
	m, cmd := press(m, "enter")
	require.NotNil(t, cmd)

	m, _ = m.Update(cmd())
	assert.Equal(t, 1, c.forgotCalls)
	assert.Contains(t, m.View(), "Check your inbox")
}

func TestInputIgnoredWhileSubmitting(t *testing.T) {
	c := &fakeClient{token: "tok"}
	m := New(styles.NewTheme(), c)

	m = typeText(m, "a@b.c")
	m, _ = press(m, "tab")
	m = typeText(m, "hunter22")
	m, _ = press(m, "enter")
	require.True(t, m.Submitting())

	// A second Enter while in flight must not issue another request.
	m, cmd := press(m, "enter")
	assert.Nil(t, cmd)
	assert.Equal(t, 1, c.loginCalls)
	_ = m
}
