// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.HeaderBrand.Render("BlueDash"))
	b.WriteString("  ")
	b.WriteString(m.theme.HeaderMeta.Render("Expert AI at your fingertips"))
	b.WriteString("\n\n")

	b.WriteString(m.theme.FormTitle.Render(m.title()))
	b.WriteString("\n")

	if m.screen == ScreenReset && m.invalidLink {
		b.WriteString(m.theme.FormFieldError.Render(
			"Invalid or expired reset link. Request a new one from the login screen."))
		b.WriteString("\n\n")
		b.WriteString(m.theme.FormHint.Render("Ctrl+L  back to login"))
		return m.place(m.theme.FormBox.Render(b.String()))
	}

	for i := range m.fields {
		b.WriteString(m.fields[i].View())
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.FormFieldError.Render(m.errMsg))
		b.WriteString("\n")
	}
	if m.infoMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.ModalBody.Render(m.infoMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.submitting {
		b.WriteString(m.theme.FormHint.Render("Please wait..."))
	} else {
		b.WriteString(m.theme.FormHint.Render(m.footer()))
	}

	return m.place(m.theme.FormBox.Render(b.String()))
}

func (m Model) title() string {
	switch m.screen {
	case ScreenSignup:
		return "Create your account"
	case ScreenForgot:
		return "Forgot password"
	case ScreenReset:
		return "Set a new password"
	default:
		return "Welcome back"
	}
}

func (m Model) footer() string {
	switch m.screen {
	case ScreenLogin:
		return "Enter  log in | Ctrl+S  sign up | Ctrl+F  forgot password"
	case ScreenSignup:
		return "Enter  sign up | Ctrl+L  log in"
	case ScreenForgot:
		return "Enter  send reset link | Ctrl+L  log in"
	default:
		return "Enter  save password | Ctrl+L  log in"
	}
}

func (m Model) place(content string) string {
	if m.width <= 0 || m.height <= 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
