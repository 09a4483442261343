// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bluedash/bluedash-tui/internal/ui/styles"
)

// =============================================================================
// EMAIL CAPTURE FORM
// =============================================================================

// EmailCaptureForm collects name and email from free-tier users who have
// used their initial interactions. While a submission is in flight the
// form cannot be dismissed.
type EmailCaptureForm struct {
	theme *styles.Theme

	name  textinput.Model
	email textinput.Model
	focus int // 0 = name, 1 = email

	submitting bool
	errMsg     string
}

// NewEmailCaptureForm creates the capture form with the name field focused.
func NewEmailCaptureForm(theme *styles.Theme) EmailCaptureForm {
	name := textinput.New()
	name.Placeholder = "Your name"
	name.CharLimit = 100
	name.Focus()

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254

	return EmailCaptureForm{
		theme: theme,
		name:  name,
		email: email,
	}
}

// Name returns the entered name, trimmed.
func (f EmailCaptureForm) Name() string {
	return strings.TrimSpace(f.name.Value())
}

// Email returns the entered email, trimmed.
func (f EmailCaptureForm) Email() string {
	return strings.TrimSpace(f.email.Value())
}

// Validate checks the fields locally and records an error message for the
// view. Returns true when the form may be submitted.
func (f *EmailCaptureForm) Validate() bool {
	if f.Name() == "" {
		f.errMsg = "Please enter your name"
		return false
	}
	email := f.Email()
	if email == "" || !strings.Contains(email, "@") || strings.HasPrefix(email, "@") ||
		strings.HasSuffix(email, "@") {
		f.errMsg = "Please enter a valid email address"
		return false
	}
	f.errMsg = ""
	return true
}

// SetSubmitting marks a submission in flight; input is ignored until the
// result arrives.
func (f *EmailCaptureForm) SetSubmitting(submitting bool) {
	f.submitting = submitting
}

// Submitting reports whether a submission is in flight.
func (f EmailCaptureForm) Submitting() bool {
	return f.submitting
}

// SetError surfaces a server-side failure under the form.
func (f *EmailCaptureForm) SetError(msg string) {
	f.errMsg = msg
}

// Update handles key messages: Tab cycles fields, everything else goes to
// the focused input. Enter and Escape are the caller's to interpret.
func (f EmailCaptureForm) Update(msg tea.Msg) (EmailCaptureForm, tea.Cmd) {
	if f.submitting {
		return f, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "shift+tab", "up", "down":
			if f.focus == 0 {
				f.focus = 1
				f.name.Blur()
				f.email.Focus()
			} else {
				f.focus = 0
				f.email.Blur()
				f.name.Focus()
			}
			return f, nil
		}
	}

	var cmd tea.Cmd
	if f.focus == 0 {
		f.name, cmd = f.name.Update(msg)
	} else {
		f.email, cmd = f.email.Update(msg)
	}
	return f, cmd
}

// View renders the form.
func (f EmailCaptureForm) View() string {
	var b strings.Builder

	b.WriteString(f.theme.FormTitle.Render("You've used your free interactions"))
	b.WriteString("\n")
	b.WriteString(f.theme.ModalBody.Render(
		"Enter your name and email to unlock 5 additional chat interactions."))
	b.WriteString("\n\n")

	b.WriteString(f.theme.FormLabel.Render("Name"))
	b.WriteString("\n")
	b.WriteString(f.name.View())
	b.WriteString("\n\n")

	b.WriteString(f.theme.FormLabel.Render("Email"))
	b.WriteString("\n")
	b.WriteString(f.email.View())
	b.WriteString("\n")

	if f.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(f.theme.FormFieldError.Render(f.errMsg))
		b.WriteString("\n")
	}

	if f.submitting {
		b.WriteString("\n")
		b.WriteString(f.theme.FormHint.Render("Submitting..."))
	} else {
		b.WriteString("\n")
		b.WriteString(f.theme.FormHint.Render("Enter to submit"))
	}

	return f.theme.ModalBox.Render(b.String())
}
