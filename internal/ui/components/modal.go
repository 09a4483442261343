// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bluedash/bluedash-tui/internal/ui/styles"
)

// =============================================================================
// MODAL DIALOG
// =============================================================================

// ModalKind selects the modal's visual treatment.
type ModalKind int

const (
	ModalInfo ModalKind = iota
	ModalError
)

// Modal is a simple dismissable dialog with a title and body text.
type Modal struct {
	theme *styles.Theme

	kind  ModalKind
	title string
	body  string
}

// NewInfoModal creates an informational modal.
func NewInfoModal(theme *styles.Theme, title, body string) Modal {
	return Modal{theme: theme, kind: ModalInfo, title: title, body: body}
}

// NewErrorModal creates an error modal.
func NewErrorModal(theme *styles.Theme, title, body string) Modal {
	return Modal{theme: theme, kind: ModalError, title: title, body: body}
}

// View renders the modal centered within the given bounds.
func (m Modal) View(width, height int) string {
	var b strings.Builder

	title := m.theme.ModalTitle
	box := m.theme.ModalBox
	if m.kind == ModalError {
		title = m.theme.ErrorTitle
		box = m.theme.ErrorBox
	}

	b.WriteString(title.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.theme.ModalBody.Render(m.body))
	b.WriteString("\n\n")
	b.WriteString(m.theme.FormHint.Render("Press Enter or Esc to dismiss"))

	dialog := box.Render(b.String())
	if width <= 0 || height <= 0 {
		return dialog
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, dialog)
}
