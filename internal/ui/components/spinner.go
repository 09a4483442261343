// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the BlueDash TUI.
package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bluedash/bluedash-tui/internal/ui/styles"
)

// =============================================================================
// SPINNER MODEL
// =============================================================================

// Spinner is a loading spinner with an optional message.
type Spinner struct {
	spinner spinner.Model
	message string
	active  bool
}

// NewSpinner creates a new spinner with ASCII-compatible frames.
func NewSpinner(message string) Spinner {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	return Spinner{spinner: s, message: message}
}

// Start activates the spinner.
func (s *Spinner) Start() tea.Cmd {
	s.active = true
	return s.spinner.Tick
}

// Stop deactivates the spinner.
func (s *Spinner) Stop() {
	s.active = false
}

// IsActive returns whether the spinner is running.
func (s Spinner) IsActive() bool {
	return s.active
}

// Update handles messages for the spinner.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	if !s.active {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the spinner.
func (s Spinner) View() string {
	if !s.active {
		return ""
	}
	frame := lipgloss.NewStyle().
		Foreground(styles.Teal).
		Render(s.spinner.View())
	if s.message == "" {
		return frame
	}
	text := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Render(s.message)
	return frame + " " + text
}

// =============================================================================
// TYPING INDICATOR
// =============================================================================

// TypingIndicator animates the assistant's typing placeholder in the
// transcript while a turn is in flight.
type TypingIndicator struct {
	spinner Spinner
}

// NewTypingIndicator creates a typing indicator.
func NewTypingIndicator() TypingIndicator {
	return TypingIndicator{
		spinner: NewSpinner("Expert AI is typing"),
	}
}

// Start begins the animation.
func (t *TypingIndicator) Start() tea.Cmd {
	return t.spinner.Start()
}

// Stop ends the animation.
func (t *TypingIndicator) Stop() {
	t.spinner.Stop()
}

// IsActive returns whether the indicator is animating.
func (t TypingIndicator) IsActive() bool {
	return t.spinner.IsActive()
}

// Update handles messages.
func (t TypingIndicator) Update(msg tea.Msg) (TypingIndicator, tea.Cmd) {
	var cmd tea.Cmd
	t.spinner, cmd = t.spinner.Update(msg)
	return t, cmd
}

// View renders the indicator.
func (t TypingIndicator) View() string {
	return t.spinner.View()
}
