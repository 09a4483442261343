// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer renders assistant replies as terminal markdown. The
// glamour renderer is rebuilt only when the wrap width changes.
type markdownRenderer struct {
	renderer *glamour.TermRenderer
	width    int
}

func newMarkdownRenderer(width int) *markdownRenderer {
	r := &markdownRenderer{}
	r.setWidth(width)
	return r
}

func (r *markdownRenderer) setWidth(width int) {
	if width < 20 {
		width = 20
	}
	if r.renderer != nil && r.width == width {
		return
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		// Keep the previous renderer; plain text fallback handles nil.
		return
	}
	r.renderer = renderer
	r.width = width
}

// render converts markdown to styled terminal text, falling back to the
// raw content when rendering fails.
func (r *markdownRenderer) render(content string) string {
	if r.renderer == nil {
		return content
	}
	out, err := r.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}
