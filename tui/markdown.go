package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// renderMarkdown renders md for the terminal, falling back to the raw
// text if glamour fails.
func renderMarkdown(md string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(width-4, 20)),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
