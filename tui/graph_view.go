package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var graphStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("252"))

func (m Model) renderGraphView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("INTEGRATION GRAPH · " + categoryLabel(m.directory.Category())))
	s.WriteString("\n\n")

	if m.graphDOT == "" {
		s.WriteString("Generating graph...\n")
	} else {
		lines := strings.Split(m.graphDOT, "\n")
		if limit := max(m.height-6, 5); len(lines) > limit {
			lines = append(lines[:limit], mutedStyle.Render("... use `mos viz graph` for the full output"))
		}
		s.WriteString(graphStyle.Render(strings.Join(lines, "\n")))
	}

	s.WriteString("\n\n")
	s.WriteString(m.renderGraphHelp())

	return s.String()
}

func (m Model) renderGraphHelp() string {
	help := []string{
		"Esc: Back",
		"Ctrl+C: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleGraphKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.viewMode = ViewMain
		m.graphDOT = ""
	}

	return m, nil
}
