// ABOUTME: Add-integration wizard dialog for the TUI
// ABOUTME: Walks the five wizard steps inside a bordered box with Back/Next buttons
package tui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/drylogics/marketingos/hub"
	"github.com/drylogics/marketingos/models"
)

var (
	dialogBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("170")).
			Padding(1, 2).
			Width(72)

	primaryButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("63")).
				Padding(0, 2).
				MarginRight(2)

	disabledButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Background(lipgloss.Color("236")).
				Padding(0, 2).
				MarginRight(2)

	secondaryButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("8")).
				Padding(0, 2)
)

func (m Model) renderWizardView() string {
	w := m.wizard

	var s strings.Builder
	s.WriteString(titleStyle.Render("Add New Integration"))
	s.WriteString("\n")
	s.WriteString(m.renderWizardSteps())
	s.WriteString("\n\n")

	if w.Step() == hub.LastStep {
		s.WriteString(renderWizardSummary(w.Summary()))
		s.WriteString("\n")
	}
	s.WriteString(renderRows(m.wizardRows(), m.cursor))
	s.WriteString(m.renderEditor())
	if m.status != "" {
		s.WriteString("\n")
		s.WriteString(errorStyle.Render(m.status))
	}
	s.WriteString("\n\n")

	next := primaryButtonStyle
	if !w.CanAdvance() {
		next = disabledButtonStyle
	}
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Left,
		next.Render(w.PrimaryLabel()+" (ctrl+n)"),
		secondaryButtonStyle.Render(w.SecondaryLabel()+" (ctrl+b)"),
	))

	return lipgloss.JoinVertical(lipgloss.Left,
		dialogBoxStyle.Render(s.String()),
		helpStyle.Render(strings.Join([]string{
			"↑/↓: Move",
			"Enter/Space: Select",
			"Ctrl+N: Next",
			"Ctrl+B: Back",
			"Esc: Close",
		}, " • ")),
	)
}

func (m Model) renderWizardSteps() string {
	current := m.wizard.Step()
	var parts []string
	for i, title := range m.wizard.StepTitles() {
		n := i + 1
		label := fmt.Sprintf("%d %s", n, title)
		switch {
		case n < current:
			parts = append(parts, okStyle.Render("✓ "+title))
		case n == current:
			parts = append(parts, stageActiveStyle.Render(label))
		default:
			parts = append(parts, stageStyle.Render(label))
		}
	}
	return strings.Join(parts, stageStyle.Render(" › "))
}

func renderWizardSummary(sum hub.Summary) string {
	var types []string
	for _, o := range sum.DataTypes {
		types = append(types, o.Name)
	}
	if len(types) == 0 {
		types = []string{"None"}
	}
	lines := []string{
		sectionStyle.Render("Review & Connect"),
		fmt.Sprintf("Tool:           %s", sum.Tool.Name),
		fmt.Sprintf("Data types:     %s", strings.Join(types, ", ")),
		fmt.Sprintf("Sync frequency: %s", sum.Frequency.Name),
		fmt.Sprintf("Auth method:    %s", sum.AuthMethod.Name),
	}
	return strings.Join(lines, "\n")
}

// wizardRows is the form of the current wizard step.
func (m Model) wizardRows() []row {
	w := m.wizard
	switch w.Step() {
	case 1:
		tool, _ := w.Tool()
		var rows []row
		for _, c := range models.Categories {
			var group []row
			for _, t := range w.Tools() {
				if t.Category != c {
					continue
				}
				group = append(group, radio(t.Logo+" "+t.Name, tool.ID == t.ID, func(*Model) { _ = w.SelectTool(t.ID) }))
			}
			if len(group) > 0 {
				rows = append(rows, heading(c.Label()))
				rows = append(rows, group...)
			}
		}
		return rows
	case 2:
		return authRows(w)
	case 3:
		rows := []row{heading("What data should sync?")}
		chosen := w.DataTypes()
		for _, o := range w.DataTypeOptions() {
			rows = append(rows, toggle(o.Name, slices.Contains(chosen, o.ID), func(*Model) { _ = w.ToggleDataType(o.ID) }))
		}
		return rows
	case 4:
		rows := []row{heading("How often should it sync?")}
		for _, o := range w.Frequencies() {
			rows = append(rows, radio(o.Name, w.Frequency() == o.ID, func(*Model) { _ = w.SetFrequency(o.ID) }))
		}
		return rows
	}
	return nil
}

func authRows(w *hub.AddWizard) []row {
	auth := w.Auth()
	rows := []row{heading("Authentication")}
	for _, o := range w.AuthMethods() {
		rows = append(rows, radio(o.Name, auth.Method == o.ID, func(*Model) {
			a := w.Auth()
			a.Method = o.ID
			_ = w.SetAuth(a)
		}))
	}

	rows = append(rows, heading("Credentials"))
	rows = append(rows,
		editRow("Client ID", auth.ClientID, func(_ *Model, v string) {
			a := w.Auth()
			a.ClientID = v
			_ = w.SetAuth(a)
		}),
		action("Client Secret: "+maskSecret(auth.ClientSecret), func(m *Model) tea.Cmd {
			return m.startEdit("Client Secret", "", func(_ *Model, v string) {
				a := w.Auth()
				a.ClientSecret = v
				_ = w.SetAuth(a)
			})
		}),
		editRow("Redirect URI", auth.RedirectURI, func(_ *Model, v string) {
			a := w.Auth()
			a.RedirectURI = v
			_ = w.SetAuth(a)
		}),
	)

	if url, err := w.AuthorizeURL(); err == nil {
		rows = append(rows, heading("Consent URL"), text(url))
	}
	return rows
}

func (m Model) handleWizardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	w := m.wizard

	switch msg.String() {
	case "esc":
		w.Close()
		m.closeWizard()
		return m, nil
	case "ctrl+n", "right":
		if w.Step() == hub.LastStep {
			req := w.ConnectAndSave()
			m.closeWizard()
			m.status = fmt.Sprintf("Connection request for %s submitted", req.Tool.Name)
			return m, nil
		}
		if !w.CanAdvance() {
			m.status = "Select a tool to continue"
			return m, nil
		}
		w.Next()
		m.cursor = 0
		m.status = ""
		return m, nil
	case "ctrl+b", "left":
		if w.Step() == hub.FirstStep {
			w.Close()
			m.closeWizard()
			return m, nil
		}
		w.Back()
		m.cursor = 0
		m.status = ""
		return m, nil
	}

	next, cmd, _ := m.handleRowKeys(msg, m.wizardRows())
	return next, cmd
}

func (m *Model) closeWizard() {
	m.wizard = nil
	m.viewMode = ViewMain
	m.cursor = 0
	m.status = ""
}

func maskSecret(s string) string {
	if s == "" {
		return "(empty)"
	}
	return strings.Repeat("•", len(s))
}
