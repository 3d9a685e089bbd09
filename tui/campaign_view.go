// ABOUTME: TUI view for the campaign setup workflow
// ABOUTME: Renders the stage strip, step tabs, autosave status and the mounted panel
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/drylogics/marketingos/campaign"
	"github.com/drylogics/marketingos/models"
)

var (
	stageActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39"))

	stageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	autosaveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true).
			PaddingLeft(2)
)

func (m Model) renderCampaignView() string {
	var s strings.Builder

	s.WriteString(m.renderMenu())
	s.WriteString("\n\n")

	s.WriteString(m.renderStages())
	s.WriteString("\n\n")

	s.WriteString(m.renderStepTabs())
	s.WriteString("\n\n")

	s.WriteString(m.renderPanel())

	s.WriteString(m.renderEditor())
	if m.status != "" {
		s.WriteString("\n")
		s.WriteString(okStyle.Render(m.status))
	}
	s.WriteString("\n")

	s.WriteString(m.renderCampaignHelp())

	return s.String()
}

// renderMenu is the workspace sidebar, laid out as a top bar.
func (m Model) renderMenu() string {
	rendered := []string{titleStyle.UnsetMarginBottom().Render("MARKETING OS")}
	for _, item := range models.WorkspaceMenu {
		label := fmt.Sprintf("%s %s", strings.ToUpper(item.Key), item.Label)
		if item.Route == m.route {
			rendered = append(rendered, tabActiveStyle.Render(label))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderStages() string {
	var parts []string
	for i, stage := range m.shell.Stages() {
		if i == m.shell.StageIndex() {
			parts = append(parts, stageActiveStyle.Render("● "+stage))
		} else {
			parts = append(parts, stageStyle.Render("○ "+stage))
		}
	}
	return strings.Join(parts, stageStyle.Render(" › "))
}

func (m Model) renderStepTabs() string {
	active := campaign.Dispatch(m.shell.ActiveTab())
	var rendered []string
	for i, tab := range m.shell.Tabs() {
		if campaign.PanelID(i) == active {
			rendered = append(rendered, tabActiveStyle.Render(tab))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(tab))
		}
	}
	rendered = append(rendered, autosaveStyle.Render(m.shell.Autosave().Status()))
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderPanel() string {
	var s strings.Builder

	switch p := m.shell.Current().(type) {
	case *campaign.ToolSync:
		s.WriteString(m.renderImportProgress(p))
		s.WriteString("\n\n")
	case *campaign.Confirmation:
		s.WriteString(renderMarkdown(p.Markdown(), m.width))
		s.WriteString("\n\n")
	}

	s.WriteString(renderRows(m.panelRows(), m.cursor))
	return s.String()
}

func (m Model) renderImportProgress(t *campaign.ToolSync) string {
	filled, total := t.Progress()
	pct := 0.0
	if total > 0 {
		pct = float64(filled) / float64(total)
	}
	label := fmt.Sprintf(" %d of %d fields mapped", filled, total)

	var state string
	switch t.Status() {
	case campaign.SyncSyncing:
		state = warnStyle.Render("⟳ Syncing...")
	case campaign.SyncCompleted:
		state = okStyle.Render("✓ Sync complete")
	default:
		state = mutedStyle.Render("Not connected")
	}
	return m.progress.ViewAs(pct) + mutedStyle.Render(label) + "\n" + state
}

func (m Model) renderCampaignHelp() string {
	help := []string{
		"↑/↓: Move",
		"Enter: Select",
		"Tab/Shift+Tab: Step",
		"Ctrl+N: Next",
		"Ctrl+B: Back",
		"F2: Connection Hub",
		"Ctrl+C: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleCampaignKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	active := int(campaign.Dispatch(m.shell.ActiveTab()))

	switch msg.String() {
	case "tab":
		m.setStep((active + 1) % campaign.PanelCount)
		return m, nil
	case "shift+tab":
		m.setStep((active + campaign.PanelCount - 1) % campaign.PanelCount)
		return m, nil
	case "1", "2", "3", "4", "5":
		m.setStep(int(msg.String()[0] - '1'))
		return m, nil
	case "ctrl+n":
		if next := m.shell.Nav(campaign.PanelID(active)).Next; next != nil {
			next()
			m.resetCursor()
		}
		return m, nil
	case "ctrl+b":
		m.shell.Nav(campaign.PanelID(active)).Backward()
		m.resetCursor()
		return m, nil
	}

	next, cmd, _ := m.handleRowKeys(msg, m.panelRows())
	return next, cmd
}

func (m *Model) setStep(i int) {
	m.shell.SetActiveTab(i)
	m.resetCursor()
}

func (m *Model) resetCursor() {
	m.cursor = 0
	m.status = ""
}
