// ABOUTME: Connection hub console for the TUI
// ABOUTME: Renders the searchable integration directory beside the selected integration's detail
package tui

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/drylogics/marketingos/hub"
	"github.com/drylogics/marketingos/models"
	"github.com/drylogics/marketingos/viz"
)

var (
	healthBarStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	paneFocusedStyle = paneStyle.
				BorderForeground(lipgloss.Color("170"))
)

func (m Model) renderHubView() string {
	var s strings.Builder

	s.WriteString(m.renderMenu())
	s.WriteString("\n\n")

	s.WriteString(m.renderHealthBar())
	s.WriteString("\n\n")

	s.WriteString(m.renderFilters())
	s.WriteString("\n\n")

	list, detail := paneStyle, paneStyle
	if m.hubFocus == focusList {
		list = paneFocusedStyle
	} else {
		detail = paneFocusedStyle
	}
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		list.Render(m.renderDirectory()),
		detail.Render(m.renderDetail()),
	))

	s.WriteString(m.renderEditor())
	if m.status != "" {
		s.WriteString("\n")
		s.WriteString(okStyle.Render(m.status))
	}
	s.WriteString("\n")
	s.WriteString(m.renderHubHelp())

	return s.String()
}

func (m Model) renderHealthBar() string {
	attention := m.directory.NeedingAttention()
	names := make([]string, 0, len(attention))
	for _, it := range attention {
		names = append(names, it.Name)
	}
	line := "🤖 " + m.directory.HealthSummary()
	if len(names) > 0 {
		line += "\n" + warnStyle.Render("Needs attention: "+strings.Join(names, ", "))
	}
	return healthBarStyle.Render(line + "\n" + mutedStyle.Render("H: Refresh All"))
}

func (m Model) renderFilters() string {
	query := m.directory.Query()
	if query == "" {
		query = "Search integrations..."
	}
	rendered := []string{mutedStyle.Render("🔍 " + query + "  ")}
	for _, c := range hub.CategoryFilters() {
		label := categoryLabel(c)
		if c == m.directory.Category() {
			rendered = append(rendered, tabActiveStyle.Render(label))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderDirectory() string {
	items := m.directory.Filtered()
	if len(items) == 0 {
		return mutedStyle.Render("No integrations match")
	}

	columns := []table.Column{
		{Title: "Integration", Width: 16},
		{Title: "Category", Width: 12},
		{Title: "Status", Width: 18},
	}

	var rows []table.Row
	cursor := 0
	selected, _ := m.directory.Selected()
	for i, it := range items {
		rows = append(rows, table.Row{
			it.Name,
			categoryLabel(string(it.Category)),
			it.Status.Badge(),
		})
		if it.ID == selected.ID {
			cursor = i
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(m.hubFocus == focusList),
		table.WithHeight(min(len(rows)+1, max(m.height-16, 3))),
	)
	t.SetCursor(cursor)
	return t.View()
}

func (m Model) renderHubHelp() string {
	help := []string{
		"↑/↓: Navigate",
		"Enter/Tab: Switch pane",
		"[/]: Detail tab",
		"/: Search",
		"c: Category",
		"n: Add integration",
		"g: Graph",
		"e: Export logs",
		"F1: Campaign Setup",
		"Ctrl+C: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleHubKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.toggleHubFocus()
		return m, nil
	case "[":
		m.detail.CycleTab(-1)
		m.cursor = 0
		return m, nil
	case "]":
		m.detail.CycleTab(1)
		m.cursor = 0
		return m, nil
	case "/":
		return m, m.startEdit("Search", m.directory.Query(), func(m *Model, v string) {
			m.directory.SetQuery(v)
		})
	case "c":
		m.cycleCategory()
		return m, nil
	case "H":
		m.directory.RefreshAll()
		m.status = "Refresh requested for every connection"
		return m, nil
	case "n":
		m.openWizard()
		return m, nil
	case "g":
		m.openGraph()
		return m, nil
	case "e":
		m.exportLogs()
		return m, nil
	}

	if m.hubFocus == focusDetail {
		if msg.String() == "esc" {
			m.hubFocus = focusList
			return m, nil
		}
		next, cmd, _ := m.handleRowKeys(msg, m.detailRows())
		return next, cmd
	}

	switch msg.String() {
	case "up", "k":
		m.moveSelection(-1)
	case "down", "j":
		m.moveSelection(1)
	case "enter":
		m.toggleHubFocus()
	}
	return m, nil
}

func (m *Model) toggleHubFocus() {
	if m.hubFocus == focusList {
		m.hubFocus = focusDetail
	} else {
		m.hubFocus = focusList
	}
	m.cursor = 0
}

// moveSelection steps the directory selection through the filtered list.
func (m *Model) moveSelection(delta int) {
	items := m.directory.Filtered()
	if len(items) == 0 {
		return
	}
	selected, _ := m.directory.Selected()
	i := slices.IndexFunc(items, func(it models.Integration) bool { return it.ID == selected.ID })
	i = max(0, min(i+delta, len(items)-1))
	_ = m.directory.Select(items[i].ID)
	m.syncSettingsDraft()
}

func (m *Model) cycleCategory() {
	filters := hub.CategoryFilters()
	i := slices.Index(filters, m.directory.Category())
	// The selection is kept even when the filter hides it.
	m.directory.SetCategory(filters[(i+1)%len(filters)])
}

// syncSettingsDraft reopens the settings draft when the selection moved
// to another integration.
func (m *Model) syncSettingsDraft() {
	it, ok := m.directory.Selected()
	if !ok {
		m.settings = nil
		return
	}
	if m.settings == nil || m.settings.IntegrationID() != it.ID {
		m.settings = hub.NewSettingsDraft(it, m.opts.Logger)
	}
}

func (m *Model) openWizard() {
	m.wizard = hub.NewAddWizard(m.opts.Data.Wizard, m.opts.Logger)
	m.viewMode = ViewWizard
	m.cursor = 0
	m.status = ""
}

func (m *Model) openGraph() {
	gen := viz.NewGraphGenerator(m.directory.All())
	dot, err := gen.GenerateIntegrationGraph(context.Background(), m.directory.Category())
	if err != nil {
		m.status = fmt.Sprintf("Failed to generate graph: %v", err)
		return
	}
	m.graphDOT = dot
	m.viewMode = ViewGraph
}

// exportLogs writes the selected integration's sync log under the state dir.
func (m *Model) exportLogs() {
	it, ok := m.directory.Selected()
	if !ok {
		return
	}
	path, err := xdg.StateFile(fmt.Sprintf("marketingos/%s-sync-logs.csv", it.ID))
	if err != nil {
		m.status = fmt.Sprintf("Failed to export logs: %v", err)
		return
	}
	f, err := os.Create(path)
	if err != nil {
		m.status = fmt.Sprintf("Failed to export logs: %v", err)
		return
	}
	defer f.Close()
	if err := hub.ExportLogs(f, it); err != nil {
		m.status = err.Error()
		return
	}
	m.status = "Logs exported to " + path
}

func categoryLabel(c string) string {
	if c == hub.CategoryAll {
		return "All"
	}
	return models.Category(c).Label()
}
