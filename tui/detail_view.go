package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/drylogics/marketingos/hub"
	"github.com/drylogics/marketingos/models"
)

var actionLabels = map[hub.Action]string{
	hub.ActionRefreshSync:    "Refresh Sync",
	hub.ActionReauthenticate: "Re-authenticate",
	hub.ActionTestConnection: "Test Connection",
	hub.ActionDisconnect:     "Disconnect",
}

func (m Model) renderDetail() string {
	it, ok := m.directory.Selected()
	if !ok {
		return mutedStyle.Render("Select an integration")
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render(fmt.Sprintf("%s %s", it.Category.Icon(), it.Name)))
	s.WriteString("  ")
	s.WriteString(it.Status.Badge())
	s.WriteString("\n")

	var tabs []string
	for _, t := range hub.Tabs {
		if t == m.detail.Tab() {
			tabs = append(tabs, tabActiveStyle.Render(t.Title()))
		} else {
			tabs = append(tabs, tabInactiveStyle.Render(t.Title()))
		}
	}
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	s.WriteString("\n\n")

	switch m.detail.Tab() {
	case hub.TabOverview:
		s.WriteString(renderOverview(it))
		s.WriteString("\n")
	case hub.TabSyncLogs:
		s.WriteString(m.renderSyncLogs(it))
		s.WriteString("\n\n")
	}

	cursor := -1
	if m.hubFocus == focusDetail {
		cursor = m.cursor
	}
	rows := m.detailRows()
	if cursor < 0 {
		// Without focus no row is highlighted.
		for i := range rows {
			rows[i].onSelect = nil
		}
		cursor = 0
	}
	s.WriteString(renderRows(rows, cursor))
	return s.String()
}

func renderOverview(it models.Integration) string {
	lines := []string{
		fmt.Sprintf("Connected as: %s", orDash(it.ConnectedAs)),
		fmt.Sprintf("Last sync:    %s", orDash(it.LastSync)),
		fmt.Sprintf("Latency:      %s", orDash(it.Latency)),
		fmt.Sprintf("Throughput:   %s", orDash(it.Throughput)),
		fmt.Sprintf("Errors:       %s", orDash(it.Errors)),
		"",
		fmt.Sprintf("📊 Used in %d campaigns", it.Dashboard.Campaigns),
	}
	if it.Dashboard.Description != "" {
		lines = append(lines, mutedStyle.Render(it.Dashboard.Description))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderSyncLogs(it models.Integration) string {
	if len(it.Logs) == 0 {
		return mutedStyle.Render("No sync activity yet")
	}

	columns := []table.Column{
		{Title: "Time", Width: 9},
		{Title: "Direction", Width: 9},
		{Title: "Action", Width: 24},
		{Title: "Volume", Width: 7},
		{Title: "Outcome", Width: 8},
	}

	var rows []table.Row
	for _, l := range it.Logs {
		rows = append(rows, table.Row{l.Timestamp, l.Direction, l.Action, l.Volume, l.Outcome})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
	)
	return t.View()
}

// detailRows is the selectable part of the active detail tab.
func (m Model) detailRows() []row {
	it, ok := m.directory.Selected()
	if !ok {
		return nil
	}

	switch m.detail.Tab() {
	case hub.TabOverview:
		rows := []row{heading("Quick Actions")}
		for _, a := range hub.Actions {
			rows = append(rows, action(actionLabels[a], func(m *Model) tea.Cmd {
				m.detail.Trigger(a, it)
				m.status = fmt.Sprintf("%s requested for %s", actionLabels[a], it.Name)
				return nil
			}))
		}
		return rows
	case hub.TabSyncLogs:
		return []row{action("📥 Export CSV", func(m *Model) tea.Cmd {
			m.exportLogs()
			return nil
		})}
	case hub.TabSettings:
		return m.settingsRows()
	}
	return nil
}

func (m Model) settingsRows() []row {
	draft := m.settings
	if draft == nil {
		return nil
	}
	settings := draft.Settings()

	rows := []row{heading("Sync Direction")}
	for _, v := range []string{models.SyncOneWay, models.SyncBidirectional} {
		rows = append(rows, radio(v, settings.SyncDirection == v, func(*Model) { _ = draft.SetSyncDirection(v) }))
	}

	rows = append(rows, heading("Conflict Resolution"))
	rows = append(rows,
		radio("Last updated wins", settings.ConflictResolution == models.ConflictLastUpdated, func(*Model) {
			_ = draft.SetConflictResolution(models.ConflictLastUpdated)
		}),
		radio("Source of truth wins", settings.ConflictResolution == models.ConflictSourceOfTruth, func(*Model) {
			_ = draft.SetConflictResolution(models.ConflictSourceOfTruth)
		}),
	)

	rows = append(rows, heading("Alerts"))
	rows = append(rows,
		toggle("Sync latency", settings.Alerts.SyncLatency, func(*Model) { _ = draft.ToggleAlert(hub.AlertSyncLatency) }),
		toggle("Auth expiration", settings.Alerts.AuthExpiration, func(*Model) { _ = draft.ToggleAlert(hub.AlertAuthExpiration) }),
		toggle("Data errors", settings.Alerts.DataError, func(*Model) { _ = draft.ToggleAlert(hub.AlertDataError) }),
	)

	rows = append(rows, heading("Field Mapping"))
	for i, fm := range draft.Mappings() {
		rows = append(rows,
			editRow(fmt.Sprintf("Source %d", i+1), fm.Source, func(_ *Model, v string) {
				_ = draft.SetMapping(i, hub.FieldMapping{Source: v, Target: fm.Target})
			}),
			editRow(fmt.Sprintf("Target %d", i+1), fm.Target, func(_ *Model, v string) {
				_ = draft.SetMapping(i, hub.FieldMapping{Source: fm.Source, Target: v})
			}),
		)
	}
	rows = append(rows, action("+ Add mapping", func(*Model) tea.Cmd {
		draft.AddMapping()
		return nil
	}))

	rows = append(rows,
		heading("Actions"),
		action("Save", func(m *Model) tea.Cmd {
			draft.Save()
			m.status = "Settings saved"
			return nil
		}),
		action("Cancel", func(m *Model) tea.Cmd {
			draft.Cancel()
			m.status = "Changes discarded"
			return nil
		}),
	)
	return rows
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
