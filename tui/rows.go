package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// row is one line of a form-like view. Rows without onSelect are skipped by the cursor.
type row struct {
	label    string
	heading  bool
	box      bool
	checked  bool
	onSelect func(m *Model) tea.Cmd
}

func heading(label string) row {
	return row{label: label, heading: true}
}

// text is a plain, non-selectable line.
func text(label string) row {
	return row{label: label}
}

func action(label string, fn func(m *Model) tea.Cmd) row {
	return row{label: label, onSelect: fn}
}

// toggle renders a checkbox row.
func toggle(label string, checked bool, fn func(m *Model)) row {
	return row{label: label, box: true, checked: checked, onSelect: func(m *Model) tea.Cmd {
		fn(m)
		return nil
	}}
}

// radio renders an exclusive choice row.
func radio(label string, chosen bool, fn func(m *Model)) row {
	mark := "( ) "
	if chosen {
		mark = "(•) "
	}
	return row{label: mark + label, onSelect: func(m *Model) tea.Cmd {
		fn(m)
		return nil
	}}
}

// normalizeCursor moves the cursor onto the nearest selectable row.
func normalizeCursor(rows []row, cursor int) int {
	if len(rows) == 0 {
		return 0
	}
	cursor = max(0, min(cursor, len(rows)-1))
	for i := cursor; i < len(rows); i++ {
		if rows[i].onSelect != nil {
			return i
		}
	}
	for i := cursor; i >= 0; i-- {
		if rows[i].onSelect != nil {
			return i
		}
	}
	return 0
}

func moveCursor(rows []row, cursor, delta int) int {
	cursor = normalizeCursor(rows, cursor)
	for i := cursor + delta; i >= 0 && i < len(rows); i += delta {
		if rows[i].onSelect != nil {
			return i
		}
	}
	return cursor
}

// activate runs the row under the cursor.
func (m Model) activate(rows []row) (tea.Model, tea.Cmd) {
	i := normalizeCursor(rows, m.cursor)
	if i >= len(rows) || rows[i].onSelect == nil {
		return m, nil
	}
	cmd := rows[i].onSelect(&m)
	return m, cmd
}

// handleRowKeys covers cursor movement and activation shared by every form view.
func (m Model) handleRowKeys(msg tea.KeyMsg, rows []row) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "up", "k":
		m.cursor = moveCursor(rows, m.cursor, -1)
	case "down", "j":
		m.cursor = moveCursor(rows, m.cursor, 1)
	case "enter", " ":
		next, cmd := m.activate(rows)
		return next, cmd, true
	default:
		return m, nil, false
	}
	return m, nil, true
}

func renderRows(rows []row, cursor int) string {
	cursor = normalizeCursor(rows, cursor)
	var s strings.Builder
	for i, r := range rows {
		if r.heading {
			if i > 0 {
				s.WriteString("\n")
			}
			s.WriteString(sectionStyle.Render(r.label))
			s.WriteString("\n")
			continue
		}

		line := r.label
		switch {
		case r.box && r.checked:
			line = "[x] " + line
		case r.box:
			line = "[ ] " + line
		}

		if r.onSelect == nil {
			s.WriteString("  ")
			s.WriteString(mutedStyle.Render(line))
		} else if i == cursor {
			s.WriteString("▶ ")
			s.WriteString(selectedStyle.Render(line))
		} else {
			s.WriteString("  ")
			s.WriteString(line)
		}
		s.WriteString("\n")
	}
	return s.String()
}
