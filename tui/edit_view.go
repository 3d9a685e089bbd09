package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// editor is the single-line input opened by text rows.
type editor struct {
	active bool
	input  textinput.Model
	apply  func(m *Model, value string)
}

// startEdit opens the editor prefilled with value. Enter calls apply.
func (m *Model) startEdit(label, value string, apply func(m *Model, value string)) tea.Cmd {
	input := textinput.New()
	input.Prompt = label + ": "
	input.CharLimit = 200
	input.Width = 50
	input.SetValue(value)
	input.Focus()

	m.edit = editor{active: true, input: input, apply: apply}
	return textinput.Blink
}

// editRow is a row that opens the editor on a text value.
func editRow(label, value string, apply func(m *Model, value string)) row {
	shown := value
	if shown == "" {
		shown = "(empty)"
	}
	return action(label+": "+shown, func(m *Model) tea.Cmd {
		return m.startEdit(label, value, apply)
	})
}

func (m Model) renderEditor() string {
	if !m.edit.active {
		return ""
	}
	var s strings.Builder
	s.WriteString("\n")
	s.WriteString(m.edit.input.View())
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("Enter: Save • Esc: Cancel"))
	return s.String()
}

func (m Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		value := m.edit.input.Value()
		apply := m.edit.apply
		m.edit = editor{}
		if apply != nil {
			apply(&m, value)
		}
		return m, nil
	case tea.KeyEsc:
		m.edit = editor{}
		return m, nil
	}

	var cmd tea.Cmd
	m.edit.input, cmd = m.edit.input.Update(msg)
	return m, cmd
}
