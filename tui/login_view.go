// ABOUTME: Login and dashboard screens for the auth variant of the TUI
// ABOUTME: Mirrors the login form state into text inputs and redirects on success
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/drylogics/marketingos/auth"
	"github.com/drylogics/marketingos/config"
)

// Login form focus order.
const (
	focusEmail = iota
	focusPassword
	focusSubmit
	loginFocusCount
)

type loginInputs struct {
	email    textinput.Model
	password textinput.Model
}

func newLoginInputs() loginInputs {
	email := textinput.New()
	email.Prompt = "Email:    "
	email.Placeholder = "you@example.com"
	email.CharLimit = 120
	email.Width = 36
	email.Focus()

	password := textinput.New()
	password.Prompt = "Password: "
	password.Placeholder = "••••••"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 120
	password.Width = 36

	return loginInputs{email: email, password: password}
}

var (
	loginBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 3).
			Width(56)

	loginBoxDarkStyle = loginBoxStyle.
				BorderForeground(lipgloss.Color("240")).
				Background(lipgloss.Color("234")).
				Foreground(lipgloss.Color("252"))

	fieldErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			PaddingLeft(10)
)

// mountLogin opens a fresh login form. Without a configured authenticator
// the demo account is checked locally.
func (m *Model) mountLogin() {
	if m.login != nil {
		m.login.Stop()
	}
	a := m.opts.Authenticator
	if a == nil {
		a = config.Default().Authenticator(m.opts.Clock)
	}
	m.login = auth.NewLoginForm(a, auth.Options{
		Clock:         m.opts.Clock,
		RedirectDelay: m.opts.RedirectDelay,
		Logger:        m.opts.Logger,
		Navigate:      m.notifier.Navigate,
		OnChange:      m.notifier.Changed,
	})
	m.dashboard = nil
	m.loginForm = newLoginInputs()
	m.loginFocus = focusEmail
}

func (m Model) renderLoginView() string {
	f := m.login

	var s strings.Builder
	s.WriteString(titleStyle.Render("Sign in to Marketing OS"))
	s.WriteString("\n")

	if msg := f.Success(); msg != "" {
		s.WriteString(okStyle.Render("✓ " + msg))
		s.WriteString("\n\n")
	}
	if msg := f.Error(); msg != "" {
		s.WriteString(errorStyle.Render("✗ " + msg))
		s.WriteString("\n\n")
	}

	errs := f.FieldErrors()
	s.WriteString(m.loginForm.email.View())
	s.WriteString("\n")
	if errs.Email != "" {
		s.WriteString(fieldErrorStyle.Render(errs.Email))
		s.WriteString("\n")
	}
	s.WriteString(m.loginForm.password.View())
	s.WriteString("\n")
	if errs.Password != "" {
		s.WriteString(fieldErrorStyle.Render(errs.Password))
		s.WriteString("\n")
	}
	s.WriteString("\n")

	label := "Sign In"
	if f.Loading() {
		label = "Signing in..."
	}
	button := primaryButtonStyle
	if f.Loading() {
		button = disabledButtonStyle
	}
	if m.loginFocus == focusSubmit {
		label = "▶ " + label
	}
	s.WriteString(button.Render(label))

	box := loginBoxStyle
	if f.DarkMode() {
		box = loginBoxDarkStyle
	}

	help := []string{
		"Tab: Next field",
		"Enter: Sign in",
		"Esc: Dismiss",
		"Ctrl+D: Dark mode",
		"Ctrl+C: Quit",
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		box.Render(s.String()),
		helpStyle.Render(strings.Join(help, " • ")),
	)
}

func (m Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.setLoginFocus((m.loginFocus + 1) % loginFocusCount)
		return m, nil
	case "shift+tab", "up":
		m.setLoginFocus((m.loginFocus + loginFocusCount - 1) % loginFocusCount)
		return m, nil
	case "enter":
		m.login.Submit()
		return m, nil
	case "esc":
		m.login.DismissMessages()
		return m, nil
	case "ctrl+d":
		m.login.ToggleDarkMode()
		return m, nil
	}
	return m.updateLoginInputs(msg)
}

// updateLoginInputs feeds msg to the focused input and mirrors the value
// into the form.
func (m Model) updateLoginInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.loginFocus {
	case focusEmail:
		m.loginForm.email, cmd = m.loginForm.email.Update(msg)
		if v := m.loginForm.email.Value(); v != m.login.Credentials().Email {
			m.login.SetEmail(v)
		}
	case focusPassword:
		m.loginForm.password, cmd = m.loginForm.password.Update(msg)
		if v := m.loginForm.password.Value(); v != m.login.Credentials().Password {
			m.login.SetPassword(v)
		}
	}
	return m, cmd
}

func (m *Model) setLoginFocus(i int) {
	m.loginFocus = i
	m.loginForm.email.Blur()
	m.loginForm.password.Blur()
	switch i {
	case focusEmail:
		m.loginForm.email.Focus()
	case focusPassword:
		m.loginForm.password.Focus()
	}
}

func (m Model) renderDashboardView() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render(m.dashboard.Welcome()))
	s.WriteString("\n")
	s.WriteString(mutedStyle.Render("You are signed in."))
	s.WriteString("\n")
	s.WriteString(helpStyle.Render(strings.Join([]string{"l: Log out", "Ctrl+C: Quit"}, " • ")))
	return s.String()
}

func (m Model) handleDashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "l" {
		m.dashboard.Logout()
	}
	return m, nil
}
