// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Routes between campaign setup, the connection hub and the login screens
package tui

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/drylogics/marketingos/auth"
	"github.com/drylogics/marketingos/campaign"
	"github.com/drylogics/marketingos/hub"
	"github.com/drylogics/marketingos/models"
	"github.com/drylogics/marketingos/seed"
	"github.com/jonboulle/clockwork"
)

// ViewMode represents the current hub overlay.
type ViewMode int

const (
	ViewMain ViewMode = iota
	ViewWizard
	ViewGraph
)

// hubFocus is the console pane receiving keys.
type hubFocus int

const (
	focusList hubFocus = iota
	focusDetail
)

// Options configure the program.
type Options struct {
	Variant       models.Variant
	Data          *seed.Data
	Clock         clockwork.Clock
	Delays        campaign.Delays
	RedirectDelay time.Duration
	Authenticator auth.Authenticator
	Logger        *log.Logger
}

// refreshMsg asks for a redraw after a component changed off the event loop.
type refreshMsg struct{}

// navigateMsg moves the router to another route.
type navigateMsg struct {
	Route models.Route
}

// Notifier forwards component callbacks into the running program.
// Until Bind is called the messages are dropped.
type Notifier struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func (n *Notifier) Bind(p *tea.Program) {
	n.mu.Lock()
	defer n.mu.Unlock()
	// Components call back from inside Update, where a blocking Send would deadlock.
	n.send = func(msg tea.Msg) { go p.Send(msg) }
}

func (n *Notifier) Send(msg tea.Msg) {
	n.mu.Lock()
	send := n.send
	n.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

// Changed is the OnChange callback handed to every component.
func (n *Notifier) Changed() {
	n.Send(refreshMsg{})
}

// Navigate is the route callback handed to the login screens.
func (n *Notifier) Navigate(r models.Route) {
	n.Send(navigateMsg{Route: r})
}

// Model is the main bubbletea model
type Model struct {
	opts     Options
	notifier *Notifier
	route    models.Route
	viewMode ViewMode
	cursor   int
	edit     editor
	status   string

	// Campaign setup
	shell    *campaign.Shell
	progress progress.Model

	// Connection hub
	directory *hub.Directory
	detail    *hub.Detail
	settings  *hub.SettingsDraft
	wizard    *hub.AddWizard
	graphDOT  string
	hubFocus  hubFocus

	// Login and dashboard
	login      *auth.LoginForm
	dashboard  *auth.Dashboard
	loginForm  loginInputs
	loginFocus int

	// UI state
	width  int
	height int
}

// NewModel creates a new TUI model. The returned notifier must be bound
// to the program running the model.
func NewModel(opts Options) (Model, *Notifier) {
	if opts.Data == nil {
		opts.Data = seed.MustLoad()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Variant == "" {
		opts.Variant = models.VariantWorkspace
	}

	n := &Notifier{}
	m := Model{
		opts:     opts,
		notifier: n,
		route:    opts.Variant.Home(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		width:    100,
		height:   30,
	}

	m.mount(m.route)
	return m, n
}

// Close stops every pending task owned by the model.
func (m Model) Close() {
	if m.shell != nil {
		m.shell.Close()
	}
	if m.login != nil {
		m.login.Stop()
	}
}

// mount builds fresh state for a route. Nothing carries over from an
// earlier visit.
func (m *Model) mount(r models.Route) {
	switch r {
	case models.RouteCampaign:
		m.shell = campaign.NewShell(m.opts.Data, campaign.Options{
			Clock:    m.opts.Clock,
			Delays:   m.opts.Delays,
			Logger:   m.opts.Logger,
			OnChange: m.notifier.Changed,
		})
	case models.RouteHub:
		m.directory = hub.NewDirectory(m.opts.Data.Hub, m.opts.Logger)
		m.detail = hub.NewDetail(m.opts.Logger)
		m.settings = nil
		m.syncSettingsDraft()
	case models.RouteLogin:
		m.mountLogin()
	case models.RouteDashboard:
		m.dashboard = auth.NewDashboard(m.notifier.Navigate)
	}
}

// unmount cancels the pending work of the route being left and drops its state.
func (m *Model) unmount(r models.Route) {
	switch r {
	case models.RouteCampaign:
		if m.shell != nil {
			m.shell.Close()
		}
		m.shell = nil
	case models.RouteHub:
		m.directory = nil
		m.detail = nil
		m.settings = nil
		m.wizard = nil
		m.graphDOT = ""
	case models.RouteLogin:
		if m.login != nil {
			m.login.Stop()
		}
		m.login = nil
	case models.RouteDashboard:
		m.dashboard = nil
	}
}

func (m Model) Route() models.Route {
	return m.route
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case refreshMsg:
		return m, nil
	case navigateMsg:
		m.navigate(msg.Route)
		return m, nil
	}
	if m.edit.active {
		var cmd tea.Cmd
		m.edit.input, cmd = m.edit.input.Update(msg)
		return m, cmd
	}
	if m.route == models.RouteLogin {
		return m.updateLoginInputs(msg)
	}
	return m, nil
}

func (m Model) View() string {
	switch m.route {
	case models.RouteCampaign:
		return m.renderCampaignView()
	case models.RouteHub:
		switch m.viewMode {
		case ViewWizard:
			return m.renderWizardView()
		case ViewGraph:
			return m.renderGraphView()
		}
		return m.renderHubView()
	case models.RouteLogin:
		return m.renderLoginView()
	case models.RouteDashboard:
		return m.renderDashboardView()
	}
	return ""
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.Close()
		return m, tea.Quit
	}
	if m.edit.active {
		return m.handleEditKeys(msg)
	}

	switch msg.String() {
	case "f1", "f2":
		if m.opts.Variant == models.VariantWorkspace {
			for _, item := range models.WorkspaceMenu {
				if item.Key == msg.String() {
					m.navigate(item.Route)
				}
			}
			return m, nil
		}
	}

	// Delegate to view-specific handlers
	switch m.route {
	case models.RouteCampaign:
		return m.handleCampaignKeys(msg)
	case models.RouteHub:
		switch m.viewMode {
		case ViewWizard:
			return m.handleWizardKeys(msg)
		case ViewGraph:
			return m.handleGraphKeys(msg)
		}
		return m.handleHubKeys(msg)
	case models.RouteLogin:
		return m.handleLoginKeys(msg)
	case models.RouteDashboard:
		return m.handleDashboardKeys(msg)
	}

	return m, nil
}

// navigate switches routes, ignoring routes outside the variant.
func (m *Model) navigate(r models.Route) {
	if !m.opts.Variant.Allows(r) || r == m.route {
		return
	}
	m.opts.Logger.Debug("navigate", "from", m.route, "to", r)
	m.cursor = 0
	m.viewMode = ViewMain
	m.hubFocus = focusList
	m.status = ""
	m.edit = editor{}

	m.unmount(m.route)
	m.route = r
	m.mount(r)
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Underline(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255")).
			Bold(true)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)
)
