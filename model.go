package main

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gravitational/trace"
	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
)

var consoleLog = log.WithFields(log.Fields{trace.Component: "console"})

// --- MAIN MODEL ---

// model is the console program. It owns the store and the routed pages and
// hands the shell a fresh InitAttempt snapshot on every render.
type model struct {
	cfg      Config
	backend  Backend
	store    appStore
	shell    AppShell
	route    string
	nodes    listPage
	sessions listPage
	session  currentSessionHost

	width      int
	height     int
	showCopied bool
	quitting   bool
}

func initialModel(cfg Config, backend Backend, clock clockwork.Clock) model {
	refresh := func() tea.Cmd {
		return refreshCmd(backend, cfg.RequestTimeout)
	}
	shell := NewAppShell(
		NewPoller(clock, cfg.PollInterval, refresh),
		NewNotificationHost(clock, cfg.NotificationTTL),
		NewNavBar(menuItems),
	)
	return model{
		cfg:      cfg,
		backend:  backend,
		store:    appStore{}.startInit(),
		shell:    shell,
		route:    routes.Nodes,
		nodes:    newNodesPage(),
		sessions: newSessionsPage(),
	}
}

// --- BUBBLE TEA LOGIC ---
func (m model) Init() tea.Cmd {
	return tea.Batch(m.shell.Init(), initAppCmd(m.backend, m.cfg.RequestTimeout))
}

//nolint:cyclop
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resizePages()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case appInitMsg:
		m.store = m.store.applyInit(msg)
		m.shell, cmd = m.shell.Sync(m.store.InitAttempt())
		cmds = append(cmds, cmd, m.loadPages())
		return m, tea.Batch(cmds...)

	case refreshMsg:
		m.store = m.store.applyRefresh(msg)
		if msg.err != nil {
			return m, notify(levelWarning, "Refresh failed", trace.UserMessage(msg.err))
		}
		m.session = m.session.Refresh(m.store)
		m.resizePages()
		return m, m.loadPages()

	case navigateMsg:
		m.route = msg.route
		m.shell.nav = m.shell.nav.SetActive(msg.route)
		return m, nil

	case joinSessionMsg:
		m.session = m.session.Open(msg.session)
		m.resizePages()
		return m, nil

	case copiedToClipboardMsg:
		if msg.err != nil {
			consoleLog.WithError(msg.err).Warn("Clipboard write failed.")
			return m, notify(levelError, "Copy failed", trace.UserMessage(msg.err))
		}
		m.showCopied = true
		return m, tea.Batch(notify(levelInfo, "Copied to clipboard", msg.text), copyFlashCmd())

	case copyFlashExpiredMsg:
		m.showCopied = false
		return m, nil

	case notifyMsg, dismissNotificationMsg:
		m.shell, cmd = m.shell.Update(msg)
		m.resizePages()
		return m, cmd

	case spinner.TickMsg, pollTickMsg:
		m.shell, cmd = m.shell.Update(msg)
		return m, cmd
	}

	// Everything else belongs to the active page (list filtering, status
	// message timers).
	return m.updateActivePage(msg)
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	attempt := m.store.InitAttempt()
	if !attempt.IsSuccess() {
		switch msg.String() {
		case "q":
			return m.quit()
		case "c":
			if attempt.IsFailed() && attempt.Message != "" {
				return m, copyToClipboardCmd(attempt.Message)
			}
		}
		return m, nil
	}

	// While the filter is open every key belongs to the page.
	if !m.activePage().Filtering() {
		var cmd tea.Cmd
		var handled bool
		if m.session, cmd, handled = m.session.Update(msg); handled {
			m.resizePages()
			return m, cmd
		}
		if msg.String() == "q" {
			return m.quit()
		}
		var navCmd tea.Cmd
		m.shell, navCmd = m.shell.Update(msg)
		if navCmd != nil {
			return m, navCmd
		}
	}
	return m.updateActivePage(msg)
}

func (m model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.shell = m.shell.Unmount()
	return m, tea.Quit
}

func (m model) activePage() listPage {
	if m.route == routes.Sessions {
		return m.sessions
	}
	return m.nodes
}

func (m model) updateActivePage(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.route == routes.Sessions {
		m.sessions, cmd = m.sessions.Update(msg)
	} else {
		m.nodes, cmd = m.nodes.Update(msg)
	}
	return m, cmd
}

func (m *model) loadPages() tea.Cmd {
	var nodesCmd, sessionsCmd tea.Cmd
	m.nodes, nodesCmd = m.nodes.SetNodes(m.store.nodes)
	m.sessions, sessionsCmd = m.sessions.SetSessions(m.store.sessions)
	return tea.Batch(nodesCmd, sessionsCmd)
}

func (m *model) resizePages() {
	h, v := docStyle.GetFrameSize()
	width := m.width - h - lipgloss.Width(m.shell.nav.View()) - contentStyle.GetHorizontalFrameSize()
	height := m.height - v - lipgloss.Height(m.shell.notes.View()) - lipgloss.Height(m.session.View()) - 2
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.nodes = m.nodes.SetSize(width, height)
	m.sessions = m.sessions.SetSize(width, height)
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	page := m.activePage()
	help := page.helpText() + " • tab: switch page • q: quit"
	if at := m.store.RefreshedAt(); !at.IsZero() {
		help += " • refreshed " + at.Format("15:04:05")
	}
	children := lipgloss.JoinVertical(lipgloss.Left, page.View(), helpStyle.Render(help))

	out := m.shell.Render(m.store.InitAttempt(), m.session.View(), children)
	if out == "" {
		return ""
	}
	if m.showCopied && m.store.InitAttempt().IsFailed() {
		out = lipgloss.JoinVertical(lipgloss.Left, out, copySuccessStyle.Render("Copied!"))
	}
	return docStyle.Render(out)
}
