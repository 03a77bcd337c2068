package main

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gravitational/trace"
	log "github.com/sirupsen/logrus"
)

var shellLog = log.WithFields(log.Fields{trace.Component: "shell"})

// shellView is what the shell shows for one InitAttempt snapshot. Exactly one
// of processingView, failedView, successView or unknownView.
type shellView interface {
	shellView()
}

type processingView struct{}

type failedView struct {
	message string
}

type successView struct {
	session  string
	children string
}

// unknownView covers an attempt that is neither processing, failed nor
// successful, e.g. before init was ever started.
type unknownView struct{}

func (processingView) shellView() {}
func (failedView) shellView()     {}
func (successView) shellView()    {}
func (unknownView) shellView()    {}

func resolveShellView(attempt InitAttempt, session, children string) shellView {
	switch {
	case attempt.IsProcessing():
		return processingView{}
	case attempt.IsFailed():
		return failedView{message: attempt.Message}
	case attempt.IsSuccess():
		return successView{session: session, children: children}
	default:
		return unknownView{}
	}
}

// AppShell is the top-level chrome of the console. Rendering is a function of
// the InitAttempt passed in; the shell itself only owns its chrome widgets.
type AppShell struct {
	indicator spinner.Model
	poller    Poller
	notes     NotificationHost
	nav       NavBar
}

func NewAppShell(poller Poller, notes NotificationHost, nav NavBar) AppShell {
	s := spinner.New(spinner.WithSpinner(spinner.Points), spinner.WithStyle(indicatorStyle))
	return AppShell{indicator: s, poller: poller, notes: notes, nav: nav}
}

func (s AppShell) Init() tea.Cmd {
	return s.indicator.Tick
}

// Sync mounts the poller when attempt is successful and unmounts it
// otherwise.
func (s AppShell) Sync(attempt InitAttempt) (AppShell, tea.Cmd) {
	switch {
	case attempt.IsSuccess() && !s.poller.Running():
		shellLog.Debug("Mounting poller.")
		var cmd tea.Cmd
		s.poller, cmd = s.poller.Start()
		return s, cmd
	case !attempt.IsSuccess() && s.poller.Running():
		shellLog.Debug("Unmounting poller.")
		s.poller = s.poller.Stop()
	}
	return s, nil
}

// Unmount stops everything the success view started.
func (s AppShell) Unmount() AppShell {
	if s.poller.Running() {
		s.poller = s.poller.Stop()
	}
	return s
}

func (s AppShell) Update(msg tea.Msg) (AppShell, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.(type) {
	case spinner.TickMsg:
		s.indicator, cmd = s.indicator.Update(msg)
		return s, cmd
	case pollTickMsg:
		s.poller, cmd = s.poller.Update(msg)
		return s, cmd
	case notifyMsg, dismissNotificationMsg:
		s.notes, cmd = s.notes.Update(msg)
		return s, cmd
	}

	s.nav, cmd = s.nav.Update(msg)
	return s, cmd
}

func (s AppShell) Render(attempt InitAttempt, session, children string) string {
	switch v := resolveShellView(attempt, session, children).(type) {
	case processingView:
		return s.indicator.View()
	case failedView:
		return renderFailedPage(v.message)
	case successView:
		return s.renderSuccess(v)
	case unknownView:
		return ""
	}
	return ""
}

func (s AppShell) renderSuccess(v successView) string {
	body := []string{}
	if v.session != "" {
		body = append(body, v.session)
	}
	body = append(body, contentStyle.Render(v.children))
	main := lipgloss.JoinHorizontal(lipgloss.Top, s.nav.View(), lipgloss.JoinVertical(lipgloss.Left, body...))

	parts := []string{}
	for _, chrome := range []string{s.poller.View(), s.notes.View()} {
		if chrome != "" {
			parts = append(parts, chrome)
		}
	}
	parts = append(parts, main)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderFailedPage(message string) string {
	return failedPageStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		failedHeaderStyle.Render("🔥 Internal Error"),
		"",
		message,
		"",
		helpStyle.Render("c: copy error • q: quit"),
	))
}
