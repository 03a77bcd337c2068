package main

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Proxy:           "proxy.example.com:3080",
		PollInterval:    4 * time.Second,
		RequestTimeout:  time.Second,
		NotificationTTL: time.Second,
	}
}

func newTestModel(t *testing.T, backend Backend) (model, clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	m := initialModel(testConfig(), backend, clock)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, clock
}

func update(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(model)
	require.True(t, ok)
	return out
}

func updateCmd(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(model)
	require.True(t, ok)
	return out, cmd
}

// initialized returns a model that finished bootstrapping against backend.
func initialized(t *testing.T, backend *stubBackend) model {
	t.Helper()
	m, _ := newTestModel(t, backend)
	msg := initAppCmd(backend, time.Second)()
	return update(t, m, msg)
}

func withClipboard(t *testing.T, fn func(string) error) {
	t.Helper()
	orig := writeClipboard
	writeClipboard = fn
	t.Cleanup(func() { writeClipboard = orig })
}

func TestConsoleStartsProcessing(t *testing.T) {
	m, _ := newTestModel(t, testCluster())

	assert.True(t, m.store.InitAttempt().IsProcessing())
	assert.NotNil(t, m.Init())
	view := ansi.Strip(m.View())
	assert.NotEmpty(t, view)
	assert.NotContains(t, view, "Nodes")
	assert.False(t, m.shell.poller.Running())
}

func TestConsoleInitSuccessMountsShell(t *testing.T) {
	m, _ := newTestModel(t, testCluster())

	msg := initAppCmd(testCluster(), time.Second)()
	m, cmd := updateCmd(t, m, msg)
	assert.NotNil(t, cmd)
	assert.True(t, m.store.InitAttempt().IsSuccess())
	assert.True(t, m.shell.poller.Running())

	refreshed := "refreshed " + msg.(appInitMsg).snapshot.at.Format("15:04:05")
	view := ansi.Strip(m.View())
	for _, want := range []string{"Nodes", "Sessions", "alpha", "beta", "10.0.0.1:3022", refreshed} {
		assert.Contains(t, view, want)
	}
}

func TestConsoleInitFailureShowsError(t *testing.T) {
	var copied string
	withClipboard(t, func(text string) error {
		copied = text
		return nil
	})

	m, _ := newTestModel(t, testCluster())
	m = update(t, m, appInitMsg{err: assert.AnError})

	require.True(t, m.store.InitAttempt().IsFailed())
	assert.False(t, m.shell.poller.Running())
	view := ansi.Strip(m.View())
	assert.Contains(t, view, assert.AnError.Error())
	assert.NotContains(t, view, "Sessions")

	m, cmd := updateCmd(t, m, runeKey("c"))
	require.NotNil(t, cmd)
	m = update(t, m, cmd())
	assert.Equal(t, assert.AnError.Error(), copied)
	assert.Contains(t, ansi.Strip(m.View()), "Copied!")

	m = update(t, m, copyFlashExpiredMsg{})
	assert.NotContains(t, ansi.Strip(m.View()), "Copied!")
}

func TestConsolePollerRefreshesStore(t *testing.T) {
	backend := testCluster()
	m, clock := newTestModel(t, backend)

	m, mount := updateCmd(t, m, initAppCmd(backend, time.Second)())
	require.NotNil(t, mount)

	backend.nodes = append(backend.nodes, Node{ID: "n3", Hostname: "gamma"})

	// The poller tick is the only cmd waiting on the fake clock.
	tick := runTimer(t, clock, m.shell.poller.tick(), 4*time.Second)
	m, cmd := updateCmd(t, m, tick)
	require.NotNil(t, cmd)

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok, "a tick fetches and re-arms")
	var refreshed bool
	for _, c := range batch {
		if c == nil {
			continue
		}
		// The re-armed tick blocks on the fake clock; only run the fetch.
		done := make(chan tea.Msg, 1)
		go func(c tea.Cmd) { done <- c() }(c)
		select {
		case msg := <-done:
			if r, ok := msg.(refreshMsg); ok {
				m = update(t, m, r)
				refreshed = true
			}
		case <-time.After(200 * time.Millisecond):
		}
	}
	require.True(t, refreshed)
	assert.Len(t, m.store.nodes, 3)
	assert.Contains(t, ansi.Strip(m.View()), "gamma")
}

func TestConsoleRefreshFailureNotifies(t *testing.T) {
	m := initialized(t, testCluster())

	m, cmd := updateCmd(t, m, refreshMsg{err: assert.AnError})
	require.NotNil(t, cmd)
	note, ok := cmd().(notifyMsg)
	require.True(t, ok)
	assert.Equal(t, levelWarning, note.level)
	assert.Len(t, m.store.nodes, 2, "data survives a failed refresh")

	m = update(t, m, note)
	assert.Contains(t, ansi.Strip(m.View()), "Refresh failed")
}

func TestConsoleNavigatesAndOpensSession(t *testing.T) {
	withClipboard(t, func(string) error { return nil })
	m := initialized(t, testCluster())
	require.Equal(t, routes.Nodes, m.route)

	m, cmd := updateCmd(t, m, keyTab)
	require.NotNil(t, cmd)
	m = update(t, m, cmd())
	assert.Equal(t, routes.Sessions, m.route)
	assert.Contains(t, ansi.Strip(m.View()), "root@alpha")

	m, cmd = updateCmd(t, m, keyEnter)
	require.NotNil(t, cmd)
	m = update(t, m, cmd())
	require.True(t, m.session.IsOpen())
	assert.Contains(t, ansi.Strip(m.View()), "Session s1")

	_, cmd = updateCmd(t, m, runeKey("c"))
	require.NotNil(t, cmd)
	assert.Equal(t, copiedToClipboardMsg{text: "tsh join s1"}, cmd())

	m = update(t, m, keyEsc)
	assert.False(t, m.session.IsOpen())
	assert.NotContains(t, ansi.Strip(m.View()), "Session s1")
}

func TestConsoleRefreshClosesEndedSession(t *testing.T) {
	m := initialized(t, testCluster())
	fullHeight := m.nodes.list.Height()

	m = update(t, m, joinSessionMsg{session: testCluster().sessions[0]})
	require.True(t, m.session.IsOpen())
	require.Less(t, m.nodes.list.Height(), fullHeight)

	m = update(t, m, refreshMsg{snapshot: clusterSnapshot{nodes: testCluster().nodes}})
	assert.False(t, m.session.IsOpen())
	assert.Equal(t, fullHeight, m.nodes.list.Height(), "the pane's rows go back to the page")
}

func TestConsoleNotificationsFitTheWindow(t *testing.T) {
	m := initialized(t, testCluster())
	fullHeight := m.nodes.list.Height()
	m = update(t, m, joinSessionMsg{session: testCluster().sessions[0]})

	for i := 0; i < maxNotifications; i++ {
		m = update(t, m, notifyMsg{level: levelWarning, title: "Refresh failed", text: assert.AnError.Error()})
	}
	require.Equal(t, maxNotifications, m.shell.notes.Len())

	view := m.View()
	assert.LessOrEqual(t, lipgloss.Height(view), m.height)
	assert.Equal(t, maxNotifications, strings.Count(ansi.Strip(view), "Refresh failed"))

	for m.shell.notes.Len() > 0 {
		m = update(t, m, dismissNotificationMsg{id: m.shell.notes.items[0].id})
	}
	m = update(t, m, keyEsc)
	assert.Equal(t, fullHeight, m.nodes.list.Height())
}

func TestConsoleFilterOwnsKeysOverSession(t *testing.T) {
	withClipboard(t, func(text string) error {
		t.Errorf("clipboard written while filtering: %q", text)
		return nil
	})
	m := initialized(t, testCluster())
	m = update(t, m, navigateMsg{route: routes.Sessions})
	m = update(t, m, joinSessionMsg{session: testCluster().sessions[0]})
	require.True(t, m.session.IsOpen())

	m = update(t, m, runeKey("/"))
	require.True(t, m.activePage().Filtering())

	m, cmd := updateCmd(t, m, runeKey("c"))
	assert.Equal(t, "c", m.sessions.list.FilterValue())
	for _, msg := range drain(cmd) {
		_, copied := msg.(copiedToClipboardMsg)
		assert.False(t, copied)
	}

	m = update(t, m, keyEsc)
	assert.False(t, m.activePage().Filtering())
	assert.True(t, m.session.IsOpen(), "esc cancels the filter first")
}

// drain runs cmd and any batched cmds, skipping the ones that wait on timers.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(100 * time.Millisecond):
		return nil
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, drain(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func TestConsoleCopySSHCommand(t *testing.T) {
	withClipboard(t, func(string) error { return nil })
	m := initialized(t, testCluster())

	m, cmd := updateCmd(t, m, runeKey("c"))
	require.NotNil(t, cmd)
	copied := cmd()
	assert.Equal(t, copiedToClipboardMsg{text: "tsh ssh alpha"}, copied)

	_, cmd = updateCmd(t, m, copied)
	require.NotNil(t, cmd)
}

func TestConsoleQuitUnmountsShell(t *testing.T) {
	m := initialized(t, testCluster())
	require.True(t, m.shell.poller.Running())

	m, cmd := updateCmd(t, m, runeKey("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.quitting)
	assert.False(t, m.shell.poller.Running())
	assert.Empty(t, m.View())
}

func TestConsoleQuitWhileProcessing(t *testing.T) {
	m, _ := newTestModel(t, testCluster())

	_, cmd := updateCmd(t, m, keyCtrlC)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestConsoleUnknownAttemptRendersNothing(t *testing.T) {
	m, _ := newTestModel(t, testCluster())
	m.store = appStore{}

	assert.Empty(t, m.View())
}
