package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// --- LIST ITEMS ---

type nodeItem struct {
	node Node
}

// Implement list.Item interface for nodeItem.
func (i nodeItem) Title() string {
	name := i.node.Hostname
	if name == "" {
		name = i.node.ID
	}
	return fmt.Sprintf("🖥️ %s", name)
}

func (i nodeItem) Description() string {
	parts := []string{i.node.Addr}
	keys := make([]string, 0, len(i.node.Labels))
	for k := range i.node.Labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, i.node.Labels[k]))
	}
	return detailValStyle.Render(strings.Join(parts, " • "))
}

func (i nodeItem) FilterValue() string { return i.node.Hostname }

type sessionItem struct {
	session Session
}

func (i sessionItem) Title() string {
	return fmt.Sprintf("💻 %s@%s", i.session.Login, sessionServer(i.session))
}

func (i sessionItem) Description() string {
	parties := "no parties"
	if len(i.session.Parties) > 0 {
		parties = strings.Join(i.session.Parties, ", ")
	}
	return successStyle.Render(fmt.Sprintf("%d active • %s", len(i.session.Parties), parties))
}

func (i sessionItem) FilterValue() string {
	return i.session.Login + " " + sessionServer(i.session)
}

func sessionServer(s Session) string {
	if s.ServerHostname != "" {
		return s.ServerHostname
	}
	return s.ServerID
}

// --- PAGES ---

type joinSessionMsg struct {
	session Session
}

type pageKeyMap struct {
	Copy key.Binding
	Join key.Binding
}

var pageKeys = pageKeyMap{
	Copy: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy ssh command")),
	Join: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open session")),
}

// listPage is a routed page showing one kind of cluster resource.
type listPage struct {
	route string
	list  list.Model
}

func newListPage(route, title string) listPage {
	delegate := list.NewDefaultDelegate()
	selectedStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(accentPurple).
		Foreground(accentPurple).
		Padding(0, 0, 0, 1)

	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = selectedStyle.Foreground(lipgloss.Color("250")).Faint(true)

	l := list.New(nil, delegate, 0, 0)
	l.Title = title
	l.Styles.Title = titleStyle
	l.SetShowHelp(false)
	return listPage{route: route, list: l}
}

func newNodesPage() listPage    { return newListPage(routes.Nodes, "Nodes") }
func newSessionsPage() listPage { return newListPage(routes.Sessions, "Active Sessions") }

func (p listPage) SetSize(width, height int) listPage {
	p.list.SetSize(width, height)
	return p
}

func (p listPage) SetNodes(nodes []Node) (listPage, tea.Cmd) {
	items := make([]list.Item, len(nodes))
	for i, n := range nodes {
		items[i] = nodeItem{node: n}
	}
	return p, p.list.SetItems(items)
}

func (p listPage) SetSessions(sessions []Session) (listPage, tea.Cmd) {
	items := make([]list.Item, len(sessions))
	for i, s := range sessions {
		items[i] = sessionItem{session: s}
	}
	return p, p.list.SetItems(items)
}

// Filtering reports whether keystrokes belong to the filter input.
func (p listPage) Filtering() bool {
	return p.list.FilterState() == list.Filtering
}

func (p listPage) Update(msg tea.Msg) (listPage, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !p.Filtering() {
		switch selected := p.list.SelectedItem().(type) {
		case nodeItem:
			if key.Matches(keyMsg, pageKeys.Copy) {
				return p, copyToClipboardCmd(sshCommand(selected.node))
			}
		case sessionItem:
			if key.Matches(keyMsg, pageKeys.Join) {
				session := selected.session
				return p, func() tea.Msg { return joinSessionMsg{session: session} }
			}
		}
	}

	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return p, cmd
}

func (p listPage) View() string {
	return p.list.View()
}

func (p listPage) helpText() string {
	switch p.route {
	case routes.Nodes:
		return "↑/↓: navigate • /: filter • c: copy ssh command"
	case routes.Sessions:
		return "↑/↓: navigate • /: filter • enter: open session"
	}
	return ""
}
