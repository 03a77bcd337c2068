package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type navigateMsg struct {
	route string
}

type navKeyMap struct {
	Next key.Binding
	Prev key.Binding
}

var navKeys = navKeyMap{
	Next: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next page")),
	Prev: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev page")),
}

// NavBar is the left navigation bar.
type NavBar struct {
	items  []MenuItem
	active int
}

func NewNavBar(items []MenuItem) NavBar {
	return NavBar{items: items}
}

func (n NavBar) Items() []MenuItem { return n.items }

// ActiveRoute is the destination of the highlighted entry.
func (n NavBar) ActiveRoute() string {
	if len(n.items) == 0 {
		return ""
	}
	return n.items[n.active].To
}

// SetActive highlights the entry for route, if there is one.
func (n NavBar) SetActive(route string) NavBar {
	for i, item := range n.items {
		if item.To == route {
			n.active = i
		}
	}
	return n
}

func (n NavBar) Update(msg tea.Msg) (NavBar, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(n.items) == 0 {
		return n, nil
	}
	switch {
	case key.Matches(keyMsg, navKeys.Next):
		n.active = (n.active + 1) % len(n.items)
	case key.Matches(keyMsg, navKeys.Prev):
		n.active = (n.active - 1 + len(n.items)) % len(n.items)
	default:
		return n, nil
	}
	route := n.ActiveRoute()
	return n, func() tea.Msg { return navigateMsg{route: route} }
}

func (n NavBar) View() string {
	rows := make([]string, 0, len(n.items))
	for i, item := range n.items {
		label := fmt.Sprintf("%s %s", item.Icon, item.Title)
		if i == n.active {
			rows = append(rows, navActiveStyle.Render(label))
		} else {
			rows = append(rows, navItemStyle.Render(label))
		}
	}
	return navStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
