package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

var sessionHostKeys = struct {
	Close key.Binding
	Copy  key.Binding
}{
	Close: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close session")),
	Copy:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy join command")),
}

// currentSessionHost shows the session the user opened from the sessions
// page. It is empty when nothing is open.
type currentSessionHost struct {
	session Session
	open    bool
}

func (h currentSessionHost) Open(session Session) currentSessionHost {
	h.session = session
	h.open = true
	return h
}

func (h currentSessionHost) Close() currentSessionHost {
	return currentSessionHost{}
}

func (h currentSessionHost) IsOpen() bool { return h.open }

// Refresh swaps in the latest copy of the open session, closing the host when
// the session has ended.
func (h currentSessionHost) Refresh(store appStore) currentSessionHost {
	if !h.open {
		return h
	}
	session, ok := store.findSession(h.session.ID)
	if !ok {
		return h.Close()
	}
	return h.Open(session)
}

func (h currentSessionHost) Update(msg tea.Msg) (currentSessionHost, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !h.open {
		return h, nil, false
	}
	switch {
	case key.Matches(keyMsg, sessionHostKeys.Close):
		return h.Close(), nil, true
	case key.Matches(keyMsg, sessionHostKeys.Copy):
		return h, copyToClipboardCmd(joinCommand(h.session)), true
	}
	return h, nil, false
}

func (h currentSessionHost) View() string {
	if !h.open {
		return ""
	}
	s := h.session

	var b strings.Builder
	b.WriteString(detailTitleStyle.Render(fmt.Sprintf("Session %s", s.ID)))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s: %s\n", detailAttrStyle.Render("Login"), detailValStyle.Render(s.Login)))
	b.WriteString(fmt.Sprintf("%s: %s\n", detailAttrStyle.Render("Server"), detailValStyle.Render(sessionServer(s))))
	if !s.Created.IsZero() {
		b.WriteString(fmt.Sprintf("%s: %s\n", detailAttrStyle.Render("Started"), detailValStyle.Render(s.Created.Format("2006-01-02 15:04:05"))))
	}
	b.WriteString(fmt.Sprintf("%s: %s\n", detailAttrStyle.Render("Parties"), detailValStyle.Render(strings.Join(s.Parties, ", "))))
	b.WriteString(helpStyle.Render("c: copy join command • esc: close"))

	return detailPaneStyle.Render(b.String())
}
