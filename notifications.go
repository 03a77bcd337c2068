package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

const (
	defaultNotificationTTL = 5 * time.Second
	maxNotifications       = 3
)

type notification struct {
	id    string
	level notificationLevel
	title string
	text  string
}

type notifyMsg struct {
	level notificationLevel
	title string
	text  string
}

type dismissNotificationMsg struct {
	id string
}

// notify is how any component raises a notification.
func notify(level notificationLevel, title, text string) tea.Cmd {
	return func() tea.Msg {
		return notifyMsg{level: level, title: title, text: text}
	}
}

// NotificationHost shows the latest notifications and expires them after ttl.
type NotificationHost struct {
	items []notification
	ttl   time.Duration
	clock clockwork.Clock
}

func NewNotificationHost(clock clockwork.Clock, ttl time.Duration) NotificationHost {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if ttl <= 0 {
		ttl = defaultNotificationTTL
	}
	return NotificationHost{ttl: ttl, clock: clock}
}

func (h NotificationHost) Len() int { return len(h.items) }

func (h NotificationHost) Update(msg tea.Msg) (NotificationHost, tea.Cmd) {
	switch msg := msg.(type) {
	case notifyMsg:
		n := notification{id: uuid.NewString(), level: msg.level, title: msg.title, text: msg.text}
		items := append(append([]notification(nil), h.items...), n)
		if len(items) > maxNotifications {
			items = items[len(items)-maxNotifications:]
		}
		h.items = items
		return h, h.expire(n.id)

	case dismissNotificationMsg:
		kept := make([]notification, 0, len(h.items))
		for _, n := range h.items {
			if n.id != msg.id {
				kept = append(kept, n)
			}
		}
		h.items = kept
	}
	return h, nil
}

func (h NotificationHost) expire(id string) tea.Cmd {
	clock, ttl := h.clock, h.ttl
	return func() tea.Msg {
		<-clock.After(ttl)
		return dismissNotificationMsg{id: id}
	}
}

func (h NotificationHost) View() string {
	if len(h.items) == 0 {
		return ""
	}
	views := make([]string, 0, len(h.items))
	for _, n := range h.items {
		var b strings.Builder
		b.WriteString(detailAttrStyle.Render(fmt.Sprintf("%s: %s", n.level, n.title)))
		if n.text != "" {
			b.WriteString("\n")
			b.WriteString(n.text)
		}
		views = append(views, notificationBorder(n.level).Render(b.String()))
	}
	return lipgloss.JoinVertical(lipgloss.Right, views...)
}
