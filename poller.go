package main

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
)

// defaultPollInterval matches the console's refresh period.
const defaultPollInterval = 4 * time.Second

var lastPollerID int64

func nextPollerID() int {
	return int(atomic.AddInt64(&lastPollerID, 1))
}

// pollTickMsg is produced each time a poller's timer fires.
type pollTickMsg struct {
	id  int
	tag int
	at  time.Time
}

// Poller calls onFetch once per interval while it is running. It renders
// nothing.
type Poller struct {
	id       int
	tag      int
	running  bool
	interval time.Duration
	clock    clockwork.Clock
	onFetch  func() tea.Cmd
}

func NewPoller(clock clockwork.Clock, interval time.Duration, onFetch func() tea.Cmd) Poller {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return Poller{
		id:       nextPollerID(),
		interval: interval,
		clock:    clock,
		onFetch:  onFetch,
	}
}

func (p Poller) Running() bool { return p.running }

// Start arms the timer. Ticks armed by an earlier Start are discarded.
func (p Poller) Start() (Poller, tea.Cmd) {
	p.tag++
	p.running = true
	return p, p.tick()
}

// Stop cancels the timer; a tick already in flight is dropped on arrival.
func (p Poller) Stop() Poller {
	p.tag++
	p.running = false
	return p
}

func (p Poller) Update(msg tea.Msg) (Poller, tea.Cmd) {
	tick, ok := msg.(pollTickMsg)
	if !ok || tick.id != p.id || tick.tag != p.tag || !p.running {
		return p, nil
	}
	var fetch tea.Cmd
	if p.onFetch != nil {
		fetch = p.onFetch()
	}
	if fetch == nil {
		return p, p.tick()
	}
	return p, tea.Batch(fetch, p.tick())
}

func (p Poller) View() string { return "" }

func (p Poller) tick() tea.Cmd {
	id, tag, clock, interval := p.id, p.tag, p.clock, p.interval
	return func() tea.Msg {
		at := <-clock.After(interval)
		return pollTickMsg{id: id, tag: tag, at: at}
	}
}
