package main

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gravitational/trace"
	"golang.org/x/sync/errgroup"
)

// --- BUBBLE TEA MESSAGES ---
// These messages are the results of commands.

// clusterSnapshot is one round of data fetched from the backend.
type clusterSnapshot struct {
	nodes    []Node
	sessions []Session
	at       time.Time
}

type appInitMsg struct {
	snapshot clusterSnapshot
	err      error
}

type refreshMsg struct {
	snapshot clusterSnapshot
	err      error
}

type copiedToClipboardMsg struct {
	text string
	err  error
}

type copyFlashExpiredMsg struct{}

// --- STORE ACTIONS & CLIPBOARD COMMANDS ---

func initAppCmd(backend Backend, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		snapshot, err := fetchSnapshot(backend, timeout)
		return appInitMsg{snapshot: snapshot, err: err}
	}
}

func refreshCmd(backend Backend, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		snapshot, err := fetchSnapshot(backend, timeout)
		return refreshMsg{snapshot: snapshot, err: err}
	}
}

func fetchSnapshot(backend Backend, timeout time.Duration) (clusterSnapshot, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var snapshot clusterSnapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		nodes, err := backend.Nodes(gctx)
		if err != nil {
			return trace.Wrap(err, "fetching nodes")
		}
		snapshot.nodes = nodes
		return nil
	})
	g.Go(func() error {
		sessions, err := backend.Sessions(gctx)
		if err != nil {
			return trace.Wrap(err, "fetching sessions")
		}
		snapshot.sessions = sessions
		return nil
	})
	if err := g.Wait(); err != nil {
		return clusterSnapshot{}, err
	}
	snapshot.at = time.Now()
	return snapshot, nil
}

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

func copyToClipboardCmd(text string) tea.Cmd {
	return func() tea.Msg {
		if err := writeClipboard(text); err != nil {
			return copiedToClipboardMsg{text: text, err: trace.Wrap(err)}
		}
		return copiedToClipboardMsg{text: text}
	}
}

func copyFlashCmd() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return copyFlashExpiredMsg{}
	})
}
