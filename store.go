package main

import (
	"time"

	"github.com/gravitational/trace"
	log "github.com/sirupsen/logrus"
)

var storeLog = log.WithFields(log.Fields{trace.Component: "store"})

// appStore is the single source of truth for the console. Components read
// snapshots of it and change it only through action results.
type appStore struct {
	attempt     InitAttempt
	nodes       []Node
	sessions    []Session
	refreshedAt time.Time
}

// InitAttempt returns the current bootstrap status snapshot.
func (s appStore) InitAttempt() InitAttempt { return s.attempt }

// RefreshedAt is when the cluster data was last fetched.
func (s appStore) RefreshedAt() time.Time { return s.refreshedAt }

func (s appStore) startInit() appStore {
	s.attempt = processingAttempt()
	return s
}

func (s appStore) applyInit(msg appInitMsg) appStore {
	if msg.err != nil {
		storeLog.WithError(msg.err).Warn("Failed to initialize console.")
		s.attempt = failedAttempt(trace.UserMessage(msg.err))
		return s
	}
	storeLog.Infof("Console initialized with %d nodes and %d sessions.", len(msg.snapshot.nodes), len(msg.snapshot.sessions))
	s.attempt = successAttempt()
	return s.withSnapshot(msg.snapshot)
}

// applyRefresh keeps the previous data when the refresh failed.
func (s appStore) applyRefresh(msg refreshMsg) appStore {
	if msg.err != nil {
		storeLog.WithError(msg.err).Debug("Refresh failed.")
		return s
	}
	return s.withSnapshot(msg.snapshot)
}

func (s appStore) withSnapshot(snapshot clusterSnapshot) appStore {
	s.nodes = snapshot.nodes
	s.sessions = snapshot.sessions
	s.refreshedAt = snapshot.at
	return s
}

func (s appStore) findSession(id string) (Session, bool) {
	for _, session := range s.sessions {
		if session.ID == id {
			return session, true
		}
	}
	return Session{}, false
}
