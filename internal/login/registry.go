// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package login

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"k8s.io/utils/clock"

	"github.com/taibuivan/signin/internal/notify"
)

// Session is one open sign-in page: a controller and its notification stack.
type Session struct {
	ID            string
	Controller    *Controller
	Notifications *notify.Stack

	lastSeen time.Time
}

// close releases the timers owned by the session.
func (session *Session) close() {
	session.Controller.Close()
	session.Notifications.Close()
}

// SessionRegistry keeps page sessions in memory and evicts idle ones.
type SessionRegistry struct {
	clock  clock.WithTicker
	ttl    time.Duration
	logger *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionRegistry creates a registry whose sessions expire after ttl of inactivity.
// A ttl of zero disables eviction.
func NewSessionRegistry(clk clock.WithTicker, ttl time.Duration, logger *slog.Logger) *SessionRegistry {
	if clk == nil {
		clk = clock.RealClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionRegistry{
		clock:    clk,
		ttl:      ttl,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Add stores session under its ID.
func (registry *SessionRegistry) Add(session *Session) {
	now := registry.clock.Now()

	registry.mu.Lock()
	defer registry.mu.Unlock()

	session.lastSeen = now
	registry.sessions[session.ID] = session
}

// Get returns the session with id and refreshes its idle timer.
func (registry *SessionRegistry) Get(id string) (*Session, bool) {
	now := registry.clock.Now()

	registry.mu.Lock()
	defer registry.mu.Unlock()

	session, ok := registry.sessions[id]
	if ok {
		session.lastSeen = now
	}
	return session, ok
}

// Remove closes and forgets the session with id.
func (registry *SessionRegistry) Remove(id string) bool {
	registry.mu.Lock()
	session, ok := registry.sessions[id]
	delete(registry.sessions, id)
	registry.mu.Unlock()

	if ok {
		session.close()
	}
	return ok
}

// Len returns the number of open sessions.
func (registry *SessionRegistry) Len() int {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return len(registry.sessions)
}

// EvictExpired closes every session idle for longer than the TTL.
// Sessions with a submission in flight are kept.
func (registry *SessionRegistry) EvictExpired() int {
	if registry.ttl <= 0 {
		return 0
	}
	now := registry.clock.Now()

	registry.mu.Lock()
	var expired []*Session
	for id, session := range registry.sessions {
		if now.Sub(session.lastSeen) > registry.ttl && session.Controller.State() != StateSubmitting {
			expired = append(expired, session)
			delete(registry.sessions, id)
		}
	}
	registry.mu.Unlock()

	for _, session := range expired {
		session.close()
	}

	if len(expired) > 0 {
		registry.logger.Debug("login_sessions_evicted",
			slog.Int("count", len(expired)),
			slog.Int("remaining", registry.Len()),
		)
	}
	return len(expired)
}

// Run evicts expired sessions every interval until ctx is done, then closes
// every remaining session.
func (registry *SessionRegistry) Run(ctx context.Context, interval time.Duration) {
	ticker := registry.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C():
			registry.EvictExpired()
		case <-ctx.Done():
			registry.closeAll()
			return
		}
	}
}

func (registry *SessionRegistry) closeAll() {
	registry.mu.Lock()
	sessions := registry.sessions
	registry.sessions = make(map[string]*Session)
	registry.mu.Unlock()

	for _, session := range sessions {
		session.close()
	}
}
