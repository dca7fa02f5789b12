// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package notify implements the transient notification presenter of the sign-in page.

Behaviour:

  - Every [Stack.Present] call adds a new notification; concurrent notifications
    stack in presentation order instead of replacing each other.
  - A notification is auto-dismissed once its TTL elapses, unless [Stack.Dismiss]
    removed it earlier.
  - Severity drives the visual treatment (icon and colour), see [Severity.Icon].
*/
package notify

import (
	"log/slog"
	"sync"
	"time"

	"k8s.io/utils/clock"

	"github.com/taibuivan/signin/pkg/uuid"
)

// # Severity

// Severity classifies a notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Icon returns the icon name rendered next to the message.
func (s Severity) Icon() string {
	switch s {
	case SeveritySuccess:
		return "check-circle"
	case SeverityError:
		return "exclamation-circle"
	case SeverityWarning:
		return "exclamation-triangle"
	default:
		return "info-circle"
	}
}

// Color returns the background colour token of the severity.
func (s Severity) Color() string {
	switch s {
	case SeveritySuccess:
		return "var(--success)"
	case SeverityError:
		return "var(--error)"
	case SeverityWarning:
		return "#ff9800"
	default:
		return "var(--primary)"
	}
}

// # Notification

// Notification is one visible message.
type Notification struct {
	ID          string    `json:"id"`
	Message     string    `json:"message"`
	Severity    Severity  `json:"severity"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
	PresentedAt time.Time `json:"presented_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type entry struct {
	notification Notification
	timer        clock.Timer
}

// # Stack

// Stack is an in-memory notification presenter. It is safe for concurrent use.
type Stack struct {
	mu      sync.Mutex
	entries []*entry
	clock   clock.WithDelayedExecution
	ttl     time.Duration
	logger  *slog.Logger
	closed  bool
}

// NewStack creates a presenter whose notifications live for ttl.
func NewStack(clk clock.WithDelayedExecution, ttl time.Duration, logger *slog.Logger) *Stack {
	if clk == nil {
		clk = clock.RealClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Stack{clock: clk, ttl: ttl, logger: logger}
}

// Present shows message with the given severity and returns its identifier.
func (s *Stack) Present(message string, severity Severity) string {
	now := s.clock.Now()
	notification := Notification{
		ID:          uuid.New(),
		Message:     message,
		Severity:    severity,
		Icon:        severity.Icon(),
		Color:       severity.Color(),
		PresentedAt: now,
		ExpiresAt:   now.Add(s.ttl),
	}

	item := &entry{notification: notification}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return notification.ID
	}
	s.entries = append(s.entries, item)
	s.mu.Unlock()

	// Scheduled outside s.mu: fake clocks run callbacks while holding their own lock.
	timer := s.clock.AfterFunc(s.ttl, func() {
		s.expire(notification.ID)
	})

	s.mu.Lock()
	stillVisible := s.indexOf(notification.ID) >= 0
	if stillVisible {
		item.timer = timer
	}
	s.mu.Unlock()

	if !stillVisible {
		timer.Stop()
	}

	s.logger.Debug("notification_presented",
		slog.String("id", notification.ID),
		slog.String("severity", string(severity)),
	)

	return notification.ID
}

// Dismiss removes a notification before its TTL. It reports whether it was visible.
func (s *Stack) Dismiss(id string) bool {
	s.mu.Lock()
	item := s.remove(id)
	s.mu.Unlock()

	if item == nil {
		return false
	}

	if item.timer != nil {
		item.timer.Stop()
	}
	return true
}

// Active returns the visible notifications, oldest first.
func (s *Stack) Active() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]Notification, 0, len(s.entries))
	for _, item := range s.entries {
		active = append(active, item.notification)
	}
	return active
}

// Close stops all pending timers and drops every notification.
func (s *Stack) Close() {
	s.mu.Lock()
	entries := s.entries
	s.entries = nil
	s.closed = true
	s.mu.Unlock()

	for _, item := range entries {
		if item.timer != nil {
			item.timer.Stop()
		}
	}
}

// expire is the auto-dismiss path.
func (s *Stack) expire(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.remove(id) != nil {
		s.logger.Debug("notification_expired", slog.String("id", id))
	}
}

// remove unlinks the entry with id. Callers hold s.mu.
func (s *Stack) remove(id string) *entry {
	index := s.indexOf(id)
	if index < 0 {
		return nil
	}

	item := s.entries[index]
	s.entries = append(s.entries[:index], s.entries[index+1:]...)
	return item
}

// indexOf locates id in the stack. Callers hold s.mu.
func (s *Stack) indexOf(id string) int {
	for index, item := range s.entries {
		if item.notification.ID == id {
			return index
		}
	}
	return -1
}
