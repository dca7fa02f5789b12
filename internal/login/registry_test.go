// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package login_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"

	"github.com/taibuivan/signin/internal/login"
	"github.com/taibuivan/signin/internal/notify"
)

func newSession(t *testing.T, fakeClock *testingclock.FakeClock, id string) *login.Session {
	t.Helper()

	stack := notify.NewStack(fakeClock, 5*time.Second, quietLogger())
	controller, err := login.NewController(login.Dependencies{
		Auth:      instantService(login.FixtureAccounts()),
		Presenter: stack,
		Clock:     fakeClock,
		Logger:    quietLogger(),
	})
	require.NoError(t, err)

	return &login.Session{ID: id, Controller: controller, Notifications: stack}
}

/*
TestSessionRegistry_EvictsIdleSessions drops sessions idle past the TTL, and
Get refreshes the idle timer.
*/
func TestSessionRegistry_EvictsIdleSessions(t *testing.T) {
	fakeClock := testingclock.NewFakeClock(time.Now())
	registry := login.NewSessionRegistry(fakeClock, time.Minute, quietLogger())

	registry.Add(newSession(t, fakeClock, "stale"))
	registry.Add(newSession(t, fakeClock, "active"))

	fakeClock.Step(40 * time.Second)
	_, ok := registry.Get("active")
	require.True(t, ok)

	fakeClock.Step(30 * time.Second)
	assert.Equal(t, 1, registry.EvictExpired())

	_, ok = registry.Get("stale")
	assert.False(t, ok)
	_, ok = registry.Get("active")
	assert.True(t, ok)
	assert.Equal(t, 1, registry.Len())
}

/*
TestSessionRegistry_Remove closes the session's notification stack.
*/
func TestSessionRegistry_Remove(t *testing.T) {
	fakeClock := testingclock.NewFakeClock(time.Now())
	registry := login.NewSessionRegistry(fakeClock, 0, quietLogger())

	session := newSession(t, fakeClock, "s1")
	registry.Add(session)
	session.Notifications.Present("hello", notify.SeverityInfo)

	assert.True(t, registry.Remove("s1"))
	assert.False(t, registry.Remove("s1"))
	assert.Empty(t, session.Notifications.Active())

	// A zero TTL never evicts.
	registry.Add(newSession(t, fakeClock, "s2"))
	fakeClock.Step(24 * time.Hour)
	assert.Zero(t, registry.EvictExpired())
}

/*
TestSessionRegistry_RunStopsWithContext closes every session on shutdown.
*/
func TestSessionRegistry_RunStopsWithContext(t *testing.T) {
	fakeClock := testingclock.NewFakeClock(time.Now())
	registry := login.NewSessionRegistry(fakeClock, time.Minute, quietLogger())
	registry.Add(newSession(t, fakeClock, "s1"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		registry.Run(ctx, time.Second)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	assert.Zero(t, registry.Len())
}
