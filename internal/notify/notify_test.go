// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notify_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"

	"github.com/taibuivan/signin/internal/notify"
)

const ttl = 5 * time.Second

func newStack(t *testing.T) (*notify.Stack, *testingclock.FakeClock) {
	t.Helper()

	fakeClock := testingclock.NewFakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	stack := notify.NewStack(fakeClock, ttl, nil)
	t.Cleanup(stack.Close)

	return stack, fakeClock
}

/*
TestStack_Stacking verifies that notifications accumulate in order.
*/
func TestStack_Stacking(t *testing.T) {
	stack, _ := newStack(t)

	stack.Present("first", notify.SeverityInfo)
	stack.Present("second", notify.SeverityError)

	active := stack.Active()
	require.Len(t, active, 2)
	assert.Equal(t, "first", active[0].Message)
	assert.Equal(t, "second", active[1].Message)
	assert.Equal(t, "exclamation-circle", active[1].Icon)
	assert.Equal(t, "var(--error)", active[1].Color)
	assert.NotEqual(t, active[0].ID, active[1].ID)
}

/*
TestStack_AutoDismiss removes a notification once its TTL elapses.
*/
func TestStack_AutoDismiss(t *testing.T) {
	stack, fakeClock := newStack(t)

	stack.Present("early", notify.SeverityWarning)
	fakeClock.Step(2 * time.Second)
	stack.Present("late", notify.SeveritySuccess)

	fakeClock.Step(3 * time.Second)
	assert.Eventually(t, func() bool {
		active := stack.Active()
		return len(active) == 1 && active[0].Message == "late"
	}, time.Second, 5*time.Millisecond)

	fakeClock.Step(2 * time.Second)
	assert.Eventually(t, func() bool {
		return len(stack.Active()) == 0
	}, time.Second, 5*time.Millisecond)
}

/*
TestStack_Dismiss removes a notification early and only once.
*/
func TestStack_Dismiss(t *testing.T) {
	stack, fakeClock := newStack(t)

	id := stack.Present("bye", notify.SeverityInfo)

	assert.True(t, stack.Dismiss(id))
	assert.False(t, stack.Dismiss(id))
	assert.Empty(t, stack.Active())

	// The stopped timer must not resurrect or panic.
	fakeClock.Step(ttl)
	assert.Empty(t, stack.Active())
}

/*
TestSeverity_Visuals checks each severity is visually distinct.
*/
func TestSeverity_Visuals(t *testing.T) {
	severities := []notify.Severity{
		notify.SeverityInfo, notify.SeveritySuccess, notify.SeverityWarning, notify.SeverityError,
	}

	icons := map[string]bool{}
	colors := map[string]bool{}
	for _, severity := range severities {
		icons[severity.Icon()] = true
		colors[severity.Color()] = true
	}

	assert.Len(t, icons, len(severities))
	assert.Len(t, colors, len(severities))
}
