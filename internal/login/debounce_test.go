// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package login_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	testingclock "k8s.io/utils/clock/testing"

	"github.com/taibuivan/signin/internal/login"
)

/*
TestDebouncer_CoalescesBursts runs only the last trigger, once the burst is quiet.
*/
func TestDebouncer_CoalescesBursts(t *testing.T) {
	fakeClock := testingclock.NewFakeClock(time.Now())
	debouncer := login.NewDebouncer(fakeClock, 300*time.Millisecond)

	var calls, last atomic.Int32
	for i := int32(1); i <= 3; i++ {
		debouncer.Trigger(func() {
			calls.Add(1)
			last.Store(i)
		})
		fakeClock.Step(100 * time.Millisecond)
	}

	assert.Zero(t, calls.Load())

	fakeClock.Step(200 * time.Millisecond)
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, int32(3), last.Load())

	fakeClock.Step(time.Second)
	assert.Never(t, func() bool { return calls.Load() > 1 }, 30*time.Millisecond, 5*time.Millisecond)
}

/*
TestDebouncer_FlushAndCancel runs or drops the waiting call without the clock.
*/
func TestDebouncer_FlushAndCancel(t *testing.T) {
	fakeClock := testingclock.NewFakeClock(time.Now())
	debouncer := login.NewDebouncer(fakeClock, 300*time.Millisecond)

	var calls atomic.Int32
	debouncer.Trigger(func() { calls.Add(1) })

	assert.True(t, debouncer.Flush())
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, debouncer.Flush())

	debouncer.Trigger(func() { calls.Add(1) })
	debouncer.Cancel()
	fakeClock.Step(time.Second)
	assert.Never(t, func() bool { return calls.Load() > 1 }, 30*time.Millisecond, 5*time.Millisecond)
}

/*
TestDebouncer_Stop ignores triggers after Stop; zero quiet period runs inline.
*/
func TestDebouncer_Stop(t *testing.T) {
	var calls atomic.Int32

	inline := login.NewDebouncer(testingclock.NewFakeClock(time.Now()), 0)
	inline.Trigger(func() { calls.Add(1) })
	assert.Equal(t, int32(1), calls.Load())

	inline.Stop()
	inline.Trigger(func() { calls.Add(1) })
	assert.Equal(t, int32(1), calls.Load())
}
