// Package testutils provides clocks for deterministic tests of time-driven
// code.
package testutils

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/coder/quartz"

	"github.com/jzx17/gofx/pkg/types"
)

var (
	_ types.Clock = (*ClockWrapper)(nil)
	_ types.Clock = (*InstantClock)(nil)
)

// NewMockClock creates a mock clock for testing
func NewMockClock(t testing.TB) *quartz.Mock {
	return quartz.NewMock(t)
}

// ClockWrapper wraps quartz.Mock to implement types.Clock
type ClockWrapper struct {
	*quartz.Mock
}

// NewClockWrapper creates a new ClockWrapper
func NewClockWrapper(mock *quartz.Mock) *ClockWrapper {
	return &ClockWrapper{Mock: mock}
}

// After returns a channel that delivers the current time after the duration
func (c *ClockWrapper) After(d time.Duration) <-chan time.Time {
	return c.Mock.NewTimer(d).C
}

// Now returns the mock's current time
func (c *ClockWrapper) Now() time.Time {
	return c.Mock.Now()
}

// Since returns the mock time elapsed since t
func (c *ClockWrapper) Since(t time.Time) time.Duration {
	return c.Mock.Since(t)
}

// NewTimer creates a new Timer
func (c *ClockWrapper) NewTimer(d time.Duration) types.Timer {
	return &TimerWrapper{timer: c.Mock.NewTimer(d)}
}

// TimerWrapper wraps quartz timer
type TimerWrapper struct {
	timer *quartz.Timer
}

func (t *TimerWrapper) C() <-chan time.Time {
	return t.timer.C
}

func (t *TimerWrapper) Stop() bool {
	return t.timer.Stop()
}

func (t *TimerWrapper) Reset(d time.Duration) bool {
	return t.timer.Reset(d)
}

// WithMockClock creates a context with mock clock
func WithMockClock(ctx context.Context, mock *quartz.Mock) context.Context {
	return types.WithClock(ctx, NewClockWrapper(mock))
}

// WaitForTimer blocks until the mock has a pending timer and returns the
// duration until it fires. The test fails if none appears within a second.
func WaitForTimer(t testing.TB, mock *quartz.Mock) time.Duration {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if d, ok := mock.Peek(); ok {
			return d
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("no timer was scheduled on the mock clock")
	return 0
}

// InstantClock is a virtual clock whose timers fire immediately. Every
// requested duration is recorded and moves the virtual time forward, so
// elapsed-time accounting stays exact without real waiting.
type InstantClock struct {
	mu        sync.Mutex
	now       time.Time
	durations []time.Duration
}

// NewInstantClock creates an InstantClock starting at a fixed instant.
func NewInstantClock() *InstantClock {
	return &InstantClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *InstantClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *InstantClock) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}

func (c *InstantClock) After(d time.Duration) <-chan time.Time {
	return c.NewTimer(d).C()
}

func (c *InstantClock) NewTimer(d time.Duration) types.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.durations = append(c.durations, d)
	if d > 0 {
		c.now = c.now.Add(d)
	}
	ch := make(chan time.Time, 1)
	ch <- c.now
	return &instantTimer{ch: ch}
}

// Advance moves the virtual time forward without recording a timer.
func (c *InstantClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Durations returns every duration a timer was requested for, in order.
func (c *InstantClock) Durations() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]time.Duration, len(c.durations))
	copy(out, c.durations)
	return out
}

type instantTimer struct {
	ch <-chan time.Time
}

func (t *instantTimer) C() <-chan time.Time      { return t.ch }
func (t *instantTimer) Stop() bool               { return false }
func (t *instantTimer) Reset(time.Duration) bool { return false }
