package types

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestClockFromContext(t *testing.T) {
	t.Run("defaults to real clock", func(t *testing.T) {
		if _, ok := ClockFromContext(context.Background()).(*RealClock); !ok {
			t.Errorf("expected *RealClock")
		}
	})

	t.Run("returns installed clock", func(t *testing.T) {
		clock := &RealClock{}
		ctx := WithClock(context.Background(), clock)
		if ClockFromContext(ctx) != Clock(clock) {
			t.Errorf("expected the installed clock")
		}
	})
}

func TestRealClockTimer(t *testing.T) {
	clock := NewRealClock()
	start := clock.Now()

	timer := clock.NewTimer(time.Millisecond)
	<-timer.C()
	if clock.Since(start) < time.Millisecond {
		t.Errorf("timer fired too early")
	}
	if timer.Stop() {
		t.Errorf("expected Stop on a fired timer to report false")
	}
}

func TestResult(t *testing.T) {
	ok := Result[int]{Value: 7}
	if !ok.Ok() {
		t.Errorf("expected ok result")
	}
	if v, err := ok.Unpack(); v != 7 || err != nil {
		t.Errorf("unexpected unpack (%d, %v)", v, err)
	}

	failed := Result[int]{Error: errors.New("boom")}
	if failed.Ok() {
		t.Errorf("expected failed result")
	}
}

func TestTuples(t *testing.T) {
	pair := NewTuple2(1, "a")
	if pair.First != 1 || pair.Second != "a" {
		t.Errorf("unexpected pair %+v", pair)
	}
	quad := NewTuple4(1, "b", 2.5, true)
	if quad.Third != 2.5 || !quad.Fourth {
		t.Errorf("unexpected quad %+v", quad)
	}
	triple := NewTuple3("x", 'y', uint8(3))
	if triple.Third != 3 {
		t.Errorf("unexpected triple %+v", triple)
	}
}
