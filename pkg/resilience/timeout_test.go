package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jzx17/gofx/internal/testutils"
	"github.com/jzx17/gofx/pkg/effect"
	"github.com/jzx17/gofx/pkg/types"
)

type deps struct {
	dsn string
}

var errQuery = errors.New("query failed")

// sleeper waits d on the context's clock, or until the context is done.
// started is closed once its timer exists.
func sleeper(d time.Duration, started chan<- struct{}) effect.Effect[deps, string] {
	return func(ctx context.Context, env deps) (string, error) {
		timer := types.ClockFromContext(ctx).NewTimer(d)
		defer timer.Stop()
		if started != nil {
			close(started)
		}
		select {
		case <-timer.C():
			return "slept " + env.dsn, nil
		case <-ctx.Done():
			return "", context.Cause(ctx)
		}
	}
}

func TestWithTimeout_RealClock(t *testing.T) {
	slow := sleeper(200*time.Millisecond, nil)

	_, err := WithTimeout(slow, 50*time.Millisecond).Run(context.Background(), deps{dsn: "db"})
	var te *TimeoutError
	require.ErrorAs(t, err, &te)
	assert.True(t, te.IsDeadline())
	assert.Equal(t, 50*time.Millisecond, te.Duration)
	assert.ErrorIs(t, err, types.ErrTimeout)

	value, err := WithTimeout(slow, 500*time.Millisecond).Run(context.Background(), deps{dsn: "db"})
	require.NoError(t, err)
	assert.Equal(t, "slept db", value)
}

func TestWithTimeout_DeadlineWins(t *testing.T) {
	mock := testutils.NewMockClock(t)
	ctx := testutils.WithMockClock(context.Background(), mock)
	started := make(chan struct{})

	done := WithTimeout(sleeper(200*time.Millisecond, started), 50*time.Millisecond).RunAsync(ctx, deps{})
	<-started
	mock.Advance(50 * time.Millisecond).MustWait(ctx)

	res := <-done
	var te *TimeoutError
	require.ErrorAs(t, res.Error, &te)
	assert.Equal(t, &TimeoutError{Duration: 50 * time.Millisecond}, te)
	assert.Equal(t, "gofx: timed out after 50ms", te.Error())
}

func TestWithTimeout_EffectWins(t *testing.T) {
	mock := testutils.NewMockClock(t)
	ctx := testutils.WithMockClock(context.Background(), mock)
	started := make(chan struct{})

	done := WithTimeout(sleeper(200*time.Millisecond, started), 500*time.Millisecond).RunAsync(ctx, deps{dsn: "pg"})
	<-started
	mock.Advance(200 * time.Millisecond).MustWait(ctx)

	res := <-done
	require.NoError(t, res.Error)
	assert.Equal(t, "slept pg", res.Value)
}

func TestWithTimeout_InnerFailure(t *testing.T) {
	_, err := WithTimeout(effect.Fail[deps, int](errQuery), time.Minute).Run(context.Background(), deps{})

	var te *TimeoutError
	require.ErrorAs(t, err, &te)
	assert.False(t, te.IsDeadline())
	assert.Equal(t, errQuery, te.Inner)
	assert.ErrorIs(t, err, errQuery)
	assert.NotErrorIs(t, err, types.ErrTimeout)
	assert.Equal(t, "query failed", err.Error())
}

func TestWithTimeout_AbandonedEffectSeesCause(t *testing.T) {
	mock := testutils.NewMockClock(t)
	ctx := testutils.WithMockClock(context.Background(), mock)
	started := make(chan struct{})
	cause := make(chan error, 1)

	inner := func(ctx context.Context, _ deps) (int, error) {
		close(started)
		<-ctx.Done()
		cause <- context.Cause(ctx)
		return 0, ctx.Err()
	}

	done := WithTimeout(effect.Effect[deps, int](inner), time.Second).RunAsync(ctx, deps{})
	<-started
	mock.Advance(time.Second).MustWait(ctx)

	res := <-done
	assert.ErrorIs(t, res.Error, types.ErrTimeout)
	assert.ErrorIs(t, <-cause, types.ErrTimeout)
}

func TestWithTimeout_ParentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	e := effect.FromFunc(func(deps) (int, error) { called = true; return 1, nil })

	_, err := WithTimeout(e, time.Second).Run(ctx, deps{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestWithTimeout_ParentCancelledWhileRunning(t *testing.T) {
	mock := testutils.NewMockClock(t)
	ctx, cancel := context.WithCancel(testutils.WithMockClock(context.Background(), mock))
	started := make(chan struct{})

	done := WithTimeout(sleeper(time.Hour, started), 2*time.Hour).RunAsync(ctx, deps{})
	<-started
	cancel()

	res := <-done
	assert.ErrorIs(t, res.Error, context.Canceled)
}

func TestWithTimeout_NonPositive(t *testing.T) {
	called := false
	e := effect.FromFunc(func(deps) (int, error) { called = true; return 1, nil })

	_, err := WithTimeout(e, 0).Run(context.Background(), deps{})
	var te *TimeoutError
	require.ErrorAs(t, err, &te)
	assert.True(t, te.IsDeadline())
	assert.False(t, called)
}

func TestWithTimeout_ExplicitClock(t *testing.T) {
	mock := testutils.NewMockClock(t)
	started := make(chan struct{})
	clock := testutils.NewClockWrapper(mock)
	inner := types.WithClock(context.Background(), clock)

	done := WithTimeout(sleeper(time.Minute, started), time.Second, WithClock(clock)).RunAsync(inner, deps{})
	<-started
	mock.Advance(time.Second).MustWait(context.Background())

	res := <-done
	assert.ErrorIs(t, res.Error, types.ErrTimeout)
}
