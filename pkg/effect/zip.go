package effect

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jzx17/gofx/pkg/types"
)

// fanOut runs every member concurrently and waits for all of them. The
// first member to fail cancels the context the others run with, and its
// error is the one reported.
func fanOut(ctx context.Context, members ...func(context.Context) error) error {
	gctx, cancel := context.WithCancel(ctx)
	defer cancel()

	first := &failure{cancel: cancel}
	var g errgroup.Group
	for i, member := range members {
		g.Go(func() error {
			if err := member(gctx); err != nil {
				first.record(i, err, gctx.Err() == nil)
			}
			return nil
		})
	}
	// members report through first; the group only joins them
	_ = g.Wait()
	return first.err
}

// failure holds the error a fan-out settles with. Members that fail before
// the group is cancelled are simultaneous, and the lowest position among
// them wins. A failure that arrives after the cancellation is a consequence
// of it and is kept only when nothing failed first.
type failure struct {
	mu     sync.Mutex
	index  int
	err    error
	cancel context.CancelFunc
}

func (f *failure) record(index int, err error, beforeCancel bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch {
	case f.err == nil:
	case beforeCancel && index < f.index:
	default:
		return
	}
	f.index, f.err = index, err
	f.cancel()
}

// Zip2 runs a and b concurrently on the same environment and pairs their
// values. If either fails the other is cancelled and its value discarded.
func Zip2[Env, A, B any](a Effect[Env, A], b Effect[Env, B]) Effect[Env, types.Tuple2[A, B]] {
	return func(ctx context.Context, env Env) (types.Tuple2[A, B], error) {
		var out types.Tuple2[A, B]
		err := fanOut(ctx,
			func(ctx context.Context) (err error) { out.First, err = a.Run(ctx, env); return },
			func(ctx context.Context) (err error) { out.Second, err = b.Run(ctx, env); return },
		)
		if err != nil {
			return types.Tuple2[A, B]{}, err
		}
		return out, nil
	}
}

// Zip3 is Zip2 for three effects.
func Zip3[Env, A, B, C any](a Effect[Env, A], b Effect[Env, B], c Effect[Env, C]) Effect[Env, types.Tuple3[A, B, C]] {
	return func(ctx context.Context, env Env) (types.Tuple3[A, B, C], error) {
		var out types.Tuple3[A, B, C]
		err := fanOut(ctx,
			func(ctx context.Context) (err error) { out.First, err = a.Run(ctx, env); return },
			func(ctx context.Context) (err error) { out.Second, err = b.Run(ctx, env); return },
			func(ctx context.Context) (err error) { out.Third, err = c.Run(ctx, env); return },
		)
		if err != nil {
			return types.Tuple3[A, B, C]{}, err
		}
		return out, nil
	}
}

// Zip4 is Zip2 for four effects.
func Zip4[Env, A, B, C, D any](a Effect[Env, A], b Effect[Env, B], c Effect[Env, C], d Effect[Env, D]) Effect[Env, types.Tuple4[A, B, C, D]] {
	return func(ctx context.Context, env Env) (types.Tuple4[A, B, C, D], error) {
		var out types.Tuple4[A, B, C, D]
		err := fanOut(ctx,
			func(ctx context.Context) (err error) { out.First, err = a.Run(ctx, env); return },
			func(ctx context.Context) (err error) { out.Second, err = b.Run(ctx, env); return },
			func(ctx context.Context) (err error) { out.Third, err = c.Run(ctx, env); return },
			func(ctx context.Context) (err error) { out.Fourth, err = d.Run(ctx, env); return },
		)
		if err != nil {
			return types.Tuple4[A, B, C, D]{}, err
		}
		return out, nil
	}
}

// ZipAll runs every effect concurrently and collects their values in order.
// With no effects it succeeds with an empty slice.
func ZipAll[Env, T any](effects ...Effect[Env, T]) Effect[Env, []T] {
	return func(ctx context.Context, env Env) ([]T, error) {
		out := make([]T, len(effects))
		members := make([]func(context.Context) error, len(effects))
		for i, e := range effects {
			members[i] = func(ctx context.Context) (err error) {
				out[i], err = e.Run(ctx, env)
				return
			}
		}
		if err := fanOut(ctx, members...); err != nil {
			return nil, err
		}
		return out, nil
	}
}

// ZipWith2 runs a and b like Zip2 and combines their values with f.
func ZipWith2[Env, A, B, R any](a Effect[Env, A], b Effect[Env, B], f func(A, B) R) Effect[Env, R] {
	return Map(Zip2(a, b), func(t types.Tuple2[A, B]) R {
		return f(t.First, t.Second)
	})
}
