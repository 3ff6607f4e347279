package testutil

import (
	"context"
	"sync/atomic"
	"time"

	ctxutil "github.com/vnykmshr/gostream/pkg/common/context"
	"github.com/vnykmshr/gostream/pkg/stream/core"
)

// Tracker counts activations and releases of the streams it wraps. Tests
// use it to verify that every opened source is closed exactly once,
// including through failures and concurrent combinators.
type Tracker struct {
	opened atomic.Int64
	closed atomic.Int64
}

// Opened returns the number of activations seen so far.
func (tr *Tracker) Opened() int { return int(tr.opened.Load()) }

// Closed returns the number of releases seen so far.
func (tr *Tracker) Closed() int { return int(tr.closed.Load()) }

// Balanced reports whether every activation has been released.
func (tr *Tracker) Balanced() bool { return tr.opened.Load() == tr.closed.Load() }

// Tracked wraps a stream so that every activation and release is counted on
// the tracker.
func Tracked[T any](s core.Stream[T], tr *Tracker) core.Stream[T] {
	return core.New(func(ctx context.Context) (core.Source[T], error) {
		in, err := s.Open(ctx)
		if err != nil {
			return nil, err
		}
		tr.opened.Add(1)
		return core.NewSource(in.Next, func() error {
			tr.closed.Add(1)
			return in.Close()
		}), nil
	})
}

// FailAfter yields the given values and then fails with err.
func FailAfter[T any](values []T, err error) core.Stream[T] {
	return core.New(func(ctx context.Context) (core.Source[T], error) {
		i := 0
		return core.SourceFunc[T](func(ctx context.Context) (T, bool, error) {
			var zero T
			if i < len(values) {
				v := values[i]
				i++
				return v, true, nil
			}
			return zero, false, err
		}), nil
	})
}

// Slow yields the given values, sleeping for delay before each one. The
// sleep honors the iteration context.
func Slow[T any](values []T, delay time.Duration) core.Stream[T] {
	return core.New(func(ctx context.Context) (core.Source[T], error) {
		i := 0
		return core.SourceFunc[T](func(ctx context.Context) (T, bool, error) {
			var zero T
			if i >= len(values) {
				return zero, false, nil
			}
			if err := ctxutil.Sleep(ctx, delay); err != nil {
				return zero, false, err
			}
			v := values[i]
			i++
			return v, true, nil
		}), nil
	})
}

// CloseFailing yields the given values and then reports closeErr when the
// activation is released.
func CloseFailing[T any](values []T, closeErr error) core.Stream[T] {
	return core.New(func(ctx context.Context) (core.Source[T], error) {
		i := 0
		return core.NewSource(func(ctx context.Context) (T, bool, error) {
			var zero T
			if i >= len(values) {
				return zero, false, nil
			}
			v := values[i]
			i++
			return v, true, nil
		}, func() error {
			return closeErr
		}), nil
	})
}
