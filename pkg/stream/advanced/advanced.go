package advanced

import (
	"context"
	"fmt"

	gserrors "github.com/vnykmshr/gostream/pkg/common/errors"
	"github.com/vnykmshr/gostream/pkg/metrics"
	"github.com/vnykmshr/gostream/pkg/stream/core"
)

// Option configures a concurrent combinator.
type Option func(*options)

type options struct {
	taskLimit    int
	taskLimitSet bool
	reg          *metrics.Registry
	operator     string
}

// WithTaskLimit bounds the number of inner streams a Flatten or FlatMap
// consumes concurrently. The outer stream is not advanced while the limit
// is reached. A non-positive limit is a configuration error.
func WithTaskLimit(n int) Option {
	return func(o *options) {
		o.taskLimit = n
		o.taskLimitSet = true
	}
}

// WithMetrics records branch activity for the combinator on the given
// registry, labeled with the operator name. A nil registry is a no-op.
func WithMetrics(reg *metrics.Registry, operator string) Option {
	return func(o *options) {
		o.reg = reg
		o.operator = operator
	}
}

func applyOptions(opts []Option) (options, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.taskLimitSet && o.taskLimit <= 0 {
		return o, fmt.Errorf("%w: task limit must be positive, got %d",
			gserrors.ErrInvalidConfiguration, o.taskLimit)
	}
	return o, nil
}

// Concat flattens a stream of streams by exhausting each inner stream
// before activating the next, preserving the outer order. At most one inner
// activation is open at a time and nothing runs concurrently.
func Concat[T any](outer core.Stream[core.Stream[T]]) core.Stream[T] {
	return core.New(func(ctx context.Context) (core.Source[T], error) {
		st, err := outer.Open(ctx)
		if err != nil {
			return nil, err
		}
		return &concatSource[T]{outer: st}, nil
	})
}

// Flatten flattens a stream of streams by consuming all inner streams
// concurrently, forwarding elements in arrival order. The merged stream ends
// when the outer and every inner stream are exhausted; the first failure
// anywhere cancels the remaining branches and propagates.
func Flatten[T any](outer core.Stream[core.Stream[T]], opts ...Option) core.Stream[T] {
	return core.New(func(ctx context.Context) (core.Source[T], error) {
		o, err := applyOptions(opts)
		if err != nil {
			return nil, err
		}
		st, err := outer.Open(ctx)
		if err != nil {
			return nil, err
		}
		return newFlattenSource(st, o), nil
	})
}

// Switch flattens a stream of streams by forwarding elements of the most
// recent inner stream only: each new inner stream cancels and releases its
// predecessor before taking over. The merged stream ends when the outer is
// exhausted and the final inner stream has completed.
func Switch[T any](outer core.Stream[core.Stream[T]]) core.Stream[T] {
	return core.New(func(ctx context.Context) (core.Source[T], error) {
		st, err := outer.Open(ctx)
		if err != nil {
			return nil, err
		}
		return newSwitchSource(st), nil
	})
}

// ConcatMap applies fn to each element and concatenates the resulting
// streams sequentially.
func ConcatMap[T, U any](s core.Stream[T], fn func(T) core.Stream[U]) core.Stream[U] {
	return Concat(mapStreams(s, fn))
}

// FlatMap applies fn to each element and merges the resulting streams
// concurrently.
func FlatMap[T, U any](s core.Stream[T], fn func(T) core.Stream[U], opts ...Option) core.Stream[U] {
	return Flatten(mapStreams(s, fn), opts...)
}

// SwitchMap applies fn to each element and switches to each resulting
// stream as it arrives, cancelling the previous one.
func SwitchMap[T, U any](s core.Stream[T], fn func(T) core.Stream[U]) core.Stream[U] {
	return Switch(mapStreams(s, fn))
}

func mapStreams[T, U any](s core.Stream[T], fn func(T) core.Stream[U]) core.Stream[core.Stream[U]] {
	return core.Pipable(func(_ context.Context, in *core.Streamer[T]) (core.Source[core.Stream[U]], error) {
		return core.SourceFunc[core.Stream[U]](func(ctx context.Context) (core.Stream[U], bool, error) {
			v, ok, err := in.Next(ctx)
			if err != nil || !ok {
				return core.Stream[U]{}, false, err
			}
			return fn(v), true, nil
		}), nil
	})(s)
}
