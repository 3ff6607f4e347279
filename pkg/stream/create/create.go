package create

import (
	"context"
	"time"

	ctxutil "github.com/vnykmshr/gostream/pkg/common/context"
	"github.com/vnykmshr/gostream/pkg/common/validation"
	"github.com/vnykmshr/gostream/pkg/stream/core"
)

// Just produces a stream that yields a single value and terminates.
func Just[T any](value T) core.Stream[T] {
	return FromSlice([]T{value})
}

// Empty produces a stream that terminates without yielding any value.
func Empty[T any]() core.Stream[T] {
	return core.New(func(_ context.Context) (core.Source[T], error) {
		return core.SourceFunc[T](func(_ context.Context) (T, bool, error) {
			var zero T
			return zero, false, nil
		}), nil
	})
}

// Throw produces a stream that fails with the given error without yielding
// any value.
func Throw[T any](err error) core.Stream[T] {
	return core.New(func(_ context.Context) (core.Source[T], error) {
		return core.SourceFunc[T](func(_ context.Context) (T, bool, error) {
			var zero T
			return zero, false, err
		}), nil
	})
}

// Never produces a stream that hangs forever without yielding any value.
// Iteration only ends when the caller's context is canceled.
func Never[T any]() core.Stream[T] {
	return core.New(func(_ context.Context) (core.Source[T], error) {
		return core.SourceFunc[T](func(ctx context.Context) (T, bool, error) {
			var zero T
			<-ctx.Done()
			return zero, false, ctx.Err()
		}), nil
	})
}

// FromSlice produces a stream that yields the elements of the slice in order.
// Each activation starts from the beginning.
func FromSlice[T any](items []T) core.Stream[T] {
	return core.New(func(_ context.Context) (core.Source[T], error) {
		index := 0
		return core.SourceFunc[T](func(ctx context.Context) (T, bool, error) {
			var zero T
			if err := ctx.Err(); err != nil {
				return zero, false, err
			}
			if index >= len(items) {
				return zero, false, nil
			}
			v := items[index]
			index++
			return v, true, nil
		}), nil
	})
}

// FromChannel produces a stream that yields values received from the channel
// until it is closed. Activations share the channel: values consumed by one
// activation are not seen by another.
func FromChannel[T any](ch <-chan T) core.Stream[T] {
	return core.New(func(_ context.Context) (core.Source[T], error) {
		return core.SourceFunc[T](func(ctx context.Context) (T, bool, error) {
			var zero T
			select {
			case v, ok := <-ch:
				if !ok {
					return zero, false, nil
				}
				return v, true, nil
			case <-ctx.Done():
				return zero, false, ctx.Err()
			}
		}), nil
	})
}

// Generate produces an infinite stream from a generator function.
func Generate[T any](generator func() T) core.Stream[T] {
	return core.New(func(_ context.Context) (core.Source[T], error) {
		return core.SourceFunc[T](func(ctx context.Context) (T, bool, error) {
			if err := ctx.Err(); err != nil {
				var zero T
				return zero, false, err
			}
			return generator(), true, nil
		}), nil
	})
}

// Repeat produces a stream that yields the same value a given number of
// times. A negative count repeats indefinitely.
func Repeat[T any](value T, times int) core.Stream[T] {
	return core.New(func(_ context.Context) (core.Source[T], error) {
		emitted := 0
		return core.SourceFunc[T](func(ctx context.Context) (T, bool, error) {
			var zero T
			if err := ctx.Err(); err != nil {
				return zero, false, err
			}
			if times >= 0 && emitted >= times {
				return zero, false, nil
			}
			emitted++
			return value, true, nil
		}), nil
	})
}

// RepeatEvery behaves like Repeat, waiting for the interval before every
// element after the first. The wait honors the iteration context.
func RepeatEvery[T any](value T, times int, interval time.Duration) core.Stream[T] {
	return core.New(func(_ context.Context) (core.Source[T], error) {
		emitted := 0
		return core.SourceFunc[T](func(ctx context.Context) (T, bool, error) {
			var zero T
			if times >= 0 && emitted >= times {
				return zero, false, nil
			}
			if emitted > 0 {
				if err := ctxutil.Sleep(ctx, interval); err != nil {
					return zero, false, err
				}
			} else if err := ctx.Err(); err != nil {
				return zero, false, err
			}
			emitted++
			return value, true, nil
		}), nil
	})
}

// Range produces a stream of numbers from start (inclusive) to stop
// (exclusive), advancing by step. A negative step counts down. A zero step
// is a configuration error reported at activation.
func Range(start, stop, step int) core.Stream[int] {
	return core.New(func(_ context.Context) (core.Source[int], error) {
		if err := validation.NonZero("range", "step", step); err != nil {
			return nil, err
		}
		current := start
		return core.SourceFunc[int](func(ctx context.Context) (int, bool, error) {
			if err := ctx.Err(); err != nil {
				return 0, false, err
			}
			if (step > 0 && current >= stop) || (step < 0 && current <= stop) {
				return 0, false, nil
			}
			v := current
			current += step
			return v, true, nil
		}), nil
	})
}

// RangeEvery behaves like Range, waiting for the interval before every
// element after the first. The wait honors the iteration context.
func RangeEvery(start, stop, step int, interval time.Duration) core.Stream[int] {
	return core.New(func(_ context.Context) (core.Source[int], error) {
		if err := validation.NonZero("range", "step", step); err != nil {
			return nil, err
		}
		current := start
		emitted := false
		return core.SourceFunc[int](func(ctx context.Context) (int, bool, error) {
			if (step > 0 && current >= stop) || (step < 0 && current <= stop) {
				return 0, false, nil
			}
			if emitted {
				if err := ctxutil.Sleep(ctx, interval); err != nil {
					return 0, false, err
				}
			} else if err := ctx.Err(); err != nil {
				return 0, false, err
			}
			emitted = true
			v := current
			current += step
			return v, true, nil
		}), nil
	})
}

// Count produces an infinite stream of consecutive numbers starting from
// start, advancing by step.
func Count(start, step int) core.Stream[int] {
	return core.New(func(_ context.Context) (core.Source[int], error) {
		current := start
		return core.SourceFunc[int](func(ctx context.Context) (int, bool, error) {
			if err := ctx.Err(); err != nil {
				return 0, false, err
			}
			v := current
			current += step
			return v, true, nil
		}), nil
	})
}

// FromSource adopts an already-acquired source into a stream that owns it:
// releasing an activation closes the source. Since the source can only be
// consumed once, the stream is single-activation rather than repeatable.
func FromSource[T any](source core.Source[T]) core.Stream[T] {
	return core.New(func(_ context.Context) (core.Source[T], error) {
		return source, nil
	})
}

// Preserve produces a stream over an externally-owned source without taking
// ownership of it: releasing an activation does not close the source.
// Activations share the source, so this is mainly useful to hand a live
// iterator to operators that expect a stream.
func Preserve[T any](source core.Source[T]) core.Stream[T] {
	return core.New(func(_ context.Context) (core.Source[T], error) {
		return core.NewSource(source.Next, nil), nil
	})
}
