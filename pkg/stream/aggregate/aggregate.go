package aggregate

import (
	"context"

	"github.com/vnykmshr/gostream/pkg/stream/core"
)

// Accumulate generates the series of running reductions of the stream using
// the given binary function. An empty stream yields nothing.
func Accumulate[T any](s core.Stream[T], fn func(T, T) T) core.Stream[T] {
	return accumulate(s, fn, nil)
}

// AccumulateFrom behaves like Accumulate with the initializer placed before
// the elements of the stream; it also serves as the default for an empty
// stream.
func AccumulateFrom[T any](s core.Stream[T], initializer T, fn func(T, T) T) core.Stream[T] {
	init := initializer
	return accumulate(s, fn, &init)
}

func accumulate[T any](s core.Stream[T], fn func(T, T) T, initializer *T) core.Stream[T] {
	return core.Pipable(func(_ context.Context, in *core.Streamer[T]) (core.Source[T], error) {
		var value T
		primed := false
		done := false

		return core.SourceFunc[T](func(ctx context.Context) (T, bool, error) {
			var zero T
			if done {
				return zero, false, nil
			}

			if !primed {
				if initializer != nil {
					value = *initializer
				} else {
					v, ok, err := in.Next(ctx)
					if err != nil {
						return zero, false, err
					}
					if !ok {
						done = true
						return zero, false, nil
					}
					value = v
				}
				primed = true
				return value, true, nil
			}

			v, ok, err := in.Next(ctx)
			if err != nil {
				return zero, false, err
			}
			if !ok {
				done = true
				return zero, false, nil
			}
			value = fn(value, v)
			return value, true, nil
		}), nil
	})(s)
}

// Reduce applies the binary function cumulatively and yields the single
// final value. Reducing an empty stream fails with ErrEmptyStream when the
// result is awaited through Last.
func Reduce[T any](s core.Stream[T], fn func(T, T) T) core.Stream[T] {
	return last(Accumulate(s, fn))
}

// ReduceFrom behaves like Reduce with an initializer, which also serves as
// the default for an empty stream.
func ReduceFrom[T any](s core.Stream[T], initializer T, fn func(T, T) T) core.Stream[T] {
	return last(AccumulateFrom(s, initializer, fn))
}

// List collects the whole stream into a single slice element.
func List[T any](s core.Stream[T]) core.Stream[[]T] {
	return core.Pipable(func(_ context.Context, in *core.Streamer[T]) (core.Source[[]T], error) {
		done := false
		return core.SourceFunc[[]T](func(ctx context.Context) ([]T, bool, error) {
			if done {
				return nil, false, nil
			}
			result := []T{}
			for {
				v, ok, err := in.Next(ctx)
				if err != nil {
					return nil, false, err
				}
				if !ok {
					done = true
					return result, true, nil
				}
				result = append(result, v)
			}
		}), nil
	})(s)
}

// last trims a stream down to its final element, if any.
func last[T any](s core.Stream[T]) core.Stream[T] {
	return core.Pipable(func(_ context.Context, in *core.Streamer[T]) (core.Source[T], error) {
		done := false
		return core.SourceFunc[T](func(ctx context.Context) (T, bool, error) {
			var zero T
			if done {
				return zero, false, nil
			}
			var value T
			seen := false
			for {
				v, ok, err := in.Next(ctx)
				if err != nil {
					return zero, false, err
				}
				if !ok {
					done = true
					if !seen {
						return zero, false, nil
					}
					return value, true, nil
				}
				value = v
				seen = true
			}
		}), nil
	})(s)
}
