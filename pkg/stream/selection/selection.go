package selection

import (
	"context"
	"errors"
	"fmt"
	"math"

	gserrors "github.com/vnykmshr/gostream/pkg/common/errors"
	"github.com/vnykmshr/gostream/pkg/stream/core"
)

// ErrIndexOutOfRange is returned by Item when the requested index does not
// exist in the stream.
var ErrIndexOutOfRange = errors.New("stream index out of range")

// End marks an unbounded stop index for Slice.
const End = math.MaxInt

// Filter forwards the elements that match the given predicate.
func Filter[T any](s core.Stream[T], predicate func(T) bool) core.Stream[T] {
	return FilterOp[T](predicate)(s)
}

// FilterOp is the pipe form of Filter.
func FilterOp[T any](predicate func(T) bool) core.Operator[T] {
	return core.Pipable(func(_ context.Context, in *core.Streamer[T]) (core.Source[T], error) {
		return core.SourceFunc[T](func(ctx context.Context) (T, bool, error) {
			for {
				v, ok, err := in.Next(ctx)
				if err != nil || !ok {
					return v, ok, err
				}
				if predicate(v) {
					return v, true, nil
				}
			}
		}), nil
	})
}

// Take forwards the first n elements. A non-positive n terminates without
// ever activating the source.
func Take[T any](s core.Stream[T], n int) core.Stream[T] {
	return TakeOp[T](n)(s)
}

// TakeOp is the pipe form of Take.
func TakeOp[T any](n int) core.Operator[T] {
	return func(source core.Stream[T]) core.Stream[T] {
		return core.New(func(ctx context.Context) (core.Source[T], error) {
			if n <= 0 {
				// Terminate before touching the source.
				return core.SourceFunc[T](func(_ context.Context) (T, bool, error) {
					var zero T
					return zero, false, nil
				}), nil
			}

			in, err := source.Open(ctx)
			if err != nil {
				return nil, err
			}

			taken := 0
			return core.NewSource(func(ctx context.Context) (T, bool, error) {
				var zero T
				if taken >= n {
					return zero, false, nil
				}
				v, ok, err := in.Next(ctx)
				if err != nil || !ok {
					return zero, false, err
				}
				taken++
				return v, true, nil
			}, in.Close), nil
		})
	}
}

// TakeLast forwards the last n elements. The source must be exhausted before
// the first element is produced.
func TakeLast[T any](s core.Stream[T], n int) core.Stream[T] {
	return TakeLastOp[T](n)(s)
}

// TakeLastOp is the pipe form of TakeLast.
func TakeLastOp[T any](n int) core.Operator[T] {
	return core.Pipable(func(_ context.Context, in *core.Streamer[T]) (core.Source[T], error) {
		var buffered []T
		drained := false
		return core.SourceFunc[T](func(ctx context.Context) (T, bool, error) {
			var zero T
			if !drained {
				for {
					v, ok, err := in.Next(ctx)
					if err != nil {
						return zero, false, err
					}
					if !ok {
						break
					}
					if n <= 0 {
						continue
					}
					buffered = append(buffered, v)
					if len(buffered) > n {
						buffered = buffered[1:]
					}
				}
				drained = true
			}
			if len(buffered) == 0 {
				return zero, false, nil
			}
			v := buffered[0]
			buffered = buffered[1:]
			return v, true, nil
		}), nil
	})
}

// Skip forwards the stream after discarding the first n elements.
// A non-positive n skips nothing.
func Skip[T any](s core.Stream[T], n int) core.Stream[T] {
	return SkipOp[T](n)(s)
}

// SkipOp is the pipe form of Skip.
func SkipOp[T any](n int) core.Operator[T] {
	return core.Pipable(func(_ context.Context, in *core.Streamer[T]) (core.Source[T], error) {
		skipped := 0
		return core.SourceFunc[T](func(ctx context.Context) (T, bool, error) {
			for {
				v, ok, err := in.Next(ctx)
				if err != nil || !ok {
					return v, ok, err
				}
				if skipped < n {
					skipped++
					continue
				}
				return v, true, nil
			}
		}), nil
	})
}

// SkipLast forwards the stream while discarding its last n elements. The
// n+1th element must be reached before the first element is produced.
func SkipLast[T any](s core.Stream[T], n int) core.Stream[T] {
	return SkipLastOp[T](n)(s)
}

// SkipLastOp is the pipe form of SkipLast.
func SkipLastOp[T any](n int) core.Operator[T] {
	return core.Pipable(func(_ context.Context, in *core.Streamer[T]) (core.Source[T], error) {
		var window []T
		return core.SourceFunc[T](func(ctx context.Context) (T, bool, error) {
			var zero T
			for {
				v, ok, err := in.Next(ctx)
				if err != nil {
					return zero, false, err
				}
				if !ok {
					return zero, false, nil
				}
				if n <= 0 {
					return v, true, nil
				}
				window = append(window, v)
				if len(window) <= n {
					continue
				}
				out := window[0]
				window = window[1:]
				return out, true, nil
			}
		}), nil
	})
}

// FilterIndex forwards the elements whose zero-based index matches the given
// predicate.
func FilterIndex[T any](s core.Stream[T], predicate func(int) bool) core.Stream[T] {
	return FilterIndexOp[T](predicate)(s)
}

// FilterIndexOp is the pipe form of FilterIndex.
func FilterIndexOp[T any](predicate func(int) bool) core.Operator[T] {
	return core.Pipable(func(_ context.Context, in *core.Streamer[T]) (core.Source[T], error) {
		index := 0
		return core.SourceFunc[T](func(ctx context.Context) (T, bool, error) {
			for {
				v, ok, err := in.Next(ctx)
				if err != nil || !ok {
					return v, ok, err
				}
				i := index
				index++
				if predicate(i) {
					return v, true, nil
				}
			}
		}), nil
	})
}

// Slice extracts the [start:stop:step] range from the stream. Negative start
// and stop count from the end and require buffering. Two combinations are
// rejected as configuration errors: a non-negative stop with a negative
// start, and a non-positive step.
func Slice[T any](s core.Stream[T], start, stop, step int) core.Stream[T] {
	return SliceOp[T](start, stop, step)(s)
}

// SliceOp is the pipe form of Slice.
func SliceOp[T any](start, stop, step int) core.Operator[T] {
	return func(source core.Stream[T]) core.Stream[T] {
		return core.New(func(ctx context.Context) (core.Source[T], error) {
			if step <= 0 {
				return nil, fmt.Errorf("slice: step must be positive, got %d: %w",
					step, gserrors.ErrInvalidConfiguration)
			}
			if start < 0 && stop >= 0 && stop != End {
				return nil, fmt.Errorf("slice: non-negative stop with negative start is not supported: %w",
					gserrors.ErrInvalidConfiguration)
			}

			out := source
			// Trim the head.
			if start < 0 {
				out = TakeLast(out, -start)
			} else if start > 0 {
				out = Skip(out, start)
			}
			// Trim the tail.
			if stop != End {
				if stop >= 0 {
					out = Take(out, stop-start)
				} else {
					out = SkipLast(out, -stop)
				}
			}
			// Apply the step.
			if step > 1 {
				out = FilterIndex(out, func(i int) bool { return i%step == 0 })
			}

			return out.Open(ctx)
		})
	}
}

// Item forwards the single element at the given index. Negative indices
// count from the end of the stream. An index that does not exist fails with
// ErrIndexOutOfRange.
func Item[T any](s core.Stream[T], index int) core.Stream[T] {
	return ItemOp[T](index)(s)
}

// ItemOp is the pipe form of Item.
func ItemOp[T any](index int) core.Operator[T] {
	return func(source core.Stream[T]) core.Stream[T] {
		trimmed := source
		if index >= 0 {
			trimmed = Skip(source, index)
		} else {
			trimmed = TakeLast(source, -index)
		}

		return core.Pipable(func(_ context.Context, in *core.Streamer[T]) (core.Source[T], error) {
			emitted := false
			return core.SourceFunc[T](func(ctx context.Context) (T, bool, error) {
				var zero T
				if emitted {
					return zero, false, nil
				}

				v, ok, err := in.Next(ctx)
				if err != nil {
					return zero, false, err
				}
				if !ok {
					return zero, false, fmt.Errorf("index %d: %w", index, ErrIndexOutOfRange)
				}

				if index < 0 {
					// The buffer holds at most -index trailing elements;
					// fewer means the stream was too short.
					count := 1
					for {
						_, more, err := in.Next(ctx)
						if err != nil {
							return zero, false, err
						}
						if !more {
							break
						}
						count++
					}
					if count != -index {
						return zero, false, fmt.Errorf("index %d: %w", index, ErrIndexOutOfRange)
					}
				}

				emitted = true
				return v, true, nil
			}), nil
		})(trimmed)
	}
}

// TakeWhile forwards elements while the condition holds, then terminates.
func TakeWhile[T any](s core.Stream[T], condition func(T) bool) core.Stream[T] {
	return TakeWhileOp[T](condition)(s)
}

// TakeWhileOp is the pipe form of TakeWhile.
func TakeWhileOp[T any](condition func(T) bool) core.Operator[T] {
	return core.Pipable(func(_ context.Context, in *core.Streamer[T]) (core.Source[T], error) {
		done := false
		return core.SourceFunc[T](func(ctx context.Context) (T, bool, error) {
			var zero T
			if done {
				return zero, false, nil
			}
			v, ok, err := in.Next(ctx)
			if err != nil || !ok {
				return zero, false, err
			}
			if !condition(v) {
				done = true
				return zero, false, nil
			}
			return v, true, nil
		}), nil
	})
}

// DropWhile discards elements while the condition holds, then forwards the
// rest of the stream unconditionally.
func DropWhile[T any](s core.Stream[T], condition func(T) bool) core.Stream[T] {
	return DropWhileOp[T](condition)(s)
}

// DropWhileOp is the pipe form of DropWhile.
func DropWhileOp[T any](condition func(T) bool) core.Operator[T] {
	return core.Pipable(func(_ context.Context, in *core.Streamer[T]) (core.Source[T], error) {
		dropping := true
		return core.SourceFunc[T](func(ctx context.Context) (T, bool, error) {
			for {
				v, ok, err := in.Next(ctx)
				if err != nil || !ok {
					return v, ok, err
				}
				if dropping && condition(v) {
					continue
				}
				dropping = false
				return v, true, nil
			}
		}), nil
	})
}
