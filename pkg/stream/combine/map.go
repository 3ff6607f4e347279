package combine

import (
	"context"

	"github.com/vnykmshr/gostream/pkg/stream/core"
)

// Map applies fn to every element of the stream.
func Map[T, U any](s core.Stream[T], fn func(T) U) core.Stream[U] {
	return MapCtx(s, func(_ context.Context, v T) (U, error) {
		return fn(v), nil
	})
}

// MapCtx applies fn to every element; fn observes the iteration context and
// may fail, which fails the stream.
func MapCtx[T, U any](s core.Stream[T], fn func(context.Context, T) (U, error)) core.Stream[U] {
	return core.Pipable(func(_ context.Context, in *core.Streamer[T]) (core.Source[U], error) {
		return core.SourceFunc[U](func(ctx context.Context) (U, bool, error) {
			var zero U
			v, ok, err := in.Next(ctx)
			if err != nil || !ok {
				return zero, ok, err
			}
			u, err := fn(ctx, v)
			if err != nil {
				return zero, false, err
			}
			return u, true, nil
		}), nil
	})(s)
}

// MapOp is the pipe form of Map for transforms that keep the element type.
func MapOp[T any](fn func(T) T) core.Operator[T] {
	return func(s core.Stream[T]) core.Stream[T] {
		return Map(s, fn)
	}
}
