package core

import (
	"context"
	"errors"
)

// Operator is the pipe-composable form of a same-type stream operator.
// Operators are pure factories: applying one records intent without
// starting any iteration.
type Operator[T any] func(Stream[T]) Stream[T]

// RawFunc derives a new source from an activated upstream streamer.
// It is the raw shape wrapped by Pipable; the returned source reads from
// the given streamer but does not need to close it.
type RawFunc[T, U any] func(ctx context.Context, in *Streamer[T]) (Source[U], error)

// Pipable wraps a raw source-deriving function into a stream operator.
// The resulting stream owns the upstream activation: on release it closes
// the derived source first, then the upstream streamer (innermost first).
func Pipable[T, U any](raw RawFunc[T, U]) func(Stream[T]) Stream[U] {
	return func(source Stream[T]) Stream[U] {
		return New(func(ctx context.Context) (Source[U], error) {
			in, err := source.Open(ctx)
			if err != nil {
				return nil, err
			}

			out, err := raw(ctx, in)
			if err != nil {
				return nil, in.CloseWith(err)
			}

			return &ownedSource[T, U]{out: out, upstream: in}, nil
		})
	}
}

// ownedSource pairs a derived source with the upstream streamer it reads
// from, releasing both on close, innermost first.
type ownedSource[T, U any] struct {
	out      Source[U]
	upstream *Streamer[T]
}

func (o *ownedSource[T, U]) Next(ctx context.Context) (U, bool, error) {
	return o.out.Next(ctx)
}

func (o *ownedSource[T, U]) Close() error {
	err := o.out.Close()
	if cerr := o.upstream.Close(); cerr != nil {
		if err == nil {
			return cerr
		}
		return errors.Join(err, cerr)
	}
	return err
}

// SourceFunc adapts a next function into a Source with a no-op close.
// It is the common shape for derived sources whose only resource is the
// upstream streamer, which the Pipable wrapper releases.
type SourceFunc[T any] func(ctx context.Context) (T, bool, error)

// Next implements Source.
func (f SourceFunc[T]) Next(ctx context.Context) (T, bool, error) {
	return f(ctx)
}

// Close implements Source.
func (f SourceFunc[T]) Close() error { return nil }

// NewSource builds a source from a next function and a close function.
// A nil close function yields a no-op close.
func NewSource[T any](next func(ctx context.Context) (T, bool, error), close func() error) Source[T] {
	return &funcSource[T]{next: next, close: close}
}

type funcSource[T any] struct {
	next  func(ctx context.Context) (T, bool, error)
	close func() error
}

func (f *funcSource[T]) Next(ctx context.Context) (T, bool, error) {
	return f.next(ctx)
}

func (f *funcSource[T]) Close() error {
	if f.close == nil {
		return nil
	}
	return f.close()
}
