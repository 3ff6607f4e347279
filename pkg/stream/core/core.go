package core

import (
	"context"
	"fmt"

	gserrors "github.com/vnykmshr/gostream/pkg/common/errors"
)

// Source is the raw pull protocol for asynchronous sequences.
// Next returns the next element and true, or the zero value and false once
// the sequence is exhausted. Every call may suspend; implementations must
// return promptly when the context is canceled.
type Source[T any] interface {
	// Next returns the next element and true, or zero value and false if
	// no more elements.
	Next(ctx context.Context) (T, bool, error)
	// Close releases the resources held by the source. It must tolerate
	// being called before the first Next.
	Close() error
}

// Factory produces a fresh Source for one activation of a stream.
// It is called once per activation and must not share mutable state
// between the sources it returns.
type Factory[T any] func(ctx context.Context) (Source[T], error)

// Stream is an immutable, repeatable pipeline descriptor. It holds a factory
// plus whatever arguments the factory captured; activating it with Open
// produces a new live iteration each time. Streams are pure factories:
// constructing or composing them never begins iteration.
type Stream[T any] struct {
	factory Factory[T]
}

// New creates a stream from a source factory.
func New[T any](factory Factory[T]) Stream[T] {
	return Stream[T]{factory: factory}
}

// Open activates the stream and returns an open streamer that owns the
// produced source. Every call is independent: no state is shared between
// activations. A factory that fails at argument-binding time reports the
// failure here, before any iteration takes place.
func (s Stream[T]) Open(ctx context.Context) (*Streamer[T], error) {
	if s.factory == nil {
		return nil, fmt.Errorf("stream has no factory: %w", gserrors.ErrInvalidConfiguration)
	}

	source, err := s.factory(ctx)
	if err != nil {
		return nil, err
	}

	return NewStreamer(source), nil
}

// Pipe composes the stream with the given same-type operators, applied left
// to right: s.Pipe(op1, op2) is identical to op2(op1(s)). Composition is
// purely structural; nothing runs until the result is activated.
func (s Stream[T]) Pipe(ops ...Operator[T]) Stream[T] {
	out := s
	for _, op := range ops {
		out = op(out)
	}
	return out
}

// ForEach opens one activation, applies the action to every element and
// releases the activation on every exit path. An error from the source or
// from the action stops the iteration; the original error takes priority
// over any close failure, which is attached as a secondary cause.
func (s Stream[T]) ForEach(ctx context.Context, action func(T) error) error {
	st, err := s.Open(ctx)
	if err != nil {
		return err
	}

	for {
		v, ok, err := st.Next(ctx)
		if err != nil {
			return st.CloseWith(err)
		}
		if !ok {
			return st.Close()
		}
		if err := action(v); err != nil {
			return st.CloseWith(err)
		}
	}
}

// Last runs the stream to completion and returns its final element.
// It returns ErrEmptyStream if the stream produced no elements.
func (s Stream[T]) Last(ctx context.Context) (T, error) {
	var last T
	seen := false

	err := s.ForEach(ctx, func(v T) error {
		last = v
		seen = true
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	if !seen {
		var zero T
		return zero, gserrors.ErrEmptyStream
	}
	return last, nil
}

// ToSlice runs the stream to completion and collects every element.
func (s Stream[T]) ToSlice(ctx context.Context) ([]T, error) {
	var out []T
	err := s.ForEach(ctx, func(v T) error {
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
