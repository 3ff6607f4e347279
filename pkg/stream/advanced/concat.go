package advanced

import (
	"context"
	stderrors "errors"

	"github.com/vnykmshr/gostream/pkg/stream/core"
)

// concatSource walks a stream of streams strictly in order. Unlike the
// concurrent runtimes it needs no goroutines: the consumer's own pulls drive
// both the outer stream and the single open inner activation.
type concatSource[T any] struct {
	outer *core.Streamer[core.Stream[T]]
	inner *core.Streamer[T]
}

func (c *concatSource[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	for {
		if c.inner == nil {
			s, ok, err := c.outer.Next(ctx)
			if err != nil {
				return zero, false, err
			}
			if !ok {
				return zero, false, nil
			}
			st, err := s.Open(ctx)
			if err != nil {
				return zero, false, err
			}
			c.inner = st
		}

		v, ok, err := c.inner.Next(ctx)
		if err != nil {
			return zero, false, err
		}
		if ok {
			return v, true, nil
		}

		inner := c.inner
		c.inner = nil
		if err := inner.Close(); err != nil {
			return zero, false, err
		}
	}
}

func (c *concatSource[T]) Close() error {
	var err error
	if c.inner != nil {
		err = c.inner.Close()
		c.inner = nil
	}
	if cerr := c.outer.Close(); cerr != nil {
		err = stderrors.Join(err, cerr)
	}
	return err
}
