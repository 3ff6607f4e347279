package transform

import (
	"context"
	"runtime"
	"sync"

	"github.com/vnykmshr/gostream/pkg/common/validation"
	"github.com/vnykmshr/gostream/pkg/stream/core"
)

// Indexed pairs an element with its position in the stream.
type Indexed[T any] struct {
	Index int
	Value T
}

// Enumerate pairs every element with an index computed from a starting
// point and an increment.
func Enumerate[T any](s core.Stream[T], start, step int) core.Stream[Indexed[T]] {
	return core.Pipable(func(_ context.Context, in *core.Streamer[T]) (core.Source[Indexed[T]], error) {
		index := start
		return core.SourceFunc[Indexed[T]](func(ctx context.Context) (Indexed[T], bool, error) {
			var zero Indexed[T]
			v, ok, err := in.Next(ctx)
			if err != nil || !ok {
				return zero, false, err
			}
			out := Indexed[T]{Index: index, Value: v}
			index += step
			return out, true, nil
		}), nil
	})(s)
}

// Cycle iterates indefinitely over the stream by re-activating it each time
// it is exhausted. No buffering is performed; the stream's own repeatability
// provides the elements again.
func Cycle[T any](s core.Stream[T]) core.Stream[T] {
	return CycleOp[T]()(s)
}

// CycleOp is the pipe form of Cycle.
func CycleOp[T any]() core.Operator[T] {
	return func(source core.Stream[T]) core.Stream[T] {
		return core.New(func(ctx context.Context) (core.Source[T], error) {
			var current *core.Streamer[T]
			closeCurrent := func() error {
				if current == nil {
					return nil
				}
				err := current.Close()
				current = nil
				return err
			}

			return core.NewSource(func(ctx context.Context) (T, bool, error) {
				var zero T
				for {
					if err := ctx.Err(); err != nil {
						return zero, false, err
					}
					if current == nil {
						st, err := source.Open(ctx)
						if err != nil {
							return zero, false, err
						}
						current = st
					}
					v, ok, err := current.Next(ctx)
					if err != nil {
						return zero, false, err
					}
					if ok {
						return v, true, nil
					}
					if err := closeCurrent(); err != nil {
						return zero, false, err
					}
					// Yield so cycling over an empty stream cannot
					// monopolize the scheduler.
					runtime.Gosched()
				}
			}, closeCurrent), nil
		})
	}
}

// Chunks groups elements into slices of size n; the last chunk may hold
// fewer. A non-positive n is a configuration error.
func Chunks[T any](s core.Stream[T], n int) core.Stream[[]T] {
	return core.Pipable(func(_ context.Context, in *core.Streamer[T]) (core.Source[[]T], error) {
		if err := validation.Positive("chunks", "n", n); err != nil {
			return nil, err
		}
		return core.SourceFunc[[]T](func(ctx context.Context) ([]T, bool, error) {
			chunk := make([]T, 0, n)
			for len(chunk) < n {
				v, ok, err := in.Next(ctx)
				if err != nil {
					return nil, false, err
				}
				if !ok {
					break
				}
				chunk = append(chunk, v)
			}
			if len(chunk) == 0 {
				return nil, false, nil
			}
			return chunk, true, nil
		}), nil
	})(s)
}

// Tap performs an action for each element without modifying the stream.
func Tap[T any](s core.Stream[T], action func(T)) core.Stream[T] {
	return TapOp[T](action)(s)
}

// TapOp is the pipe form of Tap.
func TapOp[T any](action func(T)) core.Operator[T] {
	return core.Pipable(func(_ context.Context, in *core.Streamer[T]) (core.Source[T], error) {
		return core.SourceFunc[T](func(ctx context.Context) (T, bool, error) {
			v, ok, err := in.Next(ctx)
			if err != nil || !ok {
				return v, ok, err
			}
			action(v)
			return v, true, nil
		}), nil
	})
}

// Prefetch pulls ahead of the consumer into a bounded buffer, decoupling the
// source's production from downstream consumption. A non-positive size is a
// configuration error.
func Prefetch[T any](s core.Stream[T], size int) core.Stream[T] {
	return PrefetchOp[T](size)(s)
}

// PrefetchOp is the pipe form of Prefetch.
func PrefetchOp[T any](size int) core.Operator[T] {
	return func(source core.Stream[T]) core.Stream[T] {
		return core.New(func(ctx context.Context) (core.Source[T], error) {
			if err := validation.Positive("prefetch", "size", size); err != nil {
				return nil, err
			}

			in, err := source.Open(ctx)
			if err != nil {
				return nil, err
			}

			p := &prefetchSource[T]{
				in:     in,
				buffer: make(chan prefetched[T], size),
			}
			p.ctx, p.cancel = context.WithCancel(context.Background())
			p.wg.Add(1)
			go p.pump()
			return p, nil
		})
	}
}

type prefetched[T any] struct {
	value T
	err   error
}

// prefetchSource owns the upstream streamer through its pump goroutine: the
// pump closes the streamer on exit, and Close waits for that acknowledgement.
type prefetchSource[T any] struct {
	in     *core.Streamer[T]
	buffer chan prefetched[T]
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	closeMu  sync.Mutex
	closeErr error
}

func (p *prefetchSource[T]) pump() {
	defer p.wg.Done()
	defer close(p.buffer)
	defer func() {
		p.closeMu.Lock()
		p.closeErr = p.in.Close()
		p.closeMu.Unlock()
	}()

	for {
		v, ok, err := p.in.Next(p.ctx)
		if err != nil {
			select {
			case p.buffer <- prefetched[T]{err: err}:
			case <-p.ctx.Done():
			}
			return
		}
		if !ok {
			return
		}
		select {
		case p.buffer <- prefetched[T]{value: v}:
		case <-p.ctx.Done():
			return
		}
	}
}

func (p *prefetchSource[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	select {
	case item, ok := <-p.buffer:
		if !ok {
			return zero, false, nil
		}
		if item.err != nil {
			return zero, false, item.err
		}
		return item.value, true, nil
	case <-ctx.Done():
		return zero, false, ctx.Err()
	}
}

func (p *prefetchSource[T]) Close() error {
	p.cancel()
	p.wg.Wait()
	p.closeMu.Lock()
	defer p.closeMu.Unlock()
	return p.closeErr
}
