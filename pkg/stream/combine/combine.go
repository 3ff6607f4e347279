package combine

import (
	"context"
	stderrors "errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	gserrors "github.com/vnykmshr/gostream/pkg/common/errors"
	"github.com/vnykmshr/gostream/pkg/stream/advanced"
	"github.com/vnykmshr/gostream/pkg/stream/core"
	"github.com/vnykmshr/gostream/pkg/stream/create"
)

// Chain concatenates the given streams: each is activated and exhausted
// before the next one starts, in argument order.
func Chain[T any](sources ...core.Stream[T]) core.Stream[T] {
	return advanced.Concat(create.FromSlice(sources))
}

// Merge consumes all the given streams concurrently and forwards their
// elements in arrival order. The merged stream ends when every input is
// exhausted; the first failure cancels the remaining inputs and propagates.
func Merge[T any](sources ...core.Stream[T]) core.Stream[T] {
	return advanced.Flatten(create.FromSlice(sources))
}

// errExhausted signals inside a zip round that an input ran out; it never
// escapes to the caller.
var errExhausted = stderrors.New("zip input exhausted")

// Zip pulls one element from every input per round, concurrently, and emits
// the aligned tuple as a slice indexed like the inputs. The zipped stream
// ends with the shortest input; pending pulls of that round are canceled
// rather than awaited. At least one input is required.
func Zip[T any](sources ...core.Stream[T]) core.Stream[[]T] {
	return core.New(func(ctx context.Context) (core.Source[[]T], error) {
		if len(sources) == 0 {
			return nil, fmt.Errorf("zip needs at least one input: %w",
				gserrors.ErrInvalidConfiguration)
		}

		streamers := make([]*core.Streamer[T], 0, len(sources))
		closeAll := func() error {
			var err error
			for _, st := range streamers {
				if cerr := st.Close(); cerr != nil {
					err = stderrors.Join(err, cerr)
				}
			}
			return err
		}

		for _, s := range sources {
			st, err := s.Open(ctx)
			if err != nil {
				return nil, stderrors.Join(err, closeAll())
			}
			streamers = append(streamers, st)
		}

		exhausted := false
		return core.NewSource(func(ctx context.Context) ([]T, bool, error) {
			if exhausted {
				return nil, false, nil
			}

			tuple := make([]T, len(streamers))
			g, gctx := errgroup.WithContext(ctx)
			for i, st := range streamers {
				i, st := i, st
				g.Go(func() error {
					v, ok, err := st.Next(gctx)
					if err != nil {
						return err
					}
					if !ok {
						return errExhausted
					}
					tuple[i] = v
					return nil
				})
			}

			if err := g.Wait(); err != nil {
				if stderrors.Is(err, errExhausted) {
					exhausted = true
					return nil, false, nil
				}
				return nil, false, err
			}
			return tuple, true, nil
		}, closeAll), nil
	})
}

// update carries one fresh value through the merged fan-in of ZipLatest.
type update[T any] struct {
	index int
	value T
}

// ZipLatest combines the inputs by emitting a snapshot of the most recent
// value of every input each time any input produces, starting once all
// inputs have produced at least once. The combined stream ends when every
// input is exhausted. At least one input is required.
func ZipLatest[T any](sources ...core.Stream[T]) core.Stream[[]T] {
	return core.New(func(ctx context.Context) (core.Source[[]T], error) {
		if len(sources) == 0 {
			return nil, fmt.Errorf("zip latest needs at least one input: %w",
				gserrors.ErrInvalidConfiguration)
		}

		tagged := make([]core.Stream[update[T]], len(sources))
		for i, s := range sources {
			i := i
			tagged[i] = Map(s, func(v T) update[T] {
				return update[T]{index: i, value: v}
			})
		}

		in, err := Merge(tagged...).Open(ctx)
		if err != nil {
			return nil, err
		}

		latest := make([]T, len(sources))
		seen := make([]bool, len(sources))
		ready := 0

		return core.NewSource(func(ctx context.Context) ([]T, bool, error) {
			for {
				u, ok, err := in.Next(ctx)
				if err != nil || !ok {
					return nil, false, err
				}
				if !seen[u.index] {
					seen[u.index] = true
					ready++
				}
				latest[u.index] = u.value
				if ready < len(sources) {
					continue
				}
				snapshot := make([]T, len(latest))
				copy(snapshot, latest)
				return snapshot, true, nil
			}
		}, in.Close), nil
	})
}
