package advanced

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/vnykmshr/gostream/pkg/metrics"
	"github.com/vnykmshr/gostream/pkg/stream/core"
)

// event is a single hand-off from a branch task to the fan-in loop.
// Exactly one of the three kinds is set: an item, a completion, or a failure.
type event[T any] struct {
	item T
	ok   bool
	done bool
	err  error
}

// flattenSource is the concurrent fan-in runtime shared by Flatten and
// Merge. One goroutine consumes the outer stream and spawns one branch
// goroutine per inner stream; every goroutine publishes into the single
// unbuffered events channel, so each item is one atomic hand-off to the
// consumer and branches are naturally backpressured.
//
// Branch goroutines exclusively own their streamer and close it on exit.
// Close cancels the runtime context and waits for every goroutine to
// acknowledge before returning, which upholds the zero-leaked-resources
// invariant through nested combinators.
type flattenSource[T any] struct {
	ctx    context.Context
	cancel context.CancelFunc
	events chan event[T]
	wg     sync.WaitGroup
	sem    *semaphore.Weighted

	reg      *metrics.Registry
	operator string

	// pending counts the outer pump plus every spawned branch; the merged
	// stream is exhausted once it drops to zero.
	pending atomic.Int64

	closeMu  sync.Mutex
	closeErr error
}

func newFlattenSource[T any](outer *core.Streamer[core.Stream[T]], o options) *flattenSource[T] {
	f := &flattenSource[T]{
		events:   make(chan event[T]),
		reg:      o.reg,
		operator: o.operator,
	}
	// The runtime context is detached from the activation context: branch
	// lifetimes are bound to the combinator's own activation, not to the
	// context of any single Next call.
	f.ctx, f.cancel = context.WithCancel(context.Background())
	if o.taskLimit > 0 {
		f.sem = semaphore.NewWeighted(int64(o.taskLimit))
	}
	f.pending.Store(1)
	f.wg.Add(1)
	go f.outerPump(outer)
	return f
}

func (f *flattenSource[T]) outerPump(outer *core.Streamer[core.Stream[T]]) {
	defer f.wg.Done()
	defer f.recordClose(outer.Close)

	for {
		inner, ok, err := outer.Next(f.ctx)
		if err != nil {
			f.publish(event[T]{err: err})
			return
		}
		if !ok {
			f.publish(event[T]{done: true})
			return
		}

		if f.sem != nil {
			if err := f.sem.Acquire(f.ctx, 1); err != nil {
				return // canceled while waiting for a slot
			}
		}

		st, err := inner.Open(f.ctx)
		if err != nil {
			if f.sem != nil {
				f.sem.Release(1)
			}
			f.publish(event[T]{err: err})
			return
		}

		if f.reg != nil {
			f.reg.BranchesSpawned.WithLabelValues(f.operator).Inc()
			f.reg.BranchesActive.WithLabelValues(f.operator).Inc()
		}
		f.pending.Add(1)
		f.wg.Add(1)
		go f.branchPump(st)
	}
}

func (f *flattenSource[T]) branchPump(st *core.Streamer[T]) {
	defer f.wg.Done()
	defer f.recordClose(st.Close)
	if f.sem != nil {
		defer f.sem.Release(1)
	}
	if f.reg != nil {
		defer f.reg.BranchesActive.WithLabelValues(f.operator).Dec()
	}

	for {
		v, ok, err := st.Next(f.ctx)
		if err != nil {
			f.publish(event[T]{err: err})
			return
		}
		if !ok {
			f.publish(event[T]{done: true})
			return
		}
		if !f.publish(event[T]{item: v, ok: true}) {
			return
		}
	}
}

// publish hands an event to the fan-in loop, aborting if the runtime is
// being torn down. Returns false when the hand-off did not happen.
func (f *flattenSource[T]) publish(e event[T]) bool {
	select {
	case f.events <- e:
		return true
	case <-f.ctx.Done():
		return false
	}
}

// recordClose releases a streamer from a pump goroutine, keeping the first
// close failure for Close to report.
func (f *flattenSource[T]) recordClose(close func() error) {
	if err := close(); err != nil {
		f.closeMu.Lock()
		if f.closeErr == nil {
			f.closeErr = err
		}
		f.closeMu.Unlock()
	}
}

func (f *flattenSource[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	for {
		select {
		case e := <-f.events:
			switch {
			case e.err != nil:
				// First failure wins; Close tears the branches down and
				// their subsequent errors are discarded.
				return zero, false, e.err
			case e.done:
				if f.pending.Add(-1) == 0 {
					return zero, false, nil
				}
			default:
				return e.item, true, nil
			}
		case <-ctx.Done():
			return zero, false, ctx.Err()
		}
	}
}

func (f *flattenSource[T]) Close() error {
	f.cancel()
	f.wg.Wait()
	f.closeMu.Lock()
	defer f.closeMu.Unlock()
	return f.closeErr
}

// switchSource consumes an outer stream of streams, forwarding elements of
// the most recent inner stream only. The outer pump cancels and awaits the
// release of the superseded inner before opening its successor.
type switchSource[T any] struct {
	ctx    context.Context
	cancel context.CancelFunc
	events chan event[T]
	wg     sync.WaitGroup

	closeMu  sync.Mutex
	closeErr error
}

func newSwitchSource[T any](outer *core.Streamer[core.Stream[T]]) *switchSource[T] {
	s := &switchSource[T]{
		events: make(chan event[T]),
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.wg.Add(1)
	go s.outerPump(outer)
	return s
}

func (s *switchSource[T]) outerPump(outer *core.Streamer[core.Stream[T]]) {
	defer s.wg.Done()
	defer s.recordClose(outer.Close)

	var innerCancel context.CancelFunc
	var innerDone chan struct{}

	// stopInner cancels the live inner branch and waits until it has
	// released its activation.
	stopInner := func() {
		if innerCancel == nil {
			return
		}
		innerCancel()
		<-innerDone
		innerCancel = nil
		innerDone = nil
	}
	defer stopInner()

	for {
		inner, ok, err := outer.Next(s.ctx)
		if err != nil {
			stopInner()
			s.publish(event[T]{err: err})
			return
		}
		if !ok {
			// Outer exhausted: the live inner drains naturally.
			if innerDone != nil {
				<-innerDone
				innerCancel = nil
			}
			s.publish(event[T]{done: true})
			return
		}

		stopInner()

		ictx, icancel := context.WithCancel(s.ctx)
		st, err := inner.Open(ictx)
		if err != nil {
			icancel()
			s.publish(event[T]{err: err})
			return
		}

		done := make(chan struct{})
		innerCancel, innerDone = icancel, done
		s.wg.Add(1)
		go s.innerPump(ictx, st, done)
	}
}

func (s *switchSource[T]) innerPump(ctx context.Context, st *core.Streamer[T], done chan struct{}) {
	defer s.wg.Done()
	defer close(done)
	defer s.recordClose(st.Close)

	for {
		v, ok, err := st.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return // superseded or torn down: discard the induced error
			}
			select {
			case s.events <- event[T]{err: err}:
			case <-ctx.Done():
			}
			return
		}
		if !ok {
			return
		}
		select {
		case s.events <- event[T]{item: v, ok: true}:
		case <-ctx.Done():
			return
		}
	}
}

func (s *switchSource[T]) publish(e event[T]) bool {
	select {
	case s.events <- e:
		return true
	case <-s.ctx.Done():
		return false
	}
}

func (s *switchSource[T]) recordClose(close func() error) {
	if err := close(); err != nil {
		s.closeMu.Lock()
		if s.closeErr == nil {
			s.closeErr = err
		}
		s.closeMu.Unlock()
	}
}

func (s *switchSource[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	select {
	case e := <-s.events:
		switch {
		case e.err != nil:
			return zero, false, e.err
		case e.done:
			return zero, false, nil
		default:
			return e.item, true, nil
		}
	case <-ctx.Done():
		return zero, false, ctx.Err()
	}
}

func (s *switchSource[T]) Close() error {
	s.cancel()
	s.wg.Wait()
	s.closeMu.Lock()
	defer s.closeMu.Unlock()
	return s.closeErr
}
