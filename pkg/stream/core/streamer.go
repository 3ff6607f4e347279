package core

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	gserrors "github.com/vnykmshr/gostream/pkg/common/errors"
)

// Streamer states. The zero value of a Streamer is unopened; activation via
// Stream.Open produces an open streamer; Close moves it to closed exactly once.
const (
	stateUnopened int32 = iota
	stateOpen
	stateClosed
)

// Streamer is the activation context for one live iteration of a stream.
// It exclusively owns its underlying source: it is never copied or shared,
// though ownership may be handed across a goroutine boundary. Close releases
// the source at most once and is safe to call from any exit path.
//
// A Streamer is itself a Source, so it can be handed to operators that
// consume raw sources.
type Streamer[T any] struct {
	source    Source[T]
	state     atomic.Int32
	closeOnce sync.Once
	closeErr  error
}

// NewStreamer wraps an already-acquired source into an open streamer.
// Most callers should use Stream.Open instead.
func NewStreamer[T any](source Source[T]) *Streamer[T] {
	st := &Streamer[T]{source: source}
	st.state.Store(stateOpen)
	return st
}

// Next requests the next element from the underlying source. It is only
// valid while the streamer is open: calling it on an unopened or closed
// streamer is a protocol violation and fails with a usage error.
func (s *Streamer[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T

	switch s.state.Load() {
	case stateUnopened:
		return zero, false, gserrors.ErrStreamerNotOpen
	case stateClosed:
		return zero, false, gserrors.ErrStreamerClosed
	}

	return s.source.Next(ctx)
}

// Close releases the underlying source exactly once. Subsequent calls are
// no-ops returning the first close error. It is safe to close a streamer
// whose source never produced an item.
func (s *Streamer[T]) Close() error {
	s.closeOnce.Do(func() {
		prev := s.state.Swap(stateClosed)
		if prev == stateOpen && s.source != nil {
			s.closeErr = s.source.Close()
		}
	})
	return s.closeErr
}

// IsClosed returns true once the streamer has been released.
func (s *Streamer[T]) IsClosed() bool {
	return s.state.Load() == stateClosed
}

// CloseWith releases the streamer while an error is pending. The pending
// error takes priority; a close failure is attached as a secondary cause
// rather than substituted, so the original cause is never masked.
func (s *Streamer[T]) CloseWith(err error) error {
	cerr := s.Close()
	if err == nil {
		return cerr
	}
	if cerr == nil {
		return err
	}
	return errors.Join(err, cerr)
}
