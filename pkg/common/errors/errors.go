// Package errors defines the error taxonomy shared by the gostream packages.
package errors

import "errors"

// Common error classes used across the gostream library.
//
// Errors raised by user-provided sources are always propagated unchanged so
// that callers can match them with errors.Is/errors.As; the sentinels below
// only cover faults produced by the library itself.

var (
	// ErrInvalidConfiguration indicates a malformed pipeline construction,
	// surfaced synchronously when the descriptor is activated.
	ErrInvalidConfiguration = errors.New("invalid stream configuration")

	// ErrStreamerNotOpen indicates that Next was called on a streamer that
	// was never opened through a stream activation.
	ErrStreamerNotOpen = errors.New("streamer is not open")

	// ErrStreamerClosed indicates that Next was called on a released streamer.
	ErrStreamerClosed = errors.New("streamer is closed")

	// ErrTimeout indicates that a timing operator's deadline elapsed before
	// the source produced an item.
	ErrTimeout = errors.New("stream timed out")

	// ErrEmptyStream indicates that a run-to-completion consumed a stream
	// that produced no elements.
	ErrEmptyStream = errors.New("stream is empty")
)

// IsUsage returns true if the error reports a violation of the streamer
// protocol (iterating before open or after close). These are programmer
// errors and are never retried.
func IsUsage(err error) bool {
	return errors.Is(err, ErrStreamerNotOpen) || errors.Is(err, ErrStreamerClosed)
}

// IsConfiguration returns true if the error reports a malformed pipeline
// construction.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}
