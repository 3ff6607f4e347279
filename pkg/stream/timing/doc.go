/*
Package timing provides time-based flow control for streams.

  - Delay postpones the activation of a stream by a fixed duration.
  - Timeout bounds the wait for each element; when the deadline elapses the
    source is released and the stream fails with errors.ErrTimeout.
  - SpaceOut enforces a minimum interval between consecutive elements.

All waits are cancellable through the iteration context.
*/
package timing
