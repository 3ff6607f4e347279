/*
Package transform provides operators that reshape the elements of a stream:
enumeration, cycling, chunking, buffered prefetching and side-effecting taps.

Type-preserving operators expose an Op pipe form alongside the direct call:

	ys := xs.Pipe(transform.TapOp(func(v int) { log.Println(v) }))

Prefetch is the only operator in this package that runs its own goroutine:
it pulls ahead of the consumer into a bounded buffer, and releasing the
activation stops the pump and closes the upstream before returning.
*/
package transform
