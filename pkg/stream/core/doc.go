/*
Package core provides the building blocks for composable, resource-safe
stream pipelines.

A Stream is an immutable, repeatable pipeline descriptor: it holds a factory
and activating it with Open produces a fresh iteration every time. A Streamer
is the activation context for one such iteration: it exclusively owns the
underlying Source and guarantees that its Close operation runs at most once,
on every exit path.

Core Concepts:

  - Stream[T]: pure factory, never iterates on its own. Activating the same
    stream twice yields two fully independent iterations.
  - Streamer[T]: singly-consumable iteration handle. Next is only valid while
    the streamer is open; Close is idempotent and releases the source.
  - Source[T]: the raw pull protocol. Next must honor context cancellation,
    since every call is a suspension point.

Basic usage:

	xs := core.New(func(ctx context.Context) (core.Source[int], error) {
		return someSource(), nil
	})

	st, err := xs.Open(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	for {
		v, ok, err := st.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		use(v)
	}

Terminal conveniences (ForEach, Last, ToSlice) open and release one
activation internally, so resources are never leaked even when the caller's
callback or context fails mid-iteration.

Operator construction:

Pipable wraps a raw function that derives a new Source from an activated
upstream streamer into a stream operator. The resulting operator is a pure
factory as well: calling it records intent without starting any iteration.
Same-type operators compose left to right with Pipe:

	ys := xs.Pipe(op1, op2) // identical to op2(op1(xs))
*/
package core
