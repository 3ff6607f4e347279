/*
Package advanced provides the combinators for streams of higher order:
given an outer stream whose elements are themselves streams, they produce a
single flattened stream of elements.

Three consumption disciplines are available:

  - Concat: inner streams are activated and exhausted strictly one after
    another, in the outer's order. At most one inner activation is ever open.
  - Flatten: every inner stream is activated as soon as the outer produces
    it and all of them are consumed concurrently; elements are forwarded in
    arrival order. WithTaskLimit bounds the number of concurrently running
    inner streams.
  - Switch: only the most recent inner stream is consumed; a newly arriving
    inner stream cancels and releases the previous one before any of its
    elements are forwarded.

The concurrent forms run one branch goroutine per active inner stream, all
publishing into a single hand-off channel consumed by the merged stream.
The first branch failure wins: it cancels every other branch and propagates,
and errors produced by the cancelled siblings are discarded. Releasing the
merged activation cancels all branches and waits until every one of them has
closed its own activation before returning, so no resources outlive the
combinator, even through nested combinators.

The *Map forms (ConcatMap, FlatMap, SwitchMap) derive the inner streams by
applying a function to each element of a regular stream.
*/
package advanced
