/*
Package gostream provides composable, resource-safe pipelines over
asynchronous sequences.

A pipeline is described once as an immutable Stream value and can be run any
number of times; every run produces a fresh, independent iteration whose
resources are released exactly once, even under early termination, errors,
or cancellation.

Core (pkg/stream):
  - core: Stream descriptors, Streamer activation contexts, operator helpers
  - create: origin operators (Just, Range, Repeat, FromSlice, ...)
  - selection: take/skip/slice/filter family
  - transform: enumerate, cycle, chunks, prefetch, tap
  - aggregate: accumulate, reduce, list
  - combine: chain, zip, merge, map, ziplatest
  - advanced: concat, flatten, switch and their *Map forms
  - timing: delay, timeout, spaceout

Support:
  - pkg/common: shared errors, context helpers and validation
  - pkg/metrics: Prometheus instrumentation for stream components

Example usage:

	import (
		"github.com/vnykmshr/gostream/pkg/stream/create"
		"github.com/vnykmshr/gostream/pkg/stream/selection"
	)

	xs := create.Range(0, 10, 1)
	ys := xs.Pipe(selection.FilterOp(func(x int) bool { return x%2 == 0 }))

	last, err := ys.Last(ctx) // runs the pipeline, returns 8
*/
package gostream
