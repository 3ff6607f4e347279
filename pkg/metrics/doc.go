/*
Package metrics provides Prometheus instrumentation for gostream pipelines.

Instrumentation is opt-in: library operators carry no metrics on their own.
A pipeline is instrumented by piping it through core.Instrument, which
records activations, forwarded items, completions and failures under the
given stream name:

	reg := metrics.NewRegistry(prometheus.DefaultRegisterer)
	xs := create.Range(0, 100, 1).Pipe(core.Instrument[int](reg, "ingest"))

The DefaultRegistry registers against prometheus.DefaultRegisterer at
package init. Use NewRegistry with a custom prometheus.Registerer to avoid
global registration, for instance in tests.
*/
package metrics
