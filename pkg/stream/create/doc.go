/*
Package create provides origin operators: streams built from plain values,
slices, channels and counters rather than from an upstream stream.

All constructors are pure factories. Nothing is produced until the returned
stream is activated, and every activation is independent:

	xs := create.Range(0, 5, 1)

	first, _ := xs.ToSlice(ctx) // [0 1 2 3 4]
	again, _ := xs.ToSlice(ctx) // [0 1 2 3 4], a fresh run

The exceptions to full independence are FromChannel and FromSource:
activations share the underlying channel or source, since neither can be
rewound.
*/
package create
