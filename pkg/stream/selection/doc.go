/*
Package selection provides operators that forward a subset of an upstream
stream: take/skip families, index and slice extraction, and predicate-based
filtering.

Type-preserving operators come in two equivalent forms: a direct call and a
pipe form suffixed with Op:

	ys := selection.Take(xs, 3)
	ys := xs.Pipe(selection.TakeOp[int](3))

Slice and Item follow sequence slicing conventions: negative indices count
from the end of the stream (which requires buffering up to that many
elements), the stop bound is exclusive, and selection.End means "no stop
bound". Negative steps are not supported.
*/
package selection
