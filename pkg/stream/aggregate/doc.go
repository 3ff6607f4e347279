/*
Package aggregate provides reduction operators: running accumulation,
final reduction and collection into a slice.

Reductions are themselves streams, so they compose like any other operator;
combine them with Stream.Last to obtain the final value:

	sum, err := aggregate.Reduce(xs, func(a, b int) int { return a + b }).Last(ctx)
*/
package aggregate
