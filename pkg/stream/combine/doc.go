/*
Package combine provides operators that join several streams into one, plus
the element-wise Map family.

  - Chain concatenates streams sequentially, in argument order.
  - Merge consumes all streams concurrently, forwarding in arrival order.
  - Zip pulls one element from every stream per round and emits the tuple;
    the shortest input ends the zipped stream and the remaining inputs are
    not awaited further.
  - ZipLatest emits a snapshot of the latest value of every input whenever
    any input produces, once all inputs have produced at least once.

Map transforms each element through a function; MapCtx lets the function
observe cancellation. Because a Go method cannot introduce a new type
parameter, the type-changing transforms are free functions while MapOp
offers the pipe form for same-type transforms.
*/
package combine
