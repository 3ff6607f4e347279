package benchmark

import (
	"context"
	"strconv"
	"testing"

	"github.com/vnykmshr/gostream/pkg/stream/aggregate"
	"github.com/vnykmshr/gostream/pkg/stream/combine"
	"github.com/vnykmshr/gostream/pkg/stream/core"
	"github.com/vnykmshr/gostream/pkg/stream/create"
	"github.com/vnykmshr/gostream/pkg/stream/selection"
	"github.com/vnykmshr/gostream/pkg/stream/transform"
)

// BenchmarkActivation measures the cost of opening and releasing an
// activation without consuming it.
func BenchmarkActivation(b *testing.B) {
	sizes := []int{10, 100, 1000, 10000}

	for _, size := range sizes {
		data := make([]int, size)
		for i := range data {
			data[i] = i
		}
		s := create.FromSlice(data)

		b.Run(sizeLabel(size), func(b *testing.B) {
			b.ReportAllocs()
			ctx := context.Background()
			for i := 0; i < b.N; i++ {
				st, err := s.Open(ctx)
				if err != nil {
					b.Fatal(err)
				}
				_ = st.Close()
			}
		})
	}
}

// BenchmarkFilter measures filter throughput.
func BenchmarkFilter(b *testing.B) {
	sizes := []int{100, 1000, 10000}

	for _, size := range sizes {
		data := make([]int, size)
		for i := range data {
			data[i] = i
		}
		s := selection.Filter(create.FromSlice(data), func(n int) bool { return n%2 == 0 })

		b.Run(sizeLabel(size), func(b *testing.B) {
			b.ReportAllocs()
			ctx := context.Background()
			for i := 0; i < b.N; i++ {
				if _, err := s.ToSlice(ctx); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkMap measures map throughput.
func BenchmarkMap(b *testing.B) {
	sizes := []int{100, 1000, 10000}

	for _, size := range sizes {
		data := make([]int, size)
		for i := range data {
			data[i] = i
		}
		s := combine.Map(create.FromSlice(data), func(n int) int { return n * 2 })

		b.Run(sizeLabel(size), func(b *testing.B) {
			b.ReportAllocs()
			ctx := context.Background()
			for i := 0; i < b.N; i++ {
				if _, err := s.ToSlice(ctx); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkChainedOperations measures a filter+map+reduce pipeline.
func BenchmarkChainedOperations(b *testing.B) {
	sizes := []int{100, 1000, 10000}

	for _, size := range sizes {
		data := make([]int, size)
		for i := range data {
			data[i] = i
		}
		s := aggregate.Reduce(
			combine.Map(
				selection.Filter(create.FromSlice(data), func(n int) bool { return n%2 == 0 }),
				func(n int) int { return n * 2 },
			),
			func(a, b int) int { return a + b },
		)

		b.Run(sizeLabel(size), func(b *testing.B) {
			b.ReportAllocs()
			ctx := context.Background()
			for i := 0; i < b.N; i++ {
				if _, err := s.Last(ctx); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkPrefetch measures the overhead of the prefetch buffer against
// direct consumption.
func BenchmarkPrefetch(b *testing.B) {
	data := make([]int, 1000)
	for i := range data {
		data[i] = i
	}

	b.Run("direct", func(b *testing.B) {
		b.ReportAllocs()
		ctx := context.Background()
		s := create.FromSlice(data)
		for i := 0; i < b.N; i++ {
			if _, err := s.ToSlice(ctx); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("prefetched", func(b *testing.B) {
		b.ReportAllocs()
		ctx := context.Background()
		s := transform.Prefetch(create.FromSlice(data), 64)
		for i := 0; i < b.N; i++ {
			if _, err := s.ToSlice(ctx); err != nil {
				b.Fatal(err)
			}
		}
	})
}

// BenchmarkPipeDepth measures the per-operator overhead of deep pipelines.
func BenchmarkPipeDepth(b *testing.B) {
	depths := []int{1, 4, 16}
	identity := combine.MapOp(func(n int) int { return n })

	for _, depth := range depths {
		s := create.Range(0, 1000, 1)
		ops := make([]core.Operator[int], depth)
		for i := range ops {
			ops[i] = identity
		}
		piped := s.Pipe(ops...)

		b.Run("depth_"+strconv.Itoa(depth), func(b *testing.B) {
			b.ReportAllocs()
			ctx := context.Background()
			for i := 0; i < b.N; i++ {
				if _, err := piped.ToSlice(ctx); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// sizeLabel returns a readable label for benchmark sizes.
func sizeLabel(size int) string {
	switch {
	case size >= 1000000:
		return strconv.Itoa(size/1000000) + "M"
	case size >= 1000:
		return strconv.Itoa(size/1000) + "k"
	default:
		return strconv.Itoa(size)
	}
}
