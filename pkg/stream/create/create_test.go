package create_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vnykmshr/gostream/internal/testutil"
	gserrors "github.com/vnykmshr/gostream/pkg/common/errors"
	"github.com/vnykmshr/gostream/pkg/stream/core"
	"github.com/vnykmshr/gostream/pkg/stream/create"
	"github.com/vnykmshr/gostream/pkg/stream/selection"
)

func TestJust(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	got, err := create.Just(42).ToSlice(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, got, []int{42})
}

func TestEmpty(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	got, err := create.Empty[int]().ToSlice(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(got), 0)
}

func TestThrow(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	boom := errors.New("boom")
	_, err := create.Throw[int](boom).ToSlice(ctx)
	testutil.AssertErrorIs(t, err, boom)
}

func TestNeverHonorsContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := create.Never[int]().ToSlice(ctx)
	testutil.AssertErrorIs(t, err, context.DeadlineExceeded)
}

func TestFromSlice(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	s := create.FromSlice([]string{"a", "b", "c"})

	t.Run("yields in order", func(t *testing.T) {
		got, err := s.ToSlice(ctx)
		testutil.AssertNoError(t, err)
		testutil.AssertSliceEqual(t, got, []string{"a", "b", "c"})
	})

	t.Run("activations are independent", func(t *testing.T) {
		first, err := s.ToSlice(ctx)
		testutil.AssertNoError(t, err)
		second, err := s.ToSlice(ctx)
		testutil.AssertNoError(t, err)
		testutil.AssertSliceEqual(t, second, first)
	})
}

func TestFromChannel(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	ch := make(chan int, 3)
	for _, v := range []int{1, 2, 3} {
		ch <- v
	}
	close(ch)

	got, err := create.FromChannel(ch).ToSlice(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, got, []int{1, 2, 3})
}

func TestGenerate(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	n := 0
	s := create.Generate(func() int {
		n++
		return n * n
	})

	got, err := selection.Take(s, 3).ToSlice(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, got, []int{1, 4, 9})
}

func TestRepeat(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	t.Run("bounded", func(t *testing.T) {
		got, err := create.Repeat("x", 3).ToSlice(ctx)
		testutil.AssertNoError(t, err)
		testutil.AssertSliceEqual(t, got, []string{"x", "x", "x"})
	})

	t.Run("zero times", func(t *testing.T) {
		got, err := create.Repeat("x", 0).ToSlice(ctx)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, len(got), 0)
	})

	t.Run("unbounded", func(t *testing.T) {
		got, err := selection.Take(create.Repeat(7, -1), 4).ToSlice(ctx)
		testutil.AssertNoError(t, err)
		testutil.AssertSliceEqual(t, got, []int{7, 7, 7, 7})
	})
}

func TestRange(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	t.Run("ascending", func(t *testing.T) {
		got, err := create.Range(0, 5, 1).ToSlice(ctx)
		testutil.AssertNoError(t, err)
		testutil.AssertSliceEqual(t, got, []int{0, 1, 2, 3, 4})
	})

	t.Run("with step", func(t *testing.T) {
		got, err := create.Range(1, 10, 3).ToSlice(ctx)
		testutil.AssertNoError(t, err)
		testutil.AssertSliceEqual(t, got, []int{1, 4, 7})
	})

	t.Run("descending", func(t *testing.T) {
		got, err := create.Range(5, 0, -2).ToSlice(ctx)
		testutil.AssertNoError(t, err)
		testutil.AssertSliceEqual(t, got, []int{5, 3, 1})
	})

	t.Run("zero step rejected at activation", func(t *testing.T) {
		_, err := create.Range(0, 5, 0).Open(ctx)
		testutil.AssertErrorIs(t, err, gserrors.ErrInvalidConfiguration)
	})
}

func TestCount(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	got, err := selection.Take(create.Count(10, 5), 3).ToSlice(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, got, []int{10, 15, 20})
}

func TestRepeatEvery(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	start := time.Now()
	got, err := create.RepeatEvery("tick", 3, 20*time.Millisecond).ToSlice(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, got, []string{"tick", "tick", "tick"})

	// Two waits between three elements.
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("finished after %v, want at least 40ms", elapsed)
	}
}

func TestRangeEvery(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	t.Run("paced elements", func(t *testing.T) {
		got, err := create.RangeEvery(0, 3, 1, 5*time.Millisecond).ToSlice(ctx)
		testutil.AssertNoError(t, err)
		testutil.AssertSliceEqual(t, got, []int{0, 1, 2})
	})

	t.Run("zero step rejected at activation", func(t *testing.T) {
		_, err := create.RangeEvery(0, 3, 0, time.Millisecond).Open(ctx)
		testutil.AssertErrorIs(t, err, gserrors.ErrInvalidConfiguration)
	})
}

func TestFromSource(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	closed := false
	i := 0
	source := core.NewSource(func(ctx context.Context) (int, bool, error) {
		if i >= 2 {
			return 0, false, nil
		}
		i++
		return i, true, nil
	}, func() error {
		closed = true
		return nil
	})

	got, err := create.FromSource(source).ToSlice(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, got, []int{1, 2})
	if !closed {
		t.Error("adopted source must be closed by the activation")
	}
}

func TestPreserve(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	closed := false
	source := core.NewSource(func(ctx context.Context) (int, bool, error) {
		return 0, false, nil
	}, func() error {
		closed = true
		return nil
	})

	st, err := create.Preserve(source).Open(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, st.Close())

	if closed {
		t.Error("preserved source must not be closed by the activation")
	}
}
