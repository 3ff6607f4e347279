package transform_test

import (
	"errors"
	"testing"

	"github.com/vnykmshr/gostream/internal/testutil"
	gserrors "github.com/vnykmshr/gostream/pkg/common/errors"
	"github.com/vnykmshr/gostream/pkg/stream/create"
	"github.com/vnykmshr/gostream/pkg/stream/selection"
	"github.com/vnykmshr/gostream/pkg/stream/transform"
)

func TestEnumerate(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	got, err := transform.Enumerate(create.FromSlice([]string{"a", "b", "c"}), 10, 5).ToSlice(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(got), 3)
	testutil.AssertEqual(t, got[0], transform.Indexed[string]{Index: 10, Value: "a"})
	testutil.AssertEqual(t, got[1], transform.Indexed[string]{Index: 15, Value: "b"})
	testutil.AssertEqual(t, got[2], transform.Indexed[string]{Index: 20, Value: "c"})
}

func TestCycle(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	t.Run("repeats by reactivation", func(t *testing.T) {
		var tr testutil.Tracker
		s := transform.Cycle(testutil.Tracked(create.FromSlice([]int{1, 2}), &tr))

		got, err := selection.Take(s, 5).ToSlice(ctx)
		testutil.AssertNoError(t, err)
		testutil.AssertSliceEqual(t, got, []int{1, 2, 1, 2, 1})
		if tr.Opened() < 2 {
			t.Errorf("cycle should reactivate the source, opened %d times", tr.Opened())
		}
	})

	t.Run("propagates errors", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := selection.Take(transform.Cycle(testutil.FailAfter([]int{1}, boom)), 5).ToSlice(ctx)
		testutil.AssertErrorIs(t, err, boom)
	})
}

func TestChunks(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	t.Run("even groups", func(t *testing.T) {
		got, err := transform.Chunks(create.Range(0, 6, 1), 2).ToSlice(ctx)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, len(got), 3)
		testutil.AssertSliceEqual(t, got[0], []int{0, 1})
		testutil.AssertSliceEqual(t, got[2], []int{4, 5})
	})

	t.Run("ragged tail", func(t *testing.T) {
		got, err := transform.Chunks(create.Range(0, 5, 1), 2).ToSlice(ctx)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, len(got), 3)
		testutil.AssertSliceEqual(t, got[2], []int{4})
	})

	t.Run("non-positive size rejected", func(t *testing.T) {
		_, err := transform.Chunks(create.Just(1), 0).Open(ctx)
		testutil.AssertErrorIs(t, err, gserrors.ErrInvalidConfiguration)
	})
}

func TestTap(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	var seen []int
	got, err := transform.Tap(create.Range(1, 4, 1), func(v int) {
		seen = append(seen, v)
	}).ToSlice(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, got, []int{1, 2, 3})
	testutil.AssertSliceEqual(t, seen, got)
}

func TestPrefetch(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	t.Run("forwards everything in order", func(t *testing.T) {
		got, err := transform.Prefetch(create.Range(0, 100, 1), 8).ToSlice(ctx)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, len(got), 100)
		testutil.AssertEqual(t, got[0], 0)
		testutil.AssertEqual(t, got[99], 99)
	})

	t.Run("propagates errors", func(t *testing.T) {
		boom := errors.New("boom")
		var got []int
		err := transform.Prefetch(testutil.FailAfter([]int{1, 2}, boom), 4).
			ForEach(ctx, func(v int) error {
				got = append(got, v)
				return nil
			})
		testutil.AssertErrorIs(t, err, boom)
		testutil.AssertSliceEqual(t, got, []int{1, 2})
	})

	t.Run("releases the source on early close", func(t *testing.T) {
		var tr testutil.Tracker
		s := transform.Prefetch(testutil.Tracked(create.Count(0, 1), &tr), 4)

		st, err := s.Open(ctx)
		testutil.AssertNoError(t, err)
		_, _, err = st.Next(ctx)
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, st.Close())
		testutil.AssertEqual(t, tr.Closed(), 1)
	})

	t.Run("non-positive size rejected", func(t *testing.T) {
		_, err := transform.Prefetch(create.Just(1), 0).Open(ctx)
		testutil.AssertErrorIs(t, err, gserrors.ErrInvalidConfiguration)
	})
}
