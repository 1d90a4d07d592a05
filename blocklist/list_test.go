package blocklist

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenario(t *testing.T) {
	l := New[int](&Options{BlockCapacity: 3})

	for _, x := range []int{4, 3, 2, 1, 0} {
		l.InsertFirst(x)
		checkList(t, l)
	}
	checkContents(t, l, []int{0, 1, 2, 3, 4})

	for x := 5; x < 10; x++ {
		l.InsertLast(x)
		checkList(t, l)
	}
	checkContents(t, l, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})

	for i := range 10 {
		old, err := l.Set(i, i+10)
		require.NoError(t, err)
		require.Equal(t, i, old)
	}
	for i := range 10 {
		got, err := l.Get(i)
		require.NoError(t, err)
		require.Equal(t, i+10, got)
	}
	checkList(t, l)
}

func TestRoundTrip(t *testing.T) {
	for _, capacity := range []int{1, 2, 5, 25} {
		l := New[int](&Options{BlockCapacity: capacity})
		var expected []int

		for x := range 500 {
			if x%2 == 0 {
				l.InsertFirst(x)
				expected = slices.Insert(expected, 0, x)
			} else {
				l.InsertLast(x)
				expected = append(expected, x)
			}
		}

		checkList(t, l)
		checkContents(t, l, expected)
	}
}

func TestRandomOps(t *testing.T) {
	for _, capacity := range []int{1, 2, 3, 7, 16} {
		r := rand.New(rand.NewPCG(uint64(capacity), 1))
		l := New[int](&Options{BlockCapacity: capacity, MinLoadFactor: 0.4})
		var expected []int

		for step := range 3000 {
			x := step + 1000

			switch op := r.IntN(10); {
			case op < 4:
				at := r.IntN(len(expected) + 1)
				require.NoError(t, l.InsertAt(at, x))
				expected = slices.Insert(expected, at, x)

			case op == 4:
				l.InsertFirst(x)
				expected = slices.Insert(expected, 0, x)

			case op == 5:
				l.InsertLast(x)
				expected = append(expected, x)

			case op < 8:
				if len(expected) == 0 {
					continue
				}
				at := r.IntN(len(expected))
				got, err := l.RemoveAt(at)
				require.NoError(t, err)
				require.Equal(t, expected[at], got)
				expected = slices.Delete(expected, at, at+1)

			case op == 8:
				if len(expected) == 0 {
					continue
				}
				at := r.IntN(len(expected))
				old, err := l.Set(at, x)
				require.NoError(t, err)
				require.Equal(t, expected[at], old)
				expected[at] = x

			default:
				if len(expected) == 0 {
					_, err := l.RemoveLast()
					require.ErrorIs(t, err, ErrEmpty)
					continue
				}
				if r.IntN(2) == 0 {
					got, err := l.RemoveFirst()
					require.NoError(t, err)
					require.Equal(t, expected[0], got)
					expected = expected[1:]
				} else {
					got, err := l.RemoveLast()
					require.NoError(t, err)
					require.Equal(t, expected[len(expected)-1], got)
					expected = expected[:len(expected)-1]
				}
			}

			if step%50 == 0 {
				checkList(t, l)
				checkContents(t, l, expected)
			}
		}

		checkList(t, l)
		checkContents(t, l, expected)
	}
}

func TestInsertAtSplits(t *testing.T) {
	l := New[int](&Options{BlockCapacity: 4}, 0, 1, 2, 3)
	require.Equal(t, 1, l.Blocks())

	// block is full, so this splits it
	require.NoError(t, l.InsertAt(1, 100))
	checkList(t, l)
	checkContents(t, l, []int{0, 100, 1, 2, 3})
	require.Equal(t, 2, l.Blocks())

	// keep inserting into the middle
	expected := []int{0, 100, 1, 2, 3}
	for x := range 100 {
		at := len(expected) / 2
		require.NoError(t, l.InsertAt(at, x))
		expected = slices.Insert(expected, at, x)
		checkList(t, l)
	}
	checkContents(t, l, expected)
}

func TestInsertAtBoundaryUsesPrevious(t *testing.T) {
	l := New[string](&Options{BlockCapacity: 2}, "a", "b", "c", "d")
	_, err := l.RemoveAt(1)
	require.NoError(t, err)
	blocks := l.Blocks()

	// "c" starts a full block, but the block holding "a" has room
	require.NoError(t, l.InsertAt(1, "x"))
	require.Equal(t, blocks, l.Blocks())
	checkList(t, l)
	checkContents(t, l, []string{"a", "x", "c", "d"})
}

func TestRangeErrors(t *testing.T) {
	l := New[int](&Options{BlockCapacity: 2}, 1, 2, 3)
	mod := l.mod

	_, err := l.Get(-1)
	assert.ErrorIs(t, err, ErrIndex)
	_, err = l.Get(3)
	assert.ErrorIs(t, err, ErrIndex)
	_, err = l.Set(3, 10)
	assert.ErrorIs(t, err, ErrIndex)
	assert.ErrorIs(t, l.InsertAt(4, 10), ErrIndex)
	assert.ErrorIs(t, l.InsertAt(-1, 10), ErrIndex)
	_, err = l.RemoveAt(3)
	assert.ErrorIs(t, err, ErrIndex)
	_, err = l.Cursor(4)
	assert.ErrorIs(t, err, ErrIndex)

	assert.Equal(t, mod, l.mod)
	checkList(t, l)
	checkContents(t, l, []int{1, 2, 3})
}

func TestEmpty(t *testing.T) {
	l := New[int](nil)
	require.True(t, l.IsEmpty())
	require.Equal(t, 0, l.Blocks())

	_, err := l.First()
	require.ErrorIs(t, err, ErrEmpty)
	_, err = l.Last()
	require.ErrorIs(t, err, ErrEmpty)
	_, err = l.RemoveFirst()
	require.ErrorIs(t, err, ErrEmpty)
	_, err = l.RemoveLast()
	require.ErrorIs(t, err, ErrEmpty)
	_, err = l.Get(0)
	require.ErrorIs(t, err, ErrIndex)

	// insertAt on an empty list is allowed at zero
	require.NoError(t, l.InsertAt(0, 5))
	checkContents(t, l, []int{5})

	first, err := l.First()
	require.NoError(t, err)
	last, err := l.Last()
	require.NoError(t, err)
	require.Equal(t, 5, first)
	require.Equal(t, 5, last)
}

func TestDrain(t *testing.T) {
	for _, capacity := range []int{1, 3, 25} {
		values := make([]int, 200)
		for i := range values {
			values[i] = i
		}
		l := New(&Options{BlockCapacity: capacity}, values...)
		checkList(t, l)

		for i := range values {
			var got int
			var err error
			if i%2 == 0 {
				got, err = l.RemoveFirst()
				require.Equal(t, i/2, got)
			} else {
				got, err = l.RemoveLast()
				require.Equal(t, len(values)-1-i/2, got)
			}
			require.NoError(t, err)
			checkList(t, l)
		}

		require.True(t, l.IsEmpty())
		require.Equal(t, 0, l.Blocks())

		// reusable after draining
		l.InsertLast(1)
		l.InsertFirst(0)
		checkList(t, l)
		checkContents(t, l, []int{0, 1})
	}
}

func TestNilValues(t *testing.T) {
	one := 1
	l := New[*int](&Options{BlockCapacity: 2}, nil, &one, nil)
	checkContents(t, l, []*int{nil, &one, nil})

	got, err := l.RemoveAt(0)
	require.NoError(t, err)
	require.Nil(t, got)
	require.Equal(t, 1, l.IndexFunc(func(p *int) bool { return p == nil }))
}

func TestClear(t *testing.T) {
	l := New(&Options{BlockCapacity: 4}, 1, 2, 3, 4, 5, 6, 7, 8, 9)
	l.Clear()
	checkList(t, l)
	require.Equal(t, 0, l.Len())

	l.Append(7, 8, 9)
	checkList(t, l)
	checkContents(t, l, []int{7, 8, 9})
}

func TestAppend(t *testing.T) {
	l := New[int](&Options{BlockCapacity: 5})
	l.InsertLast(-1)

	var expected []int
	expected = append(expected, -1)
	for i := range 37 {
		expected = append(expected, i)
	}
	l.Append(expected[1:]...)

	checkList(t, l)
	checkContents(t, l, expected)
	require.Equal(t, 8, l.Blocks())
}

func TestOptions(t *testing.T) {
	l := New[int](nil)
	assert.Equal(t, DefaultBlockCapacity, l.BlockCapacity())
	assert.Equal(t, DefaultMinLoadFactor, l.MinLoadFactor())

	l = New[int](&Options{BlockCapacity: -4, MinLoadFactor: 0.9})
	assert.Equal(t, MinBlockCapacity, l.BlockCapacity())
	assert.Equal(t, MaxLoadFactor, l.MinLoadFactor())

	l = New[int](&Options{BlockCapacity: 64, MinLoadFactor: 0.0001})
	assert.Equal(t, 64, l.BlockCapacity())
	assert.Equal(t, MinLoadFactor, l.MinLoadFactor())

	l = New[int](&Options{MinLoadFactor: math.Inf(1)})
	assert.Equal(t, MaxLoadFactor, l.MinLoadFactor())
	l = New[int](&Options{MinLoadFactor: math.Inf(-1)})
	assert.Equal(t, MinLoadFactor, l.MinLoadFactor())
}

func TestOptionsNaN(t *testing.T) {
	l := New[int](&Options{BlockCapacity: 4, MinLoadFactor: math.NaN()})
	require.Equal(t, DefaultMinLoadFactor, l.MinLoadFactor())

	// one element left in each of five blocks is a ratio of 0.25, so compaction must run
	for i := range 20 {
		l.InsertLast(i)
	}
	for i := 19; i > 0; i-- {
		if i%4 != 0 {
			_, err := l.RemoveAt(i)
			require.NoError(t, err)
		}
	}
	checkList(t, l)
	checkContents(t, l, []int{0, 4, 8, 12, 16})
	require.GreaterOrEqual(t, l.FillRatio(), DefaultMinLoadFactor)
}

func TestModificationCount(t *testing.T) {
	l := New[int](nil, 1, 2, 3)

	mod := l.mod
	l.Get(1)
	l.First()
	l.Slice()
	require.Equal(t, mod, l.mod)

	l.Set(0, 4)
	require.Greater(t, l.mod, mod)

	mod = l.mod
	l.InsertAt(1, 5)
	require.Greater(t, l.mod, mod)

	mod = l.mod
	l.RemoveAt(1)
	require.Greater(t, l.mod, mod)
}
