package blocklist

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// checkList recomputes every height and count from scratch and compares against what the List maintains.
func checkList[E any](t *testing.T, l *List[E]) {
	t.Helper()

	var inOrder []*node[E]
	var walk func(n, parent *node[E]) (height, count int)
	walk = func(n, parent *node[E]) (height, count int) {
		if n == nil {
			return -1, 0
		}
		require.True(t, n.parent == parent, "bad parent link")

		lh, lc := walk(n.left, n)
		inOrder = append(inOrder, n)
		rh, rc := walk(n.right, n)

		require.Equal(t, lc, n.leftCount, "bad leftCount")
		require.LessOrEqual(t, abs(lh-rh), 1, "unbalanced node")
		require.Equal(t, 1+max(lh, rh), n.height, "bad height")
		require.Positive(t, n.block.size, "empty block in tree")
		require.LessOrEqual(t, n.block.size, l.capacity)
		require.Len(t, n.block.data, l.capacity)

		return 1 + max(lh, rh), lc + n.block.size + rc
	}
	_, total := walk(l.root, nil)
	require.Equal(t, l.size, total)

	var listed []*node[E]
	var listedCount int
	var prev *node[E]
	for n := l.head; n != nil; n = n.next {
		require.True(t, n.prev == prev, "bad prev link")
		listed = append(listed, n)
		listedCount += n.block.size
		prev = n
	}
	require.True(t, l.tail == prev, "tail is not last listed node")
	require.Equal(t, l.size, listedCount)
	require.Len(t, listed, len(inOrder))
	require.Equal(t, l.blocks, len(listed))
	for i := range listed {
		require.True(t, listed[i] == inOrder[i], "block order differs from tree order at %d", i)
	}

	if l.size == 0 {
		require.Nil(t, l.root)
		require.Nil(t, l.head)
		require.Nil(t, l.tail)
	} else {
		require.NotNil(t, l.root)
		require.Equal(t, 0, l.indexOf(l.head))
		require.Equal(t, l.size-l.tail.block.size, l.indexOf(l.tail))
	}
}

// checkContents compares the List against a plain slice using both Get and Slice.
func checkContents[E any](t *testing.T, l *List[E], expected []E) {
	t.Helper()

	require.Equal(t, len(expected), l.Len())
	for i, want := range expected {
		got, err := l.Get(i)
		require.NoError(t, err)
		require.Equal(t, want, got, "at index %d", i)
	}
	if len(expected) == 0 {
		require.Empty(t, l.Slice())
	} else {
		require.Equal(t, expected, l.Slice())
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
