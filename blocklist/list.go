package blocklist

import (
	"fmt"
)

func (l *List[E]) rangeError(index int) error {
	return fmt.Errorf("%w: index %d, len %d", ErrIndex, index, l.size)
}

// Len returns the number of elements in this List. O(1).
func (l *List[E]) Len() int {
	return l.size
}

// IsEmpty returns whether this List has no elements.
func (l *List[E]) IsEmpty() bool {
	return l.size == 0
}

// Blocks returns the number of blocks currently allocated.
func (l *List[E]) Blocks() int {
	return l.blocks
}

// BlockCapacity returns the effective capacity of each block.
func (l *List[E]) BlockCapacity() int {
	return l.capacity
}

// MinLoadFactor returns the effective minimum load factor.
func (l *List[E]) MinLoadFactor() float64 {
	return l.minLoad
}

// Get returns the element at index.
// Costs O(logn).
func (l *List[E]) Get(index int) (out E, err error) {
	if index < 0 || index >= l.size {
		return out, l.rangeError(index)
	}
	n, offset := l.locate(index)
	return n.block.get(offset), nil
}

// Set replaces the element at index, returning the previous value.
// Costs O(logn).
func (l *List[E]) Set(index int, value E) (old E, err error) {
	if index < 0 || index >= l.size {
		return old, l.rangeError(index)
	}
	n, offset := l.locate(index)
	l.mod++
	return n.block.set(offset, value), nil
}

// First returns the first element.
func (l *List[E]) First() (out E, err error) {
	if l.size == 0 {
		return out, ErrEmpty
	}
	return l.head.block.get(0), nil
}

// Last returns the last element.
func (l *List[E]) Last() (out E, err error) {
	if l.size == 0 {
		return out, ErrEmpty
	}
	return l.tail.block.get(l.tail.block.size - 1), nil
}

// InsertFirst adds value at the start of this List.
func (l *List[E]) InsertFirst(value E) {
	l.mod++
	l.size++

	if l.root == nil {
		l.linkOnly(l.newNode())
	} else if l.head.block.full() {
		n := l.newNode()
		l.linkFirst(n)
		n.block.append(value)
		l.propagate(n, 1)
		l.fixAfterInsertion(n)
		return
	}

	l.head.block.prepend(value)
	l.propagate(l.head, 1)
}

// InsertLast adds value at the end of this List.
func (l *List[E]) InsertLast(value E) {
	l.mod++
	l.size++

	if l.root == nil {
		l.linkOnly(l.newNode())
	} else if l.tail.block.full() {
		n := l.newNode()
		l.linkLast(n)
		n.block.append(value)
		l.propagate(n, 1)
		l.fixAfterInsertion(n)
		return
	}

	l.tail.block.append(value)
	l.propagate(l.tail, 1)
}

// Append adds all values at the end of this List, filling each new block before linking the next.
func (l *List[E]) Append(values ...E) {
	if len(values) == 0 {
		return
	}
	l.mod++

	for len(values) != 0 {
		var fresh bool
		if l.root == nil {
			l.linkOnly(l.newNode())
		} else if l.tail.block.full() {
			l.linkLast(l.newNode())
			fresh = true
		}

		t := l.tail
		k := min(len(values), len(t.block.data)-t.block.size)
		for _, v := range values[:k] {
			t.block.append(v)
		}
		values = values[k:]
		l.size += k
		l.propagate(t, k)

		if fresh {
			l.fixAfterInsertion(t)
		}
	}
}

// InsertAt inserts value so that it ends up at index, which must be in [0,Len].
// Costs O(logn + c), where c is the block capacity.
func (l *List[E]) InsertAt(index int, value E) error {
	if index < 0 || index > l.size {
		return l.rangeError(index)
	}
	if index == l.size {
		l.InsertLast(value)
		return nil
	} else if index == 0 {
		l.InsertFirst(value)
		return nil
	}

	n, offset := l.locate(index)
	l.mod++
	l.size++

	if !n.block.full() {
		n.block.insert(offset, value)
		l.propagate(n, 1)
		return nil
	}

	// at a block boundary, the previous block may have room
	if offset == 0 && n.prev != nil && !n.prev.block.full() {
		n.prev.block.append(value)
		l.propagate(n.prev, 1)
		return nil
	}

	l.split(n, offset, value)
	return nil
}

// split moves the back half of the full node n into a new successor node, then inserts value at offset.
func (l *List[E]) split(n *node[E], offset int, value E) {
	m := l.newNode()
	mid := l.capacity / 2

	before := n.block.size
	n.block.moveTail(mid, &m.block)
	if offset <= mid {
		n.block.insert(offset, value)
	} else {
		m.block.insert(offset-mid, value)
	}
	l.propagate(n, n.block.size-before)

	l.linkAfter(n, m)
	l.propagate(m, m.block.size)
	l.fixAfterInsertion(m)
}

// RemoveFirst removes and returns the first element.
func (l *List[E]) RemoveFirst() (out E, err error) {
	if l.size == 0 {
		return out, ErrEmpty
	}
	return l.RemoveAt(0)
}

// RemoveLast removes and returns the last element.
func (l *List[E]) RemoveLast() (out E, err error) {
	if l.size == 0 {
		return out, ErrEmpty
	}
	return l.RemoveAt(l.size - 1)
}

// RemoveAt removes and returns the element at index.
// Costs O(logn + c), plus any merging of underfull blocks.
func (l *List[E]) RemoveAt(index int) (out E, err error) {
	if index < 0 || index >= l.size {
		return out, l.rangeError(index)
	}

	n, offset := l.locate(index)
	out = n.block.remove(offset)
	l.mod++
	l.size--
	l.propagate(n, -1)

	near := n
	if n.block.empty() {
		near = n.next
		if near == nil {
			near = n.prev
		}
		l.deleteNode(n)
	}
	l.compact(near)
	return out, nil
}

// Clear removes every element.
func (l *List[E]) Clear() {
	l.mod++
	l.root, l.head, l.tail = nil, nil, nil
	l.size = 0
	l.blocks = 0
}

func (l *List[E]) linkOnly(n *node[E]) {
	l.root, l.head, l.tail = n, n, n
}

// linkFirst attaches n as the new head, to the left of the old head.
func (l *List[E]) linkFirst(n *node[E]) {
	old := l.head
	old.left = n
	n.parent = old

	n.next = old
	old.prev = n
	l.head = n
}

// linkLast attaches n as the new tail, to the right of the old tail.
func (l *List[E]) linkLast(n *node[E]) {
	old := l.tail
	old.right = n
	n.parent = old

	n.prev = old
	old.next = n
	l.tail = n
}

// linkAfter attaches the leaf m as the in-order successor of n.
func (l *List[E]) linkAfter(n, m *node[E]) {
	if n.right == nil {
		n.right = m
		m.parent = n
	} else {
		s := leftmost(n.right)
		s.left = m
		m.parent = s
	}

	m.prev = n
	m.next = n.next
	if n.next != nil {
		n.next.prev = m
	} else {
		l.tail = m
	}
	n.next = m
}

// deleteNode removes n from the tree and the block list.
// Its block must already be empty, and every leftCount must already exclude it.
func (l *List[E]) deleteNode(n *node[E]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}

	var fixFrom *node[E]

	if n.left == nil || n.right == nil {
		child := n.left
		if child == nil {
			child = n.right
		}
		fixFrom = n.parent
		l.replaceChild(n.parent, n, child)

	} else {
		// move the in-order successor s into n's place
		s := leftmost(n.right)
		if s.parent == n {
			fixFrom = s
		} else {
			fixFrom = s.parent
			for p := s.parent; p != n; p = p.parent {
				p.leftCount -= s.block.size
			}

			s.parent.left = s.right
			if s.right != nil {
				s.right.parent = s.parent
			}
			s.right = n.right
			s.right.parent = s
		}

		s.left = n.left
		s.left.parent = s
		s.leftCount = n.leftCount
		s.height = n.height
		l.replaceChild(n.parent, n, s)
	}

	l.returnToPool(n)
	if fixFrom != nil {
		l.fixAfterRemoval(fixFrom)
	}
}
