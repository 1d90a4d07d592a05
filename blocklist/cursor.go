package blocklist

import (
	"iter"

	thoriter "github.com/samthor/blocktree/iter"
)

// Cursor walks a List in either direction by following the block order, without descending the tree.
// It sits between two elements, like a text caret.
// Once the List is modified by anything other than the Cursor itself, every step fails with ErrModified.
type Cursor[E any] struct {
	l      *List[E]
	expect int
	err    error

	// position of the element that Next would return; n is nil at the end
	n     *node[E]
	off   int
	index int

	// the element last returned by Next or Prev
	curr      *node[E]
	currOff   int
	currIndex int
	value     E
}

// Cursor returns a Cursor placed before the element at index, which must be in [0,Len].
func (l *List[E]) Cursor(index int) (*Cursor[E], error) {
	if index < 0 || index > l.size {
		return nil, l.rangeError(index)
	}

	c := &Cursor[E]{
		l:         l,
		expect:    l.mod,
		index:     index,
		currIndex: -1,
	}
	if index < l.size {
		c.n, c.off = l.locate(index)
	}
	return c, nil
}

func (c *Cursor[E]) check() bool {
	if c.err != nil {
		return false
	}
	if c.l.mod != c.expect {
		c.err = ErrModified
		return false
	}
	return true
}

func (c *Cursor[E]) setCurrent() {
	c.curr = c.n
	c.currOff = c.off
	c.currIndex = c.index
	c.value = c.n.block.get(c.off)
}

// Next moves over the following element, returning false at the end or on error.
func (c *Cursor[E]) Next() bool {
	if !c.check() || c.n == nil {
		return false
	}
	c.setCurrent()

	c.index++
	c.off++
	if c.off == c.n.block.size {
		c.n = c.n.next
		c.off = 0
	}
	return true
}

// Prev moves back over the preceding element, returning false at the start or on error.
func (c *Cursor[E]) Prev() bool {
	if !c.check() || c.index == 0 {
		return false
	}

	if c.n == nil {
		c.n = c.l.tail
		c.off = c.n.block.size - 1
	} else if c.off > 0 {
		c.off--
	} else {
		c.n = c.n.prev
		c.off = c.n.block.size - 1
	}
	c.index--

	c.setCurrent()
	return true
}

// Value returns the element last moved over.
func (c *Cursor[E]) Value() E {
	return c.value
}

// Index returns the index of the element last moved over, or -1 if there is none.
func (c *Cursor[E]) Index() int {
	return c.currIndex
}

// Set replaces the element last moved over.
// The Cursor stays valid afterwards.
func (c *Cursor[E]) Set(value E) error {
	if !c.check() {
		return c.err
	}
	if c.curr == nil {
		return c.l.rangeError(-1)
	}
	c.curr.block.set(c.currOff, value)
	c.value = value
	c.l.mod++
	c.expect = c.l.mod
	return nil
}

// Err returns ErrModified if the List changed underneath this Cursor.
func (c *Cursor[E]) Err() error {
	return c.err
}

// Iter yields every element from index onwards.
// If the List is modified during iteration, it yields ErrModified once and stops.
func (l *List[E]) Iter(from int) iter.Seq2[E, error] {
	if from < 0 || from > l.size {
		return thoriter.Seq2Error[E](l.rangeError(from))
	}

	return func(yield func(E, error) bool) {
		c, err := l.Cursor(from)
		if err != nil {
			var zero E
			yield(zero, err)
			return
		}
		for c.Next() {
			if !yield(c.Value(), nil) {
				return
			}
		}
		if c.err != nil {
			var zero E
			yield(zero, c.err)
		}
	}
}

// Backward yields every element before index, from index-1 down to zero.
// If the List is modified during iteration, it yields ErrModified once and stops.
func (l *List[E]) Backward(from int) iter.Seq2[E, error] {
	if from < 0 || from > l.size {
		return thoriter.Seq2Error[E](l.rangeError(from))
	}

	return func(yield func(E, error) bool) {
		c, err := l.Cursor(from)
		if err != nil {
			var zero E
			yield(zero, err)
			return
		}
		for c.Prev() {
			if !yield(c.Value(), nil) {
				return
			}
		}
		if c.err != nil {
			var zero E
			yield(zero, c.err)
		}
	}
}

// Slice copies every element into a new slice, in order.
func (l *List[E]) Slice() []E {
	out := make([]E, 0, l.size)
	for n := l.head; n != nil; n = n.next {
		for i := range n.block.size {
			out = append(out, n.block.get(i))
		}
	}
	return out
}

// IndexFunc returns the first index i where fn(value) is true, or -1.
func (l *List[E]) IndexFunc(fn func(E) bool) int {
	var index int
	for n := l.head; n != nil; n = n.next {
		for i := range n.block.size {
			if fn(n.block.get(i)) {
				return index + i
			}
		}
		index += n.block.size
	}
	return -1
}
