package blocklist

// FillRatio returns the number of elements over the total capacity of every block.
// An empty List reports 1.
func (l *List[E]) FillRatio() float64 {
	if l.blocks == 0 {
		return 1
	}
	return float64(l.size) / float64(l.blocks*l.capacity)
}

func (l *List[E]) shouldCompact() bool {
	return l.blocks > 1 && l.FillRatio() < l.minLoad
}

// compact merges adjacent blocks while the fill ratio is under the minimum load factor.
// The scan starts just before near, which is where a removal happened, and wraps around to the head.
// It stops once the ratio is restored or no neighboring pair fits within a single block.
func (l *List[E]) compact(near *node[E]) {
	if !l.shouldCompact() {
		return
	}
	if near == nil {
		near = l.head
	} else if near.prev != nil {
		near = near.prev
	}

	l.compactFrom(near, nil)
	if l.shouldCompact() {
		l.compactFrom(l.head, near)
	}
}

// compactFrom merges forward from n until reaching stop, the tail, or a restored ratio.
// Only nodes after n are deleted, so n itself stays valid.
func (l *List[E]) compactFrom(n, stop *node[E]) {
	for n != nil && n != stop && n.next != nil && l.shouldCompact() {
		next := n.next
		if n.block.size+next.block.size <= l.capacity {
			l.merge(n, next)
			continue // n may be able to take the new next too
		}
		n = next
	}
}

// merge moves every element of next, which follows n, into n and deletes next.
func (l *List[E]) merge(n, next *node[E]) {
	moved := next.block.size
	l.propagate(next, -moved)
	next.block.drain(&n.block)
	l.propagate(n, moved)
	l.deleteNode(next)
}
