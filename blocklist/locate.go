package blocklist

// locate finds the node holding index, which must be in [0,size), and the offset within its block.
func (l *List[E]) locate(index int) (n *node[E], offset int) {
	n = l.root
	for {
		if index >= n.leftCount+n.block.size {
			index -= n.leftCount + n.block.size
			n = n.right
		} else if index < n.leftCount {
			n = n.left
		} else {
			return n, index - n.leftCount
		}
	}
}

// propagate adds delta to the leftCount of every ancestor that has n in its left subtree.
// Call it whenever the size of n's block changes.
func (l *List[E]) propagate(n *node[E], delta int) {
	if delta == 0 {
		return
	}
	for p := n.parent; p != nil; n, p = p, p.parent {
		if p.left == n {
			p.leftCount += delta
		}
	}
}

// indexOf returns the global index of the first element of n's block.
func (l *List[E]) indexOf(n *node[E]) (index int) {
	index = n.leftCount
	for p := n.parent; p != nil; n, p = p, p.parent {
		if p.right == n {
			index += p.leftCount + p.block.size
		}
	}
	return index
}

// replaceChild puts x where old was below p, or at the root if p is nil.
func (l *List[E]) replaceChild(p, old, x *node[E]) {
	switch {
	case p == nil:
		if l.root != old {
			panic("corrupt blocklist")
		}
		l.root = x
	case p.left == old:
		p.left = x
	case p.right == old:
		p.right = x
	default:
		panic("corrupt blocklist")
	}
	if x != nil {
		x.parent = p
	}
}
