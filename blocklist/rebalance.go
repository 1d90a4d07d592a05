package blocklist

// rotateLeft turns (n1 a (n2 b c)) into (n2 (n1 a b) c), returning n2.
func (l *List[E]) rotateLeft(n1 *node[E]) *node[E] {
	p := n1.parent
	n2 := n1.right
	b := n2.left

	n1.right = b
	if b != nil {
		b.parent = n1
	}
	n2.left = n1
	l.replaceChild(p, n1, n2)
	n1.parent = n2

	// n1 and its whole left side now sit left of n2
	n2.leftCount += n1.leftCount + n1.block.size

	n1.setHeight()
	n2.setHeight()
	return n2
}

// rotateRight turns (n1 (n2 a b) c) into (n2 a (n1 b c)), returning n2.
func (l *List[E]) rotateRight(n1 *node[E]) *node[E] {
	p := n1.parent
	n2 := n1.left
	b := n2.right

	n1.left = b
	if b != nil {
		b.parent = n1
	}
	n2.right = n1
	l.replaceChild(p, n1, n2)
	n1.parent = n2

	n1.leftCount -= n2.leftCount + n2.block.size

	n1.setHeight()
	n2.setHeight()
	return n2
}

func (l *List[E]) rotateLeftRight(n1 *node[E]) *node[E] {
	l.rotateLeft(n1.left)
	return l.rotateRight(n1)
}

func (l *List[E]) rotateRightLeft(n1 *node[E]) *node[E] {
	l.rotateRight(n1.right)
	return l.rotateLeft(n1)
}

// rebalance restores the AVL condition at p, assuming its children are balanced.
// It returns the root of the subtree that p was at, and whether a rotation happened.
func (l *List[E]) rebalance(p *node[E]) (sub *node[E], rotated bool) {
	switch p.balance() {
	case -2:
		if p.left.left.safeHeight() >= p.left.right.safeHeight() {
			return l.rotateRight(p), true
		}
		return l.rotateLeftRight(p), true

	case +2:
		if p.right.right.safeHeight() >= p.right.left.safeHeight() {
			return l.rotateLeft(p), true
		}
		return l.rotateRightLeft(p), true
	}

	p.setHeight()
	return p, false
}

// fixAfterInsertion walks up from a newly linked leaf n.
// An insert grows the tree by at most one level, so a single rotation always finishes the job.
func (l *List[E]) fixAfterInsertion(n *node[E]) {
	for p := n.parent; p != nil; p = p.parent {
		sub, rotated := l.rebalance(p)
		if rotated {
			if sub.parent != nil {
				sub.parent.setHeight()
			}
			return
		}
	}
}

// fixAfterRemoval walks up from n, the lowest node whose subtree lost a node.
// A removal can shrink several levels, so this always runs to the root.
func (l *List[E]) fixAfterRemoval(n *node[E]) {
	for p := n; p != nil; {
		sub, _ := l.rebalance(p)
		p = sub.parent
	}
}
