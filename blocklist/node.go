package blocklist

type node[E any] struct {
	block block[E]

	// height is -1 for an absent node and 0 for a leaf
	height int

	// leftCount is the number of elements in every block of the left subtree
	leftCount int

	left   *node[E]
	right  *node[E]
	parent *node[E]

	// prev and next thread every node in block order
	prev *node[E]
	next *node[E]
}

func (n *node[E]) safeHeight() int {
	if n == nil {
		return -1
	}
	return n.height
}

func (n *node[E]) setHeight() {
	n.height = 1 + max(n.left.safeHeight(), n.right.safeHeight())
}

// balance is positive when the right subtree is taller.
func (n *node[E]) balance() int {
	return n.right.safeHeight() - n.left.safeHeight()
}

func leftmost[E any](n *node[E]) *node[E] {
	for n.left != nil {
		n = n.left
	}
	return n
}

// newNode returns a detached leaf with an empty block.
func (l *List[E]) newNode() (n *node[E]) {
	if len(l.nodePool) != 0 {
		at := len(l.nodePool) - 1
		n = l.nodePool[at]
		l.nodePool = l.nodePool[:at]
	} else {
		n = &node[E]{}
		n.block.init(l.capacity)
	}
	l.blocks++
	return n
}

// returnToPool forgets a node that has been removed from the tree and the block list.
func (l *List[E]) returnToPool(n *node[E]) {
	l.blocks--

	n.block.clear()
	n.height = 0
	n.leftCount = 0
	n.left, n.right, n.parent = nil, nil, nil
	n.prev, n.next = nil, nil

	if len(l.nodePool) < poolSize {
		l.nodePool = append(l.nodePool, n)
	}
}
