// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ordmap

// maxSkew is the largest allowed difference between the heights of the two
// subtrees of any node.
const maxSkew = 1

// node is a vertex of the balanced tree.  It holds the chain of every element
// sharing its key, so duplicates never affect the shape or the height of the
// tree.
type node[T, K any] struct {
	key K

	parent *node[T, K]
	lt     *node[T, K]
	gt     *node[T, K]

	// height is 1 for leaves.
	height int

	// first and last are the ends of the equal-key chain, in insertion
	// order.  They are never nil while the node is in the tree.
	first *element[T, K]
	last  *element[T, K]
}

// newNode returns a leaf node whose chain consists of e alone.
func newNode[T, K any](e *element[T, K]) *node[T, K] {
	n := &node[T, K]{key: e.key, height: 1, first: e, last: e}
	e.node = n
	return n
}

// height returns the height of the subtree rooted at n.
func height[T, K any](n *node[T, K]) int {
	if n == nil {
		return 0
	}
	return n.height
}

// updateHeight recomputes the height of n from the heights of its children.
func (n *node[T, K]) updateHeight() {
	n.height = 1 + max(height(n.lt), height(n.gt))
}

// relink makes n take the place of old below parent, or the place of the root
// when parent is nil.
func (m *Map[T, K]) relink(n, old, parent *node[T, K]) {
	if n != nil {
		n.parent = parent
	}
	if parent == nil {
		m.root = n
		return
	}
	if parent.lt == old {
		parent.lt = n
	} else {
		parent.gt = n
	}
}

// rotateRight lifts the less-than child of n into its place and returns it.
func (m *Map[T, K]) rotateRight(n *node[T, K]) *node[T, K] {
	parent, pivot := n.parent, n.lt
	n.lt = pivot.gt
	if n.lt != nil {
		n.lt.parent = n
	}
	pivot.gt = n
	n.parent = pivot
	m.relink(pivot, n, parent)

	n.updateHeight()
	pivot.updateHeight()
	m.rebalances++
	return pivot
}

// rotateLeft lifts the greater-than child of n into its place and returns it.
func (m *Map[T, K]) rotateLeft(n *node[T, K]) *node[T, K] {
	parent, pivot := n.parent, n.gt
	n.gt = pivot.lt
	if n.gt != nil {
		n.gt.parent = n
	}
	pivot.lt = n
	n.parent = pivot
	m.relink(pivot, n, parent)

	n.updateHeight()
	pivot.updateHeight()
	m.rebalances++
	return pivot
}

// fold restructures the three node chain made of n, its only child and the
// only child of that child on the opposite side, a leaf, into a grandchild
// parenting n and its child.  It does in one step what a double rotation does
// in two.  It returns the new subtree root, or nil when the shape does not
// match.
func (m *Map[T, K]) fold(n *node[T, K]) *node[T, K] {
	var child, grandchild *node[T, K]
	switch {
	case n.lt != nil && n.gt == nil:
		child = n.lt
		if child.lt != nil || child.gt == nil {
			return nil
		}
		grandchild = child.gt

	case n.gt != nil && n.lt == nil:
		child = n.gt
		if child.gt != nil || child.lt == nil {
			return nil
		}
		grandchild = child.lt

	default:
		return nil
	}
	if grandchild.lt != nil || grandchild.gt != nil {
		return nil
	}

	parent := n.parent
	less, greater := child, n
	if child == n.gt {
		less, greater = n, child
	}
	less.lt, less.gt = nil, nil
	greater.lt, greater.gt = nil, nil
	less.parent, greater.parent = grandchild, grandchild
	less.height, greater.height = 1, 1
	grandchild.lt, grandchild.gt = less, greater
	grandchild.height = 2
	m.relink(grandchild, n, parent)

	m.rebalances++
	return grandchild
}

// balance restores the height invariant at n, whose subtrees are assumed
// balanced, and returns the root of the resulting subtree with its height
// up to date.
func (m *Map[T, K]) balance(n *node[T, K]) *node[T, K] {
	if folded := m.fold(n); folded != nil {
		return folded
	}

	lt, gt := height(n.lt), height(n.gt)
	switch {
	case lt-gt > maxSkew:
		if height(n.lt.gt) > height(n.lt.lt) {
			m.rotateLeft(n.lt)
		}
		return m.rotateRight(n)

	case gt-lt > maxSkew:
		if height(n.gt.lt) > height(n.gt.gt) {
			m.rotateRight(n.gt)
		}
		return m.rotateLeft(n)
	}

	n.updateHeight()
	return n
}

// rebalance walks from n up to the root, fixing heights and balance.  It
// stops at the first subtree whose height did not change since ancestors
// are then unaffected.
func (m *Map[T, K]) rebalance(n *node[T, K]) {
	for n != nil {
		prevHeight := n.height
		n = m.balance(n)
		if n.height == prevHeight {
			return
		}
		n = n.parent
	}
}

// deleteNode unlinks n from the tree.  A node with two children is replaced
// by its in-order neighbour taken from the taller subtree, the predecessor
// when both are equally tall, which is moved as a whole into the slot of n.
func (m *Map[T, K]) deleteNode(n *node[T, K]) {
	parent := n.parent
	if n.lt == nil || n.gt == nil {
		child := n.lt
		if child == nil {
			child = n.gt
		}
		m.relink(child, n, parent)
		m.rebalance(parent)
		n.parent, n.lt, n.gt = nil, nil, nil
		return
	}

	// start is the lowest node whose subtree lost height.
	var replacement, start *node[T, K]
	if height(n.lt) >= height(n.gt) {
		replacement = n.lt
		for replacement.gt != nil {
			replacement = replacement.gt
		}
		start = replacement
		if replacement != n.lt {
			start = replacement.parent
			start.gt = replacement.lt
			if start.gt != nil {
				start.gt.parent = start
			}
			replacement.lt = n.lt
			replacement.lt.parent = replacement
		}
		replacement.gt = n.gt
		replacement.gt.parent = replacement
	} else {
		replacement = n.gt
		for replacement.lt != nil {
			replacement = replacement.lt
		}
		start = replacement
		if replacement != n.gt {
			start = replacement.parent
			start.lt = replacement.gt
			if start.lt != nil {
				start.lt.parent = start
			}
			replacement.gt = n.gt
			replacement.gt.parent = replacement
		}
		replacement.lt = n.lt
		replacement.lt.parent = replacement
	}
	replacement.height = n.height
	m.relink(replacement, n, parent)
	m.rebalance(start)
	n.parent, n.lt, n.gt = nil, nil, nil
}
