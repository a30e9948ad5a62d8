package btree

import "fmt"

// Delete removes key. Deleting an absent key fails with ErrKeyNotFound
// and leaves the map unchanged.
func (m *Map[K, V]) Delete(key K) error {
	if m == nil {
		return fmt.Errorf("%w: nil map", ErrInvalidConfig)
	}
	path, found, err := m.descend(key)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}
	m.deleteAt(path)
	return nil
}

// Pop removes key and returns the value it held, or ErrKeyNotFound.
func (m *Map[K, V]) Pop(key K) (V, error) {
	var zero V
	if m == nil {
		return zero, fmt.Errorf("%w: nil map", ErrInvalidConfig)
	}
	path, found, err := m.descend(key)
	if err != nil {
		return zero, err
	}
	if !found {
		return zero, fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}
	last := path[len(path)-1]
	v := last.n.pairs[last.idx].val
	m.deleteAt(path)
	return v, nil
}

// PopOr removes key and returns the value it held, or def when the
// key is absent. The map is unchanged in the absent case.
func (m *Map[K, V]) PopOr(key K, def V) (V, error) {
	if m == nil {
		return def, nil
	}
	path, found, err := m.descend(key)
	if err != nil {
		return def, err
	}
	if !found {
		return def, nil
	}
	last := path[len(path)-1]
	v := last.n.pairs[last.idx].val
	m.deleteAt(path)
	return v, nil
}

// deleteAt removes the pair at the terminal step of a hit path and
// repairs occupancy on the way back up.
//
// A hit in an internal node is first overwritten with its in-order
// predecessor, the rightmost pair of its left subtree, so the removal
// proper happens in the deepest node holding keys. That is the leaf,
// except in order-2 trees, where subtrees can be entirely keyless;
// such a pair is dropped together with its keyless subtree.
func (m *Map[K, V]) deleteAt(path []pathStep[K, V]) {
	last := len(path) - 1
	target := path[last]
	if !target.n.isLeaf() {
		// Walk the right spine of the left subtree, tracking the
		// deepest node that holds any pairs.
		c := target.n.children[target.idx]
		predDepth := -1
		for {
			path = append(path, pathStep[K, V]{n: c, idx: len(c.children) - 1})
			if len(c.pairs) > 0 {
				predDepth = len(path) - 1
			}
			if c.isLeaf() {
				break
			}
			c = c.children[len(c.children)-1]
		}
		if predDepth < 0 {
			// Keyless left subtree (order 2 only): drop the pair
			// and the subtree, keeping the child count at pairs+1.
			assert(m.minPairs() == 0, "keyless subtree in a tree with a positive minimum")
			path = path[:last+1]
			target.n.removePairAt(target.idx)
			target.n.removeChildAt(target.idx)
			m.size--
			m.repairUpward(path)
			return
		}
		pred := path[predDepth].n
		target.n.pairs[target.idx] = pred.pairs[len(pred.pairs)-1]
		path = path[:predDepth+1]
		path[predDepth].idx = len(pred.pairs) - 1
		if !pred.isLeaf() {
			// The spine below the predecessor is keyless (order 2
			// only), so its right subtree goes away with the pair.
			assert(m.minPairs() == 0, "internal predecessor in a tree with a positive minimum")
			pred.removePairAt(len(pred.pairs) - 1)
			pred.removeChildAt(len(pred.children) - 1)
			m.size--
			m.repairUpward(path)
			return
		}
		last = predDepth
		target = path[last]
	}
	target.n.removePairAt(target.idx)
	m.size--
	m.repairUpward(path)
}

// repairUpward fixes underflowing nodes along the path bottom-up and
// finally applies the root occupancy rules. Borrowing stops the walk;
// merging removes a pair from the parent, which may underflow in
// turn.
func (m *Map[K, V]) repairUpward(path []pathStep[K, V]) {
	for d := len(path) - 1; d >= 1; d-- {
		n := path[d].n
		if len(n.pairs) >= m.minPairs() {
			break
		}
		parent := path[d-1]
		assert(parent.n.children[parent.idx] == n, "repairUpward path does not match tree structure")
		m.repairChild(parent.n, parent.idx)
	}
	m.normalizeRoot()
}

// repairChild restores occupancy of parent.children[slot] with the
// fixed sibling policy: borrow-left, borrow-right, merge-left,
// merge-right.
func (m *Map[K, V]) repairChild(parent *node[K, V], slot int) {
	child := parent.children[slot]
	ok := m.applyRebalancePolicy(
		parent, slot,
		func() bool {
			left := parent.children[slot-1]
			if len(left.pairs) <= m.minPairs() {
				return false
			}
			child.insertPairAt(0, parent.pairs[slot-1])
			parent.pairs[slot-1] = left.removePairAt(len(left.pairs) - 1)
			if !left.isLeaf() {
				child.insertChildAt(0, left.removeChildAt(len(left.children)-1))
			}
			return true
		},
		func() bool {
			right := parent.children[slot+1]
			if len(right.pairs) <= m.minPairs() {
				return false
			}
			child.insertPairAt(len(child.pairs), parent.pairs[slot])
			parent.pairs[slot] = right.removePairAt(0)
			if !right.isLeaf() {
				child.insertChildAt(len(child.children), right.removeChildAt(0))
			}
			return true
		},
		func() bool {
			left := parent.children[slot-1]
			sep := parent.removePairAt(slot - 1)
			parent.removeChildAt(slot)
			left.absorb(sep, child)
			return true
		},
		func() bool {
			right := parent.children[slot+1]
			sep := parent.removePairAt(slot)
			parent.removeChildAt(slot + 1)
			child.absorb(sep, right)
			return true
		},
	)
	assert(ok, "repairChild found no sibling to borrow from or merge with")
}

// applyRebalancePolicy centralizes the sibling operation order after a
// delete: borrow-left, borrow-right, merge-left, merge-right.
func (m *Map[K, V]) applyRebalancePolicy(
	parent *node[K, V], slot int,
	borrowLeft func() bool,
	borrowRight func() bool,
	mergeLeft func() bool,
	mergeRight func() bool,
) bool {
	assert(parent != nil, "applyRebalancePolicy called with nil parent")
	assert(slot >= 0 && slot < len(parent.children), "applyRebalancePolicy slot out of range")
	hasLeft := slot > 0
	hasRight := slot+1 < len(parent.children)
	if hasLeft && borrowLeft() {
		return true
	}
	if hasRight && borrowRight() {
		return true
	}
	if hasLeft && mergeLeft() {
		return true
	}
	if hasRight && mergeRight() {
		return true
	}
	return false
}

// normalizeRoot applies the root occupancy rules after a removal: an
// empty leaf root empties the map, an empty internal root is replaced
// by its only child and the tree shrinks by one level. Order-2 trees
// can need several collapse steps in a row.
func (m *Map[K, V]) normalizeRoot() {
	for m.root != nil && len(m.root.pairs) == 0 {
		if m.root.isLeaf() {
			m.root = nil
			m.height = 0
			return
		}
		assert(len(m.root.children) == 1, "empty internal root must have exactly one child")
		m.root = m.root.children[0]
		m.height--
		T().Debugf("root collapse, map height is now %d", m.height)
	}
}
