package btree

// pair is one key/value entry. In a classic B-tree entries live at
// every node level, not only in leaves.
type pair[K, V any] struct {
	key K
	val V
}

// node is the single node shape of the tree. A leaf has no children;
// an internal node keeps len(pairs)+1 of them. Both slices are
// allocated with one slot of transient overflow capacity, so the
// insert that triggers a split never reallocates.
type node[K, V any] struct {
	pairs    []pair[K, V]
	children []*node[K, V]
}

func (n *node[K, V]) isLeaf() bool { return len(n.children) == 0 }

// insertPairAt shifts pairs[i:] right and places p at index i.
func (n *node[K, V]) insertPairAt(i int, p pair[K, V]) {
	assert(i >= 0 && i <= len(n.pairs), "insertPairAt index out of range")
	n.pairs = append(n.pairs, pair[K, V]{})
	copy(n.pairs[i+1:], n.pairs[i:])
	n.pairs[i] = p
}

// removePairAt removes and returns the pair at index i, zeroing the
// vacated slot so stored references are released.
func (n *node[K, V]) removePairAt(i int) pair[K, V] {
	assert(i >= 0 && i < len(n.pairs), "removePairAt index out of range")
	p := n.pairs[i]
	copy(n.pairs[i:], n.pairs[i+1:])
	clear(n.pairs[len(n.pairs)-1:])
	n.pairs = n.pairs[:len(n.pairs)-1]
	return p
}

// insertChildAt shifts children[i:] right and places c at index i.
func (n *node[K, V]) insertChildAt(i int, c *node[K, V]) {
	assert(i >= 0 && i <= len(n.children), "insertChildAt index out of range")
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = c
}

// removeChildAt removes and returns the child at index i.
func (n *node[K, V]) removeChildAt(i int) *node[K, V] {
	assert(i >= 0 && i < len(n.children), "removeChildAt index out of range")
	c := n.children[i]
	copy(n.children[i:], n.children[i+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	return c
}

// split divides an overflowing node around the median at index mid.
// The receiver keeps pairs[:mid], the returned sibling takes
// pairs[mid+1:] and the matching children; the median pair is handed
// to the caller for insertion into the parent.
func (n *node[K, V]) split(mid int) (pair[K, V], *node[K, V]) {
	assert(mid > 0 && mid < len(n.pairs), "split median out of range")
	median := n.pairs[mid]
	next := &node[K, V]{pairs: make([]pair[K, V], 0, cap(n.pairs))}
	next.pairs = append(next.pairs, n.pairs[mid+1:]...)
	clear(n.pairs[mid:])
	n.pairs = n.pairs[:mid]
	if len(n.children) > 0 {
		next.children = make([]*node[K, V], 0, cap(n.children))
		next.children = append(next.children, n.children[mid+1:]...)
		clear(n.children[mid+1:])
		n.children = n.children[:mid+1]
	}
	return median, next
}

// absorb folds the parent separator and the right sibling into n.
// Callers only merge two minimum-sized siblings, so the result stays
// within the node's overflow capacity.
func (n *node[K, V]) absorb(sep pair[K, V], right *node[K, V]) {
	n.pairs = append(n.pairs, sep)
	n.pairs = append(n.pairs, right.pairs...)
	n.children = append(n.children, right.children...)
}

// cloneNode deep-copies the node structure. Keys and values are copied
// by assignment; what they reference stays shared.
func cloneNode[K, V any](n *node[K, V]) *node[K, V] {
	if n == nil {
		return nil
	}
	c := &node[K, V]{pairs: make([]pair[K, V], len(n.pairs), cap(n.pairs))}
	copy(c.pairs, n.pairs)
	if len(n.children) > 0 {
		c.children = make([]*node[K, V], len(n.children), cap(n.children))
		for i, child := range n.children {
			c.children[i] = cloneNode(child)
		}
	}
	return c
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
