package btree

import "fmt"

// Put stores value under key. An existing key has its value replaced
// in place; a new key goes into the leaf the search lands on, and
// overflowing nodes are split on the way back up. The entry count
// grows by one only for a new key.
func (m *Map[K, V]) Put(key K, value V) error {
	if m == nil {
		return fmt.Errorf("%w: nil map", ErrInvalidConfig)
	}
	if m.root == nil {
		m.seedRoot(pair[K, V]{key: key, val: value})
		return nil
	}
	path, found, err := m.descend(key)
	if err != nil {
		return err
	}
	if found {
		last := path[len(path)-1]
		last.n.pairs[last.idx].val = value
		return nil
	}
	m.insertAt(path, pair[K, V]{key: key, val: value})
	return nil
}

// SetDefault returns the value stored for key, inserting def first
// when the key is absent.
func (m *Map[K, V]) SetDefault(key K, def V) (V, error) {
	var zero V
	if m == nil {
		return zero, fmt.Errorf("%w: nil map", ErrInvalidConfig)
	}
	if m.root == nil {
		m.seedRoot(pair[K, V]{key: key, val: def})
		return def, nil
	}
	path, found, err := m.descend(key)
	if err != nil {
		return zero, err
	}
	if found {
		last := path[len(path)-1]
		return last.n.pairs[last.idx].val, nil
	}
	m.insertAt(path, pair[K, V]{key: key, val: def})
	return def, nil
}

// seedRoot turns an empty map into a single-pair leaf root.
func (m *Map[K, V]) seedRoot(p pair[K, V]) {
	root := m.newLeaf()
	root.pairs = append(root.pairs, p)
	m.root = root
	m.height = 1
	m.size = 1
}

// insertAt places p at the terminal step of a miss path and repairs
// overflow bottom-up. The path comes from descend, so no comparisons
// happen past this point.
func (m *Map[K, V]) insertAt(path []pathStep[K, V], p pair[K, V]) {
	last := path[len(path)-1]
	assert(last.n.isLeaf(), "insertAt expected a leaf at the end of a miss path")
	last.n.insertPairAt(last.idx, p)
	m.splitUpward(path)
	m.size++
}

// splitUpward splits overflowing nodes along the descent path, bottom
// up. Each split hands its median pair to the parent; a root split
// grows the tree by one level, the only way height increases.
func (m *Map[K, V]) splitUpward(path []pathStep[K, V]) {
	for d := len(path) - 1; d >= 0; d-- {
		n := path[d].n
		if len(n.pairs) <= m.maxPairs() {
			return
		}
		median, next := n.split(m.cfg.Order / 2)
		if d == 0 {
			m.root = m.newRoot(median, n, next)
			m.height++
			T().Debugf("root split, map height is now %d", m.height)
			return
		}
		parent := path[d-1]
		parent.n.insertPairAt(parent.idx, median)
		parent.n.insertChildAt(parent.idx+1, next)
	}
}

// newLeaf allocates an empty leaf with the configured overflow
// capacity.
func (m *Map[K, V]) newLeaf() *node[K, V] {
	return &node[K, V]{pairs: make([]pair[K, V], 0, m.cfg.Order)}
}

// newRoot builds the replacement root after a root split.
func (m *Map[K, V]) newRoot(median pair[K, V], left, right *node[K, V]) *node[K, V] {
	r := &node[K, V]{
		pairs:    make([]pair[K, V], 0, m.cfg.Order),
		children: make([]*node[K, V], 0, m.cfg.Order+1),
	}
	r.pairs = append(r.pairs, median)
	r.children = append(r.children, left, right)
	return r
}
