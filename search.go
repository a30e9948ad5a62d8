package btree

import "fmt"

// pathStep records one stop of a root-to-key descent. For interior
// steps idx is the child slot taken; for the terminal step it is the
// pair index of an exact hit, or the insertion slot when the key is
// absent.
type pathStep[K, V any] struct {
	n   *node[K, V]
	idx int
}

// findSlot binary-searches n's sorted keys for key. It returns the
// pair index on an exact hit, otherwise the slot at which key would
// have to be inserted.
func (m *Map[K, V]) findSlot(n *node[K, V], key K) (idx int, found bool, err error) {
	lo, hi := 0, len(n.pairs)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		c, err := m.cfg.Compare(key, n.pairs[mid].key)
		if err != nil {
			return 0, false, err
		}
		switch {
		case c == 0:
			return mid, true, nil
		case c < 0:
			hi = mid
		default:
			lo = mid + 1
		}
	}
	return lo, false, nil
}

// lookup locates key without recording the descent. It is the
// allocation-free sibling of descend, used by read-only operations.
func (m *Map[K, V]) lookup(key K) (*node[K, V], int, bool, error) {
	n := m.root
	for n != nil {
		i, hit, err := m.findSlot(n, key)
		if err != nil {
			return nil, 0, false, err
		}
		if hit {
			return n, i, true, nil
		}
		if n.isLeaf() {
			return nil, 0, false, nil
		}
		n = n.children[i]
	}
	return nil, 0, false, nil
}

// descend walks from the root to key's location and records the path.
// Every comparison of a mutating operation happens here, before the
// caller touches the tree, so a comparison failure always leaves the
// map unchanged.
func (m *Map[K, V]) descend(key K) (path []pathStep[K, V], found bool, err error) {
	if m.root == nil {
		return nil, false, nil
	}
	path = make([]pathStep[K, V], 0, m.height)
	n := m.root
	for {
		i, hit, err := m.findSlot(n, key)
		if err != nil {
			return nil, false, err
		}
		path = append(path, pathStep[K, V]{n: n, idx: i})
		if hit {
			return path, true, nil
		}
		if n.isLeaf() {
			return path, false, nil
		}
		n = n.children[i]
	}
}

// Get returns the value stored for key, or ErrKeyNotFound.
func (m *Map[K, V]) Get(key K) (V, error) {
	var zero V
	if m == nil {
		return zero, fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}
	n, i, found, err := m.lookup(key)
	if err != nil {
		return zero, err
	}
	if !found {
		return zero, fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}
	return n.pairs[i].val, nil
}

// GetOr returns the value stored for key, or def when key is absent.
func (m *Map[K, V]) GetOr(key K, def V) (V, error) {
	if m == nil {
		return def, nil
	}
	n, i, found, err := m.lookup(key)
	if err != nil {
		return def, err
	}
	if !found {
		return def, nil
	}
	return n.pairs[i].val, nil
}

// Contains reports whether key is present.
func (m *Map[K, V]) Contains(key K) (bool, error) {
	if m == nil {
		return false, nil
	}
	_, _, found, err := m.lookup(key)
	if err != nil {
		return false, err
	}
	return found, nil
}
