package btree

import "iter"

// cursorFrame is one step of the explicit iteration stack. idx is the
// next pair index to yield at this node, counting down for reverse
// cursors. When an internal frame is on top of the stack, the subtree
// between the cursor position and that pair has been consumed.
type cursorFrame[K, V any] struct {
	n   *node[K, V]
	idx int
}

// Cursor is a lazy, one-shot, in-order iterator over a Map, following
// the scanner idiom:
//
//	it := m.Iterate()
//	for it.Next() {
//	    use(it.Key(), it.Value())
//	}
//	if err := it.Err(); err != nil {
//	    ...
//	}
//
// Each call to Iterate, IterateReverse or Range creates an
// independent cursor; simultaneous cursors over one map do not
// interfere. Mutating the map while a cursor is open is not
// supported and leaves the cursor undefined.
type Cursor[K, V any] struct {
	m       *Map[K, V]
	stack   []cursorFrame[K, V]
	reverse bool
	high    Bound[K]
	cur     pair[K, V]
	err     error
}

// Iterate returns a cursor over all pairs in ascending key order.
func (m *Map[K, V]) Iterate() *Cursor[K, V] {
	c := &Cursor[K, V]{m: m}
	if m != nil && m.root != nil {
		c.stack = make([]cursorFrame[K, V], 0, m.height)
		c.pushFirst(m.root)
	}
	return c
}

// IterateReverse returns a cursor over all pairs in descending key
// order.
func (m *Map[K, V]) IterateReverse() *Cursor[K, V] {
	c := &Cursor[K, V]{m: m, reverse: true}
	if m != nil && m.root != nil {
		c.stack = make([]cursorFrame[K, V], 0, m.height)
		c.pushLast(m.root)
	}
	return c
}

// Next advances the cursor. It returns false when the sequence is
// exhausted, the upper bound is passed, or a comparison failed; the
// latter is reported by Err.
func (c *Cursor[K, V]) Next() bool {
	if c == nil || c.err != nil {
		return false
	}
	p, ok := c.step()
	if !ok {
		return false
	}
	if c.high.has {
		cc, err := c.m.cfg.Compare(p.key, c.high.key)
		if err != nil {
			c.err = err
			c.stack = nil
			return false
		}
		if cc > 0 || (cc == 0 && !c.high.incl) {
			c.stack = nil
			return false
		}
	}
	c.cur = p
	return true
}

// Key returns the key the cursor is positioned on. It is meaningful
// only after a Next call returned true.
func (c *Cursor[K, V]) Key() K {
	return c.cur.key
}

// Value returns the value the cursor is positioned on. It is
// meaningful only after a Next call returned true.
func (c *Cursor[K, V]) Value() V {
	return c.cur.val
}

// Err returns the comparison error that stopped the cursor, or nil.
func (c *Cursor[K, V]) Err() error {
	if c == nil {
		return nil
	}
	return c.err
}

// step advances to the next pair in stack order without bound checks.
func (c *Cursor[K, V]) step() (pair[K, V], bool) {
	for len(c.stack) > 0 {
		f := &c.stack[len(c.stack)-1]
		if c.reverse {
			if f.idx >= 0 {
				p := f.n.pairs[f.idx]
				f.idx--
				if !f.n.isLeaf() {
					c.pushLast(f.n.children[f.idx+1])
				}
				return p, true
			}
		} else if f.idx < len(f.n.pairs) {
			p := f.n.pairs[f.idx]
			f.idx++
			if !f.n.isLeaf() {
				c.pushFirst(f.n.children[f.idx])
			}
			return p, true
		}
		c.stack = c.stack[:len(c.stack)-1]
	}
	return pair[K, V]{}, false
}

// pushFirst descends the left spine of n, queueing every node's first
// pair.
func (c *Cursor[K, V]) pushFirst(n *node[K, V]) {
	for {
		c.stack = append(c.stack, cursorFrame[K, V]{n: n})
		if n.isLeaf() {
			return
		}
		n = n.children[0]
	}
}

// pushLast descends the right spine of n, queueing every node's last
// pair.
func (c *Cursor[K, V]) pushLast(n *node[K, V]) {
	for {
		c.stack = append(c.stack, cursorFrame[K, V]{n: n, idx: len(n.pairs) - 1})
		if n.isLeaf() {
			return
		}
		n = n.children[len(n.children)-1]
	}
}

// All returns all pairs in ascending key order for range-over-func
// loops. Full traversals never compare keys and cannot fail.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		it := m.Iterate()
		for it.Next() {
			if !yield(it.Key(), it.Value()) {
				return
			}
		}
	}
}

// Backward mirrors All in descending key order.
func (m *Map[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		it := m.IterateReverse()
		for it.Next() {
			if !yield(it.Key(), it.Value()) {
				return
			}
		}
	}
}

// ForEach walks all pairs in ascending key order.
//
// Iteration stops early if the callback returns false.
func (m *Map[K, V]) ForEach(fn func(key K, value V) bool) {
	if m == nil || fn == nil {
		return
	}
	it := m.Iterate()
	for it.Next() {
		if !fn(it.Key(), it.Value()) {
			return
		}
	}
}
