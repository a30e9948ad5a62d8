package btree

// Bound is one end of a range query. The zero value is an open end,
// like NoBound.
type Bound[K any] struct {
	key  K
	has  bool
	incl bool
}

// Incl bounds a range at key, including it.
func Incl[K any](key K) Bound[K] {
	return Bound[K]{key: key, has: true, incl: true}
}

// Excl bounds a range at key, excluding it.
func Excl[K any](key K) Bound[K] {
	return Bound[K]{key: key, has: true}
}

// NoBound leaves one end of a range open.
func NoBound[K any]() Bound[K] {
	return Bound[K]{}
}

// Range returns a cursor over the pairs with keys between low and
// high, in ascending key order. Either bound may be open, and Incl
// and Excl choose per bound whether the bound key itself belongs to
// the range.
//
// The low bound is resolved when the cursor is created; a comparison
// failure there, or against the high bound during traversal, stops
// the cursor and surfaces through Err. The map itself is never
// modified by a range query.
func (m *Map[K, V]) Range(low, high Bound[K]) *Cursor[K, V] {
	c := &Cursor[K, V]{m: m, high: high}
	if m == nil || m.root == nil {
		return c
	}
	c.stack = make([]cursorFrame[K, V], 0, m.height)
	if !low.has {
		c.pushFirst(m.root)
		return c
	}
	n := m.root
	for {
		i, hit, err := m.findSlot(n, low.key)
		if err != nil {
			c.err = err
			c.stack = nil
			return c
		}
		c.stack = append(c.stack, cursorFrame[K, V]{n: n, idx: i})
		if hit {
			if !low.incl {
				c.step()
			}
			return c
		}
		if n.isLeaf() {
			return c
		}
		n = n.children[i]
	}
}

// RangeFrom is shorthand for Range(Incl(low), Excl(high)): the
// half-open interval [low, high) most scans want.
func (m *Map[K, V]) RangeFrom(low, high K) *Cursor[K, V] {
	return m.Range(Incl(low), Excl(high))
}
