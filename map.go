package btree

import (
	"cmp"
	"fmt"
	"iter"
	"reflect"
)

// Map is an ordered key/value container backed by a B-tree of the
// classic kind, i.e., one that stores pairs in internal nodes as well
// as in leaves. The zero value is not usable; create maps with New or
// NewOrdered.
//
// A Map is not safe for concurrent use. Wrap it in a mutex or confine
// it to one goroutine.
type Map[K, V any] struct {
	cfg    Config[K]
	root   *node[K, V]
	size   int
	height int
}

// Pair is a key/value pair, as handed out by Items and consumed by
// UpdatePairs.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// Last addresses the final pair of a map in PeekItem and PopItem. It
// is the only negative index those operations accept.
const Last = -1

// New creates an empty map from cfg. A zero Order picks DefaultOrder;
// the comparator is mandatory.
func New[K, V any](cfg Config[K]) (*Map[K, V], error) {
	cfg = cfg.normalized()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Map[K, V]{cfg: cfg}, nil
}

// NewOrdered creates an empty map with the default order over a key
// type with a natural ordering.
func NewOrdered[K cmp.Ordered, V any]() *Map[K, V] {
	m, err := New[K, V](Config[K]{Compare: Ordered[K]()})
	assert(err == nil, "NewOrdered expected the default configuration to validate")
	return m
}

// maxPairs is the most pairs any node may hold, order-1.
func (m *Map[K, V]) maxPairs() int {
	return m.cfg.Order - 1
}

// minPairs is the fewest pairs a non-root node may hold,
// ceil(order/2)-1. It is zero for maps of order 2, which makes
// keyless nodes legal in those trees.
func (m *Map[K, V]) minPairs() int {
	return (m.cfg.Order+1)/2 - 1
}

// Len returns the number of pairs in the map.
func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return m.size
}

// IsEmpty returns true if the map holds no pairs.
func (m *Map[K, V]) IsEmpty() bool {
	return m.Len() == 0
}

// Order returns the order the map was created with.
func (m *Map[K, V]) Order() int {
	if m == nil {
		return 0
	}
	return m.cfg.Order
}

// Height returns the number of node levels, zero for an empty map.
func (m *Map[K, V]) Height() int {
	if m == nil {
		return 0
	}
	return m.height
}

// Clear removes all pairs. The garbage collector reclaims the nodes.
func (m *Map[K, V]) Clear() {
	if m == nil {
		return
	}
	m.root = nil
	m.size = 0
	m.height = 0
}

// Min returns the smallest key and its value. Keys are never compared
// on the way, so the only possible error is ErrEmptyMap.
func (m *Map[K, V]) Min() (K, V, error) {
	var key K
	var val V
	if m == nil || m.size == 0 {
		return key, val, ErrEmptyMap
	}
	// The minimum sits in the deepest left-spine node that holds
	// pairs. For orders above 2 that is simply the leftmost leaf, but
	// order-2 trees may end their spines in keyless nodes.
	found := false
	for n := m.root; ; n = n.children[0] {
		if len(n.pairs) > 0 {
			key, val = n.pairs[0].key, n.pairs[0].val
			found = true
		}
		if n.isLeaf() {
			break
		}
	}
	assert(found, "Min expected a pair on the left spine of a non-empty map")
	return key, val, nil
}

// Max returns the largest key and its value, mirroring Min.
func (m *Map[K, V]) Max() (K, V, error) {
	var key K
	var val V
	if m == nil || m.size == 0 {
		return key, val, ErrEmptyMap
	}
	found := false
	for n := m.root; ; n = n.children[len(n.children)-1] {
		if len(n.pairs) > 0 {
			last := n.pairs[len(n.pairs)-1]
			key, val = last.key, last.val
			found = true
		}
		if n.isLeaf() {
			break
		}
	}
	assert(found, "Max expected a pair on the right spine of a non-empty map")
	return key, val, nil
}

// PeekItem returns the pair at a positional index without removing
// it. Only the two ends are addressable: index 0 is the smallest
// pair, Last the largest. Any other index fails with
// ErrIndexOutOfBounds, and an empty map fails with ErrEmptyMap.
func (m *Map[K, V]) PeekItem(index int) (K, V, error) {
	switch index {
	case 0:
		return m.Min()
	case Last:
		return m.Max()
	}
	var key K
	var val V
	return key, val, fmt.Errorf("%w: %d", ErrIndexOutOfBounds, index)
}

// PopItem removes and returns the pair at a positional index, with
// the same index rules as PeekItem.
func (m *Map[K, V]) PopItem(index int) (K, V, error) {
	key, val, err := m.PeekItem(index)
	if err != nil {
		return key, val, err
	}
	if err := m.Delete(key); err != nil {
		return key, val, err
	}
	return key, val, nil
}

// Update inserts every pair of src in turn, overwriting values for
// keys already present. Pairs are committed one by one: if a key in
// src cannot be compared to the stored keys, Update stops at that
// pair and returns the comparison error, with all earlier pairs
// already in place.
func (m *Map[K, V]) Update(src iter.Seq2[K, V]) error {
	if src == nil {
		return nil
	}
	for k, v := range src {
		if err := m.Put(k, v); err != nil {
			return err
		}
	}
	return nil
}

// UpdatePairs is Update for a slice of pairs.
func (m *Map[K, V]) UpdatePairs(pairs []Pair[K, V]) error {
	for _, p := range pairs {
		if err := m.Put(p.Key, p.Value); err != nil {
			return err
		}
	}
	return nil
}

// Keys returns all keys in ascending order.
func (m *Map[K, V]) Keys() []K {
	if m.Len() == 0 {
		return nil
	}
	keys := make([]K, 0, m.size)
	it := m.Iterate()
	for it.Next() {
		keys = append(keys, it.Key())
	}
	return keys
}

// Values returns all values, ordered by their keys.
func (m *Map[K, V]) Values() []V {
	if m.Len() == 0 {
		return nil
	}
	vals := make([]V, 0, m.size)
	it := m.Iterate()
	for it.Next() {
		vals = append(vals, it.Value())
	}
	return vals
}

// Items returns all pairs in ascending key order.
func (m *Map[K, V]) Items() []Pair[K, V] {
	if m.Len() == 0 {
		return nil
	}
	items := make([]Pair[K, V], 0, m.size)
	it := m.Iterate()
	for it.Next() {
		items = append(items, Pair[K, V]{Key: it.Key(), Value: it.Value()})
	}
	return items
}

// Copy returns a structurally independent map with the same pairs,
// order and comparator. Keys and values themselves are shared, not
// cloned; mutating the copy never changes the original's shape.
func (m *Map[K, V]) Copy() *Map[K, V] {
	if m == nil {
		return nil
	}
	return &Map[K, V]{
		cfg:    m.cfg,
		root:   cloneNode(m.root),
		size:   m.size,
		height: m.height,
	}
}

// Equal reports whether both maps hold the same pairs, regardless of
// their orders or node layouts. Keys are matched with the receiver's
// comparator, values with reflect.DeepEqual. Comparing keys across
// maps can fail, and then the comparison error is returned.
func (m *Map[K, V]) Equal(other *Map[K, V]) (bool, error) {
	if m == nil || other == nil {
		return m == other, nil
	}
	if m == other {
		return true, nil
	}
	if m.size != other.size {
		return false, nil
	}
	it, ot := m.Iterate(), other.Iterate()
	for it.Next() {
		if !ot.Next() {
			return false, nil
		}
		cc, err := m.cfg.Compare(it.Key(), ot.Key())
		if err != nil {
			return false, err
		}
		if cc != 0 || !reflect.DeepEqual(it.Value(), ot.Value()) {
			return false, nil
		}
	}
	return true, nil
}

// String returns a short diagnostic description of the map.
func (m *Map[K, V]) String() string {
	return fmt.Sprintf("Map(order=%d, size=%d)", m.Order(), m.Len())
}
