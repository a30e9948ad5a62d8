package btree

import "fmt"

// Check validates structural tree invariants.
//
// This checker is intentionally strict and should be used in tests while the
// implementation is evolving. Regular operations keep the invariants intact
// as they go.
func (m *Map[K, V]) Check() error {
	if m == nil {
		return fmt.Errorf("%w: nil map", ErrInvalidConfig)
	}
	if m.root == nil {
		if m.size != 0 {
			return fmt.Errorf("%w: empty tree must have size=0", ErrInvalidConfig)
		}
		if m.height != 0 {
			return fmt.Errorf("%w: empty tree must have height=0", ErrInvalidConfig)
		}
		return nil
	}
	if m.height <= 0 {
		return fmt.Errorf("%w: non-empty tree must have height > 0", ErrInvalidConfig)
	}
	if len(m.root.pairs) == 0 {
		return fmt.Errorf("%w: root holds no pairs", ErrInvalidConfig)
	}
	items, height, _, err := m.checkNode(m.root, true)
	if err != nil {
		return err
	}
	if items != m.size {
		return fmt.Errorf("%w: size mismatch (%d != %d)", ErrInvalidConfig, items, m.size)
	}
	if height != m.height {
		return fmt.Errorf("%w: height mismatch (%d != %d)", ErrInvalidConfig, height, m.height)
	}
	return nil
}

// keySpan is the key range covered by a subtree. ok is false for
// subtrees without any pairs, which order-2 trees produce.
type keySpan[K any] struct {
	min, max K
	ok       bool
}

func (m *Map[K, V]) checkNode(n *node[K, V], isRoot bool) (items int, height int, span keySpan[K], err error) {
	if n == nil {
		return 0, 0, span, fmt.Errorf("%w: nil node", ErrInvalidConfig)
	}
	if len(n.pairs) > m.maxPairs() {
		return 0, 0, span, fmt.Errorf("%w: pair count %d exceeds order %d",
			ErrInvalidConfig, len(n.pairs), m.cfg.Order)
	}
	if !isRoot && len(n.pairs) < m.minPairs() {
		return 0, 0, span, fmt.Errorf("%w: pair count %d below fill minimum %d",
			ErrInvalidConfig, len(n.pairs), m.minPairs())
	}
	for i := 1; i < len(n.pairs); i++ {
		cc, cerr := m.cfg.Compare(n.pairs[i-1].key, n.pairs[i].key)
		if cerr != nil {
			return 0, 0, span, cerr
		}
		if cc >= 0 {
			return 0, 0, span, fmt.Errorf("%w: pairs out of order at index %d", ErrInvalidConfig, i)
		}
	}
	if len(n.pairs) > 0 {
		span = keySpan[K]{min: n.pairs[0].key, max: n.pairs[len(n.pairs)-1].key, ok: true}
	}
	if n.isLeaf() {
		return len(n.pairs), 1, span, nil
	}
	if len(n.children) != len(n.pairs)+1 {
		return 0, 0, span, fmt.Errorf("%w: internal node has %d children for %d pairs",
			ErrInvalidConfig, len(n.children), len(n.pairs))
	}
	items = len(n.pairs)
	var childHeight int
	for i, child := range n.children {
		cItems, cHeight, cSpan, cErr := m.checkNode(child, false)
		if cErr != nil {
			return 0, 0, span, cErr
		}
		items += cItems
		if i == 0 {
			childHeight = cHeight
		} else if cHeight != childHeight {
			return 0, 0, span, fmt.Errorf("%w: non-uniform subtree heights", ErrInvalidConfig)
		}
		if !cSpan.ok {
			continue
		}
		if i > 0 {
			cc, cerr := m.cfg.Compare(n.pairs[i-1].key, cSpan.min)
			if cerr != nil {
				return 0, 0, span, cerr
			}
			if cc >= 0 {
				return 0, 0, span, fmt.Errorf("%w: child %d holds keys at or below its separator",
					ErrInvalidConfig, i)
			}
		}
		if i < len(n.pairs) {
			cc, cerr := m.cfg.Compare(cSpan.max, n.pairs[i].key)
			if cerr != nil {
				return 0, 0, span, cerr
			}
			if cc >= 0 {
				return 0, 0, span, fmt.Errorf("%w: child %d holds keys at or above its separator",
					ErrInvalidConfig, i)
			}
		}
		switch {
		case !span.ok:
			span = cSpan
		case i == 0:
			span.min = cSpan.min
		case i == len(n.pairs):
			span.max = cSpan.max
		}
	}
	return items, childHeight + 1, span, nil
}
