package btree

import (
	"math/rand"
	"testing"
)

func leafOf(keys ...int) *node[int, int] {
	n := &node[int, int]{pairs: make([]pair[int, int], 0, len(keys)+1)}
	for _, k := range keys {
		n.pairs = append(n.pairs, pair[int, int]{key: k, val: k * 10})
	}
	return n
}

func innerOf(seps []int, children ...*node[int, int]) *node[int, int] {
	n := &node[int, int]{
		pairs:    make([]pair[int, int], 0, len(seps)+1),
		children: make([]*node[int, int], 0, len(children)+1),
	}
	for _, k := range seps {
		n.pairs = append(n.pairs, pair[int, int]{key: k, val: k * 10})
	}
	n.children = append(n.children, children...)
	return n
}

// mount installs a hand-built root and fixes the bookkeeping fields.
func mount(t *testing.T, m *Map[int, int], root *node[int, int], size, height int) {
	t.Helper()
	m.root = root
	m.size = size
	m.height = height
	if err := m.Check(); err != nil {
		t.Fatalf("hand-built tree is invalid before the test: %v", err)
	}
}

func TestDeleteBorrowsFromLeftSibling(t *testing.T) {
	m := newIntMap(t, 4)
	mount(t, m, innerOf([]int{20}, leafOf(5, 10, 15), leafOf(25)), 5, 2)
	if err := m.Delete(25); err != nil {
		t.Fatalf("Delete(25) failed: %v", err)
	}
	if err := m.Check(); err != nil {
		t.Fatalf("invariants broken after borrow: %v", err)
	}
	if m.root.pairs[0].key != 15 {
		t.Fatalf("expected separator 15 after left borrow, got %d", m.root.pairs[0].key)
	}
	if len(m.root.children[0].pairs) != 2 || len(m.root.children[1].pairs) != 1 {
		t.Fatalf("unexpected occupancy after borrow: left=%d right=%d",
			len(m.root.children[0].pairs), len(m.root.children[1].pairs))
	}
	assertKeys(t, m, 5, 10, 15, 20)
}

func TestDeleteBorrowsFromRightSibling(t *testing.T) {
	m := newIntMap(t, 4)
	mount(t, m, innerOf([]int{20}, leafOf(15), leafOf(25, 30, 35)), 5, 2)
	if err := m.Delete(15); err != nil {
		t.Fatalf("Delete(15) failed: %v", err)
	}
	if err := m.Check(); err != nil {
		t.Fatalf("invariants broken after borrow: %v", err)
	}
	if m.root.pairs[0].key != 25 {
		t.Fatalf("expected separator 25 after right borrow, got %d", m.root.pairs[0].key)
	}
	assertKeys(t, m, 20, 25, 30, 35)
}

func TestDeleteMergeCollapsesRoot(t *testing.T) {
	m := newIntMap(t, 4)
	mount(t, m, innerOf([]int{20}, leafOf(10), leafOf(30)), 3, 2)
	if err := m.Delete(30); err != nil {
		t.Fatalf("Delete(30) failed: %v", err)
	}
	if err := m.Check(); err != nil {
		t.Fatalf("invariants broken after merge: %v", err)
	}
	if m.Height() != 1 {
		t.Fatalf("expected root collapse to height 1, got %d", m.Height())
	}
	assertKeys(t, m, 10, 20)
}

func TestDeleteInternalKeySwapsPredecessor(t *testing.T) {
	m := newIntMap(t, 4)
	mount(t, m, innerOf([]int{20}, leafOf(5, 10, 15), leafOf(25, 30)), 6, 2)
	if err := m.Delete(20); err != nil {
		t.Fatalf("Delete(20) failed: %v", err)
	}
	if err := m.Check(); err != nil {
		t.Fatalf("invariants broken after predecessor swap: %v", err)
	}
	if m.root.pairs[0].key != 15 {
		t.Fatalf("expected predecessor 15 as new separator, got %d", m.root.pairs[0].key)
	}
	v, err := m.Get(15)
	if err != nil || v != 150 {
		t.Fatalf("predecessor lost its value: got=%d err=%v", v, err)
	}
	assertKeys(t, m, 5, 10, 15, 25, 30)
}

func TestDeleteCascadingUnderflow(t *testing.T) {
	m := newIntMap(t, 4)
	root := innerOf([]int{100},
		innerOf([]int{50}, leafOf(40), leafOf(60)),
		innerOf([]int{150}, leafOf(140), leafOf(160)),
	)
	mount(t, m, root, 7, 3)
	if err := m.Delete(40); err != nil {
		t.Fatalf("Delete(40) failed: %v", err)
	}
	if err := m.Check(); err != nil {
		t.Fatalf("invariants broken after cascading underflow: %v", err)
	}
	if m.Height() != 2 {
		t.Fatalf("expected cascading merge to reduce height 3->2, got %d", m.Height())
	}
	assertKeys(t, m, 50, 60, 100, 140, 150, 160)
}

func TestDeleteDrainAscending(t *testing.T) {
	m := newIntMap(t, 4)
	for i := 0; i < 100; i++ {
		putAll(t, m, i)
	}
	for i := 0; i < 100; i++ {
		if err := m.Delete(i); err != nil {
			t.Fatalf("Delete(%d) failed: %v", i, err)
		}
		if err := m.Check(); err != nil {
			t.Fatalf("invariants broken after Delete(%d): %v", i, err)
		}
	}
	if m.root != nil || m.Len() != 0 || m.Height() != 0 {
		t.Fatalf("expected empty map after drain: len=%d height=%d", m.Len(), m.Height())
	}
}

func TestDeleteDrainDescending(t *testing.T) {
	m := newIntMap(t, 5)
	for i := 0; i < 100; i++ {
		putAll(t, m, i)
	}
	for i := 99; i >= 0; i-- {
		if err := m.Delete(i); err != nil {
			t.Fatalf("Delete(%d) failed: %v", i, err)
		}
		if err := m.Check(); err != nil {
			t.Fatalf("invariants broken after Delete(%d): %v", i, err)
		}
	}
	if m.Len() != 0 || m.Height() != 0 {
		t.Fatalf("expected empty map after drain: len=%d height=%d", m.Len(), m.Height())
	}
}

func TestDeleteDrainShuffled(t *testing.T) {
	m := newIntMap(t, 4)
	const count = 128
	for i := 0; i < count; i++ {
		putAll(t, m, i)
	}
	r := rand.New(rand.NewSource(7))
	order := r.Perm(count)
	for step, k := range order {
		if err := m.Delete(k); err != nil {
			t.Fatalf("Delete(%d) at step %d failed: %v", k, step, err)
		}
		if err := m.Check(); err != nil {
			t.Fatalf("invariants broken at step %d: %v", step, err)
		}
		if m.Len() != count-step-1 {
			t.Fatalf("size drift at step %d: got=%d want=%d", step, m.Len(), count-step-1)
		}
	}
}

func TestOrderTwoInsertAndDrain(t *testing.T) {
	m := newIntMap(t, 2)
	const count = 32
	for i := 0; i < count; i++ {
		putAll(t, m, i)
		if err := m.Check(); err != nil {
			t.Fatalf("invariants broken after Put(%d): %v", i, err)
		}
	}
	assertKeysAscending(t, m, count)
	// Deleting the root key over and over walks through the degenerate
	// shapes order-2 trees produce: keyless spines, empty leaves,
	// multi-step root collapses.
	for m.Len() > 0 {
		k := m.root.pairs[0].key
		if err := m.Delete(k); err != nil {
			t.Fatalf("Delete(%d) failed: %v", k, err)
		}
		if err := m.Check(); err != nil {
			t.Fatalf("invariants broken after Delete(%d): %v", k, err)
		}
	}
	if m.root != nil || m.Height() != 0 {
		t.Fatalf("expected empty tree, height=%d", m.Height())
	}
}

func TestOrderTwoKeylessSubtreeDrop(t *testing.T) {
	m := newIntMap(t, 2)
	root := innerOf([]int{2},
		innerOf(nil, leafOf()),
		innerOf([]int{3}, leafOf(), leafOf(4)),
	)
	mount(t, m, root, 3, 3)
	if err := m.Delete(2); err != nil {
		t.Fatalf("Delete(2) failed: %v", err)
	}
	if err := m.Check(); err != nil {
		t.Fatalf("invariants broken after keyless-subtree drop: %v", err)
	}
	if m.Height() != 2 {
		t.Fatalf("expected root collapse to height 2, got %d", m.Height())
	}
	assertKeys(t, m, 3, 4)
}

func TestOrderTwoInternalPredecessor(t *testing.T) {
	m := newIntMap(t, 2)
	root := innerOf([]int{5},
		innerOf([]int{2}, leafOf(1), leafOf()),
		innerOf([]int{7}, leafOf(), leafOf(8)),
	)
	mount(t, m, root, 5, 3)
	if err := m.Delete(5); err != nil {
		t.Fatalf("Delete(5) failed: %v", err)
	}
	if err := m.Check(); err != nil {
		t.Fatalf("invariants broken after internal predecessor removal: %v", err)
	}
	if m.root.pairs[0].key != 2 {
		t.Fatalf("expected predecessor 2 as new root key, got %d", m.root.pairs[0].key)
	}
	assertKeys(t, m, 1, 2, 7, 8)
}

func TestOrderThreeInsertAndDrain(t *testing.T) {
	m := newIntMap(t, 3)
	const count = 64
	for i := count - 1; i >= 0; i-- {
		putAll(t, m, i)
		if err := m.Check(); err != nil {
			t.Fatalf("invariants broken after Put(%d): %v", i, err)
		}
	}
	r := rand.New(rand.NewSource(11))
	for _, k := range r.Perm(count) {
		if err := m.Delete(k); err != nil {
			t.Fatalf("Delete(%d) failed: %v", k, err)
		}
		if err := m.Check(); err != nil {
			t.Fatalf("invariants broken after Delete(%d): %v", k, err)
		}
	}
	if m.Len() != 0 {
		t.Fatalf("expected empty map, size=%d", m.Len())
	}
}
