package btree

import "testing"

func collectForward(t *testing.T, m *Map[int, int]) []int {
	t.Helper()
	it := m.Iterate()
	var keys []int
	for it.Next() {
		keys = append(keys, it.Key())
		if it.Value() != it.Key()*10 {
			t.Fatalf("value mismatch for key %d: got=%d", it.Key(), it.Value())
		}
	}
	if err := it.Err(); err != nil {
		t.Fatalf("iteration failed: %v", err)
	}
	return keys
}

func TestIterateAscendingOrder(t *testing.T) {
	m := newIntMap(t, 4)
	putAll(t, m, 5, 3, 8, 1, 4, 7, 2, 6)
	keys := collectForward(t, m)
	want := []int{1, 2, 3, 4, 5, 6, 7, 8}
	if len(keys) != len(want) {
		t.Fatalf("key count mismatch: got=%v want=%v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("order mismatch at %d: got=%v want=%v", i, keys, want)
		}
	}
}

func TestIterateReverseDescendingOrder(t *testing.T) {
	m := newIntMap(t, 4)
	putAll(t, m, 5, 3, 8, 1, 4, 7, 2, 6)
	it := m.IterateReverse()
	want := []int{8, 7, 6, 5, 4, 3, 2, 1}
	for i, k := range want {
		if !it.Next() {
			t.Fatalf("cursor ended early at step %d", i)
		}
		if it.Key() != k || it.Value() != k*10 {
			t.Fatalf("reverse step %d: got=(%d,%d) want=(%d,%d)", i, it.Key(), it.Value(), k, k*10)
		}
	}
	if it.Next() {
		t.Fatalf("cursor yielded past the smallest key")
	}
	if err := it.Err(); err != nil {
		t.Fatalf("reverse iteration failed: %v", err)
	}
}

func TestIterateEmptyMap(t *testing.T) {
	m := newIntMap(t, 4)
	if m.Iterate().Next() {
		t.Fatalf("forward cursor on empty map must be exhausted")
	}
	if m.IterateReverse().Next() {
		t.Fatalf("reverse cursor on empty map must be exhausted")
	}
}

func TestIterateDeepTreeBothDirections(t *testing.T) {
	m := newIntMap(t, 4)
	for i := 0; i < 200; i++ {
		putAll(t, m, i)
	}
	keys := collectForward(t, m)
	if len(keys) != 200 {
		t.Fatalf("unexpected key count: %d", len(keys))
	}
	for i, k := range keys {
		if k != i {
			t.Fatalf("forward order broken at %d: got=%d", i, k)
		}
	}
	it := m.IterateReverse()
	for i := 199; i >= 0; i-- {
		if !it.Next() {
			t.Fatalf("reverse cursor ended early at key %d", i)
		}
		if it.Key() != i {
			t.Fatalf("reverse order broken: got=%d want=%d", it.Key(), i)
		}
	}
	if it.Next() {
		t.Fatalf("reverse cursor yielded past the smallest key")
	}
}

func TestCursorsAreIndependent(t *testing.T) {
	m := newIntMap(t, 4)
	putAll(t, m, 1, 2, 3, 4, 5)
	a := m.Iterate()
	b := m.Iterate()
	a.Next()
	a.Next()
	a.Next()
	b.Next()
	if a.Key() != 3 || b.Key() != 1 {
		t.Fatalf("cursors interfere: a=%d b=%d", a.Key(), b.Key())
	}
}

func TestAllSeqAndEarlyBreak(t *testing.T) {
	m := newIntMap(t, 4)
	putAll(t, m, 5, 3, 8, 1, 4)
	var visited []int
	for k, v := range m.All() {
		if v != k*10 {
			t.Fatalf("value mismatch for key %d: got=%d", k, v)
		}
		visited = append(visited, k)
		if len(visited) == 3 {
			break
		}
	}
	want := []int{1, 3, 4}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("unexpected visit order: got=%v want=%v", visited, want)
		}
	}
}

func TestBackwardSeq(t *testing.T) {
	m := newIntMap(t, 4)
	putAll(t, m, 2, 9, 4)
	var visited []int
	for k := range m.Backward() {
		visited = append(visited, k)
	}
	want := []int{9, 4, 2}
	if len(visited) != len(want) {
		t.Fatalf("unexpected visit count: got=%v want=%v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("unexpected backward order: got=%v want=%v", visited, want)
		}
	}
}

func TestForEachEarlyStop(t *testing.T) {
	m := newIntMap(t, 4)
	putAll(t, m, 1, 2, 3, 4, 5)
	count := 0
	m.ForEach(func(k, v int) bool {
		count++
		return k < 3
	})
	if count != 3 {
		t.Fatalf("expected 3 visits before the stop, got %d", count)
	}
}
