package btree

import "fmt"

// NodeInfo describes one tree node to diagnostic walkers. Keys and
// entries are preformatted with %v, so walkers need no knowledge of
// the key or value types.
type NodeInfo struct {
	Depth   int  // levels below the root, 0 for the root itself
	Index   int  // child slot within the parent, 0 for the root
	Leaf    bool
	Keys    []string
	Entries []string // "key=value" form of each pair
}

// WalkStructure visits every node in depth-first pre-order and hands
// visit a description of each. The walk stops early when visit
// returns false.
//
// This is a diagnostic helper; package dump builds its tree renderings
// on top of it.
func (m *Map[K, V]) WalkStructure(visit func(NodeInfo) bool) {
	if m == nil || m.root == nil || visit == nil {
		return
	}
	m.walkNode(m.root, 0, 0, visit)
}

func (m *Map[K, V]) walkNode(n *node[K, V], depth, index int, visit func(NodeInfo) bool) bool {
	info := NodeInfo{
		Depth:   depth,
		Index:   index,
		Leaf:    n.isLeaf(),
		Keys:    make([]string, len(n.pairs)),
		Entries: make([]string, len(n.pairs)),
	}
	for i, p := range n.pairs {
		info.Keys[i] = fmt.Sprintf("%v", p.key)
		info.Entries[i] = fmt.Sprintf("%v=%v", p.key, p.val)
	}
	if !visit(info) {
		return false
	}
	for i, child := range n.children {
		if !m.walkNode(child, depth+1, i, visit) {
			return false
		}
	}
	return true
}
