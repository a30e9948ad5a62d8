package btree

import (
	"fmt"
	"io"
	"strings"
)

type nodeids[K, V any] struct {
	idTable map[*node[K, V]]int
	max     int
}

func newtable[K, V any]() nodeids[K, V] {
	return nodeids[K, V]{
		idTable: make(map[*node[K, V]]int),
		max:     1,
	}
}

func (ids nodeids[K, V]) find(n *node[K, V]) int {
	return ids.idTable[n]
}

func (ids *nodeids[K, V]) alloc(n *node[K, V]) int {
	if id := ids.find(n); id > 0 {
		return id
	}
	ids.idTable[n] = ids.max
	ids.max++
	return ids.max - 1
}

// Dot outputs the internal structure of a Map in Graphviz DOT format
// (for debugging purposes).
func (m *Map[K, V]) Dot(w io.Writer) {
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12];\n")
	if m != nil && m.root != nil {
		ids := newtable[K, V]()
		nodelist, edgelist := "", ""
		var walk func(n *node[K, V])
		walk = func(n *node[K, V]) {
			ID := ids.alloc(n)
			if len(n.pairs) == 0 {
				nodelist += fmt.Sprintf("\"%d\" %s;\n", ID, emptyNode())
			} else {
				keys := make([]string, len(n.pairs))
				for i, p := range n.pairs {
					keys[i] = fmt.Sprintf("%v", p.key)
				}
				label := strings.Join(keys, " | ")
				nodelist += fmt.Sprintf("\"%d\" [label=\"%s\" %s];\n", ID, label, nodeDotStyles(n.isLeaf()))
			}
			for _, child := range n.children {
				walk(child)
				edgelist += fmt.Sprintf("\"%d\" -> \"%d\";\n", ID, ids.find(child))
			}
		}
		walk(m.root)
		io.WriteString(w, nodelist)
		io.WriteString(w, edgelist)
	}
	io.WriteString(w, "}\n")
}

func emptyNode() string {
	return "[label=\"\",color=black,shape=circle,fixedsize=true,width=.4]"
}

func nodeDotStyles(isleaf bool) string {
	s := "style=filled"
	if isleaf {
		s += ",shape=box"
	} else {
		s += ",color=black,fillcolor=\"#a3d7e4\",shape=box"
	}
	return s
}
