package btree

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a level order view of the tree to w, one line per node:
//
//	Level 0:
//	  INTERNAL [10]
//	Level 1:
//	  LEAF [5 6 7]
//	  LEAF [12 17 20 30]
func (t *BTree[K, V]) Dump(w io.Writer) error {
	queue := []*node[K, V]{t.root}
	level := 0
	for len(queue) > 0 {
		size := len(queue)
		if _, err := fmt.Fprintf(w, "Level %d:\n", level); err != nil {
			return err
		}
		for _, n := range queue[:size] {
			kind := "LEAF"
			if !n.isLeaf() {
				kind = "INTERNAL"
				queue = append(queue, n.children...)
			}
			if _, err := fmt.Fprintf(w, "  %s [%s]\n", kind, n.keyString()); err != nil {
				return err
			}
		}
		queue = queue[size:]
		level++
	}
	return nil
}

func (n *node[K, V]) keyString() string {
	keys := make([]string, len(n.entries))
	for i, e := range n.entries {
		keys[i] = fmt.Sprint(e.Key)
	}
	return strings.Join(keys, " ")
}
