// Structure of the B-tree
/*
Tree
 ├── Root Node (0 .. 2t-1 entries)
 │      └── Child Nodes (t-1 .. 2t-1 entries, t .. 2t children)
 │             └── Leaf Nodes (entries only)


- entries: sorted ascending by key, no duplicates, each entry carries its value
- internal nodes: children length == len(entries)+1
- keys under children[i] < entries[i].Key < keys under children[i+1]
- all leaf nodes at same depth
- every non-root node is owned by exactly one parent

*/
package btree

const DefaultDegree = 2

// Entry is a key and the value stored with it.
type Entry[K, V any] struct {
	Key   K
	Value V
}

type node[K, V any] struct {
	entries  []Entry[K, V]
	children []*node[K, V] // only for internal node
	leaf     bool
	cmp      func(a, b K) int
}

// BTree is an in-memory B-tree of minimum degree t. It is not safe for
// concurrent use.
type BTree[K, V any] struct {
	root    *node[K, V]
	t       int
	minKeys int // t-1
	maxKeys int // 2t-1
	cmp     func(a, b K) int
	count   int
}
