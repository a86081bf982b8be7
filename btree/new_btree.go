package btree

import (
	"cmp"

	"github.com/cockroachdb/errors"
)

// New creates a B-tree ordered by the natural order of K.
//
// New(2), for example, creates a 2-3-4 tree: every non-root node holds 1-3
// entries and internal nodes 2-4 children.
func New[K cmp.Ordered, V any](degree int) *BTree[K, V] {
	return NewFunc[K, V](degree, cmp.Compare[K])
}

// NewFunc creates a B-tree ordered by compare, which must be a total order
// returning <0, 0 or >0.
func NewFunc[K, V any](degree int, compare func(a, b K) int) *BTree[K, V] {
	if degree < 2 {
		panic(errors.AssertionFailedf("bad degree %d: minimum degree is 2", degree))
	}
	if compare == nil {
		panic(errors.AssertionFailedf("nil comparator"))
	}
	return &BTree[K, V]{
		root:    newNode[K, V](true, compare),
		t:       degree,
		minKeys: degree - 1,
		maxKeys: 2*degree - 1,
		cmp:     compare,
	}
}

// Degree returns the minimum degree t.
func (t *BTree[K, V]) Degree() int {
	return t.t
}

// Len returns the number of entries in the tree.
func (t *BTree[K, V]) Len() int {
	return t.count
}

// RootSize returns the number of entries held by the root node.
func (t *BTree[K, V]) RootSize() int {
	return t.root.size()
}

// Height returns the number of levels; a tree with only a root has height 1.
func (t *BTree[K, V]) Height() int {
	h := 1
	for n := t.root; !n.leaf; n = n.children[0] {
		h++
	}
	return h
}
