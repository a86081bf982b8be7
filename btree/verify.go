package btree

import "github.com/cockroachdb/errors"

// Verify checks the structural invariants of the whole tree: node sizes,
// child counts, key order inside and across nodes, uniform leaf depth and
// the cached entry count. It returns the first violation found.
func (t *BTree[K, V]) Verify() error {
	if !t.root.isLeaf() && t.root.size() == 0 {
		return errors.New("internal root has no entries")
	}
	count := 0
	if _, err := t.verifyNode(t.root, nil, nil, 0, &count); err != nil {
		return err
	}
	if count != t.count {
		return errors.Newf("tree counts %d entries, walk found %d", t.count, count)
	}
	return nil
}

// verifyNode returns the depth of the leaves under n. lo and hi, when set,
// are exclusive bounds every key under n must respect.
func (t *BTree[K, V]) verifyNode(n *node[K, V], lo, hi *K, depth int, count *int) (int, error) {
	size := n.size()
	if size > t.maxKeys {
		return 0, errors.Newf("node at depth %d has %d entries, max %d", depth, size, t.maxKeys)
	}
	if n != t.root && size < t.minKeys {
		return 0, errors.Newf("node at depth %d has %d entries, min %d", depth, size, t.minKeys)
	}
	*count += size

	for i := 1; i < size; i++ {
		if t.cmp(n.entries[i-1].Key, n.entries[i].Key) >= 0 {
			return 0, errors.Newf("entries %d and %d out of order at depth %d", i-1, i, depth)
		}
	}
	if size > 0 {
		if lo != nil && t.cmp(*lo, n.entries[0].Key) >= 0 {
			return 0, errors.Newf("key %v at depth %d not above separator %v", n.entries[0].Key, depth, *lo)
		}
		if hi != nil && t.cmp(n.entries[size-1].Key, *hi) >= 0 {
			return 0, errors.Newf("key %v at depth %d not below separator %v", n.entries[size-1].Key, depth, *hi)
		}
	}

	if n.isLeaf() {
		if len(n.children) != 0 {
			return 0, errors.Newf("leaf at depth %d has %d children", depth, len(n.children))
		}
		return depth, nil
	}
	if len(n.children) != size+1 {
		return 0, errors.Newf("internal node at depth %d has %d entries and %d children", depth, size, len(n.children))
	}

	leafDepth := -1
	for i, c := range n.children {
		childLo, childHi := lo, hi
		if i > 0 {
			childLo = &n.entries[i-1].Key
		}
		if i < size {
			childHi = &n.entries[i].Key
		}
		d, err := t.verifyNode(c, childLo, childHi, depth+1, count)
		if err != nil {
			return 0, err
		}
		if leafDepth >= 0 && d != leafDepth {
			return 0, errors.Newf("leaves at depths %d and %d", leafDepth, d)
		}
		leafDepth = d
	}
	return leafDepth, nil
}
