package btree

import "testing"

func TestVerifyDetectsDamage(t *testing.T) {
	fresh := func() *BTree[int, string] {
		tree := New[int, string](2)
		for k := 0; k < 30; k++ {
			tree.Insert(k, "")
		}
		if err := tree.Verify(); err != nil {
			t.Fatal(err)
		}
		return tree
	}

	tests := []struct {
		name   string
		damage func(tree *BTree[int, string])
	}{
		{"count", func(tree *BTree[int, string]) { tree.count++ }},
		{"leaf bound", func(tree *BTree[int, string]) {
			leaf := tree.root
			for !leaf.isLeaf() {
				leaf = leaf.children[0]
			}
			leaf.entries[0].Key = 1000
		}},
		{"leaf order", func(tree *BTree[int, string]) {
			leaf := tree.root
			for !leaf.isLeaf() {
				leaf = leaf.children[len(leaf.children)-1]
			}
			leaf.addEntry(Entry[int, string]{Key: leaf.entries[0].Key})
			tree.count++
		}},
		{"separator", func(tree *BTree[int, string]) {
			tree.root.entries[0].Key = -1
		}},
		{"missing child", func(tree *BTree[int, string]) {
			tree.root.children = tree.root.children[:len(tree.root.children)-1]
		}},
		{"overfull", func(tree *BTree[int, string]) {
			leaf := tree.root
			for !leaf.isLeaf() {
				leaf = leaf.children[len(leaf.children)-1]
			}
			for k := 100; leaf.size() <= tree.maxKeys; k++ {
				leaf.addEntry(Entry[int, string]{Key: k})
				tree.count++
			}
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tree := fresh()
			tc.damage(tree)
			if err := tree.Verify(); err == nil {
				t.Error("Verify accepted a damaged tree")
			}
		})
	}
}
