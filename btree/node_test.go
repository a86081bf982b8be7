package btree

import (
	"cmp"
	"testing"
)

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func leafOf(keys ...int) *node[int, string] {
	n := newNode[int, string](true, cmp.Compare[int])
	for _, k := range keys {
		n.addEntry(Entry[int, string]{Key: k, Value: "v"})
	}
	return n
}

func TestSearchKey(t *testing.T) {
	n := leafOf(10, 20, 30)

	tests := []struct {
		key   int
		found bool
		index int
	}{
		{5, false, 0},
		{10, true, 0},
		{15, false, 1},
		{20, true, 1},
		{30, true, 2},
		{35, false, 3},
	}
	for _, tc := range tests {
		switch r := n.searchKey(tc.key).(type) {
		case found[string]:
			if !tc.found || r.index != tc.index {
				t.Errorf("searchKey(%d) = found at %d, want found=%v index=%d", tc.key, r.index, tc.found, tc.index)
			}
		case notFound:
			if tc.found || r.index != tc.index {
				t.Errorf("searchKey(%d) = not found at %d, want found=%v index=%d", tc.key, r.index, tc.found, tc.index)
			}
		default:
			t.Fatalf("unexpected result %T", r)
		}
	}

	if _, ok := leafOf().searchKey(1).(notFound); !ok {
		t.Error("empty node should report not found")
	}
}

func TestInsertEntryKeepsOrder(t *testing.T) {
	n := leafOf()
	for _, k := range []int{7, 3, 9, 1, 5} {
		if !n.insertEntry(Entry[int, string]{Key: k}) {
			t.Fatalf("insertEntry(%d) = false", k)
		}
	}
	if n.insertEntry(Entry[int, string]{Key: 5, Value: "dup"}) {
		t.Error("insertEntry accepted a duplicate key")
	}
	want := []int{1, 3, 5, 7, 9}
	for i, k := range want {
		if n.entries[i].Key != k {
			t.Fatalf("entries = %v, want keys %v", n.entries, want)
		}
	}
	if n.entries[2].Value == "dup" {
		t.Error("duplicate insert overwrote the value")
	}
}

func TestPutEntry(t *testing.T) {
	n := leafOf(1, 3)
	if _, replaced := n.putEntry(Entry[int, string]{Key: 2, Value: "two"}); replaced {
		t.Error("putEntry of new key reported a replacement")
	}
	old, replaced := n.putEntry(Entry[int, string]{Key: 2, Value: "TWO"})
	if !replaced || old != "two" {
		t.Errorf("putEntry = (%q, %v), want (\"two\", true)", old, replaced)
	}
	if n.size() != 3 || n.entries[1].Value != "TWO" {
		t.Errorf("entries = %v", n.entries)
	}
}

func TestPositionalMutators(t *testing.T) {
	n := newNode[int, string](false, cmp.Compare[int])
	a, b, c := leafOf(1), leafOf(5), leafOf(9)
	n.addChild(a)
	n.addChild(c)
	n.insertChild(b, 1)
	if n.childAt(1) != b || n.childAt(2) != c {
		t.Fatal("insertChild did not shift children right")
	}
	if got := n.removeChild(0); got != a {
		t.Error("removeChild returned the wrong node")
	}
	if len(n.children) != 2 {
		t.Errorf("children = %d, want 2", len(n.children))
	}

	l := leafOf(1, 2, 3)
	if e := l.removeEntry(1); e.Key != 2 {
		t.Errorf("removeEntry(1) = %v", e)
	}
	if l.size() != 2 || l.entries[1].Key != 3 {
		t.Errorf("entries after remove = %v", l.entries)
	}
}

func TestPreconditionViolationsPanic(t *testing.T) {
	l := leafOf(1, 2)
	mustPanic(t, "childAt on leaf", func() { l.childAt(0) })
	mustPanic(t, "removeEntry past end", func() { l.removeEntry(2) })
	mustPanic(t, "removeEntry negative", func() { l.removeEntry(-1) })
	mustPanic(t, "insertEntryAt past end", func() { l.insertEntryAt(Entry[int, string]{Key: 9}, 3) })
	mustPanic(t, "insertChild past end", func() {
		n := newNode[int, string](false, cmp.Compare[int])
		n.insertChild(leafOf(1), 1)
	})

	tree := New[int, string](2)
	mustPanic(t, "split of non-full node", func() {
		parent := newNode[int, string](false, cmp.Compare[int])
		child := leafOf(1)
		parent.addChild(child)
		tree.splitNode(parent, child, 0)
	})
	mustPanic(t, "bad degree", func() { New[int, string](1) })
}
