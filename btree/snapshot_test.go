package btree

import (
	"bytes"
	"cmp"
	"fmt"
	"testing"

	"github.com/cockroachdb/errors"
)

func snapshotOf(t *testing.T, tree *BTree[int64, string]) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteSnapshot[int64, string](&buf, tree, Int64Codec{}, StringCodec{}); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func readSnapshot(data []byte) (*BTree[int64, string], error) {
	return ReadSnapshot[int64, string](bytes.NewReader(data), cmp.Compare[int64], Int64Codec{}, StringCodec{})
}

func TestSnapshotRoundTrip(t *testing.T) {
	tree := New[int64, string](3)
	for i := int64(0); i < 500; i++ {
		k := (i*7919)%1000 - 500
		tree.Put(k, fmt.Sprintf("value-%d", k))
	}

	got, err := readSnapshot(snapshotOf(t, tree))
	if err != nil {
		t.Fatal(err)
	}
	if got.Degree() != 3 || got.Len() != tree.Len() || got.Height() != tree.Height() {
		t.Errorf("decoded degree=%d len=%d height=%d, want 3/%d/%d",
			got.Degree(), got.Len(), got.Height(), tree.Len(), tree.Height())
	}
	for k, v := range tree.All() {
		if gv, ok := got.Search(k); !ok || gv != v {
			t.Fatalf("Search(%d) = (%q, %v), want %q", k, gv, ok, v)
		}
	}

	// decoded tree stays mutable
	got.Insert(10_000, "new")
	if err := got.Verify(); err != nil {
		t.Fatal(err)
	}
}

func TestSnapshotEmptyTree(t *testing.T) {
	got, err := readSnapshot(snapshotOf(t, New[int64, string](2)))
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 0 || got.Height() != 1 {
		t.Errorf("Len=%d Height=%d", got.Len(), got.Height())
	}
}

func TestSnapshotRejectsCorruption(t *testing.T) {
	tree := New[int64, string](2)
	for i := int64(0); i < 100; i++ {
		tree.Insert(i, "x")
	}
	good := snapshotOf(t, tree)

	flipped := bytes.Clone(good)
	flipped[len(flipped)-1] ^= 0xff

	badMagic := bytes.Clone(good)
	copy(badMagic, "NOPE")

	badVersion := bytes.Clone(good)
	badVersion[4] = 9

	tests := []struct {
		name string
		data []byte
	}{
		{"checksum", flipped},
		{"magic", badMagic},
		{"version", badVersion},
		{"truncated body", good[:len(good)-3]},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := readSnapshot(tc.data)
			if !errors.Is(err, ErrBadSnapshot) {
				t.Errorf("err = %v, want ErrBadSnapshot", err)
			}
		})
	}

	if _, err := readSnapshot(good[:2]); err == nil {
		t.Error("short header decoded without error")
	}
}

func TestSnapshotRejectsWrongOrdering(t *testing.T) {
	tree := New[int64, string](2)
	for i := int64(0); i < 20; i++ {
		tree.Insert(i, "")
	}
	reverse := func(a, b int64) int { return cmp.Compare(b, a) }
	_, err := ReadSnapshot[int64, string](bytes.NewReader(snapshotOf(t, tree)), reverse, Int64Codec{}, StringCodec{})
	if !errors.Is(err, ErrBadSnapshot) {
		t.Errorf("err = %v, want ErrBadSnapshot", err)
	}
}
