package btree

import (
	"fmt"
	"math/rand/v2"
	"testing"

	gbtree "github.com/google/btree"
)

type pair struct {
	key, value int
}

func pairLess(a, b pair) bool { return a.key < b.key }

// TestAgainstReferenceTree drives random operations through both trees and
// compares every result.
func TestAgainstReferenceTree(t *testing.T) {
	for _, degree := range []int{2, 3, 5, 16} {
		t.Run(fmt.Sprintf("t=%d", degree), func(t *testing.T) {
			rng := rand.New(rand.NewPCG(uint64(degree), 42))
			tree := New[int, int](degree)
			ref := gbtree.NewG[pair](4, pairLess)

			for i := 0; i < 4000; i++ {
				k, v := rng.IntN(300), rng.Int()
				switch op := rng.IntN(10); {
				case op < 4:
					_, exists := ref.Get(pair{key: k})
					if got := tree.Insert(k, v); got == exists {
						t.Fatalf("op %d: Insert(%d) = %v, key present %v", i, k, got, exists)
					}
					if !exists {
						ref.ReplaceOrInsert(pair{k, v})
					}
				case op < 7:
					prev, had := ref.ReplaceOrInsert(pair{k, v})
					old, replaced := tree.Put(k, v)
					if replaced != had || (had && old != prev.value) {
						t.Fatalf("op %d: Put(%d) = (%d, %v), want (%d, %v)", i, k, old, replaced, prev.value, had)
					}
				case op < 9:
					prev, had := ref.Delete(pair{key: k})
					e, ok := tree.Delete(k)
					if ok != had || (had && (e.Key != k || e.Value != prev.value)) {
						t.Fatalf("op %d: Delete(%d) = (%v, %v), want (%v, %v)", i, k, e, ok, prev, had)
					}
				default:
					want, had := ref.Get(pair{key: k})
					got, ok := tree.Search(k)
					if ok != had || (had && got != want.value) {
						t.Fatalf("op %d: Search(%d) = (%d, %v), want (%d, %v)", i, k, got, ok, want.value, had)
					}
				}
				if err := tree.Verify(); err != nil {
					t.Fatalf("op %d: %v", i, err)
				}
			}

			var want []pair
			ref.Ascend(func(p pair) bool {
				want = append(want, p)
				return true
			})
			var got []pair
			for k, v := range tree.All() {
				got = append(got, pair{k, v})
			}
			if len(got) != len(want) || tree.Len() != ref.Len() {
				t.Fatalf("tree holds %d entries (Len %d), reference %d", len(got), tree.Len(), len(want))
			}
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("entry %d = %v, want %v", i, got[i], want[i])
				}
			}
		})
	}
}
