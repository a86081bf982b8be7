// Package indexfile binds a B-tree of integer keys to the heap file that
// holds the records, and persists the tree as a snapshot file.
package indexfile

import (
	"slices"

	"HeapIndex/btree"
	heapfile "HeapIndex/heapfile_manager"
	"HeapIndex/ingest"
	"HeapIndex/logging"
	"HeapIndex/types"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

var ErrKeyNotFound = errors.New("indexfile: key not found")

// Index maps each key to the locators of its records, in insertion order.
// It is not safe for concurrent mutation.
type Index struct {
	tree  *btree.BTree[int64, []types.Locator]
	store heapfile.PageStore
	log   *zap.Logger
}

type Stats struct {
	Keys     int
	Locators int
	Height   int
	Degree   int
	RootSize int
}

// New returns an empty index over store.
func New(store heapfile.PageStore, degree int, logger *zap.Logger) *Index {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Index{
		tree:  btree.New[int64, []types.Locator](degree),
		store: store,
		log:   logger,
	}
}

// Build indexes an ingest result. Groups are inserted in ascending key
// order with insert-only semantics.
func Build(store heapfile.PageStore, res *ingest.Result, degree int, logger *zap.Logger) (*Index, error) {
	idx := New(store, degree, logger)
	for _, key := range res.Keys() {
		if !idx.tree.Insert(key, res.Groups[key]) {
			return nil, errors.AssertionFailedf("duplicate key %d in ingest result", key)
		}
	}
	idx.log.Info("index built",
		zap.Int("keys", idx.tree.Len()),
		zap.Int("height", idx.tree.Height()))
	return idx, nil
}

// Lookup returns the locators stored under key.
func (idx *Index) Lookup(key int64) ([]types.Locator, bool) {
	return idx.tree.Search(key)
}

// Fetch reads every record stored under key from the heap file.
func (idx *Index) Fetch(key int64) ([][]byte, error) {
	locs, ok := idx.tree.Search(key)
	if !ok {
		return nil, errors.Wrapf(ErrKeyNotFound, "key %d", key)
	}
	records := make([][]byte, 0, len(locs))
	for _, loc := range locs {
		rec, err := idx.store.Read(loc)
		if err != nil {
			return nil, errors.Wrapf(err, "key %d", key)
		}
		records = append(records, rec)
	}
	return records, nil
}

// AddRecord appends record to the heap file and adds its locator to the
// end of key's list.
func (idx *Index) AddRecord(key int64, record []byte) (types.Locator, error) {
	loc, err := idx.store.Append(record)
	if err != nil {
		return types.Locator{}, errors.Wrapf(err, "add record for key %d", key)
	}
	locs, _ := idx.tree.Search(key)
	idx.tree.Put(key, append(slices.Clip(locs), loc))
	return loc, nil
}

// Replace appends record to the heap file and makes it the only record
// under key. A failed append leaves the index untouched.
func (idx *Index) Replace(key int64, record []byte) (types.Locator, error) {
	loc, err := idx.store.Append(record)
	if err != nil {
		return types.Locator{}, errors.Wrapf(err, "replace record for key %d", key)
	}
	idx.tree.Put(key, []types.Locator{loc})
	return loc, nil
}

// Put replaces the locator list of key.
func (idx *Index) Put(key int64, locs []types.Locator) ([]types.Locator, bool) {
	return idx.tree.Put(key, locs)
}

// Insert adds key only if it is absent.
func (idx *Index) Insert(key int64, locs []types.Locator) bool {
	return idx.tree.Insert(key, locs)
}

// Remove drops key from the index. The records stay in the heap file.
func (idx *Index) Remove(key int64) ([]types.Locator, bool) {
	e, ok := idx.tree.Delete(key)
	return e.Value, ok
}

func (idx *Index) Stats() Stats {
	s := Stats{
		Keys:     idx.tree.Len(),
		Height:   idx.tree.Height(),
		Degree:   idx.tree.Degree(),
		RootSize: idx.tree.RootSize(),
	}
	idx.tree.Walk(func(_ int64, locs []types.Locator) bool {
		s.Locators += len(locs)
		return true
	})
	return s
}

// Tree exposes the underlying B-tree for inspection.
func (idx *Index) Tree() *btree.BTree[int64, []types.Locator] {
	return idx.tree
}
