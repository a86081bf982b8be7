package indexfile

import (
	"bufio"
	"cmp"
	"os"
	"path/filepath"

	"HeapIndex/btree"
	heapfile "HeapIndex/heapfile_manager"
	"HeapIndex/logging"
	"HeapIndex/types"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Save writes the index snapshot to path. The file is replaced atomically:
// the snapshot goes to a temporary file in the same directory first.
func (idx *Index) Save(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "failed to create index temp file")
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once renamed

	w := bufio.NewWriter(tmp)
	if err := btree.WriteSnapshot[int64, []types.Locator](w, idx.tree, btree.Int64Codec{}, types.LocatorList{}); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "failed to write index %s", path)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "failed to write index %s", path)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "failed to sync index")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to close index temp file")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errors.Wrapf(err, "failed to install index %s", path)
	}

	idx.log.Info("index saved",
		zap.String("path", path),
		zap.Int("keys", idx.tree.Len()))
	return nil
}

// Load reads a snapshot written by Save and binds it to store.
func Load(path string, store heapfile.PageStore, logger *zap.Logger) (*Index, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open index %s", path)
	}
	defer f.Close()

	tree, err := btree.ReadSnapshot[int64, []types.Locator](f, cmp.Compare[int64], btree.Int64Codec{}, types.LocatorList{})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load index %s", path)
	}
	logger.Info("index loaded",
		zap.String("path", path),
		zap.Int("keys", tree.Len()),
		zap.Int("height", tree.Height()))
	return &Index{tree: tree, store: store, log: logger}, nil
}
