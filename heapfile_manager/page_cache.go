package heapfile

import (
	"github.com/cockroachdb/errors"
	"github.com/dgraph-io/ristretto/v2"
)

// pageCache keeps sealed pages in memory, keyed by page number. Pages are
// only cached once nothing more will be appended to them. A nil
// *pageCache is a valid, always-missing cache.
type pageCache struct {
	c *ristretto.Cache[uint32, []byte]
}

func newPageCache(maxBytes int64, pageSize int) (*pageCache, error) {
	if maxBytes <= 0 {
		return nil, nil
	}
	counters := 10 * maxBytes / int64(pageSize)
	if counters < 1000 {
		counters = 1000
	}
	c, err := ristretto.NewCache(&ristretto.Config[uint32, []byte]{
		NumCounters: counters,
		MaxCost:     maxBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create page cache")
	}
	return &pageCache{c: c}, nil
}

func (pc *pageCache) get(pageNo uint32) ([]byte, bool) {
	if pc == nil {
		return nil, false
	}
	return pc.c.Get(pageNo)
}

// put is asynchronous: a page may not be visible to get straight away.
func (pc *pageCache) put(pageNo uint32, page []byte) {
	if pc == nil {
		return
	}
	pc.c.Set(pageNo, page, int64(len(page)))
}

func (pc *pageCache) close() {
	if pc == nil {
		return
	}
	pc.c.Close()
}
