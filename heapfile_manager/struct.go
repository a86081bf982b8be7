package heapfile

import (
	"os"
	"sync"

	"HeapIndex/types"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// ############################################# ---- PAGE ----- #############################################
//
// A heap file is a plain sequence of fixed-size pages. Records are appended
// back to back; a record never straddles a page boundary, so when the next
// record does not fit in the current page the rest of that page is padded
// with the filler byte and the record starts the next page.
//
//	page 0                        page 1
//	+--------+------+------+XXXX+ +------+--------+-----
//	| rec 0  | rec1 | rec2 |XXXX| | rec3 | rec 4  | ...
//	+--------+------+------+XXXX+ +------+--------+-----

const DefaultCacheBytes = 8 << 20 // 8 MiB of sealed pages

var (
	ErrRecordTooLarge = errors.New("heapfile: record larger than a page")
	ErrEmptyRecord    = errors.New("heapfile: empty record")
	ErrOutOfRange     = errors.New("heapfile: locator out of range")
	ErrClosed         = errors.New("heapfile: file is closed")
)

// Config describes one heap file.
type Config struct {
	Path       string
	PageSize   int
	Filler     byte
	CacheBytes int64 // 0 disables the page cache
}

// DefaultConfig returns 4KB pages padded with 'X' and an 8 MiB page cache.
func DefaultConfig(path string) Config {
	return Config{
		Path:       path,
		PageSize:   types.DefaultPageSize,
		Filler:     types.DefaultFiller,
		CacheBytes: DefaultCacheBytes,
	}
}

// PageStore is the part of the heap file the index layer needs.
type PageStore interface {
	Append(record []byte) (types.Locator, error)
	Read(loc types.Locator) ([]byte, error)
}

// HeapFilePager does fixed-size page I/O on one file.
type HeapFilePager struct {
	file     *os.File
	filePath string
	pageSize int
	size     int64 // bytes written so far
	mu       sync.RWMutex
}

// HeapFile appends records to a HeapFilePager and reads them back by locator.
type HeapFile struct {
	cfg   Config
	pager *HeapFilePager
	cache *pageCache
	log   *zap.Logger
	size  int64 // append position; page = size/pageSize, offset = size%pageSize
	mu    sync.Mutex
}
