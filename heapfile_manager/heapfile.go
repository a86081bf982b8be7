package heapfile

import (
	"bytes"

	"HeapIndex/logging"
	"HeapIndex/types"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Open opens or creates the heap file described by cfg. An existing file
// is appended to after its last byte.
func Open(cfg Config, logger *zap.Logger) (*HeapFile, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	if cfg.PageSize <= 0 {
		return nil, errors.Newf("invalid page size %d", cfg.PageSize)
	}

	pager, err := NewHeapFilePager(cfg.Path, cfg.PageSize)
	if err != nil {
		return nil, err
	}
	cache, err := newPageCache(cfg.CacheBytes, cfg.PageSize)
	if err != nil {
		pager.Close()
		return nil, err
	}

	hf := &HeapFile{
		cfg:   cfg,
		pager: pager,
		cache: cache,
		log:   logger.With(zap.String("heapfile", cfg.Path)),
		size:  pager.Size(),
	}
	if hf.size > 0 {
		hf.log.Warn("heap file not empty, appending after existing records",
			zap.Int64("bytes", hf.size),
			zap.Int64("pages", pager.TotalPages()),
			zap.Int("page_used", int(hf.size%int64(cfg.PageSize))))
	}
	return hf, nil
}

// Append writes record after the last record and returns its locator. A
// record that does not fit in the rest of the current page starts the
// next one; the gap is padded with the filler byte.
func (hf *HeapFile) Append(record []byte) (types.Locator, error) {
	if len(record) == 0 {
		return types.Locator{}, ErrEmptyRecord
	}
	if len(record) > hf.cfg.PageSize {
		return types.Locator{}, errors.Wrapf(ErrRecordTooLarge, "%d bytes, page size %d", len(record), hf.cfg.PageSize)
	}

	hf.mu.Lock()
	defer hf.mu.Unlock()

	pageSize := int64(hf.cfg.PageSize)
	page := hf.size / pageSize
	used := hf.size % pageSize

	buf := record
	writeAt := hf.size
	if used+int64(len(record)) > pageSize {
		pad := int(pageSize - used)
		buf = make([]byte, 0, pad+len(record))
		buf = append(buf, bytes.Repeat([]byte{hf.cfg.Filler}, pad)...)
		buf = append(buf, record...)
		hf.log.Debug("page rollover",
			zap.Int64("page", page),
			zap.Int("padding", pad))
		page++
		used = 0
	}

	if err := hf.pager.WriteAt(buf, writeAt); err != nil {
		return types.Locator{}, err
	}
	hf.size = writeAt + int64(len(buf))

	return types.NewLocator(uint32(page), uint64(used), uint32(len(record))), nil
}

// Read returns the bytes loc points to. A locator reaching past its page
// or past the end of the file is ErrOutOfRange.
func (hf *HeapFile) Read(loc types.Locator) ([]byte, error) {
	if loc.StartOffset >= uint64(hf.cfg.PageSize) || loc.End() > uint64(hf.cfg.PageSize) {
		return nil, errors.Wrapf(ErrOutOfRange, "%s crosses the page boundary", loc)
	}

	hf.mu.Lock()
	size := hf.size
	hf.mu.Unlock()

	off := loc.FileOffset(hf.cfg.PageSize)
	if off+int64(loc.Length) > size {
		return nil, errors.Wrapf(ErrOutOfRange, "%s past end of file (%d bytes)", loc, size)
	}

	if hf.sealed(loc.PageNumber, size) {
		page, err := hf.sealedPage(loc.PageNumber)
		if err != nil {
			return nil, err
		}
		out := make([]byte, loc.Length)
		copy(out, page[loc.StartOffset:loc.End()])
		return out, nil
	}

	out := make([]byte, loc.Length)
	if err := hf.pager.ReadAt(out, off); err != nil {
		return nil, err
	}
	return out, nil
}

// ReadPage returns a copy of page n. The tail of the page currently being
// appended to is zero.
func (hf *HeapFile) ReadPage(n uint32) ([]byte, error) {
	hf.mu.Lock()
	size := hf.size
	hf.mu.Unlock()

	if !hf.sealed(n, size) {
		return hf.pager.ReadPage(int64(n))
	}
	page, err := hf.sealedPage(n)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(page), nil
}

// sealed reports whether page n is complete, meaning no append can touch it.
func (hf *HeapFile) sealed(n uint32, size int64) bool {
	return int64(n) < size/int64(hf.cfg.PageSize)
}

func (hf *HeapFile) sealedPage(n uint32) ([]byte, error) {
	if page, ok := hf.cache.get(n); ok {
		return page, nil
	}
	page, err := hf.pager.ReadPage(int64(n))
	if err != nil {
		return nil, err
	}
	hf.cache.put(n, page)
	hf.log.Debug("cached page", zap.Uint32("page", n))
	return page, nil
}

// NumPages returns the number of pages holding at least one byte.
func (hf *HeapFile) NumPages() int64 {
	return hf.pager.TotalPages()
}

// Size returns the number of bytes written, padding included.
func (hf *HeapFile) Size() int64 {
	hf.mu.Lock()
	defer hf.mu.Unlock()
	return hf.size
}

// PageSize returns the configured page size.
func (hf *HeapFile) PageSize() int {
	return hf.cfg.PageSize
}

// Sync flushes written records to disk.
func (hf *HeapFile) Sync() error {
	return hf.pager.Sync()
}

// Close syncs and closes the file and drops the page cache.
func (hf *HeapFile) Close() error {
	hf.cache.close()
	hf.cache = nil
	return hf.pager.Close()
}
