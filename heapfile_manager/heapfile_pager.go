package heapfile

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
)

// NewHeapFilePager opens or creates the heap data file at heapPath.
func NewHeapFilePager(heapPath string, pageSize int) (*HeapFilePager, error) {
	if pageSize <= 0 {
		return nil, errors.Newf("invalid page size %d", pageSize)
	}
	file, err := os.OpenFile(heapPath, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open heap file %s", heapPath)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, errors.Wrap(err, "failed to stat heap file")
	}

	return &HeapFilePager{
		file:     file,
		filePath: heapPath,
		pageSize: pageSize,
		size:     stat.Size(),
	}, nil
}

// ReadPage reads page pageID. The last page may be partially written; the
// unwritten tail is returned as zeros.
func (p *HeapFilePager) ReadPage(pageID int64) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.file == nil {
		return nil, ErrClosed
	}

	offset := pageID * int64(p.pageSize)
	if pageID < 0 || offset >= p.size {
		return nil, errors.Wrapf(ErrOutOfRange, "page %d of %d", pageID, p.totalPages())
	}

	page := make([]byte, p.pageSize)
	n, err := p.file.ReadAt(page, offset)
	if err != nil && !(errors.Is(err, io.EOF) && n > 0) {
		return nil, errors.Wrapf(err, "failed to read page %d", pageID)
	}
	return page, nil
}

// ReadAt reads exactly len(buf) bytes at off.
func (p *HeapFilePager) ReadAt(buf []byte, off int64) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.file == nil {
		return ErrClosed
	}
	if off < 0 || off+int64(len(buf)) > p.size {
		return errors.Wrapf(ErrOutOfRange, "read of %d bytes at %d, file has %d", len(buf), off, p.size)
	}
	if _, err := p.file.ReadAt(buf, off); err != nil {
		return errors.Wrapf(err, "failed to read %d bytes at %d", len(buf), off)
	}
	return nil
}

// WritePage writes a full page at the given page ID.
func (p *HeapFilePager) WritePage(pageID int64, data []byte) error {
	if len(data) != p.pageSize {
		return errors.Newf("data size %d does not match page size %d", len(data), p.pageSize)
	}
	return p.WriteAt(data, pageID*int64(p.pageSize))
}

// WriteAt writes data at off and extends the tracked size.
func (p *HeapFilePager) WriteAt(data []byte, off int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.file == nil {
		return ErrClosed
	}
	if _, err := p.file.WriteAt(data, off); err != nil {
		return errors.Wrapf(err, "failed to write %d bytes at %d", len(data), off)
	}
	if end := off + int64(len(data)); end > p.size {
		p.size = end
	}
	return nil
}

// Size returns the number of bytes in the file.
func (p *HeapFilePager) Size() int64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.size
}

// TotalPages returns the number of pages holding at least one byte.
func (p *HeapFilePager) TotalPages() int64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.totalPages()
}

func (p *HeapFilePager) totalPages() int64 {
	ps := int64(p.pageSize)
	return (p.size + ps - 1) / ps
}

// Sync flushes all pending writes to disk.
func (p *HeapFilePager) Sync() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.file == nil {
		return ErrClosed
	}
	return p.file.Sync()
}

// Close syncs and closes the file. Closing twice is a no-op.
func (p *HeapFilePager) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.file == nil {
		return nil
	}

	err := p.file.Sync()
	if err != nil {
		p.file.Close()
		p.file = nil
		return errors.Wrap(err, "failed to sync before close")
	}

	err = p.file.Close()
	p.file = nil
	return err
}
