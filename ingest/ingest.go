// Package ingest loads delimited text rows into a heap file and groups the
// resulting locators by an integer key column.
package ingest

import (
	"bufio"
	"bytes"
	"io"
	"slices"
	"strconv"

	"HeapIndex/logging"
	"HeapIndex/types"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

var ErrMalformedRow = errors.New("ingest: malformed row")

// PageAppender stores one raw row and returns where it landed.
type PageAppender interface {
	Append(record []byte) (types.Locator, error)
}

type Options struct {
	KeyColumn  int // zero based; -1 selects the last column
	SkipHeader bool
	Separator  byte
}

func DefaultOptions() Options {
	return Options{KeyColumn: -1, SkipHeader: true, Separator: ','}
}

// Result holds the locators of every ingested row, grouped by key in
// input order.
type Result struct {
	Groups map[int64][]types.Locator
	Rows   int
	Bytes  int64
}

// Keys returns the distinct keys in ascending order.
func (r *Result) Keys() []int64 {
	keys := make([]int64, 0, len(r.Groups))
	for k := range r.Groups {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Ingest appends every data row of r to store.
func Ingest(r io.Reader, store PageAppender, opts Options, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	res := &Result{Groups: make(map[int64][]types.Locator)}

	err := eachRow(r, opts, func(lineNo int, row []byte) error {
		key, err := KeyOf(row, opts)
		if err != nil {
			return errors.Wrapf(err, "line %d", lineNo)
		}
		loc, err := store.Append(row)
		if err != nil {
			return errors.Wrapf(err, "store line %d", lineNo)
		}
		res.Groups[key] = append(res.Groups[key], loc)
		res.Rows++
		res.Bytes += int64(len(row))
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("ingest done",
		zap.Int("rows", res.Rows),
		zap.Int("keys", len(res.Groups)),
		zap.Int64("bytes", res.Bytes))
	return res, nil
}

// Scan returns every data row of r whose key equals key, without any index.
func Scan(r io.Reader, key int64, opts Options) ([][]byte, error) {
	var rows [][]byte
	err := eachRow(r, opts, func(lineNo int, row []byte) error {
		k, err := KeyOf(row, opts)
		if err != nil {
			return errors.Wrapf(err, "line %d", lineNo)
		}
		if k == key {
			rows = append(rows, bytes.Clone(row))
		}
		return nil
	})
	return rows, err
}

// KeyOf parses the key column of row as a base 10 integer.
func KeyOf(row []byte, opts Options) (int64, error) {
	fields := bytes.Split(row, []byte{opts.Separator})
	col := opts.KeyColumn
	if col < 0 {
		col = len(fields) - 1
	}
	if col >= len(fields) {
		return 0, errors.Wrapf(ErrMalformedRow, "key column %d, row has %d columns", col, len(fields))
	}
	field := bytes.TrimSpace(fields[col])
	key, err := strconv.ParseInt(string(field), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedRow, "key %q is not an integer", field)
	}
	return key, nil
}

// eachRow calls fn with every non-blank data line of r, newline stripped.
// row is only valid until fn returns.
func eachRow(r io.Reader, opts Options, fn func(lineNo int, row []byte) error) error {
	br := bufio.NewReader(r)
	lineNo := 0
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			lineNo++
			line = bytes.TrimRight(line, "\r\n")
			header := lineNo == 1 && opts.SkipHeader
			if !header && len(bytes.TrimSpace(line)) > 0 {
				if ferr := fn(lineNo, line); ferr != nil {
					return ferr
				}
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "read line %d", lineNo+1)
		}
	}
}
