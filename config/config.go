// Package config holds the settings shared by the HeapIndex programs.
package config

import (
	"flag"
	"math/bits"

	heapfile "HeapIndex/heapfile_manager"
	"HeapIndex/types"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	CSVPath   string
	HeapPath  string
	IndexPath string

	PageSize   int
	Degree     int
	CacheBytes int64
	KeyColumn  int // -1 selects the last column

	LogLevel string
}

// Default mirrors the file names and sizes of the classic pedestrian
// counts setup.
func Default() Config {
	return Config{
		CSVPath:    "pedestrian.csv",
		HeapPath:   "heapfile",
		IndexPath:  "index",
		PageSize:   types.DefaultPageSize,
		Degree:     3,
		CacheBytes: heapfile.DefaultCacheBytes,
		KeyColumn:  -1,
		LogLevel:   "info",
	}
}

// RegisterFlags binds every field to a flag on fs, using the current
// values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.CSVPath, "csv", c.CSVPath, "input CSV file")
	fs.StringVar(&c.HeapPath, "heap", c.HeapPath, "heap file path")
	fs.StringVar(&c.IndexPath, "index", c.IndexPath, "index snapshot path")
	fs.IntVar(&c.PageSize, "page-size", c.PageSize, "heap file page size in bytes")
	fs.IntVar(&c.Degree, "degree", c.Degree, "B-tree minimum degree")
	fs.Int64Var(&c.CacheBytes, "cache-bytes", c.CacheBytes, "page cache size in bytes, 0 disables it")
	fs.IntVar(&c.KeyColumn, "key-column", c.KeyColumn, "zero based key column, -1 for the last one")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
}

// Validate reports every invalid setting in one error.
func (c Config) Validate() error {
	var errs []error
	if c.CSVPath == "" {
		errs = append(errs, errors.New("csv path is empty"))
	}
	if c.HeapPath == "" {
		errs = append(errs, errors.New("heap path is empty"))
	}
	if c.IndexPath == "" {
		errs = append(errs, errors.New("index path is empty"))
	}
	if c.Degree < 2 {
		errs = append(errs, errors.Newf("degree %d: must be at least 2", c.Degree))
	}
	if c.PageSize < 64 || bits.OnesCount(uint(c.PageSize)) != 1 {
		errs = append(errs, errors.Newf("page size %d: must be a power of two of at least 64", c.PageSize))
	}
	if c.CacheBytes < 0 {
		errs = append(errs, errors.Newf("cache bytes %d: must not be negative", c.CacheBytes))
	}
	if c.KeyColumn < -1 {
		errs = append(errs, errors.Newf("key column %d: must be -1 or a column index", c.KeyColumn))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, errors.Wrap(err, "log level"))
	}
	return errors.Join(errs...)
}

// HeapConfig derives the heap file settings.
func (c Config) HeapConfig() heapfile.Config {
	cfg := heapfile.DefaultConfig(c.HeapPath)
	cfg.PageSize = c.PageSize
	cfg.CacheBytes = c.CacheBytes
	return cfg
}
