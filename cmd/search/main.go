// search loads an index snapshot and prints every record stored under one
// key, optionally timing a full scan of the CSV for comparison.
// Run: go run ./cmd/search -key 7
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"HeapIndex/config"
	heapfile "HeapIndex/heapfile_manager"
	indexfile "HeapIndex/indexfile_manager"
	"HeapIndex/ingest"
	"HeapIndex/logging"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Default()
	cfg.RegisterFlags(flag.CommandLine)
	key := flag.Int64("key", 7, "key to look up")
	linear := flag.Bool("linear", false, "also scan the CSV without the index and compare timings")
	quiet := flag.Bool("quiet", false, "print only counts and timings")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, *key, *linear, *quiet, logger); err != nil {
		if errors.Is(err, indexfile.ErrKeyNotFound) {
			color.Yellow("key %d not found", *key)
			os.Exit(1)
		}
		logger.Error("search failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg config.Config, key int64, linear, quiet bool, logger *zap.Logger) error {
	hf, err := heapfile.Open(cfg.HeapConfig(), logger)
	if err != nil {
		return err
	}
	defer hf.Close()

	idx, err := indexfile.Load(cfg.IndexPath, hf, logger)
	if err != nil {
		return err
	}

	start := time.Now()
	if !idx.Tree().Has(key) {
		return errors.Wrapf(indexfile.ErrKeyNotFound, "key %d", key)
	}
	records, err := idx.Fetch(key)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if !quiet {
		for _, rec := range records {
			fmt.Printf("%s\n", rec)
		}
	}
	color.Green("%d record(s) for key %d", len(records), key)
	fmt.Printf("search key %d by B-tree: %v\n", key, elapsed)

	if !linear {
		return nil
	}
	in, err := os.Open(cfg.CSVPath)
	if err != nil {
		return err
	}
	defer in.Close()

	opts := ingest.DefaultOptions()
	opts.KeyColumn = cfg.KeyColumn
	start = time.Now()
	rows, err := ingest.Scan(in, key, opts)
	if err != nil {
		return err
	}
	fmt.Printf("search key %d by full scan: %v (%d rows)\n", key, time.Since(start), len(rows))
	if len(rows) != len(records) {
		color.Red("index returned %d records, scan found %d", len(records), len(rows))
	}
	return nil
}
