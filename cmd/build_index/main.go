// build_index loads a CSV into a heap file, builds the B-tree index over
// the key column and saves the index snapshot.
// Run: go run ./cmd/build_index -csv pedestrian.csv -heap heapfile -index index
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

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Default()
	cfg.RegisterFlags(flag.CommandLine)
	reset := flag.Bool("reset", true, "remove an existing heap file before loading")
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

	if err := run(cfg, *reset, logger); err != nil {
		logger.Error("build failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg config.Config, reset bool, logger *zap.Logger) error {
	if reset {
		if err := os.Remove(cfg.HeapPath); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	in, err := os.Open(cfg.CSVPath)
	if err != nil {
		return err
	}
	defer in.Close()

	hf, err := heapfile.Open(cfg.HeapConfig(), logger)
	if err != nil {
		return err
	}
	defer hf.Close()

	opts := ingest.DefaultOptions()
	opts.KeyColumn = cfg.KeyColumn

	start := time.Now()
	res, err := ingest.Ingest(in, hf, opts, logger)
	if err != nil {
		return err
	}
	if err := hf.Sync(); err != nil {
		return err
	}
	loaded := time.Now()

	idx, err := indexfile.Build(hf, res, cfg.Degree, logger)
	if err != nil {
		return err
	}
	built := time.Now()

	if err := idx.Save(cfg.IndexPath); err != nil {
		return err
	}
	saved := time.Now()

	st := idx.Stats()
	bold := color.New(color.Bold)
	bold.Printf("%s rows -> %s (%s, %s pages of %s)\n",
		humanize.Comma(int64(res.Rows)), cfg.HeapPath,
		humanize.IBytes(uint64(hf.Size())), humanize.Comma(hf.NumPages()),
		humanize.IBytes(uint64(hf.PageSize())))
	bold.Printf("%s keys -> %s (height %d, degree %d)\n",
		humanize.Comma(int64(st.Keys)), cfg.IndexPath, st.Height, st.Degree)
	fmt.Printf("read the csv file and write the heap file: %v\n", loaded.Sub(start))
	fmt.Printf("build B-tree:                              %v\n", built.Sub(loaded))
	fmt.Printf("save index:                                %v\n", saved.Sub(built))
	return nil
}
