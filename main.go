package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"HeapIndex/cli"
	"HeapIndex/config"
	heapfile "HeapIndex/heapfile_manager"
	indexfile "HeapIndex/indexfile_manager"
	"HeapIndex/logging"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Default()
	cfg.LogLevel = "warn"
	cfg.RegisterFlags(flag.CommandLine)
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

	hf, err := heapfile.Open(cfg.HeapConfig(), logger)
	if err != nil {
		logger.Fatal("open heap file", zap.Error(err))
	}
	defer hf.Close()

	// start from the saved index if there is one
	idx := indexfile.New(hf, cfg.Degree, logger)
	if _, err := os.Stat(cfg.IndexPath); err == nil {
		idx, err = indexfile.Load(cfg.IndexPath, hf, logger)
		if err != nil {
			logger.Fatal("load index", zap.Error(err))
		}
		// the snapshot carries its own degree
		if loaded := idx.Stats().Degree; loaded != cfg.Degree {
			logger.Warn("using degree stored in index, ignoring -degree",
				zap.String("index", cfg.IndexPath),
				zap.Int("degree", loaded),
				zap.Int("requested", cfg.Degree))
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	repl := cli.NewCli(scanner, os.Stdout, idx, hf, cfg.IndexPath)
	repl.Start()
}
