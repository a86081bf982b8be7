// dump_sample runs seed, build_index, search and inspect_idx on a small
// data set, writing all output to cmd/sample_run_output.txt.
// Run from repo root: go run ./cmd/dump_sample
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

const (
	baseDir    = "sample"
	outputFile = "cmd/sample_run_output.txt"
)

func main() {
	outPath := outputFile
	// If run from cmd/dump_sample, output next to binary
	if _, err := os.Stat("cmd"); os.IsNotExist(err) {
		outPath = "sample_run_output.txt"
	}

	f, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create output file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	root := repoRoot()
	dir := filepath.Join(root, baseDir)
	os.RemoveAll(dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir: %v\n", err)
		os.Exit(1)
	}

	csv := filepath.Join(dir, "pedestrian.csv")
	paths := []string{
		"-csv", csv,
		"-heap", filepath.Join(dir, "heapfile"),
		"-index", filepath.Join(dir, "index"),
		"-degree", "3",
	}

	steps := []struct {
		title string
		args  []string
	}{
		{"SEED (2000 rows, keys 0..49)", []string{"./cmd/seed", "-out", csv, "-rows", "2000", "-max-count", "50"}},
		{"BUILD INDEX", append([]string{"./cmd/build_index"}, paths...)},
		{"SEARCH key 7 (with full scan)", append([]string{"./cmd/search", "-key", "7", "-linear"}, paths...)},
		{"INSPECT index", []string{"./cmd/inspect_idx", filepath.Join(dir, "index")}},
	}

	for _, step := range steps {
		fmt.Fprintf(f, "\n========== %s ==========\n", step.title)
		cmd := exec.Command("go", append([]string{"run"}, step.args...)...)
		cmd.Stdout = f
		cmd.Stderr = f
		cmd.Dir = root
		if err := cmd.Run(); err != nil {
			fmt.Fprintf(f, "%s exited with error: %v\n", step.args[0], err)
		}
	}

	fmt.Printf("Output written to %s\n", outPath)
}

func repoRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
