// Package cli is the interactive command loop over an index.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	indexfile "HeapIndex/indexfile_manager"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

// HeapInfo reports the size of the heap file behind the index.
type HeapInfo interface {
	Size() int64
	NumPages() int64
}

type Cli struct {
	scanner   *bufio.Scanner
	out       io.Writer
	idx       *indexfile.Index
	heap      HeapInfo
	indexPath string

	ok   *color.Color
	warn *color.Color
	dim  *color.Color
}

func NewCli(s *bufio.Scanner, out io.Writer, idx *indexfile.Index, heap HeapInfo, indexPath string) *Cli {
	return &Cli{
		scanner:   s,
		out:       out,
		idx:       idx,
		heap:      heap,
		indexPath: indexPath,
		ok:        color.New(color.FgGreen),
		warn:      color.New(color.FgRed, color.Bold),
		dim:       color.New(color.FgHiBlack),
	}
}

// Start runs the loop until EXIT or the end of input.
func (c *Cli) Start() {
	c.printHelp()
	c.printPrompt()
	for c.scanner.Scan() {
		if !c.processInput(c.scanner.Text()) {
			return
		}
		c.printPrompt()
	}
}

func (c *Cli) printHelp() {
	fmt.Fprintln(c.out, `
HeapIndex CLI

Available Commands:
  GET <key>          Print every record stored under key
  ADD <key> <record> Append a record and index it under key
  PUT <key> <record> Append a record and make it the only one under key
  DEL <key>          Remove key from the index
  DUMP               Print the B-tree level by level
  STATS              Print index and heap file sizes
  SAVE [path]        Write the index snapshot
  EXIT               Terminate this session`)
}

func (c *Cli) printPrompt() {
	fmt.Fprint(c.out, "> ")
}

// processInput runs one command line and reports whether to keep going.
func (c *Cli) processInput(line string) bool {
	fields := strings.Fields(line)
	if len(fields) < 1 {
		return true
	}
	command := strings.ToLower(fields[0])
	switch command {
	default:
		c.warn.Fprintf(c.out, "Unknown command \"%s\"\n", command)
	case "get":
		c.processGetCommand(fields[1:])
	case "add":
		c.processAddCommand(fields[1:], false)
	case "put":
		c.processAddCommand(fields[1:], true)
	case "del":
		c.processDeleteCommand(fields[1:])
	case "dump":
		if err := c.idx.Tree().Dump(c.out); err != nil {
			c.warn.Fprintf(c.out, "Dump failed: %v\n", err)
		}
	case "stats":
		c.processStatsCommand()
	case "save":
		c.processSaveCommand(fields[1:])
	case "help":
		c.printHelp()
	case "exit":
		return false
	}
	return true
}

func (c *Cli) parseKey(arg string) (int64, bool) {
	key, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		c.warn.Fprintf(c.out, "Invalid key %q\n", arg)
		return 0, false
	}
	return key, true
}

func (c *Cli) processGetCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: GET <key>")
		return
	}
	key, ok := c.parseKey(args[0])
	if !ok {
		return
	}
	locs, found := c.idx.Lookup(key)
	if !found {
		fmt.Fprintln(c.out, "Key not found.")
		return
	}
	records, err := c.idx.Fetch(key)
	if err != nil {
		c.warn.Fprintf(c.out, "Read failed: %v\n", err)
		return
	}
	for i, rec := range records {
		fmt.Fprintf(c.out, "%s %s\n", c.dim.Sprintf("[%s]", locs[i]), rec)
	}
	c.ok.Fprintf(c.out, "%d record(s)\n", len(records))
}

func (c *Cli) processAddCommand(args []string, replace bool) {
	if len(args) < 2 {
		if replace {
			fmt.Fprintln(c.out, "Usage: PUT <key> <record>")
		} else {
			fmt.Fprintln(c.out, "Usage: ADD <key> <record>")
		}
		return
	}
	key, ok := c.parseKey(args[0])
	if !ok {
		return
	}
	record := []byte(strings.Join(args[1:], " "))

	add := c.idx.AddRecord
	if replace {
		add = c.idx.Replace
	}
	loc, err := add(key, record)
	if err != nil {
		c.warn.Fprintf(c.out, "Add failed: %v\n", err)
		return
	}
	c.ok.Fprintf(c.out, "OK %s\n", loc)
}

func (c *Cli) processDeleteCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: DEL <key>")
		return
	}
	key, ok := c.parseKey(args[0])
	if !ok {
		return
	}
	locs, removed := c.idx.Remove(key)
	if !removed {
		fmt.Fprintln(c.out, "Key not found.")
		return
	}
	c.ok.Fprintf(c.out, "Removed %d locator(s)\n", len(locs))
}

func (c *Cli) processStatsCommand() {
	st := c.idx.Stats()
	fmt.Fprintf(c.out, "keys:     %s\n", humanize.Comma(int64(st.Keys)))
	fmt.Fprintf(c.out, "records:  %s\n", humanize.Comma(int64(st.Locators)))
	fmt.Fprintf(c.out, "height:   %d (degree %d, root holds %d)\n", st.Height, st.Degree, st.RootSize)
	if c.heap != nil {
		fmt.Fprintf(c.out, "heap:     %s in %s pages\n",
			humanize.IBytes(uint64(c.heap.Size())), humanize.Comma(c.heap.NumPages()))
	}
}

func (c *Cli) processSaveCommand(args []string) {
	path := c.indexPath
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		fmt.Fprintln(c.out, "Usage: SAVE <path>")
		return
	}
	if err := c.idx.Save(path); err != nil {
		c.warn.Fprintf(c.out, "Save failed: %v\n", err)
		return
	}
	c.ok.Fprintf(c.out, "Saved %s\n", path)
}
