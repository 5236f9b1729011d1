// Package cli implements an interactive shell over a string-keyed btmap tree.
package cli

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/chzyer/readline"
	"github.com/go-faker/faker/v4"
	"go.uber.org/zap"

	"github.com/alexhholmes/btmap"
)

type Cli struct {
	out        io.Writer
	tree       *btmap.Tree[string, string]
	visualizer *Visualizer
	logger     *zap.Logger

	// AutoShow prints the tree after every SET and DEL
	AutoShow bool
}

func NewCli(out io.Writer, t *btmap.Tree[string, string], v *Visualizer, logger *zap.Logger) *Cli {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cli{out: out, tree: t, visualizer: v, logger: logger}
}

// Completer offers the command names for tab completion.
func Completer() readline.AutoCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("SET"),
		readline.PcItem("GET"),
		readline.PcItem("DEL"),
		readline.PcItem("LIST"),
		readline.PcItem("SHOW"),
		readline.PcItem("SUM"),
		readline.PcItem("SEED"),
		readline.PcItem("STATS"),
		readline.PcItem("CHECK"),
		readline.PcItem("HELP"),
		readline.PcItem("EXIT"),
	)
}

// Start runs the read-eval-print loop until EXIT, end of input or an
// interrupt on an empty line.
func (c *Cli) Start(rl *readline.Instance) error {
	c.printHelp()
	for {
		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			if len(line) == 0 {
				return nil
			}
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}

		if !c.ProcessInput(line) {
			return nil
		}
	}
}

func (c *Cli) printHelp() {
	fmt.Fprintln(c.out, `
B-Tree CLI

Available Commands:
  SET <key> <val> Insert a key-value pair into the B-Tree
  DEL <key>       Remove a key-value pair from the B-Tree
  GET <key>       Retrieve the value for key from the B-Tree
  LIST            Print every key-value pair in ascending order
  SHOW            Draw the tree level by level
  SUM             Print an xxhash64 digest of the tree's contents
  SEED <n>        Insert n random word pairs
  STATS           Print size and rebalancing counters
  CHECK           Validate the tree's structural invariants
  HELP            Print this message
  EXIT            Terminate this session`)
}

// ProcessInput executes one command line. It returns false when the session
// should end.
func (c *Cli) ProcessInput(line string) bool {
	fields := strings.Fields(line)
	if len(fields) < 1 {
		return true
	}
	command := strings.ToLower(fields[0])
	switch command {
	default:
		fmt.Fprintf(c.out, "Unknown command \"%s\"\n", command)
	case "set":
		c.processSetCommand(fields[1:])
	case "del":
		c.processDeleteCommand(fields[1:])
	case "get":
		c.processGetCommand(fields[1:])
	case "list":
		c.processListCommand()
	case "show":
		fmt.Fprint(c.out, c.visualizer.Visualize())
	case "sum":
		fmt.Fprintf(c.out, "%016x\n", Digest(c.tree))
	case "seed":
		c.processSeedCommand(fields[1:])
	case "stats":
		c.processStatsCommand()
	case "check":
		c.processCheckCommand()
	case "help":
		c.printHelp()
	case "exit":
		return false
	}
	return true
}

func (c *Cli) processSetCommand(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(c.out, "Usage: SET <key> <value>")
		return
	}
	if old, replaced := c.tree.Insert(args[0], args[1]); replaced {
		fmt.Fprintf(c.out, "OK (was %q)\n", old)
	} else {
		fmt.Fprintln(c.out, "OK")
	}
	c.maybeShow()
}

func (c *Cli) processDeleteCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: DEL <key>")
		return
	}
	_, val, ok := c.tree.Remove(args[0])

	if !ok {
		fmt.Fprintln(c.out, "Key not found.")
		return
	}
	fmt.Fprintf(c.out, "Deleted %q\n", val)
	c.maybeShow()
}

func (c *Cli) processGetCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: GET <key>")
		return
	}
	val, ok := c.tree.Get(args[0])

	if !ok {
		fmt.Fprintln(c.out, "Key not found.")
		return
	}
	fmt.Fprintln(c.out, val)
}

func (c *Cli) processListCommand() {
	for k, v := range c.tree.All() {
		fmt.Fprintf(c.out, "%s = %s\n", k, v)
	}
	fmt.Fprintf(c.out, "(%d keys)\n", c.tree.Len())
}

func (c *Cli) processSeedCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: SEED <n>")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		fmt.Fprintln(c.out, "Usage: SEED <n>")
		return
	}

	before := c.tree.Len()
	for i := 0; i < n; i++ {
		c.tree.Insert(faker.Word()+faker.Word(), faker.Word()+faker.Word())
	}
	added := c.tree.Len() - before
	c.logger.Info("seeded tree", zap.Int("requested", n), zap.Int("added", added), zap.Int("len", c.tree.Len()))
	fmt.Fprintf(c.out, "Added %d keys (%d requested)\n", added, n)
}

func (c *Cli) processStatsCommand() {
	st := c.tree.Stats()
	fmt.Fprintf(c.out, "len=%d height=%d nodes=%d\n", st.Len, st.Height, st.Nodes)
	fmt.Fprintf(c.out, "splits=%d root_splits=%d merges=%d borrows_left=%d borrows_right=%d root_collapses=%d\n",
		st.Splits, st.RootSplits, st.Merges, st.BorrowsLeft, st.BorrowsRight, st.RootCollapses)
}

func (c *Cli) processCheckCommand() {
	if err := c.tree.Check(); err != nil {
		c.logger.Error("invariant check failed", zap.Error(err))
		fmt.Fprintf(c.out, "FAILED: %v\n", err)
		return
	}
	fmt.Fprintln(c.out, "OK")
}

func (c *Cli) maybeShow() {
	if c.AutoShow {
		fmt.Fprint(c.out, c.visualizer.Visualize())
	}
}

// Digest hashes the tree's contents in ascending key order. Two trees holding
// the same pairs produce the same digest whatever their insertion history.
func Digest(tree *btmap.Tree[string, string]) uint64 {
	h := xxhash.New()
	var buf []byte
	for k, v := range tree.All() {
		// Length prefixes keep ("ab","c") distinct from ("a","bc")
		buf = binary.AppendUvarint(buf[:0], uint64(len(k)))
		buf = append(buf, k...)
		buf = binary.AppendUvarint(buf, uint64(len(v)))
		buf = append(buf, v...)
		_, _ = h.Write(buf)
	}
	return h.Sum64()
}
