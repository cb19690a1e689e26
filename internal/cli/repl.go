package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/fibscroll/internal/metrics"
	"github.com/agbru/fibscroll/internal/sequence"
	"github.com/agbru/fibscroll/internal/ui"
)

// maxREPLList caps the rows printed by one "list" command.
const maxREPLList = 200

// Source is the blocking side of sequence.Generator.
type Source interface {
	ValueAt(ctx context.Context, n int) (int64, error)
	Stats() sequence.Stats
}

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Timeout bounds each command.
	Timeout time.Duration
}

// REPL is an interactive prompt over a Source.
type REPL struct {
	config REPLConfig
	source Source
	memory *metrics.MemoryCollector
	// cursor is the index "next" prints.
	cursor int
	in     io.Reader
	out    io.Writer
}

// NewREPL creates a REPL reading stdin and writing stdout.
func NewREPL(source Source, config REPLConfig) *REPL {
	return &REPL{
		config: config,
		source: source,
		memory: metrics.NewMemoryCollector(),
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// SetInput sets a custom input reader.
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput sets a custom output writer.
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// Start runs the session until "exit", EOF or ctx is done.
func (r *REPL) Start(ctx context.Context) {
	fmt.Fprintln(r.out, ui.Accent("Fibonacci sequence, 64-bit. Type help for commands."))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		reader := bufio.NewReader(r.in)
		for {
			line, err := reader.ReadString('\n')
			if line != "" {
				select {
				case lines <- line:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				readErr <- err
				return
			}
		}
	}()

	for {
		fmt.Fprint(r.out, ui.Accent("fib> "))
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.out)
			return
		case err := <-readErr:
			if !errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, ui.Error(fmt.Sprintf("Read error: %v", err)))
			}
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		case line := <-lines:
			if !r.processCommand(ctx, strings.TrimSpace(line)) {
				return
			}
		}
	}
}

// processCommand runs one command. It returns false when the session ends.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}
	cmd, args := strings.ToLower(parts[0]), parts[1:]

	switch cmd {
	case "get", "g":
		r.cmdGet(ctx, args)
	case "next", "n":
		r.show(ctx, r.cursor)
	case "list", "ls":
		r.cmdList(ctx, args)
	case "stats", "st":
		DisplayStats(r.out, r.source.Stats(), r.memory.Snapshot())
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintln(r.out, "Goodbye!")
		return false
	default:
		if n, err := strconv.Atoi(cmd); err == nil {
			r.show(ctx, n)
			return true
		}
		fmt.Fprintln(r.out, ui.Error("Unknown command: "+cmd))
		fmt.Fprintf(r.out, "Type %s to see available commands.\n", ui.Accent("help"))
	}
	return true
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.out, ui.Bold("Available commands:"))
	fmt.Fprintln(r.out, "  get <n>              Print the value at index n (or just type n)")
	fmt.Fprintln(r.out, "  next                 Print the value after the last one shown")
	fmt.Fprintln(r.out, "  list <from> <count>  Print count values starting at from")
	fmt.Fprintln(r.out, "  stats                Show cache and memory statistics")
	fmt.Fprintln(r.out, "  help                 Show this help")
	fmt.Fprintln(r.out, "  exit | quit          Leave")
}

func (r *REPL) cmdGet(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(r.out, ui.Error("Usage: get <n>"))
		return
	}
	n, err := parseIndex(args[0])
	if err != nil {
		fmt.Fprintln(r.out, ui.Error(err.Error()))
		return
	}
	r.show(ctx, n)
}

func (r *REPL) cmdList(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(r.out, ui.Error("Usage: list <from> <count>"))
		return
	}
	from, err := parseIndex(args[0])
	if err != nil {
		fmt.Fprintln(r.out, ui.Error(err.Error()))
		return
	}
	count, err := strconv.Atoi(args[1])
	if err != nil || count < 1 || count > maxREPLList {
		fmt.Fprintln(r.out, ui.Error(fmt.Sprintf("count must be between 1 and %d", maxREPLList)))
		return
	}
	for k := 0; k < count; k++ {
		i := from + k
		if !r.show(ctx, i) {
			return
		}
	}
}

// show prints the value at n and advances the cursor past it. It reports
// whether a value was printed.
func (r *REPL) show(ctx context.Context, n int) bool {
	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	v, err := r.source.ValueAt(ctx, n)
	switch {
	case errors.Is(err, sequence.ErrOverflow):
		DisplayOverflowNotice(r.out, n)
		return false
	case err != nil:
		fmt.Fprintln(r.out, ui.Error(fmt.Sprintf("Error: %v", err)))
		return false
	}
	DisplayRow(r.out, Row{Index: n, Value: v}, false)
	r.cursor = n + 1
	return true
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid index: %s", s)
	}
	return n, nil
}
