// Package config parses the command line and environment into an AppConfig.
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/fibscroll/internal/errors"
)

// EnvPrefix prefixes every environment variable override.
const EnvPrefix = "FIBSCROLL_"

// Defaults.
const (
	DefaultCount    = 20
	DefaultPrefetch = 5
	DefaultAddr     = ":8080"
	DefaultTimeout  = time.Minute
	DefaultLogLevel = "info"
)

// Mode is the top-level behaviour selected by the flags.
type Mode int

const (
	ModeList Mode = iota
	ModeGet
	ModeTUI
	ModeREPL
	ModeServe
	ModeCompletion
)

func (m Mode) String() string {
	switch m {
	case ModeGet:
		return "get"
	case ModeTUI:
		return "tui"
	case ModeREPL:
		return "repl"
	case ModeServe:
		return "serve"
	case ModeCompletion:
		return "completion"
	default:
		return "list"
	}
}

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Index is the single index printed by get mode; -1 when unset.
	Index int
	// Count is the number of rows the list loads up front; 0 means until overflow.
	Count int
	// Prefetch is how close to the end of the list the TUI cursor must be
	// before the next row is requested.
	Prefetch int
	TUI      bool
	REPL     bool
	Serve    bool
	// Addr is the HTTP listen address in serve mode.
	Addr    string
	Timeout time.Duration
	Quiet   bool
	JSON    bool
	// OutputFile, when set, receives a copy of the printed list.
	OutputFile string
	NoColor    bool
	LogLevel   string
	Completion string
}

// Mode derives the run mode. Validate guarantees at most one applies.
func (c AppConfig) Mode() Mode {
	switch {
	case c.Completion != "":
		return ModeCompletion
	case c.Serve:
		return ModeServe
	case c.TUI:
		return ModeTUI
	case c.REPL:
		return ModeREPL
	case c.Index >= 0:
		return ModeGet
	default:
		return ModeList
	}
}

var (
	validLogLevels = []string{"debug", "info", "warn", "error", "disabled"}
	validShells    = []string{"bash", "zsh", "fish", "powershell"}
)

// Validate checks the configuration for semantic errors.
func (c AppConfig) Validate() error {
	if c.Index < -1 {
		return apperrors.NewConfigError("-n must be a non-negative index, got %d", c.Index)
	}
	if c.Count < 0 {
		return apperrors.NewConfigError("--count must be >= 0, got %d", c.Count)
	}
	if c.Prefetch < 1 {
		return apperrors.NewConfigError("--prefetch must be >= 1, got %d", c.Prefetch)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("--timeout must be positive, got %s", c.Timeout)
	}

	modes := 0
	for _, on := range []bool{c.TUI, c.REPL, c.Serve} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return apperrors.NewConfigError("--tui, --repl and --serve are mutually exclusive")
	}
	if modes == 1 && c.Index >= 0 {
		return apperrors.NewConfigError("-n cannot be combined with --tui, --repl or --serve")
	}
	if c.Serve && c.Addr == "" {
		return apperrors.NewConfigError("--addr must not be empty")
	}
	if !contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return apperrors.NewConfigError("--log-level must be one of %s, got %q", strings.Join(validLogLevels, ", "), c.LogLevel)
	}
	if c.Completion != "" && !contains(validShells, c.Completion) {
		return apperrors.NewConfigError("--completion must be one of %s, got %q", strings.Join(validShells, ", "), c.Completion)
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// ParseConfig parses args into an AppConfig. Priority is
// flags > FIBSCROLL_* environment variables > defaults.
//
// Parameters:
//   - programName: Used in the usage message.
//   - args: The arguments, without the program name.
//   - errorWriter: Receives usage and parse errors.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp for --help, a ConfigError otherwise.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [flags]\n\n", programName)
		fmt.Fprintln(errorWriter, "Displays the Fibonacci sequence until it no longer fits in a 64-bit integer.")
		fmt.Fprintln(errorWriter, "\nFlags:")
		fs.PrintDefaults()
	}

	config := AppConfig{}
	fs.IntVar(&config.Index, "n", -1, "Print only the value at this zero-based index.")
	fs.IntVar(&config.Count, "count", DefaultCount, "Number of rows to load (0 = until overflow).")
	fs.IntVar(&config.Prefetch, "prefetch", DefaultPrefetch, "TUI: request more rows when the cursor is this close to the end.")
	fs.BoolVar(&config.TUI, "tui", false, "Interactive scrolling list.")
	fs.BoolVar(&config.REPL, "repl", false, "Interactive command prompt.")
	fs.BoolVar(&config.Serve, "serve", false, "Serve the sequence over HTTP.")
	fs.StringVar(&config.Addr, "addr", DefaultAddr, "HTTP listen address for --serve.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum time for non-interactive modes.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print values only.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&config.JSON, "json", false, "Print results as JSON.")
	fs.StringVar(&config.OutputFile, "output", "", "Also write the list to this file.")
	fs.StringVar(&config.OutputFile, "o", "", "Shorthand for --output.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn, error, disabled.")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script for bash, zsh, fish or powershell.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	applyEnvOverrides(&config, fs)

	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		return AppConfig{}, err
	}
	return config, nil
}
