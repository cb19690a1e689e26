// Package app wires configuration, the sequence generator and the run modes
// together for the fibscroll binary.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/agbru/fibscroll/internal/cli"
	"github.com/agbru/fibscroll/internal/config"
	apperrors "github.com/agbru/fibscroll/internal/errors"
	"github.com/agbru/fibscroll/internal/logging"
	"github.com/agbru/fibscroll/internal/sequence"
	"github.com/agbru/fibscroll/internal/tui"
	"github.com/agbru/fibscroll/internal/ui"
)

// Application represents the fibscroll application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	// In is the REPL input; nil means stdin.
	In     io.Reader
	logger logging.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithInput sets the reader used by REPL mode.
func WithInput(in io.Reader) AppOption {
	return func(a *Application) { a.In = in }
}

// WithLogger replaces the console logger built from the configuration.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.logger = l }
}

// New creates an Application by parsing command-line arguments. args[0] is
// the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	programName := "fibscroll"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	app := &Application{Config: cfg, ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.logger == nil {
		app.logger = logging.NewConsoleLogger(errWriter, "fibscroll")
	}
	return app, nil
}

// Run executes the configured mode and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	level := a.Config.LogLevel
	if (a.Config.Quiet || a.Config.JSON) && strings.EqualFold(level, config.DefaultLogLevel) {
		level = "warn"
	}
	if err := logging.SetGlobalLevel(level); err != nil {
		return apperrors.HandleError(apperrors.NewConfigError("%v", err), a.ErrWriter)
	}
	ui.InitTheme(a.Config.NoColor)

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	mode := a.Config.Mode()
	a.logger.Debug("starting", logging.String("mode", mode.String()))

	var err error
	switch mode {
	case config.ModeServe:
		err = a.runServe(ctx)
	case config.ModeTUI:
		err = a.runTUI(ctx)
	case config.ModeREPL:
		err = a.runREPL(ctx, out)
	case config.ModeGet:
		err = a.runGet(ctx, out)
	default:
		err = a.runList(ctx, out)
	}
	return apperrors.HandleError(err, a.ErrWriter)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runTUI launches the scrolling list. The session has no overall deadline;
// it ends when the user quits or a signal arrives. The generator logs
// nothing while the alternate screen is active.
func (a *Application) runTUI(ctx context.Context) error {
	err := tui.Run(ctx, tui.Options{
		Initial:  a.Config.Count,
		Prefetch: a.Config.Prefetch,
		Version:  Version,
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// runREPL starts the interactive prompt. Timeout bounds each command.
func (a *Application) runREPL(ctx context.Context, out io.Writer) error {
	gen := sequence.New(sequence.WithLogger(a.logger))
	defer gen.Close()

	repl := cli.NewREPL(gen, cli.REPLConfig{Timeout: a.Config.Timeout})
	repl.SetOutput(out)
	if a.In != nil {
		repl.SetInput(a.In)
	}
	repl.Start(ctx)
	return nil
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
