package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/agbru/fibscroll/internal/cli"
	apperrors "github.com/agbru/fibscroll/internal/errors"
	"github.com/agbru/fibscroll/internal/format"
	"github.com/agbru/fibscroll/internal/logging"
	"github.com/agbru/fibscroll/internal/sequence"
)

// runList prints the sequence from index 0. Completions are dispatched to a
// loop drained on this goroutine, so rows print in request order.
func (a *Application) runList(ctx context.Context, out io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancel()

	loop := sequence.NewLoop()
	gen := sequence.New(sequence.WithDispatcher(loop), sequence.WithLogger(a.logger))
	defer gen.Close()

	start := time.Now()
	listing, err := cli.PrintList(ctx, gen, loop, out, cli.ListOptions{
		Count:   a.Config.Count,
		Quiet:   a.Config.Quiet,
		JSON:    a.Config.JSON,
		Spinner: true,
	})
	if err != nil {
		return a.wrapDeadline(err, "list")
	}
	took := time.Since(start)

	a.logger.Debug("list complete",
		logging.Int("rows", len(listing.Rows)),
		logging.Duration("took", took))

	if a.Config.JSON {
		if err := cli.DisplayJSON(out, listing); err != nil {
			return fmt.Errorf("writing JSON: %w", err)
		}
	} else if !a.Config.Quiet {
		fmt.Fprintf(out, "\n%d rows in %s\n", len(listing.Rows), format.FormatExecutionDuration(took))
	}

	if a.Config.OutputFile != "" {
		if err := cli.WriteListingToFile(a.Config.OutputFile, listing, took); err != nil {
			return apperrors.WrapError(err, "saving list to %s", a.Config.OutputFile)
		}
		if !a.Config.Quiet && !a.Config.JSON {
			fmt.Fprintf(out, "Saved to %s\n", a.Config.OutputFile)
		}
	}
	return nil
}

// runGet prints the single value at Config.Index. Overflow is returned as an
// error so that it maps to its own exit code.
func (a *Application) runGet(ctx context.Context, out io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancel()

	gen := sequence.New(sequence.WithLogger(a.logger))
	defer gen.Close()

	n := a.Config.Index
	v, err := gen.ValueAt(ctx, n)
	if err != nil {
		if errors.Is(err, sequence.ErrOverflow) {
			return apperrors.WrapError(err, "value at %d", n)
		}
		return a.wrapDeadline(err, "get")
	}

	row := cli.Row{Index: n, Value: v}
	if a.Config.JSON {
		return cli.DisplayJSON(out, row)
	}
	cli.DisplayRow(out, row, a.Config.Quiet)
	return nil
}

// wrapDeadline turns a deadline into a TimeoutError naming the operation.
func (a *Application) wrapDeadline(err error, op string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.TimeoutError{Operation: op, Limit: a.Config.Timeout}
	}
	return err
}
