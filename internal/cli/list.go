package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/agbru/fibscroll/internal/sequence"
)

// listWindow bounds how many requests the list printer keeps in flight.
const listWindow = 20

// AsyncSource is the non-blocking side of sequence.Generator.
type AsyncSource interface {
	ValueAtAsync(n int, onComplete func(sequence.Result)) error
}

// ListOptions controls PrintList.
type ListOptions struct {
	// Count is the number of rows to print; 0 prints until overflow.
	Count int
	Quiet bool
	// JSON suppresses row output; the caller encodes the returned Listing.
	JSON bool
	// Spinner shows a wait indicator on out until the first row arrives.
	Spinner bool
}

// Listing is the outcome of PrintList.
type Listing struct {
	Rows     []Row `json:"values"`
	Overflow bool  `json:"overflow"`
	// OverflowIndex is the first index that did not fit, set with Overflow.
	OverflowIndex int `json:"overflow_index,omitempty"`
}

// PrintList requests rows 0, 1, 2, ... from src and prints each one as it is
// delivered on loop, which PrintList drains on the calling goroutine. src
// must dispatch its completions to loop. Printing stops at Count rows or at
// the first overflow, whichever comes first; overflow is not an error.
func PrintList(ctx context.Context, src AsyncSource, loop *sequence.Loop, out io.Writer, opts ListOptions) (Listing, error) {
	var (
		listing     Listing
		next        int
		outstanding int
		firstErr    error
	)

	spin := spinnerFor(out, opts.Spinner && !opts.Quiet && !opts.JSON)
	spin.UpdateSuffix(" generating sequence...")
	spin.Start()
	spinning := true
	stopSpin := func() {
		if spinning {
			spin.Stop()
			spinning = false
		}
	}
	defer stopSpin()

	wantMore := func() bool {
		return !listing.Overflow && firstErr == nil && (opts.Count == 0 || next < opts.Count)
	}

	var submit func() error
	handle := func(r sequence.Result) {
		outstanding--
		stopSpin()
		if listing.Overflow || firstErr != nil {
			return
		}
		switch {
		case r.Overflowed():
			listing.Overflow = true
			listing.OverflowIndex = r.Index
			if !opts.Quiet && !opts.JSON {
				DisplayOverflowNotice(out, r.Index)
			}
			return
		case r.Err != nil:
			firstErr = fmt.Errorf("value at index %d: %w", r.Index, r.Err)
			return
		}
		row := Row{Index: r.Index, Value: r.Value}
		listing.Rows = append(listing.Rows, row)
		if !opts.JSON {
			DisplayRow(out, row, opts.Quiet)
		}
		if err := submit(); err != nil {
			firstErr = err
		}
	}
	submit = func() error {
		for outstanding < listWindow && wantMore() {
			if err := src.ValueAtAsync(next, handle); err != nil {
				return err
			}
			next++
			outstanding++
		}
		return nil
	}

	if err := submit(); err != nil {
		return listing, err
	}
	if err := loop.RunUntil(ctx, func() bool { return outstanding == 0 }); err != nil {
		return listing, err
	}
	return listing, firstErr
}
