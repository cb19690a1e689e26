// # Naming Conventions
//
//   - Display* functions write formatted output to an [io.Writer].
//   - Format* functions return a string without performing I/O.
//   - Write* functions write to the filesystem.

package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/agbru/fibscroll/internal/format"
	"github.com/agbru/fibscroll/internal/metrics"
	"github.com/agbru/fibscroll/internal/sequence"
	"github.com/agbru/fibscroll/internal/ui"
)

// Row is one entry of the sequence.
type Row struct {
	Index int   `json:"index"`
	Value int64 `json:"value"`
}

// FormatRowColored renders a row as "n(i): value" with theme colors.
func FormatRowColored(r Row) string {
	return ui.Index(format.RowLabel(r.Index)) + ": " + ui.Value(format.FormatValue(r.Value, false))
}

// DisplayRow prints one row; quiet mode prints the bare value.
func DisplayRow(out io.Writer, r Row, quiet bool) {
	if quiet {
		fmt.Fprintln(out, r.Value)
		return
	}
	fmt.Fprintln(out, FormatRowColored(r))
}

// DisplayOverflowNotice prints the end-of-range line shown after the last row.
func DisplayOverflowNotice(out io.Writer, index int) {
	fmt.Fprintln(out, ui.Overflow(FormatOverflowNotice(index)))
}

// FormatOverflowNotice describes the first index that no longer fits.
func FormatOverflowNotice(index int) string {
	return fmt.Sprintf("%s does not fit in a 64-bit integer; end of sequence (last index %d).",
		format.RowLabel(index), sequence.MaxIndex)
}

// DisplayJSON writes v as indented JSON.
func DisplayJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// DisplayStats prints generator counters and runtime memory figures.
func DisplayStats(out io.Writer, s sequence.Stats, m metrics.MemorySnapshot) {
	fmt.Fprintf(out, "%s\n", ui.Bold("Cache"))
	fmt.Fprintf(out, "  Length:      %s\n", ui.Value(fmt.Sprint(s.Len)))
	fmt.Fprintf(out, "  Hits:        %d\n", s.Hits)
	fmt.Fprintf(out, "  Extensions:  %d\n", s.Extensions)
	fmt.Fprintf(out, "  Overflows:   %d\n", s.Overflows)
	fmt.Fprintf(out, "%s\n", ui.Bold("Runtime"))
	fmt.Fprintf(out, "  Heap:        %s\n", format.FormatBytes(m.HeapAlloc))
	fmt.Fprintf(out, "  Sys:         %s\n", format.FormatBytes(m.Sys))
	fmt.Fprintf(out, "  GC cycles:   %d\n", m.NumGC)
	fmt.Fprintf(out, "  Goroutines:  %d\n", m.NumGoroutine)
}
