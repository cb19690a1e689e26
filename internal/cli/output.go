package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/fibscroll/internal/format"
)

// WriteListingToFile writes l to path as plain "n(i): value" rows under a
// comment header. An empty path is a no-op. Missing parent directories are
// created.
//
// Parameters:
//   - path: Destination file.
//   - l: The rows to write.
//   - took: How long the listing took, recorded in the header.
//
// Returns:
//   - error: If the directory or file cannot be written.
func WriteListingToFile(path string, l Listing, took time.Duration) (err error) {
	if path == "" {
		return nil
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	fmt.Fprintf(file, "# Fibonacci sequence (int64)\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Duration: %s\n", format.FormatExecutionDuration(took))
	fmt.Fprintf(file, "# Rows: %d\n", len(l.Rows))
	fmt.Fprintf(file, "\n")
	for _, r := range l.Rows {
		if _, err := fmt.Fprintln(file, format.FormatRow(r.Index, r.Value)); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
	}
	if l.Overflow {
		fmt.Fprintf(file, "# %s\n", FormatOverflowNotice(l.OverflowIndex))
	}
	return nil
}
