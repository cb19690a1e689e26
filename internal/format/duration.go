// Package format renders durations, numbers and sequence rows for display.
package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration formats a time.Duration for display.
// Durations under a millisecond are shown in microseconds, under a second in
// milliseconds, and otherwise with time.Duration's own formatting.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: The formatted duration.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return d.Round(time.Millisecond).String()
	}
}
