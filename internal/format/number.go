package format

import (
	"strconv"
	"strings"
)

// FormatNumberString inserts a comma every three digits of a decimal string.
// A leading minus sign is preserved.
func FormatNumberString(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + len(s)/3 + 1)
	if neg {
		b.WriteByte('-')
	}
	head := len(s) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(s[:head])
	for i := head; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatValue renders v in decimal, grouped when grouped is true.
func FormatValue(v int64, grouped bool) string {
	s := strconv.FormatInt(v, 10)
	if grouped {
		return FormatNumberString(s)
	}
	return s
}

// FormatRow renders one row of the sequence as "n(i): value".
func FormatRow(i int, v int64) string {
	return RowLabel(i) + ": " + strconv.FormatInt(v, 10)
}

// RowLabel renders the "n(i)" label of a row.
func RowLabel(i int) string {
	return "n(" + strconv.Itoa(i) + ")"
}

// FormatBytes renders a byte count with a binary unit suffix.
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return strconv.FormatUint(b, 10) + " B"
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return strconv.FormatFloat(float64(b)/float64(div), 'f', 1, 64) + " " + string("KMGTPE"[exp]) + "iB"
}
