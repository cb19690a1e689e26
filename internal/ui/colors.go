package ui

// Paint wraps s in code and the reset sequence. With an empty code it
// returns s untouched.
func Paint(code, s string) string {
	if code == "" {
		return s
	}
	return code + s + CurrentTheme().Reset
}

// Index colors a row label.
func Index(s string) string { return Paint(CurrentTheme().Index, s) }

// Value colors a Fibonacci value.
func Value(s string) string { return Paint(CurrentTheme().Value, s) }

// Overflow colors the end-of-range notice.
func Overflow(s string) string { return Paint(CurrentTheme().Overflow, s) }

// Muted colors secondary text.
func Muted(s string) string { return Paint(CurrentTheme().Muted, s) }

// Accent colors prompts and titles.
func Accent(s string) string { return Paint(CurrentTheme().Accent, s) }

// Error colors error messages.
func Error(s string) string { return Paint(CurrentTheme().Error, s) }

// Bold renders s in bold.
func Bold(s string) string { return Paint(CurrentTheme().Bold, s) }
