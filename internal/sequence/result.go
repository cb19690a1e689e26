package sequence

import "errors"

// Result is the outcome of one request: either Value or a non-nil Err.
type Result struct {
	Index int
	Value int64
	Err   error
}

// OK reports whether the request produced a value.
func (r Result) OK() bool { return r.Err == nil }

// Overflowed reports whether the value at Index does not fit in an int64.
func (r Result) Overflowed() bool { return errors.Is(r.Err, ErrOverflow) }
