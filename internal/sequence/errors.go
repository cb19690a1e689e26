package sequence

import (
	"errors"
	"fmt"
)

var (
	// ErrOverflow is matched (via errors.Is) by every overflow outcome.
	ErrOverflow = errors.New("sequence: value exceeds int64 range")
	// ErrNegativeIndex is returned for indices below zero.
	ErrNegativeIndex = errors.New("sequence: index must be non-negative")
	// ErrClosed is returned when submitting to a closed Generator.
	ErrClosed = errors.New("sequence: generator closed")
)

// OverflowError reports the first index whose value does not fit in an int64.
type OverflowError struct {
	// Index is the first overflowing position, which is MaxIndex+1 for
	// every request at or beyond it.
	Index int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("sequence: value at index %d exceeds int64 range (max index %d)", e.Index, MaxIndex)
}

// Is makes errors.Is(err, ErrOverflow) true.
func (e *OverflowError) Is(target error) bool { return target == ErrOverflow }

// Overflow marks the error for apperrors.IsOverflow.
func (e *OverflowError) Overflow() bool { return true }
