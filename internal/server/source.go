//go:generate mockgen -source=source.go -destination=mocks/mock_source.go -package=mocks

package server

import (
	"context"

	"github.com/agbru/fibscroll/internal/sequence"
)

// ValueSource is the part of sequence.Generator the handlers need.
type ValueSource interface {
	// ValueAt blocks until the value at index n is known or ctx ends.
	ValueAt(ctx context.Context, n int) (int64, error)
	// Stats returns the cache counters.
	Stats() sequence.Stats
}
