package sequence

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func propertyParameters() *gopter.TestParameters {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	return parameters
}

// TestRecurrence_PropertyBased verifies F(n) = F(n-1) + F(n-2) for every
// representable n >= 2, regardless of the order the cache was filled in.
func TestRecurrence_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(propertyParameters())

	properties.Property("F(n) = F(n-1) + F(n-2)", prop.ForAll(
		func(n int) bool {
			c := NewCache()
			fn, err := c.ValueAt(n)
			if err != nil {
				return false
			}
			fn1, _ := c.ValueAt(n - 1)
			fn2, _ := c.ValueAt(n - 2)
			return fn == fn1+fn2
		},
		gen.IntRange(2, MaxIndex),
	))

	properties.TestingRun(t)
}

// TestRequestOrder_PropertyBased feeds random request sequences to a cache
// and checks that every answer agrees with a freshly filled cache, that the
// length never shrinks, and that overflow is reported exactly past MaxIndex.
func TestRequestOrder_PropertyBased(t *testing.T) {
	reference := NewCache()
	if _, err := reference.ValueAt(MaxIndex); err != nil {
		t.Fatalf("filling reference cache: %v", err)
	}
	want := reference.Values()

	properties := gopter.NewProperties(propertyParameters())

	properties.Property("answers are order independent", prop.ForAll(
		func(requests []int) bool {
			c := NewCache()
			prevLen := 0
			for _, n := range requests {
				v, err := c.ValueAt(n)
				if c.Len() < prevLen {
					return false
				}
				prevLen = c.Len()

				if n > MaxIndex {
					if !errors.Is(err, ErrOverflow) {
						return false
					}
					continue
				}
				if err != nil || v != want[n] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, MaxIndex+20)),
	))

	properties.Property("repeated requests are idempotent", prop.ForAll(
		func(n int) bool {
			c := NewCache()
			a, errA := c.ValueAt(n)
			b, errB := c.ValueAt(n)
			return a == b && errors.Is(errA, ErrOverflow) == errors.Is(errB, ErrOverflow)
		},
		gen.IntRange(0, 2*MaxIndex),
	))

	properties.TestingRun(t)
}

// TestReference_PropertyBased compares the cache with the recursive oracle on
// indices small enough to evaluate directly.
func TestReference_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(propertyParameters())

	properties.Property("cache agrees with recursion", prop.ForAll(
		func(n int) bool {
			v, err := NewCache().ValueAt(n)
			return err == nil && v == Reference(n)
		},
		gen.IntRange(0, 24),
	))

	properties.TestingRun(t)
}
