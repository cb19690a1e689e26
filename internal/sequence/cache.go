package sequence

// MaxIndex is the largest index whose Fibonacci value fits in an int64:
// F(91) = 7540113804746346429. Index MaxIndex+1 is the first to overflow.
const MaxIndex = 91

// Stats is a snapshot of cache activity.
type Stats struct {
	Len        int    `json:"len"`
	Hits       uint64 `json:"hits"`
	Extensions uint64 `json:"extensions"`
	Overflows  uint64 `json:"overflows"`
}

// Cache is the memoized prefix of the Fibonacci sequence.
//
// The prefix is only ever appended to, so entry i never changes once set.
// A Cache is not safe for concurrent use; a Generator serializes access.
type Cache struct {
	values     []int64
	hits       uint64
	extensions uint64
	overflows  uint64
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{values: make([]int64, 0, MaxIndex+1)}
}

// ValueAt returns the Fibonacci value at index n, computing and caching any
// missing entries 0..n first.
//
// If an entry on the way to n overflows, extension stops there: entries
// computed before it stay cached and an *OverflowError naming the
// overflowing index is returned.
func (c *Cache) ValueAt(n int) (int64, error) {
	if n < 0 {
		return 0, ErrNegativeIndex
	}
	if n < len(c.values) {
		c.hits++
		return c.values[n], nil
	}

	for i := len(c.values); i <= n; i++ {
		if i < 2 {
			c.values = append(c.values, 1)
			continue
		}
		// Signed addition wraps; for two positive operands a wrap always
		// lands on a non-positive value.
		next := c.values[i-1] + c.values[i-2]
		if next <= 0 {
			c.overflows++
			return 0, &OverflowError{Index: i}
		}
		c.values = append(c.values, next)
	}
	c.extensions++
	return c.values[n], nil
}

// Len returns the number of cached entries.
func (c *Cache) Len() int { return len(c.values) }

// Values returns a copy of the cached prefix.
func (c *Cache) Values() []int64 {
	out := make([]int64, len(c.values))
	copy(out, c.values)
	return out
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Len:        len(c.values),
		Hits:       c.hits,
		Extensions: c.extensions,
		Overflows:  c.overflows,
	}
}
