package sequence

// Reference computes F(n) by plain recursion, without memoization or
// overflow checks. It is exponential in n and exists only as an oracle for
// tests. n must be non-negative.
func Reference(n int) int64 {
	if n < 2 {
		return 1
	}
	return Reference(n-1) + Reference(n-2)
}
