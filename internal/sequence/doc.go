// Package sequence implements the memoized Fibonacci sequence behind the
// scrolling list.
//
// A Cache holds the computed prefix of the sequence (F(0) = F(1) = 1) and
// extends it on demand in increasing index order. It stops growing at the
// last value that fits in an int64 and reports ErrOverflow for that index
// and every index beyond it.
//
// A Generator owns a Cache and a single worker goroutine. Requests are
// served strictly in submission order and the worker is the only goroutine
// that mutates the cache. Completions are handed to a Dispatcher so they run
// on the caller's execution context, never on the worker.
package sequence
