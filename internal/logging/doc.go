// Package logging provides a unified logging interface for fibscroll.
// It abstracts the underlying logging implementation, allowing consistent logging
// across the sequence generator, the HTTP server and the terminal frontends while
// supporting multiple backends.
package logging
