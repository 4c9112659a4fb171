// Package generation provides the token scheme used to invalidate stale
// timer callbacks.
//
// Every scheduled callback captures the token current at schedule time and
// checks it with IsCurrent when it fires. Any operation that must invalidate
// in-flight callbacks calls Bump first. A stale callback simply does nothing,
// so a timer that was "cancelled" twice, or never cancelled at all, is
// harmless.
package generation

// Token identifies one generation.
type Token uint64

// Counter is a monotonically increasing generation counter.
// It is not synchronized; the owner serializes access.
type Counter struct {
	current Token
}

// Bump invalidates all previously issued tokens and returns the new one.
func (c *Counter) Bump() Token {
	c.current++
	return c.current
}

// Current returns the active token.
func (c *Counter) Current() Token {
	return c.current
}

// IsCurrent reports whether tok is still the active generation.
func (c *Counter) IsCurrent(tok Token) bool {
	return tok == c.current
}
