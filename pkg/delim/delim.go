// Package delim concatenates ordered string sequences with a configured
// delimiter placed strictly between elements.
package delim

import "strings"

// Joiner joins strings with a fixed delimiter. The delimiter may be empty.
// A Joiner is immutable and safe for concurrent use; construct one per
// desired delimiter and reuse it.
type Joiner struct {
	sep string
}

// New creates a Joiner with the given delimiter.
func New(sep string) Joiner {
	return Joiner{sep: sep}
}

// Delimiter returns the configured delimiter.
func (j Joiner) Delimiter() string { return j.sep }

// Join concatenates items in order with the delimiter between elements.
// The result never begins or ends with the delimiter: it appears exactly
// len(items)-1 times, and zero times for one or no items.
func (j Joiner) Join(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}

	var b strings.Builder
	n := len(j.sep) * (len(items) - 1)
	for _, item := range items {
		n += len(item)
	}
	b.Grow(n)

	b.WriteString(items[0])
	for _, item := range items[1:] {
		b.WriteString(j.sep)
		b.WriteString(item)
	}
	return b.String()
}

// Join is a convenience for one-off joins without constructing a Joiner.
func Join(sep string, items []string) string {
	return New(sep).Join(items)
}
