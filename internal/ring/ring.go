// Package ring provides a fixed-capacity circular buffer addressed by a
// moving write cursor, used for per-tick simulation snapshots.
package ring

import "github.com/sirupsen/logrus"

// Buf is a circular buffer of N slots. Append advances the cursor and
// overwrites the oldest slot; Rewind moves the cursor back to a previous
// slot. Values older than N appends are lost.
type Buf[T any] struct {
	items  []T
	cursor int
}

// New creates a buffer with n slots holding zero values
func New[T any](n int) *Buf[T] {
	if n <= 0 {
		logrus.Panicf("ring: invalid capacity %d", n)
	}
	return &Buf[T]{items: make([]T, n)}
}

// Append advances the cursor and stores v there
func (b *Buf[T]) Append(v T) {
	b.cursor = (b.cursor + 1) % len(b.items)
	b.items[b.cursor] = v
}

// Rewind moves the cursor back k slots and returns the value stored
// there. k must not exceed the capacity.
func (b *Buf[T]) Rewind(k int) T {
	if k < 0 || k > len(b.items) {
		logrus.Panicf("ring: rewind %d out of range for capacity %d", k, len(b.items))
	}
	b.cursor = (len(b.items) + b.cursor - k) % len(b.items)
	return b.items[b.cursor]
}

// Cap returns the number of slots
func (b *Buf[T]) Cap() int {
	return len(b.items)
}
