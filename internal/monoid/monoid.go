// Package monoid implements a free monoid over annotated string slices.
//
// A [Buffer] stores all text in one contiguous string and keeps an ordered
// list of labels, each pointing at the byte range it annotates. The empty
// buffer is the identity element and [Buffer.Append] is the binary
// operation.
package monoid

import (
	"iter"
	"slices"
	"strings"
)

type entry[T any] struct {
	start, end int
	label      T
}

// Buffer is an append-only sequence of labelled text fragments.
// The zero value is an empty buffer ready to use. A Buffer must not be
// copied after first use.
type Buffer[T any] struct {
	payload strings.Builder
	labels  []entry[T]
}

// Len returns the length of the stored text in bytes. Labels do not count.
func (b *Buffer[T]) Len() int { return b.payload.Len() }

// IsEmpty reports whether the buffer holds neither text nor labels.
func (b *Buffer[T]) IsEmpty() bool { return b.payload.Len() == 0 && len(b.labels) == 0 }

// Clear drops all content. Strings previously returned by [Buffer.String]
// or yielded by [Buffer.All] stay valid.
func (b *Buffer[T]) Clear() {
	b.payload.Reset()
	b.labels = b.labels[:0]
}

// Push appends text annotated with label.
func (b *Buffer[T]) Push(label T, text string) *Buffer[T] {
	start := b.payload.Len()
	b.payload.WriteString(text)
	b.labels = append(b.labels, entry[T]{start: start, end: b.payload.Len(), label: label})
	return b
}

// Append concatenates other onto b in place. other is not modified.
func (b *Buffer[T]) Append(other *Buffer[T]) *Buffer[T] {
	if other == nil {
		return b
	}
	shift := b.payload.Len()
	// Read other first: other may be b itself.
	text, labels := other.payload.String(), other.labels
	b.payload.WriteString(text)
	b.labels = slices.Grow(b.labels, len(labels))
	for _, e := range labels {
		b.labels = append(b.labels, entry[T]{start: e.start + shift, end: e.end + shift, label: e.label})
	}
	return b
}

// Clone returns an independent copy of b.
func (b *Buffer[T]) Clone() *Buffer[T] {
	return (&Buffer[T]{}).Append(b)
}

// Concat returns a new buffer holding a followed by b. Neither input is
// modified.
func Concat[T any](a, b *Buffer[T]) *Buffer[T] {
	out := &Buffer[T]{}
	out.Append(a)
	out.Append(b)
	return out
}

// All yields every (label, text) pair in insertion order. The sequence can
// be ranged over any number of times. Yielded strings share the buffer's
// storage; iterating does not copy the text.
func (b *Buffer[T]) All() iter.Seq2[T, string] {
	return func(yield func(T, string) bool) {
		text := b.payload.String()
		for _, e := range b.labels {
			if !yield(e.label, text[e.start:e.end]) {
				return
			}
		}
	}
}

// String returns the raw stored text without any annotation.
func (b *Buffer[T]) String() string { return b.payload.String() }

// Equal reports whether two buffers hold the same text and the same labels
// over the same ranges.
func Equal[T comparable](a, b *Buffer[T]) bool {
	return a.payload.String() == b.payload.String() && slices.Equal(a.labels, b.labels)
}
