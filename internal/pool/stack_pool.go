// Package pool provides sync.Pool-backed reuse of the tokenizer's and
// serializer's depth stacks: a server that constructs a fresh Tokenizer or
// Serializer per message, rather than calling Reset on a long-lived one,
// can return the backing array instead of discarding it.
package pool

import "sync"

// StackPool pools the backing array of a []T, sized for small stacks (a
// nesting depth of a handful of frames is the common case; it grows past
// its initial capacity like any slice when a message nests deeper).
type StackPool[T any] struct {
	pool sync.Pool
}

// NewStackPool returns a pool that hands out empty, capacity-8 slices.
func NewStackPool[T any]() *StackPool[T] {
	return &StackPool[T]{
		pool: sync.Pool{
			New: func() any {
				s := make([]T, 0, 8)

				return &s
			},
		},
	}
}

// Get returns an empty slice, possibly with reused backing capacity.
func (p *StackPool[T]) Get() []T {
	ptr, _ := p.pool.Get().(*[]T)

	return (*ptr)[:0]
}

// Put returns s to the pool. The slice's elements are zeroed first so a
// pooled stack never keeps a frame's pointer/slice fields (e.g. a value.Value
// tree) reachable after the caller is done with it.
func (p *StackPool[T]) Put(s []T) {
	var zero T
	s = s[:cap(s)]
	for i := range s {
		s[i] = zero
	}
	s = s[:0]
	p.pool.Put(&s)
}
