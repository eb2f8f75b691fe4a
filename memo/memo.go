// Package memo provides the single-slot memoizer embedded in generated value
// types for memoized properties.
package memo

import "sync"

// Memoizer caches the result of the first computation it is asked to run.
// It is safe for concurrent use. A nil *Memoizer caches nothing and runs the
// supplier on every call, which keeps zero-value records usable.
type Memoizer[T any] struct {
	once  sync.Once
	value T
}

// New returns an empty Memoizer.
func New[T any]() *Memoizer[T] {
	return &Memoizer[T]{}
}

// ComputeIfAbsent returns the cached value, calling supplier to produce it on
// first use. supplier runs at most once per Memoizer.
func (m *Memoizer[T]) ComputeIfAbsent(supplier func() T) T {
	if m == nil {
		return supplier()
	}
	m.once.Do(func() {
		m.value = supplier()
	})
	return m.value
}
