package syncx

import (
	"fmt"
	"sync"
)

// Hashable is implemented by values stored in a HashedSlice.
// Digest must return a key that is unique within one slice.
type Hashable interface {
	Digest() string
}

// HashedSlice keeps insertion order and offers lookup by digest.
type HashedSlice[T Hashable] struct {
	mu     sync.RWMutex
	slice  []T
	lookup map[string]int
}

func NewHashedSlice[T Hashable]() *HashedSlice[T] {
	return &HashedSlice[T]{
		slice:  make([]T, 0),
		lookup: make(map[string]int),
	}
}

// Add appends item. An item whose digest is already present is rejected.
func (hs *HashedSlice[T]) Add(item T) error {
	hs.mu.Lock()
	defer hs.mu.Unlock()

	digest := item.Digest()
	if _, exists := hs.lookup[digest]; exists {
		return fmt.Errorf("item with digest '%s' already exists", digest)
	}
	hs.slice = append(hs.slice, item)
	hs.lookup[digest] = len(hs.slice) - 1
	return nil
}

func (hs *HashedSlice[T]) GetByDigest(digest string) (T, bool) {
	hs.mu.RLock()
	defer hs.mu.RUnlock()

	index, found := hs.lookup[digest]
	if !found {
		var zero T
		return zero, false
	}
	return hs.slice[index], true
}
