// Package pool provides a bounded object pool for reusable render buffers.
package pool

import "sync"

// Resettable is implemented by values that can be cleared before reuse.
type Resettable interface {
	Reset()
}

// Poolable values are resettable and comparable, so the zero value can be detected.
type Poolable interface {
	Resettable
	comparable
}

// Pool keeps up to capacity idle objects of type T.
type Pool[T Poolable] struct {
	items chan T
	newFn func() T

	mu     sync.Mutex
	hits   int
	misses int
}

// New creates a Pool. newFn builds an object when the pool is empty; when it
// is nil Get returns the zero value instead.
func New[T Poolable](capacity int, newFn func() T) *Pool[T] {
	return &Pool[T]{
		items: make(chan T, capacity),
		newFn: newFn,
	}
}

// Get takes an idle object from the pool or builds a new one.
func (p *Pool[T]) Get() T {
	select {
	case item := <-p.items:
		p.record(true)
		return item
	default:
		p.record(false)
		if p.newFn != nil {
			return p.newFn()
		}
		var zero T
		return zero
	}
}

// Put resets item and returns it to the pool. Zero values are dropped, as is
// anything that does not fit.
func (p *Pool[T]) Put(item T) {
	var zero T
	if item == zero {
		return
	}
	item.Reset()

	select {
	case p.items <- item:
	default:
	}
}

// Stats reports how many Get calls were served from the pool.
func (p *Pool[T]) Stats() (hits, misses int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hits, p.misses
}

func (p *Pool[T]) record(hit bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if hit {
		p.hits++
	} else {
		p.misses++
	}
}
