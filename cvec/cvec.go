// Package cvec implements a growable array that accepts appends from many
// goroutines at once.
//
// Appends claim a slot index with a single atomic add and construct the
// element while holding the structure lock in shared mode, so appenders
// never serialize against each other. Growth, Clear, Resize and ShrinkToFit
// replace or bulk destroy storage and take the lock exclusively.
//
// Three counters describe the array. Claimed counts indices handed out to
// appends, Len counts constructions that completed and Cap counts slots
// backed by storage. Claimed >= Len always holds and Len <= Cap. While
// appends are in flight Len may lag behind a higher slot that finished
// first; once they quiesce every index below Len holds an element.
//
// Clear, Resize and ShrinkToFit must not race with appends or with Range:
// they are safe to call concurrently but the counts they reset are only
// meaningful when nothing else is in flight.
package cvec

import (
	"math"
	"sync/atomic"

	"github.com/zeebo/errs/v2"

	"github.com/pbasic/pbasic/alloc"
	"github.com/pbasic/pbasic/sizeof"
	"github.com/pbasic/pbasic/upgrade"
)

// MaxLen bounds the length and capacity of an array.
const MaxLen = math.MaxInt >> 1

type T[V any] struct {
	_ [0]func() // no equality

	capacity atomic.Int64
	claimed  atomic.Int64
	visible  atomic.Int64

	mu    upgrade.RWMutex // protects block identity and bulk destruction
	block []V
	alloc alloc.Allocator[V]
}

// Init sets the allocator used for storage. It must be called before the
// array is used; the zero value allocates from the heap.
func (t *T[V]) Init(a alloc.Allocator[V]) { t.alloc = a }

func (t *T[V]) allocator() alloc.Allocator[V] {
	if t.alloc != nil {
		return t.alloc
	}
	return alloc.Heap[V]{}
}

func (t *T[V]) Empty() bool  { return t.visible.Load() <= 0 }
func (t *T[V]) Len() int     { return int(t.visible.Load()) }
func (t *T[V]) Cap() int     { return int(t.capacity.Load()) }
func (t *T[V]) Claimed() int { return int(t.claimed.Load()) }

func (t *T[V]) Size() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return 0 +
		/* block    */ sizeof.Slice(t.block) +
		/* counters */ 3*8 +
		/* mu       */ sizeof.Elem[upgrade.RWMutex]() +
		/* alloc    */ 16 +
		0
}

// Push appends a copy of v, made with its copy constructor if it has one.
func (t *T[V]) Push(v V) {
	v = alloc.CopyOf(v)
	t.place(t.claim(), v, nil)
}

// PushMove appends the value at p and leaves the zero value behind. No copy
// constructor runs.
func (t *T[V]) PushMove(p *V) {
	v := *p
	var zero V
	*p = zero
	t.place(t.claim(), v, nil)
}

// Emplace appends an element constructed in place by fn. The slot passed to
// fn holds the zero value and must not be retained after fn returns.
//
// If fn panics, the element keeps whatever fn left in it and still counts
// towards Len before the panic propagates.
func (t *T[V]) Emplace(fn func(*V)) {
	var zero V
	t.place(t.claim(), zero, fn)
}

func (t *T[V]) claim() int64 { return t.claimed.Add(1) - 1 }

// place constructs the element at the claimed index idx, growing storage
// until it covers idx.
func (t *T[V]) place(idx int64, v V, fn func(*V)) {
	for {
		if idx >= t.capacity.Load() {
			t.grow(idx + 1)
		}
		t.mu.RLock()
		if idx < int64(len(t.block)) {
			break
		}
		// an exclusive operation shrank the block after we grew it
		t.mu.RUnlock()
	}
	defer t.mu.RUnlock()
	defer t.visible.Add(1)

	t.allocator().Construct(t.block, int(idx), v)
	if fn != nil {
		fn(&t.block[idx])
	}
}

// Reserve makes room for at least n elements so that appends up to that
// length do not reallocate.
func (t *T[V]) Reserve(n int) error {
	if n < 0 || n > MaxLen {
		return errs.Errorf("invalid reserve: %d", n)
	}
	if int64(n) > t.capacity.Load() {
		t.grow(int64(n))
	}
	return nil
}

// Clear destroys every element. Storage is kept.
func (t *T[V]) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.destroyLocked(0, t.visible.Load())
	t.visible.Store(0)
	t.claimed.Store(0)
}

// ShrinkToFit reallocates storage to hold exactly Len elements, releasing
// it entirely when the array is empty.
func (t *T[V]) ShrinkToFit() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if n := t.visible.Load(); n != t.capacity.Load() {
		t.reallocLocked(n, n)
	}
}

// Resize changes Len to n, destroying elements past n or default
// constructing new ones up to n.
func (t *T[V]) Resize(n int) error {
	if n < 0 || n > MaxLen {
		return errs.Errorf("invalid resize: %d", n)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	size, next := t.visible.Load(), int64(n)
	switch {
	case next < size:
		t.destroyLocked(next, size)

	case next > size:
		if next > t.capacity.Load() {
			t.reallocLocked(next, size)
		}
		a := t.allocator()
		for i := size; i < next; i++ {
			alloc.Default(a, t.block, int(i))
		}

	default:
		return nil
	}

	t.visible.Store(next)
	t.claimed.Store(next)
	return nil
}

// Close destroys every element and releases storage. The array is empty and
// reusable afterwards.
func (t *T[V]) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.destroyLocked(0, t.visible.Load())
	t.visible.Store(0)
	t.claimed.Store(0)
	t.reallocLocked(0, 0)
}

func (t *T[V]) destroyLocked(from, to int64) {
	a := t.allocator()
	for i := from; i < to; i++ {
		a.Destroy(t.block, int(i))
	}
}
