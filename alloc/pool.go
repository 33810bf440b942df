package alloc

import (
	"math/bits"
	"sync"
)

// Pool recycles blocks in power of two size classes. A block of len n is
// backed by an array of the next power of two at or above n. The zero value
// is ready to use.
type Pool[V any] struct {
	_ [0]func() // no equality

	classes [bits.UintSize]sync.Pool
}

func class(n int) int { return bits.Len(uint(n - 1)) }

func (p *Pool[V]) Allocate(n int) []V {
	if n <= 0 {
		return nil
	}
	c := class(n)
	if b, ok := p.classes[c].Get().(*[]V); ok {
		return (*b)[:n]
	}
	return make([]V, n, 1<<c)
}

// Deallocate zeroes the whole backing array and makes it available to later
// allocations of the same class. Blocks that did not come from a Pool are
// dropped.
func (p *Pool[V]) Deallocate(block []V) {
	c := cap(block)
	if c == 0 || c&(c-1) != 0 {
		return
	}
	block = block[:c]
	clear(block)
	p.classes[class(c)].Put(&block)
}

func (p *Pool[V]) Construct(block []V, i int, v V) { construct(block, i, v) }
func (p *Pool[V]) Destroy(block []V, i int)        { destroy(block, i) }
