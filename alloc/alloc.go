// Package alloc provides the storage strategies used by cvec.
//
// An Allocator hands out raw blocks of slots and constructs or destroys
// single elements in place. Elements may opt into construction hooks by
// implementing Copier, Initer or Destroyer.
package alloc

type Allocator[V any] interface {
	// Allocate returns a block with len n. The slots hold zero values and
	// are considered unconstructed.
	Allocate(n int) []V

	// Deallocate releases a block returned by Allocate. Every slot must
	// have been destroyed or relocated out first.
	Deallocate(block []V)

	// Construct stores v into the unconstructed slot block[i].
	Construct(block []V, i int, v V)

	// Destroy runs the destructor of the live slot block[i] and leaves it
	// unconstructed.
	Destroy(block []V, i int)
}

// Relocator is implemented by allocators that need to observe elements
// being moved between blocks.
type Relocator[V any] interface {
	Relocate(dst, src []V)
}

// Copier is a copy constructor. Push style operations call it exactly once
// per copied value.
type Copier[V any] interface {
	Copy() V
}

// Initer is a default constructor run after a slot is zeroed.
type Initer interface {
	Init()
}

// Destroyer is a destructor, run exactly once per live element.
type Destroyer interface {
	Destroy()
}

// CopyOf returns a copy of v using its Copier when it has one.
func CopyOf[V any](v V) V {
	if c, ok := any(&v).(Copier[V]); ok {
		return c.Copy()
	}
	return v
}

// Default default-constructs block[i] through a.
func Default[V any](a Allocator[V], block []V, i int) {
	var zero V
	a.Construct(block, i, zero)
	if in, ok := any(&block[i]).(Initer); ok {
		in.Init()
	}
}

// Relocate moves every slot of src into the front of dst, leaving src
// unconstructed. No element hooks run.
func Relocate[V any](a Allocator[V], dst, src []V) {
	if len(dst) < len(src) {
		panic("alloc: relocate into smaller block")
	}
	if r, ok := a.(Relocator[V]); ok {
		r.Relocate(dst, src)
		return
	}
	relocate(dst, src)
}

func relocate[V any](dst, src []V) {
	clear(src[:copy(dst, src)])
}

func construct[V any](block []V, i int, v V) { block[i] = v }

func destroy[V any](block []V, i int) {
	if d, ok := any(&block[i]).(Destroyer); ok {
		d.Destroy()
	}
	var zero V
	block[i] = zero
}

// Heap allocates blocks from the Go heap. The zero value is ready to use.
type Heap[V any] struct{}

func (Heap[V]) Allocate(n int) []V { return make([]V, n) }

// Deallocate zeroes the block so anything it references can be collected
// even while the block itself is still reachable.
func (Heap[V]) Deallocate(block []V) { clear(block) }

func (Heap[V]) Construct(block []V, i int, v V) { construct(block, i, v) }
func (Heap[V]) Destroy(block []V, i int)        { destroy(block, i) }
