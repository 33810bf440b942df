package alloc

import (
	"sync"
	"unsafe"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/zeebo/errs/v2"
)

type Stats struct {
	Allocs      uint64
	Deallocs    uint64
	Constructs  uint64
	Destroys    uint64
	Relocations uint64 // elements moved between blocks

	LiveBlocks int
	LiveSlots  uint64
}

// Tracked wraps an allocator and records which slots of every outstanding
// block hold a constructed element. It panics when a slot is constructed or
// destroyed twice, or when a block is released while still holding live
// elements. The zero value wraps Heap.
type Tracked[V any] struct {
	_ [0]func() // no equality

	A Allocator[V]

	mu    sync.Mutex // protects the fields below
	live  map[*V]*roaring.Bitmap
	stats Stats
}

func (t *Tracked[V]) inner() Allocator[V] {
	if t.A != nil {
		return t.A
	}
	return Heap[V]{}
}

// fail releases mu and panics.
func (t *Tracked[V]) fail(format string, args ...any) {
	t.mu.Unlock()
	panic(errs.Errorf("alloc: "+format, args...))
}

// slots returns the liveness bitmap of block. It must be called with mu
// held.
func (t *Tracked[V]) slots(block []V) *roaring.Bitmap {
	bm, ok := t.live[unsafe.SliceData(block)]
	if !ok {
		t.fail("block %p not allocated", unsafe.SliceData(block))
	}
	return bm
}

func (t *Tracked[V]) Allocate(n int) []V {
	block := t.inner().Allocate(n)
	if len(block) == 0 {
		return block
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.live == nil {
		t.live = make(map[*V]*roaring.Bitmap)
	}
	t.live[unsafe.SliceData(block)] = roaring.New()
	t.stats.Allocs++
	return block
}

func (t *Tracked[V]) Deallocate(block []V) {
	if len(block) == 0 {
		return
	}

	t.mu.Lock()
	bm := t.slots(block)
	if n := bm.GetCardinality(); n > 0 {
		t.fail("deallocate block with %d live slots", n)
	}
	delete(t.live, unsafe.SliceData(block))
	t.stats.Deallocs++
	t.mu.Unlock()

	t.inner().Deallocate(block)
}

func (t *Tracked[V]) Construct(block []V, i int, v V) {
	t.mu.Lock()
	if !t.slots(block).CheckedAdd(uint32(i)) {
		t.fail("slot %d constructed twice", i)
	}
	t.stats.Constructs++
	t.mu.Unlock()

	t.inner().Construct(block, i, v)
}

func (t *Tracked[V]) Destroy(block []V, i int) {
	t.mu.Lock()
	if !t.slots(block).CheckedRemove(uint32(i)) {
		t.fail("slot %d destroyed while not live", i)
	}
	t.stats.Destroys++
	t.mu.Unlock()

	t.inner().Destroy(block, i)
}

// Relocate transfers the liveness of every slot in src to the same index
// in dst.
func (t *Tracked[V]) Relocate(dst, src []V) {
	if len(src) > 0 {
		t.mu.Lock()
		sbm, dbm := t.slots(src), t.slots(dst)
		for _, x := range sbm.ToArray() {
			if int(x) >= len(src) {
				continue
			}
			if !dbm.CheckedAdd(x) {
				t.fail("relocate onto live slot %d", x)
			}
			sbm.Remove(x)
			t.stats.Relocations++
		}
		t.mu.Unlock()
	}

	Relocate(t.inner(), dst, src)
}

func (t *Tracked[V]) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.stats
	s.LiveBlocks = len(t.live)
	for _, bm := range t.live {
		s.LiveSlots += bm.GetCardinality()
	}
	return s
}
