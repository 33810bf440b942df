package alloc

import (
	"sync"

	"github.com/pbasic/pbasic/sizeof"
)

// DefaultChunkLen is the number of slots in an arena chunk when ChunkLen is
// not set.
const DefaultChunkLen = 1024

// Arena carves blocks out of large chunks. Released blocks are zeroed but
// their space is only reclaimed by Reset, so it suits arrays that mostly
// grow. It is safe for concurrent use and can back many arrays at once.
type Arena[V any] struct {
	_ [0]func() // no equality

	ChunkLen int

	mu     sync.Mutex // protects the fields below
	chunks [][]V
	tail   []V // unused part of the last chunk
	used   int
}

func (a *Arena[V]) chunkLen() int {
	if a.ChunkLen > 0 {
		return a.ChunkLen
	}
	return DefaultChunkLen
}

func (a *Arena[V]) Allocate(n int) []V {
	if n <= 0 {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.used += n

	// requests larger than a chunk get their own and leave the tail alone
	size := a.chunkLen()
	if n > size {
		chunk := make([]V, n)
		a.chunks = append(a.chunks, chunk)
		return chunk
	}
	if len(a.tail) < n {
		a.tail = make([]V, size)
		a.chunks = append(a.chunks, a.tail)
	}

	block := a.tail[:n:n]
	a.tail = a.tail[n:]
	return block
}

func (a *Arena[V]) Deallocate(block []V) { clear(block) }

func (a *Arena[V]) Construct(block []V, i int, v V) { construct(block, i, v) }
func (a *Arena[V]) Destroy(block []V, i int)        { destroy(block, i) }

// Reset drops every chunk. Arrays still holding blocks from the arena keep
// them alive, but the arena no longer accounts for them.
func (a *Arena[V]) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.chunks, a.tail, a.used = nil, nil, 0
}

// Allocated is the number of slots handed out since the last Reset.
func (a *Arena[V]) Allocated() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.used
}

func (a *Arena[V]) Chunks() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return len(a.chunks)
}

func (a *Arena[V]) Size() (n uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, chunk := range a.chunks {
		n += sizeof.Slice(chunk)
	}
	return n
}
