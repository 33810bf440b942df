package cvec

import "github.com/pbasic/pbasic/alloc"

// nextCapacity grows c by a quarter, and at least one slot, until it holds
// m.
func nextCapacity(c, m int64) int64 {
	for c < m {
		c += max(1, c/4)
	}
	return c
}

// grow ensures storage for at least m slots.
//
// Appenders that observe a full block at the same time all end up here. The
// capacity is checked again under the upgradeable hold and once more after
// upgrading if another exclusive locker got in, so only the first of them
// reallocates.
func (t *T[V]) grow(m int64) {
	t.mu.ULock()
	if int64(len(t.block)) >= m {
		// another goroutine already did the realloc
		t.mu.UUnlock()
		return
	}

	if !t.mu.Upgrade() && int64(len(t.block)) >= m {
		t.mu.UpgradedUnlock()
		return
	}
	defer t.mu.UpgradedUnlock()

	// every slot an appender constructed lives below min(claimed, cap), but
	// not necessarily below Len when appends finish out of order.
	c := int64(len(t.block))
	t.reallocLocked(nextCapacity(c, m), min(t.claimed.Load(), c))
}

// reallocLocked replaces the block with one of c slots, moving the first n
// slots across. It must be called with the exclusive lock held.
func (t *T[V]) reallocLocked(c, n int64) {
	a := t.allocator()

	var next []V
	if c > 0 {
		next = a.Allocate(int(c))
	}
	if t.block != nil {
		alloc.Relocate(a, next, t.block[:n])
		a.Deallocate(t.block)
	}

	t.block = next
	t.capacity.Store(c)
}
