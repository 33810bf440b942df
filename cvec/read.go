package cvec

// Get returns a copy of the element at index i. It reports false when i is
// outside [0, Len()).
func (t *T[V]) Get(i int) (v V, ok bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if i < 0 || int64(i) >= t.visible.Load() {
		return v, false
	}
	return t.block[i], true
}

// Range calls fn with every element below Len in index order until fn
// returns false. The shared lock is held throughout, so fn must not call
// methods that reallocate or bulk destroy, and appends from fn can block
// on growth.
func (t *T[V]) Range(fn func(i int, v V) bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := int(t.visible.Load())
	for i, v := range t.block[:n] {
		if !fn(i, v) {
			return
		}
	}
}

// AppendTo appends copies of the elements below Len to dst.
func (t *T[V]) AppendTo(dst []V) []V {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return append(dst, t.block[:t.visible.Load()]...)
}
