package cvec

import (
	"sync/atomic"

	"github.com/zeebo/xxh3"
)

const invalid = -1

// results counts element hook invocations. Tests using elem must not run in
// parallel.
var results struct {
	copies   atomic.Int64
	inits    atomic.Int64
	destroys atomic.Int64
}

func reset() {
	results.copies.Store(0)
	results.inits.Store(0)
	results.destroys.Store(0)
}

type elem struct{ id int }

func (e *elem) Copy() elem { results.copies.Add(1); return *e }
func (e *elem) Init()      { e.id = invalid; results.inits.Add(1) }
func (e *elem) Destroy()   { results.destroys.Add(1) }

// payload is an element whose contents can be checked against its id.
type payload struct {
	id  uint64
	sum uint64
}

func newPayload(id uint64) payload {
	return payload{id: id, sum: payloadSum(id)}
}

func payloadSum(id uint64) uint64 {
	var buf [8]byte
	for i := range buf {
		buf[i] = byte(id >> (8 * i))
	}
	return xxh3.Hash(buf[:])
}

func (p payload) valid() bool { return p.sum == payloadSum(p.id) }
