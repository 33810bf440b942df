// Package upgrade provides a reader/writer lock with an upgradeable shared
// mode.
//
// An upgradeable hold coexists with plain readers but excludes other
// upgradeable holders, so a check performed under it can only be invalidated
// by a plain exclusive locker. Go offers no in-place upgrade of a
// sync.RWMutex, so Upgrade releases the shared hold before acquiring the
// exclusive one and reports whether an exclusive locker slipped in between.
package upgrade

import (
	"sync"
	"sync/atomic"
)

type RWMutex struct {
	_ [0]func() // no equality

	rw  sync.RWMutex
	up  sync.Mutex    // serializes upgradeable holders
	gen atomic.Uint64 // bumped on every exclusive acquisition
	at  uint64        // gen observed by the upgradeable holder, guarded by up
}

func (m *RWMutex) RLock()   { m.rw.RLock() }
func (m *RWMutex) RUnlock() { m.rw.RUnlock() }

func (m *RWMutex) Lock() {
	m.rw.Lock()
	m.gen.Add(1)
}

func (m *RWMutex) Unlock() { m.rw.Unlock() }

// ULock acquires the lock in upgradeable shared mode.
func (m *RWMutex) ULock() {
	m.up.Lock()
	m.rw.RLock()
	m.at = m.gen.Load()
}

// UUnlock releases an upgradeable hold that was never upgraded.
func (m *RWMutex) UUnlock() {
	m.rw.RUnlock()
	m.up.Unlock()
}

// Upgrade converts an upgradeable hold into an exclusive one. It returns
// true when no other exclusive locker ran since ULock, in which case anything
// observed under the upgradeable hold is still valid.
//
// The exclusive hold must be released with UpgradedUnlock.
func (m *RWMutex) Upgrade() (clean bool) {
	m.rw.RUnlock()
	m.rw.Lock()
	return m.gen.Add(1) == m.at+1
}

// UpgradedUnlock releases a hold obtained through Upgrade.
func (m *RWMutex) UpgradedUnlock() {
	m.rw.Unlock()
	m.up.Unlock()
}
