package sync

import (
	"sort"
	base "sync"
)

const replicasPerStripe = 200

// StripedLock is a partitioned locking mechanism that consistently maps a key
// space to a set of locks. This provides concurrent data access while also
// limiting the total memory footprint.
type StripedLock struct {
	locks []base.RWMutex
	ring  *stripeRing
}

// NewStripedLock returns a new StripedLock with a static number of stripes.
func NewStripedLock(stripes uint) *StripedLock {
	return &StripedLock{
		locks: make([]base.RWMutex, stripes),
		ring:  newStripeRing(stripes, replicasPerStripe),
	}
}

// Get gets the lock for a key
func (l *StripedLock) Get(key []byte) *base.RWMutex {
	return &l.locks[l.Stripe(key)]
}

// Stripe returns the index of the lock a key maps to.
func (l *StripedLock) Stripe(key []byte) int {
	return l.ring.stripe(key)
}

// LockSet acquires the locks for a set of keys, taking write locks for
// writable keys and read locks for the rest. Locks are taken in stripe order so
// concurrent callers with overlapping sets can't deadlock. A stripe shared by a
// writable and a readonly key is write locked once.
//
// The returned func releases every lock taken.
func (l *StripedLock) LockSet(writable, readonly [][]byte) (unlock func()) {
	modes := make(map[int]bool)
	for _, key := range readonly {
		stripe := l.Stripe(key)
		if _, ok := modes[stripe]; !ok {
			modes[stripe] = false
		}
	}
	for _, key := range writable {
		modes[l.Stripe(key)] = true
	}

	stripes := make([]int, 0, len(modes))
	for stripe := range modes {
		stripes = append(stripes, stripe)
	}
	sort.Ints(stripes)

	for _, stripe := range stripes {
		if modes[stripe] {
			l.locks[stripe].Lock()
		} else {
			l.locks[stripe].RLock()
		}
	}

	return func() {
		for i := len(stripes) - 1; i >= 0; i-- {
			if modes[stripes[i]] {
				l.locks[stripes[i]].Unlock()
			} else {
				l.locks[stripes[i]].RUnlock()
			}
		}
	}
}
